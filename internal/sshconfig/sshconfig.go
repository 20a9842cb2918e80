// Package sshconfig maintains the managed block inside the user's SSH
// client configuration. Everything outside the block is treated as opaque
// text and preserved; the block itself is regenerated from the profiles
// on every sync.
package sshconfig

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gitp-cli/gitp/internal/profile"
)

// Sentinel lines delimiting the managed region.
const (
	StartMarker = "# BEGIN MANAGED BY GITP"
	EndMarker   = "# END MANAGED BY GITP"
)

// DefaultUser is the login used when a profile does not specify one. The
// conventional git-hosting login works for GitHub, GitLab and friends.
const DefaultUser = "git"

// Entry is one stanza of the managed block.
type Entry struct {
	Host         string
	IdentityFile string
	User         string
}

// DefaultPath returns ~/.ssh/config.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ssh", "config"), nil
}

// Entries derives the managed entries from all profiles that have both an
// SSH key and a host configured. The result is sorted by host, then by
// profile name, so the rendered block is stable across runs regardless of
// map iteration order.
func Entries(profiles map[string]profile.Profile) []Entry {
	type keyed struct {
		entry   Entry
		profile string
	}
	var all []keyed
	for name, p := range profiles {
		if !p.HasSSHKey() {
			continue
		}
		all = append(all, keyed{
			entry:   Entry{Host: p.SSHKeyHost, IdentityFile: p.SSHKeyPath},
			profile: name,
		})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].entry.Host != all[j].entry.Host {
			return all[i].entry.Host < all[j].entry.Host
		}
		return all[i].profile < all[j].profile
	})

	entries := make([]Entry, len(all))
	for i, k := range all {
		entries[i] = k.entry
	}
	return entries
}

// stanza renders one host entry.
func stanza(e Entry) string {
	user := e.User
	if user == "" {
		user = DefaultUser
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Host %s\n", e.Host)
	fmt.Fprintf(&b, "    HostName %s\n", e.Host)
	fmt.Fprintf(&b, "    User %s\n", user)
	fmt.Fprintf(&b, "    IdentityFile %s\n", e.IdentityFile)
	b.WriteString("    IdentitiesOnly yes\n")
	return b.String()
}

// block renders the full managed block, or "" when there are no entries
// (meaning no managed region should remain in the file).
func block(entries []Entry) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(StartMarker)
	b.WriteByte('\n')
	for _, e := range entries {
		b.WriteString(stanza(e))
	}
	b.WriteString(EndMarker)
	b.WriteByte('\n')
	return b.String()
}

// Render merges the desired entries into the existing file content and
// returns the normalized result. It is a pure function: Sync handles all
// file I/O.
func Render(existing string, entries []Entry) string {
	desired := block(entries)

	start := strings.Index(existing, StartMarker)
	end := strings.LastIndex(existing, EndMarker)

	var merged string
	if start >= 0 && end >= 0 && start < end {
		// Replace the whole region from the start marker through the end
		// marker, consuming one trailing newline after it if present.
		afterEnd := end + len(EndMarker)
		if afterEnd < len(existing) && existing[afterEnd] == '\n' {
			afterEnd++
		}
		merged = existing[:start] + desired + existing[afterEnd:]
	} else {
		// No managed region (or malformed markers): append.
		merged = existing
		if desired != "" {
			if merged != "" && !strings.HasSuffix(merged, "\n") {
				merged += "\n"
			}
			merged += desired
		}
	}

	return normalize(merged)
}

// normalize collapses runs of blank lines into one and ends the text with
// exactly one newline (or leaves it empty). This applies to the whole
// file, so hand-written blank-line runs outside the block are flattened
// too; a deliberate simplification.
func normalize(content string) string {
	var lines []string
	lastBlank := false
	for _, line := range strings.SplitAfter(content, "\n") {
		if line == "" {
			continue
		}
		line = strings.TrimSuffix(line, "\n")
		if strings.TrimSpace(line) == "" {
			if !lastBlank {
				lines = append(lines, "")
			}
			lastBlank = true
			continue
		}
		lines = append(lines, line)
		lastBlank = false
	}

	out := strings.Join(lines, "\n")
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return ""
	}
	return out + "\n"
}

// Sync rewrites the managed block of the SSH config at path so it holds
// exactly the given entries. It reports whether the file was written.
// When a write happens and a prior file existed, it is first copied to
// path + ".bak". An absent file with no desired entries stays absent.
func Sync(path string, entries []Entry) (bool, error) {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return false, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	existed := true
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return false, fmt.Errorf("read ssh config: %w", err)
		}
		existed = false
	}
	existing := string(data)

	rendered := Render(existing, entries)

	changed := strings.TrimSpace(rendered) != strings.TrimSpace(existing)
	if existed && !changed {
		return false, nil
	}
	if !existed && rendered == "" {
		return false, nil
	}

	if existed {
		if err := copyFile(path, path+".bak"); err != nil {
			return false, fmt.Errorf("back up ssh config: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(rendered), 0o600); err != nil {
		return false, fmt.Errorf("write ssh config: %w", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return false, fmt.Errorf("set ssh config permissions: %w", err)
	}
	return true, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
