package sshconfig

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gitp-cli/gitp/internal/profile"
)

func TestRenderIntoEmptyFile(t *testing.T) {
	got := Render("", []Entry{{Host: "github.com", IdentityFile: "/home/u/.ssh/id_a"}})

	want := StartMarker + "\n" +
		"Host github.com\n" +
		"    HostName github.com\n" +
		"    User git\n" +
		"    IdentityFile /home/u/.ssh/id_a\n" +
		"    IdentitiesOnly yes\n" +
		EndMarker + "\n"
	if got != want {
		t.Errorf("Render() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderCustomUser(t *testing.T) {
	got := Render("", []Entry{{Host: "gitlab.com", IdentityFile: "/k", User: "deploy"}})
	if !strings.Contains(got, "    User deploy\n") {
		t.Errorf("Render() missing custom user:\n%s", got)
	}
}

func TestRenderReplacesExistingBlock(t *testing.T) {
	existing := "Host foo\n  Port 22\n" +
		StartMarker + "\n" +
		"Host old.example.com\n" +
		"    HostName old.example.com\n" +
		"    User git\n" +
		"    IdentityFile /old\n" +
		"    IdentitiesOnly yes\n" +
		EndMarker + "\n"

	got := Render(existing, []Entry{{Host: "new.example.com", IdentityFile: "/k", User: "git"}})

	if !strings.HasPrefix(got, "Host foo\n  Port 22\n") {
		t.Errorf("hand-written stanza disturbed:\n%s", got)
	}
	if strings.Contains(got, "old.example.com") {
		t.Errorf("old managed entry survived:\n%s", got)
	}
	if !strings.Contains(got, "Host new.example.com") {
		t.Errorf("new managed entry missing:\n%s", got)
	}
	if strings.Count(got, StartMarker) != 1 || strings.Count(got, EndMarker) != 1 {
		t.Errorf("expected exactly one managed block:\n%s", got)
	}
}

func TestRenderPreservesSurroundingContent(t *testing.T) {
	existing := "# personal hosts\nHost foo\n  Port 22\n" +
		StartMarker + "\nHost a\n    HostName a\n    User git\n    IdentityFile /a\n    IdentitiesOnly yes\n" + EndMarker + "\n" +
		"Host bar\n  User me\n"

	got := Render(existing, []Entry{{Host: "b", IdentityFile: "/b"}})

	before := strings.Index(got, "Host foo")
	managed := strings.Index(got, StartMarker)
	after := strings.Index(got, "Host bar")
	if before < 0 || after < 0 || managed < 0 {
		t.Fatalf("content missing:\n%s", got)
	}
	if !(before < managed && managed < after) {
		t.Errorf("relative order changed:\n%s", got)
	}
}

func TestRenderRemovesBlockWhenNoEntries(t *testing.T) {
	existing := "Host foo\n  Port 22\n" +
		StartMarker + "\nHost a\n    HostName a\n    User git\n    IdentityFile /a\n    IdentitiesOnly yes\n" + EndMarker + "\n"

	got := Render(existing, nil)
	want := "Host foo\n  Port 22\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderAppendsWithoutTrailingNewline(t *testing.T) {
	got := Render("Host foo\n  Port 22", []Entry{{Host: "a", IdentityFile: "/a"}})
	if !strings.HasPrefix(got, "Host foo\n  Port 22\n"+StartMarker) {
		t.Errorf("expected single separator newline before block:\n%q", got)
	}
}

func TestRenderMalformedMarkersAppends(t *testing.T) {
	// End marker before start marker: treated as no managed region.
	existing := EndMarker + "\nsome line\n" + StartMarker + "\n"
	got := Render(existing, []Entry{{Host: "a", IdentityFile: "/a"}})
	if !strings.HasSuffix(got, EndMarker+"\n") {
		t.Errorf("block not appended at end:\n%q", got)
	}
	if strings.Count(got, "Host a\n") != 1 {
		t.Errorf("expected exactly one appended stanza:\n%q", got)
	}
}

func TestRenderCollapsesBlankLines(t *testing.T) {
	got := Render("Host foo\n\n\n\nHost bar\n", nil)
	want := "Host foo\n\nHost bar\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderNormalizesTrailingNewlines(t *testing.T) {
	got := Render("Host foo\n\n\n", nil)
	if got != "Host foo\n" {
		t.Errorf("Render() = %q, want %q", got, "Host foo\n")
	}
	if Render("\n\n\n", nil) != "" {
		t.Errorf("whitespace-only input should normalize to empty string")
	}
}

func TestSyncCreatesFileAndDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".ssh", "config")

	wrote, err := Sync(path, []Entry{{Host: "github.com", IdentityFile: "/home/u/.ssh/id_a"}})
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if !wrote {
		t.Error("Sync() reported no write for a new file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, StartMarker) || !strings.Contains(content, EndMarker) {
		t.Errorf("markers missing:\n%s", content)
	}
	if !strings.Contains(content, "IdentityFile /home/u/.ssh/id_a") {
		t.Errorf("identity file missing:\n%s", content)
	}
	if !strings.HasSuffix(content, EndMarker+"\n") || strings.HasSuffix(content, "\n\n") {
		t.Errorf("expected single trailing newline:\n%q", content)
	}

	if _, err := os.Stat(path + ".bak"); !errors.Is(err, os.ErrNotExist) {
		t.Error("backup created although no prior file existed")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
	dirInfo, err := os.Stat(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if perm := dirInfo.Mode().Perm(); perm != 0o700 {
		t.Errorf("dir mode = %o, want 700", perm)
	}
}

func TestSyncIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	entries := []Entry{
		{Host: "github.com", IdentityFile: "/a"},
		{Host: "gitlab.com", IdentityFile: "/b", User: "me"},
	}

	if _, err := Sync(path, entries); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	wrote, err := Sync(path, entries)
	if err != nil {
		t.Fatalf("second Sync() error = %v", err)
	}
	if wrote {
		t.Error("second Sync() with identical entries performed a write")
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Errorf("content changed on second sync:\n%q\nvs\n%q", first, second)
	}
	if _, err := os.Stat(path + ".bak"); !errors.Is(err, os.ErrNotExist) {
		t.Error("no-op sync created a backup")
	}
}

func TestSyncReplacesBlockAndBacksUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config")

	original := "Host foo\n  Port 22\n" +
		StartMarker + "\n" +
		"Host old.example.com\n" +
		"    HostName old.example.com\n" +
		"    User git\n" +
		"    IdentityFile /old\n" +
		"    IdentitiesOnly yes\n" +
		EndMarker + "\n"
	if err := os.WriteFile(path, []byte(original), 0o600); err != nil {
		t.Fatal(err)
	}

	wrote, err := Sync(path, []Entry{{Host: "new.example.com", IdentityFile: "/k", User: "git"}})
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if !wrote {
		t.Error("Sync() reported no write")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if !strings.Contains(content, "Host foo\n  Port 22\n") {
		t.Errorf("unrelated stanza disturbed:\n%s", content)
	}
	if strings.Contains(content, "old.example.com") || !strings.Contains(content, "new.example.com") {
		t.Errorf("block not replaced:\n%s", content)
	}

	backup, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("backup missing: %v", err)
	}
	if string(backup) != original {
		t.Errorf("backup does not hold pre-sync content")
	}
}

func TestSyncNoEntriesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")

	wrote, err := Sync(path, nil)
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if wrote {
		t.Error("Sync() wrote a file although nothing was desired")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Error("absent file did not stay absent")
	}
}

func TestEntriesStableOrder(t *testing.T) {
	key := filepath.Join(t.TempDir(), "k")
	if err := os.WriteFile(key, []byte("k"), 0o600); err != nil {
		t.Fatal(err)
	}

	profiles := map[string]profile.Profile{
		"zeta":  {Name: "zeta", SSHKeyPath: key, SSHKeyHost: "gitlab.com"},
		"alpha": {Name: "alpha", SSHKeyPath: key, SSHKeyHost: "gitlab.com"},
		"work":  {Name: "work", SSHKeyPath: key, SSHKeyHost: "github.com"},
		"nokey": {Name: "nokey"},
	}

	got := Entries(profiles)
	want := []Entry{
		{Host: "github.com", IdentityFile: key},
		{Host: "gitlab.com", IdentityFile: key},
		{Host: "gitlab.com", IdentityFile: key},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Entries() = %+v, want %+v", got, want)
	}
}
