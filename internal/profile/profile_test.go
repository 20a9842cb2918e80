package profile

import "testing"

func TestNew(t *testing.T) {
	p := New("work", "Jane Doe", "jane@company.com")
	if p.Name != "work" {
		t.Errorf("Name = %q, want %q", p.Name, "work")
	}
	if p.Identity.UserName != "Jane Doe" || p.Identity.UserEmail != "jane@company.com" {
		t.Errorf("Identity = %+v, want name/email set", p.Identity)
	}
	if p.HTTPSCredential != nil || p.SSHKeyPath != "" || p.GPGKeyID != "" {
		t.Errorf("optional fields should start unset, got %+v", p)
	}
}

func TestHasSSHKey(t *testing.T) {
	tests := []struct {
		name string
		path string
		host string
		want bool
	}{
		{"both set", "/k", "github.com", true},
		{"path only", "/k", "", false},
		{"host only", "", "github.com", false},
		{"neither", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Profile{SSHKeyPath: tt.path, SSHKeyHost: tt.host}
			if got := p.HasSSHKey(); got != tt.want {
				t.Errorf("HasSSHKey() = %v, want %v", got, tt.want)
			}
		})
	}
}
