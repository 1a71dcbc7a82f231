package buildinfo

import (
	"strings"
	"testing"
)

func TestShortCommit(t *testing.T) {
	orig := Commit
	t.Cleanup(func() { Commit = orig })

	tests := []struct{ commit, want string }{
		{"none", "none"},
		{"0123456789abcdef", "0123456"},
		{"", ""},
	}
	for _, tt := range tests {
		Commit = tt.commit
		if got := ShortCommit(); got != tt.want {
			t.Errorf("ShortCommit() with %q = %q, want %q", tt.commit, got, tt.want)
		}
	}
}

func TestTemplate(t *testing.T) {
	tmpl := Template()
	for _, want := range []string{"{{.Name}} version " + Version, "built: " + Date, "go: go"} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("Template() = %q, missing %q", tmpl, want)
		}
	}
}
