package looperdir

import (
	"path/filepath"
	"testing"
)

func TestDirPath(t *testing.T) {
	tests := []struct {
		workDir string
		want    string
	}{
		{"", ".looper"},
		{".", ".looper"},
		{"/work", filepath.Join("/work", ".looper")},
	}
	for _, tt := range tests {
		if got := DirPath(tt.workDir); got != tt.want {
			t.Errorf("DirPath(%q) = %q, want %q", tt.workDir, got, tt.want)
		}
	}
}

func TestPluginPath(t *testing.T) {
	want := filepath.Join(".looper", "plugins", "todo-rename")
	if got := PluginPath(".", "todo-rename"); got != want {
		t.Errorf("PluginPath = %q, want %q", got, want)
	}
}

func TestUserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	got, err := UserDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, ".looper") {
		t.Errorf("UserDir = %q", got)
	}
}
