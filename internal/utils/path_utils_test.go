package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"
)

func TestHasSourceExt(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.ol", true},
		{"dir/b.ol", true},
		{"a.ol.txt", false},
		{"ol", false},
	}
	for _, tt := range tests {
		if got := HasSourceExt(tt.path); got != tt.want {
			t.Errorf("HasSourceExt(%q) = %v", tt.path, got)
		}
	}
}

func TestCollectSources(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"b.ol":      "var b : 2",
		"a.ol":      "var a : 1",
		"notes.txt": "ignored",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.ol"), 0o755); err != nil {
		t.Fatal(err)
	}
	explicit := filepath.Join(dir, "notes.txt")

	sources, err := CollectSources([]string{dir, explicit})
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, s := range sources {
		got = append(got, filepath.Base(s.Path)+"="+s.Code)
	}
	want := []string{"a.ol=var a : 1", "b.ol=var b : 2", "notes.txt=ignored"}
	if diff := deep.Equal(got, want); diff != nil {
		t.Error(diff)
	}

	if _, err := CollectSources([]string{filepath.Join(dir, "missing.ol")}); err == nil {
		t.Error("missing path accepted")
	}
}
