package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveImageEncodesOwner(t *testing.T) {
	t.Setenv("UPLOAD_DIR", t.TempDir())
	InitializeUploads()

	name, err := SaveImage(strings.NewReader("not-really-a-png"), ".png", 7)
	if err != nil {
		t.Fatalf("saving image: %v", err)
	}
	if !strings.HasPrefix(name, "u7-") {
		t.Errorf("expected owner prefix u7-, got %q", name)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Errorf("expected .png suffix, got %q", name)
	}

	owner, ok := ImageOwner(name)
	if !ok || owner != 7 {
		t.Errorf("ImageOwner(%q) = (%d, %v), expected (7, true)", name, owner, ok)
	}

	if _, err := os.Stat(filepath.Join(uploadDir, name)); err != nil {
		t.Errorf("stored file missing: %v", err)
	}

	RemoveImage(name)
	if _, err := os.Stat(filepath.Join(uploadDir, name)); !os.IsNotExist(err) {
		t.Errorf("expected file removed, stat err = %v", err)
	}
}

func TestImageOwnerRejectsMalformedNames(t *testing.T) {
	cases := []string{
		"",
		"cover.png",
		"u-abc.png",
		"uabc-def.png",
		"7-abc.png",
	}
	for _, name := range cases {
		if _, ok := ImageOwner(name); ok {
			t.Errorf("ImageOwner(%q) accepted a malformed name", name)
		}
	}
}
