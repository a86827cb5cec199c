package layout

import (
	"os"
	"path/filepath"
	"testing"
)

func TestProjectDirectory_CreatesAndIsIdempotent(t *testing.T) {
	root := t.TempDir()

	for i := 0; i < 2; i++ {
		dir, err := ProjectDirectory(root, "Alpha")
		if err != nil {
			t.Fatalf("run %d: unexpected error: %v", i, err)
		}
		if dir != filepath.Join(root, "Alpha") {
			t.Errorf("run %d: expected %s, got %s", i, filepath.Join(root, "Alpha"), dir)
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("run %d: expected directory at %s", i, dir)
		}
	}
}

func TestProjectDirectory_CreatesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "not", "yet", "there")
	if _, err := ProjectDirectory(root, "Alpha"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProjectDirectory_RootIsAFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(root, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ProjectDirectory(root, "Alpha"); err == nil {
		t.Errorf("expected error when root is a regular file")
	}
}

func TestRepoPath_DoesNoIO(t *testing.T) {
	projectDir := filepath.Join(t.TempDir(), "Alpha")
	got := RepoPath(projectDir, "repoA")
	if got != filepath.Join(projectDir, "repoA") {
		t.Errorf("unexpected repo path %s", got)
	}
	if _, err := os.Stat(projectDir); !os.IsNotExist(err) {
		t.Errorf("RepoPath must not create directories")
	}
}
