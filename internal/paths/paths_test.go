package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCanonicalize(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "pkg")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(sub, "models.py")
	if err := os.WriteFile(file, []byte("class A: ..."), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Canonicalize(file, root)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	if got != "pkg/models.py" {
		t.Errorf("Canonicalize = %q, want %q", got, "pkg/models.py")
	}
}

func TestCanonicalizeMissingFile(t *testing.T) {
	root := t.TempDir()
	got, err := Canonicalize(filepath.Join(root, "not_yet.py"), root)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	if got != "not_yet.py" {
		t.Errorf("Canonicalize = %q, want %q", got, "not_yet.py")
	}
}

func TestIsWithinRoot(t *testing.T) {
	root := t.TempDir()
	inside := filepath.Join(root, "a", "b.py")
	outside := filepath.Join(root, "..", "elsewhere.py")

	if !IsWithinRoot(inside, root) {
		t.Errorf("IsWithinRoot(%q) = false, want true", inside)
	}
	if IsWithinRoot(outside, root) {
		t.Errorf("IsWithinRoot(%q) = true, want false", outside)
	}
}

func TestRelativeTo(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "pkg", "models.py")
	if got := RelativeTo(file, root); got != "pkg/models.py" {
		t.Errorf("RelativeTo = %q, want %q", got, "pkg/models.py")
	}

	unrelated := string(filepath.Separator) + filepath.Join("somewhere", "else.py")
	if got := RelativeTo(unrelated, root); got != Normalize(unrelated) {
		t.Errorf("RelativeTo = %q, want unchanged path", got)
	}
}

func TestRootBaseName(t *testing.T) {
	root := t.TempDir()
	project := filepath.Join(root, "myproject")
	if err := os.MkdirAll(project, 0o755); err != nil {
		t.Fatal(err)
	}
	if got := RootBaseName(project); got != "myproject" {
		t.Errorf("RootBaseName = %q, want %q", got, "myproject")
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("a/b/c.py"); got != "a/b/c.py" {
		t.Errorf("Normalize = %q", got)
	}
}
