package discover

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/archaeo-tools/archaeo/internal/exclude"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func symlink(t *testing.T, target, link string) {
	t.Helper()
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
}

func TestFilesExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "main.c", "int main(void) { return 0; }")
	writeFile(t, dir, "lib/util.h", "int util(void);")
	writeFile(t, dir, "lib/Shape.CPP", "class Shape {};")
	writeFile(t, dir, "lib/shape.hpp", "class Shape;")
	writeFile(t, dir, "lib/shape.cc", "")
	writeFile(t, dir, "readme.txt", "hello")
	writeFile(t, dir, "script.py", "pass")
	writeFile(t, dir, "noext", "")

	files, err := Files(dir, Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	want := []string{
		filepath.Join(dir, "lib", "Shape.CPP"),
		filepath.Join(dir, "lib", "shape.cc"),
		filepath.Join(dir, "lib", "shape.hpp"),
		filepath.Join(dir, "lib", "util.h"),
		filepath.Join(dir, "main.c"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Files = %v, want %v", files, want)
	}
}

func TestFilesEmptyDirectory(t *testing.T) {
	t.Parallel()

	files, err := Files(t.TempDir(), Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", files)
	}
}

func TestFilesNotADirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.c", "")

	if _, err := Files(filepath.Join(dir, "a.c"), Options{}); err == nil {
		t.Error("expected error for a regular file root")
	}
	if _, err := Files(filepath.Join(dir, "missing"), Options{}); err == nil {
		t.Error("expected error for a missing root")
	}
}

func TestFilesFollowsSymlinkedDirectories(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	writeFile(t, outside, "linked.c", "")

	dir := t.TempDir()
	writeFile(t, dir, "main.c", "")
	symlink(t, outside, filepath.Join(dir, "vendor"))

	files, err := Files(dir, Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	want := []string{
		filepath.Join(dir, "main.c"),
		filepath.Join(dir, "vendor", "linked.c"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Files = %v, want %v", files, want)
	}
}

func TestFilesSymlinkLoop(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "sub/a.c", "")
	symlink(t, dir, filepath.Join(dir, "sub", "loop"))

	files, err := Files(dir, Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if want := []string{filepath.Join(dir, "sub", "a.c")}; !reflect.DeepEqual(files, want) {
		t.Errorf("Files = %v, want %v", files, want)
	}
}

func TestFilesSharedDirectoryWalkedOnce(t *testing.T) {
	t.Parallel()

	shared := t.TempDir()
	writeFile(t, shared, "x.c", "")

	dir := t.TempDir()
	symlink(t, shared, filepath.Join(dir, "a"))
	symlink(t, shared, filepath.Join(dir, "b"))

	files, err := Files(dir, Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	// directory entries are read in name order, so the first link wins
	if want := []string{filepath.Join(dir, "a", "x.c")}; !reflect.DeepEqual(files, want) {
		t.Errorf("Files = %v, want %v", files, want)
	}
}

func TestFilesSymlinkedFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "real/a.c", "")
	symlink(t, filepath.Join(dir, "real", "a.c"), filepath.Join(dir, "b.c"))
	symlink(t, filepath.Join(dir, "missing.c"), filepath.Join(dir, "broken.c"))

	files, err := Files(dir, Options{})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	want := []string{
		filepath.Join(dir, "b.c"),
		filepath.Join(dir, "real", "a.c"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Files = %v, want %v", files, want)
	}
}

func TestFilesExclude(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "main.c", "")
	writeFile(t, dir, "third_party/zlib/inflate.c", "")
	writeFile(t, dir, "src/gen.generated.c", "")
	writeFile(t, dir, "src/lexer.c", "")

	files, err := Files(dir, Options{
		Exclude: exclude.New([]string{"third_party/", "*.generated.c"}),
	})
	if err != nil {
		t.Fatalf("Files: %v", err)
	}

	want := []string{
		filepath.Join(dir, "main.c"),
		filepath.Join(dir, "src", "lexer.c"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Files = %v, want %v", files, want)
	}
}
