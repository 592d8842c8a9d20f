package urls

import (
	"os"
	"path/filepath"
	"testing"
)

func writeList(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write url list: %v", err)
	}
	return path
}

func TestRead_SkipsBlankLines(t *testing.T) {
	t.Parallel()

	path := writeList(t, "https://shop-one.example.com/\n\n  https://shop-two.example.com/  \n")

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 urls, got %d: %v", len(got), got)
	}
	if got[0] != "https://shop-one.example.com/" || got[1] != "https://shop-two.example.com/" {
		t.Fatalf("unexpected urls: %v", got)
	}
}

func TestRead_InvalidLine(t *testing.T) {
	t.Parallel()

	path := writeList(t, "https://shop.example.com/\nnot a url\n")

	if _, err := Read(path); err == nil {
		t.Fatal("expected error for invalid line")
	}
}

func TestRead_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Read(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
