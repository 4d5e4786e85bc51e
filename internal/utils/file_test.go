package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.toml")

	if FileExists(path) {
		t.Error("missing file reported as existing")
	}
	if err := os.WriteFile(path, []byte("seed = 1\n"), 0o644); err != nil {
		t.Fatalf("writing: %v", err)
	}
	if !FileExists(path) {
		t.Error("existing file reported as missing")
	}
	if FileExists(dir) {
		t.Error("directory reported as a file")
	}
}

func TestGetFileExtension(t *testing.T) {
	cases := map[string]string{
		"photo.JPG":      "jpg",
		"dir/mask.png":   "png",
		"archive.tar.gz": "gz",
		"noext":          "",
	}
	for in, want := range cases {
		if got := GetFileExtension(in); got != want {
			t.Errorf("GetFileExtension(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsImageFile(t *testing.T) {
	if !IsImageFile("a/b/photo.webp") {
		t.Error("webp not recognized")
	}
	if IsImageFile("notes.txt") {
		t.Error("txt recognized as image")
	}
}

func TestGenerateOutputFilename(t *testing.T) {
	got := GenerateOutputFilename("in/photo.png", "out", "_aug01", "jpg")
	want := filepath.Join("out", "photo_aug01.jpg")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	// Empty format falls back to the input's extension.
	got = GenerateOutputFilename("in/photo.png", "out", "_v2", "")
	want = filepath.Join("out", "photo_v2.png")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestListImageFiles(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(sub, "b.png"),
		filepath.Join(dir, "skip.txt"),
	} {
		if err := os.WriteFile(name, nil, 0o644); err != nil {
			t.Fatalf("writing: %v", err)
		}
	}

	files, err := ListImageFiles(dir)
	if err != nil {
		t.Fatalf("ListImageFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 image files, got %v", files)
	}
}
