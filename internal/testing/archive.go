package testing

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/klauspost/compress/zip"
)

// ArchiveEntry is one file written into a fixture archive
type ArchiveEntry struct {
	Name string
	Body []byte
}

// Entry is a shorthand for a text entry
func Entry(name, body string) ArchiveEntry {
	return ArchiveEntry{Name: name, Body: []byte(body)}
}

// BuildArchive writes a zip archive at path containing entries in the given order
func BuildArchive(t *testing.T, path string, entries ...ArchiveEntry) {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, e := range entries {
		f, err := w.Create(e.Name)
		if err != nil {
			t.Fatalf("Failed to add %s: %v", e.Name, err)
		}
		if _, err := f.Write(e.Body); err != nil {
			t.Fatalf("Failed to write %s: %v", e.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to finish archive: %v", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write archive %s: %v", path, err)
	}
}

// ReadArchive returns every entry of the zip at path, keyed by name, and the entry order
func ReadArchive(t *testing.T, path string) (map[string][]byte, []string) {
	t.Helper()

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("Failed to open archive %s: %v", path, err)
	}
	defer r.Close()

	contents := make(map[string][]byte)
	var order []string
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("Failed to read entry %s: %v", f.Name, err)
		}
		contents[f.Name] = data
		order = append(order, f.Name)
	}
	return contents, order
}
