package builtins

import (
	"path/filepath"
	"testing"

	"github.com/minidyn/minidyn/internal/value"
)

func TestFileReadWriteExistsRoundTrip(t *testing.T) {
	r := newTestRegistry()
	writeInfo, _ := r.Lookup("write_file")
	readInfo, _ := r.Lookup("read_file")
	existsInfo, _ := r.Lookup("file_exists")

	dir := t.TempDir()
	path := filepath.Join(dir, "greeting.txt")

	if _, err := writeInfo.Func([]value.Value{value.String(path), value.String("hi there")}); err != nil {
		t.Fatalf("write_file returned error: %v", err)
	}

	got, err := readInfo.Func([]value.Value{value.String(path)})
	if err != nil {
		t.Fatalf("read_file returned error: %v", err)
	}
	if got.(value.String) != "hi there" {
		t.Errorf("read_file = %q, want %q", got, "hi there")
	}

	exists, err := existsInfo.Func([]value.Value{value.String(path)})
	if err != nil {
		t.Fatalf("file_exists returned error: %v", err)
	}
	if exists != value.Bool(true) {
		t.Error("file_exists = false for a file just written")
	}

	missing, err := existsInfo.Func([]value.Value{value.String(filepath.Join(dir, "nope.txt"))})
	if err != nil {
		t.Fatalf("file_exists returned error: %v", err)
	}
	if missing != value.Bool(false) {
		t.Error("file_exists = true for a path that was never created")
	}
}

func TestListDirFn(t *testing.T) {
	r := newTestRegistry()
	writeInfo, _ := r.Lookup("write_file")
	listInfo, _ := r.Lookup("list_dir")

	dir := t.TempDir()
	if _, err := writeInfo.Func([]value.Value{value.String(filepath.Join(dir, "a.txt")), value.String("")}); err != nil {
		t.Fatalf("write_file returned error: %v", err)
	}
	if _, err := writeInfo.Func([]value.Value{value.String(filepath.Join(dir, "b.txt")), value.String("")}); err != nil {
		t.Fatalf("write_file returned error: %v", err)
	}

	got, err := listInfo.Func([]value.Value{value.String(dir)})
	if err != nil {
		t.Fatalf("list_dir returned error: %v", err)
	}
	if got.(*value.Array).Len() != 2 {
		t.Errorf("list_dir length = %d, want 2", got.(*value.Array).Len())
	}
}
