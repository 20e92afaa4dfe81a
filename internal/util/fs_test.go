package util

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Linus Tech Tips", "Linus_Tech_Tips"},
		{"Kurzgesagt – In a Nutshell", "Kurzgesagt_In_a_Nutshell"},
		{"AC/DC Official!", "ACDC_Official"},
		{"foo - bar", "foo_bar"},
		{"snake_case_name", "snake_case_name"},
		{"Café Crème", "Café_Crème"},
		{"???", ""},
		{"  padded  ", "_padded_"},
	}
	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteFileAtomic(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	path := filepath.Join(dir, "file.txt")

	n, err := WriteFileAtomic(path, func(f *os.File) error {
		_, err := f.WriteString("hello")
		return err
	})
	if err != nil {
		t.Fatalf("WriteFileAtomic error: %v", err)
	}
	if n != 5 {
		t.Errorf("size = %d, want 5", n)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "hello" {
		t.Fatalf("read back = %q, %v", data, err)
	}
}

func TestWriteFileAtomic_FillErrorLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	boom := errors.New("boom")

	_, err := WriteFileAtomic(path, func(f *os.File) error {
		_, _ = f.WriteString("partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected empty dir, found %d entries", len(entries))
	}
}

func TestCheckWritable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "csv_outputs")
	if err := CheckWritable(dir); err != nil {
		t.Fatalf("CheckWritable: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("probe file left behind: %v", entries)
	}

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := CheckWritable(filepath.Join(blocker, "sub")); err == nil {
		t.Fatal("expected error below a regular file")
	}
}
