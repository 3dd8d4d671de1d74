package mmapfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestOpenAndBytes(t *testing.T) {
	want := "Hamburg;12.0\nBulawayo;8.9\n"
	path := writeTemp(t, want)

	f, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	if got := string(f.Bytes()); got != want {
		t.Errorf("Bytes() = %q, want %q", got, want)
	}
}

func TestOpenTailPaddingIsZero(t *testing.T) {
	want := "Hamburg;12.0\n"
	path := writeTemp(t, want)

	f, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	tail := f.data[f.size : f.size+TailPadding]
	for i, b := range tail {
		if b != 0 {
			t.Fatalf("tail padding byte %d = %d, want 0", i, b)
		}
	}
}

func TestOpenEmptyFile(t *testing.T) {
	path := writeTemp(t, "")

	f, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	if len(f.Bytes()) != 0 {
		t.Errorf("Bytes() on empty file = %q, want empty", f.Bytes())
	}
}

func TestOpenWithHugepagesFallsBack(t *testing.T) {
	// hugepages is advisory; without a configured hugepage pool this must
	// still succeed via the plain-mapping fallback rather than failing.
	path := writeTemp(t, "Riga;5.0\n")

	f, err := Open(path, true)
	if err != nil {
		t.Fatalf("Open with hugepages=true: %v", err)
	}
	defer f.Close()

	if string(f.Bytes()) != "Riga;5.0\n" {
		t.Errorf("Bytes() = %q", f.Bytes())
	}
}

// TestOpenPageAlignedSize covers the read fallback: a file whose size is
// an exact multiple of the page size leaves no zero-filled tail room in
// its final page, so the padding must come from a heap buffer instead.
func TestOpenPageAlignedSize(t *testing.T) {
	line := "Perth;5.0\n"
	page := os.Getpagesize()
	var contents strings.Builder
	for contents.Len()+len(line) <= page {
		contents.WriteString(line)
	}
	contents.WriteString(strings.Repeat("x", page-contents.Len()-1) + "\n")
	want := contents.String()
	if len(want)%page != 0 {
		t.Fatalf("test setup bug: size %d not page-aligned", len(want))
	}

	path := writeTemp(t, want)
	f, err := Open(path, false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	if got := string(f.Bytes()); got != want {
		t.Errorf("Bytes() mismatch on page-aligned file (len %d vs %d)", len(got), len(want))
	}
	for i, b := range f.data[f.size : f.size+TailPadding] {
		if b != 0 {
			t.Fatalf("tail padding byte %d = %d, want 0", i, b)
		}
	}
}
