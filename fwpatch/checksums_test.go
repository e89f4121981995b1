package fwpatch

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadChecksums(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *ChecksumStore
	}{
		{
			name: "basic",
			in:   "ORIGINAL abcdef01 V4\nUPDATED 1234abcd V4\n",
			want: &ChecksumStore{
				Originals: map[Digest]string{"ABCDEF01": "V4"},
				Updated:   map[string]Digest{"V4": "1234ABCD"},
			},
		},
		{
			name: "state is case insensitive",
			in:   "original aa V4\nUpdated bb V4\n",
			want: &ChecksumStore{
				Originals: map[Digest]string{"AA": "V4"},
				Updated:   map[string]Digest{"V4": "BB"},
			},
		},
		{
			name: "malformed lines skipped",
			in:   "ORIGINAL aa\nORIGINAL aa V4 extra\nBOGUS cc V5\n\n# comment line\n   \nORIGINAL dd V6\n",
			want: &ChecksumStore{
				Originals: map[Digest]string{"DD": "V6"},
				Updated:   map[string]Digest{},
			},
		},
		{
			name: "last write wins",
			in:   "ORIGINAL aa V4\nORIGINAL AA V5\nUPDATED bb V4\nUPDATED cc V4\n",
			want: &ChecksumStore{
				Originals: map[Digest]string{"AA": "V5"},
				Updated:   map[string]Digest{"V4": "CC"},
			},
		},
		{
			name: "tabs and extra whitespace",
			in:   "  ORIGINAL\taa \t V4  \r\n",
			want: &ChecksumStore{
				Originals: map[Digest]string{"AA": "V4"},
				Updated:   map[string]Digest{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadChecksums(strings.NewReader(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ReadChecksums() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChecksumLookups(t *testing.T) {
	store, err := ReadChecksums(strings.NewReader("ORIGINAL aabb V4\nUPDATED ccdd V4\nORIGINAL eeff V5\n"))
	if err != nil {
		t.Fatal(err)
	}

	if id, ok := store.Identify("aaBB"); !ok || id != "V4" {
		t.Errorf("Identify(aaBB) = %q, %v", id, ok)
	}
	if _, ok := store.Identify("0000"); ok {
		t.Errorf("Identify(0000) matched")
	}
	if d, ok := store.Expected("V4"); !ok || d != "CCDD" {
		t.Errorf("Expected(V4) = %q, %v", d, ok)
	}
	if _, ok := store.Expected("V5"); ok {
		t.Errorf("Expected(V5) found")
	}
}

func TestLoadChecksumsMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadChecksums(filepath.Join(dir, "nope.txt"), nil)
	if !errors.Is(err, ErrorMissingChecksumFile) {
		t.Errorf("missing file: got %v", err)
	}

	_, err = LoadChecksums(dir, nil)
	if !errors.Is(err, ErrorMissingChecksumFile) {
		t.Errorf("directory: got %v", err)
	}
}

func TestLoadChecksums(t *testing.T) {
	path := writeFile(t, t.TempDir(), "checksums.txt", []byte("ORIGINAL aa V4\nUPDATED bb V4\n"))

	var c captureLogger
	store, err := LoadChecksums(path, c.Logger())
	if err != nil {
		t.Fatal(err)
	}
	if len(store.Originals) != 1 || len(store.Updated) != 1 {
		t.Errorf("unexpected store %+v", store)
	}
	if c.count(LevelInfo) != 1 {
		t.Errorf("expected one info message, got %+v", c.entries)
	}
}
