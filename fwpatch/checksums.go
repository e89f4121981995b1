package fwpatch

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

type ChecksumStore struct {
	Originals map[Digest]string
	Updated   map[string]Digest
}

const maxLineLength = 16 * 1024 * 1024

func openDatabase(path string, missing error) (*os.File, error) {
	st, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", missing, path)
		}
		return nil, ioError("stat", err)
	}
	if !st.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", missing, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ioError("open", err)
	}
	return f, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), maxLineLength)
	return s
}

func LoadChecksums(path string, log Logger) (*ChecksumStore, error) {
	f, err := openDatabase(path, ErrorMissingChecksumFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	store, err := ReadChecksums(f)
	if err != nil {
		return nil, err
	}

	loggerOrNop(log).Info("Loaded %d original and %d updated checksums from %s", len(store.Originals), len(store.Updated), path)
	return store, nil
}

/* Lines that are not exactly STATE HASH IDENTIFIER, or have an unknown state, are skipped */
func ReadChecksums(r io.Reader) (*ChecksumStore, error) {
	store := &ChecksumStore{
		Originals: make(map[Digest]string),
		Updated:   make(map[string]Digest),
	}

	s := newScanner(r)
	for s.Scan() {
		parts := strings.Fields(s.Text())
		if len(parts) != 3 {
			continue
		}

		state, hash, ident := parts[0], NormalizeDigest(parts[1]), parts[2]
		switch strings.ToUpper(state) {
		case "ORIGINAL":
			store.Originals[hash] = ident
		case "UPDATED":
			store.Updated[ident] = hash
		}
	}
	if err := s.Err(); err != nil {
		return nil, ioError("read checksums", err)
	}

	return store, nil
}

func (c *ChecksumStore) Identify(d Digest) (string, bool) {
	ident, ok := c.Originals[NormalizeDigest(string(d))]
	return ident, ok
}

func (c *ChecksumStore) Expected(ident string) (Digest, bool) {
	d, ok := c.Updated[ident]
	return d, ok && d != ""
}
