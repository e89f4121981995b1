package fwpatch

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type PatchEntry struct {
	Offset      uint64
	Original    []byte
	Replacement []byte
}

func (p PatchEntry) String() string {
	return fmt.Sprintf("0x%x: %s -> %s", p.Offset, hexUpper(p.Original), hexUpper(p.Replacement))
}

type PatchDatabase map[string][]PatchEntry

func (db PatchDatabase) Count() int {
	n := 0
	for _, m := range db {
		n += len(m)
	}
	return n
}

func LoadPatches(path string, log Logger) (PatchDatabase, error) {
	f, err := openDatabase(path, ErrorMissingPatchFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	log = loggerOrNop(log)
	db, err := ReadPatches(f, log)
	if err != nil {
		return nil, err
	}

	log.Info("Loaded %d patch entries for %d identifiers from %s", db.Count(), len(db), path)
	return db, nil
}

func ReadPatches(r io.Reader, log Logger) (PatchDatabase, error) {
	log = loggerOrNop(log)
	db := make(PatchDatabase)

	s := newScanner(r)
	lineNo := 0
	for s.Scan() {
		lineNo++
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ident, entry, err := parsePatchLine(line)
		if err != nil {
			log.Warning("Invalid patch on line %d (%v): %s", lineNo, err, line)
			continue
		}
		db[ident] = append(db[ident], entry)
	}
	if err := s.Err(); err != nil {
		return nil, ioError("read patches", err)
	}

	return db, nil
}

func parsePatchLine(line string) (string, PatchEntry, error) {
	parts := strings.Fields(line)
	if len(parts) != 4 {
		return "", PatchEntry{}, fmt.Errorf("expected 4 fields, got %d", len(parts))
	}

	addr := parts[1]
	if strings.HasPrefix(addr, "0x") || strings.HasPrefix(addr, "0X") {
		addr = addr[2:]
	}
	offset, err := strconv.ParseUint(addr, 16, 64)
	if err != nil {
		return "", PatchEntry{}, fmt.Errorf("offset: %w", err)
	}

	orig, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", PatchEntry{}, fmt.Errorf("original bytes: %w", err)
	}

	repl, err := hex.DecodeString(parts[3])
	if err != nil {
		return "", PatchEntry{}, fmt.Errorf("new bytes: %w", err)
	}

	return parts[0], PatchEntry{
		Offset:      offset,
		Original:    orig,
		Replacement: repl,
	}, nil
}
