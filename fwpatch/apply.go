package fwpatch

import (
	"bytes"
	"fmt"
	"os"
)

type State int

const (
	StateStart State = iota
	StateMatched
	StatePatching
	StateVerifying
	StateCommitted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateMatched:
		return "matched"
	case StatePatching:
		return "patching"
	case StateVerifying:
		return "verifying"
	case StateCommitted:
		return "committed"
	case StateAborted:
		return "aborted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

type Config struct {
	/* Leave the partially patched scratch file on disk when patching fails */
	KeepOnFailure bool

	/* Directory for the scratch copy, defaults to the directory of the input */
	ScratchDir string

	Log Logger
}

type Patcher struct {
	checksums *ChecksumStore
	patches   PatchDatabase
	config    Config
	log       Logger
}

type Result struct {
	State State

	Identifier    string
	InputDigest   Digest
	PatchedDigest Digest

	Applied []PatchEntry

	Output  string
	Scratch string
}

func New(checksums *ChecksumStore, patches PatchDatabase, config Config) *Patcher {
	return &Patcher{
		checksums: checksums,
		patches:   patches,
		config:    config,
		log:       loggerOrNop(config.Log),
	}
}

func (p *Patcher) Apply(input string) (*Result, error) {
	r := &Result{State: StateStart}

	err := p.apply(input, r)
	if err != nil {
		r.State = StateAborted
		p.log.Error("%s", err.Error())
	}
	return r, err
}

func (p *Patcher) apply(input string, r *Result) error {
	st, err := os.Stat(input)
	if err != nil || !st.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrorMissingInputFile, input)
	}

	r.InputDigest, err = DigestFile(input)
	if err != nil {
		return err
	}
	p.log.Info("Input file checksum (sha256): %s", r.InputDigest)

	ident, ok := p.checksums.Identify(r.InputDigest)
	if !ok {
		return fmt.Errorf("%w: %s, contact repo with request", ErrorUnsupportedFirmware, r.InputDigest)
	}
	r.Identifier = ident
	r.State = StateMatched
	p.log.Info("Matched identifier: %s", ident)

	entries := p.patches[ident]
	if len(entries) == 0 {
		return fmt.Errorf("%w: %s, check patch db for update", ErrorNoPatchAvailable, ident)
	}

	scratch, err := newScratch(input, p.config.ScratchDir)
	if err != nil {
		return err
	}
	defer func() {
		if scratch.release(p.config.KeepOnFailure) {
			r.Scratch = scratch.Path()
			p.log.Warning("Partially patched file left at %s", scratch.Path())
		}
	}()
	r.State = StatePatching

	for _, e := range entries {
		if err := patchEntry(scratch, e); err != nil {
			return err
		}
		r.Applied = append(r.Applied, e)
	}
	if err := scratch.finish(); err != nil {
		return err
	}
	r.State = StateVerifying

	expected, ok := p.checksums.Expected(ident)
	if !ok {
		return fmt.Errorf("%w: %s, though original was known. Check checksum db", ErrorMissingExpectedChecksum, ident)
	}

	r.PatchedDigest, err = DigestFile(scratch.Path())
	if err != nil {
		return err
	}
	p.log.Info("Patched checksum: %s", r.PatchedDigest)

	if !r.PatchedDigest.Equal(expected) {
		return &VerificationError{Expected: expected, Actual: r.PatchedDigest}
	}

	output := OutputPath(input)
	if _, err := os.Stat(output); err == nil {
		p.log.Warning("Overwriting existing file %s", output)
	}
	if err := scratch.commit(output, input); err != nil {
		return err
	}
	r.Output = output
	r.State = StateCommitted
	p.log.Info("Success! New file created: %s", output)

	return nil
}

/* Offsets are absolute, a replacement of different length does not move later entries */
func patchEntry(s *scratchFile, e PatchEntry) error {
	if err := checkRange(s.Size(), e.Offset, len(e.Original)); err != nil {
		return err
	}

	current := make([]byte, len(e.Original))
	if _, err := s.ReadAt(current, int64(e.Offset)); err != nil {
		return ioError("read scratch", err)
	}
	if !bytes.Equal(current, e.Original) {
		return &ByteMismatchError{
			Offset:   e.Offset,
			Expected: e.Original,
			Actual:   current,
		}
	}

	if err := checkRange(s.Size(), e.Offset, len(e.Replacement)); err != nil {
		return err
	}
	if _, err := s.WriteAt(e.Replacement, int64(e.Offset)); err != nil {
		return ioError("write scratch", err)
	}
	return nil
}

func checkRange(size int64, offset uint64, length int) error {
	end := offset + uint64(length)
	if size < 0 || end < offset || end > uint64(size) {
		return &RangeError{Offset: offset, Length: length, Size: size}
	}
	return nil
}

/* Loads both databases, any error here should abort the program */
func Load(checksumsPath string, patchesPath string, log Logger) (*ChecksumStore, PatchDatabase, error) {
	checksums, err := LoadChecksums(checksumsPath, log)
	if err != nil {
		return nil, nil, err
	}

	patches, err := LoadPatches(patchesPath, log)
	if err != nil {
		return nil, nil, err
	}

	return checksums, patches, nil
}
