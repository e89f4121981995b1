package fwpatch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrorMissingChecksumFile     = errors.New("Checksums file missing")
	ErrorMissingPatchFile        = errors.New("Patch file missing")
	ErrorMissingInputFile        = errors.New("Firmware file not found")
	ErrorUnsupportedFirmware     = errors.New("Unsupported firmware")
	ErrorNoPatchAvailable        = errors.New("No patch found for this identifier")
	ErrorByteMismatch            = errors.New("Byte mismatch")
	ErrorOutOfRange              = errors.New("Patch range outside of file")
	ErrorMissingExpectedChecksum = errors.New("No patched checksum found for this identifier")
	ErrorVerificationFailed      = errors.New("Checksum mismatch after patching")
	ErrorIO                      = errors.New("I/O error")
)

type ByteMismatchError struct {
	Offset   uint64
	Expected []byte
	Actual   []byte
}

func (e *ByteMismatchError) Error() string {
	return fmt.Sprintf("Byte mismatch at 0x%x. Expected %s, got %s", e.Offset, hexUpper(e.Expected), hexUpper(e.Actual))
}

func (e *ByteMismatchError) Is(target error) bool {
	return target == ErrorByteMismatch
}

type RangeError struct {
	Offset uint64
	Length int
	Size   int64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("Range 0x%x+%d exceeds file size 0x%x", e.Offset, e.Length, e.Size)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrorOutOfRange
}

type VerificationError struct {
	Expected Digest
	Actual   Digest
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("Checksum mismatch after patching: expected %s, got %s", e.Expected, e.Actual)
}

func (e *VerificationError) Is(target error) bool {
	return target == ErrorVerificationFailed
}

func ioError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrorIO, op, err)
}

func hexUpper(b []byte) string {
	return strings.ToUpper(fmt.Sprintf("%x", b))
}
