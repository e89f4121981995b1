package fwpatch

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"strings"
)

const digestChunkSize = 4096

/* Uppercase hex SHA-256 */
type Digest string

func NormalizeDigest(s string) Digest {
	return Digest(strings.ToUpper(strings.TrimSpace(s)))
}

func (d Digest) Equal(o Digest) bool {
	return NormalizeDigest(string(d)) == NormalizeDigest(string(o))
}

func DigestReader(r io.Reader) (Digest, error) {
	h := sha256.New()
	buf := make([]byte, digestChunkSize)
	if _, err := io.CopyBuffer(h, struct{ io.Reader }{r}, buf); err != nil {
		return "", ioError("read", err)
	}
	return NormalizeDigest(hex.EncodeToString(h.Sum(nil))), nil
}

func DigestFile(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", ioError("open", err)
	}
	defer f.Close()

	return DigestReader(f)
}
