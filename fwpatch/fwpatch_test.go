package fwpatch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type logEntry struct {
	Level   Level
	Message string
}

type captureLogger struct {
	entries []logEntry
}

func (c *captureLogger) logf(level Level, format string, param ...interface{}) {
	c.entries = append(c.entries, logEntry{Level: level, Message: fmt.Sprintf(format, param...)})
}

func (c *captureLogger) Logger() Logger {
	return LogFunc(c.logf)
}

func (c *captureLogger) count(level Level) int {
	n := 0
	for _, m := range c.entries {
		if m.Level == level {
			n++
		}
	}
	return n
}

func (c *captureLogger) contains(level Level, substr string) bool {
	for _, m := range c.entries {
		if m.Level == level && strings.Contains(m.Message, substr) {
			return true
		}
	}
	return false
}

func sum(data []byte) Digest {
	h := sha256.Sum256(data)
	return NormalizeDigest(hex.EncodeToString(h[:]))
}

func writeFile(t *testing.T, dir string, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

/* 64 bytes, 0xAA at 0x10 */
func testImage() []byte {
	img := make([]byte, 64)
	for i := range img {
		img[i] = byte(i)
	}
	img[0x10] = 0xAA
	return img
}
