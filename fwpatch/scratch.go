package fwpatch

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

/* A private copy of the input that is patched in place and renamed over the output on success */
type scratchFile struct {
	*os.File

	path      string
	size      int64
	committed bool
}

func newScratch(input string, dir string) (*scratchFile, error) {
	in, err := os.Open(input)
	if err != nil {
		return nil, ioError("open input", err)
	}
	defer in.Close()

	st, err := in.Stat()
	if err != nil {
		return nil, ioError("stat input", err)
	}

	if dir == "" {
		dir = filepath.Dir(input)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(input)+".*.tmp")
	if err != nil {
		return nil, ioError("create scratch", err)
	}

	s := &scratchFile{
		File: f,
		path: f.Name(),
		size: st.Size(),
	}

	if _, err := io.Copy(f, in); err != nil {
		s.release(false)
		return nil, ioError("copy input", err)
	}
	if err := f.Chmod(st.Mode().Perm()); err != nil {
		s.release(false)
		return nil, ioError("chmod scratch", err)
	}

	return s, nil
}

func (s *scratchFile) Path() string {
	return s.path
}

func (s *scratchFile) Size() int64 {
	return s.size
}

/* Flush and close, the content stays on disk */
func (s *scratchFile) finish() error {
	if err := s.Sync(); err != nil {
		s.Close()
		return ioError("sync scratch", err)
	}
	if err := s.Close(); err != nil {
		return ioError("close scratch", err)
	}
	return nil
}

func (s *scratchFile) commit(output string, input string) error {
	if st, err := os.Stat(input); err == nil {
		os.Chtimes(s.path, st.ModTime(), st.ModTime())
	}

	if err := os.Rename(s.path, output); err != nil {
		/* Different filesystem, fall back to copying */
		if err := copyFile(s.path, output); err != nil {
			return err
		}
		os.Remove(s.path)
	}

	s.committed = true
	return nil
}

/* Drops the scratch file unless it was committed or keep is set. Returns true if a file was left behind. */
func (s *scratchFile) release(keep bool) bool {
	s.Close()
	if s.committed {
		return false
	}
	if keep {
		return true
	}
	os.Remove(s.path)
	return false
}

func copyFile(src string, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return ioError("open", err)
	}
	defer in.Close()

	st, err := in.Stat()
	if err != nil {
		return ioError("stat", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, st.Mode().Perm())
	if err != nil {
		return ioError("create output", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return ioError("copy output", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return ioError("close output", err)
	}

	os.Chtimes(dst, st.ModTime(), st.ModTime())
	return nil
}

/* <dir>/<stem>_patched<ext>, leading dots are part of the stem */
func OutputPath(input string) string {
	dir, base := filepath.Split(input)
	ext := filepath.Ext(base)
	if strings.TrimLeft(base, ".") == strings.TrimPrefix(ext, ".") {
		ext = ""
	}
	stem := strings.TrimSuffix(base, ext)
	return dir + stem + "_patched" + ext
}
