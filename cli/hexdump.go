package main

import (
	"fmt"
	"io"
	"os"

	"github.com/BertoldVdb/trw450-tools/fwpatch"
	"github.com/fatih/color"
)

func hexdump(offset int, data []byte, mark []bool, red *color.Color) string {
	var result string

	for len(data) > 0 {
		l := len(data)
		if l > 32 {
			l = 32
		}
		work := data[:l]
		data = data[l:]
		var workMark []bool
		if mark != nil {
			workMark = mark[:l]
			mark = mark[l:]
		}

		var workHex string
		var workAscii string
		for i := 0; i < 32; i++ {
			m := byte(0)
			valid := i < len(work)
			delta := false
			if valid {
				m = work[i]
				if workMark != nil && workMark[i] {
					delta = true
				}
			}

			if valid {
				if delta {
					workHex += red.Sprintf("%02x ", m)
				} else {
					workHex += fmt.Sprintf("%02x ", m)
				}

				if m < 32 || m > 126 {
					m = '.'
				}
				if delta {
					workAscii += red.Sprintf("%c", m)
				} else {
					workAscii += fmt.Sprintf("%c", m)
				}
			} else {
				workHex += "   "
				workAscii += " "
			}
			if i%8 == 7 {
				workHex += " "
			}
		}

		result += fmt.Sprintf("%08x  %s|%s|\n", offset, workHex, workAscii)
		offset += l
	}

	return result
}

/* Window around a patch, aligned to the 32 byte rows of the dump */
func dumpWindow(e fwpatch.PatchEntry, context int, size int64) (int64, int64) {
	start := int64(e.Offset) - int64(context)
	if start < 0 {
		start = 0
	}
	start &^= 31

	end := int64(e.Offset) + int64(len(e.Replacement)) + int64(context)
	if end > size {
		end = size
	}
	return start, end
}

func dumpChanges(w io.Writer, original string, patched string, applied []fwpatch.PatchEntry, context int, colors bool) error {
	in, err := os.Open(original)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Open(patched)
	if err != nil {
		return err
	}
	defer out.Close()

	st, err := out.Stat()
	if err != nil {
		return err
	}

	red := newColor(colors, color.FgRed)
	for _, e := range applied {
		start, end := dumpWindow(e, context, st.Size())

		before := make([]byte, end-start)
		after := make([]byte, end-start)
		if _, err := in.ReadAt(before, start); err != nil {
			return err
		}
		if _, err := out.ReadAt(after, start); err != nil {
			return err
		}

		mark := make([]bool, len(after))
		for i := range after {
			mark[i] = before[i] != after[i]
		}

		fmt.Fprintf(w, "Patch %s\n", e)
		fmt.Fprintln(w, hexdump(int(start), after, mark, red))
	}

	return nil
}
