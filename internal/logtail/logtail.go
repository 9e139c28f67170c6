package logtail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Extract fills buf with the most recent len(buf) bytes of r and reports
// how many bytes were read plus the offset of the start of the final
// (possibly partial) line within buf.
//
// The reader is positioned at max(0, size-len(buf)); when that seek is
// rejected the reader degrades to its start rather than erroring. Files
// smaller than the buffer yield their entire content. An empty buffer
// yields an empty tail with no error.
func Extract(r io.ReadSeeker, buf []byte) (n, lastLine int, err error) {
	if len(buf) == 0 {
		return 0, 0, nil
	}

	if _, err := r.Seek(-int64(len(buf)), io.SeekEnd); err != nil {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return 0, 0, fmt.Errorf("rewind: %w", err)
		}
	}

	for n < len(buf) {
		m, rerr := r.Read(buf[n:])
		n += m
		if rerr != nil {
			if errors.Is(rerr, io.EOF) {
				break
			}
			return n, LastLineStart(buf[:n]), fmt.Errorf("read tail: %w", rerr)
		}
		if m == 0 {
			break
		}
	}

	return n, LastLineStart(buf[:n]), nil
}

// LastLineStart returns the offset immediately following the most recent
// newline that has at least one byte after it, or 0 when no such newline
// exists. A buffer ending in a newline therefore still points at the
// line that newline terminates.
func LastLineStart(b []byte) int {
	if len(b) < 2 {
		return 0
	}
	if i := bytes.LastIndexByte(b[:len(b)-1], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

// LastLine returns the final line of b as text, with the trailing line
// terminator removed.
func LastLine(b []byte) string {
	line := b[LastLineStart(b):]
	line = bytes.TrimRight(line, "\r\n")
	return string(line)
}
