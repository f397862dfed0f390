package irc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/tanq16/xdcc/internal/utils"
)

// LineReader extracts CRLF or LF terminated lines from a stream. Bytes read
// past a terminator stay buffered for the next call.
type LineReader struct {
	r *bufio.Reader
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReaderSize(r, 4096)}
}

// ReadLine blocks until a full line is available and returns it without the
// terminator. A stream that ends before a terminator yields an error wrapping
// utils.ErrConnection; the partial line is discarded.
func (l *LineReader) ReadLine() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			if line != "" {
				return "", fmt.Errorf("%w: stream closed mid-line after %d bytes", utils.ErrConnection, len(line))
			}
			return "", fmt.Errorf("%w: stream closed", utils.ErrConnection)
		}
		return "", fmt.Errorf("%w: %w", utils.ErrConnection, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
