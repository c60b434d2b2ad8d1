package cli

import (
	"errors"
	"io"
	"strings"
)

var errStdinUnavailable = errors.New("stdin unavailable")

// readPasswordLine reads one line byte by byte so that nothing past the
// newline is consumed; a second prompt on the same input still sees its line.
func readPasswordLine(input io.Reader) ([]byte, error) {
	var line []byte
	buffer := make([]byte, 1)
	for {
		n, err := input.Read(buffer)
		if n > 0 {
			if buffer[0] == '\n' {
				break
			}
			line = append(line, buffer[0])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return []byte(strings.TrimRight(string(line), "\r")), nil
}
