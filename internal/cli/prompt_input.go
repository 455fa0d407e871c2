package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
)

func promptYesNoIO(in io.Reader, out io.Writer, message string) bool {
	return promptYesNoWithDefaultIO(in, out, message, false)
}

func promptYesNoWithDefaultIO(in io.Reader, out io.Writer, message string, defaultYes bool) bool {
	if out != nil {
		fmt.Fprint(out, message)
	}

	text, err := readPromptLine(in)
	if err != nil {
		return false
	}

	text = strings.TrimSpace(strings.ToLower(text))
	if text == "" {
		return defaultYes
	}
	return text == "y" || text == "yes"
}

// readPromptLine reads until either LF or CR so Enter works in normal and raw terminal modes.
// A CRLF pair therefore yields an extra empty line; readLines folds it.
func readPromptLine(in io.Reader) (string, error) {
	if in == nil {
		return "", io.EOF
	}

	var buf []byte
	var one [1]byte

	for {
		n, err := in.Read(one[:])
		if n > 0 {
			switch one[0] {
			case '\n', '\r':
				return string(buf), nil
			default:
				buf = append(buf, one[0])
			}
		}

		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}
	}
}

// readLines feeds lines from in to the returned channel until EOF, a read
// error or ctx ends, then closes it. A CR immediately followed by LF counts
// as one line ending.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		r := &crlfReader{r: in}
		for {
			line, err := readPromptLine(r)
			if err != nil && line == "" {
				return
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}

// crlfReader drops an LF that directly follows a CR.
type crlfReader struct {
	r     io.Reader
	sawCR bool
}

func (c *crlfReader) Read(p []byte) (int, error) {
	for {
		n, err := c.r.Read(p[:min(len(p), 1)])
		if n == 0 {
			return 0, err
		}
		prevCR := c.sawCR
		c.sawCR = p[0] == '\r'
		if prevCR && p[0] == '\n' {
			if err != nil {
				return 0, err
			}
			continue
		}
		return n, err
	}
}
