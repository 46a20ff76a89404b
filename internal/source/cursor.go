// Package source resolves line numbers of a source file to their text.
//
// A Cursor reads forward through the file and remembers the last line it
// read. Requests for a line behind the cursor rewind the file to its start
// and scan forward again, so line numbers may arrive in any order.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/YusovID/lcov-branch-filter/internal/apperrors"
)

// File is an open source file.
type File interface {
	io.ReadSeekCloser
}

// Opener opens source files by the path found in a trace.
type Opener interface {
	Open(path string) (File, error)
}

// OSOpener opens source files from the local filesystem.
type OSOpener struct{}

func (OSOpener) Open(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return f, nil
}

type Cursor struct {
	path    string
	file    File
	reader  *bufio.Reader
	line    int
	text    string
	rewinds int
}

// Open opens path through opener and positions the cursor before line 1.
func Open(opener Opener, path string) (*Cursor, error) {
	f, err := opener.Open(path)
	if err != nil {
		return nil, &apperrors.OpenSourceError{Path: path, Err: err}
	}

	return &Cursor{
		path:   path,
		file:   f,
		reader: bufio.NewReader(f),
	}, nil
}

func (c *Cursor) Path() string { return c.path }

// Rewinds reports how many times the cursor went back to the start of the file.
func (c *Cursor) Rewinds() int { return c.rewinds }

// Line returns the text of the 1-based line n, line ending included.
// It fails with *apperrors.SourceMismatchError when the file ends first.
func (c *Cursor) Line(n int) (string, error) {
	const op = "source.Cursor.Line"

	if n < 1 {
		return "", fmt.Errorf("%s: line %d out of range", op, n)
	}

	if n < c.line {
		if err := c.rewind(); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
	}

	for c.line != n {
		text, err := c.reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%s: failed to read '%s': %w", op, c.path, err)
		}

		if text == "" {
			return "", &apperrors.SourceMismatchError{Path: c.path, Line: n, Lines: c.line}
		}

		c.line++
		c.text = text
	}

	return c.text, nil
}

func (c *Cursor) rewind() error {
	if _, err := c.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind '%s': %w", c.path, err)
	}

	c.reader.Reset(c.file)
	c.line = 0
	c.text = ""
	c.rewinds++

	return nil
}

func (c *Cursor) Close() error {
	return c.file.Close()
}
