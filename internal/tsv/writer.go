// SPDX-License-Identifier: Apache-2.0

package tsv

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileWriter writes tab delimited rows to a temporary file next to the
// destination, which only replaces the destination on Commit. An aborted or
// failed write never leaves a partial file at the destination path.
type FileWriter struct {
	path string
	tmp  *os.File
	buf  *bufio.Writer
	done bool
}

var errWriterClosed = errors.New("tsv writer already committed or aborted")

func NewFileWriter(path string) (*FileWriter, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("creating temporary output file: %w", err)
	}
	return &FileWriter{
		path: path,
		tmp:  tmp,
		buf:  bufio.NewWriter(tmp),
	}, nil
}

// Path returns the destination path.
func (w *FileWriter) Path() string {
	return w.path
}

// WriteLine writes a raw line, used for comment headers.
func (w *FileWriter) WriteLine(line string) error {
	if w.done {
		return errWriterClosed
	}
	if _, err := w.buf.WriteString(line); err != nil {
		return err
	}
	return w.buf.WriteByte('\n')
}

// Write writes one row. Values are written as is, tabs and newlines inside
// values are replaced by spaces to keep the row layout intact.
func (w *FileWriter) Write(values []string) error {
	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = valueReplacer.Replace(v)
	}
	return w.WriteLine(strings.Join(escaped, "\t"))
}

var valueReplacer = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ")

// Commit flushes the buffered rows and moves the temporary file to the
// destination path.
func (w *FileWriter) Commit() error {
	if w.done {
		return errWriterClosed
	}
	w.done = true

	if err := w.buf.Flush(); err != nil {
		w.cleanup()
		return fmt.Errorf("flushing output file: %w", err)
	}
	if err := w.tmp.Close(); err != nil {
		os.Remove(w.tmp.Name())
		return fmt.Errorf("closing output file: %w", err)
	}
	if err := os.Rename(w.tmp.Name(), w.path); err != nil {
		os.Remove(w.tmp.Name())
		return fmt.Errorf("moving output file into place: %w", err)
	}
	return nil
}

// Abort discards everything written so far. It is safe to call after Commit.
func (w *FileWriter) Abort() {
	if w.done {
		return
	}
	w.done = true
	w.cleanup()
}

func (w *FileWriter) cleanup() {
	w.tmp.Close()
	os.Remove(w.tmp.Name())
}
