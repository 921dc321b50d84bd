package store

import (
	"bufio"
	"fmt"
	"os"
)

// AppendFile is a buffered handle on a file opened in append mode.
// Writes go to the buffer; Flush makes them visible to other readers.
// An AppendFile is owned by a single writer and is not safe for concurrent use.
type AppendFile struct {
	file   *os.File
	writer *bufio.Writer
	path   string
	size   int64 // size of the file when it was opened
}

// OpenAppend opens path for appending, creating it if needed.
func OpenAppend(path string) (*AppendFile, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	return &AppendFile{
		file:   file,
		writer: bufio.NewWriterSize(file, 64*1024), // 64KB buffer
		path:   path,
		size:   info.Size(),
	}, nil
}

// Write implements io.Writer on the buffer.
func (af *AppendFile) Write(p []byte) (int, error) {
	return af.writer.Write(p)
}

// WriteString appends s to the buffer.
func (af *AppendFile) WriteString(s string) (int, error) {
	return af.writer.WriteString(s)
}

// Flush writes any buffered data to the file.
func (af *AppendFile) Flush() error {
	if err := af.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", af.path, err)
	}
	return nil
}

// Sync flushes the buffer and commits the file to stable storage.
func (af *AppendFile) Sync() error {
	if err := af.Flush(); err != nil {
		return err
	}
	if err := af.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", af.path, err)
	}
	return nil
}

// Close flushes buffered data and closes the file.
func (af *AppendFile) Close() error {
	if err := af.writer.Flush(); err != nil {
		af.file.Close() // Try to close anyway
		return fmt.Errorf("failed to flush %s on close: %w", af.path, err)
	}

	if err := af.file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", af.path, err)
	}

	return nil
}

// Path returns the filesystem path of the file.
func (af *AppendFile) Path() string {
	return af.path
}

// Existed reports whether the file already had content when it was opened.
func (af *AppendFile) Existed() bool {
	return af.size > 0
}
