// Package fileinfo implements the plain file utilities behind the file
// subcommand.
package fileinfo

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ErrorKind classifies file access failures.
type ErrorKind int

const (
	ErrNotFound ErrorKind = iota
	ErrPermissionDenied
	ErrInvalidPath
	ErrRead
	ErrOther
)

// Error reports a failed file operation.
type Error struct {
	kind   ErrorKind
	detail string
	err    error
}

func (e *Error) Error() string {
	switch e.kind {
	case ErrNotFound:
		return "File not found: " + e.detail
	case ErrPermissionDenied:
		return "Permission denied: " + e.detail
	case ErrInvalidPath:
		return "Invalid path: " + e.detail
	case ErrRead:
		return "Error reading file: " + e.detail
	default:
		return "Error: " + e.detail
	}
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error { return e.err }

// Kind returns the failure classification.
func (e *Error) Kind() ErrorKind { return e.kind }

// Info returns the path, size and readonly flag of a file.
func Info(path string) (string, error) {
	info, err := statFile(path)
	if err != nil {
		return "", err
	}
	readonly := info.Mode().Perm()&0o222 == 0
	return fmt.Sprintf("Path: %s\nSize: %d bytes\nReadonly: %v", path, info.Size(), readonly), nil
}

// Lines reports how many lines the file has.
func Lines(path string) (string, error) {
	if _, err := statFile(path); err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", openError(path, err)
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		count++
	}
	if err := scanner.Err(); err != nil {
		return "", &Error{kind: ErrRead, detail: "Failed to read line: " + err.Error(), err: err}
	}
	return fmt.Sprintf("File %s has %d lines", path, count), nil
}

// Size reports the file size in bytes.
func Size(path string) (string, error) {
	info, err := statFile(path)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("File %s has %d bytes", path, info.Size()), nil
}

// Head returns the first n lines, each newline-terminated.
func Head(path string, n int) (string, error) {
	if _, err := statFile(path); err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", openError(path, err)
	}
	defer f.Close()

	var b strings.Builder
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for i := 0; i < n && scanner.Scan(); i++ {
		b.WriteString(scanner.Text())
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", &Error{kind: ErrRead, detail: "Failed to read line: " + err.Error(), err: err}
	}
	return b.String(), nil
}

func statFile(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, &Error{kind: ErrNotFound, detail: path}
		case os.IsPermission(err):
			return nil, &Error{kind: ErrPermissionDenied, detail: path, err: err}
		default:
			return nil, &Error{kind: ErrOther, detail: err.Error(), err: err}
		}
	}
	if !info.Mode().IsRegular() {
		return nil, &Error{kind: ErrInvalidPath, detail: path + " is not a file"}
	}
	return info, nil
}

func openError(path string, err error) *Error {
	return &Error{kind: ErrRead, detail: fmt.Sprintf("Failed to open %s: %v", path, err), err: err}
}
