package file

import "errors"

var (
	ErrNilFileHeader = errors.New("file header is nil")

	// File system errors
	ErrFileNotFound = errors.New("file not found")
	ErrIsDirectory  = errors.New("path is a directory")

	// I/O operation errors - wrapped with context for debugging
	ErrFailedToOpenFile       = errors.New("failed to open file")
	ErrFailedToStatPath       = errors.New("failed to stat path")
	ErrFailedToDetectMIMEType = errors.New("failed to detect MIME type")
)
