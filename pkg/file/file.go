package file

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrymomot/checkkit/pkg/validator"
)

var _ validator.FileDescriptor = Descriptor{}

// Descriptor describes a file as the client presented it.
type Descriptor struct {
	Name      string
	MediaType string
	Bytes     int64
}

func (d Descriptor) Size() int64             { return d.Bytes }
func (d Descriptor) ClientFilename() string  { return d.Name }
func (d Descriptor) ClientMediaType() string { return d.MediaType }

type options struct {
	detect bool
}

// Option configures FromHeader.
type Option func(*options)

// WithContentDetection makes FromHeader ignore the declared Content-Type and
// always detect the media type from the file content.
func WithContentDetection() Option {
	return func(o *options) {
		o.detect = true
	}
}

// FromHeader builds a Descriptor from a multipart upload.
// The declared Content-Type is used unless it is missing or generic
// (application/octet-stream), in which case the content is sniffed.
//
// Example:
//
//	files := r.MultipartForm.File["attachments"]
//	descs, err := file.FromHeaders(files)
//	res := v.Validate(descs)
func FromHeader(fh *multipart.FileHeader, opts ...Option) (Descriptor, error) {
	if fh == nil {
		return Descriptor{}, ErrNilFileHeader
	}

	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	d := Descriptor{
		Name:      SanitizeFilename(fh.Filename),
		MediaType: fh.Header.Get("Content-Type"),
		Bytes:     fh.Size,
	}

	if o.detect || d.MediaType == "" || d.MediaType == "application/octet-stream" {
		f, err := fh.Open()
		if err != nil {
			return Descriptor{}, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
		}
		defer func() { _ = f.Close() }()

		mt, err := DetectMediaType(f)
		if err != nil {
			return Descriptor{}, err
		}
		d.MediaType = mt
	}

	return d, nil
}

// FromHeaders converts every header, stopping at the first error.
func FromHeaders(fhs []*multipart.FileHeader, opts ...Option) ([]Descriptor, error) {
	out := make([]Descriptor, 0, len(fhs))
	for _, fh := range fhs {
		d, err := FromHeader(fh, opts...)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

// FromPath describes a local file. The media type is always detected from content.
func FromPath(path string) (Descriptor, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Descriptor{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Descriptor{}, fmt.Errorf("%w: %v", ErrFailedToStatPath, err)
	}
	if info.IsDir() {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	mt, err := DetectMediaType(f)
	if err != nil {
		return Descriptor{}, err
	}

	return Descriptor{
		Name:      info.Name(),
		MediaType: mt,
		Bytes:     info.Size(),
	}, nil
}

// DetectMediaType sniffs the media type from the beginning of r using magic
// numbers. Text types carry a charset parameter, e.g. "text/plain; charset=utf-8".
func DetectMediaType(r io.Reader) (string, error) {
	mt, err := mimetype.DetectReader(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToDetectMIMEType, err)
	}
	return mt.String(), nil
}

// SanitizeFilename removes any path components and NUL bytes from a client
// supplied file name. Returns "unnamed" for empty or special directory references.
//
// Example:
//
//	safe := file.SanitizeFilename("../../../etc/passwd") // Returns "passwd"
//	safe = file.SanitizeFilename("C:\\Windows\\file.txt") // Returns "file.txt"
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}
