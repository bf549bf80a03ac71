package validator

import (
	"fmt"
	"mime"
	"reflect"
	"strings"

	"github.com/dustin/go-humanize"
)

// FileDescriptor describes an uploaded file. File never modifies it.
type FileDescriptor interface {
	Size() int64
	ClientFilename() string
	ClientMediaType() string
}

// FileConfig configures File. Zero values disable the respective check.
type FileConfig struct {
	// MinSize is the minimum file size in bytes.
	MinSize int64 `mapstructure:"minSize"`
	// MaxSize is the maximum file size in bytes.
	MaxSize int64 `mapstructure:"maxSize"`
	// MaxFileNameLength limits the client file name, in characters.
	MaxFileNameLength int `mapstructure:"maxFileNameLength"`
	// MimeTypes lists the accepted media types. Each entry is a full type
	// ("image/png"), a wildcard ("image/*") or an extension ("pdf", ".pdf").
	// Entries may contain several comma separated tokens.
	MimeTypes []string `mapstructure:"mimeType"`
	// StrictMimeTypes replaces substring matching with exact matching.
	StrictMimeTypes bool `mapstructure:"strictMimeTypes"`
	// ValidateEmpty disables the empty value shortcut.
	ValidateEmpty bool `mapstructure:"validateEmpty"`
}

// File validates one uploaded file or a slice of them against size limits,
// file name length and accepted media types.
//
// Every file is checked completely: all failing conditions of all files are
// reported, the result is valid only if no file failed.
type File struct {
	cfg       FileConfig
	mimeTypes []string
	name      *StringLength
}

func NewFile(cfg FileConfig) (*File, error) {
	if cfg.MinSize < 0 || cfg.MaxSize < 0 || cfg.MaxFileNameLength < 0 {
		return nil, fmt.Errorf("%w: sizes must not be negative", ErrInvalidConfig)
	}
	if cfg.MaxSize > 0 && cfg.MinSize > cfg.MaxSize {
		return nil, fmt.Errorf("%w: the minSize must be less than or equal to the maxSize, but minSize: %d and maxSize: %d given",
			ErrInvalidBounds, cfg.MinSize, cfg.MaxSize)
	}

	v := &File{cfg: cfg, mimeTypes: splitMimeTypes(cfg.MimeTypes)}
	if cfg.MaxFileNameLength > 0 {
		name, err := NewStringLength(StringLengthConfig{Max: cfg.MaxFileNameLength})
		if err != nil {
			return nil, err
		}
		v.name = name
	}
	return v, nil
}

// MimeTypes returns the normalized list of accepted media type tokens.
func (v *File) MimeTypes() []string {
	return append([]string(nil), v.mimeTypes...)
}

// Validate implements Validator. value is a FileDescriptor or a slice of
// values implementing FileDescriptor.
func (v *File) Validate(value any) Result {
	if !v.cfg.ValidateEmpty && isEmpty(value) {
		return pass()
	}

	files, ok := fileDescriptors(value)
	if !ok || len(files) == 0 {
		return fail("validation.file", "'%{value}' is not an uploaded file", map[string]any{"value": value})
	}

	var m Messages
	valid := true
	for _, f := range files {
		if !v.validateFile(f, &m) {
			valid = false
		}
	}
	return m.Result(valid)
}

func (v *File) validateFile(f FileDescriptor, m *Messages) bool {
	valid := true
	name := f.ClientFilename()

	if v.cfg.MaxSize > 0 && f.Size() > v.cfg.MaxSize {
		m.Addf("validation.file_max_size", "File %{file} is bigger than the allowed maximum size of %{size}", map[string]any{
			"file": name,
			"size": humanize.IBytes(uint64(v.cfg.MaxSize)),
		})
		valid = false
	}

	if v.cfg.MinSize > 0 && f.Size() < v.cfg.MinSize {
		m.Addf("validation.file_min_size", "File %{file} is smaller than the minimum required size of %{size}", map[string]any{
			"file": name,
			"size": humanize.IBytes(uint64(v.cfg.MinSize)),
		})
		valid = false
	}

	if v.name != nil && !v.name.Validate(name).Valid {
		m.Addf("validation.file_name_length", "File name is longer than the allowed name length of %{max} characters.", map[string]any{
			"file": name,
			"max":  v.cfg.MaxFileNameLength,
		})
		valid = false
	}

	if len(v.mimeTypes) > 0 && !v.matchesMimeType(f.ClientMediaType()) {
		m.Addf("validation.file_mime_type", "File %{file} is of type %{type}. Only %{allowed} allowed.", map[string]any{
			"file":    name,
			"type":    f.ClientMediaType(),
			"allowed": strings.Join(v.mimeTypes, ", "),
		})
		valid = false
	}

	return valid
}

func (v *File) matchesMimeType(mediaType string) bool {
	for _, token := range v.mimeTypes {
		if v.cfg.StrictMimeTypes {
			if matchMimeStrict(token, mediaType) {
				return true
			}
			continue
		}
		if matchMimeLoose(token, mediaType) {
			return true
		}
	}
	return false
}

// matchMimeLoose uses substring matching, so "application/pdf" also accepts
// "application/pdf-extended" and "png" accepts "image/pngfoo".
func matchMimeLoose(token, mediaType string) bool {
	if pos := strings.Index(token, "/*"); pos != -1 {
		return strings.Contains(mediaType, token[:pos])
	}
	if !strings.Contains(token, "/") {
		return strings.Contains(mediaType, strings.Trim(token, "."))
	}
	return strings.Contains(mediaType, token)
}

func matchMimeStrict(token, mediaType string) bool {
	base, _, err := mime.ParseMediaType(mediaType)
	if err != nil {
		return false
	}
	token = strings.ToLower(token)

	if prefix, ok := strings.CutSuffix(token, "/*"); ok {
		return strings.HasPrefix(base, prefix+"/")
	}
	if !strings.Contains(token, "/") {
		ext := strings.Trim(token, ".")
		if _, subtype, ok := strings.Cut(base, "/"); ok && subtype == ext {
			return true
		}
		byExt, _, err := mime.ParseMediaType(mime.TypeByExtension("." + ext))
		return err == nil && byExt == base
	}
	return base == token
}

func splitMimeTypes(types []string) []string {
	var out []string
	for _, entry := range types {
		for token := range strings.SplitSeq(strings.ReplaceAll(entry, " ", ""), ",") {
			if token != "" {
				out = append(out, token)
			}
		}
	}
	return out
}

func fileDescriptors(value any) ([]FileDescriptor, bool) {
	switch f := value.(type) {
	case FileDescriptor:
		if isNilDescriptor(f) {
			return nil, false
		}
		return []FileDescriptor{f}, true
	case []FileDescriptor:
		for _, fd := range f {
			if isNilDescriptor(fd) {
				return nil, false
			}
		}
		return f, true
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}

	files := make([]FileDescriptor, 0, rv.Len())
	for i := range rv.Len() {
		f, ok := rv.Index(i).Interface().(FileDescriptor)
		if !ok || isNilDescriptor(f) {
			return nil, false
		}
		files = append(files, f)
	}
	return files, true
}

// isNilDescriptor reports a nil interface or an interface holding a nil pointer.
func isNilDescriptor(f FileDescriptor) bool {
	if f == nil {
		return true
	}
	rv := reflect.ValueOf(f)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}
