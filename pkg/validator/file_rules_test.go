package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/checkkit/pkg/validator"
)

type upload struct {
	name      string
	mediaType string
	size      int64
}

func (u upload) Size() int64             { return u.size }
func (u upload) ClientFilename() string  { return u.name }
func (u upload) ClientMediaType() string { return u.mediaType }

func newFile(t *testing.T, cfg validator.FileConfig) *validator.File {
	t.Helper()
	v, err := validator.NewFile(cfg)
	require.NoError(t, err)
	return v
}

func TestNewFile(t *testing.T) {
	t.Run("rejects negative sizes", func(t *testing.T) {
		_, err := validator.NewFile(validator.FileConfig{MinSize: -1})
		assert.ErrorIs(t, err, validator.ErrInvalidConfig)
	})

	t.Run("rejects min above max", func(t *testing.T) {
		_, err := validator.NewFile(validator.FileConfig{MinSize: 10, MaxSize: 5})
		assert.ErrorIs(t, err, validator.ErrInvalidBounds)
	})

	t.Run("splits comma separated mime types", func(t *testing.T) {
		v := newFile(t, validator.FileConfig{MimeTypes: []string{"image/*, pdf", "text/plain"}})
		assert.Equal(t, []string{"image/*", "pdf", "text/plain"}, v.MimeTypes())
	})
}

func TestFile_Size(t *testing.T) {
	f := upload{name: "report.pdf", mediaType: "application/pdf", size: 500}

	t.Run("min size satisfied", func(t *testing.T) {
		assert.True(t, newFile(t, validator.FileConfig{MinSize: 10}).Validate(f).Valid)
	})

	t.Run("min size violated", func(t *testing.T) {
		res := newFile(t, validator.FileConfig{MinSize: 700}).Validate(f)
		assert.False(t, res.Valid)
		require.Len(t, res.Messages(), 1)
		assert.Contains(t, res.Messages()[0], "smaller than")
		assert.Equal(t, "File report.pdf is smaller than the minimum required size of 700 B", res.Messages()[0])
	})

	t.Run("max size violated", func(t *testing.T) {
		res := newFile(t, validator.FileConfig{MaxSize: 300}).Validate(f)
		assert.False(t, res.Valid)
		require.Len(t, res.Messages(), 1)
		assert.Contains(t, res.Messages()[0], "bigger than")
		assert.Equal(t, "validation.file_max_size", res.Errors[0].TranslationKey)
	})

	t.Run("max size satisfied", func(t *testing.T) {
		assert.True(t, newFile(t, validator.FileConfig{MaxSize: 700}).Validate(f).Valid)
	})

	t.Run("sizes are humanized", func(t *testing.T) {
		big := upload{name: "movie.mp4", mediaType: "video/mp4", size: 3 << 20}
		res := newFile(t, validator.FileConfig{MaxSize: 2 << 20}).Validate(big)
		assert.Equal(t, []string{"File movie.mp4 is bigger than the allowed maximum size of 2.0 MiB"}, res.Messages())
	})
}

func TestFile_NameLength(t *testing.T) {
	v := newFile(t, validator.FileConfig{MaxFileNameLength: 8})

	assert.True(t, v.Validate(upload{name: "a.txt", mediaType: "text/plain"}).Valid)

	res := v.Validate(upload{name: "very-long-name.txt", mediaType: "text/plain"})
	assert.False(t, res.Valid)
	assert.Equal(t, []string{"File name is longer than the allowed name length of 8 characters."}, res.Messages())
}

func TestFile_MimeTypes(t *testing.T) {
	check := func(t *testing.T, token, mediaType string) bool {
		t.Helper()
		v := newFile(t, validator.FileConfig{MimeTypes: []string{token}})
		return v.Validate(upload{name: "f", mediaType: mediaType, size: 1}).Valid
	}

	t.Run("wildcard", func(t *testing.T) {
		assert.True(t, check(t, "image/*", "image/png"))
		assert.True(t, check(t, "image/*", "image/jpeg"))
		assert.False(t, check(t, "image/*", "application/pdf"))
	})

	t.Run("extension", func(t *testing.T) {
		assert.True(t, check(t, ".pdf", "application/pdf"))
		assert.True(t, check(t, "pdf", "application/pdf"))
		assert.False(t, check(t, ".pdf", "image/png"))
	})

	t.Run("full type uses substring matching", func(t *testing.T) {
		assert.True(t, check(t, "application/pdf", "application/pdf"))
		assert.True(t, check(t, "application/pdf", "application/pdf-extended"))
		assert.True(t, check(t, "png", "image/pngsomething"))
		assert.False(t, check(t, "application/pdf", "application/zip"))
	})

	t.Run("any token may match", func(t *testing.T) {
		v := newFile(t, validator.FileConfig{MimeTypes: []string{"image/*,pdf"}})
		assert.True(t, v.Validate(upload{name: "a", mediaType: "application/pdf"}).Valid)
		assert.True(t, v.Validate(upload{name: "a", mediaType: "image/gif"}).Valid)
	})

	t.Run("message lists the actual and the allowed types", func(t *testing.T) {
		v := newFile(t, validator.FileConfig{MimeTypes: []string{"image/*", "pdf"}})
		res := v.Validate(upload{name: "notes.txt", mediaType: "text/plain"})
		assert.Equal(t, []string{"File notes.txt is of type text/plain. Only image/*, pdf allowed."}, res.Messages())
	})
}

func TestFile_StrictMimeTypes(t *testing.T) {
	check := func(t *testing.T, token, mediaType string) bool {
		t.Helper()
		v := newFile(t, validator.FileConfig{MimeTypes: []string{token}, StrictMimeTypes: true})
		return v.Validate(upload{name: "f", mediaType: mediaType, size: 1}).Valid
	}

	assert.True(t, check(t, "application/pdf", "application/pdf"))
	assert.True(t, check(t, "application/pdf", "application/pdf; charset=binary"))
	assert.False(t, check(t, "application/pdf", "application/pdf-extended"))

	assert.True(t, check(t, "image/*", "image/png"))
	assert.False(t, check(t, "image/*", "imagery/png"))

	assert.True(t, check(t, "png", "image/png"))
	assert.False(t, check(t, "png", "image/pngsomething"))
	assert.True(t, check(t, ".pdf", "application/pdf"))
}

func TestFile_Multiple(t *testing.T) {
	v := newFile(t, validator.FileConfig{MinSize: 100})

	t.Run("reports only failing files", func(t *testing.T) {
		files := []upload{
			{name: "small.txt", mediaType: "text/plain", size: 10},
			{name: "ok.txt", mediaType: "text/plain", size: 200},
		}

		res := v.Validate(files)
		assert.False(t, res.Valid)
		require.Len(t, res.Messages(), 1)
		assert.Contains(t, res.Messages()[0], "small.txt")
		assert.NotContains(t, res.Messages()[0], "ok.txt")
	})

	t.Run("aggregates messages across files", func(t *testing.T) {
		files := []validator.FileDescriptor{
			upload{name: "a.txt", size: 1},
			upload{name: "b.txt", size: 2},
		}
		res := v.Validate(files)
		assert.False(t, res.Valid)
		assert.Len(t, res.Messages(), 2)
	})

	t.Run("collects every failing check of a file", func(t *testing.T) {
		strict := newFile(t, validator.FileConfig{MinSize: 100, MaxFileNameLength: 3, MimeTypes: []string{"image/*"}})
		res := strict.Validate(upload{name: "document.txt", mediaType: "text/plain", size: 1})
		assert.False(t, res.Valid)
		assert.Len(t, res.Messages(), 3)
	})

	t.Run("all valid", func(t *testing.T) {
		files := []upload{{name: "a", size: 100}, {name: "b", size: 101}}
		assert.True(t, v.Validate(files).Valid)
	})
}

func TestFile_Input(t *testing.T) {
	v := newFile(t, validator.FileConfig{MaxSize: 10})

	t.Run("empty values are skipped", func(t *testing.T) {
		assert.True(t, v.Validate(nil).Valid)
		assert.True(t, v.Validate([]upload{}).Valid)
	})

	t.Run("empty values fail when requested", func(t *testing.T) {
		strict := newFile(t, validator.FileConfig{ValidateEmpty: true})
		res := strict.Validate(nil)
		assert.False(t, res.Valid)
		assert.Equal(t, "validation.file", res.Errors[0].TranslationKey)
	})

	t.Run("non files are rejected", func(t *testing.T) {
		res := v.Validate("upload.png")
		assert.False(t, res.Valid)
		assert.Equal(t, []string{"'upload.png' is not an uploaded file"}, res.Messages())

		assert.False(t, v.Validate([]any{upload{name: "a"}, "b"}).Valid)
	})

	t.Run("nil entries are rejected", func(t *testing.T) {
		res := v.Validate([]validator.FileDescriptor{upload{name: "a.txt", size: 1}, nil})
		assert.False(t, res.Valid)
		assert.Equal(t, "validation.file", res.Errors[0].TranslationKey)

		res = v.Validate([]*upload{{name: "a.txt", size: 1}, nil})
		assert.False(t, res.Valid)
		assert.Equal(t, "validation.file", res.Errors[0].TranslationKey)

		var missing *upload
		strict := newFile(t, validator.FileConfig{ValidateEmpty: true})
		res = strict.Validate(validator.FileDescriptor(missing))
		assert.False(t, res.Valid)
		assert.Equal(t, "validation.file", res.Errors[0].TranslationKey)
	})
}
