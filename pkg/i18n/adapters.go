package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"slices"
)

// TranslationAdapter loads a catalog from some source.
type TranslationAdapter interface {
	Load(ctx context.Context) (Catalog, error)
}

// MapAdapter serves an in-memory catalog.
type MapAdapter struct {
	Data Catalog
}

func (a *MapAdapter) Load(_ context.Context) (Catalog, error) {
	if a.Data == nil {
		return Catalog{}, nil
	}
	return a.Data, nil
}

// FileAdapter loads a single catalog file from fsys.
type FileAdapter struct {
	fsys fs.FS
	name string
}

func NewFileAdapter(fsys fs.FS, name string) *FileAdapter {
	return &FileAdapter{fsys: fsys, name: name}
}

func (a *FileAdapter) Load(ctx context.Context) (Catalog, error) {
	return loadFile(ctx, a.fsys, a.name)
}

// DirectoryAdapter loads every .yaml, .yml and .json file of a directory in
// fsys and merges them. Files are read in lexical order; for the same
// language and top level key later files win.
type DirectoryAdapter struct {
	fsys fs.FS
	dir  string
}

// NewDirectoryAdapter reads dir within fsys, e.g. os.DirFS("/etc/checkkit") and ".".
func NewDirectoryAdapter(fsys fs.FS, dir string) *DirectoryAdapter {
	if dir == "" {
		dir = "."
	}
	return &DirectoryAdapter{fsys: fsys, dir: dir}
}

func (a *DirectoryAdapter) Load(ctx context.Context) (Catalog, error) {
	entries, err := fs.ReadDir(a.fsys, a.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDirectory, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && NewParserForFile(e.Name()) != nil {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)

	out := make(Catalog)
	for _, name := range names {
		cat, err := loadFile(ctx, a.fsys, path.Join(a.dir, name))
		if err != nil {
			return nil, err
		}
		for lang, messages := range cat {
			if out[lang] == nil {
				out[lang] = make(map[string]any, len(messages))
			}
			maps.Copy(out[lang], messages)
		}
	}
	return out, nil
}

func loadFile(ctx context.Context, fsys fs.FS, name string) (Catalog, error) {
	parser := NewParserForFile(name)
	if parser == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	cat, err := parser.Parse(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return cat, nil
}
