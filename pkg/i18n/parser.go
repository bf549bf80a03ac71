package i18n

import (
	"context"
	"path/filepath"
	"strings"
)

// Catalog maps a language code to its (possibly nested) messages.
type Catalog map[string]map[string]any

// Parser decodes catalog content.
type Parser interface {
	Parse(ctx context.Context, content []byte) (Catalog, error)
	// SupportsFileExtension accepts extensions with or without the leading dot.
	SupportsFileExtension(ext string) bool
}

// NewParserForFile picks a parser by file extension. Returns nil for unknown extensions.
func NewParserForFile(filename string) Parser {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), ".")) {
	case "json":
		return NewJSONParser()
	case "yaml", "yml":
		return NewYAMLParser()
	default:
		return nil
	}
}

// toCatalog checks that every top level entry is a message map.
func toCatalog(data map[string]any, invalid error) (Catalog, error) {
	out := make(Catalog, len(data))
	for lang, val := range data {
		messages, ok := val.(map[string]any)
		if !ok {
			return nil, &CatalogError{Lang: lang, Err: invalid}
		}
		out[lang] = messages
	}
	return out, nil
}
