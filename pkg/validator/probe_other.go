//go:build !unix

package validator

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

type osProbe struct{}

func (osProbe) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (osProbe) IsReadable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()
	_, err = f.Readdirnames(1)
	return err == nil || errors.Is(err, io.EOF)
}

func (osProbe) IsWritable(path string) bool {
	f, err := os.CreateTemp(path, ".probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(filepath.Clean(name))
	return true
}
