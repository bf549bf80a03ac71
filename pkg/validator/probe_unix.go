//go:build unix

package validator

import (
	"os"

	"golang.org/x/sys/unix"
)

// osProbe asks the kernel via access(2), so ACLs and the effective user are honoured.
type osProbe struct{}

func (osProbe) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (osProbe) IsReadable(path string) bool {
	return unix.Access(path, unix.R_OK) == nil
}

func (osProbe) IsWritable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}
