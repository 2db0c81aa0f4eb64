package install

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/conn-castle/stack-installer/internal/fsutil"
	"github.com/conn-castle/stack-installer/internal/messages"
	"github.com/conn-castle/stack-installer/internal/platform"
)

// System abstracts the filesystem, process, and host operations needed by the installer.
// This interface is package-local so tests can substitute failures without touching the host.
type System interface {
	Lstat(name string) (os.FileInfo, error)
	Stat(name string) (os.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	MkdirAll(path string, perm os.FileMode) error
	RemoveAll(path string) error
	Symlink(oldname string, newname string) error
	Chmod(path string, mode os.FileMode, recursive bool) error
	CopyTree(src string, dst string) error
	Execute(ctx context.Context, command string) error
	WriteFileAtomic(filename string, data []byte, perm os.FileMode) error
	Platform() (platform.Target, error)
}

// RealSystem implements System using the OS filesystem and /bin/sh.
type RealSystem struct{}

// Lstat returns a FileInfo describing the named file without following symlinks.
func (RealSystem) Lstat(name string) (os.FileInfo, error) {
	return os.Lstat(name)
}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile reads the named file and returns the contents.
func (RealSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// RemoveAll removes path and any children it contains.
func (RealSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// Symlink creates newname as a symbolic link to oldname.
func (RealSystem) Symlink(oldname string, newname string) error {
	return os.Symlink(oldname, newname)
}

// Chmod sets mode on path, and on everything beneath it when recursive is set.
func (RealSystem) Chmod(path string, mode os.FileMode, recursive bool) error {
	return fsutil.Chmod(path, mode, recursive)
}

// CopyTree copies a file or directory tree into dst.
func (RealSystem) CopyTree(src string, dst string) error {
	return fsutil.CopyTree(src, dst)
}

// Execute runs command through sh -c and fails on a non-zero exit.
// Combined output is attached to the error.
func (RealSystem) Execute(ctx context.Context, command string) error {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		output := strings.TrimSpace(out.String())
		if output == "" {
			return fmt.Errorf(messages.InstallCommandFailedFmt, command, err)
		}
		return fmt.Errorf(messages.InstallCommandFailedOutputFmt, command, err, output)
	}
	return nil
}

// WriteFileAtomic writes data to a file atomically by writing to a temp file and renaming.
func (RealSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return fsutil.WriteFileAtomic(filename, data, perm)
}

// Platform resolves the host binary target.
func (RealSystem) Platform() (platform.Target, error) {
	return platform.Detect()
}
