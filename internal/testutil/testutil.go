// Package testutil holds helpers shared by package tests: stub executables
// standing in for the application's service scripts, and file fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteStub writes an executable shell stub that exits successfully and returns its path.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) string {
	t.Helper()
	return WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that exits with the provided code.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) string {
	t.Helper()
	return writeExecutable(t, filepath.Join(dir, name), fmt.Sprintf("#!/bin/sh\nexit %d\n", exitCode))
}

// WriteRecordingStub writes an executable shell stub that appends its name and
// arguments as one line to logPath, then exits successfully.
func WriteRecordingStub(t *testing.T, dir string, name string, logPath string) string {
	t.Helper()
	content := fmt.Sprintf("#!/bin/sh\necho \"%s $*\" >> '%s'\n", name, logPath)
	return writeExecutable(t, filepath.Join(dir, name), content)
}

// WriteArgsStub writes an executable shell stub that appends each argument on
// its own line to logPath, echoes the arguments to stderr, and exits with exitCode.
func WriteArgsStub(t *testing.T, dir string, name string, logPath string, exitCode int) string {
	t.Helper()
	content := fmt.Sprintf("#!/bin/sh\nfor arg in \"$@\"; do printf '%%s\\n' \"$arg\"; done >> '%s'\necho \"%s $*\" >&2\nexit %d\n", logPath, name, exitCode)
	return writeExecutable(t, filepath.Join(dir, name), content)
}

func writeExecutable(t *testing.T, path string, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create stub dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadLines returns the non-empty lines of path without trailing spaces.
// A missing file yields no lines.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimRight(line, " "); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// WithWorkingDir runs fn with dir as the current working directory and restores the previous directory.
// t is the active test; dir is the temporary working directory for fn.
func WithWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	}()
	fn()
}
