// Package platform resolves the host into one of the binary targets the
// application package ships.
package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/conn-castle/stack-installer/internal/messages"
)

// OS names a supported operating system as it appears in the package bin/ tree.
type OS string

// Supported operating systems.
const (
	Linux  OS = "linux"
	Darwin OS = "darwin"
)

// Arch names a CPU architecture as it appears in the package bin/ tree.
type Arch string

// Supported architectures.
const (
	X86_64  Arch = "x86_64"
	AArch64 Arch = "aarch64"
	ARM64   Arch = "arm64"
)

// ErrUnsupported reports a host that matches no shipped binary target.
var ErrUnsupported = errors.New("unsupported platform")

// Target is a validated OS and architecture pair.
type Target struct {
	OS   OS
	Arch Arch
}

var supported = []Target{
	{Linux, X86_64},
	{Linux, AArch64},
	{Darwin, X86_64},
	{Darwin, ARM64},
}

// Supported returns every target the installer knows how to lay out.
func Supported() []Target {
	return append([]Target(nil), supported...)
}

// String returns os/arch.
func (t Target) String() string {
	return string(t.OS) + "/" + string(t.Arch)
}

// Dir returns the subdirectory of the package bin/ tree holding this target's binaries.
func (t Target) Dir() string {
	return filepath.Join(string(t.OS), string(t.Arch))
}

// Parse normalizes an OS name and machine string (uname -m or GOARCH spelling)
// and validates the pair against the supported set.
func Parse(osName string, machine string) (Target, error) {
	o := OS(strings.ToLower(strings.TrimSpace(osName)))
	var a Arch
	switch strings.ToLower(strings.TrimSpace(machine)) {
	case "x86_64", "amd64":
		a = X86_64
	case "aarch64", "arm64":
		// Linux reports aarch64, macOS reports arm64.
		a = AArch64
		if o == Darwin {
			a = ARM64
		}
	default:
		a = Arch(machine)
	}
	t := Target{OS: o, Arch: a}
	for _, s := range supported {
		if s == t {
			return t, nil
		}
	}
	return Target{}, fmt.Errorf("%w: "+messages.PlatformUnsupportedFmt, ErrUnsupported, osName, machine)
}

// Detect resolves the running host.
func Detect() (Target, error) {
	m, err := machine()
	if err != nil {
		return Target{}, fmt.Errorf(messages.PlatformDetectFailedFmt, err)
	}
	return Parse(runtime.GOOS, m)
}
