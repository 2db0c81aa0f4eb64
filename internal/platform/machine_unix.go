//go:build unix

package platform

import "golang.org/x/sys/unix"

// machine returns the kernel's hardware name, as printed by uname -m.
func machine() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(uts.Machine[:]), nil
}
