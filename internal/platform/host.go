package platform

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

var hostInfo = host.Info

// Describe returns a one-line description of the host, e.g. "ubuntu 22.04 (linux, x86_64)".
func Describe() (string, error) {
	info, err := hostInfo()
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(strings.Join([]string{info.Platform, info.PlatformVersion}, " "))
	if name == "" {
		name = info.OS
	}
	return fmt.Sprintf("%s (%s, %s)", name, info.OS, info.KernelArch), nil
}
