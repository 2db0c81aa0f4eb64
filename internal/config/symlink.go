package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/conn-castle/stack-installer/internal/messages"
)

// ErrMalformedSymlink reports a symlink entry that does not split into two absolute paths.
var ErrMalformedSymlink = errors.New("malformed symlink entry")

// SymlinkPair is a parsed symlink entry: Link is created pointing at Target.
type SymlinkPair struct {
	Target string
	Link   string
}

// ParseSymlink splits an entry whose tokens have already been substituted.
// Both halves must be non-empty absolute paths.
func ParseSymlink(entry string, sep string) (SymlinkPair, error) {
	parts := strings.Split(entry, sep)
	if len(parts) != 2 {
		return SymlinkPair{}, fmt.Errorf("%w: "+messages.ConfigMalformedSymlinkFmt, ErrMalformedSymlink, entry, sep)
	}
	pair := SymlinkPair{Target: strings.TrimSpace(parts[0]), Link: strings.TrimSpace(parts[1])}
	for _, p := range []string{pair.Target, pair.Link} {
		if p == "" {
			return SymlinkPair{}, fmt.Errorf("%w: "+messages.ConfigMalformedSymlinkFmt, ErrMalformedSymlink, entry, sep)
		}
		if !filepath.IsAbs(p) {
			return SymlinkPair{}, fmt.Errorf("%w: "+messages.ConfigSymlinkNotAbsoluteFmt, ErrMalformedSymlink, entry, p)
		}
	}
	return pair, nil
}
