package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/stack-installer/internal/messages"
)

// ErrConfigValidation is a sentinel that wraps config validation failures
// (as opposed to TOML syntax or filesystem errors).
// Callers can use errors.Is(err, ErrConfigValidation) to distinguish them.
var ErrConfigValidation = errors.New("config validation failed")

// Load reads installation.toml and validates it.
// A missing or malformed file is fatal to the install run.
func Load(path string) (*InstallConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates installation config TOML.
// data is the TOML content; source is used in error messages.
func Parse(data []byte, source string) (*InstallConfig, error) {
	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt, ErrConfigValidation, source, err)
	}
	raw.applyDefaults()
	if err := raw.validate(source); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}

	// validate already checked the mode parses.
	mode, _ := strconv.ParseUint(raw.ChmodItems.Mode, 8, 32)
	cfg := &InstallConfig{
		source: source,
		paths: Paths{
			PackageDir:        raw.Paths.PackageDir,
			AppSQLDir:         raw.Paths.AppSQLDir,
			SQLManifest:       raw.Paths.SQLManifest,
			GrantsScript:      raw.Paths.GrantsScript,
			UninstallerScript: raw.Paths.UninstallerScript,
			UninstallerDir:    raw.Paths.UninstallerDir,
			SymlinkSeparator:  raw.Paths.SymlinkSeparator,
		},
		tokenFiles: raw.TokenFiles.Files,
		chmod: chmodItems{
			mode:      os.FileMode(mode),
			recursive: *raw.ChmodItems.Recursive,
			items:     raw.ChmodItems.Items,
		},
		symlinks:   raw.Symlinks.Links,
		databases:  raw.Databases.DBs,
		uiconfApps: raw.UIConf.Apps,
		commands:   Commands(raw.Commands),
		edition:    Edition(raw.Edition),
		upgrade:    Upgrade(raw.Upgrade),
	}
	return cfg, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection.
// This catches misspelled sections that toml.Unmarshal silently ignores.
func decodeStrict(data []byte) error {
	var raw fileConfig
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&raw)
}
