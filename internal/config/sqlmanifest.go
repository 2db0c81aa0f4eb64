package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/stack-installer/internal/messages"
)

// SQLManifest lists the SQL scripts, in execution order, for the two application databases.
// The manifest ships inside the application package, not with the installer.
type SQLManifest struct {
	Primary []string
	Stats   []string
}

type sqlManifestFile struct {
	Primary struct {
		SQL []string `toml:"sql"`
	} `toml:"primary"`
	Stats struct {
		SQL []string `toml:"sql"`
	} `toml:"stats"`
}

// LoadSQLManifest reads the SQL manifest at path.
func LoadSQLManifest(path string) (*SQLManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigMissingSQLManifestFmt, path, err)
	}
	return ParseSQLManifest(data, path)
}

// ParseSQLManifest parses manifest content; source labels errors.
func ParseSQLManifest(data []byte, source string) (*SQLManifest, error) {
	var raw sqlManifestFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidSQLManifestFmt, source, err)
	}
	if err := validateList(source, "primary.sql", raw.Primary.SQL); err != nil {
		return nil, err
	}
	if err := validateList(source, "stats.sql", raw.Stats.SQL); err != nil {
		return nil, err
	}
	return &SQLManifest{
		Primary: slices.Clone(raw.Primary.SQL),
		Stats:   slices.Clone(raw.Stats.SQL),
	}, nil
}
