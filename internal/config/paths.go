package config

import "path/filepath"

// Locations holds the default files the CLI reads relative to the installer working directory.
type Locations struct {
	Root        string
	ConfigPath  string
	AnswersPath string
	LogPath     string
}

// DefaultLocations returns the default installer file locations for a working directory.
func DefaultLocations(root string) Locations {
	return Locations{
		Root:        root,
		ConfigPath:  filepath.Join(root, "installer", "installation.toml"),
		AnswersPath: filepath.Join(root, "installer", "answers.env"),
		LogPath:     filepath.Join(root, "install_log", "install.log"),
	}
}

// SQLManifestPath returns the manifest location inside an installed base directory.
func (p Paths) SQLManifestPath(baseDir string) string {
	return filepath.Join(baseDir, p.AppSQLDir, p.SQLManifest)
}

// SQLScriptPath returns the location of a manifest script inside an installed base directory.
func (p Paths) SQLScriptPath(baseDir string, script string) string {
	return filepath.Join(baseDir, p.AppSQLDir, script)
}
