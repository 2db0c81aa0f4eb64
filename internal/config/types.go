package config

import (
	"os"
	"slices"
)

// InstallConfig is the static installation metadata loaded from installation.toml.
// It is read-only after Load; every list accessor returns a copy.
type InstallConfig struct {
	source     string
	paths      Paths
	tokenFiles []string
	chmod      chmodItems
	symlinks   []string
	databases  []string
	uiconfApps []string
	commands   Commands
	edition    Edition
	upgrade    Upgrade
}

type chmodItems struct {
	mode      os.FileMode
	recursive bool
	items     []string
}

// Paths holds the fixed locations the installer reads from and writes to.
// Relative paths are resolved by the caller (package paths against the working
// directory, SQL paths against BASE_DIR).
type Paths struct {
	PackageDir        string
	AppSQLDir         string
	SQLManifest       string
	GrantsScript      string
	UninstallerScript string
	UninstallerDir    string
	SymlinkSeparator  string
}

// Commands holds the token-bearing shell command templates run during install and cleanup.
type Commands struct {
	DWHInit      string
	UIConfDeploy string
	Populate     string
	BatchStart   string
	BatchStop    string
	SearchStart  string
	SearchStop   string
}

// Edition selects the community-edition maintenance hook.
type Edition struct {
	Key       string
	Community string
	Hook      string
}

// Upgrade configures the post-install migration run when upgrading from an older version.
type Upgrade struct {
	FromKey         string
	Below           string
	PopulateScripts []string
	DWHUpgrade      string
}

// fileConfig mirrors the TOML layout of installation.toml.
type fileConfig struct {
	Paths struct {
		PackageDir        string `toml:"package_dir"`
		AppSQLDir         string `toml:"app_sql_dir"`
		SQLManifest       string `toml:"sql_manifest"`
		GrantsScript      string `toml:"grants_script"`
		UninstallerScript string `toml:"uninstaller_script"`
		UninstallerDir    string `toml:"uninstaller_dir"`
		SymlinkSeparator  string `toml:"symlink_separator"`
	} `toml:"paths"`
	TokenFiles struct {
		Files []string `toml:"files"`
	} `toml:"token_files"`
	ChmodItems struct {
		Mode      string   `toml:"mode"`
		Recursive *bool    `toml:"recursive"`
		Items     []string `toml:"items"`
	} `toml:"chmod_items"`
	Symlinks struct {
		Links []string `toml:"links"`
	} `toml:"symlinks"`
	Databases struct {
		DBs []string `toml:"dbs"`
	} `toml:"databases"`
	UIConf struct {
		Apps []string `toml:"apps"`
	} `toml:"uiconf"`
	Commands struct {
		DWHInit      string `toml:"dwh_init"`
		UIConfDeploy string `toml:"uiconf_deploy"`
		Populate     string `toml:"populate"`
		BatchStart   string `toml:"batch_start"`
		BatchStop    string `toml:"batch_stop"`
		SearchStart  string `toml:"search_start"`
		SearchStop   string `toml:"search_stop"`
	} `toml:"commands"`
	Edition struct {
		Key       string `toml:"key"`
		Community string `toml:"community"`
		Hook      string `toml:"hook"`
	} `toml:"edition"`
	Upgrade struct {
		FromKey         string   `toml:"from_key"`
		Below           string   `toml:"below"`
		PopulateScripts []string `toml:"populate_scripts"`
		DWHUpgrade      string   `toml:"dwh_upgrade"`
	} `toml:"upgrade"`
}

// Source returns the path or label the config was loaded from.
func (c *InstallConfig) Source() string {
	return c.source
}

// TokenFiles returns the files in which configuration tokens are replaced.
func (c *InstallConfig) TokenFiles() []string {
	return slices.Clone(c.tokenFiles)
}

// ChmodItems returns the files and directories whose permissions are changed.
func (c *InstallConfig) ChmodItems() []string {
	return slices.Clone(c.chmod.items)
}

// ChmodMode returns the permission applied to every chmod item.
func (c *InstallConfig) ChmodMode() os.FileMode {
	return c.chmod.mode
}

// ChmodRecursive reports whether chmod items are changed recursively.
func (c *InstallConfig) ChmodRecursive() bool {
	return c.chmod.recursive
}

// SymLinks returns the raw symlink entries, each encoded as target<separator>link.
func (c *InstallConfig) SymLinks() []string {
	return slices.Clone(c.symlinks)
}

// Databases returns the databases that must not exist before installation starts.
func (c *InstallConfig) Databases() []string {
	return slices.Clone(c.databases)
}

// UIConfApps returns the uiconf descriptors deployed after installation.
func (c *InstallConfig) UIConfApps() []string {
	return slices.Clone(c.uiconfApps)
}

// Paths returns the configured installer paths.
func (c *InstallConfig) Paths() Paths {
	return c.paths
}

// Commands returns the configured command templates.
func (c *InstallConfig) Commands() Commands {
	return c.commands
}

// Edition returns the edition hook settings.
func (c *InstallConfig) Edition() Edition {
	return c.edition
}

// Upgrade returns the upgrade migration settings.
func (c *InstallConfig) Upgrade() Upgrade {
	u := c.upgrade
	u.PopulateScripts = slices.Clone(c.upgrade.PopulateScripts)
	return u
}
