package config

// Defaults reproduce the layout of the application package shipped with the installer.
const (
	DefaultPackageDir        = "package"
	DefaultAppSQLDir         = "app/deployment/base/sql"
	DefaultSQLManifest       = "create_db.toml"
	DefaultGrantsScript      = "package/dwh_grants/grants.sql"
	DefaultUninstallerScript = "installer/uninstall.sh"
	DefaultUninstallerDir    = "uninstaller"
	DefaultSymlinkSeparator  = "^"
	DefaultChmodMode         = "0777"

	DefaultEditionKey       = "VERSION_TYPE"
	DefaultCommunityEdition = "CE"
	DefaultUpgradeFromKey   = "UPGRADE_FROM_VERSION"
)

var defaultCommands = Commands{
	DWHInit:      "@DWH_DIR@/ddl/dwh_ddl_install.sh -u @DWH_USER@ -p @DWH_PASS@ -d @DWH_DIR@",
	UIConfDeploy: "@PHP_BIN@ @APP_DIR@/deployment/uiconf/deploy.php --ini=@UICONF_FILE@",
	Populate:     "@PHP_BIN@ @APP_DIR@/deployment/base/scripts/populateSphinxEntries.php",
	BatchStart:   "@APP_DIR@/scripts/serviceBatchMgr.sh start",
	BatchStop:    "@BASE_DIR@/app/scripts/serviceBatchMgr.sh stop",
	SearchStart:  "@APP_DIR@/scripts/searchd.sh start",
	SearchStop:   "@BASE_DIR@/app/scripts/searchd.sh stop",
}

var defaultPopulateScripts = []string{
	"@APP_DIR@/deployment/base/scripts/populateSphinxCategories.php",
	"@APP_DIR@/deployment/base/scripts/populateSphinxCategoryKusers.php",
	"@APP_DIR@/deployment/base/scripts/populateSphinxCuePoints.php",
	"@APP_DIR@/deployment/base/scripts/populateSphinxEntries.php",
	"@APP_DIR@/deployment/base/scripts/populateSphinxEntryDistributions.php",
	"@APP_DIR@/deployment/base/scripts/populateSphinxKusers.php",
	"@APP_DIR@/deployment/base/scripts/populateSphinxTags.php",
}

const defaultDWHUpgrade = "@DWH_DIR@/ddl/migrations/20130606_falcon_to_gemini/Falcon2Gemini.sh"

func orDefault(value string, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// applyDefaults fills unset optional settings.
func (f *fileConfig) applyDefaults() {
	p := &f.Paths
	p.PackageDir = orDefault(p.PackageDir, DefaultPackageDir)
	p.AppSQLDir = orDefault(p.AppSQLDir, DefaultAppSQLDir)
	p.SQLManifest = orDefault(p.SQLManifest, DefaultSQLManifest)
	p.GrantsScript = orDefault(p.GrantsScript, DefaultGrantsScript)
	p.UninstallerScript = orDefault(p.UninstallerScript, DefaultUninstallerScript)
	p.UninstallerDir = orDefault(p.UninstallerDir, DefaultUninstallerDir)
	p.SymlinkSeparator = orDefault(p.SymlinkSeparator, DefaultSymlinkSeparator)

	f.ChmodItems.Mode = orDefault(f.ChmodItems.Mode, DefaultChmodMode)
	if f.ChmodItems.Recursive == nil {
		recursive := true
		f.ChmodItems.Recursive = &recursive
	}

	c := &f.Commands
	c.DWHInit = orDefault(c.DWHInit, defaultCommands.DWHInit)
	c.UIConfDeploy = orDefault(c.UIConfDeploy, defaultCommands.UIConfDeploy)
	c.Populate = orDefault(c.Populate, defaultCommands.Populate)
	c.BatchStart = orDefault(c.BatchStart, defaultCommands.BatchStart)
	c.BatchStop = orDefault(c.BatchStop, defaultCommands.BatchStop)
	c.SearchStart = orDefault(c.SearchStart, defaultCommands.SearchStart)
	c.SearchStop = orDefault(c.SearchStop, defaultCommands.SearchStop)

	f.Edition.Key = orDefault(f.Edition.Key, DefaultEditionKey)
	f.Edition.Community = orDefault(f.Edition.Community, DefaultCommunityEdition)

	f.Upgrade.FromKey = orDefault(f.Upgrade.FromKey, DefaultUpgradeFromKey)
	if f.Upgrade.PopulateScripts == nil {
		f.Upgrade.PopulateScripts = append([]string(nil), defaultPopulateScripts...)
	}
	f.Upgrade.DWHUpgrade = orDefault(f.Upgrade.DWHUpgrade, defaultDWHUpgrade)
}
