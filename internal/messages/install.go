package messages

// Installer messages.
const (
	InstallMissingConfig   = "install config is required"
	InstallMissingSystem   = "install system is required"
	InstallMissingDatabase = "database client is required"

	InstallStepFailedFmt = "install step %s failed: %v"
	InstallCompleted     = "Installation completed"
	InstallExecutingFmt  = "Executing %s"

	InstallCommandFailedFmt       = "command [%s] failed: %w"
	InstallCommandFailedOutputFmt = "command [%s] failed: %w\n%s"

	InstallCopyingAppFmt         = "Copying application files to %s"
	InstallCopyAppFailedFmt      = "failed copying application files to %s: %w"
	InstallPlatformFailedFmt     = "failed resolving platform: %w"
	InstallCopyingBinariesFmt    = "Copying binaries for %s"
	InstallCopyBinariesFailedFmt = "failed copying binaries for %s: %w"

	InstallReplacingTokens        = "Replacing configuration tokens in files"
	InstallReplacingTokensInFile  = "Replacing tokens"
	InstallReplaceTokensFailedFmt = "failed to replace tokens in %s: %w"

	InstallChangingPermissions = "Changing permissions of directories and files"
	InstallChmodFailedFmt      = "failed changing permission for %s: %w"

	InstallCreatingDatabaseFmt     = "Creating and initializing '%s' database"
	InstallCreateDatabaseFailedFmt = "failed creating %s DB: %w"
	InstallRunningScript           = "Running DB script"
	InstallRunScriptFailedFmt      = "failed running DB script %s: %w"

	InstallCreatingDataWarehouse = "Creating data warehouse"
	InstallGrantsFailedFmt       = "failed running data warehouse permission script %s: %w"
	InstallDWHInitFailedFmt      = "failed running data warehouse initialization script: %w"

	InstallCreatingSymlinks  = "Creating system symbolic links"
	InstallSymlinkFailedFmt  = "failed to create symbolic link from %s to %s: %w"
	InstallCreatedSymlinkFmt = "Created symbolic link %s -> %s"

	InstallEditionHookSkippedFmt = "Edition hook skipped; %s is not the community edition"
	InstallRunningEditionHook    = "Running community edition maintenance"

	InstallDeployingUIConf       = "Deploying uiconfs in order to configure the application"
	InstallDeployUIConfFailedFmt = "failed to deploy uiconf %s: %w"
	InstallDeployedUIConfFmt     = "Deployed uiconf %s"

	InstallCreatingUninstaller    = "Creating the uninstaller"
	InstallUninstallerFailedFmt   = "failed creating the uninstaller in %s: %w"
	InstallSavedUninstallerConfig = "Saved uninstaller configuration"

	InstallStartingServices     = "Starting the application"
	InstallPopulatingFmt        = "Populating search entries (executing '%s')"
	InstallPopulateFailedFmt    = "failed populating initial search entries: %w"
	InstallStartingBatchFmt     = "Running the batch manager (executing '%s')"
	InstallStartBatchFailedFmt  = "failed running the batch manager: %w"
	InstallStartingSearchFmt    = "Running the search daemon (executing '%s')"
	InstallStartSearchFailedFmt = "failed running the search daemon: %w"

	InstallUpgradeSkippedFmt        = "Upgrade skipped; %s is not set"
	InstallUpgradeNotNeededFmt      = "Upgrade skipped; %s is not below %s"
	InstallUpgradingFmt             = "Populating old content from %s to the search index"
	InstallUpgradeInvalidVersionFmt = "invalid upgrade version %q: %w"
	InstallUpgradePopulateFailedFmt = "failed running upgrade populate script %s: %w"
	InstallUpgradeDWHFailedFmt      = "failed running data warehouse upgrade script: %w"

	InstallDiffTruncatedFmt = "... (truncated to %d lines; rerun with --diff-lines <n> to see more)"
)

// Leftover detection messages.
const (
	LeftoverLineFmt               = "   Leftovers found: %s\n"
	LeftoverSymlinkFmt            = "%s symbolic link exists"
	LeftoverDatabaseFmt           = "DB already exists %s"
	LeftoverDatabaseUnverifiedFmt = "Error verifying if db exists %s"
	LeftoverBaseDirFmt            = "Target directory %s already exists"

	LeftoverVerifyDatabaseFailed = "Could not verify whether database exists"
	LeftoverRemovedFmt           = "Removed %s"
	LeftoverRemoveFailedFmt      = "failed removing %s: %w"
	LeftoverStopServiceFailedFmt = "Stopping service failed (%s); continuing cleanup"
)
