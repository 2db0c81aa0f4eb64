package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse         = "stackinst"
	RootShort       = "Install an application stack from an unpacked release package"
	RootVersionFlag = "Print version and exit"

	RootFlagConfig   = "Path to installation.toml (default installer/installation.toml)"
	RootFlagAnswers  = "Path to the answers file (default installer/answers.env)"
	RootFlagLogFile  = "Path to the install log (default install_log/install.log)"
	RootFlagLogLevel = "Log level written to the install log (panic, fatal, error, warn, info, debug, trace)"

	RootExpandPathFmt = "expand path %s: %w"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"
	VersionUse       = "version"
	VersionShort     = "Print the stackinst version"

	// InstallUse is the install command name.
	InstallUse   = "install"
	InstallShort = "Install the application from the unpacked package"

	InstallFlagDBHost           = "Database host (overrides DB1_HOST)"
	InstallFlagDBPort           = "Database port (overrides DB1_PORT)"
	InstallFlagDBUser           = "Database user (overrides DB1_USER)"
	InstallFlagDBPassword       = "Database password (overrides DB1_PASS; prompted when unset)"
	InstallFlagYes              = "Answer yes to confirmation prompts"
	InstallFlagSkipLeftovers    = "Install without checking for leftovers of a previous installation"
	InstallFlagCleanupOnFailure = "Remove the partial installation when a step fails"

	InstallStartingFmt       = "Installing into %s\n"
	InstallLeftoversHeader   = "A previous installation was detected:"
	InstallLeftoversError    = "leftovers from a previous installation exist; run `stackinst cleanup` first or pass --skip-leftover-check"
	InstallFailedFmt         = "Installation failed: %v"
	InstallCleanupPrompt     = "Remove the partial installation now?"
	InstallCleanupSkipped    = "Leaving the partial installation in place. Run `stackinst cleanup` to remove it."
	InstallCleanupFailedFmt  = "cleanup after failed install: %v"
	InstallInvalidDBPortFmt  = "invalid database port %q: %w"
	InstallDBPasswordPrompt  = "Database password"
	InstallDBPasswordMissing = "database password is not set; pass --db-password, set DB1_PASS in the answers file, or run in a terminal"

	// LeftoversUse is the leftovers command name.
	LeftoversUse   = "leftovers"
	LeftoversShort = "Report state left by a previous installation"
	LeftoversNone  = "No leftovers found."

	// CleanupUse is the cleanup command name.
	CleanupUse      = "cleanup"
	CleanupShort    = "Remove state left by a previous installation"
	CleanupFlagYes  = "Remove without asking for confirmation"
	CleanupPrompt   = "Remove everything left by the previous installation?"
	CleanupAborted  = "Cleanup aborted."
	CleanupNothing  = "Nothing to clean up."
	CleanupDone     = "Cleanup completed."
	CleanupLineFmt  = "   Removed %s %s\n"
	CleanupErrorFmt = "cleanup: %w"

	// TokensUse is the tokens command name.
	TokensUse            = "tokens"
	TokensShort          = "Inspect token substitution in configuration files"
	TokensDiffUse        = "diff"
	TokensDiffShort      = "Preview token substitution without writing files"
	TokensFlagDiffLines  = "Maximum diff lines shown per file"
	TokensNoChanges      = "No token substitutions pending."
	TokensFileHeaderFmt  = "==> %s\n"
	TokensUnresolvedFmt  = "Unresolved tokens in %s: %s\n"
	TokensPreviewFailFmt = "preview tokens: %w"

	// PromptRequiresTerminal is returned when a prompt cannot be shown.
	PromptRequiresTerminal = "this prompt requires an interactive terminal; re-run with --yes or pass the value as a flag"
	PromptCancelled        = "prompt cancelled"
)
