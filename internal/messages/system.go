package messages

// System messages for platform detection and database access.
const (
	PlatformUnsupportedFmt  = "no binaries are shipped for %s/%s"
	PlatformDetectFailedFmt = "detect machine architecture: %w"

	DatabaseInvalidNameFmt = "%q is not a plain identifier"
	DatabaseConnectFmt     = "connect to database server %s: %w"
	DatabaseExistsFmt      = "check whether database %s exists: %w"
	DatabaseCreateFmt      = "create database %s: %w"
	DatabaseScriptFmt      = "run %s against %s: %w"
	DatabaseDropFmt        = "drop database %s: %w"
)

// Logging messages.
const (
	LogInvalidLevelFmt = "invalid log level %q: %w"
	LogWarnPrefix      = "Warning: "
	LogErrorPrefix     = "Error: "
)
