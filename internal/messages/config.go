package messages

// Config messages for installation.toml, the SQL manifest, and the answers file.
const (
	// ConfigMissingFileFmt formats missing install config errors.
	ConfigMissingFileFmt      = "missing install config %s: %w"
	ConfigInvalidFmt          = "invalid install config %s: %w"
	ConfigUnrecognizedKeysFmt = "install config %s has unrecognized keys: %v"

	ConfigEmptyListFmt             = "%s: %s must list at least one entry"
	ConfigBlankEntryFmt            = "%s: %s[%d] is blank"
	ConfigInvalidModeFmt           = "%s: chmod_items.mode %q is not an octal permission: %v"
	ConfigInvalidSeparatorFmt      = "%s: paths.symlink_separator must be a single character, got %q"
	ConfigSymlinkSeparatorCountFmt = "%s: symlinks.links[%d] %q must contain the separator %q exactly once"
	ConfigInvalidUpgradeCeilingFmt = "%s: upgrade.below %q is not a version: %v"

	ConfigMalformedSymlinkFmt   = "symlink %q must have the form target%slink"
	ConfigSymlinkNotAbsoluteFmt = "symlink %q: %s is not an absolute path"

	ConfigMissingSQLManifestFmt = "missing SQL manifest %s: %w"
	ConfigInvalidSQLManifestFmt = "invalid SQL manifest %s: %w"

	// AnswersMissingFileFmt formats missing answers file errors.
	AnswersMissingFileFmt  = "missing answers file %s: %w"
	AnswersInvalidFileFmt  = "invalid answers file %s: %w"
	AnswersMissingKeysFmt  = "answers file %s is missing required keys: %s"
	AnswersLineErrorFmt    = "line %d: %w"
	AnswersReadFailedFmt   = "failed to read answers: %w"
	AnswersInvalidKeyFmt   = "invalid key %q: keys are letters, digits and underscores"
	AnswersExpectedPair    = "expected KEY=VALUE"
	AnswersUnterminated    = "unterminated quoted value"
	AnswersInvalidSuffix   = "unexpected characters after quoted value"
	AnswersReplaceFileFmt  = "failed to replace tokens in %s: %w"
	AnswersWriteUninstFmt  = "failed to write uninstaller config %s: %w"
	AnswersEditionHookFmt  = "edition hook failed: %w"
	AnswersEditionHookNone = "Community edition detected; no edition hook configured"
)
