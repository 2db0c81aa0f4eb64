package messages

// Doctor messages for the doctor command.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor"
	DoctorShort = "Check the installer package, configuration, answers, and host before installing"

	DoctorHealthCheckFmt = "Checking installation readiness in %s...\n"

	DoctorCheckNameConfig    = "Config"
	DoctorCheckNameAnswers   = "Answers"
	DoctorCheckNamePlatform  = "Platform"
	DoctorCheckNamePackage   = "Package"
	DoctorCheckNameLeftovers = "Leftovers"

	DoctorConfigLoadFailedFmt       = "Failed to load configuration: %v"
	DoctorConfigLoadRecommend       = "Check that installer/installation.toml exists and is valid TOML, or pass --config."
	DoctorConfigValidationRecommend = "Fix the reported key in installation.toml; every list section needs at least one entry."
	DoctorConfigLoadedFmt           = "Configuration loaded from %s"

	DoctorAnswersLoadFailedFmt      = "Failed to load answers: %v"
	DoctorAnswersLoadRecommend      = "Provide an answers file with KEY=VALUE lines for every required key, or pass --answers."
	DoctorAnswersLoadedFmt          = "%d answers loaded from %s"
	DoctorUnresolvedTokensFmt       = "%s uses tokens with no answer: %s"
	DoctorUnresolvedTokensRecommend = "Add the missing keys to the answers file; unresolved tokens are left in place."

	DoctorHostUnknown            = "unknown host"
	DoctorPlatformFmt            = "Binary target %s on %s"
	DoctorPlatformUnsupportedFmt = "%s: %v"
	DoctorPlatformRecommendFmt   = "Supported targets: %s"

	DoctorPackageMissingFmt   = "Missing %s"
	DoctorPackageWrongTypeFmt = "%s has the wrong file type"
	DoctorPackageFoundFmt     = "Found %s"
	DoctorPackageRecommend    = "Run the installer from the unpacked release directory."

	DoctorNoLeftovers        = "No leftovers from a previous installation"
	DoctorLeftoversFailedFmt = "Leftover detection failed: %v"
	DoctorLeftoversRecommend = "Run `stackinst cleanup` to remove a previous installation."
	DoctorLeftoversSkipped   = "Leftover check skipped; configuration or answers failed to load."

	DoctorFailureSummary = "Some checks failed. Please address the items above."
	DoctorFailureError   = "doctor checks failed"
	DoctorSuccessSummary = "All checks passed. Ready to install."

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-10s %s\n"
	DoctorRecommendationPrefix = "       > "
	DoctorRecommendationIndent = "         "
)
