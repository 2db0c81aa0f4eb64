package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/stack-installer/internal/appconfig"
	"github.com/conn-castle/stack-installer/internal/config"
	"github.com/conn-castle/stack-installer/internal/database"
	"github.com/conn-castle/stack-installer/internal/install"
	"github.com/conn-castle/stack-installer/internal/messages"
	"github.com/conn-castle/stack-installer/internal/platform"
)

var (
	detectPlatform = platform.Detect
	describeHost   = platform.Describe
)

// CheckConfig loads installation.toml. The config is nil when loading fails.
func CheckConfig(path string) ([]Result, *config.InstallConfig) {
	cfg, err := config.Load(path)
	if err != nil {
		recommend := messages.DoctorConfigLoadRecommend
		if errors.Is(err, config.ErrConfigValidation) {
			recommend = messages.DoctorConfigValidationRecommend
		}
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameConfig,
			Message:        fmt.Sprintf(messages.DoctorConfigLoadFailedFmt, err),
			Recommendation: recommend,
		}}, nil
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameConfig,
		Message:   fmt.Sprintf(messages.DoctorConfigLoadedFmt, path),
	}}, cfg
}

// CheckAnswers loads the answers file and, when cfg is available, warns about
// configured entries that reference tokens with no answer.
func CheckAnswers(path string, cfg *config.InstallConfig) ([]Result, *appconfig.AppConfig) {
	app, err := appconfig.Load(path, appconfig.Options{})
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameAnswers,
			Message:        fmt.Sprintf(messages.DoctorAnswersLoadFailedFmt, err),
			Recommendation: messages.DoctorAnswersLoadRecommend,
		}}, nil
	}
	results := []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNameAnswers,
		Message:   fmt.Sprintf(messages.DoctorAnswersLoadedFmt, len(app.Keys()), path),
	}}
	if cfg == nil {
		return results, app
	}

	var entries []string
	entries = append(entries, cfg.TokenFiles()...)
	entries = append(entries, cfg.ChmodItems()...)
	entries = append(entries, cfg.SymLinks()...)
	entries = append(entries, cfg.UIConfApps()...)
	for _, entry := range entries {
		if missing := app.UnresolvedTokens(entry); len(missing) > 0 {
			results = append(results, Result{
				Status:         StatusWarn,
				CheckName:      messages.DoctorCheckNameAnswers,
				Message:        fmt.Sprintf(messages.DoctorUnresolvedTokensFmt, entry, strings.Join(missing, ", ")),
				Recommendation: messages.DoctorUnresolvedTokensRecommend,
			})
		}
	}
	return results, app
}

// CheckPlatform resolves the binary target for this host.
func CheckPlatform() ([]Result, *platform.Target) {
	host, err := describeHost()
	if err != nil {
		host = messages.DoctorHostUnknown
	}
	target, err := detectPlatform()
	if err != nil {
		return []Result{{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNamePlatform,
			Message:        fmt.Sprintf(messages.DoctorPlatformUnsupportedFmt, host, err),
			Recommendation: fmt.Sprintf(messages.DoctorPlatformRecommendFmt, supportedTargets()),
		}}, nil
	}
	return []Result{{
		Status:    StatusOK,
		CheckName: messages.DoctorCheckNamePlatform,
		Message:   fmt.Sprintf(messages.DoctorPlatformFmt, target, host),
	}}, &target
}

func supportedTargets() string {
	var names []string
	for _, t := range platform.Supported() {
		names = append(names, t.String())
	}
	return strings.Join(names, ", ")
}

// CheckPackage verifies that the installer working directory holds everything
// the install pipeline copies. target may be nil when the platform is unsupported.
func CheckPackage(root string, cfg *config.InstallConfig, target *platform.Target) []Result {
	paths := cfg.Paths()
	type required struct {
		path string
		dir  bool
	}
	want := []required{
		{filepath.Join(paths.PackageDir, "app"), true},
		{paths.GrantsScript, false},
		{paths.UninstallerScript, false},
	}
	if target != nil {
		want = append(want, required{filepath.Join(paths.PackageDir, "bin", target.Dir()), true})
	}

	var results []Result
	for _, w := range want {
		full := w.path
		if !filepath.IsAbs(full) {
			full = filepath.Join(root, full)
		}
		info, err := os.Stat(full)
		switch {
		case err != nil:
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNamePackage,
				Message:        fmt.Sprintf(messages.DoctorPackageMissingFmt, w.path),
				Recommendation: messages.DoctorPackageRecommend,
			})
		case info.IsDir() != w.dir:
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      messages.DoctorCheckNamePackage,
				Message:        fmt.Sprintf(messages.DoctorPackageWrongTypeFmt, w.path),
				Recommendation: messages.DoctorPackageRecommend,
			})
		default:
			results = append(results, Result{
				Status:    StatusOK,
				CheckName: messages.DoctorCheckNamePackage,
				Message:   fmt.Sprintf(messages.DoctorPackageFoundFmt, w.path),
			})
		}
	}
	return results
}

// LeftoverDetector is the part of the installer CheckLeftovers needs.
type LeftoverDetector interface {
	DetectLeftovers(ctx context.Context, mode install.Mode, app install.AppContext, params database.Params) (install.Report, error)
}

// CheckLeftovers reports state left by a previous installation. It never removes anything.
func CheckLeftovers(ctx context.Context, d LeftoverDetector, app install.AppContext, params database.Params) []Result {
	report, err := d.DetectLeftovers(ctx, install.ReportOnly, app, params)
	if err == nil && report.Clean() {
		return []Result{{
			Status:    StatusOK,
			CheckName: messages.DoctorCheckNameLeftovers,
			Message:   messages.DoctorNoLeftovers,
		}}
	}
	results := make([]Result, 0, len(report.Findings)+1)
	for _, f := range report.Findings {
		status := StatusFail
		if f.Kind == install.KindDatabaseUnverified {
			status = StatusWarn
		}
		results = append(results, Result{
			Status:         status,
			CheckName:      messages.DoctorCheckNameLeftovers,
			Message:        f.Message,
			Recommendation: messages.DoctorLeftoversRecommend,
		})
	}
	if err != nil {
		results = append(results, Result{
			Status:         StatusFail,
			CheckName:      messages.DoctorCheckNameLeftovers,
			Message:        fmt.Sprintf(messages.DoctorLeftoversFailedFmt, err),
			Recommendation: messages.DoctorLeftoversRecommend,
		})
	}
	return results
}
