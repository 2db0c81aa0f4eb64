// Package appconfig holds the run-time answers of an installation and
// substitutes them into paths, commands, and files.
package appconfig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/conn-castle/stack-installer/internal/messages"
)

// Answer keys the installer reads directly.
const (
	KeyBaseDir     = "BASE_DIR"
	KeyBinDir      = "BIN_DIR"
	KeyAppDir      = "APP_DIR"
	KeyDB1Name     = "DB1_NAME"
	KeyDBStatsName = "DB_STATS_NAME"
	KeyPHPBin      = "PHP_BIN"
	KeyDWHDir      = "DWH_DIR"
	KeyDWHUser     = "DWH_USER"
	KeyDWHPass     = "DWH_PASS"

	KeyDBHost = "DB1_HOST"
	KeyDBPort = "DB1_PORT"
	KeyDBUser = "DB1_USER"
	KeyDBPass = "DB1_PASS"

	KeyInstallID   = "INSTALL_ID"
	KeyInstalledAt = "INSTALLED_AT"
)

// RequiredKeys must be present and non-empty in every answers file.
var RequiredKeys = []string{
	KeyBaseDir, KeyBinDir, KeyAppDir,
	KeyDB1Name, KeyDBStatsName,
	KeyPHPBin,
	KeyDWHDir, KeyDWHUser, KeyDWHPass,
}

// ErrMissingKey reports an answers file without one of RequiredKeys.
var ErrMissingKey = errors.New("missing required answer")

// CommandRunner executes a shell command line and reports a non-zero exit as an error.
type CommandRunner func(ctx context.Context, command string) error

// Options configures an AppConfig beyond its answers.
type Options struct {
	// EditionHook is the command template run by RunEditionHook. Empty disables the hook.
	EditionHook string
	Run         CommandRunner
	Logger      logrus.FieldLogger
}

// AppConfig is the application context of one installation run.
type AppConfig struct {
	values        map[string]string
	tokens        *strings.Replacer
	commandTokens *strings.Replacer
	redactor      *strings.Replacer
	editionHook   string
	run           CommandRunner
	log           logrus.FieldLogger
}

// Load reads and validates the answers file at path.
func Load(path string, opts Options) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.AnswersMissingFileFmt, path, err)
	}
	values, err := parseAnswers(string(data))
	if err != nil {
		return nil, fmt.Errorf(messages.AnswersInvalidFileFmt, path, err)
	}
	if err := validate(path, values); err != nil {
		return nil, err
	}
	return New(values, opts), nil
}

// New builds an AppConfig from already-validated values. The map is copied
// and values are kept exactly as answered.
func New(values map[string]string, opts Options) *AppConfig {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AppConfig{
		values:        copied,
		tokens:        newTokenReplacer(copied, func(v string) string { return v }),
		commandTokens: newTokenReplacer(copied, quoteWord),
		redactor:      newRedactor(copied),
		editionHook:   opts.EditionHook,
		run:           opts.Run,
		log:           log,
	}
}

func validate(source string, values map[string]string) error {
	var missing []string
	for _, key := range RequiredKeys {
		if strings.TrimSpace(values[key]) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: "+messages.AnswersMissingKeysFmt, ErrMissingKey, source, strings.Join(missing, ", "))
}

// Get returns the answer for key, or "" when unset.
func (a *AppConfig) Get(key string) string {
	return a.values[key]
}

// Lookup returns the answer for key and whether it is set.
func (a *AppConfig) Lookup(key string) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Keys returns the answer keys in sorted order.
func (a *AppConfig) Keys() []string {
	keys := make([]string, 0, len(a.values))
	for k := range a.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// RunEditionHook runs the configured community-edition maintenance command.
func (a *AppConfig) RunEditionHook(ctx context.Context) error {
	if strings.TrimSpace(a.editionHook) == "" || a.run == nil {
		a.log.Info(messages.AnswersEditionHookNone)
		return nil
	}
	if err := a.run(ctx, a.ExpandCommand(a.editionHook)); err != nil {
		return fmt.Errorf(messages.AnswersEditionHookFmt, a.RedactError(err))
	}
	return nil
}
