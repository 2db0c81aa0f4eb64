// Package install lays an application package out on the host: it copies
// files, provisions databases, wires symlinks and services, and detects or
// removes what a previous installation left behind.
package install

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/conn-castle/stack-installer/internal/appconfig"
	"github.com/conn-castle/stack-installer/internal/config"
	"github.com/conn-castle/stack-installer/internal/database"
	"github.com/conn-castle/stack-installer/internal/messages"
)

// AppContext is the run-time application context: answers plus the
// operations that substitute them. *appconfig.AppConfig implements it.
type AppContext interface {
	Get(key string) string
	Lookup(key string) (string, bool)
	ReplaceTokensInString(s string) string
	ExpandCommand(template string) string
	ReplaceTokensInFile(path string) error
	UnresolvedTokens(s string) []string
	SaveUninstallerConfig(dir string) (string, error)
	RunEditionHook(ctx context.Context) error
	Redact(s string) string
	RedactError(err error) error
}

var _ AppContext = (*appconfig.AppConfig)(nil)

// Options configures an Installer.
type Options struct {
	Config *config.InstallConfig
	System System
	DB     database.Client
	// Root is the installer working directory; relative package and installer paths resolve against it.
	Root   string
	Logger logrus.FieldLogger
}

// Installer runs installations and leftover detection for one InstallConfig.
type Installer struct {
	cfg  *config.InstallConfig
	sys  System
	db   database.Client
	root string
	log  logrus.FieldLogger
}

// New validates opts and returns an Installer.
func New(opts Options) (*Installer, error) {
	if opts.Config == nil {
		return nil, errors.New(messages.InstallMissingConfig)
	}
	if opts.System == nil {
		return nil, errors.New(messages.InstallMissingSystem)
	}
	if opts.DB == nil {
		return nil, errors.New(messages.InstallMissingDatabase)
	}
	root := opts.Root
	if strings.TrimSpace(root) == "" {
		root = "."
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Installer{
		cfg:  opts.Config,
		sys:  opts.System,
		db:   opts.DB,
		root: root,
		log:  log,
	}, nil
}

// resolve anchors a relative installer path at the working directory.
func (i *Installer) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(i.root, path)
}

func (i *Installer) packagePath(elem ...string) string {
	return i.resolve(filepath.Join(append([]string{i.cfg.Paths().PackageDir}, elem...)...))
}

// runCommand expands template with shell-quoted answers and runs it. Secret
// answers are masked in the log line and in the returned error.
func (i *Installer) runCommand(ctx context.Context, app AppContext, log logrus.FieldLogger, template string) error {
	command := app.ExpandCommand(template)
	log.Debugf(messages.InstallExecutingFmt, app.Redact(command))
	return app.RedactError(i.sys.Execute(ctx, command))
}

// isWithin reports whether path is dir or lies beneath it.
func isWithin(dir string, path string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
