package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/stack-installer/internal/appconfig"
	"github.com/conn-castle/stack-installer/internal/config"
	"github.com/conn-castle/stack-installer/internal/database"
	"github.com/conn-castle/stack-installer/internal/platform"
)

// faultSystem wraps the real filesystem, records mutating calls, and never
// runs commands unless runCommands is set. Errors are injected per cleaned path
// or per command substring.
type faultSystem struct {
	base        System
	runCommands bool
	target      platform.Target
	platformErr error
	commands    []string
	commandErrs map[string]error
	copyErrs    map[string]error
	chmodErrs   map[string]error
	symlinkErrs map[string]error
	removeErrs  map[string]error
	mutations   []string
}

func newFaultSystem() *faultSystem {
	return &faultSystem{
		base:        RealSystem{},
		target:      platform.Target{OS: platform.Linux, Arch: platform.X86_64},
		commandErrs: map[string]error{},
		copyErrs:    map[string]error{},
		chmodErrs:   map[string]error{},
		symlinkErrs: map[string]error{},
		removeErrs:  map[string]error{},
	}
}

func normalizePath(path string) string {
	return filepath.Clean(path)
}

func (f *faultSystem) mutate(op string, path string) {
	f.mutations = append(f.mutations, op+" "+path)
}

func (f *faultSystem) Lstat(name string) (os.FileInfo, error) { return f.base.Lstat(name) }
func (f *faultSystem) Stat(name string) (os.FileInfo, error)  { return f.base.Stat(name) }
func (f *faultSystem) ReadFile(name string) ([]byte, error)   { return f.base.ReadFile(name) }

func (f *faultSystem) MkdirAll(path string, perm os.FileMode) error {
	f.mutate("mkdir", path)
	return f.base.MkdirAll(path, perm)
}

func (f *faultSystem) RemoveAll(path string) error {
	f.mutate("remove", path)
	if err, ok := f.removeErrs[normalizePath(path)]; ok {
		return err
	}
	return f.base.RemoveAll(path)
}

func (f *faultSystem) Symlink(oldname string, newname string) error {
	f.mutate("symlink", newname)
	if err, ok := f.symlinkErrs[normalizePath(newname)]; ok {
		return err
	}
	return f.base.Symlink(oldname, newname)
}

func (f *faultSystem) Chmod(path string, mode os.FileMode, recursive bool) error {
	f.mutate("chmod", path)
	if err, ok := f.chmodErrs[normalizePath(path)]; ok {
		return err
	}
	return f.base.Chmod(path, mode, recursive)
}

func (f *faultSystem) CopyTree(src string, dst string) error {
	f.mutate("copy", src)
	if err, ok := f.copyErrs[normalizePath(src)]; ok {
		return err
	}
	return f.base.CopyTree(src, dst)
}

func (f *faultSystem) Execute(ctx context.Context, command string) error {
	f.mutate("exec", command)
	f.commands = append(f.commands, command)
	for substr, err := range f.commandErrs {
		if strings.Contains(command, substr) {
			return err
		}
	}
	if f.runCommands {
		return f.base.Execute(ctx, command)
	}
	return nil
}

func (f *faultSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	f.mutate("write", filename)
	return f.base.WriteFileAtomic(filename, data, perm)
}

func (f *faultSystem) Platform() (platform.Target, error) {
	if f.platformErr != nil {
		return platform.Target{}, f.platformErr
	}
	return f.target, nil
}

// fakeDB records every call as "<op> <db> [script]".
type fakeDB struct {
	existing  map[string]bool
	existsErr map[string]error
	createErr map[string]error
	scriptErr map[string]error
	dropErr   map[string]error
	calls     []string
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		existing:  map[string]bool{},
		existsErr: map[string]error{},
		createErr: map[string]error{},
		scriptErr: map[string]error{},
		dropErr:   map[string]error{},
	}
}

func (d *fakeDB) Exists(_ context.Context, _ database.Params, name string) (bool, error) {
	d.calls = append(d.calls, "exists "+name)
	if err, ok := d.existsErr[name]; ok {
		return false, err
	}
	return d.existing[name], nil
}

func (d *fakeDB) Create(_ context.Context, _ database.Params, name string) error {
	d.calls = append(d.calls, "create "+name)
	if err, ok := d.createErr[name]; ok {
		return err
	}
	d.existing[name] = true
	return nil
}

func (d *fakeDB) RunScript(_ context.Context, _ database.Params, name string, path string) error {
	d.calls = append(d.calls, fmt.Sprintf("script %s %s", name, filepath.Base(path)))
	if err, ok := d.scriptErr[filepath.Base(path)]; ok {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}
	return nil
}

func (d *fakeDB) Drop(_ context.Context, _ database.Params, name string) error {
	d.calls = append(d.calls, "drop "+name)
	if err, ok := d.dropErr[name]; ok {
		return err
	}
	delete(d.existing, name)
	return nil
}

// mutatingCalls returns the calls that change database state.
func (d *fakeDB) mutatingCalls() []string {
	var out []string
	for _, c := range d.calls {
		if !strings.HasPrefix(c, "exists ") {
			out = append(out, c)
		}
	}
	return out
}

const testConfig = `
[token_files]
files = ["@APP_DIR@/configurations/local.ini"]

[chmod_items]
mode = "0750"
items = ["@BASE_DIR@/cache"]

[symlinks]
links = ["@APP_DIR@/scripts/tool^@LINK_DIR@/tool"]

[databases]
dbs = ["app", "app_stats"]

[uiconf]
apps = ["@APP_DIR@/uiconf/a.ini", "@APP_DIR@/uiconf/b.ini"]

[edition]
hook = "@APP_DIR@/scripts/ce_hook.sh"
`

// fixture is an installer working directory plus an empty target host.
type fixture struct {
	root    string
	baseDir string
	binDir  string
	linkDir string
	sys     *faultSystem
	db      *fakeDB
	hooks   []string
	logs    *test.Hook
	answers map[string]string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	host := t.TempDir()
	f := &fixture{
		root:    root,
		baseDir: filepath.Join(host, "opt", "app"),
		binDir:  filepath.Join(host, "opt", "app", "bin"),
		linkDir: filepath.Join(host, "usr", "local", "bin"),
		sys:     newFaultSystem(),
		db:      newFakeDB(),
	}
	require.NoError(t, os.MkdirAll(f.linkDir, 0o755))

	writeFile(t, filepath.Join(root, "package", "app", "app", "configurations", "local.ini"),
		"base=@BASE_DIR@\ndb=@DB1_NAME@\nkeep=@NOT_AN_ANSWER@\n")
	writeFile(t, filepath.Join(root, "package", "app", "app", "scripts", "tool"), "#!/bin/sh\n")
	writeFile(t, filepath.Join(root, "package", "app", "cache", "data"), "cached\n")
	writeFile(t, filepath.Join(root, "package", "app", "app", "deployment", "base", "sql", "create_db.toml"),
		"[primary]\nsql = [\"01_schema.sql\", \"02_data.sql\"]\n\n[stats]\nsql = [\"stats.sql\"]\n")
	for _, script := range []string{"01_schema.sql", "02_data.sql", "stats.sql"} {
		writeFile(t, filepath.Join(root, "package", "app", "app", "deployment", "base", "sql", script), "SELECT 1;\n")
	}
	writeFile(t, filepath.Join(root, "package", "bin", "linux", "x86_64", "searchd"), "binary\n")
	writeFile(t, filepath.Join(root, "package", "dwh_grants", "grants.sql"), "GRANT ALL;\n")
	writeFile(t, filepath.Join(root, "installer", "uninstall.sh"), "#!/bin/sh\n")

	f.answers = map[string]string{
		appconfig.KeyBaseDir:     f.baseDir,
		appconfig.KeyBinDir:      f.binDir,
		appconfig.KeyAppDir:      filepath.Join(f.baseDir, "app"),
		appconfig.KeyDB1Name:     "app",
		appconfig.KeyDBStatsName: "app_stats",
		appconfig.KeyPHPBin:      "/usr/bin/php",
		appconfig.KeyDWHDir:      filepath.Join(f.baseDir, "dwh"),
		appconfig.KeyDWHUser:     "etl",
		appconfig.KeyDWHPass:     "secret",
		"LINK_DIR":               f.linkDir,
		"VERSION_TYPE":           "ce",
	}
	return f
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func (f *fixture) config(t *testing.T, extra string) *config.InstallConfig {
	t.Helper()
	cfg, err := config.Parse([]byte(testConfig+extra), "installation.toml")
	require.NoError(t, err)
	return cfg
}

func (f *fixture) app() *appconfig.AppConfig {
	logger, _ := test.NewNullLogger()
	return appconfig.New(f.answers, appconfig.Options{
		EditionHook: "@APP_DIR@/scripts/ce_hook.sh",
		Run: func(_ context.Context, command string) error {
			f.hooks = append(f.hooks, command)
			return nil
		},
		Logger: logger,
	})
}

func (f *fixture) installer(t *testing.T, extra string) *Installer {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	f.logs = hook
	inst, err := New(Options{
		Config: f.config(t, extra),
		System: f.sys,
		DB:     f.db,
		Root:   f.root,
		Logger: logger,
	})
	require.NoError(t, err)
	return inst
}

func (f *fixture) appDir() string {
	return filepath.Join(f.baseDir, "app")
}
