package main

// NOTE: Tests in this package mutate package-level globals (getwd, newSystem,
// newDatabaseClient, newUI). Do not use t.Parallel(). Each test restores the
// globals via t.Cleanup().

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/conn-castle/stack-installer/internal/database"
	"github.com/conn-castle/stack-installer/internal/install"
	"github.com/conn-castle/stack-installer/internal/platform"
	"github.com/conn-castle/stack-installer/internal/prompt"
	"github.com/conn-castle/stack-installer/internal/testutil"
)

// linuxSystem is the real filesystem with the binary target pinned so
// tests do not depend on the host architecture.
type linuxSystem struct {
	install.RealSystem
}

func (linuxSystem) Platform() (platform.Target, error) {
	return platform.Target{OS: platform.Linux, Arch: platform.X86_64}, nil
}

type fakeDB struct {
	existing  map[string]bool
	createErr map[string]error
	calls     []string
	params    []database.Params
}

func newFakeDB() *fakeDB {
	return &fakeDB{existing: map[string]bool{}, createErr: map[string]error{}}
}

func (d *fakeDB) record(p database.Params, call string) {
	d.calls = append(d.calls, call)
	d.params = append(d.params, p)
}

func (d *fakeDB) Exists(_ context.Context, p database.Params, name string) (bool, error) {
	d.record(p, "exists "+name)
	return d.existing[name], nil
}

func (d *fakeDB) Create(_ context.Context, p database.Params, name string) error {
	d.record(p, "create "+name)
	if err, ok := d.createErr[name]; ok {
		return err
	}
	d.existing[name] = true
	return nil
}

func (d *fakeDB) RunScript(_ context.Context, p database.Params, name string, path string) error {
	d.record(p, fmt.Sprintf("script %s %s", name, filepath.Base(path)))
	_, err := os.Stat(path)
	return err
}

func (d *fakeDB) Drop(_ context.Context, p database.Params, name string) error {
	d.record(p, "drop "+name)
	delete(d.existing, name)
	return nil
}

type fakeUI struct {
	confirm  bool
	secret   string
	err      error
	confirms []string
	secrets  []string
}

func (u *fakeUI) Confirm(title string, value *bool) error {
	u.confirms = append(u.confirms, title)
	if u.err != nil {
		return u.err
	}
	*value = u.confirm
	return nil
}

func (u *fakeUI) SecretInput(title string, value *string) error {
	u.secrets = append(u.secrets, title)
	if u.err != nil {
		return u.err
	}
	*value = u.secret
	return nil
}

// cliFixture is an unpacked release directory plus an empty target host.
type cliFixture struct {
	root     string
	baseDir  string
	linkDir  string
	callsLog string
	db       *fakeDB
	ui       *fakeUI
	answers  map[string]string
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	root := t.TempDir()
	host := t.TempDir()
	f := &cliFixture{
		root:     root,
		baseDir:  filepath.Join(host, "opt", "app"),
		linkDir:  filepath.Join(host, "usr", "local", "bin"),
		callsLog: filepath.Join(host, "calls.log"),
		db:       newFakeDB(),
		ui:       &fakeUI{},
	}
	if err := os.MkdirAll(f.linkDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	stubDir := filepath.Join(host, "stubs")
	stubs := map[string]string{}
	for _, name := range []string{"dwh_init.sh", "uiconf.sh", "populate.sh", "batch.sh", "searchd.sh"} {
		stubs[name] = testutil.WriteRecordingStub(t, stubDir, name, f.callsLog)
	}

	pkg := filepath.Join(root, "package")
	testutil.WriteFile(t, filepath.Join(pkg, "app", "app", "configurations", "local.ini"), "base=@BASE_DIR@\nkeep=@NOT_AN_ANSWER@\n")
	testutil.WriteFile(t, filepath.Join(pkg, "app", "app", "scripts", "tool"), "#!/bin/sh\n")
	testutil.WriteFile(t, filepath.Join(pkg, "app", "app", "deployment", "base", "sql", "create_db.toml"),
		"[primary]\nsql = [\"schema.sql\"]\n\n[stats]\nsql = [\"stats.sql\"]\n")
	testutil.WriteFile(t, filepath.Join(pkg, "app", "app", "deployment", "base", "sql", "schema.sql"), "SELECT 1;\n")
	testutil.WriteFile(t, filepath.Join(pkg, "app", "app", "deployment", "base", "sql", "stats.sql"), "SELECT 1;\n")
	testutil.WriteFile(t, filepath.Join(pkg, "bin", "linux", "x86_64", "searchd"), "binary\n")
	testutil.WriteFile(t, filepath.Join(pkg, "dwh_grants", "grants.sql"), "GRANT ALL;\n")
	testutil.WriteFile(t, filepath.Join(root, "installer", "uninstall.sh"), "#!/bin/sh\n")

	testutil.WriteFile(t, filepath.Join(root, "installer", "installation.toml"), fmt.Sprintf(`
[token_files]
files = ["@APP_DIR@/configurations/local.ini"]

[chmod_items]
mode = "0755"
items = ["@APP_DIR@/scripts"]

[symlinks]
links = ["@APP_DIR@/scripts/tool^@LINK_DIR@/tool"]

[databases]
dbs = ["app", "app_stats"]

[uiconf]
apps = ["@APP_DIR@/uiconf/player.ini"]

[commands]
dwh_init = "%s"
uiconf_deploy = "%s @UICONF_FILE@"
populate = "%s"
batch_start = "%s start"
batch_stop = "%s stop"
search_start = "%s start"
search_stop = "%s stop"
`, stubs["dwh_init.sh"], stubs["uiconf.sh"], stubs["populate.sh"],
		stubs["batch.sh"], stubs["batch.sh"], stubs["searchd.sh"], stubs["searchd.sh"]))

	f.answers = map[string]string{
		"BASE_DIR":      f.baseDir,
		"BIN_DIR":       filepath.Join(f.baseDir, "bin"),
		"APP_DIR":       filepath.Join(f.baseDir, "app"),
		"DB1_NAME":      "app",
		"DB_STATS_NAME": "app_stats",
		"DB1_HOST":      "db.internal",
		"DB1_PASS":      "secret",
		"PHP_BIN":       "/usr/bin/php",
		"DWH_DIR":       filepath.Join(f.baseDir, "dwh"),
		"DWH_USER":      "etl",
		"DWH_PASS":      "etl-secret",
		"LINK_DIR":      f.linkDir,
		"VERSION_TYPE":  "PE",
	}
	f.writeAnswers(t)
	f.install(t)
	return f
}

// writeAnswers writes f.answers to the default answers location.
func (f *cliFixture) writeAnswers(t *testing.T) {
	t.Helper()
	keys := make([]string, 0, len(f.answers))
	for k := range f.answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%q\n", k, f.answers[k])
	}
	testutil.WriteFile(t, filepath.Join(f.root, "installer", "answers.env"), b.String())
}

// install swaps the package-level collaborators for the fixture's.
func (f *cliFixture) install(t *testing.T) {
	t.Helper()
	origGetwd, origSystem, origDB, origUI := getwd, newSystem, newDatabaseClient, newUI
	t.Cleanup(func() {
		getwd, newSystem, newDatabaseClient, newUI = origGetwd, origSystem, origDB, origUI
	})
	getwd = func() (string, error) { return f.root, nil }
	newSystem = func() install.System { return linuxSystem{} }
	newDatabaseClient = func() database.Client { return f.db }
	newUI = func() prompt.UI { return f.ui }
}

func (f *cliFixture) run(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	err := execute(append([]string{"stackinst"}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func (f *cliFixture) calls(t *testing.T) []string {
	t.Helper()
	return testutil.ReadLines(t, f.callsLog)
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
