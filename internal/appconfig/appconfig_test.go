package appconfig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAnswers = `# installer answers
BASE_DIR=/opt/app/
BIN_DIR=/opt/app/bin
APP_DIR=/opt/app/app
DB1_NAME=app
DB_STATS_NAME=app_stats
PHP_BIN=/usr/bin/php
DWH_DIR=/opt/app/dwh
DWH_USER=etl
export DWH_PASS="s3cr#t pass"
VERSION_TYPE='CE'
`

func writeAnswers(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	app, err := Load(writeAnswers(t, sampleAnswers), Options{})
	require.NoError(t, err)

	assert.Equal(t, "/opt/app/", app.Get(KeyBaseDir), "answers are kept as written")
	assert.Equal(t, "s3cr#t pass", app.Get(KeyDWHPass))
	assert.Equal(t, "CE", app.Get("VERSION_TYPE"))
	_, ok := app.Lookup("MISSING")
	assert.False(t, ok)
	assert.Contains(t, app.Keys(), KeyPHPBin)
}

func TestLoadMissingRequiredKeys(t *testing.T) {
	_, err := Load(writeAnswers(t, "BASE_DIR=/opt/app\n"), Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingKey))
	assert.Contains(t, err.Error(), "DB1_NAME")
	assert.Contains(t, err.Error(), "DWH_PASS")
}

func TestLoadInvalidLines(t *testing.T) {
	tests := map[string]string{
		"no equals":     "BASE_DIR\n",
		"bad key":       "1KEY=value\n",
		"unterminated":  "KEY=\"value\n",
		"quoted suffix": "KEY=\"value\" extra\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeAnswers(t, content), Options{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing answers file")
}

func TestReplaceTokensInString(t *testing.T) {
	app := New(map[string]string{"BASE_DIR": "/opt/app", "APP_DIR": "/opt/app/app"}, Options{})

	assert.Equal(t, "/opt/app/app/scripts/searchd.sh^/etc/init.d/searchd",
		app.ReplaceTokensInString("@APP_DIR@/scripts/searchd.sh^/etc/init.d/searchd"))
	assert.Equal(t, "/opt/app/log @UNKNOWN@ user@example.com",
		app.ReplaceTokensInString("@BASE_DIR@/log @UNKNOWN@ user@example.com"))
	assert.Equal(t, "mail=root@localhost/opt/app/log",
		app.ReplaceTokensInString("mail=root@localhost@BASE_DIR@/log"))
	assert.Equal(t, "@x@/opt/app@/opt/app/app",
		app.ReplaceTokensInString("@x@@BASE_DIR@@@APP_DIR@"))
	assert.Equal(t, []string{"@UNKNOWN@"}, app.UnresolvedTokens("@BASE_DIR@ @UNKNOWN@ @UNKNOWN@"))
	assert.Equal(t, "@KEY@", Token("KEY"))
}

func TestReplaceTokensKeepsTrailingSeparator(t *testing.T) {
	app := New(map[string]string{"BASE_DIR": "/opt/app/"}, Options{})
	assert.Equal(t, "root=/opt/app/", app.ReplaceTokensInString("root=@BASE_DIR@"))
}

func TestExpandCommandQuotesAnswers(t *testing.T) {
	app := New(map[string]string{
		"DWH_DIR":  "/opt/app/dwh",
		"DWH_PASS": "s3cr$et;x",
		"APP_DIR":  "/opt/my app",
		"EMPTY":    "",
	}, Options{})

	assert.Equal(t, "/opt/app/dwh/init.sh -p s3cr\\$et\\;x", app.ExpandCommand("@DWH_DIR@/init.sh -p @DWH_PASS@"))
	assert.Equal(t, "'/opt/my app'/scripts/searchd.sh start", app.ExpandCommand("@APP_DIR@/scripts/searchd.sh start"))
	assert.Equal(t, "run '' @UNKNOWN@", app.ExpandCommand("run @EMPTY@ @UNKNOWN@"))
}

func TestRedact(t *testing.T) {
	app := New(map[string]string{
		"DB1_PASS": "hunter2",
		"DWH_PASS": "s3cr$et;x",
		"DWH_USER": "etl",
		"DB1_NAME": "",
	}, Options{})

	assert.Equal(t, "-u etl -p ********", app.Redact(app.ExpandCommand("-u @DWH_USER@ -p @DWH_PASS@")))
	assert.Equal(t, "output: ******** and ********", app.Redact("output: s3cr$et;x and hunter2"))
	assert.True(t, IsSecretKey("db1_password"))
	assert.False(t, IsSecretKey("PASSAGE"))

	cause := errors.New("exit status 1")
	err := app.RedactError(fmt.Errorf("command [init.sh -p s3cr\\$et\\;x] failed: %w", cause))
	assert.Equal(t, "command [init.sh -p ********] failed: exit status 1", err.Error())
	assert.ErrorIs(t, err, cause)

	plain := errors.New("nothing secret")
	assert.Same(t, plain, app.RedactError(plain))
	assert.NoError(t, app.RedactError(nil))
}

func TestReplaceTokensInFile(t *testing.T) {
	app := New(map[string]string{"DB1_NAME": "app", "DB1_HOST": "db.local"}, Options{})
	path := filepath.Join(t.TempDir(), "local.ini")
	require.NoError(t, os.WriteFile(path, []byte("db = @DB1_NAME@\nhost = @DB1_HOST@\n"), 0o640))

	require.NoError(t, app.ReplaceTokensInFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "db = app\nhost = db.local\n", string(data))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestReplaceTokensInMissingFile(t *testing.T) {
	app := New(map[string]string{}, Options{})
	err := app.ReplaceTokensInFile(filepath.Join(t.TempDir(), "missing.ini"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.ini")
}

func TestSaveUninstallerConfigRoundTrip(t *testing.T) {
	orig := now
	now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	t.Cleanup(func() { now = orig })

	app, err := Load(writeAnswers(t, sampleAnswers), Options{})
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "uninstaller")
	path, err := app.SaveUninstallerConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, UninstallerConfigName), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	restored, err := Load(path, Options{})
	require.NoError(t, err)
	for _, key := range app.Keys() {
		assert.Equal(t, app.Get(key), restored.Get(key), key)
	}
	assert.NotEmpty(t, restored.Get(KeyInstallID))
	assert.Equal(t, "2026-01-02T03:04:05Z", restored.Get(KeyInstalledAt))
}

func TestRunEditionHook(t *testing.T) {
	var ran []string
	run := func(_ context.Context, command string) error {
		ran = append(ran, command)
		return nil
	}
	app := New(map[string]string{"APP_DIR": "/opt/app/app"}, Options{EditionHook: "@APP_DIR@/scripts/ce_setup.sh", Run: run})
	require.NoError(t, app.RunEditionHook(context.Background()))
	assert.Equal(t, []string{"/opt/app/app/scripts/ce_setup.sh"}, ran)

	ran = nil
	secret := New(map[string]string{"DWH_PASS": "a b"}, Options{EditionHook: "hook -p @DWH_PASS@", Run: func(_ context.Context, command string) error {
		ran = append(ran, command)
		return fmt.Errorf("command [%s] failed", command)
	}})
	err := secret.RunEditionHook(context.Background())
	assert.Equal(t, []string{"hook -p 'a b'"}, ran)
	require.Error(t, err)
	assert.Equal(t, "edition hook failed: command [hook -p ********] failed", err.Error())

	failing := New(map[string]string{}, Options{EditionHook: "hook", Run: func(context.Context, string) error {
		return errors.New("exit status 3")
	}})
	err = failing.RunEditionHook(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "edition hook failed")

	noop := New(map[string]string{}, Options{})
	assert.NoError(t, noop.RunEditionHook(context.Background()))
}

func TestFormatAnswersRoundTrip(t *testing.T) {
	values := map[string]string{
		"PLAIN":  "value",
		"SPACES": "a b",
		"QUOTES": `say "hi" it's`,
		"SLASH":  `C:\path`,
		"LINES":  "one\ntwo",
		"EMPTY":  "",
	}
	parsed, err := parseAnswers(formatAnswers(values))
	require.NoError(t, err)
	assert.Equal(t, values, parsed)
}
