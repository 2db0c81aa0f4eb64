package appconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/conn-castle/stack-installer/internal/fsutil"
	"github.com/conn-castle/stack-installer/internal/messages"
)

// UninstallerConfigName is the answers snapshot written next to the uninstaller.
const UninstallerConfigName = "uninstall.env"

var now = time.Now

// SaveUninstallerConfig writes every answer, plus an install ID and timestamp,
// to dir/uninstall.env so a later uninstall can rebuild the run-time parameters.
// It returns the written path.
func (a *AppConfig) SaveUninstallerConfig(dir string) (string, error) {
	path := filepath.Join(dir, UninstallerConfigName)
	snapshot := make(map[string]string, len(a.values)+2)
	for k, v := range a.values {
		snapshot[k] = v
	}
	if snapshot[KeyInstallID] == "" {
		snapshot[KeyInstallID] = uuid.NewString()
	}
	snapshot[KeyInstalledAt] = now().UTC().Format(time.RFC3339)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf(messages.AnswersWriteUninstFmt, path, err)
	}
	// The snapshot carries database and warehouse passwords.
	if err := fsutil.WriteFileAtomic(path, []byte(formatAnswers(snapshot)), 0o600); err != nil {
		return "", fmt.Errorf(messages.AnswersWriteUninstFmt, path, err)
	}
	return path, nil
}
