package install

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/conn-castle/stack-installer/internal/appconfig"
	"github.com/conn-castle/stack-installer/internal/messages"
)

// upgrade migrates content from an older installation. It runs only when the
// answers name the version being upgraded from, and only below the configured
// ceiling when one is set.
func (r *installRun) upgrade() error {
	u := r.cfg.Upgrade()
	from := strings.TrimSpace(r.app.Get(u.FromKey))
	if from == "" {
		r.log.Debugf(messages.InstallUpgradeSkippedFmt, u.FromKey)
		return nil
	}
	apply, err := upgradeApplies(from, u.Below)
	if err != nil {
		return err
	}
	if !apply {
		r.log.Infof(messages.InstallUpgradeNotNeededFmt, from, u.Below)
		return nil
	}

	r.log.Infof(messages.InstallUpgradingFmt, from)
	php := appconfig.Token(appconfig.KeyPHPBin)
	for _, script := range u.PopulateScripts {
		if err := r.execute(php + " " + script); err != nil {
			return fmt.Errorf(messages.InstallUpgradePopulateFailedFmt, r.app.ReplaceTokensInString(script), err)
		}
	}
	if err := r.execute(u.DWHUpgrade); err != nil {
		return fmt.Errorf(messages.InstallUpgradeDWHFailedFmt, err)
	}
	return nil
}

// upgradeApplies reports whether from is below ceiling. An empty ceiling always applies.
func upgradeApplies(from string, ceiling string) (bool, error) {
	if strings.TrimSpace(ceiling) == "" {
		return true, nil
	}
	fromVersion, err := version.NewVersion(from)
	if err != nil {
		return false, fmt.Errorf(messages.InstallUpgradeInvalidVersionFmt, from, err)
	}
	ceilingVersion, err := version.NewVersion(ceiling)
	if err != nil {
		return false, fmt.Errorf(messages.InstallUpgradeInvalidVersionFmt, ceiling, err)
	}
	return fromVersion.LessThan(ceilingVersion), nil
}
