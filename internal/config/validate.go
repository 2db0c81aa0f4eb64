package config

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/hashicorp/go-version"

	"github.com/conn-castle/stack-installer/internal/messages"
)

// validate ensures the decoded config is complete and consistent.
// Defaults must be applied first.
func (f *fileConfig) validate(source string) error {
	lists := []struct {
		key    string
		values []string
	}{
		{"token_files.files", f.TokenFiles.Files},
		{"chmod_items.items", f.ChmodItems.Items},
		{"symlinks.links", f.Symlinks.Links},
		{"databases.dbs", f.Databases.DBs},
		{"uiconf.apps", f.UIConf.Apps},
	}
	for _, list := range lists {
		if err := validateList(source, list.key, list.values); err != nil {
			return err
		}
	}

	sep := f.Paths.SymlinkSeparator
	if utf8.RuneCountInString(sep) != 1 {
		return fmt.Errorf(messages.ConfigInvalidSeparatorFmt, source, sep)
	}
	for i, link := range f.Symlinks.Links {
		if strings.Count(link, sep) != 1 {
			return fmt.Errorf(messages.ConfigSymlinkSeparatorCountFmt, source, i, link, sep)
		}
	}

	if _, err := strconv.ParseUint(f.ChmodItems.Mode, 8, 32); err != nil {
		return fmt.Errorf(messages.ConfigInvalidModeFmt, source, f.ChmodItems.Mode, err)
	}

	// An explicit empty list disables the populate scripts.
	if len(f.Upgrade.PopulateScripts) > 0 {
		if err := validateList(source, "upgrade.populate_scripts", f.Upgrade.PopulateScripts); err != nil {
			return err
		}
	}
	if below := strings.TrimSpace(f.Upgrade.Below); below != "" {
		if _, err := version.NewVersion(below); err != nil {
			return fmt.Errorf(messages.ConfigInvalidUpgradeCeilingFmt, source, below, err)
		}
	}
	return nil
}

// validateList rejects empty lists and blank entries.
func validateList(source string, key string, values []string) error {
	if len(values) == 0 {
		return fmt.Errorf(messages.ConfigEmptyListFmt, source, key)
	}
	for i, value := range values {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf(messages.ConfigBlankEntryFmt, source, key, i)
		}
	}
	return nil
}
