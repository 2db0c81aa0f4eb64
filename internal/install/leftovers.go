package install

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/conn-castle/stack-installer/internal/appconfig"
	"github.com/conn-castle/stack-installer/internal/config"
	"github.com/conn-castle/stack-installer/internal/database"
	"github.com/conn-castle/stack-installer/internal/messages"
)

// Mode selects whether DetectLeftovers only reports or also removes what it finds.
type Mode int

const (
	// ReportOnly inspects state without changing it.
	ReportOnly Mode = iota
	// Cleanup removes every leftover it finds.
	Cleanup
)

func (m Mode) String() string {
	if m == Cleanup {
		return "cleanup"
	}
	return "report"
}

// Kind classifies a leftover.
type Kind string

// Leftover kinds.
const (
	KindSymlink            Kind = "symlink"
	KindDatabase           Kind = "database"
	KindDatabaseUnverified Kind = "database-unverified"
	KindBaseDir            Kind = "base-dir"
)

// Finding is one piece of state left by a previous installation.
type Finding struct {
	Kind    Kind
	Subject string
	Message string
}

// Report is the outcome of DetectLeftovers.
// In Cleanup mode Findings stays empty and Removed lists what was cleaned up.
type Report struct {
	Findings []Finding
	Removed  []Finding
}

// Clean reports whether no leftovers were found.
func (r Report) Clean() bool {
	return len(r.Findings) == 0
}

// String renders one line per finding.
func (r Report) String() string {
	var b strings.Builder
	for _, f := range r.Findings {
		_, _ = fmt.Fprintf(&b, messages.LeftoverLineFmt, f.Message)
	}
	return b.String()
}

// DetectLeftovers inspects symlinks, databases, and the application directory
// for state left by a previous installation. Every category is always
// inspected. In Cleanup mode removal is best effort: failures are collected
// and returned together after all categories have been processed.
func (i *Installer) DetectLeftovers(ctx context.Context, mode Mode, app AppContext, params database.Params) (Report, error) {
	d := &leftoverScan{Installer: i, ctx: ctx, mode: mode, app: app, params: params}
	d.symlinks()
	d.databases()
	d.baseDir()
	return d.report, d.errs.ErrorOrNil()
}

type leftoverScan struct {
	*Installer
	ctx    context.Context
	mode   Mode
	app    AppContext
	params database.Params
	report Report
	errs   *multierror.Error
}

// found records f, or removes it in Cleanup mode.
func (d *leftoverScan) found(f Finding, remove func() error) {
	if d.mode == ReportOnly {
		d.report.Findings = append(d.report.Findings, f)
		return
	}
	if err := remove(); err != nil {
		d.errs = multierror.Append(d.errs, err)
		return
	}
	d.log.WithField("kind", string(f.Kind)).Infof(messages.LeftoverRemovedFmt, f.Subject)
	d.report.Removed = append(d.report.Removed, f)
}

func (d *leftoverScan) symlinks() {
	baseDir := d.app.Get(appconfig.KeyBaseDir)
	sep := d.cfg.Paths().SymlinkSeparator
	for _, entry := range d.cfg.SymLinks() {
		pair, err := config.ParseSymlink(d.app.ReplaceTokensInString(entry), sep)
		if err != nil {
			d.errs = multierror.Append(d.errs, err)
			continue
		}
		link := pair.Link
		info, err := d.sys.Stat(link)
		if err != nil || !info.Mode().IsRegular() || isWithin(baseDir, link) {
			continue
		}
		d.found(Finding{
			Kind:    KindSymlink,
			Subject: link,
			Message: fmt.Sprintf(messages.LeftoverSymlinkFmt, link),
		}, func() error {
			if err := d.sys.RemoveAll(link); err != nil {
				return fmt.Errorf(messages.LeftoverRemoveFailedFmt, link, err)
			}
			return nil
		})
	}
}

func (d *leftoverScan) databases() {
	for _, name := range d.cfg.Databases() {
		exists, err := d.db.Exists(d.ctx, d.params, name)
		if err != nil {
			d.log.WithField("db", name).WithError(err).Warn(messages.LeftoverVerifyDatabaseFailed)
			if d.mode == ReportOnly {
				d.report.Findings = append(d.report.Findings, Finding{
					Kind:    KindDatabaseUnverified,
					Subject: name,
					Message: fmt.Sprintf(messages.LeftoverDatabaseUnverifiedFmt, name),
				})
			} else {
				d.errs = multierror.Append(d.errs, err)
			}
			continue
		}
		if !exists {
			continue
		}
		d.found(Finding{
			Kind:    KindDatabase,
			Subject: name,
			Message: fmt.Sprintf(messages.LeftoverDatabaseFmt, name),
		}, func() error {
			return d.db.Drop(d.ctx, d.params, name)
		})
	}
}

func (d *leftoverScan) baseDir() {
	baseDir := d.app.Get(appconfig.KeyBaseDir)
	if baseDir == "" {
		return
	}
	baseDir = filepath.Clean(baseDir)
	info, err := d.sys.Stat(baseDir)
	if err != nil || !info.IsDir() {
		return
	}
	d.found(Finding{
		Kind:    KindBaseDir,
		Subject: baseDir,
		Message: fmt.Sprintf(messages.LeftoverBaseDirFmt, baseDir),
	}, func() error {
		cmds := d.cfg.Commands()
		for _, template := range []string{cmds.SearchStop, cmds.BatchStop} {
			if err := d.runCommand(d.ctx, d.app, d.log, template); err != nil {
				d.log.WithError(err).Warnf(messages.LeftoverStopServiceFailedFmt, d.app.Redact(d.app.ReplaceTokensInString(template)))
			}
		}
		if err := d.sys.RemoveAll(baseDir); err != nil {
			return fmt.Errorf(messages.LeftoverRemoveFailedFmt, baseDir, err)
		}
		return nil
	})
}
