package install

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/sirupsen/logrus"

	"github.com/conn-castle/stack-installer/internal/appconfig"
	"github.com/conn-castle/stack-installer/internal/config"
	"github.com/conn-castle/stack-installer/internal/database"
	"github.com/conn-castle/stack-installer/internal/messages"
)

// Step identifies one stage of the install pipeline.
type Step string

// Install pipeline steps, in execution order.
const (
	StepCopyApp         Step = "copy-app"
	StepCopyBinaries    Step = "copy-binaries"
	StepReplaceTokens   Step = "replace-tokens"
	StepChmod           Step = "chmod"
	StepLoadSQLManifest Step = "load-sql-manifest"
	StepCreatePrimaryDB Step = "create-primary-db"
	StepCreateStatsDB   Step = "create-stats-db"
	StepDataWarehouse   Step = "data-warehouse"
	StepSymlinks        Step = "symlinks"
	StepEditionHook     Step = "edition-hook"
	StepDeployUIConf    Step = "deploy-uiconf"
	StepUninstaller     Step = "uninstaller"
	StepStartServices   Step = "start-services"
	StepUpgrade         Step = "upgrade"
)

// uiconfToken is substituted with each uiconf descriptor in the deploy command.
const uiconfToken = "@UICONF_FILE@"

// StepError reports the pipeline step that failed and its cause.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf(messages.InstallStepFailedFmt, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

type installStep struct {
	id  Step
	run func() error
}

// installRun carries the state of one Install call.
type installRun struct {
	*Installer
	ctx      context.Context
	app      AppContext
	params   database.Params
	log      logrus.FieldLogger
	baseDir  string
	manifest *config.SQLManifest
}

// Install runs the full installation pipeline. It stops at the first failing
// step and returns a *StepError; completed steps are not undone.
func (i *Installer) Install(ctx context.Context, app AppContext, params database.Params) error {
	r := &installRun{
		Installer: i,
		ctx:       ctx,
		app:       app,
		params:    params,
		baseDir:   filepath.Clean(app.Get(appconfig.KeyBaseDir)),
	}
	steps := []installStep{
		{StepCopyApp, r.copyApp},
		{StepCopyBinaries, r.copyBinaries},
		{StepReplaceTokens, r.replaceTokens},
		{StepChmod, r.chmod},
		{StepLoadSQLManifest, r.loadSQLManifest},
		{StepCreatePrimaryDB, r.createPrimaryDB},
		{StepCreateStatsDB, r.createStatsDB},
		{StepDataWarehouse, r.dataWarehouse},
		{StepSymlinks, r.symlinks},
		{StepEditionHook, r.editionHook},
		{StepDeployUIConf, r.deployUIConf},
		{StepUninstaller, r.uninstaller},
		{StepStartServices, r.startServices},
		{StepUpgrade, r.upgrade},
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return &StepError{Step: step.id, Err: err}
		}
		r.log = i.log.WithField("step", string(step.id))
		if err := step.run(); err != nil {
			return &StepError{Step: step.id, Err: err}
		}
	}
	i.log.Info(messages.InstallCompleted)
	return nil
}

func (r *installRun) copyApp() error {
	r.log.Infof(messages.InstallCopyingAppFmt, r.baseDir)
	if err := r.sys.CopyTree(r.packagePath("app"), r.baseDir); err != nil {
		return fmt.Errorf(messages.InstallCopyAppFailedFmt, r.baseDir, err)
	}
	return nil
}

func (r *installRun) copyBinaries() error {
	target, err := r.sys.Platform()
	if err != nil {
		return fmt.Errorf(messages.InstallPlatformFailedFmt, err)
	}
	r.log.Infof(messages.InstallCopyingBinariesFmt, target)
	if err := r.sys.CopyTree(r.packagePath("bin", target.Dir()), r.app.Get(appconfig.KeyBinDir)); err != nil {
		return fmt.Errorf(messages.InstallCopyBinariesFailedFmt, target, err)
	}
	return nil
}

func (r *installRun) replaceTokens() error {
	r.log.Info(messages.InstallReplacingTokens)
	for _, file := range r.cfg.TokenFiles() {
		path := r.app.ReplaceTokensInString(file)
		r.log.WithField("path", path).Debug(messages.InstallReplacingTokensInFile)
		if err := r.app.ReplaceTokensInFile(path); err != nil {
			return fmt.Errorf(messages.InstallReplaceTokensFailedFmt, path, err)
		}
	}
	return nil
}

func (r *installRun) chmod() error {
	r.log.Info(messages.InstallChangingPermissions)
	mode := r.cfg.ChmodMode()
	recursive := r.cfg.ChmodRecursive()
	for _, item := range r.cfg.ChmodItems() {
		path := r.app.ReplaceTokensInString(item)
		if err := r.sys.Chmod(path, mode, recursive); err != nil {
			return fmt.Errorf(messages.InstallChmodFailedFmt, path, err)
		}
	}
	return nil
}

func (r *installRun) loadSQLManifest() error {
	path := r.cfg.Paths().SQLManifestPath(r.baseDir)
	data, err := r.sys.ReadFile(path)
	if err != nil {
		return fmt.Errorf(messages.ConfigMissingSQLManifestFmt, path, err)
	}
	manifest, err := config.ParseSQLManifest(data, path)
	if err != nil {
		return err
	}
	r.manifest = manifest
	return nil
}

func (r *installRun) createPrimaryDB() error {
	return r.createDatabase(r.app.Get(appconfig.KeyDB1Name), r.manifest.Primary)
}

func (r *installRun) createStatsDB() error {
	return r.createDatabase(r.app.Get(appconfig.KeyDBStatsName), r.manifest.Stats)
}

// createDatabase creates name and runs scripts against it in order.
func (r *installRun) createDatabase(name string, scripts []string) error {
	r.log.Infof(messages.InstallCreatingDatabaseFmt, name)
	if err := r.db.Create(r.ctx, r.params, name); err != nil {
		return fmt.Errorf(messages.InstallCreateDatabaseFailedFmt, name, err)
	}
	paths := r.cfg.Paths()
	for _, script := range scripts {
		path := paths.SQLScriptPath(r.baseDir, script)
		r.log.WithFields(logrus.Fields{"db": name, "path": path}).Debug(messages.InstallRunningScript)
		if err := r.db.RunScript(r.ctx, r.params, name, path); err != nil {
			return fmt.Errorf(messages.InstallRunScriptFailedFmt, path, err)
		}
	}
	return nil
}

func (r *installRun) dataWarehouse() error {
	r.log.Info(messages.InstallCreatingDataWarehouse)
	grants := r.resolve(r.cfg.Paths().GrantsScript)
	if err := r.db.RunScript(r.ctx, r.params, r.app.Get(appconfig.KeyDB1Name), grants); err != nil {
		return fmt.Errorf(messages.InstallGrantsFailedFmt, grants, err)
	}
	if err := r.execute(r.cfg.Commands().DWHInit); err != nil {
		return fmt.Errorf(messages.InstallDWHInitFailedFmt, err)
	}
	return nil
}

func (r *installRun) symlinks() error {
	r.log.Info(messages.InstallCreatingSymlinks)
	sep := r.cfg.Paths().SymlinkSeparator
	for _, entry := range r.cfg.SymLinks() {
		pair, err := config.ParseSymlink(r.app.ReplaceTokensInString(entry), sep)
		if err != nil {
			return err
		}
		if err := r.sys.Symlink(pair.Target, pair.Link); err != nil {
			return fmt.Errorf(messages.InstallSymlinkFailedFmt, pair.Target, pair.Link, err)
		}
		r.log.WithField("path", pair.Link).Debugf(messages.InstallCreatedSymlinkFmt, pair.Target, pair.Link)
	}
	return nil
}

func (r *installRun) editionHook() error {
	edition := r.cfg.Edition()
	if !strings.EqualFold(strings.TrimSpace(r.app.Get(edition.Key)), edition.Community) {
		r.log.Debugf(messages.InstallEditionHookSkippedFmt, edition.Key)
		return nil
	}
	r.log.Info(messages.InstallRunningEditionHook)
	return r.app.RunEditionHook(r.ctx)
}

func (r *installRun) deployUIConf() error {
	r.log.Info(messages.InstallDeployingUIConf)
	template := r.cfg.Commands().UIConfDeploy
	for _, entry := range r.cfg.UIConfApps() {
		descriptor := r.app.ReplaceTokensInString(entry)
		if err := r.execute(strings.ReplaceAll(template, uiconfToken, shellquote.Join(descriptor))); err != nil {
			return fmt.Errorf(messages.InstallDeployUIConfFailedFmt, descriptor, err)
		}
		r.log.WithField("path", descriptor).Debugf(messages.InstallDeployedUIConfFmt, descriptor)
	}
	return nil
}

func (r *installRun) uninstaller() error {
	r.log.Info(messages.InstallCreatingUninstaller)
	paths := r.cfg.Paths()
	dir := filepath.Join(r.baseDir, paths.UninstallerDir)
	if err := r.sys.CopyTree(r.resolve(paths.UninstallerScript), dir); err != nil {
		return fmt.Errorf(messages.InstallUninstallerFailedFmt, dir, err)
	}
	saved, err := r.app.SaveUninstallerConfig(dir)
	if err != nil {
		return fmt.Errorf(messages.InstallUninstallerFailedFmt, dir, err)
	}
	r.log.WithField("path", saved).Debug(messages.InstallSavedUninstallerConfig)
	return nil
}

func (r *installRun) startServices() error {
	r.log.Info(messages.InstallStartingServices)
	cmds := r.cfg.Commands()
	services := []struct {
		progress string
		failure  string
		command  string
	}{
		{messages.InstallPopulatingFmt, messages.InstallPopulateFailedFmt, cmds.Populate},
		{messages.InstallStartingBatchFmt, messages.InstallStartBatchFailedFmt, cmds.BatchStart},
		{messages.InstallStartingSearchFmt, messages.InstallStartSearchFailedFmt, cmds.SearchStart},
	}
	for _, svc := range services {
		r.log.Infof(svc.progress, r.app.Redact(r.app.ReplaceTokensInString(svc.command)))
		if err := r.execute(svc.command); err != nil {
			return fmt.Errorf(svc.failure, err)
		}
	}
	return nil
}

func (r *installRun) execute(template string) error {
	return r.runCommand(r.ctx, r.app, r.log, template)
}
