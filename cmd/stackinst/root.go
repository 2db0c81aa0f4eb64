package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/conn-castle/stack-installer/internal/appconfig"
	"github.com/conn-castle/stack-installer/internal/config"
	"github.com/conn-castle/stack-installer/internal/database"
	"github.com/conn-castle/stack-installer/internal/install"
	"github.com/conn-castle/stack-installer/internal/logging"
	"github.com/conn-castle/stack-installer/internal/messages"
	"github.com/conn-castle/stack-installer/internal/prompt"
)

var (
	getwd             = os.Getwd
	newSystem         = func() install.System { return install.RealSystem{} }
	newDatabaseClient = func() database.Client { return database.NewMySQL() }
	newUI             = func() prompt.UI { return prompt.NewHuhUI() }
)

const (
	flagConfig   = "config"
	flagAnswers  = "answers"
	flagLogFile  = "log-file"
	flagLogLevel = "log-level"

	flagDBHost     = "db-host"
	flagDBPort     = "db-port"
	flagDBUser     = "db-user"
	flagDBPassword = "db-password"
	flagYes        = "yes"

	defaultDBHost = "localhost"
	defaultDBUser = "root"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath  string
	answersPath string
	logFile     string
	logLevel    string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolP("version", "v", false, messages.RootVersionFlag)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, flagConfig, "", messages.RootFlagConfig)
	flags.StringVar(&opts.answersPath, flagAnswers, "", messages.RootFlagAnswers)
	flags.StringVar(&opts.logFile, flagLogFile, "", messages.RootFlagLogFile)
	flags.StringVar(&opts.logLevel, flagLogLevel, logging.DefaultLevel, messages.RootFlagLogLevel)

	cmd.AddCommand(
		newInstallCmd(opts),
		newLeftoversCmd(opts),
		newCleanupCmd(opts),
		newDoctorCmd(opts),
		newTokensCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// locations resolves the installer files from the working directory and flag overrides.
func (o *globalOptions) locations() (config.Locations, error) {
	root, err := getwd()
	if err != nil {
		return config.Locations{}, err
	}
	loc := config.DefaultLocations(root)
	overrides := []struct {
		flag   string
		target *string
	}{
		{o.configPath, &loc.ConfigPath},
		{o.answersPath, &loc.AnswersPath},
		{o.logFile, &loc.LogPath},
	}
	for _, ov := range overrides {
		if ov.flag == "" {
			continue
		}
		expanded, err := homedir.Expand(ov.flag)
		if err != nil {
			return config.Locations{}, fmt.Errorf(messages.RootExpandPathFmt, ov.flag, err)
		}
		*ov.target = expanded
	}
	return loc, nil
}

// session is everything a command needs to drive the installer.
type session struct {
	loc       config.Locations
	cfg       *config.InstallConfig
	app       *appconfig.AppConfig
	log       *logrus.Logger
	installer *install.Installer
	closeLog  func() error
}

// openSession loads the install config and answers and builds the installer.
// Configuration errors are returned before anything touches the host.
func openSession(cmd *cobra.Command, opts *globalOptions) (*session, error) {
	loc, err := opts.locations()
	if err != nil {
		return nil, err
	}
	log, closeLog, err := logging.Init(logging.Options{
		Level:   opts.logLevel,
		File:    loc.LogPath,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	s := &session{loc: loc, log: log, closeLog: closeLog}

	s.cfg, err = config.Load(loc.ConfigPath)
	if err != nil {
		s.Close()
		return nil, err
	}
	sys := newSystem()
	s.app, err = appconfig.Load(loc.AnswersPath, appconfig.Options{
		EditionHook: s.cfg.Edition().Hook,
		Run:         sys.Execute,
		Logger:      log,
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	s.installer, err = install.New(install.Options{
		Config: s.cfg,
		System: sys,
		DB:     newDatabaseClient(),
		Root:   loc.Root,
		Logger: log,
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close flushes the install log.
func (s *session) Close() {
	if s.closeLog != nil {
		_ = s.closeLog()
	}
}

// dbFlags holds the database connection overrides.
type dbFlags struct {
	host     string
	port     int
	user     string
	password string
}

func addDBFlags(cmd *cobra.Command, f *dbFlags) {
	cmd.Flags().StringVar(&f.host, flagDBHost, "", messages.InstallFlagDBHost)
	cmd.Flags().IntVar(&f.port, flagDBPort, 0, messages.InstallFlagDBPort)
	cmd.Flags().StringVar(&f.user, flagDBUser, "", messages.InstallFlagDBUser)
	cmd.Flags().StringVar(&f.password, flagDBPassword, "", messages.InstallFlagDBPassword)
}

// dbParams resolves connection parameters from the answers, then flags.
// When interactive is set and no password is known, the operator is asked for one.
func dbParams(cmd *cobra.Command, app *appconfig.AppConfig, f *dbFlags, interactive bool) (database.Params, error) {
	p := database.Params{
		Host:     app.Get(appconfig.KeyDBHost),
		Port:     database.DefaultPort,
		User:     app.Get(appconfig.KeyDBUser),
		Password: app.Get(appconfig.KeyDBPass),
	}
	if p.Host == "" {
		p.Host = defaultDBHost
	}
	if p.User == "" {
		p.User = defaultDBUser
	}
	if raw := app.Get(appconfig.KeyDBPort); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return database.Params{}, fmt.Errorf(messages.InstallInvalidDBPortFmt, raw, err)
		}
		p.Port = port
	}

	flags := cmd.Flags()
	if flags.Changed(flagDBHost) {
		p.Host = f.host
	}
	if flags.Changed(flagDBPort) {
		p.Port = f.port
	}
	if flags.Changed(flagDBUser) {
		p.User = f.user
	}
	if flags.Changed(flagDBPassword) {
		p.Password = f.password
		return p, nil
	}
	if p.Password != "" || !interactive {
		return p, nil
	}

	var password string
	if err := newUI().SecretInput(messages.InstallDBPasswordPrompt, &password); err != nil {
		if errors.Is(err, prompt.ErrNotInteractive) {
			return database.Params{}, errors.New(messages.InstallDBPasswordMissing)
		}
		return database.Params{}, err
	}
	p.Password = password
	return p, nil
}

// confirm asks a yes/no question unless yes is already set.
func confirm(yes bool, title string) (bool, error) {
	if yes {
		return true, nil
	}
	var ok bool
	if err := newUI().Confirm(title, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.VersionUse,
		Short: messages.VersionShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), versionString())
			return err
		},
	}
}
