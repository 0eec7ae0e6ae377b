// Package cli wires config, state, logging and the API client together and
// exposes them as the taskpad command tree. With no subcommand it starts the
// interactive UI.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"taskpad/internal/api"
	"taskpad/internal/auth"
	"taskpad/internal/config"
	"taskpad/internal/prefs"
	"taskpad/internal/session"
	"taskpad/internal/storage"
	"taskpad/internal/ui"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitUser    = 1
	ExitAuth    = 2
	ExitBackend = 3
)

var errNotLoggedIn = errors.New("not logged in, run `taskpad login` first")

type App struct {
	ConfigPath string
	APIURL     string
	Debug      bool

	cfg     config.Config
	store   *storage.Store
	logFile io.Closer
	logger  *slog.Logger
	client  *api.Client
	sess    *session.Session
	auth    *auth.Service
	prefs   *prefs.Prefs
}

// Execute runs the command line in args and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	app := &App{}
	cmd := newRootCmd(app)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	app.close()
	if err != nil {
		fmt.Fprintf(stderr, "failed to run taskpad: %v\n", err)
		return ExitCode(err)
	}
	return ExitOK
}

// ExitCode maps an error to the process exit code: 1 for input errors, 2
// when the session is missing or rejected, 3 when the server or network
// failed.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, errNotLoggedIn) || api.IsAuth(err) {
		return ExitAuth
	}
	var se *api.ServerError
	if errors.As(err, &se) {
		if se.Status == http.StatusUnauthorized || se.Status == http.StatusForbidden {
			return ExitAuth
		}
		return ExitBackend
	}
	var ne *api.NetworkError
	if errors.As(err, &ne) {
		return ExitBackend
	}
	return ExitUser
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "taskpad",
		Short:         "A personal task list backed by a remote task API",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive UI
  taskpad

  # Scriptable commands
  taskpad login --email ann@example.com --password 'Secret1!'
  taskpad add buy milk
  taskpad list --filter pending
`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cmd.Help()
			}
			return ui.Run(ui.Deps{
				Ctx:    cmd.Context(),
				Client: app.client,
				Auth:   app.auth,
				Prefs:  app.prefs,
				Config: app.cfg,
				Logger: app.logger,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to config.toml (default: $XDG_CONFIG_HOME/taskpad/config.toml)")
	cmd.PersistentFlags().StringVar(&app.APIURL, "api-url", "", "Task API base URL (overrides api_url and "+config.EnvAPIURL+")")
	cmd.PersistentFlags().BoolVar(&app.Debug, "debug", false, "Write debug records to the log file")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newSignupCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newForgotPasswordCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newDoneCmd(app, true))
	cmd.AddCommand(newDoneCmd(app, false))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRmCmd(app))
	return cmd
}

func (app *App) open() error {
	path := app.ConfigPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if app.APIURL != "" {
		cfg.APIURL = app.APIURL
	}
	app.cfg = cfg

	if err := app.openLog(); err != nil {
		return err
	}

	store, err := storage.Open(cfg.StatePath)
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	app.store = store

	app.sess = session.New(store)
	app.sess.OnClear(func() { app.logger.Info("session cleared") })
	app.client = api.New(cfg.APIURL, time.Duration(cfg.RequestTimeout)*time.Second, app.logger)
	app.auth = auth.NewService(app.client, app.sess, app.logger)

	p, err := prefs.Load(store)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	app.prefs = p

	app.logger.Debug("started", "api_url", app.client.BaseURL(), "state", cfg.StatePath)
	return nil
}

// openLog sends log records to the configured file. The UI owns the
// terminal, so nothing is logged to stderr.
func (app *App) openLog() error {
	if err := os.MkdirAll(filepath.Dir(app.cfg.LogPath), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(app.cfg.LogPath, "taskpad")
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	level := slog.LevelInfo
	if app.Debug {
		level = slog.LevelDebug
	}
	app.logFile = f
	app.logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return nil
}

func (app *App) close() {
	if app.store != nil {
		_ = app.store.Close()
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
	}
}

func (app *App) requireLogin() (string, error) {
	if !app.sess.IsLoggedIn() {
		return "", errNotLoggedIn
	}
	return app.sess.UserID(), nil
}
