package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/app"
	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/logging"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

// runner is one command invocation: resolved config, open store and the app
// on top of it. close must run before the process exits so queued writes land.
type runner struct {
	cfg     *config.Config
	app     *app.App
	store   store.Store
	log     *log.Logger
	logFile *os.File
	out     io.Writer
	errOut  io.Writer
}

// loadConfig resolves config files, env and the root flags.
func loadConfig(opts *RootOptions, d deps) (*config.Config, error) {
	src := config.DefaultSources(opts.ConfigPath)
	src.LookupEnv = d.lookupEnv
	cfg, err := config.Load(src)
	if err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: "config", Err: err}
	}
	if opts.Backend != "" {
		cfg.Backend = opts.Backend
	}
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Theme != "" {
		cfg.Theme = opts.Theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, &ExitError{Code: ExitUsage, Message: "config", Err: err}
	}
	return cfg, nil
}

// openRunner builds the app for cmd. With toFile set, logs go to the data
// dir instead of stderr so they stay off the TUI screen.
func openRunner(cmd *cobra.Command, opts *RootOptions, d deps, toFile bool) (*runner, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(opts, d)
	if err != nil {
		return nil, err
	}

	ui.SetTheme(cfg.Theme)
	if opts.NoColor {
		ui.SetColorForcing(false, true)
	}

	r := &runner{cfg: cfg, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
	if toFile {
		r.log, r.logFile, err = logging.OpenFile(cfg.DataDir, cfg.LogOptions())
		if err != nil {
			return nil, failure("open log", err)
		}
	} else {
		r.log = logging.New(r.errOut, cfg.LogOptions())
	}

	r.store, err = store.Open(ctx, cfg.StoreOptions())
	if err != nil {
		r.closeLog()
		return nil, failure("open store", err)
	}
	r.log.Debug("store opened", "backend", cfg.Backend)

	repoOpts := append([]todo.Option{todo.WithLogger(r.log)}, d.repoOpts...)
	repo := todo.New(r.store, repoOpts...)
	if err := repo.Initialize(ctx); err != nil && !toFile {
		ui.Warn(r.errOut, "starting with an empty list: "+err.Error())
	}
	r.app = app.New(repo)
	return r, nil
}

// close flushes pending writes and releases the store. A write that failed
// during the command is reported as a failure.
func (r *runner) close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var errs []error
	if err := r.app.Close(ctx); err != nil {
		errs = append(errs, failure("flush", err))
	}
	if err := r.app.SyncErr(); err != nil {
		errs = append(errs, failure("sync failed", err))
	}
	if err := r.store.Close(); err != nil {
		r.log.Warn("close store", "err", err)
	}
	r.closeLog()
	return errors.Join(errs...)
}

func (r *runner) closeLog() {
	if r.logFile != nil {
		_ = r.logFile.Close()
	}
}
