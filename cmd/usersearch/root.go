package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"usersearch/internal/config"
	"usersearch/internal/logging"
	"usersearch/internal/lookup"
	"usersearch/internal/search"
	"usersearch/internal/trace"
	"usersearch/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds everything a command needs once configuration is resolved.
type app struct {
	cfg        *config.Config
	logger     *slog.Logger
	logCloser  io.Closer
	tracing    *trace.Provider
	controller *search.Controller
}

// close flushes spans and closes the log file.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := a.tracing.Shutdown(ctx); err != nil {
		a.logger.Warn("trace shutdown failed", "error", err)
	}
	_ = a.logCloser.Close()
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var configPath string

	root := &cobra.Command{
		Use:           "usersearch",
		Short:         "Search a user against a mocked backend",
		Long:          "usersearch is a small terminal UI: type a username, press Enter, and watch the\nsearch go from idle to searching to results, no results, or an error.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(cmd.Context(), v, configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			defer a.close()
			return runTUI(cmd.Context(), a)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/usersearch/config.toml)")
	pf.Duration("latency", 0, "simulated lookup latency (default 400ms)")
	pf.String("log-file", "", "append JSON logs to this file")
	pf.String("log-level", "", "log level (debug, info, warn, error)")
	_ = v.BindPFlag(config.KeyLookupLatency, pf.Lookup("latency"))
	_ = v.BindPFlag(config.KeyLogFile, pf.Lookup("log-file"))
	_ = v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))

	root.AddCommand(
		newSearchCmd(v, &configPath),
		newConfigCmd(&configPath),
		newVersionCmd(),
	)
	return root
}

// setup resolves configuration and builds the logger, tracer and controller.
func setup(ctx context.Context, v *viper.Viper, configPath string, explicit bool) (*app, error) {
	if configPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			configPath = p
		}
	}
	cfg, err := config.Load(v, configPath, explicit)
	if err != nil {
		return nil, err
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	logger, closer, err := logging.Open(cfg.Log.File, level)
	if err != nil {
		return nil, err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	tp, err := trace.Setup(ctx, trace.Config{
		Endpoint:    cfg.Trace.Endpoint,
		ServiceName: cfg.Trace.ServiceName,
		Insecure:    cfg.Trace.Insecure,
	})
	if err != nil {
		_ = closer.Close()
		return nil, err
	}

	var l lookup.Lookuper = lookup.NewMock(cfg.Lookup.Latency)
	if tp.Enabled() {
		l = lookup.WithTracing(l, tp.Tracer())
	}
	logger.Info("usersearch starting",
		"latency", cfg.Lookup.Latency.String(),
		"tracing", tp.Enabled(),
	)

	return &app{
		cfg:        cfg,
		logger:     logger,
		logCloser:  closer,
		tracing:    tp,
		controller: search.NewController(l, search.WithLogger(logger)),
	}, nil
}

func runTUI(parent context.Context, a *app) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	model := ui.NewAppModel(a.controller)
	model.Ctx = ctx
	p := tea.NewProgram(model.AsTeaModel(), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		a.logger.Error("ui exited with error", "error", err)
		return fmt.Errorf("run ui: %w", err)
	}
	a.logger.Info("ui exited")
	return nil
}
