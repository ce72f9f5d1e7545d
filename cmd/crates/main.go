package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/glabrego/crates-cli/internal/app"
	"github.com/glabrego/crates-cli/internal/config"
	"github.com/glabrego/crates-cli/internal/logging"
	"github.com/glabrego/crates-cli/internal/registry"
	"github.com/glabrego/crates-cli/internal/storage"
	"github.com/glabrego/crates-cli/internal/tui"
	"github.com/glabrego/crates-cli/internal/tui/action"
	"github.com/glabrego/crates-cli/internal/tui/keybind"
	"github.com/glabrego/crates-cli/internal/tui/task"
	"github.com/glabrego/crates-cli/internal/tui/theme"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "crates: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile   string
		printDefault bool
	)

	cmd := &cobra.Command{
		Use:           "crates [query]",
		Short:         "Browse crates.io from the terminal",
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printDefault {
				return config.PrintDefault(cmd.OutOrStdout())
			}

			cfg, err := config.Load(configFile, cmd.Flags())
			if err != nil {
				return err
			}

			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			return run(cfg, query)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to config file")
	cmd.Flags().BoolVar(&printDefault, "print-default-config", false, "print the default config as YAML and exit")
	cmd.Flags().String("log-level", "", "log level (debug, info, warn, error, off)")
	cmd.Flags().Float64("tick-rate", 0, "app ticks per second")
	cmd.Flags().Float64("frame-rate", 0, "render frames per second")
	cmd.Flags().Uint64("page-size", 0, "search results per page (1-100)")
	cmd.Flags().String("base-url", "", "registry API base URL")
	cmd.Flags().String("data-dir", "", "directory for the log file and response cache")
	cmd.Flags().Bool("cache", true, "enable the sqlite response cache")
	return cmd
}

func run(cfg config.Config, query string) error {
	logger, closeLog, err := logging.Setup(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.Info("starting", "version", version, "query", query)

	cache := openCache(cfg, logger)
	if cache != nil {
		defer cache.Close()
	}

	bindings, err := keybind.Parse(cfg.Keybindings)
	if err != nil {
		return err
	}

	client := registry.NewClient(cfg.BaseURL, cfg.UserAgent, nil)
	var service tui.Fetcher
	if cache != nil {
		service = app.NewService(client, cache, logger)
	} else {
		service = app.NewService(client, nil, logger)
	}

	tasks := task.NewManager(logger)
	model := tui.New(tui.Options{
		Fetcher:        service,
		Tasks:          tasks,
		Bindings:       bindings,
		Theme:          theme.Default(),
		Logger:         logger,
		TickRate:       cfg.TickInterval(),
		KeyRefreshRate: cfg.KeyRefreshInterval(),
		PageSize:       cfg.PageSize,
		InitialQuery:   query,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithFPS(int(cfg.FrameRate)))
	tasks.SetNotify(func(a action.Action) { p.Send(a) })

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	logger.Info("shutting down")
	return nil
}

// openCache sets up the sqlite response cache. Failures degrade to
// network-only operation instead of refusing to start.
func openCache(cfg config.Config, logger *slog.Logger) *storage.Cache {
	if !cfg.CacheEnabled {
		return nil
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Warn("cache disabled, cannot create data dir", "dir", cfg.DataDir, "error", err)
		return nil
	}
	cache, err := storage.NewCache(cfg.CachePath())
	if err != nil {
		logger.Warn("cache disabled, cannot open database", "path", cfg.CachePath(), "error", err)
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := cache.Init(ctx); err != nil {
		logger.Warn("cache disabled, schema init failed", "error", err)
		_ = cache.Close()
		return nil
	}
	if err := cache.CheckWritable(ctx); err != nil {
		logger.Warn("cache disabled, database not writable", "path", cfg.CachePath(), "error", err)
		_ = cache.Close()
		return nil
	}
	return cache
}
