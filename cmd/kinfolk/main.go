package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tgienger/kinfolk/internal/api"
	"github.com/tgienger/kinfolk/internal/config"
	"github.com/tgienger/kinfolk/internal/db"
	"github.com/tgienger/kinfolk/internal/logging"
	"github.com/tgienger/kinfolk/internal/nav"
	"github.com/tgienger/kinfolk/internal/persist"
	"github.com/tgienger/kinfolk/internal/session"
	"github.com/tgienger/kinfolk/internal/state"
	"github.com/tgienger/kinfolk/internal/ui"
	"go.uber.org/zap"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		dataDir string
		storage string
		apiURL  string
	)

	cmd := &cobra.Command{
		Use:           "kinfolk",
		Short:         "A caregiving companion for the terminal",
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(dataDir)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.DataDir == "" {
				dir, err := db.DataDir()
				if err != nil {
					return fmt.Errorf("resolve data directory: %w", err)
				}
				cfg.DataDir = dir
			}
			if cmd.Flags().Changed("storage") {
				cfg.Storage = storage
			}
			if cmd.Flags().Changed("api-url") {
				cfg.API.BaseURL = apiURL
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory for the local database and log file")
	cmd.Flags().StringVar(&storage, "storage", db.KindSQLite, "storage backend: sqlite, bolt or memory")
	cmd.Flags().StringVar(&apiURL, "api-url", config.DefaultAPIBaseURL, "backend API base URL")
	return cmd
}

func run(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	log, closeLog, err := logging.New(logging.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		File:     cfg.LogFile(),
	})
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer closeLog()

	kv, err := db.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.Storage, err)
	}
	defer kv.Close()

	store := state.Open(persist.NewAdapter(kv, log), state.WithLogger(log))
	log.Info("state ready",
		zap.String("storage", cfg.Storage),
		zap.Bool("seeded", store.Seeded()),
	)

	var tokens session.TokenStore = session.NewStorageTokenStore(kv)
	if cfg.Session.Store == config.SessionStoreKeyring {
		tokens = session.NewKeyringTokenStore()
	}

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, log)
	app := ui.NewApp(nav.New(), store, client, tokens, log)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run application: %w", err)
	}
	return nil
}
