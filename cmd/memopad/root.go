// ABOUTME: Root command: loads config, sets up logging and opens the memo store.
// ABOUTME: Holds the process-wide notebook and identity service used by subcommands.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harper/memopad/internal/auth"
	"github.com/harper/memopad/internal/blob"
	"github.com/harper/memopad/internal/config"
	"github.com/harper/memopad/internal/logging"
	"github.com/harper/memopad/internal/notebook"
	"github.com/harper/memopad/internal/store"
	"github.com/harper/memopad/internal/ui"
)

var (
	cfg      *config.Config
	logger   *log.Logger
	blobs    blob.Store
	notes    *notebook.Notebook
	identity *auth.Service
)

var rootCmd = &cobra.Command{
	Use:   "memopad",
	Short: "Tagged memos from the terminal",
	Long: `memopad keeps short rich-text memos grouped by tag.

Memos live in a local sqlite file by default. Other backends
(badger, charm, postgres) are selected with --backend or the config file.`,
	Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if v, _ := cmd.Flags().GetString("backend"); v != "" {
			cfg.Backend = v
		}
		if v, _ := cmd.Flags().GetString("db"); v != "" {
			cfg.DataPath = v
		}

		logger = logging.Setup(cfg.LogLevel)

		blobs, err = blob.Open(cmd.Context(), blob.Options{
			Backend:     cfg.Backend,
			Path:        dataPath(cfg),
			PostgresURL: cfg.PostgresURL,
			CharmHost:   cfg.CharmHost,
			AutoSync:    cfg.AutoSync,
		})
		if err != nil {
			return err
		}
		logger.Debug("opened store", "backend", cfg.Backend)

		notes = notebook.New(store.New(blobs, store.WithLogger(logger)))
		identity = newIdentity(cfg, blobs)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if blobs == nil {
			return nil
		}
		return blobs.Close()
	},
}

// dataPath resolves the on-disk location for file backed stores.
func dataPath(c *config.Config) string {
	if c.DataPath != "" || c.Backend != blob.BackendBadger {
		return c.DataPath
	}
	return filepath.Join(filepath.Dir(blob.DefaultPath()), "badger")
}

func newIdentity(c *config.Config, blobs blob.Store) *auth.Service {
	opts := []auth.Option{auth.WithSSO(auth.NewCharm(c.CharmHost))}
	if c.FirebaseAPIKey != "" {
		opts = append(opts, auth.WithPassword(auth.NewFirebase(c.FirebaseAPIKey, c.FirebaseProjectID)))
	}
	return auth.NewService(blobs, opts...)
}

// Execute runs the root command with a context canceled on interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		return err
	}
	return nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid memo id %q", arg)
	}
	return id, nil
}

func init() {
	rootCmd.PersistentFlags().String("backend", "", "storage backend (sqlite|badger|charm|postgres|memory)")
	rootCmd.PersistentFlags().String("db", "", "sqlite file or badger directory")
}
