package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"contactsearch/internal/config"
	"contactsearch/internal/eventbus"
	"contactsearch/internal/logging"
	"contactsearch/internal/store"
)

var (
	// Global flags
	configPath string
	dbPath     string
	useMemory  bool
	logLevel   string

	// TUI flags
	seedPath string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd runs the contact search TUI
var rootCmd = &cobra.Command{
	Use:   "contactsearch",
	Short: "Search, view, edit and delete contacts from the terminal",
	Long: `contactsearch is a terminal contact browser.

Type a name to search contacts, then use the row actions to view, edit or
delete a contact. Contacts associated with a case cannot be deleted.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.NewConfigService(configPath).Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}
		if useMemory {
			cfg.Database.Memory = true
		}
		if logLevel != "" {
			cfg.Log.Level = logLevel
		}

		logger, err = logging.New(cfg.Log)
		if err != nil {
			return err
		}
		logger.Debug("config loaded",
			zap.String("db", cfg.Database.Path),
			zap.Bool("memory", cfg.Database.Memory))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTUI,
}

// seedCmd loads contacts and cases from a YAML file
var seedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Load contacts and cases from a YAML file",
	Long: `Loads contacts (and the cases associated with them) into the record store.

Example file:
  contacts:
    - name: Edna Krabappel
      email: edna@springfield.edu
      billing_city: Springfield
      cases:
        - subject: Classroom projector`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

// searchCmd prints the contacts matching a keyword
var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Print the contacts whose name contains keyword",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (or set CONTACTSEARCH_DB_PATH)")
	rootCmd.PersistentFlags().BoolVar(&useMemory, "memory", false, "Use a throwaway in-memory store")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.Flags().StringVar(&seedPath, "seed", "", "YAML file loaded into the store before starting")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(searchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore opens the configured record store
func openStore(bus eventbus.EventBus) (store.Store, error) {
	opts := []store.Option{store.WithLogger(logger.Named("store"))}
	if bus != nil {
		opts = append(opts, store.WithBus(bus))
	}
	if cfg.Database.Memory {
		return store.NewMemoryStore(opts...), nil
	}
	st, err := store.OpenSQLite(cfg.Database.Path, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Database.Path, err)
	}
	return st, nil
}
