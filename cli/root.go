// ABOUTME: Root cobra command and shared command state
// ABOUTME: Loads layered config, applies flag overrides, and opens the store for subcommands
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/harperreed/salescrm/config"
	"github.com/harperreed/salescrm/db"
	"github.com/harperreed/salescrm/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	version string

	configPath string
	dbPath     string
	logLevel   string
	port       int

	cfg    *config.Config
	logger *zap.Logger

	// stdinIsTerminal reports whether interactive confirmation is possible.
	stdinIsTerminal func() bool
}

func newApp(version string) *app {
	return &app{
		version: version,
		stdinIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Execute runs the command line.
func Execute(version string) error {
	return newRootCommand(newApp(version)).Execute()
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "salescrm",
		Short:         "Sales CRM with analytics and AI assist",
		Long:          "Manage customers, contacts, deals, and activities over REST, MCP, or the terminal.",
		Version:       a.version,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/salescrm/config.yaml)")
	flags.StringVar(&a.dbPath, "db-path", "", "database path (default: $XDG_DATA_HOME/salescrm/crm.db)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.IntVar(&a.port, "port", 0, "HTTP port for serve")

	root.AddCommand(
		newServeCommand(a),
		newMCPCommand(a),
		newDataCommand(a),
		newDashboardCommand(a),
		newVizCommand(a),
		newTUICommand(a),
	)

	return root
}

// setup loads configuration and applies flags that were set explicitly.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("db-path") {
		cfg.Database.Path = a.dbPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("port") {
		cfg.Server.Port = a.port
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) openStore() (*db.Store, error) {
	store, err := db.Open(a.cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", a.cfg.Database.Path, err)
	}
	a.logger.Debug("Database opened", zap.String("path", a.cfg.Database.Path))
	return store, nil
}

// withStore opens the store for the duration of fn.
func (a *app) withStore(fn func(*db.Store) error) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	return fn(store)
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		if _, err := w.Write(data); err != nil {
			return err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			_, err := io.WriteString(w, "\n")
			return err
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
