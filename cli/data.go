// ABOUTME: data subcommands for sample data management
// ABOUTME: Load, clear, reset, and export the CRM tables
package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/salescrm/db"
	"github.com/spf13/cobra"
)

var errNotConfirmed = errors.New("aborted: confirmation required (use --yes when not on a terminal)")

func newDataCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Manage CRM data",
	}
	cmd.AddCommand(
		newDataLoadCommand(a),
		newDataClearCommand(a),
		newDataResetCommand(a),
		newDataExportCommand(a),
	)
	return cmd
}

func newDataLoadCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Load sample data into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(store *db.Store) error {
				counts, loaded, err := store.LoadSampleData(cmd.Context())
				if err != nil {
					return err
				}
				if !loaded {
					fmt.Fprintln(cmd.OutOrStdout(), "Database already has customers; sample data not loaded")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded %s\n", counts)
				return nil
			})
		},
	}
}

func newDataClearCommand(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all CRM data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.confirm(cmd, yes, "This deletes every customer, contact, deal, and activity."); err != nil {
				return err
			}
			return a.withStore(func(store *db.Store) error {
				counts, err := store.ClearAll(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", counts)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newDataResetCommand(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear all data and reload the sample data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.confirm(cmd, yes, "This replaces all CRM data with the sample data."); err != nil {
				return err
			}
			return a.withStore(func(store *db.Store) error {
				ctx := cmd.Context()
				if _, err := store.ClearAll(ctx); err != nil {
					return err
				}
				counts, _, err := store.LoadSampleData(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reset complete: %s\n", counts)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newDataExportCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all CRM data as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(store *db.Store) error {
				export, err := store.ExportData(cmd.Context())
				if err != nil {
					return err
				}
				data, err := json.MarshalIndent(export, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode export: %w", err)
				}
				if err := writeOutput(cmd.OutOrStdout(), output, data); err != nil {
					return err
				}
				if output != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", export.Counts(), output)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

// confirm asks for a typed "yes" on an interactive terminal. Without a
// terminal the operation requires --yes.
func (a *app) confirm(cmd *cobra.Command, yes bool, warning string) error {
	if yes {
		return nil
	}
	if !a.stdinIsTerminal() {
		return errNotConfirmed
	}

	fmt.Fprintln(cmd.OutOrStdout(), warning)
	fmt.Fprint(cmd.OutOrStdout(), "Type 'yes' to continue: ")
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return errNotConfirmed
	}
	if strings.TrimSpace(strings.ToLower(answer)) != "yes" {
		return errNotConfirmed
	}
	return nil
}
