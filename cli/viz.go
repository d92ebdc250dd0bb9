// ABOUTME: Visualization CLI commands
// ABOUTME: Terminal dashboard and Graphviz DOT output for the pipeline and customers
package cli

import (
	"fmt"
	"strconv"

	"github.com/harperreed/salescrm/analytics"
	"github.com/harperreed/salescrm/db"
	"github.com/harperreed/salescrm/viz"
	"github.com/spf13/cobra"
)

func newDashboardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Print the sales dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(store *db.Store) error {
				dashboard, err := analytics.NewService(store).Dashboard(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), viz.RenderDashboard(dashboard))
				return nil
			})
		},
	}
}

func newVizCommand(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "viz",
		Short: "Generate Graphviz diagrams",
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	cmd.AddCommand(&cobra.Command{
		Use:   "pipeline",
		Short: "Deals grouped by pipeline stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(store *db.Store) error {
				dot, err := viz.NewGraphGenerator(store).GeneratePipelineGraph(cmd.Context())
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), output, []byte(dot))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "customer <id>",
		Short: "A customer with its contacts, deals, and activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid customer id %q", args[0])
			}
			return a.withStore(func(store *db.Store) error {
				dot, err := viz.NewGraphGenerator(store).GenerateCustomerGraph(cmd.Context(), id)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), output, []byte(dot))
			})
		},
	})

	return cmd
}
