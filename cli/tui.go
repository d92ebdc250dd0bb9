// ABOUTME: tui subcommand
// ABOUTME: Launches the interactive customer and deal browser
package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/harperreed/salescrm/db"
	"github.com/harperreed/salescrm/tui"
	"github.com/spf13/cobra"
)

func newTUICommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse customers and deals interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(store *db.Store) error {
				p := tea.NewProgram(tui.NewModel(cmd.Context(), store),
					tea.WithAltScreen(),
					tea.WithContext(cmd.Context()))
				_, err := p.Run()
				return err
			})
		},
	}
}
