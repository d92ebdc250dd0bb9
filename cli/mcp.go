// ABOUTME: MCP server subcommand
// ABOUTME: Serves the CRM tools over stdio for MCP clients
package cli

import (
	"github.com/harperreed/salescrm/db"
	"github.com/harperreed/salescrm/handlers"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withStore(func(store *db.Store) error {
				// stdout carries the protocol; logs go to stderr.
				a.logger.Info("Starting MCP server")
				server := handlers.NewServer(store, a.version)
				return server.Run(cmd.Context(), &mcp.StdioTransport{})
			})
		},
	}
}
