package cmd

import (
	"github.com/goatarena/goatrank/internal/goatstore"
	"github.com/goatarena/goatrank/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the goatrank MCP server",
	Long:  `Launch an MCP server that allows AI agents to run scoring, compute influence and capture snapshots via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Suppress the normal header logs when running in MCP mode
		// to avoid polluting stdio which is used for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, goatstore.GetStore())
	},
}
