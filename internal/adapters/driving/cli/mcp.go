package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/seedmerge/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol integration",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve mapping, matching and merging tools over MCP",
	Long: `Serve seedmerge to an MCP client. Tools: build_column_mapping,
clean_value, find_best_match, merge_states. Resources: seedmerge://settings
and seedmerge://mappings/{kind}.

The server speaks JSON-RPC on stdio unless --port is given, in which case
it serves streamable HTTP on that port.

  seedmerge mcp serve
  seedmerge mcp serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if mcpPort < 0 || mcpPort > 65535 {
		return fmt.Errorf("invalid port %d", mcpPort)
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Mapping:  mappingService,
		Match:    matchService,
		Merge:    mergeService,
		Settings: settingsService,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if mcpPort == 0 {
		return server.Run(ctx)
	}
	addr := fmt.Sprintf(":%d", mcpPort)
	fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s/\n", addr)
	return server.RunHTTP(ctx, addr)
}
