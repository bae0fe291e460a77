package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/zoidbergclawd/bard/internal/logging"
	mcpserver "github.com/zoidbergclawd/bard/internal/mcp"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

var serveFlags struct {
	maxConcurrent int
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server over stdin/stdout exposing the compose_song and
fetch_readme tools, so MCP-capable editors and agents can turn READMEs
into songs without shelling out.

The server monitors for parent process death. When the host disconnects
or restarts, the server self-terminates to prevent zombie processes.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&serveFlags.maxConcurrent, "max-concurrent", 0,
		"max simultaneous generations (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fetcher, err := newFetcher(cfg)
	if err != nil {
		return err
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	maxConcurrent := cfg.Serve.MaxConcurrent
	if serveFlags.maxConcurrent > 0 {
		maxConcurrent = serveFlags.maxConcurrent
	}
	srv := mcpserver.NewServer(fetcher, gen, mcpserver.WithMaxConcurrent(int64(maxConcurrent)))

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting bard MCP server over stdio (parent watchdog active)")
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
