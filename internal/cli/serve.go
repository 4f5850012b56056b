package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dshills/arbiter/internal/config"
	"github.com/dshills/arbiter/internal/mcptools"
)

var serveHTTP string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the debate tools over MCP",
	Long: `Expose run_debate, debate_iterative, provider_status, and debate_history
as MCP tools. By default the server speaks stdio; --http serves streamable
HTTP on the given address instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(nil)
		if err != nil {
			return err
		}

		orch, hist, err := buildOrchestrator(cfg)
		if err != nil {
			exitCode = ExitRuntimeError
			return err
		}

		svc := mcptools.NewDebateService(orch, hist, cfg.Primary.Spec(), cfg.Counter.Spec())
		server := mcptools.NewDebateMCPServer(svc)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if serveHTTP != "" {
			fmt.Fprintf(os.Stderr, "arbiter MCP server listening on %s\n", serveHTTP)
			return mcptools.RunHTTP(ctx, server, serveHTTP)
		}
		return mcptools.RunStdio(ctx, server)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHTTP, "http", "", "serve streamable HTTP on this address instead of stdio")
}
