package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewDebateMCPServer creates an MCP server with the debate tools registered.
func NewDebateMCPServer(svc *DebateService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "arbiter",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "run_debate",
		Description: "Run a two-perspective AI debate over a plan or code change. Both configured providers critique independently and the tool returns the consensus verdict with a 0-100 score.",
	}, svc.RunDebate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "debate_iterative",
		Description: "Run an iterative debate toward a target consensus score. The first call opens a session; after revising the plan, call again with the session id until the target is reached or iterations run out.",
	}, svc.DebateIterative)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "provider_status",
		Description: "Report availability of the configured primary and counter providers.",
	}, svc.ProviderStatus)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "debate_history",
		Description: "List recent debate records, optionally with aggregate statistics (average consensus, proceed rate).",
	}, svc.DebateHistory)

	return server
}

// RunStdio runs the MCP server on stdio transport, blocking until stdin is
// closed or the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the MCP tools over streamable HTTP on addr, shutting down
// gracefully when the context is cancelled.
func RunHTTP(ctx context.Context, server *mcp.Server, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
