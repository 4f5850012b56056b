package mcptools

import (
	"github.com/dshills/arbiter/internal/debate"
	"github.com/dshills/arbiter/internal/history"
)

// RunDebateInput is the input for the run_debate MCP tool.
type RunDebateInput struct {
	Request    string   `json:"request" jsonschema:"description of the code change or plan to debate"`
	FilePath   string   `json:"filePath,omitempty" jsonschema:"path to the plan or code file being debated"`
	FocusAreas []string `json:"focusAreas,omitempty" jsonschema:"focus areas such as bug, security, performance (inferred from the request when omitted)"`
}

// RunDebateOutput is the result of the run_debate MCP tool.
type RunDebateOutput struct {
	Outcome debate.Outcome `json:"outcome"`
}

// DebateIterativeInput is the input for the debate_iterative MCP tool.
type DebateIterativeInput struct {
	Request       string `json:"request,omitempty" jsonschema:"description of the change to debate (first call only)"`
	FilePath      string `json:"filePath,omitempty" jsonschema:"path to the plan file (first call only)"`
	TargetScore   int    `json:"targetScore,omitempty" jsonschema:"consensus score to reach before stopping (default: 85)"`
	MaxIterations int    `json:"maxIterations,omitempty" jsonschema:"maximum revision cycles (default: 3)"`
	SessionID     string `json:"sessionId,omitempty" jsonschema:"session id from a previous call, for iterations 2+"`
}

// DebateIterativeOutput is the result of the debate_iterative MCP tool.
type DebateIterativeOutput struct {
	SessionID string         `json:"sessionId"`
	Status    string         `json:"status"` // needs_revision, target_reached, max_iterations
	Iteration int            `json:"iteration"`
	BestScore int            `json:"bestScore"`
	Outcome   debate.Outcome `json:"outcome"`
}

// ProviderStatusInput is the input for the provider_status MCP tool.
type ProviderStatusInput struct{}

// ProviderStatusOutput is the result of the provider_status MCP tool.
type ProviderStatusOutput struct {
	Providers []ProviderStatus `json:"providers"`
}

// ProviderStatus reports one configured provider's availability.
type ProviderStatus struct {
	Name      string `json:"name"`
	Vendor    string `json:"vendor"`
	Available bool   `json:"available"`
}

// DebateHistoryInput is the input for the debate_history MCP tool.
type DebateHistoryInput struct {
	MaxRecords int  `json:"maxRecords,omitempty" jsonschema:"maximum number of records to return (default: 10)"`
	Stats      bool `json:"stats,omitempty" jsonschema:"include aggregate statistics over all stored debates"`
}

// DebateHistoryOutput is the result of the debate_history MCP tool.
type DebateHistoryOutput struct {
	Records []history.Record `json:"records"`
	Stats   *history.Stats   `json:"stats,omitempty"`
}
