package mcptools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dshills/arbiter/internal/debate"
	"github.com/dshills/arbiter/internal/history"
	"github.com/dshills/arbiter/internal/providers"
)

// DebateService holds the orchestrator and stores used by MCP tool handlers.
type DebateService struct {
	orch     *debate.Orchestrator
	sessions *debate.SessionStore
	history  *history.Store
	specs    []providers.Spec
}

// NewDebateService creates a DebateService. The specs are the configured
// provider pair, used only for status reporting.
func NewDebateService(orch *debate.Orchestrator, hist *history.Store, specs ...providers.Spec) *DebateService {
	return &DebateService{
		orch:     orch,
		sessions: debate.NewSessionStore(),
		history:  hist,
		specs:    specs,
	}
}

// RunDebate executes one debate and returns the collected outcome.
func (s *DebateService) RunDebate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RunDebateInput,
) (*mcp.CallToolResult, RunDebateOutput, error) {
	if input.Request == "" {
		return nil, RunDebateOutput{}, fmt.Errorf("request is required")
	}

	out, err := s.orch.RunCollect(ctx, debate.Request{
		Request:    input.Request,
		FilePath:   input.FilePath,
		FocusAreas: input.FocusAreas,
	})
	if err != nil {
		return nil, RunDebateOutput{}, err
	}
	return nil, RunDebateOutput{Outcome: out}, nil
}

// DebateIterative runs one iteration of a debate session toward a target
// consensus score. The first call creates the session; later calls pass the
// session id back after the caller has revised the plan file in place.
func (s *DebateService) DebateIterative(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DebateIterativeInput,
) (*mcp.CallToolResult, DebateIterativeOutput, error) {
	var session debate.Session
	if input.SessionID == "" {
		if input.Request == "" {
			return nil, DebateIterativeOutput{}, fmt.Errorf("request is required to open a session")
		}
		session = s.sessions.Create(input.Request, input.FilePath, nil, input.TargetScore, input.MaxIterations)
	} else {
		var ok bool
		session, ok = s.sessions.Get(input.SessionID)
		if !ok {
			return nil, DebateIterativeOutput{}, fmt.Errorf("session not found: %s", input.SessionID)
		}
		if session.Done() {
			return nil, DebateIterativeOutput{}, fmt.Errorf("session %s is already finished", input.SessionID)
		}
	}

	out, err := s.orch.RunCollect(ctx, debate.Request{
		Request:    session.Request,
		FilePath:   session.File,
		FocusAreas: session.FocusAreas,
	})
	if err != nil {
		return nil, DebateIterativeOutput{}, err
	}

	session, err = s.sessions.RecordIteration(session.ID, out.DebateID, out.Consensus)
	if err != nil {
		return nil, DebateIterativeOutput{}, err
	}

	status := "needs_revision"
	switch {
	case session.BestScore >= session.TargetScore:
		status = "target_reached"
		s.sessions.Evict(session.ID)
	case len(session.Iterations) >= session.MaxIterations:
		status = "max_iterations"
		s.sessions.Evict(session.ID)
	}

	return nil, DebateIterativeOutput{
		SessionID: session.ID,
		Status:    status,
		Iteration: len(session.Iterations),
		BestScore: session.BestScore,
		Outcome:   out,
	}, nil
}

// ProviderStatus reports availability of the configured provider pair.
func (s *DebateService) ProviderStatus(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ProviderStatusInput,
) (*mcp.CallToolResult, ProviderStatusOutput, error) {
	statuses := providers.StatusOf(s.specs...)
	out := ProviderStatusOutput{Providers: make([]ProviderStatus, 0, len(statuses))}
	for _, st := range statuses {
		out.Providers = append(out.Providers, ProviderStatus{
			Name:      st.Name,
			Vendor:    st.Vendor,
			Available: st.Available,
		})
	}
	return nil, out, nil
}

// DebateHistory returns recent debate records, optionally with aggregates.
func (s *DebateService) DebateHistory(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input DebateHistoryInput,
) (*mcp.CallToolResult, DebateHistoryOutput, error) {
	limit := input.MaxRecords
	if limit <= 0 {
		limit = 10
	}
	records, err := s.history.Recent(limit)
	if err != nil {
		return nil, DebateHistoryOutput{}, err
	}
	out := DebateHistoryOutput{Records: records}
	if input.Stats {
		stats, err := s.history.Statistics()
		if err != nil {
			return nil, DebateHistoryOutput{}, err
		}
		out.Stats = &stats
	}
	return nil, out, nil
}
