package mcptools

import (
	"testing"

	"github.com/dshills/arbiter/internal/debate"
	"github.com/dshills/arbiter/internal/history"
)

func TestNewDebateMCPServer(t *testing.T) {
	hist, err := history.New(false, "")
	if err != nil {
		t.Fatalf("history.New error: %v", err)
	}
	orch := debate.New(&fakeProvider{name: "Claude"}, &fakeProvider{name: "Codex"}, nil, hist)

	server := NewDebateMCPServer(NewDebateService(orch, hist))
	if server == nil {
		t.Fatal("expected server")
	}
}
