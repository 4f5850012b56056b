package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExtractScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"score colon", "The plan is solid.\nScore: 85", 85},
		{"rating colon", "Rating: 62", 62},
		{"slash 100", "I would say this deserves 90/100 overall.", 90},
		{"score slash 100", "Good work.\nScore: 78/100", 78},
		{"give form", "I give it a 55", 55},
		{"no score", "This response has no numeric verdict at all.", DefaultScore},
		{"out of range ignored", "Score: 250", DefaultScore},
		{"case insensitive", "score: 40", 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractScore(tt.text); got != tt.want {
				t.Errorf("ExtractScore(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestNew_UnknownKind(t *testing.T) {
	if _, err := New(Spec{Kind: "telepathy"}); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestCLI_NotAvailable(t *testing.T) {
	p := NewCLI(Spec{Kind: KindCLI, Name: "ghost", Command: "definitely-not-a-real-command-xyz"})
	if p.IsAvailable() {
		t.Error("nonexistent command should not be available")
	}
	if _, err := p.Invoke(context.Background(), "prompt"); err == nil {
		t.Error("invoking unavailable provider should error")
	} else if !IsUnavailable(err) {
		t.Errorf("error = %v, want unavailable", err)
	}
}

func TestCLI_Invoke(t *testing.T) {
	// echo prints its arguments, so the prompt comes back as the response.
	p := NewCLI(Spec{Kind: KindCLI, Name: "echo-tool", Command: "echo", Vendor: "test"})
	if !p.IsAvailable() {
		t.Skip("echo not on PATH")
	}

	resp, err := p.Invoke(context.Background(), "Looks fine. Score: 88/100")
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if !resp.Success {
		t.Error("expected success")
	}
	if !strings.Contains(resp.Response, "Score: 88/100") {
		t.Errorf("response = %q", resp.Response)
	}
	if resp.Score != 88 {
		t.Errorf("score = %d, want 88", resp.Score)
	}
	if resp.Vendor != "test" {
		t.Errorf("vendor = %q, want test", resp.Vendor)
	}
	if resp.ElapsedTime < 0 {
		t.Errorf("elapsed = %f", resp.ElapsedTime)
	}
}

func TestCLI_NonZeroExit(t *testing.T) {
	p := NewCLI(Spec{Kind: KindCLI, Name: "false-tool", Command: "false"})
	if !p.IsAvailable() {
		t.Skip("false not on PATH")
	}
	if _, err := p.Invoke(context.Background(), "prompt"); err == nil {
		t.Error("expected error on non-zero exit")
	}
}

func TestBridge_Invoke(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/invoke":
			var req bridgeRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			json.NewEncoder(w).Encode(bridgeResponse{
				Success:  true,
				Response: "Counter-analysis complete. Score: 72/100",
				Model:    "bridge-model",
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewBridge(Spec{Kind: KindBridge, Name: "test-bridge", URL: srv.URL, Vendor: "bridge-vendor"})

	if !p.IsAvailable() {
		t.Error("bridge with healthy endpoint should be available")
	}

	resp, err := p.Invoke(context.Background(), "review this")
	if err != nil {
		t.Fatalf("Invoke error: %v", err)
	}
	if !resp.Success || resp.Score != 72 {
		t.Errorf("resp = %+v, want success with score 72", resp)
	}
	if resp.Model != "bridge-model" {
		t.Errorf("model = %q", resp.Model)
	}
}

func TestBridge_Failure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(bridgeResponse{Success: false, Error: "tool not running"})
	}))
	defer srv.Close()

	p := NewBridge(Spec{Kind: KindBridge, Name: "failing-bridge", URL: srv.URL})
	_, err := p.Invoke(context.Background(), "review this")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "tool not running") {
		t.Errorf("error = %v, want bridge error detail", err)
	}
}

func TestBridge_Unreachable(t *testing.T) {
	p := NewBridge(Spec{Kind: KindBridge, Name: "dead-bridge", URL: "http://127.0.0.1:1"})
	if p.IsAvailable() {
		t.Error("unreachable bridge should not be available")
	}
	if _, err := p.Invoke(context.Background(), "prompt"); err == nil {
		t.Error("expected error for unreachable bridge")
	}
}

func TestDetect_FallsBackToAvailableSide(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	missing := Spec{Kind: KindCLI, Name: "ghost", Command: "definitely-not-a-real-command-xyz"}
	alive := Spec{Kind: KindBridge, Name: "alive", URL: srv.URL}

	primary, counter, err := Detect(missing, alive)
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if primary.Name() != "alive" || counter.Name() != "alive" {
		t.Errorf("pair = (%s, %s), want the available side for both", primary.Name(), counter.Name())
	}
}

func TestStatusOf(t *testing.T) {
	statuses := StatusOf(
		Spec{Kind: KindCLI, Name: "ghost", Command: "definitely-not-a-real-command-xyz", Vendor: "v1"},
	)
	if len(statuses) != 1 {
		t.Fatalf("len = %d, want 1", len(statuses))
	}
	if statuses[0].Available {
		t.Error("ghost command should be unavailable")
	}
	if statuses[0].Name != "ghost" || statuses[0].Vendor != "v1" {
		t.Errorf("status = %+v", statuses[0])
	}
}
