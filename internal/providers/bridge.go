package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBridgeURL = "http://localhost:8765"

// Bridge invokes an AI tool through a localhost HTTP companion process
// (for tools that only expose themselves inside an editor).
type Bridge struct {
	name    string
	vendor  string
	baseURL string
	client  *http.Client
}

// NewBridge creates an HTTP-bridge-backed provider.
func NewBridge(spec Spec) *Bridge {
	baseURL := spec.URL
	if baseURL == "" {
		baseURL = defaultBridgeURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	timeout := defaultCLITimeout
	if spec.TimeoutSeconds > 0 {
		timeout = time.Duration(spec.TimeoutSeconds) * time.Second
	}

	name := spec.Name
	if name == "" {
		name = "bridge"
	}
	return &Bridge{
		name:    name,
		vendor:  spec.Vendor,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (b *Bridge) Name() string   { return b.name }
func (b *Bridge) Vendor() string { return b.vendor }

// IsAvailable probes the bridge's health endpoint with a short deadline.
func (b *Bridge) IsAvailable() bool {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(b.baseURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type bridgeRequest struct {
	Prompt string `json:"prompt"`
}

type bridgeResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	Model    string `json:"model"`
	Error    string `json:"error"`
}

// Invoke posts the prompt to the bridge and extracts a score from the reply.
func (b *Bridge) Invoke(ctx context.Context, prompt string) (Response, error) {
	start := time.Now()

	payload, err := json.Marshal(bridgeRequest{Prompt: prompt})
	if err != nil {
		return Response{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", b.baseURL+"/invoke", bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := b.client.Do(httpReq)
	if err != nil {
		return Response{ElapsedTime: time.Since(start).Seconds()},
			fmt.Errorf("%s bridge unreachable: %w", b.name, err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	elapsed := time.Since(start).Seconds()
	if err != nil {
		return Response{ElapsedTime: elapsed}, fmt.Errorf("reading bridge response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return Response{ElapsedTime: elapsed},
			fmt.Errorf("%s bridge error (status %d): %s", b.name, httpResp.StatusCode, string(body))
	}

	var result bridgeResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return Response{ElapsedTime: elapsed}, fmt.Errorf("parsing bridge response: %w", err)
	}
	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = "unknown bridge error"
		}
		return Response{ElapsedTime: elapsed}, fmt.Errorf("%s: %s", b.name, msg)
	}

	return Response{
		Success:     true,
		Response:    result.Response,
		Score:       ExtractScore(result.Response),
		Model:       result.Model,
		Vendor:      b.vendor,
		ElapsedTime: elapsed,
	}, nil
}
