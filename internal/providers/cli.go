package providers

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const defaultCLITimeout = 120 * time.Second

// CLI invokes a locally installed AI tool as a subprocess. The prompt is
// passed as the final argument and the tool's stdout is the response.
type CLI struct {
	name    string
	vendor  string
	command string
	args    []string
	timeout time.Duration
}

// NewCLI creates a subprocess-backed provider.
func NewCLI(spec Spec) *CLI {
	name := spec.Name
	if name == "" {
		name = spec.Command
	}
	timeout := defaultCLITimeout
	if spec.TimeoutSeconds > 0 {
		timeout = time.Duration(spec.TimeoutSeconds) * time.Second
	}
	return &CLI{
		name:    name,
		vendor:  spec.Vendor,
		command: spec.Command,
		args:    spec.Args,
		timeout: timeout,
	}
}

func (c *CLI) Name() string   { return c.name }
func (c *CLI) Vendor() string { return c.vendor }

// IsAvailable reports whether the configured command resolves on PATH.
func (c *CLI) IsAvailable() bool {
	if c.command == "" {
		return false
	}
	_, err := exec.LookPath(c.command)
	return err == nil
}

// Invoke runs the tool with the prompt and extracts a score from its output.
func (c *CLI) Invoke(ctx context.Context, prompt string) (Response, error) {
	start := time.Now()

	if !c.IsAvailable() {
		return Response{}, &unavailableError{name: c.name}
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := append(append([]string{}, c.args...), prompt)
	cmd := exec.CommandContext(runCtx, c.command, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	elapsed := time.Since(start).Seconds()

	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return Response{ElapsedTime: elapsed}, fmt.Errorf("%s invocation failed: %s", c.name, detail)
	}

	text := strings.TrimSpace(stdout.String())
	return Response{
		Success:     true,
		Response:    text,
		Score:       ExtractScore(text),
		Model:       c.command,
		Vendor:      c.vendor,
		ElapsedTime: elapsed,
	}, nil
}
