package providers

import (
	"context"
	"fmt"
)

// Response is the outcome of one provider invocation. It is owned by the
// invocation that produced it and consumed once by the moderator or cache.
type Response struct {
	Success     bool    `json:"success"`
	Response    string  `json:"response"`
	Score       int     `json:"score"`
	Model       string  `json:"model"`
	Vendor      string  `json:"vendor"`
	ElapsedTime float64 `json:"elapsedTime"` // seconds
}

// Provider is the capability set required of a debate participant.
type Provider interface {
	Invoke(ctx context.Context, prompt string) (Response, error)
	IsAvailable() bool
	Name() string
	Vendor() string
}

// Kind selects a provider transport.
type Kind string

const (
	KindCLI    Kind = "cli"
	KindBridge Kind = "bridge"
)

// Spec configures a single provider instance.
type Spec struct {
	Kind           Kind     `json:"kind"`
	Name           string   `json:"name,omitempty"`
	Command        string   `json:"command,omitempty"` // cli
	Args           []string `json:"args,omitempty"`    // cli
	URL            string   `json:"url,omitempty"`     // bridge
	Vendor         string   `json:"vendor,omitempty"`
	TimeoutSeconds int      `json:"timeoutSeconds,omitempty"`
}

// New creates a provider from its spec.
func New(spec Spec) (Provider, error) {
	switch spec.Kind {
	case KindCLI:
		return NewCLI(spec), nil
	case KindBridge:
		return NewBridge(spec), nil
	default:
		return nil, fmt.Errorf("unknown provider kind: %s", spec.Kind)
	}
}

// unavailableError marks an invocation against a provider that is not usable.
type unavailableError struct {
	name string
}

func (e *unavailableError) Error() string {
	return fmt.Sprintf("provider %s is not available", e.name)
}

// IsUnavailable checks if an error means the provider cannot be used at all.
func IsUnavailable(err error) bool {
	_, ok := err.(*unavailableError)
	return ok
}
