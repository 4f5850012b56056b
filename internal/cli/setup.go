package cli

import (
	"fmt"

	"github.com/dshills/arbiter/internal/cache"
	"github.com/dshills/arbiter/internal/config"
	"github.com/dshills/arbiter/internal/debate"
	"github.com/dshills/arbiter/internal/history"
	"github.com/dshills/arbiter/internal/providers"
)

// buildOrchestrator assembles the debate pipeline from the effective config.
func buildOrchestrator(cfg config.Config) (*debate.Orchestrator, *history.Store, error) {
	primary, counter, err := providers.Detect(cfg.Primary.Spec(), cfg.Counter.Spec())
	if err != nil {
		return nil, nil, fmt.Errorf("configuring providers: %w", err)
	}

	c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLMinutes*60)
	if err != nil {
		return nil, nil, fmt.Errorf("opening cache: %w", err)
	}

	hist, err := history.New(cfg.History.Enabled, cfg.History.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history: %w", err)
	}

	return debate.New(primary, counter, c, hist), hist, nil
}
