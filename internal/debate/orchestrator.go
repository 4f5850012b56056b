package debate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/arbiter/internal/cache"
	"github.com/dshills/arbiter/internal/consensus"
	"github.com/dshills/arbiter/internal/excerpt"
	"github.com/dshills/arbiter/internal/history"
	"github.com/dshills/arbiter/internal/priority"
	"github.com/dshills/arbiter/internal/providers"
	"github.com/dshills/arbiter/internal/redact"
)

const (
	defaultMaxContextLines  = 200
	defaultProgressInterval = time.Second
	proceedThreshold        = 70
)

// Request describes one debate run.
type Request struct {
	Request         string
	FilePath        string
	FocusAreas      []string
	MaxContextLines int
	Issues          []priority.Issue
}

// Outcome is the collected result of a finished debate.
type Outcome struct {
	DebateID   string             `json:"debateId"`
	Consensus  consensus.Result   `json:"consensus"`
	Primary    providers.Response `json:"primary"`
	Counter    providers.Response `json:"counter"`
	TotalTime  float64            `json:"totalTime"`
	CanProceed bool               `json:"canProceed"`
}

// Orchestrator runs two-perspective debates, streaming events as sides
// settle. It never retries and carries no deadline of its own; cancellation
// and per-provider timeouts belong to the caller and the providers.
type Orchestrator struct {
	primary providers.Provider
	counter providers.Provider
	cache   *cache.Cache
	history *history.Store

	// ProgressInterval controls the interim progress ticker. Shortened in
	// tests; zero means the one-second default.
	ProgressInterval time.Duration
}

// New wires an orchestrator. A nil cache or history is replaced by a
// disabled instance so callers never branch on presence.
func New(primary, counter providers.Provider, c *cache.Cache, h *history.Store) *Orchestrator {
	if c == nil {
		c, _ = cache.New(false, "", 0)
	}
	if h == nil {
		h, _ = history.New(false, "")
	}
	return &Orchestrator{
		primary: primary,
		counter: counter,
		cache:   c,
		history: h,
	}
}

// cachedPerspective is the cache payload for one settled side.
type cachedPerspective struct {
	Response string `json:"response"`
	Score    int    `json:"score"`
}

// side is one perspective's working state during a run.
type side struct {
	name     string
	provider providers.Provider
	prompt   string
	result   providers.Response
}

type sideDone struct {
	side *side
	resp providers.Response
	err  error
}

// Run streams the debate. The channel closes after the terminal event, or
// as soon as ctx is cancelled. One failed side ends the stream with an error
// event; a complete event is only emitted when both sides settle.
func (o *Orchestrator) Run(ctx context.Context, req Request) <-chan Event {
	ch := make(chan Event, 8)
	go func() {
		defer close(ch)
		emit := func(ev Event) bool {
			select {
			case ch <- ev:
				return true
			case <-ctx.Done():
				return false
			}
		}
		o.run(ctx, req, emit)
	}()
	return ch
}

// RunCollect runs the debate without a consumer and returns the outcome.
func (o *Orchestrator) RunCollect(ctx context.Context, req Request) (Outcome, error) {
	return o.run(ctx, req, func(Event) bool { return ctx.Err() == nil })
}

func (o *Orchestrator) run(ctx context.Context, req Request, emit func(Event) bool) (Outcome, error) {
	start := time.Now()

	focus := req.FocusAreas
	if len(focus) == 0 {
		focus = excerpt.InferFocusAreas(req.Request)
	}
	maxLines := req.MaxContextLines
	if maxLines <= 0 {
		maxLines = defaultMaxContextLines
	}

	if !emit(StartEvent(req.Request, req.FilePath, focus)) {
		return Outcome{}, ctx.Err()
	}

	contextText := "(no file provided)"
	var fileHash string
	if req.FilePath != "" {
		text, err := excerpt.Extract(req.FilePath, focus, maxLines)
		if err != nil {
			emit(ErrorEvent(fmt.Sprintf("extracting context: %v", err), "", false))
			return Outcome{}, err
		}
		// Excerpts leave the machine; scrub credentials before they do.
		contextText = redact.Secrets(text)
		if o.cache.Enabled() {
			fileHash = cache.HashFileContent(req.FilePath)
		}
	}

	sides := []*side{
		{name: o.primary.Name(), provider: o.primary, prompt: FocusedPrompt(req.Request, contextText, focus)},
		{name: o.counter.Name(), provider: o.counter, prompt: CounterPrompt(req.Request, contextText, focus)},
	}

	// Cached sides settle immediately with zero elapsed time.
	var missed []*side
	for _, s := range sides {
		payload, ok := o.cache.Get(s.prompt, fileHash)
		if ok {
			var cached cachedPerspective
			if err := json.Unmarshal(payload, &cached); err == nil {
				s.result = providers.Response{
					Success:  true,
					Response: cached.Response,
					Score:    cached.Score,
					Model:    "cached",
					Vendor:   "cache",
				}
				if !emit(PerspectiveEvent(s.name, cached.Score, 0, "(cached)")) {
					return Outcome{}, ctx.Err()
				}
				continue
			}
		}
		missed = append(missed, s)
	}

	if len(missed) > 0 {
		if err := o.invokeSides(ctx, missed, fileHash, emit); err != nil {
			return Outcome{}, err
		}
	}

	primary, counter := sides[0], sides[1]
	verdict := consensus.Analyze(
		consensus.Side{Name: primary.name, Score: primary.result.Score, Response: primary.result.Response},
		consensus.Side{Name: counter.name, Score: counter.result.Score, Response: counter.result.Response},
		req.Issues,
	)
	if !emit(ConsensusEvent(verdict.ConsensusScore, verdict.Interpretation, verdict.Recommendation)) {
		return Outcome{}, ctx.Err()
	}

	totalTime := time.Since(start).Seconds()
	canProceed := verdict.ConsensusScore >= proceedThreshold

	debateID, err := o.history.SaveDebate(history.Record{
		Request:      req.Request,
		File:         req.FilePath,
		FocusAreas:   focus,
		PrimaryName:  primary.name,
		CounterName:  counter.name,
		PrimaryScore: primary.result.Score,
		CounterScore: counter.result.Score,
		Consensus:    verdict,
		TotalTime:    totalTime,
		CanProceed:   canProceed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: saving debate history: %v\n", err)
	}

	if !emit(CompleteEvent(verdict.ConsensusScore, totalTime, canProceed, debateID)) {
		return Outcome{}, ctx.Err()
	}

	return Outcome{
		DebateID:   debateID,
		Consensus:  verdict,
		Primary:    primary.result,
		Counter:    counter.result,
		TotalTime:  totalTime,
		CanProceed: canProceed,
	}, nil
}

// invokeSides runs the cache-missed sides concurrently, emitting perspective
// events in completion order. The first failure cancels the remaining side
// and ends the run with a terminal error event.
func (o *Orchestrator) invokeSides(ctx context.Context, missed []*side, fileHash string, emit func(Event) bool) error {
	g, runCtx := errgroup.WithContext(ctx)
	results := make(chan sideDone, len(missed))

	var mu sync.Mutex
	pending := make(map[string]bool, len(missed))
	for _, s := range missed {
		pending[s.name] = true
	}

	for _, s := range missed {
		s := s
		g.Go(func() error {
			resp, err := s.provider.Invoke(runCtx, s.prompt)
			results <- sideDone{side: s, resp: resp, err: err}
			if err != nil {
				return err
			}
			if !resp.Success {
				return fmt.Errorf("%s returned no usable response", s.name)
			}
			return nil
		})
	}

	interval := o.ProgressInterval
	if interval <= 0 {
		interval = defaultProgressInterval
	}
	stopProgress := make(chan struct{})
	var progressWG sync.WaitGroup
	progressWG.Add(1)
	go func() {
		defer progressWG.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		percent := 0
		for {
			select {
			case <-stopProgress:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if percent < 90 {
					percent += 10
				}
				mu.Lock()
				names := make([]string, 0, len(pending))
				for name := range pending {
					names = append(names, name)
				}
				mu.Unlock()
				sort.Strings(names)
				for _, name := range names {
					if !emit(ProgressEvent(name, percent, "Analyzing...")) {
						return
					}
				}
			}
		}
	}()
	// The ticker must be fully stopped before any terminal event goes out,
	// or a late progress event could land after the trace has ended.
	var progressOnce sync.Once
	haltProgress := func() {
		progressOnce.Do(func() {
			close(stopProgress)
			progressWG.Wait()
		})
	}
	defer haltProgress()

	for range missed {
		var done sideDone
		select {
		case done = <-results:
		case <-ctx.Done():
			_ = g.Wait()
			return ctx.Err()
		}

		mu.Lock()
		delete(pending, done.side.name)
		mu.Unlock()

		if done.err != nil || !done.resp.Success {
			msg := "unknown provider error"
			if done.err != nil {
				msg = done.err.Error()
			}
			haltProgress()
			emit(ErrorEvent(msg, done.side.name, false))
			_ = g.Wait()
			return fmt.Errorf("%s failed: %s", done.side.name, msg)
		}

		done.side.result = done.resp
		if !emit(PerspectiveEvent(done.side.name, done.resp.Score, done.resp.ElapsedTime, truncate(done.resp.Response, 100))) {
			_ = g.Wait()
			return ctx.Err()
		}

		payload := cachedPerspective{Response: done.resp.Response, Score: done.resp.Score}
		if err := o.cache.Set(done.side.prompt, payload, fileHash); err != nil {
			fmt.Fprintf(os.Stderr, "warning: caching %s response: %v\n", done.side.name, err)
		}
	}

	return g.Wait()
}
