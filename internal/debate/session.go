package debate

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/arbiter/internal/consensus"
)

// Iteration is one recorded pass of an iterative debate.
type Iteration struct {
	Number         int    `json:"number"`
	ConsensusScore int    `json:"consensusScore"`
	Recommendation string `json:"recommendation"`
	DebateID       string `json:"debateId,omitempty"`
}

// Session tracks an iterative debate toward a target score.
type Session struct {
	ID            string      `json:"id"`
	Request       string      `json:"request"`
	File          string      `json:"file"`
	FocusAreas    []string    `json:"focusAreas,omitempty"`
	TargetScore   int         `json:"targetScore"`
	MaxIterations int         `json:"maxIterations"`
	Iterations    []Iteration `json:"iterations"`
	BestScore     int         `json:"bestScore"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// Done reports whether the session has reached its target score or run out
// of iterations.
func (s Session) Done() bool {
	if s.BestScore >= s.TargetScore && len(s.Iterations) > 0 {
		return true
	}
	return len(s.Iterations) >= s.MaxIterations
}

// SessionStore holds iterative debate sessions in memory, keyed by id.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create registers a new session and returns a snapshot of it. Target and
// max-iteration values below their floors are raised to sane defaults.
func (st *SessionStore) Create(request, file string, focusAreas []string, targetScore, maxIterations int) Session {
	if targetScore <= 0 {
		targetScore = 85
	}
	if maxIterations <= 0 {
		maxIterations = 3
	}
	now := time.Now()
	s := &Session{
		ID:            uuid.NewString(),
		Request:       request,
		File:          file,
		FocusAreas:    append([]string(nil), focusAreas...),
		TargetScore:   targetScore,
		MaxIterations: maxIterations,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()
	return snapshot(s)
}

// Get returns a snapshot of the session with the given id.
func (st *SessionStore) Get(id string) (Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return Session{}, false
	}
	return snapshot(s), true
}

// RecordIteration appends one debate result to the session and returns the
// updated snapshot.
func (st *SessionStore) RecordIteration(id, debateID string, result consensus.Result) (Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("unknown session %q", id)
	}
	s.Iterations = append(s.Iterations, Iteration{
		Number:         len(s.Iterations) + 1,
		ConsensusScore: result.ConsensusScore,
		Recommendation: result.Recommendation,
		DebateID:       debateID,
	})
	if result.ConsensusScore > s.BestScore {
		s.BestScore = result.ConsensusScore
	}
	s.UpdatedAt = time.Now()
	return snapshot(s), nil
}

// Evict removes the session, reporting whether it existed.
func (st *SessionStore) Evict(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// snapshot copies the session so callers never share the store's mutable state.
func snapshot(s *Session) Session {
	out := *s
	out.FocusAreas = append([]string(nil), s.FocusAreas...)
	out.Iterations = append([]Iteration(nil), s.Iterations...)
	return out
}
