package debate

import (
	"encoding/json"
	"time"
)

// EventType identifies a stream event.
type EventType string

const (
	EventStart       EventType = "start"
	EventProgress    EventType = "progress"
	EventPerspective EventType = "perspective"
	EventConsensus   EventType = "consensus"
	EventComplete    EventType = "complete"
	EventError       EventType = "error"
)

// Event is one streamed debate progress record. A well-formed trace begins
// with exactly one start event and ends with exactly one complete or error
// event.
type Event struct {
	Type      EventType      `json:"type"`
	Timestamp float64        `json:"timestamp"`
	Data      map[string]any `json:"data"`
}

// Terminal reports whether the event ends the stream.
func (e Event) Terminal() bool {
	return e.Type == EventComplete || e.Type == EventError
}

// JSON renders the event as a single line.
func (e Event) JSON() string {
	data, err := json.Marshal(e)
	if err != nil {
		return `{"type":"error","data":{"message":"event marshal failure"}}`
	}
	return string(data)
}

// ParseEvent decodes a single JSON event line.
func ParseEvent(line string) (Event, error) {
	var e Event
	if err := json.Unmarshal([]byte(line), &e); err != nil {
		return Event{}, err
	}
	return e, nil
}

func newEvent(t EventType, data map[string]any) Event {
	return Event{
		Type:      t,
		Timestamp: float64(time.Now().UnixNano()) / 1e9,
		Data:      data,
	}
}

// StartEvent opens a debate trace.
func StartEvent(request, file string, focusAreas []string) Event {
	if focusAreas == nil {
		focusAreas = []string{}
	}
	return newEvent(EventStart, map[string]any{
		"request":     request,
		"file":        file,
		"focus_areas": focusAreas,
	})
}

// ProgressEvent reports interim progress for one perspective.
func ProgressEvent(perspective string, percent int, message string) Event {
	data := map[string]any{
		"perspective": perspective,
		"percent":     percent,
	}
	if message != "" {
		data["message"] = message
	}
	return newEvent(EventProgress, data)
}

// PerspectiveEvent reports one side's finished verdict.
func PerspectiveEvent(name string, score int, elapsed float64, summary string) Event {
	data := map[string]any{
		"name":  name,
		"score": score,
		"time":  elapsed,
	}
	if summary != "" {
		data["summary"] = truncate(summary, 200)
	}
	return newEvent(EventPerspective, data)
}

// ConsensusEvent carries the moderator's verdict.
func ConsensusEvent(score int, interpretation, recommendation string) Event {
	return newEvent(EventConsensus, map[string]any{
		"score":          score,
		"interpretation": interpretation,
		"recommendation": recommendation,
	})
}

// CompleteEvent closes a successful trace.
func CompleteEvent(consensusScore int, totalTime float64, canProceed bool, debateID string) Event {
	data := map[string]any{
		"consensus":   consensusScore,
		"total_time":  totalTime,
		"can_proceed": canProceed,
	}
	if debateID != "" {
		data["debate_id"] = debateID
	}
	return newEvent(EventComplete, data)
}

// ErrorEvent closes a failed trace (or, when recoverable, reports a non-fatal
// fault mid-stream).
func ErrorEvent(message, perspective string, recoverable bool) Event {
	data := map[string]any{
		"message":     message,
		"recoverable": recoverable,
	}
	if perspective != "" {
		data["perspective"] = perspective
	}
	return newEvent(EventError, data)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
