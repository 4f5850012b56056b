package priority

import (
	"fmt"
	"sort"
	"strings"
)

// Label is the ranked bucket a priority score falls into.
type Label string

const (
	LabelStopShip Label = "STOP-SHIP"
	LabelHigh     Label = "HIGH"
	LabelMedium   Label = "MEDIUM"
	LabelLow      Label = "LOW"
)

// Label thresholds on the priority score.
const (
	stopShipThreshold = 80
	highThreshold     = 65
	mediumThreshold   = 45
)

var severityWeights = map[string]int{
	"critical": 40,
	"high":     30,
	"medium":   20,
	"low":      10,
}

var impactWeights = map[string]int{
	"high":   40,
	"medium": 25,
	"low":    10,
}

var effortPenalties = map[string]int{
	"low":    0,
	"medium": -10,
	"high":   -20,
}

// Effort-based fix time estimates in hours. HighEffortHours is a policy
// default, not an empirical constant; override it per call via FixTimeConfig.
const (
	lowEffortHours    = 0.5
	mediumEffortHours = 2.5
	// DefaultHighEffortHours is the assumed cost of a high-effort fix.
	DefaultHighEffortHours = 8.0
)

// InvalidCategoryError reports an unrecognized severity, impact, or effort
// value, naming the field that was invalid.
type InvalidCategoryError struct {
	Field string
	Value string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// Issue is a flagged problem with categorical ratings. PriorityScore and
// PriorityLabel are filled in by ScoreIssues and immutable afterwards.
type Issue struct {
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Severity      string `json:"severity"`
	Impact        string `json:"impact"`
	Effort        string `json:"effort"`
	Fix           string `json:"fix,omitempty"`
	PriorityScore int    `json:"priorityScore"`
	PriorityLabel Label  `json:"priorityLabel"`
}

// Score computes the priority score and label for one severity/impact/effort
// combination. Inputs are case-insensitive.
func Score(severity, impact, effort string) (int, Label, error) {
	sw, ok := severityWeights[strings.ToLower(severity)]
	if !ok {
		return 0, "", &InvalidCategoryError{Field: "severity", Value: severity}
	}
	iw, ok := impactWeights[strings.ToLower(impact)]
	if !ok {
		return 0, "", &InvalidCategoryError{Field: "impact", Value: impact}
	}
	ep, ok := effortPenalties[strings.ToLower(effort)]
	if !ok {
		return 0, "", &InvalidCategoryError{Field: "effort", Value: effort}
	}
	score := sw + iw + ep
	return score, LabelFor(score), nil
}

// LabelFor maps a priority score to its label bucket.
func LabelFor(score int) Label {
	switch {
	case score >= stopShipThreshold:
		return LabelStopShip
	case score >= highThreshold:
		return LabelHigh
	case score >= mediumThreshold:
		return LabelMedium
	default:
		return LabelLow
	}
}

// ScoreIssues augments each issue with its priority score and label and
// returns the list sorted descending by score. The sort is stable, so issues
// with equal scores keep their input order. Fails on the first invalid
// category with no partial result.
func ScoreIssues(issues []Issue) ([]Issue, error) {
	scored := make([]Issue, len(issues))
	for i, issue := range issues {
		score, label, err := Score(issue.Severity, issue.Impact, issue.Effort)
		if err != nil {
			return nil, fmt.Errorf("issue %q: %w", issue.Title, err)
		}
		issue.PriorityScore = score
		issue.PriorityLabel = label
		scored[i] = issue
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].PriorityScore > scored[j].PriorityScore
	})
	return scored, nil
}

// Groups partitions already-scored issues into label buckets.
type Groups struct {
	StopShip []Issue `json:"stop_ship"`
	High     []Issue `json:"high"`
	Medium   []Issue `json:"medium"`
	Low      []Issue `json:"low"`
}

// GroupBySeverity buckets already-scored issues by the same thresholds used
// for labeling, preserving relative order within each bucket.
func GroupBySeverity(issues []Issue) Groups {
	var g Groups
	for _, issue := range issues {
		switch LabelFor(issue.PriorityScore) {
		case LabelStopShip:
			g.StopShip = append(g.StopShip, issue)
		case LabelHigh:
			g.High = append(g.High, issue)
		case LabelMedium:
			g.Medium = append(g.Medium, issue)
		default:
			g.Low = append(g.Low, issue)
		}
	}
	return g
}

// FixTimeConfig overrides the per-effort time estimates.
type FixTimeConfig struct {
	HighEffortHours float64
}

// FixTimes holds rendered time estimates per bucket plus the overall total.
type FixTimes struct {
	StopShip string `json:"stop_ship,omitempty"`
	High     string `json:"high,omitempty"`
	Medium   string `json:"medium,omitempty"`
	Low      string `json:"low,omitempty"`
	Total    string `json:"total"`
}

// CalculateFixTime estimates fix time per label bucket and overall. Each
// issue contributes a fixed number of hours by effort.
func CalculateFixTime(issues []Issue) FixTimes {
	return CalculateFixTimeWith(issues, FixTimeConfig{HighEffortHours: DefaultHighEffortHours})
}

// CalculateFixTimeWith is CalculateFixTime with a custom high-effort estimate.
func CalculateFixTimeWith(issues []Issue, cfg FixTimeConfig) FixTimes {
	highHours := cfg.HighEffortHours
	if highHours <= 0 {
		highHours = DefaultHighEffortHours
	}

	hoursFor := func(effort string) float64 {
		switch strings.ToLower(effort) {
		case "low":
			return lowEffortHours
		case "medium":
			return mediumEffortHours
		case "high":
			return highHours
		default:
			return 0
		}
	}

	var stopShip, high, medium, low float64
	for _, issue := range issues {
		h := hoursFor(issue.Effort)
		switch LabelFor(issue.PriorityScore) {
		case LabelStopShip:
			stopShip += h
		case LabelHigh:
			high += h
		case LabelMedium:
			medium += h
		default:
			low += h
		}
	}

	var times FixTimes
	if stopShip > 0 {
		times.StopShip = formatHours(stopShip)
	}
	if high > 0 {
		times.High = formatHours(high)
	}
	if medium > 0 {
		times.Medium = formatHours(medium)
	}
	if low > 0 {
		times.Low = formatHours(low)
	}
	times.Total = formatHours(stopShip + high + medium + low)
	return times
}

// formatHours renders sub-hour totals in minutes, everything else in hours
// with one decimal.
func formatHours(hours float64) string {
	if hours < 1.0 {
		return fmt.Sprintf("%d minutes", int(hours*60))
	}
	return fmt.Sprintf("%.1f hours", hours)
}
