package consensus

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/arbiter/internal/priority"
)

// Side is one perspective's contribution to the debate.
type Side struct {
	Name     string
	Score    int
	Response string
}

// Disagreement is a single extracted disagreement point with its source side.
type Disagreement struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// Result is the moderator's verdict. It is created once per debate run and
// never mutated afterwards.
type Result struct {
	ConsensusScore  int            `json:"consensusScore"`
	ScoreDifference int            `json:"scoreDifference"`
	Interpretation  string         `json:"interpretation"`
	Recommendation  string         `json:"recommendation"`
	Agreements      []string       `json:"agreements"`
	Disagreements   []Disagreement `json:"disagreements"`
	AnalysisTime    float64        `json:"analysisTime"`
}

// Interpretation bands on the score difference.
const (
	InterpStrong   = "Strong Agreement"
	InterpModerate = "Moderate Agreement"
	InterpDisagree = "Significant Disagreements"
)

// maxExtracted caps each evidence list.
const maxExtracted = 5

var disagreementMarkers = []string{"disagree", "concern", "risk", "issue", "critical", "missing"}

var agreementMarkers = []string{"agree", "good", "excellent", "correct", "smart"}

// Analyze combines two perspectives into a consensus verdict. Issues, if
// supplied, must already be priority-scored; any issue at stop-ship level
// forces the recommendation regardless of the numeric consensus. Missing
// response text on either side yields empty evidence lists but never fails
// the score computation.
func Analyze(a, b Side, issues []priority.Issue) Result {
	start := time.Now()

	consensusScore := (a.Score + b.Score) / 2
	diff := a.Score - b.Score
	if diff < 0 {
		diff = -diff
	}

	var interp string
	switch {
	case diff <= 10:
		interp = InterpStrong
	case diff <= 20:
		interp = InterpModerate
	default:
		interp = InterpDisagree
	}

	result := Result{
		ConsensusScore:  consensusScore,
		ScoreDifference: diff,
		Interpretation:  interp,
		Recommendation:  recommend(consensusScore, issues),
		Agreements:      extractAgreements(a, b),
		Disagreements:   extractDisagreements(a, b),
	}
	result.AnalysisTime = time.Since(start).Seconds()
	return result
}

// recommend derives the action recommendation from the consensus score,
// unless a flagged issue at stop-ship priority overrides it.
func recommend(score int, issues []priority.Issue) string {
	for _, issue := range issues {
		if issue.PriorityScore >= 80 {
			return fmt.Sprintf("STOP-SHIP: %s must be resolved before proceeding", issue.Title)
		}
	}
	switch {
	case score >= 85:
		return "PROCEED: both perspectives support this change with confidence"
	case score >= 70:
		return "PROCEED WITH MODIFICATIONS: address the flagged concerns first"
	case score >= 50:
		return "DISCUSS FIRST: resolve the disagreements before committing"
	default:
		return "RECONSIDER: both perspectives see serious problems with this approach"
	}
}

func extractDisagreements(a, b Side) []Disagreement {
	var out []Disagreement
	for _, side := range []Side{a, b} {
		for _, sentence := range splitStatements(side.Response) {
			if len(out) >= maxExtracted {
				return out
			}
			if containsAny(sentence, disagreementMarkers) {
				out = append(out, Disagreement{Source: side.Name, Text: sentence})
			}
		}
	}
	return out
}

func extractAgreements(a, b Side) []string {
	var out []string
	for _, side := range []Side{a, b} {
		for _, sentence := range splitStatements(side.Response) {
			if len(out) >= maxExtracted {
				return out
			}
			if containsAny(sentence, agreementMarkers) {
				out = append(out, sentence)
			}
		}
	}
	return out
}

// splitStatements breaks response text into trimmed sentence-or-line units.
func splitStatements(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		for _, sentence := range strings.Split(line, ". ") {
			sentence = strings.TrimSpace(strings.TrimSuffix(sentence, "."))
			if sentence != "" {
				out = append(out, sentence)
			}
		}
	}
	return out
}

func containsAny(s string, markers []string) bool {
	lower := strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// Summary renders a human-readable block for terminal display.
func Summary(r Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Consensus Score: %d/100\n", r.ConsensusScore)
	fmt.Fprintf(&sb, "Agreement Level: %s (difference: %d)\n", r.Interpretation, r.ScoreDifference)
	fmt.Fprintf(&sb, "Recommendation: %s\n", r.Recommendation)
	if len(r.Agreements) > 0 {
		sb.WriteString("\nKey Agreements:\n")
		for _, a := range r.Agreements {
			fmt.Fprintf(&sb, "  + %s\n", a)
		}
	}
	if len(r.Disagreements) > 0 {
		sb.WriteString("\nKey Disagreements:\n")
		for _, d := range r.Disagreements {
			fmt.Fprintf(&sb, "  - [%s] %s\n", d.Source, d.Text)
		}
	}
	fmt.Fprintf(&sb, "\nAnalysis Time: %.3fs\n", r.AnalysisTime)
	return sb.String()
}
