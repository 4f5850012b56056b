package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/arbiter/internal/debate"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	proceedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	reviewStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

const barWidth = 16

// TextWriter renders events for interactive terminal display.
type TextWriter struct{}

func (t *TextWriter) Event(w io.Writer, ev debate.Event) error {
	ew := &errWriter{w: w}

	switch ev.Type {
	case debate.EventStart:
		ew.printf("\n%s %s\n", headerStyle.Render("Starting debate:"), dataString(ev, "request"))
		if file := dataString(ev, "file"); file != "" {
			ew.printf("File: %s\n", file)
		}

	case debate.EventProgress:
		ew.printf("\r[%s] Analyzing... %s %d%%",
			dataString(ev, "perspective"),
			progressBar(dataInt(ev, "percent"), barWidth),
			dataInt(ev, "percent"))

	case debate.EventPerspective:
		ew.printf("\n[%s] Complete (%.1fs) Score: %d/100",
			dataString(ev, "name"),
			dataFloat(ev, "time"),
			dataInt(ev, "score"))
		if summary := dataString(ev, "summary"); summary == "(cached)" {
			ew.printf(" %s", dimStyle.Render("(cached)"))
		}

	case debate.EventConsensus:
		ew.printf("\n\n%s (%s)\n",
			headerStyle.Render(fmt.Sprintf("Consensus: %d/100", dataInt(ev, "score"))),
			dataString(ev, "interpretation"))
		ew.printf("%s\n", dataString(ev, "recommendation"))

	case debate.EventComplete:
		score := dataInt(ev, "consensus")
		status := reviewStyle.Render("REVIEW NEEDED")
		if dataBool(ev, "can_proceed") {
			status = proceedStyle.Render("PROCEED")
		}
		rule := strings.Repeat("═", 45)
		ew.printf("\n%s\n", rule)
		ew.printf("RESULT: Consensus %d/100 - %s\n", score, status)
		ew.printf("%s\n", rule)
		if id := dataString(ev, "debate_id"); id != "" {
			ew.printf("%s\n", dimStyle.Render("Debate ID: "+id))
		}

	case debate.EventError:
		ew.printf("\n%s %s\n", errorStyle.Render("[ERROR]"), dataString(ev, "message"))
		if p := dataString(ev, "perspective"); p != "" {
			ew.printf("Perspective: %s\n", p)
		}
	}

	return ew.err
}

// Outcome renders the final verdict block once the stream has ended.
func (t *TextWriter) Outcome(w io.Writer, out debate.Outcome) error {
	ew := &errWriter{w: w}
	ew.printf("\n%s\n", headerStyle.Render("Final Verdict"))
	ew.printf("%s\n", strings.Repeat("─", 45))
	ew.printf("%s: %d/100  %s: %d/100\n",
		out.Primary.Vendor, out.Primary.Score,
		out.Counter.Vendor, out.Counter.Score)
	ew.printf("Consensus: %d/100 (%s)\n", out.Consensus.ConsensusScore, out.Consensus.Interpretation)
	ew.printf("Recommendation: %s\n", out.Consensus.Recommendation)
	if len(out.Consensus.Agreements) > 0 {
		ew.printf("\nKey Agreements:\n")
		for _, a := range out.Consensus.Agreements {
			ew.printf("  + %s\n", a)
		}
	}
	if len(out.Consensus.Disagreements) > 0 {
		ew.printf("\nKey Disagreements:\n")
		for _, d := range out.Consensus.Disagreements {
			ew.printf("  - [%s] %s\n", d.Source, d.Text)
		}
	}
	ew.printf("\n%s\n", dimStyle.Render(fmt.Sprintf("Total time: %.1fs", out.TotalTime)))
	return ew.err
}

// progressBar renders a filled/empty bar like "████████░░░░░░░░".
func progressBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := width * percent / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
