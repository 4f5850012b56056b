package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/arbiter/internal/debate"
)

// Writer renders stream events and the final outcome in a specific format.
type Writer interface {
	Event(w io.Writer, ev debate.Event) error
	Outcome(w io.Writer, out debate.Outcome) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Target opens the output destination: the named file, or stdout when
// outPath is empty.
func Target(outPath string) (io.WriteCloser, error) {
	if outPath == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// Event data values arrive as int when constructed locally and float64 after
// a JSON round trip; these accessors absorb the difference.

func dataInt(ev debate.Event, key string) int {
	switch v := ev.Data[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func dataFloat(ev debate.Event, key string) float64 {
	switch v := ev.Data[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

func dataString(ev debate.Event, key string) string {
	s, _ := ev.Data[key].(string)
	return s
}

func dataBool(ev debate.Event, key string) bool {
	b, _ := ev.Data[key].(bool)
	return b
}
