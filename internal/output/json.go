package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/arbiter/internal/debate"
)

// JSONWriter emits one JSON object per line, suitable for piping into other
// tools.
type JSONWriter struct{}

func (j *JSONWriter) Event(w io.Writer, ev debate.Event) error {
	_, err := fmt.Fprintln(w, ev.JSON())
	return err
}

func (j *JSONWriter) Outcome(w io.Writer, out debate.Outcome) error {
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshaling outcome: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
