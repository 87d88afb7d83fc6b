package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// JSONStdoutWriter prints run records as JSON lines to STDOUT.
type JSONStdoutWriter struct {
	out io.Writer
}

// NewJSONStdoutWriter creates a JSONStdoutWriter writing to os.Stdout.
func NewJSONStdoutWriter() *JSONStdoutWriter {
	return &JSONStdoutWriter{out: os.Stdout}
}

// WriteRun outputs a run record in JSON format.
func (w *JSONStdoutWriter) WriteRun(rec RunRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}

// WriteRuns outputs multiple run records in JSON format.
func (w *JSONStdoutWriter) WriteRuns(recs []RunRecord) error {
	for _, r := range recs {
		if err := w.WriteRun(r); err != nil {
			return err
		}
	}
	return nil
}
