package sim

import (
	"encoding/json"
	"os"
	"time"

	"sentinel-sim/internal/disruption"
)

// EventRow is one disruption flattened for the event log.
type EventRow struct {
	RunID string `json:"run_id"`
	Run   int    `json:"run"`
	disruption.Event
	Plan      string    `json:"plan"`
	Timestamp time.Time `json:"ts"`
}

// EventRows flattens the events of a run, pairing each with its mitigation plan.
func EventRows(rec RunRecord) []EventRow {
	rows := make([]EventRow, 0, len(rec.Events))
	for i, ev := range rec.Events {
		row := EventRow{RunID: rec.RunID, Run: rec.Run, Event: ev, Timestamp: rec.Timestamp}
		if i < len(rec.Plans) {
			row.Plan = rec.Plans[i]
		}
		rows = append(rows, row)
	}
	return rows
}

// FileWriter writes run records and disruption events to JSONL files.
type FileWriter struct {
	runFile   *os.File
	eventFile *os.File
	runEnc    *json.Encoder
	eventEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. eventPath may be empty to skip the event log.
func NewFileWriter(runPath, eventPath string) (*FileWriter, error) {
	rf, err := os.Create(runPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{runFile: rf, runEnc: json.NewEncoder(rf)}
	if eventPath != "" {
		ef, err := os.Create(eventPath)
		if err != nil {
			rf.Close()
			return nil, err
		}
		fw.eventFile = ef
		fw.eventEnc = json.NewEncoder(ef)
	}
	return fw, nil
}

// WriteRun logs a run record and, if enabled, its events.
func (f *FileWriter) WriteRun(rec RunRecord) error {
	if err := f.runEnc.Encode(rec); err != nil {
		return err
	}
	if f.eventEnc == nil {
		return nil
	}
	for _, row := range EventRows(rec) {
		if err := f.eventEnc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteRuns logs multiple run records.
func (f *FileWriter) WriteRuns(recs []RunRecord) error {
	for _, r := range recs {
		if err := f.WriteRun(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.runFile != nil {
		if e := f.runFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.eventFile != nil {
		if e := f.eventFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
