package sim

// RunWriter receives the record of every completed run.
type RunWriter interface {
	WriteRun(RunRecord) error
}

// Optional: writers may support batch mode, used when replaying logs.
type batchRunWriter interface {
	WriteRuns([]RunRecord) error
}

// ResetWriter is implemented by writers that keep their own running totals
// and must drop them when the session is reset.
type ResetWriter interface {
	Reset(Snapshot)
}

// ControlWriter is implemented by interactive writers that can trigger runs
// and resets on the session they display.
type ControlWriter interface {
	SetRunner(func())
	SetResetter(func() Snapshot)
}
