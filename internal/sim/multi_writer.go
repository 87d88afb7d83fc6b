package sim

// MultiWriter fans run records out to multiple writers.
type MultiWriter struct {
	writers []RunWriter
}

// NewMultiWriter creates a new MultiWriter. Nil writers are skipped.
func NewMultiWriter(ws ...RunWriter) *MultiWriter {
	mw := &MultiWriter{}
	for _, w := range ws {
		if w != nil {
			mw.writers = append(mw.writers, w)
		}
	}
	return mw
}

// WriteRun sends a run record to all writers.
func (mw *MultiWriter) WriteRun(rec RunRecord) error {
	for _, w := range mw.writers {
		if err := w.WriteRun(rec); err != nil {
			return err
		}
	}
	return nil
}

// WriteRuns sends multiple run records to all writers, using batch if supported.
func (mw *MultiWriter) WriteRuns(recs []RunRecord) error {
	for _, w := range mw.writers {
		if bw, ok := w.(batchRunWriter); ok {
			if err := bw.WriteRuns(recs); err != nil {
				return err
			}
			continue
		}
		for _, r := range recs {
			if err := w.WriteRun(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// SetRunner forwards the run callback to interactive writers.
func (mw *MultiWriter) SetRunner(fn func()) {
	for _, w := range mw.writers {
		if cw, ok := w.(ControlWriter); ok {
			cw.SetRunner(fn)
		}
	}
}

// SetResetter forwards the reset callback to interactive writers.
func (mw *MultiWriter) SetResetter(fn func() Snapshot) {
	for _, w := range mw.writers {
		if cw, ok := w.(ControlWriter); ok {
			cw.SetResetter(fn)
		}
	}
}

// Reset forwards a session reset to writers that keep running totals.
func (mw *MultiWriter) Reset(snap Snapshot) {
	for _, w := range mw.writers {
		if rw, ok := w.(ResetWriter); ok {
			rw.Reset(snap)
		}
	}
}

// SetAdminStatus forwards admin UI status to writers that display it.
func (mw *MultiWriter) SetAdminStatus(listening bool) {
	for _, w := range mw.writers {
		if aw, ok := w.(AdminStatusWriter); ok {
			aw.SetAdminStatus(listening)
		}
	}
}
