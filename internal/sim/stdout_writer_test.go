package sim

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"sentinel-sim/internal/config"
	"sentinel-sim/internal/sentinel"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestJSONStdoutWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &JSONStdoutWriter{out: &buf}
	if err := w.WriteRuns([]RunRecord{sampleRecord(), sampleRecord()}); err != nil {
		t.Fatalf("WriteRuns: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var got RunRecord
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.RunID != "r1" {
		t.Fatalf("run_id = %s", got.RunID)
	}
}

func TestColorStdoutWriter(t *testing.T) {
	var buf bytes.Buffer
	w := &ColorStdoutWriter{cfg: config.Default(), out: &buf}

	rec := sampleRecord()
	if err := w.WriteRun(rec); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Sentinel Configuration:", "RUN 1", "EVENT", "PLAN", "CPU Model A", "No critical financial risks"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	rec.Run = 2
	rec.Impact = sentinel.Impact{
		PotentialLoss:  decimal.NewFromInt(1_000_000),
		MitigationCost: decimal.NewFromInt(120_000),
		NetValue:       decimal.NewFromInt(880_000),
		Shipments:      1,
	}
	rec.HistoryValue = rec.Impact.NetValue
	if err := w.WriteRun(rec); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}
	out = buf.String()
	if strings.Contains(out, "Sentinel Configuration:") {
		t.Fatalf("overview printed twice")
	}
	if !strings.Contains(out, "net=$880,000") || !strings.Contains(out, "total=$880,000") {
		t.Fatalf("missing impact metrics:\n%s", out)
	}
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]decimal.Decimal{
		"$0":          decimal.Zero,
		"$999":        decimal.NewFromInt(999),
		"$1,000":      decimal.NewFromInt(1000),
		"$1,234,567":  decimal.NewFromInt(1_234_567),
		"-$120,000":   decimal.NewFromInt(-120_000),
		"$880,001":    decimal.NewFromFloat(880_000.6),
		"$3":          decimal.NewFromFloat(2.5),
		"-$1,000,000": decimal.NewFromInt(-1_000_000),
	}
	for want, d := range cases {
		if got := FormatMoney(d); got != want {
			t.Fatalf("FormatMoney(%s) = %s, want %s", d, got, want)
		}
	}
}
