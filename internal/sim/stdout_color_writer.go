// ColorStdoutWriter prints human-friendly, colorized run reports to STDOUT.
package sim

import (
	"fmt"
	"io"
	"os"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"

	"sentinel-sim/internal/config"
	"sentinel-sim/internal/inventory"
)

const (
	colorReset   = "\x1b[0m"
	colorRed     = "\x1b[31m"
	colorGreen   = "\x1b[32m"
	colorYellow  = "\x1b[33m"
	colorBlue    = "\x1b[34m"
	colorMagenta = "\x1b[35m"
	colorCyan    = "\x1b[36m"
	colorGray    = "\x1b[90m"

	// status styles share one length so tabwriter alignment holds
	styleCritical = "\x1b[97;41m"
	styleWarning  = "\x1b[30;43m"
	styleNominal  = "\x1b[32;49m"
)

// ColorStdoutWriter prints run records using ANSI colors.
type ColorStdoutWriter struct {
	cfg   *config.SentinelConfig
	out   io.Writer
	once  sync.Once
	mu    sync.Mutex
	total decimal.Decimal
}

// NewColorStdoutWriter creates a ColorStdoutWriter writing to os.Stdout.
func NewColorStdoutWriter(cfg *config.SentinelConfig) *ColorStdoutWriter {
	return &ColorStdoutWriter{cfg: cfg, out: os.Stdout}
}

func (w *ColorStdoutWriter) printOverview() {
	if w.cfg == nil {
		return
	}

	fmt.Fprintln(w.out, "Sentinel Configuration:")
	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Critical Threshold (days):\t%.0f\n", w.cfg.CriticalThresholdDays)
	fmt.Fprintf(tw, "Air Freight Premium:\t%s\n", FormatMoney(w.cfg.Premium()))
	fmt.Fprintf(tw, "Events per Run:\t%d-%d\n", w.cfg.MinEvents, w.cfg.MaxEvents)
	fmt.Fprintf(tw, "Port Congestion Delay:\t%.0f-%.0f days\n", w.cfg.PortCongestionDelay.Min, w.cfg.PortCongestionDelay.Max)
	fmt.Fprintf(tw, "Geopolitical Delay:\t%.0f-%.0f days\n", w.cfg.GeopoliticalTensionDelay.Min, w.cfg.GeopoliticalTensionDelay.Max)
	fmt.Fprintf(tw, "Production Slowdown Delay:\t%.0f-%.0f days\n", w.cfg.ProductionSlowdownDelay.Min, w.cfg.ProductionSlowdownDelay.Max)
	fmt.Fprintf(tw, "Demand Spike Factor:\t%.2f-%.2f\n", w.cfg.DemandSpikeFactor.Min, w.cfg.DemandSpikeFactor.Max)
	tw.Flush()
	fmt.Fprintln(w.out)
}

func statusStyle(s inventory.Status) string {
	switch s {
	case inventory.StatusCritical:
		return styleCritical
	case inventory.StatusWarning:
		return styleWarning
	}
	return styleNominal
}

// WriteRun prints the perceived events, mitigation plan, status table and impact of one run.
func (w *ColorStdoutWriter) WriteRun(rec RunRecord) error {
	w.once.Do(w.printOverview)
	w.mu.Lock()
	defer w.mu.Unlock()

	header := fmt.Sprintf("RUN %d", rec.Run)
	if rec.Scenario != "" {
		header += fmt.Sprintf(" scenario=%s phase=%s", rec.Scenario, rec.Phase)
	}
	fmt.Fprintf(w.out, "%s[%s]%s %s%s%s %s%s%s\n",
		colorGray, rec.Timestamp.Format(time.RFC3339), colorReset,
		colorBlue, header, colorReset,
		colorGray, rec.RunID, colorReset)

	for _, ev := range rec.Events {
		fmt.Fprintf(w.out, "  %sEVENT%s %s%s:%s %s\n", colorYellow, colorReset, colorMagenta, ev.Category.Label(), colorReset, ev.Detail)
	}
	for _, p := range rec.Plans {
		fmt.Fprintf(w.out, "  %sPLAN%s  %s\n", colorCyan, colorReset, p)
	}

	tw := tabwriter.NewWriter(w.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Component\tSupplier\tOrigin\tLane\tLead\tStock\tDaily\tDoS\tStatus\tAlert")
	for _, c := range rec.Components {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%d\t%d\t%d\t%.1f\t%s%-8s%s\t%s\n",
			c.Name, c.Supplier, c.Origin, c.ShippingLane,
			c.LeadTimeDays, c.OnHandStock, c.DailyConsumption, c.DaysOfSupply,
			statusStyle(c.Status), c.Status, colorReset, c.Alert)
	}
	tw.Flush()

	w.total = w.total.Add(rec.HistoryValue)
	if rec.Impact.HasRisk() {
		fmt.Fprintf(w.out, "  %sloss avoided=%s%s %scost=%s%s %snet=%s%s %stotal=%s%s\n",
			colorRed, FormatMoney(rec.Impact.PotentialLoss), colorReset,
			colorYellow, FormatMoney(rec.Impact.MitigationCost), colorReset,
			colorGreen, FormatMoney(rec.Impact.NetValue), colorReset,
			colorCyan, FormatMoney(w.total), colorReset)
	} else {
		fmt.Fprintf(w.out, "  %sNo critical financial risks were identified. The supply chain remains resilient.%s %stotal=%s%s\n",
			colorGreen, colorReset, colorCyan, FormatMoney(w.total), colorReset)
	}
	fmt.Fprintln(w.out)
	return nil
}

// Reset restarts the running total from the session's reset state.
func (w *ColorStdoutWriter) Reset(snap Snapshot) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.total = snap.TotalNetValue
	fmt.Fprintf(w.out, "%sSESSION RESET%s\n\n", colorGray, colorReset)
}

// WriteRuns prints multiple run records.
func (w *ColorStdoutWriter) WriteRuns(recs []RunRecord) error {
	for _, r := range recs {
		_ = w.WriteRun(r)
	}
	return nil
}
