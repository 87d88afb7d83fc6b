// Sentinel rules: status classification, business impact and mitigation advice
package sentinel

import (
	"fmt"
	"math"

	"sentinel-sim/internal/inventory"
)

// DefaultThresholdDays is the days-of-supply level below which a row is flagged WARNING.
const DefaultThresholdDays = 15

// Classifier assigns a status tier and alert to every component.
type Classifier struct {
	ThresholdDays float64
}

// NewClassifier returns a Classifier; a non-positive threshold falls back to the default.
func NewClassifier(thresholdDays float64) Classifier {
	if thresholdDays <= 0 {
		thresholdDays = DefaultThresholdDays
	}
	return Classifier{ThresholdDays: thresholdDays}
}

// Classify runs the default classifier over t.
func Classify(t inventory.Table) inventory.Table {
	return NewClassifier(DefaultThresholdDays).Classify(t)
}

// Classify recomputes days of supply and sets Status, Alert and Shortfall on every
// row of t in place. Rules are evaluated per row in priority order:
// projected shortfall < 0 is CRITICAL, days of supply below the threshold is
// WARNING, anything else is Nominal.
func (c Classifier) Classify(t inventory.Table) inventory.Table {
	for i := range t {
		c.classifyRow(&t[i])
	}
	return t
}

func (c Classifier) classifyRow(row *inventory.Component) {
	row.Recompute()
	row.Shortfall = false
	if row.DailyConsumption <= 0 {
		// no demand: stock never runs out
		row.ProjectedShortfall = 0
		row.Status = inventory.StatusNominal
		row.Alert = inventory.NoAlert
		return
	}

	row.ProjectedShortfall = round1(row.DaysOfSupply - float64(row.LeadTimeDays))
	switch {
	case row.ProjectedShortfall < 0:
		row.Status = inventory.StatusCritical
		row.Shortfall = true
		row.Alert = fmt.Sprintf("ACTION: Projected shortfall of %.1f days. Expedite next shipment via Air Freight.", -row.ProjectedShortfall)
	case row.DaysOfSupply < c.ThresholdDays:
		row.Status = inventory.StatusWarning
		row.Alert = fmt.Sprintf("WARNING: Supply below %s-day threshold. Monitor closely.", formatDays(c.ThresholdDays))
	default:
		row.Status = inventory.StatusNominal
		row.Alert = inventory.NoAlert
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func formatDays(d float64) string {
	if d == math.Trunc(d) {
		return fmt.Sprintf("%.0f", d)
	}
	return fmt.Sprintf("%.1f", d)
}
