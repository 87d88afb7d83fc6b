package sentinel

import (
	"fmt"

	"sentinel-sim/internal/disruption"
)

var playbook = map[disruption.Category]string{
	disruption.PortCongestion:      "Engage freight forwarder to assess alternative sea/air routes. Increase monitoring frequency.",
	disruption.GeopoliticalTension: "Review inventory levels for all components from the affected region. Place early orders with secondary suppliers.",
	disruption.ProductionSlowdown:  "Contact supplier immediately for root cause analysis and a firm recovery timeline. Assess impact on production schedule.",
	disruption.DemandSpike:         "Alert Sales & Operations Planning (S&OP) team. Validate if spike is temporary or a new baseline.",
}

// Recommendation returns the canned advice for a category.
func Recommendation(c disruption.Category) string {
	return playbook[c]
}

// MitigationPlan returns one advisory line per event, in event order.
func MitigationPlan(events []disruption.Event) []string {
	plans := make([]string, 0, len(events))
	for _, ev := range events {
		plans = append(plans, fmt.Sprintf("For the '%s' event: %s", ev.Category.Label(), Recommendation(ev.Category)))
	}
	return plans
}
