package sentinel

import (
	"github.com/shopspring/decimal"

	"sentinel-sim/internal/inventory"
)

// DefaultAirFreightPremium is the cost of expediting one shipment by air.
const DefaultAirFreightPremium = 120_000

// Impact is the financial effect of acting on the critical rows of one run.
type Impact struct {
	PotentialLoss  decimal.Decimal `json:"potential_loss"`
	MitigationCost decimal.Decimal `json:"mitigation_cost"`
	NetValue       decimal.Decimal `json:"net_value"`
	// Shipments counts the rows that qualified for expedited freight.
	Shipments int `json:"shipments"`
}

// HasRisk reports whether any revenue was at risk.
func (i Impact) HasRisk() bool {
	return i.PotentialLoss.IsPositive()
}

// ImpactCalculator sums potential revenue loss against mitigation cost.
type ImpactCalculator struct {
	AirFreightPremium decimal.Decimal
}

// NewImpactCalculator returns a calculator using the given premium per shipment.
func NewImpactCalculator(premium decimal.Decimal) ImpactCalculator {
	return ImpactCalculator{AirFreightPremium: premium}
}

// CalculateImpact runs the default calculator over t.
func CalculateImpact(t inventory.Table) Impact {
	return NewImpactCalculator(decimal.NewFromInt(DefaultAirFreightPremium)).Calculate(t)
}

// Calculate considers only rows the classifier marked critical because of a
// projected shortfall. For each, shortfall days = lead time - days of supply;
// when positive the lost revenue is shortfall days x daily consumption x revenue
// per unit and one air freight premium is charged.
func (c ImpactCalculator) Calculate(t inventory.Table) Impact {
	loss := decimal.Zero
	cost := decimal.Zero
	shipments := 0
	for _, row := range t {
		if row.Status != inventory.StatusCritical || !row.Shortfall {
			continue
		}
		days := decimal.NewFromInt(int64(row.LeadTimeDays)).Sub(decimal.NewFromFloat(row.DaysOfSupply))
		if !days.IsPositive() {
			continue
		}
		perDay := decimal.NewFromInt(int64(row.DailyConsumption)).Mul(decimal.NewFromInt(int64(row.RevenuePerUnit)))
		loss = loss.Add(days.Mul(perDay))
		cost = cost.Add(c.AirFreightPremium)
		shipments++
	}
	return Impact{
		PotentialLoss:  loss,
		MitigationCost: cost,
		NetValue:       loss.Sub(cost),
		Shipments:      shipments,
	}
}
