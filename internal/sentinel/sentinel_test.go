package sentinel

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel-sim/internal/disruption"
	"sentinel-sim/internal/inventory"
)

func cpuRow() inventory.Component {
	return inventory.Component{
		Name: "CPU Model A", Supplier: "Intel", Origin: "USA", ShippingLane: "Trans-Pacific",
		LeadTimeDays: 25, OnHandStock: 15000, DailyConsumption: 500, RevenuePerUnit: 400,
	}
}

func TestClassify_NominalBaseline(t *testing.T) {
	tbl, err := inventory.NewTable([]inventory.Component{cpuRow()})
	require.NoError(t, err)

	Classify(tbl)
	assert.Equal(t, 30.0, tbl[0].DaysOfSupply)
	assert.Equal(t, 5.0, tbl[0].ProjectedShortfall)
	assert.Equal(t, inventory.StatusNominal, tbl[0].Status)
	assert.Equal(t, inventory.NoAlert, tbl[0].Alert)
	assert.False(t, tbl[0].Shortfall)
}

func TestClassify_PortCongestionMakesCritical(t *testing.T) {
	tbl, err := inventory.NewTable([]inventory.Component{cpuRow()})
	require.NoError(t, err)
	require.NoError(t, disruption.Apply(tbl, disruption.NewEvent(disruption.PortCongestion, "Trans-Pacific", 10)))

	Classify(tbl)
	assert.Equal(t, 35, tbl[0].LeadTimeDays)
	assert.Equal(t, inventory.StatusCritical, tbl[0].Status)
	assert.True(t, tbl[0].Shortfall)
	assert.Equal(t, "ACTION: Projected shortfall of 5.0 days. Expedite next shipment via Air Freight.", tbl[0].Alert)

	imp := CalculateImpact(tbl)
	assert.True(t, imp.PotentialLoss.Equal(decimal.NewFromInt(1_000_000)), imp.PotentialLoss.String())
	assert.True(t, imp.MitigationCost.Equal(decimal.NewFromInt(120_000)), imp.MitigationCost.String())
	assert.True(t, imp.NetValue.Equal(decimal.NewFromInt(880_000)), imp.NetValue.String())
	assert.Equal(t, 1, imp.Shipments)
	assert.True(t, imp.HasRisk())
}

func TestClassify_Warning(t *testing.T) {
	row := cpuRow()
	row.OnHandStock = 6000 // 12 days of supply
	row.LeadTimeDays = 10
	tbl, err := inventory.NewTable([]inventory.Component{row})
	require.NoError(t, err)

	Classify(tbl)
	assert.Equal(t, inventory.StatusWarning, tbl[0].Status)
	assert.Equal(t, "WARNING: Supply below 15-day threshold. Monitor closely.", tbl[0].Alert)
	assert.False(t, tbl[0].Shortfall)
}

func TestClassify_Totality(t *testing.T) {
	src := disruption.NewSource(99)
	sim := disruption.NewSimulator(disruption.DefaultSettings())
	c := NewClassifier(0)
	for i := 0; i < 200; i++ {
		tbl, _, err := sim.Simulate(inventory.Build(), src)
		require.NoError(t, err)
		c.Classify(tbl)
		for _, row := range tbl {
			shortfall := row.DaysOfSupply - float64(row.LeadTimeDays)
			switch row.Status {
			case inventory.StatusCritical:
				assert.Less(t, shortfall, 0.0, row.Name)
				assert.True(t, row.Shortfall)
			case inventory.StatusWarning:
				assert.GreaterOrEqual(t, shortfall, 0.0, row.Name)
				assert.Less(t, row.DaysOfSupply, 15.0, row.Name)
			case inventory.StatusNominal:
				assert.GreaterOrEqual(t, shortfall, 0.0, row.Name)
				assert.GreaterOrEqual(t, row.DaysOfSupply, 15.0, row.Name)
			default:
				t.Fatalf("unexpected status %q", row.Status)
			}
			assert.InDelta(t, float64(row.OnHandStock)/float64(row.DailyConsumption), row.DaysOfSupply, 0.05)
		}
	}
}

func TestClassify_Idempotent(t *testing.T) {
	tbl := inventory.Build()
	require.NoError(t, disruption.Apply(tbl, disruption.NewEvent(disruption.GeopoliticalTension, "Taiwan", 12)))
	Classify(tbl)
	first := tbl.Clone()
	Classify(tbl)
	assert.Equal(t, first, tbl)
}

func TestClassify_ZeroConsumptionIsNominal(t *testing.T) {
	tbl := inventory.Table{{Name: "Idle", LeadTimeDays: 40, OnHandStock: 10}}
	Classify(tbl)
	assert.Equal(t, inventory.StatusNominal, tbl[0].Status)
	assert.False(t, tbl[0].Shortfall)
}

func TestCalculateImpact_NoCritical(t *testing.T) {
	tbl := Classify(inventory.Build())
	imp := CalculateImpact(tbl)
	assert.True(t, imp.PotentialLoss.IsZero())
	assert.True(t, imp.MitigationCost.IsZero())
	assert.True(t, imp.NetValue.IsZero())
	assert.False(t, imp.HasRisk())
}

func TestCalculateImpact_IgnoresCriticalWithoutShortfall(t *testing.T) {
	row := cpuRow()
	row.LeadTimeDays = 40
	row.DaysOfSupply = 30
	row.Status = inventory.StatusCritical
	row.Shortfall = false
	imp := CalculateImpact(inventory.Table{row})
	assert.True(t, imp.PotentialLoss.IsZero())
	assert.Equal(t, 0, imp.Shipments)
}

func TestMitigationPlan(t *testing.T) {
	events := []disruption.Event{
		disruption.NewEvent(disruption.DemandSpike, "Cooling Fan", 1.3),
		disruption.NewEvent(disruption.PortCongestion, "Intra-Asia", 6),
	}
	plans := MitigationPlan(events)
	require.Len(t, plans, 2)
	assert.Equal(t, "For the 'Demand Spike 需求激增' event: Alert Sales & Operations Planning (S&OP) team. Validate if spike is temporary or a new baseline.", plans[0])
	assert.Contains(t, plans[1], "Port Congestion")
	assert.Contains(t, plans[1], "freight forwarder")
	for _, c := range disruption.Categories {
		assert.NotEmpty(t, Recommendation(c), c)
	}
	assert.Empty(t, MitigationPlan(nil))
}
