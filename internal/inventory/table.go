package inventory

import "fmt"

// Table is the ordered set of monitored components.
type Table []Component

// NewTable validates the records and returns a table with derived fields initialised.
func NewTable(components []Component) (Table, error) {
	t := make(Table, 0, len(components))
	for _, c := range components {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		c.Status = StatusNominal
		c.Alert = NoAlert
		c.Shortfall = false
		c.ProjectedShortfall = 0
		c.Recompute()
		t = append(t, c)
	}
	return t, nil
}

// Build returns the fixed eight-component table used by the simulator.
func Build() Table {
	t, err := NewTable(baseline)
	if err != nil {
		panic(fmt.Sprintf("inventory: invalid baseline table: %v", err))
	}
	return t
}

// Clone returns a copy of the table that can be mutated independently.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// Distinct returns the distinct values of col in order of first appearance.
func (t Table) Distinct(col Column) ([]string, error) {
	seen := make(map[string]struct{}, len(t))
	var out []string
	for _, c := range t {
		v, err := c.Value(col)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out, nil
}

// Recompute refreshes DaysOfSupply on every row.
func (t Table) Recompute() {
	for i := range t {
		t[i].Recompute()
	}
}

// Counts tallies rows per status.
func (t Table) Counts() map[Status]int {
	counts := map[Status]int{StatusNominal: 0, StatusWarning: 0, StatusCritical: 0}
	for _, c := range t {
		counts[c.Status]++
	}
	return counts
}

var baseline = []Component{
	{Name: "CPU Model A", Supplier: "Intel", Origin: "USA", ShippingLane: "Trans-Pacific", LeadTimeDays: 25, OnHandStock: 15000, DailyConsumption: 500, RevenuePerUnit: 400, SecondarySupplier: "AMD"},
	{Name: "GPU Model X", Supplier: "Nvidia", Origin: "Taiwan", ShippingLane: "Taiwan-US", LeadTimeDays: 30, OnHandStock: 8000, DailyConsumption: 250, RevenuePerUnit: 600, SecondarySupplier: "AMD"},
	{Name: "16GB DDR5 RAM", Supplier: "Micron", Origin: "Singapore", ShippingLane: "Intra-Asia", LeadTimeDays: 15, OnHandStock: 40000, DailyConsumption: 1200, RevenuePerUnit: 80, SecondarySupplier: "Hynix"},
	{Name: "1TB NVMe SSD", Supplier: "Samsung", Origin: "South Korea", ShippingLane: "Korea-US", LeadTimeDays: 20, OnHandStock: 25000, DailyConsumption: 800, RevenuePerUnit: 120, SecondarySupplier: "Kioxia"},
	{Name: "Power Supply Unit", Supplier: "Delta Electronics", Origin: "Taiwan", ShippingLane: "Taiwan-US", LeadTimeDays: 30, OnHandStock: 18000, DailyConsumption: 600, RevenuePerUnit: 50, SecondarySupplier: "Lite-On"},
	{Name: "Chassis Type B", Supplier: "Foxconn", Origin: "China", ShippingLane: "Intra-Asia", LeadTimeDays: 12, OnHandStock: 50000, DailyConsumption: 1500, RevenuePerUnit: 25, SecondarySupplier: "Inventec"},
	{Name: "Motherboard Z", Supplier: "ASUS", Origin: "Taiwan", ShippingLane: "Taiwan-US", LeadTimeDays: 28, OnHandStock: 12000, DailyConsumption: 400, RevenuePerUnit: 150, SecondarySupplier: "Gigabyte"},
	{Name: "Cooling Fan", Supplier: "Nidec", Origin: "China", ShippingLane: "Intra-Asia", LeadTimeDays: 14, OnHandStock: 80000, DailyConsumption: 2500, RevenuePerUnit: 10, SecondarySupplier: "Sunon"},
}
