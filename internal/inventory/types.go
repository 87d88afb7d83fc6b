// Inventory records monitored by the sentinel
package inventory

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Status is the classification tier of a component.
type Status string

// Component status constants.
const (
	StatusNominal  Status = "Nominal"
	StatusWarning  Status = "WARNING"
	StatusCritical Status = "CRITICAL"
)

// NoAlert is the placeholder alert text shown for nominal rows.
const NoAlert = "-"

// Column names a grouping column of the table.
type Column string

// Grouping columns used to select disruption targets.
const (
	ColumnComponent    Column = "component"
	ColumnSupplier     Column = "supplier"
	ColumnOrigin       Column = "origin"
	ColumnShippingLane Column = "shipping_lane"
)

var (
	// ErrZeroConsumption is returned for records whose daily consumption is not positive.
	ErrZeroConsumption = errors.New("daily consumption must be positive")
	// ErrUnknownColumn is returned when a grouping column is not recognised.
	ErrUnknownColumn = errors.New("unknown column")
)

// Component is one row of the inventory table.
type Component struct {
	Name              string `json:"component" yaml:"name"`
	Supplier          string `json:"supplier" yaml:"supplier"`
	SecondarySupplier string `json:"secondary_supplier" yaml:"secondary_supplier"`
	Origin            string `json:"origin" yaml:"origin"`
	ShippingLane      string `json:"shipping_lane" yaml:"shipping_lane"`
	LeadTimeDays      int    `json:"lead_time_days" yaml:"lead_time_days"`
	OnHandStock       int    `json:"on_hand_stock" yaml:"on_hand_stock"`
	DailyConsumption  int    `json:"daily_consumption" yaml:"daily_consumption"`
	RevenuePerUnit    int    `json:"revenue_per_unit" yaml:"revenue_per_unit"`

	DaysOfSupply       float64 `json:"days_of_supply" yaml:"-"`
	ProjectedShortfall float64 `json:"projected_shortfall" yaml:"-"`
	Status             Status  `json:"status" yaml:"-"`
	Alert              string  `json:"alert" yaml:"-"`
	// Shortfall is set by the classifier only when the row is critical because
	// stock runs out before replenishment arrives.
	Shortfall bool `json:"shortfall" yaml:"-"`
}

// Validate checks the identifying and numeric fields of a record.
func (c Component) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("component name cannot be empty")
	}
	if c.Supplier == "" {
		return fmt.Errorf("component %s: supplier cannot be empty", c.Name)
	}
	if c.Origin == "" {
		return fmt.Errorf("component %s: origin cannot be empty", c.Name)
	}
	if c.ShippingLane == "" {
		return fmt.Errorf("component %s: shipping lane cannot be empty", c.Name)
	}
	if c.LeadTimeDays < 0 {
		return fmt.Errorf("component %s: lead time cannot be negative, got %d", c.Name, c.LeadTimeDays)
	}
	if c.OnHandStock < 0 {
		return fmt.Errorf("component %s: on-hand stock cannot be negative, got %d", c.Name, c.OnHandStock)
	}
	if c.DailyConsumption <= 0 {
		return fmt.Errorf("component %s: %w, got %d", c.Name, ErrZeroConsumption, c.DailyConsumption)
	}
	return nil
}

// Recompute refreshes DaysOfSupply from stock and consumption, rounded to one decimal.
// Records without consumption keep a zero value.
func (c *Component) Recompute() {
	c.DaysOfSupply = DaysOfSupply(c.OnHandStock, c.DailyConsumption)
}

// Value returns the record's value for a grouping column.
func (c Component) Value(col Column) (string, error) {
	switch col {
	case ColumnComponent:
		return c.Name, nil
	case ColumnSupplier:
		return c.Supplier, nil
	case ColumnOrigin:
		return c.Origin, nil
	case ColumnShippingLane:
		return c.ShippingLane, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
}

// DaysOfSupply returns stock/consumption rounded to one decimal place.
func DaysOfSupply(stock, consumption int) float64 {
	if consumption <= 0 {
		return 0
	}
	d := decimal.NewFromInt(int64(stock)).Div(decimal.NewFromInt(int64(consumption))).Round(1)
	f, _ := d.Float64()
	return f
}
