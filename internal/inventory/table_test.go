package inventory

import (
	"errors"
	"math"
	"testing"
)

func TestBuildBaseline(t *testing.T) {
	tbl := Build()
	if len(tbl) != 8 {
		t.Fatalf("expected 8 components, got %d", len(tbl))
	}
	for _, c := range tbl {
		if c.Status != StatusNominal {
			t.Errorf("%s: expected Nominal status, got %s", c.Name, c.Status)
		}
		if c.Alert != NoAlert {
			t.Errorf("%s: expected placeholder alert, got %q", c.Name, c.Alert)
		}
		want := float64(c.OnHandStock) / float64(c.DailyConsumption)
		if math.Abs(c.DaysOfSupply-want) > 0.05 {
			t.Errorf("%s: days of supply %.2f, want %.2f", c.Name, c.DaysOfSupply, want)
		}
	}
	if tbl[0].Name != "CPU Model A" || tbl[0].DaysOfSupply != 30 {
		t.Fatalf("unexpected first row: %+v", tbl[0])
	}
}

func TestDaysOfSupplyRounding(t *testing.T) {
	cases := []struct {
		stock, cons int
		want        float64
	}{
		{15000, 500, 30},
		{8000, 250, 32},
		{40000, 1200, 33.3},
		{50000, 1500, 33.3},
		{12000, 700, 17.1},
		{100, 0, 0},
	}
	for _, tc := range cases {
		if got := DaysOfSupply(tc.stock, tc.cons); got != tc.want {
			t.Errorf("DaysOfSupply(%d, %d) = %v, want %v", tc.stock, tc.cons, got, tc.want)
		}
	}
}

func TestNewTableRejectsZeroConsumption(t *testing.T) {
	_, err := NewTable([]Component{{Name: "X", Supplier: "S", Origin: "O", ShippingLane: "L", OnHandStock: 10}})
	if !errors.Is(err, ErrZeroConsumption) {
		t.Fatalf("expected ErrZeroConsumption, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	base := Build()
	cp := base.Clone()
	cp[0].LeadTimeDays += 10
	if base[0].LeadTimeDays != 25 {
		t.Fatalf("mutating clone changed base: %d", base[0].LeadTimeDays)
	}
}

func TestDistinctPreservesOrder(t *testing.T) {
	lanes, err := Build().Distinct(ColumnShippingLane)
	if err != nil {
		t.Fatalf("distinct: %v", err)
	}
	want := []string{"Trans-Pacific", "Taiwan-US", "Intra-Asia", "Korea-US"}
	if len(lanes) != len(want) {
		t.Fatalf("got %v, want %v", lanes, want)
	}
	for i := range want {
		if lanes[i] != want[i] {
			t.Fatalf("got %v, want %v", lanes, want)
		}
	}
	if _, err := Build().Distinct(Column("colour")); !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
}
