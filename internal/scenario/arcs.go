package scenario

// BuiltIn returns predefined disruption storylines.
func BuiltIn() map[string]Scenario {
	return map[string]Scenario{
		"pacific-squeeze": {
			Name:        "Pacific Squeeze",
			Description: "Congestion on the trans-Pacific lanes spreads until Taiwan-sourced parts run short.",
			Phases: []Phase{
				{
					Name:        "setup",
					Description: "Early reports of berth delays at west coast ports.",
					Events:      []EventSpec{{Category: "port_congestion", Key: "Trans-Pacific", Magnitude: 5}},
				},
				{
					Name:        "escalation",
					Description: "Carriers blank sailings on the Taiwan-US lane.",
					Events:      []EventSpec{{Category: "port_congestion", Key: "Taiwan-US", Magnitude: 10}},
					Triggers:    []Trigger{{Event: EventCriticalRows, Value: 1, Next: "climax"}},
				},
				{
					Name:        "climax",
					Description: "Customs inspections in Taiwan compound the shipping backlog.",
					Events: []EventSpec{
						{Category: "port_congestion", Key: "Taiwan-US", Magnitude: 10},
						{Category: "geopolitical_tension", Key: "Taiwan", Magnitude: 12},
					},
				},
				{
					Name:        "resolution",
					Description: "Lanes clear; only residual delays remain.",
					Events:      []EventSpec{{Category: "port_congestion", Key: "Taiwan-US", Magnitude: 5}},
				},
			},
		},
		"demand-surge": {
			Name:        "Demand Surge",
			Description: "A product launch drives consumption of memory and storage well above plan.",
			Phases: []Phase{
				{
					Name:        "setup",
					Description: "Pre-orders exceed forecast.",
					Events:      []EventSpec{{Category: "demand_spike", Key: "16GB DDR5 RAM", Magnitude: 1.2}},
				},
				{
					Name:        "escalation",
					Description: "Storage demand follows memory.",
					Events: []EventSpec{
						{Category: "demand_spike", Key: "16GB DDR5 RAM", Magnitude: 1.45},
						{Category: "demand_spike", Key: "1TB NVMe SSD", Magnitude: 1.4},
					},
				},
				{
					Name:        "climax",
					Description: "Samsung reports a yield problem at the height of the surge.",
					Events: []EventSpec{
						{Category: "demand_spike", Key: "1TB NVMe SSD", Magnitude: 1.45},
						{Category: "production_slowdown", Key: "Samsung", Magnitude: 8},
					},
				},
				{
					Name:        "resolution",
					Description: "Demand settles at a new, higher baseline.",
					Events:      []EventSpec{{Category: "demand_spike", Key: "1TB NVMe SSD", Magnitude: 1.2}},
				},
			},
		},
		"supplier-slowdown": {
			Name:        "Supplier Slowdown",
			Description: "Quality problems ripple through the Taiwanese board and power suppliers.",
			Phases: []Phase{
				{
					Name:        "setup",
					Description: "ASUS flags a soldering defect.",
					Events:      []EventSpec{{Category: "production_slowdown", Key: "ASUS", Magnitude: 4}},
				},
				{
					Name:        "escalation",
					Description: "Delta Electronics halts a line for inspection.",
					Events: []EventSpec{
						{Category: "production_slowdown", Key: "ASUS", Magnitude: 8},
						{Category: "production_slowdown", Key: "Delta Electronics", Magnitude: 6},
					},
				},
				{
					Name:        "climax",
					Description: "Nvidia allocation cut on top of board delays.",
					Events: []EventSpec{
						{Category: "production_slowdown", Key: "Nvidia", Magnitude: 8},
						{Category: "production_slowdown", Key: "ASUS", Magnitude: 8},
					},
				},
				{
					Name:        "resolution",
					Description: "Suppliers publish recovery timelines.",
					Events:      []EventSpec{{Category: "production_slowdown", Key: "ASUS", Magnitude: 4}},
				},
			},
		},
	}
}
