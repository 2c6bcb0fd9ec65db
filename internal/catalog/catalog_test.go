package catalog

import (
	"strings"
	"testing"
)

func validProduct() Product {
	return Product{
		ID: "p1", Name: "Widget",
		SupplierCost:      10,
		OperationalCost:   2,
		CommittedQuantity: 5,
		LeadTimeDays:      7,
		StockOnHand:       3,
		TargetSellPrice:   20,
	}
}

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Product)
		wantErr bool
	}{
		{"Valid product", func(p *Product) {}, false},
		{"Missing id", func(p *Product) { p.ID = "" }, true},
		{"Negative supplier cost", func(p *Product) { p.SupplierCost = -1 }, true},
		{"Negative operational cost", func(p *Product) { p.OperationalCost = -0.5 }, true},
		{"Negative committed quantity", func(p *Product) { p.CommittedQuantity = -2 }, true},
		{"Negative stock", func(p *Product) { p.StockOnHand = -1 }, true},
		{"Negative target price", func(p *Product) { p.TargetSellPrice = -5 }, true},
		{"Negative manual estimate", func(p *Product) { p.ManualSalesEstimate = -3 }, true},
		{
			"Negative history quantity",
			func(p *Product) { p.History = []SaleRecord{{Period: "2025-01", Quantity: -1, UnitPrice: 10}} },
			true,
		},
		{
			"Negative history price",
			func(p *Product) { p.History = []SaleRecord{{Period: "2025-01", Quantity: 1, UnitPrice: -10}} },
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := validProduct()
			tt.mutate(&product)
			err := product.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateState(t *testing.T) {
	tests := []struct {
		name         string
		state        State
		wantErr      bool
		wantWarnings int
	}{
		{
			name:  "Valid state",
			state: State{Budget: 1000, RiskFactor: 0.5, Products: []Product{validProduct()}},
		},
		{
			name:    "Negative budget",
			state:   State{Budget: -1, RiskFactor: 0.5},
			wantErr: true,
		},
		{
			name:    "Risk factor above one",
			state:   State{Budget: 100, RiskFactor: 1.5},
			wantErr: true,
		},
		{
			name:    "Risk factor below zero",
			state:   State{Budget: 100, RiskFactor: -0.1},
			wantErr: true,
		},
		{
			name: "Duplicate product ids",
			state: State{Budget: 100, RiskFactor: 0.5,
				Products: []Product{validProduct(), validProduct()}},
			wantErr: true,
		},
		{
			name: "Target price below cost warns",
			state: State{Budget: 100, RiskFactor: 0.5, Products: []Product{
				{ID: "p1", Name: "Thin", SupplierCost: 10, OperationalCost: 5, TargetSellPrice: 12},
			}},
			wantWarnings: 1,
		},
		{
			name: "Short history warns",
			state: State{Budget: 100, RiskFactor: 0.5, Products: []Product{
				{ID: "p1", Name: "Sparse", SupplierCost: 10, TargetSellPrice: 20,
					History: []SaleRecord{{Period: "2025-01", Quantity: 5, UnitPrice: 20}}},
			}},
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings, err := ValidateState(tt.state)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateState() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(warnings) != tt.wantWarnings {
				t.Errorf("warnings = %v, expected %d", warnings, tt.wantWarnings)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	product := Product{ID: "old", Name: "Legacy"}
	product.ApplyDefaults()

	if product.CommittedQuantity != 1 {
		t.Errorf("CommittedQuantity = %d, expected default 1", product.CommittedQuantity)
	}
	if product.LeadTimeDays != 7 {
		t.Errorf("LeadTimeDays = %d, expected default 7", product.LeadTimeDays)
	}
	if product.History == nil {
		t.Error("History = nil, expected empty slice")
	}

	// Existing values survive.
	existing := Product{ID: "new", CommittedQuantity: 9, LeadTimeDays: 3}
	existing.ApplyDefaults()
	if existing.CommittedQuantity != 9 || existing.LeadTimeDays != 3 {
		t.Errorf("ApplyDefaults overwrote populated fields: %+v", existing)
	}
}

func TestLoadHistoryCSV(t *testing.T) {
	csv := "period,quantity,unit_price\n2025-01,100,10.50\n2025-02,80,12.00\n"

	records, err := LoadHistoryCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("LoadHistoryCSV() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, expected 2", len(records))
	}
	if records[0].Period != "2025-01" || records[0].Quantity != 100 || records[0].UnitPrice != 10.50 {
		t.Errorf("first record = %+v", records[0])
	}
}

func TestLoadHistoryCSVFailsLoudly(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"Empty input", ""},
		{"Header only", "period,quantity,unit_price\n"},
		{"Wrong header", "month,qty,value\n2025-01,100,10\n"},
		{"Missing column", "period,quantity\n2025-01,100\n"},
		{"Malformed quantity", "period,quantity,unit_price\n2025-01,lots,10\n"},
		{"Malformed price", "period,quantity,unit_price\n2025-01,100,cheap\n"},
		{"Negative quantity", "period,quantity,unit_price\n2025-01,-4,10\n"},
		{"Negative price", "period,quantity,unit_price\n2025-01,4,-10\n"},
		{"Later row malformed", "period,quantity,unit_price\n2025-01,100,10\n2025-02,x,11\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadHistoryCSV(strings.NewReader(tt.csv)); err == nil {
				t.Error("LoadHistoryCSV() error = nil, expected parse failure")
			}
		})
	}
}
