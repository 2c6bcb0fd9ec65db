package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Romz16/ProfitMAX/internal/catalog"
	"github.com/Romz16/ProfitMAX/pkg/constants"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	state, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if state.Budget != constants.DefaultBudget {
		t.Errorf("Budget = %.2f, expected %.2f", state.Budget, constants.DefaultBudget)
	}
	if state.RiskFactor != constants.DefaultRiskFactor {
		t.Errorf("RiskFactor = %.2f, expected %.2f", state.RiskFactor, constants.DefaultRiskFactor)
	}
	if state.Products == nil || len(state.Products) != 0 {
		t.Errorf("Products = %v, expected empty slice", state.Products)
	}
}

func TestLoadMalformedFileFailsLoudly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() error = nil, expected parse failure for malformed state")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	state := catalog.State{
		Budget:     2500,
		RiskFactor: 0.8,
		Products: []catalog.Product{
			{
				ID: "p1", Name: "Widget",
				SupplierCost:      10,
				OperationalCost:   2,
				CommittedQuantity: 5,
				LeadTimeDays:      14,
				StockOnHand:       3,
				TargetSellPrice:   20,
				History: []catalog.SaleRecord{
					{Period: "2025-01", Quantity: 100, UnitPrice: 10},
				},
			},
		},
	}

	if err := Save(path, state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(state, loaded) {
		t.Errorf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", state, loaded)
	}
}

func TestLoadAppliesProductDefaults(t *testing.T) {
	// A state file from an older version without the newer product fields.
	path := filepath.Join(t.TempDir(), "legacy.json")
	legacy := `{
  "budget": 1000,
  "risk_factor": 0.3,
  "products": [
    {"id": "p1", "name": "Old Widget", "supplier_cost": 10}
  ]
}`
	if err := os.WriteFile(path, []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	state, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(state.Products) != 1 {
		t.Fatalf("Products = %d, expected 1", len(state.Products))
	}
	p := state.Products[0]
	if p.CommittedQuantity != constants.DefaultCommittedQuantity {
		t.Errorf("CommittedQuantity = %d, expected %d", p.CommittedQuantity, constants.DefaultCommittedQuantity)
	}
	if p.LeadTimeDays != constants.DefaultLeadTimeDays {
		t.Errorf("LeadTimeDays = %d, expected %d", p.LeadTimeDays, constants.DefaultLeadTimeDays)
	}
	if p.History == nil {
		t.Error("History = nil, expected empty slice")
	}
}

func TestSaveOverwritesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := Save(path, catalog.DefaultState()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	updated := catalog.DefaultState()
	updated.Budget = 9999
	if err := Save(path, updated); err != nil {
		t.Fatalf("Save() overwrite error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Budget != 9999 {
		t.Errorf("Budget = %.2f, expected 9999", loaded.Budget)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, expected only the state file", len(entries))
	}
}
