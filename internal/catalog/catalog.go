// Package catalog defines the product and sales data structures that the
// decision engine operates on, along with their validation rules.
package catalog

import (
	"fmt"

	"github.com/Romz16/ProfitMAX/pkg/constants"
)

// SaleRecord is a single historical sales observation. Ordering within a
// product's history carries no meaning for the estimator.
type SaleRecord struct {
	Period    string  `json:"period" yaml:"period"`
	Quantity  int     `json:"quantity" yaml:"quantity"`
	UnitPrice float64 `json:"unit_price" yaml:"unit_price"`
}

// Product is a catalog entry. The decision engine receives products as a
// read-only snapshot and never mutates them.
type Product struct {
	ID                  string       `json:"id" yaml:"id"`
	Name                string       `json:"name" yaml:"name"`
	SupplierCost        float64      `json:"supplier_cost" yaml:"supplier_cost"`
	OperationalCost     float64      `json:"operational_cost" yaml:"operational_cost"`
	CommittedQuantity   int          `json:"committed_quantity" yaml:"committed_quantity"`
	LeadTimeDays        int          `json:"lead_time_days" yaml:"lead_time_days"`
	StockOnHand         int          `json:"stock_on_hand" yaml:"stock_on_hand"`
	TargetSellPrice     float64      `json:"target_sell_price" yaml:"target_sell_price"`
	ManualSalesEstimate int          `json:"manual_sales_estimate" yaml:"manual_sales_estimate"`
	History             []SaleRecord `json:"history" yaml:"history"`
}

// State is the caller-owned snapshot passed into each optimization run.
type State struct {
	Budget     float64   `json:"budget" yaml:"budget"`
	RiskFactor float64   `json:"risk_factor" yaml:"risk_factor"`
	Products   []Product `json:"products" yaml:"products"`
}

// DefaultState returns the state used when no stored data exists yet.
func DefaultState() State {
	return State{
		Budget:     constants.DefaultBudget,
		RiskFactor: constants.DefaultRiskFactor,
		Products:   []Product{},
	}
}

// ApplyDefaults fills fields that may be absent in products stored by older
// versions of the application.
func (p *Product) ApplyDefaults() {
	if p.CommittedQuantity <= 0 {
		p.CommittedQuantity = constants.DefaultCommittedQuantity
	}
	if p.LeadTimeDays <= 0 {
		p.LeadTimeDays = constants.DefaultLeadTimeDays
	}
	if p.History == nil {
		p.History = []SaleRecord{}
	}
}

// Validate checks the structural invariants of a sale record.
func (s SaleRecord) Validate() error {
	if s.Quantity < 0 {
		return fmt.Errorf("sale record %q: quantity %d is negative", s.Period, s.Quantity)
	}
	if s.UnitPrice < 0 {
		return fmt.Errorf("sale record %q: unit price %.2f is negative", s.Period, s.UnitPrice)
	}
	return nil
}

// Validate checks the structural invariants of a product and its history.
func (p Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("product %q: missing id", p.Name)
	}
	if p.SupplierCost < 0 {
		return fmt.Errorf("product %s: supplier cost %.2f is negative", p.Name, p.SupplierCost)
	}
	if p.OperationalCost < 0 {
		return fmt.Errorf("product %s: operational cost %.2f is negative", p.Name, p.OperationalCost)
	}
	if p.CommittedQuantity < 0 {
		return fmt.Errorf("product %s: committed quantity %d is negative", p.Name, p.CommittedQuantity)
	}
	if p.StockOnHand < 0 {
		return fmt.Errorf("product %s: stock on hand %d is negative", p.Name, p.StockOnHand)
	}
	if p.TargetSellPrice < 0 {
		return fmt.Errorf("product %s: target sell price %.2f is negative", p.Name, p.TargetSellPrice)
	}
	if p.ManualSalesEstimate < 0 {
		return fmt.Errorf("product %s: manual sales estimate %d is negative", p.Name, p.ManualSalesEstimate)
	}
	for _, record := range p.History {
		if err := record.Validate(); err != nil {
			return fmt.Errorf("product %s: %w", p.Name, err)
		}
	}
	return nil
}

// ValidateState performs structural validation of the snapshot and returns an
// error for contract violations along with advisory warnings.
func ValidateState(state State) ([]string, error) {
	if state.Budget < 0 {
		return nil, fmt.Errorf("budget %.2f is negative", state.Budget)
	}
	if state.RiskFactor < 0 || state.RiskFactor > 1 {
		return nil, fmt.Errorf("risk factor %.2f is outside [0, 1]", state.RiskFactor)
	}

	var warnings []string
	seen := make(map[string]bool)
	for _, p := range state.Products {
		if err := p.Validate(); err != nil {
			return warnings, err
		}
		if seen[p.ID] {
			return warnings, fmt.Errorf("duplicate product id %s", p.ID)
		}
		seen[p.ID] = true

		margin := p.TargetSellPrice - p.SupplierCost - p.OperationalCost
		if p.TargetSellPrice > 0 && margin < 0 {
			warnings = append(warnings, fmt.Sprintf(
				"Product '%s' target price %.2f is below total unit cost %.2f",
				p.Name, p.TargetSellPrice, p.SupplierCost+p.OperationalCost))
		}
		if len(p.History) > 0 && len(p.History) < constants.MinHistoryObservations {
			warnings = append(warnings, fmt.Sprintf(
				"Product '%s' has only %d sale records; elasticity analysis needs at least %d",
				p.Name, len(p.History), constants.MinHistoryObservations))
		}
	}
	return warnings, nil
}
