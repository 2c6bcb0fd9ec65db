// Package planner turns per-product demand estimates into a budgeted
// integer purchase plan.
package planner

import (
	"fmt"

	"github.com/Romz16/ProfitMAX/internal/catalog"
	"github.com/Romz16/ProfitMAX/internal/demand"
	"github.com/Romz16/ProfitMAX/pkg/mathutil"
	"github.com/Romz16/ProfitMAX/pkg/milp"
	"go.uber.org/zap"
)

// Status reports the outcome of an optimization run.
type Status string

const (
	// StatusOptimal means the solver produced an optimal purchase plan.
	StatusOptimal Status = "Optimal"

	// StatusInfeasible means the budget cannot cover committed sales.
	StatusInfeasible Status = "Infeasible"

	// StatusNoData means no product had a usable demand signal.
	StatusNoData Status = "NoData"
)

// InfeasibleMessage distinguishes a budget shortfall on committed sales
// from general sub-optimality.
const InfeasibleMessage = "budget insufficient to cover committed sales"

// NoDataMessage explains a run where nothing was analyzable.
const NoDataMessage = "no analyzable products"

// LineItem is one recommended purchase.
type LineItem struct {
	ProductID           string  `json:"productId"`
	ProductName         string  `json:"productName"`
	Quantity            int     `json:"quantity"`
	UnitSupplierCost    float64 `json:"unitSupplierCost"`
	UnitOperationalCost float64 `json:"unitOperationalCost"`
	SellPrice           float64 `json:"sellPrice"`
	Investment          float64 `json:"investment"`
	ProjectedProfit     float64 `json:"projectedProfit"`
	Source              string  `json:"source"`
}

// SkippedProduct records a product excluded from the model and why.
type SkippedProduct struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Reason      string `json:"reason"`
}

// Result is the outcome of one optimization run.
type Result struct {
	Status          Status           `json:"status"`
	Message         string           `json:"message,omitempty"`
	LineItems       []LineItem       `json:"lineItems"`
	SkippedProducts []SkippedProduct `json:"skippedProducts"`
}

// candidate pairs a product with its resolved demand and allocation bounds.
type candidate struct {
	product    catalog.Product
	estimate   demand.Estimate
	unitProfit float64
	mustBuy    int
	canBuy     int
}

// Run computes the purchase plan for a read-only product snapshot. The
// budget must be non-negative and the risk factor must lie in [0, 1]; both
// are caller contract obligations. Identical inputs produce identical plans.
func Run(logger *zap.Logger, products []catalog.Product, budget, riskFactor float64) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	candidates, skipped := collectCandidates(logger, products, riskFactor)
	if len(candidates) == 0 {
		logger.Info("no analyzable products in snapshot",
			zap.String("op", "planner.Run"),
			zap.Int("skipped", len(skipped)),
		)
		return Result{
			Status:          StatusNoData,
			Message:         NoDataMessage,
			LineItems:       []LineItem{},
			SkippedProducts: skipped,
		}, nil
	}

	vars := make([]milp.Variable, len(candidates))
	for i, c := range candidates {
		vars[i] = milp.Variable{
			Name:   c.product.ID,
			Lower:  c.mustBuy,
			Upper:  c.canBuy,
			Profit: c.unitProfit,
			Cost:   c.product.SupplierCost,
		}
	}

	solution, err := milp.Maximize(vars, budget)
	if err != nil {
		return Result{}, fmt.Errorf("purchase plan solve failed: %w", err)
	}

	if solution.Status != milp.StatusOptimal {
		logger.Warn("budget cannot cover committed sales",
			zap.String("op", "planner.Run"),
			zap.Float64("budget", budget),
			zap.Int("candidates", len(candidates)),
		)
		return Result{
			Status:          StatusInfeasible,
			Message:         InfeasibleMessage,
			LineItems:       []LineItem{},
			SkippedProducts: skipped,
		}, nil
	}

	items := []LineItem{}
	for i, c := range candidates {
		quantity := solution.Values[i]
		if quantity <= 0 {
			continue
		}
		items = append(items, LineItem{
			ProductID:           c.product.ID,
			ProductName:         c.product.Name,
			Quantity:            quantity,
			UnitSupplierCost:    c.product.SupplierCost,
			UnitOperationalCost: c.product.OperationalCost,
			SellPrice:           c.estimate.FinalPrice,
			Investment:          mathutil.Round(float64(quantity) * c.product.SupplierCost),
			ProjectedProfit:     mathutil.Round(float64(quantity) * c.unitProfit),
			Source:              c.estimate.Source.Display(),
		})
	}

	logger.Info("purchase plan solved",
		zap.String("op", "planner.Run"),
		zap.Int("lineItems", len(items)),
		zap.Int("skipped", len(skipped)),
		zap.Float64("projectedProfit", solution.Objective),
	)

	return Result{
		Status:          StatusOptimal,
		LineItems:       items,
		SkippedProducts: skipped,
	}, nil
}

// collectCandidates resolves demand for every product and constructs the
// per-product allocation bounds. Products without any demand signal are
// recorded as skipped.
func collectCandidates(logger *zap.Logger, products []catalog.Product, riskFactor float64) ([]candidate, []SkippedProduct) {
	var candidates []candidate
	skipped := []SkippedProduct{}

	for _, p := range products {
		estimate, ok := demand.Resolve(p, logger)
		if !ok {
			skipped = append(skipped, SkippedProduct{
				ProductID:   p.ID,
				ProductName: p.Name,
				Reason:      demand.SkipReason,
			})
			continue
		}

		allowed := demand.AllowedDemand(p.CommittedQuantity, estimate.Ceiling, riskFactor)

		mustBuy := mathutil.MaxInt(0, p.CommittedQuantity-p.StockOnHand)
		canBuy := mathutil.MaxInt(0, allowed-p.StockOnHand)
		// No purchase is needed or possible when stock already covers the
		// allowed demand.
		if canBuy == 0 {
			mustBuy = 0
		}

		candidates = append(candidates, candidate{
			product:    p,
			estimate:   estimate,
			unitProfit: estimate.FinalPrice - (p.SupplierCost + p.OperationalCost),
			mustBuy:    mustBuy,
			canBuy:     canBuy,
		})
	}

	return candidates, skipped
}
