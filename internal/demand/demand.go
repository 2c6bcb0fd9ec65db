// Package demand resolves, per product, which price and demand-ceiling
// source to trust, and maps the global risk appetite to an allowed demand.
package demand

import (
	"math"

	"github.com/Romz16/ProfitMAX/internal/catalog"
	"github.com/Romz16/ProfitMAX/internal/elasticity"
	"github.com/Romz16/ProfitMAX/pkg/constants"
	"go.uber.org/zap"
)

// Source identifies which demand signal produced an estimate.
type Source string

const (
	// SourceEstimator marks demand derived from the elasticity fit.
	SourceEstimator Source = "estimator"

	// SourceManual marks demand taken from the manual sales estimate.
	SourceManual Source = "manual"

	// SourceCommitted marks demand limited to already-committed sales.
	SourceCommitted Source = "committed"
)

// Display returns the human-readable label used in rendered plans.
func (s Source) Display() string {
	switch s {
	case SourceEstimator:
		return "Estimator (history)"
	case SourceManual:
		return "Manual (estimate)"
	case SourceCommitted:
		return "Committed only"
	default:
		return string(s)
	}
}

// SkipReason is recorded for products excluded from the optimization model.
const SkipReason = "no historical or manual demand signal"

// Estimate is the resolved demand picture for one product.
type Estimate struct {
	FinalPrice float64
	Ceiling    int
	Source     Source
}

// Resolve evaluates the demand sources for a product in strict priority
// order: elasticity fit, manual estimate, committed sales. The second return
// is false when no source applies and the product must be skipped.
//
// For every resolved product the ceiling is at least the committed quantity,
// so downstream bounds never undercut promised sales.
func Resolve(p catalog.Product, logger *zap.Logger) (Estimate, bool) {
	if logger == nil {
		logger = zap.NewNop()
	}

	estimate, ok := resolveSource(p, logger)
	if !ok {
		return Estimate{}, false
	}
	if estimate.Ceiling < p.CommittedQuantity {
		estimate.Ceiling = p.CommittedQuantity
	}
	return estimate, true
}

func resolveSource(p catalog.Product, logger *zap.Logger) (Estimate, bool) {
	fit, err := elasticity.Estimate(p.History, p.SupplierCost)
	if err == nil && fit.OptimalQuantity > 0 {
		return Estimate{
			FinalPrice: fit.OptimalPrice,
			Ceiling:    int(float64(fit.OptimalQuantity) * constants.DemandBufferFactor),
			Source:     SourceEstimator,
		}, true
	}
	if err != nil {
		logger.Debug("elasticity fit unavailable, falling back",
			zap.String("op", "demand.Resolve"),
			zap.String("product", p.ID),
			zap.String("reason", err.Error()),
		)
	}

	if p.ManualSalesEstimate > 0 {
		return Estimate{
			FinalPrice: p.TargetSellPrice,
			Ceiling:    p.ManualSalesEstimate,
			Source:     SourceManual,
		}, true
	}

	if p.CommittedQuantity > 0 {
		return Estimate{
			FinalPrice: p.TargetSellPrice,
			Ceiling:    p.CommittedQuantity,
			Source:     SourceCommitted,
		}, true
	}

	return Estimate{}, false
}

// AllowedDemand interpolates between the committed floor and the resolved
// ceiling according to the risk factor: 0 buys only committed volume, 1 buys
// up to the full ceiling. Monotonic non-decreasing in riskFactor.
func AllowedDemand(committed, ceiling int, riskFactor float64) int {
	upside := float64(ceiling - committed)
	return committed + int(math.Floor(upside*riskFactor))
}
