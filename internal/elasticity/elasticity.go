// Package elasticity fits a linear demand-vs-price model from a product's
// sales history and derives the profit-maximizing price and quantity.
package elasticity

import (
	"errors"
	"math"

	"github.com/Romz16/ProfitMAX/internal/catalog"
	"github.com/Romz16/ProfitMAX/pkg/constants"
	"github.com/Romz16/ProfitMAX/pkg/mathutil"
	"gonum.org/v1/gonum/stat"
)

// Estimation failures are recoverable: the demand resolver falls back to the
// next demand source when any of these occur.
var (
	// ErrInsufficientData indicates the history has too few observations to
	// fit a demand curve.
	ErrInsufficientData = errors.New("insufficient history (minimum 3 sale records)")

	// ErrNoPriceVariation indicates the history holds fewer than two
	// distinct prices, leaving the regression degenerate.
	ErrNoPriceVariation = errors.New("insufficient price variation in history")

	// ErrAnomalousElasticity indicates a fitted slope >= 0: demand rising
	// with price is treated as noise, not insight.
	ErrAnomalousElasticity = errors.New("anomalous behavior detected (non-negative elasticity)")
)

// CurvePoint is one simulated price scenario for visualization.
type CurvePoint struct {
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Profit   float64 `json:"profit"`
}

// Result holds a successful demand curve fit.
type Result struct {
	OptimalPrice    float64      `json:"optimalPrice"`
	OptimalQuantity int          `json:"optimalQuantity"`
	Elasticity      float64      `json:"elasticity"`
	Intercept       float64      `json:"intercept"`
	Curve           []CurvePoint `json:"curve"`
}

// PredictQuantity evaluates the fitted demand line at the given price,
// clamped to non-negative demand.
func (r Result) PredictQuantity(price float64) float64 {
	return mathutil.Max(0, r.Intercept+r.Elasticity*price)
}

// Estimate fits quantity = intercept + elasticity*price by ordinary least
// squares and derives the profit-maximizing price for the given supplier
// cost. The returned errors are non-fatal fallbacks, not run failures.
func Estimate(history []catalog.SaleRecord, unitCost float64) (Result, error) {
	if len(history) < constants.MinHistoryObservations {
		return Result{}, ErrInsufficientData
	}

	prices := make([]float64, len(history))
	quantities := make([]float64, len(history))
	distinct := make(map[float64]bool)
	for i, record := range history {
		prices[i] = record.UnitPrice
		quantities[i] = float64(record.Quantity)
		distinct[record.UnitPrice] = true
	}
	if len(distinct) < constants.MinDistinctPrices {
		return Result{}, ErrNoPriceVariation
	}

	intercept, slope := stat.LinearRegression(prices, quantities, nil, false)
	if slope >= 0 {
		return Result{}, ErrAnomalousElasticity
	}

	// Maximizing profit(p) = (p - cost) * (intercept + slope*p) gives
	// p* = (cost - intercept/slope) / 2, floored at a 10% markup.
	optimalPrice := (unitCost - intercept/slope) / 2
	optimalPrice = mathutil.Max(optimalPrice, unitCost*constants.MinMarkupFactor)

	result := Result{
		OptimalPrice: optimalPrice,
		Elasticity:   slope,
		Intercept:    intercept,
	}
	result.OptimalQuantity = int(result.PredictQuantity(optimalPrice))
	result.Curve = simulateCurve(result, prices, unitCost)

	return result, nil
}

// simulateCurve samples predicted quantity and projected profit across a
// price range spanning below the cheapest and above the dearest observed
// price, for rendering by the caller.
func simulateCurve(fit Result, observedPrices []float64, unitCost float64) []CurvePoint {
	minPrice := observedPrices[0]
	maxPrice := observedPrices[0]
	for _, price := range observedPrices[1:] {
		minPrice = math.Min(minPrice, price)
		maxPrice = math.Max(maxPrice, price)
	}

	lower := minPrice * constants.CurveLowerPriceFactor
	upper := maxPrice * constants.CurveUpperPriceFactor
	step := (upper - lower) / float64(constants.CurveSampleCount-1)

	curve := make([]CurvePoint, constants.CurveSampleCount)
	for i := range curve {
		price := lower + step*float64(i)
		// The raw fit, including negative predicted demand, is kept so the
		// rendered profit curve shows where the model turns unprofitable.
		quantity := fit.Intercept + fit.Elasticity*price
		curve[i] = CurvePoint{
			Price:    price,
			Quantity: quantity,
			Profit:   (price - unitCost) * quantity,
		}
	}
	return curve
}
