// Package constants provides shared constants for the ProfitMAX application.
package constants

// Elasticity estimation constants
const (
	// MinHistoryObservations is the minimum number of sale records required
	// to fit a demand curve
	MinHistoryObservations = 3

	// MinDistinctPrices is the minimum number of distinct unit prices
	// required for the regression to be defined
	MinDistinctPrices = 2

	// MinMarkupFactor caps the optimal price from below: the recommended
	// price never implies a markup under 10% over supplier cost
	MinMarkupFactor = 1.1

	// CurveLowerPriceFactor scales the lowest historical price to form the
	// lower bound of the simulation curve
	CurveLowerPriceFactor = 0.8

	// CurveUpperPriceFactor scales the highest historical price to form the
	// upper bound of the simulation curve
	CurveUpperPriceFactor = 1.5

	// CurveSampleCount is the number of evenly spaced price samples in the
	// simulation curve
	CurveSampleCount = 50
)

// Demand resolution constants
const (
	// DemandBufferFactor is the exploration buffer applied above an
	// estimator-derived demand point estimate
	DemandBufferFactor = 1.2
)

// Financial constants
const (
	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// BudgetTolerance is the numerical tolerance allowed when verifying the
	// budget constraint of a solved plan
	BudgetTolerance = 1e-6
)

// Catalog defaults applied when loading stored state from older versions
const (
	// DefaultBudget is the purchasing budget for a fresh state file
	DefaultBudget = 5000.0

	// DefaultRiskFactor is the risk appetite for a fresh state file
	DefaultRiskFactor = 0.5

	// DefaultCommittedQuantity is the committed sales quantity assumed for
	// products stored before the field existed
	DefaultCommittedQuantity = 1

	// DefaultLeadTimeDays is the supplier lead time assumed for products
	// stored before the field existed
	DefaultLeadTimeDays = 7
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default settings file name
	DefaultConfigFile = "profitmax.yaml"

	// DefaultDataFile is the default catalog state file name
	DefaultDataFile = "store_data.json"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for
	// catalog payloads (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)
