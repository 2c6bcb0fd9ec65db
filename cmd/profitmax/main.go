package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Romz16/ProfitMAX/internal/catalog"
	"github.com/Romz16/ProfitMAX/internal/config"
	"github.com/Romz16/ProfitMAX/internal/planner"
	"github.com/Romz16/ProfitMAX/internal/server"
	"github.com/Romz16/ProfitMAX/internal/store"
	"github.com/Romz16/ProfitMAX/pkg/abc"
	"github.com/Romz16/ProfitMAX/pkg/constants"
	"github.com/Romz16/ProfitMAX/pkg/output"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// initializeLogger creates a zap logger based on configuration and CLI override
func initializeLogger(loggingConfig config.LoggingConfig, logLevelOverride string) (*zap.Logger, error) {
	// Determine log level (CLI override takes precedence)
	level := loggingConfig.Level
	if logLevelOverride != "" {
		level = logLevelOverride
	}
	if level == "" {
		level = "info" // Default to info level
	}

	// Parse log level
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn", "warning":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	// Determine output format
	format := loggingConfig.Format
	if format == "" {
		format = "json" // Default to JSON for production
	}

	// Configure encoder
	var zapConfig zap.Config
	switch format {
	case "console":
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	case "json":
		zapConfig = zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(zapLevel)
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}

	// Configure output file if specified
	if loggingConfig.OutputFile != "" {
		// Ensure the directory exists
		if dir := filepath.Dir(loggingConfig.OutputFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %v", dir, err)
			}
		}

		// Test if we can create/write to the file
		if file, err := os.OpenFile(loggingConfig.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err != nil {
			return nil, fmt.Errorf("failed to open log file %s: %v", loggingConfig.OutputFile, err)
		} else {
			_ = file.Close()
		}

		zapConfig.OutputPaths = []string{loggingConfig.OutputFile}
		zapConfig.ErrorOutputPaths = []string{loggingConfig.OutputFile}
	}

	return zapConfig.Build()
}

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to settings file")
	dataFileFlag := flag.String("data", "", "path to catalog state file override")
	budgetFlag := flag.Float64("budget", -1, "purchasing budget override")
	riskFlag := flag.Float64("risk", -1, "risk factor override in [0, 1]")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	showClasses := flag.Bool("abc", false, "print ABC revenue classification before the plan")
	importProduct := flag.String("import-history", "", "product id to import sales history for")
	importCSV := flag.String("csv", "", "path to a sales history CSV (with -import-history)")
	serve := flag.Bool("serve", false, "serve the HTTP API instead of running a batch plan")
	listen := flag.String("listen", "", "HTTP listen address override")
	flag.Parse()

	// Load the settings file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		return
	}

	// Initialize logging based on config and CLI override
	logger, err := initializeLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Validate settings and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	dataFile := conf.DataFile
	if *dataFileFlag != "" {
		dataFile = *dataFileFlag
	}

	if *importProduct != "" {
		if err := importHistory(logger, dataFile, *importProduct, *importCSV); err != nil {
			logger.Fatal("failed to import sales history",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	if *serve {
		address := conf.Server.Address
		if *listen != "" {
			address = *listen
		}
		maxUpload, err := server.ParseSize(conf.Server.MaxUploadSize)
		if err != nil {
			logger.Fatal("invalid server upload size",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		handler := server.NewHandler(logger, maxUpload, version)
		logger.Info("serving optimization API",
			zap.String("op", "main"),
			zap.String("address", address),
		)
		if err := http.ListenAndServe(address, handler); err != nil {
			logger.Fatal("HTTP server failed",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty // Default to pretty format
	}
	if outputFormat != constants.OutputFormatPretty && outputFormat != constants.OutputFormatCSV {
		logger.Fatal(fmt.Sprintf("output format %s is not a valid format", outputFormat),
			zap.String("op", "main"),
		)
	}

	// Load the catalog snapshot.
	state, err := store.Load(dataFile)
	if err != nil {
		logger.Fatal("failed to load catalog state",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if *budgetFlag >= 0 {
		state.Budget = *budgetFlag
	}
	if *riskFlag >= 0 {
		state.RiskFactor = *riskFlag
	}

	stateWarnings, err := catalog.ValidateState(state)
	if err != nil {
		logger.Fatal("invalid catalog state",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	for _, warning := range stateWarnings {
		logger.Warn("Catalog warning: "+warning,
			zap.String("op", "main"),
		)
	}

	if *showClasses {
		printClasses(state.Products)
	}

	// Run the optimization to get the purchase plan.
	result, err := planner.Run(logger, state.Products, state.Budget, state.RiskFactor)
	if err != nil {
		logger.Fatal("failed to compute purchase plan",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(result)
	case constants.OutputFormatCSV:
		output.CsvFormat(result)
	}
}

// importHistory replaces a product's sales history with the contents of a
// CSV file and saves the state back to disk.
func importHistory(logger *zap.Logger, dataFile, productID, csvPath string) error {
	if csvPath == "" {
		return fmt.Errorf("-import-history requires -csv")
	}

	state, err := store.Load(dataFile)
	if err != nil {
		return err
	}

	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("failed to open history CSV %s: %w", csvPath, err)
	}
	defer func() {
		_ = file.Close()
	}()

	history, err := catalog.LoadHistoryCSV(file)
	if err != nil {
		return err
	}

	found := false
	for i := range state.Products {
		if state.Products[i].ID == productID {
			state.Products[i].History = history
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("product %s not found in catalog", productID)
	}

	if err := store.Save(dataFile, state); err != nil {
		return err
	}
	logger.Info("imported sales history",
		zap.String("op", "main.importHistory"),
		zap.String("product", productID),
		zap.Int("records", len(history)),
	)
	return nil
}

func printClasses(products []catalog.Product) {
	classes := abc.Classify(products)
	fmt.Printf("--- ABC revenue classification ---\n")
	for _, p := range products {
		fmt.Printf("%-20s | Class %s\n", p.Name, classes[p.ID])
	}
	fmt.Printf("\n")
}
