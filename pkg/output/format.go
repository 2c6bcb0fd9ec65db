// Package output provides utilities for formatting and displaying purchase
// plan results.
package output

import (
	"fmt"

	"github.com/Romz16/ProfitMAX/internal/planner"
	"github.com/Romz16/ProfitMAX/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(result planner.Result) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Purchase plan (%s) ---\n", result.Status)
	if result.Message != "" {
		fmt.Printf("%s\n", result.Message)
	}

	if len(result.LineItems) > 0 {
		fmt.Printf("Product              | Qty   | Sell Price  | Investment    | Projected Profit | Source\n")
		fmt.Printf("_______              | ___   | __________  | __________    | ________________ | ______\n")
		totalInvestment := 0.0
		totalProfit := 0.0
		for _, item := range result.LineItems {
			_, _ = p.Printf("%-20s | %5d | $%10.2f | $%12.2f | $%15.2f | %s\n",
				item.ProductName, item.Quantity, item.SellPrice,
				item.Investment, item.ProjectedProfit, item.Source)
			totalInvestment += item.Investment
			totalProfit += item.ProjectedProfit
		}
		fmt.Printf("Total investment: %s | Total projected profit: %s\n",
			format.Currency(totalInvestment), format.Currency(totalProfit))
	}

	if len(result.SkippedProducts) > 0 {
		fmt.Printf("\nSkipped products:\n")
		for _, skip := range result.SkippedProducts {
			fmt.Printf("- %s (%s)\n", skip.ProductName, skip.Reason)
		}
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(result planner.Result) {
	fmt.Printf(`"product","quantity","unit cost","operational cost","sell price","investment","projected profit","source"`)
	fmt.Printf("\n")
	for _, item := range result.LineItems {
		fmt.Printf(`"%s","%d","%.2f","%.2f","%.2f","%.2f","%.2f","%s"`,
			item.ProductName, item.Quantity, item.UnitSupplierCost,
			item.UnitOperationalCost, item.SellPrice, item.Investment,
			item.ProjectedProfit, item.Source)
		fmt.Printf("\n")
	}
	for _, skip := range result.SkippedProducts {
		fmt.Printf(`"%s","skipped","","","","","","%s"`, skip.ProductName, skip.Reason)
		fmt.Printf("\n")
	}
}
