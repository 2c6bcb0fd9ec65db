// Package milp solves the integer programs produced by the purchase
// planner: bounded integer variables, a linear maximization objective, and a
// single linear capacity constraint. That structure is a bounded knapsack,
// so an exact branch-and-bound with a greedy fractional relaxation bound is
// sufficient; no external solver is required.
package milp

import (
	"fmt"
	"math"
	"sort"
)

// Variable is one bounded integer decision variable.
type Variable struct {
	Name string

	// Lower and Upper bound the integer value, inclusive.
	Lower, Upper int

	// Profit is the objective contribution per unit.
	Profit float64

	// Cost is the capacity consumed per unit. Must be non-negative.
	Cost float64
}

// Status reports the outcome of a solve.
type Status string

const (
	// StatusOptimal means an optimal integer assignment was found.
	StatusOptimal Status = "Optimal"

	// StatusInfeasible means the lower bounds alone exceed the capacity.
	StatusInfeasible Status = "Infeasible"
)

// Solution holds the solved assignment, aligned by index with the input
// variables.
type Solution struct {
	Status    Status
	Values    []int
	Objective float64
}

const feasibilityTolerance = 1e-9

// Maximize solves max sum(Profit_i * x_i) subject to
// sum(Cost_i * x_i) <= capacity and Lower_i <= x_i <= Upper_i, x integer.
// The search is deterministic for identical inputs. An error indicates a
// malformed model, not infeasibility.
func Maximize(vars []Variable, capacity float64) (Solution, error) {
	if capacity < 0 {
		return Solution{}, fmt.Errorf("capacity %.2f is negative", capacity)
	}
	for i, v := range vars {
		if v.Lower < 0 {
			return Solution{}, fmt.Errorf("variable %s: lower bound %d is negative", v.Name, v.Lower)
		}
		if v.Lower > v.Upper {
			return Solution{}, fmt.Errorf("variable %s: lower bound %d exceeds upper bound %d", v.Name, v.Lower, v.Upper)
		}
		if v.Cost < 0 {
			return Solution{}, fmt.Errorf("variable %s: cost %.2f is negative", v.Name, v.Cost)
		}
		if math.IsNaN(v.Profit) || math.IsInf(v.Profit, 0) || math.IsNaN(v.Cost) || math.IsInf(v.Cost, 0) {
			return Solution{}, fmt.Errorf("variable %s (index %d): non-finite coefficient", v.Name, i)
		}
	}

	// Fix every variable at its lower bound first; those units are forced
	// regardless of profitability.
	values := make([]int, len(vars))
	objective := 0.0
	used := 0.0
	for i, v := range vars {
		values[i] = v.Lower
		objective += float64(v.Lower) * v.Profit
		used += float64(v.Lower) * v.Cost
	}
	if used > capacity+feasibilityTolerance {
		return Solution{Status: StatusInfeasible}, nil
	}
	remaining := capacity - used

	// Units beyond the lower bound are only worth buying when they add
	// profit. Costless profitable units are taken outright.
	var items []knapsackItem
	for i, v := range vars {
		extra := v.Upper - v.Lower
		if extra == 0 || v.Profit <= 0 {
			continue
		}
		if v.Cost <= feasibilityTolerance {
			values[i] += extra
			objective += float64(extra) * v.Profit
			continue
		}
		items = append(items, knapsackItem{index: i, max: extra, profit: v.Profit, cost: v.Cost})
	}

	extras := solveKnapsack(items, remaining)
	for k, item := range items {
		values[item.index] += extras[k]
		objective += float64(extras[k]) * item.profit
	}

	return Solution{Status: StatusOptimal, Values: values, Objective: objective}, nil
}

type knapsackItem struct {
	index  int
	max    int
	profit float64
	cost   float64
}

// solveKnapsack finds the exact optimal unit counts for a bounded knapsack
// via depth-first branch and bound. Items are explored in profit-density
// order; the fractional relaxation of the remaining items gives the bound.
func solveKnapsack(items []knapsackItem, capacity float64) []int {
	counts := make([]int, len(items))
	if len(items) == 0 || capacity <= feasibilityTolerance {
		return counts
	}

	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		da := items[order[a]].profit / items[order[a]].cost
		db := items[order[b]].profit / items[order[b]].cost
		if da != db {
			return da > db
		}
		return items[order[a]].index < items[order[b]].index
	})

	best := 0.0
	bestCounts := make([]int, len(items))
	current := make([]int, len(items))

	// relaxationBound computes the fractional knapsack optimum over
	// order[pos:] for the given capacity.
	relaxationBound := func(pos int, capacity float64) float64 {
		bound := 0.0
		for _, k := range order[pos:] {
			item := items[k]
			full := math.Min(float64(item.max), capacity/item.cost)
			bound += full * item.profit
			capacity -= full * item.cost
			if capacity <= feasibilityTolerance {
				break
			}
		}
		return bound
	}

	var search func(pos int, capacity, value float64)
	search = func(pos int, capacity, value float64) {
		if value > best {
			best = value
			copy(bestCounts, current)
		}
		if pos == len(order) {
			return
		}
		if value+relaxationBound(pos, capacity) <= best+feasibilityTolerance {
			return
		}

		item := items[order[pos]]
		maxUnits := item.max
		if affordable := int(math.Floor(capacity/item.cost + feasibilityTolerance)); affordable < maxUnits {
			maxUnits = affordable
		}
		for units := maxUnits; units >= 0; units-- {
			current[order[pos]] = units
			search(pos+1, capacity-float64(units)*item.cost, value+float64(units)*item.profit)
		}
		current[order[pos]] = 0
	}
	search(0, capacity, 0)

	copy(counts, bestCounts)
	return counts
}
