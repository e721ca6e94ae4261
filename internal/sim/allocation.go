// Package sim evaluates driver allocation strategies against the demand
// table: a greedy macro-revenue recommendation versus random repositioning.
package sim

import (
	"math"
	"sort"
)

// Model selects how revenue saturates as drivers pile onto one location.
type Model string

const (
	// ModelSaturation applies the concave curve R*(1-exp(-alpha*n)).
	ModelSaturation Model = "saturation"
	// ModelSplit pays the full location revenue once any driver covers it.
	ModelSplit Model = "split"
)

// DefaultAlpha is the saturation curvature used when none is configured.
const DefaultAlpha = 0.6

// Saturation is the concave macro revenue of n drivers at one location.
func Saturation(n int, revenue, alpha float64) float64 {
	if n <= 0 {
		return 0
	}
	return revenue * (1 - math.Exp(-alpha*float64(n)))
}

// SplitRevenue is the coverage-style macro revenue of n drivers.
func SplitRevenue(n int, revenue float64) float64 {
	if n <= 0 {
		return 0
	}
	return revenue
}

// locationRevenue dispatches on the congestion model.
func locationRevenue(n int, revenue float64, model Model, alpha float64) float64 {
	if model == ModelSplit {
		return SplitRevenue(n, revenue)
	}
	return Saturation(n, revenue, alpha)
}

// MacroRevenue totals the model revenue over per-location driver counts.
func MacroRevenue(counts []int, revenues []float64, model Model, alpha float64) float64 {
	total := 0.0
	for k, r := range revenues {
		if k < len(counts) {
			total += locationRevenue(counts[k], r, model, alpha)
		}
	}
	return total
}

// GreedyAllocation places drivers one at a time onto the location with the
// highest marginal revenue gain, returning the resulting counts per
// location. With the saturation model this spreads drivers; with the split
// model it covers locations in descending revenue order.
func GreedyAllocation(drivers int, revenues []float64, model Model, alpha float64) []int {
	counts := make([]int, len(revenues))
	if len(revenues) == 0 {
		return counts
	}
	for d := 0; d < drivers; d++ {
		bestK, bestGain := 0, math.Inf(-1)
		for k, r := range revenues {
			gain := locationRevenue(counts[k]+1, r, model, alpha) -
				locationRevenue(counts[k], r, model, alpha)
			if gain > bestGain {
				bestGain, bestK = gain, k
			}
		}
		counts[bestK]++
	}
	return counts
}

// Driver is one simulated shift worker: current location and remaining
// shift hours.
type Driver struct {
	Location  int
	HoursLeft float64
}

// AssignTargets maps target counts onto the active drivers, handing
// destinations to drivers with the most hours left first so the longest
// shifts claim the best spots. Returns one target location per driver,
// aligned with active.
func AssignTargets(active []Driver, counts []int) []int {
	slots := make([]int, 0, len(active))
	for k, c := range counts {
		for i := 0; i < c; i++ {
			slots = append(slots, k)
		}
	}

	order := make([]int, len(active))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return active[order[a]].HoursLeft > active[order[b]].HoursLeft
	})

	targets := make([]int, len(active))
	for rank, di := range order {
		if rank < len(slots) {
			targets[di] = slots[rank]
		} else {
			targets[di] = active[di].Location
		}
	}
	return targets
}
