package sim

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/driverdash/backend/internal/demand"
	"github.com/driverdash/backend/internal/domain"
)

// SlotHours is the simulation step: moving between locations takes one
// 30-minute slot during which the mover earns nothing.
const SlotHours = 0.5

// Scenario fixes the conditions of one simulated shift window.
type Scenario struct {
	Condition    string
	City         int
	StartHours   float64
	HorizonHours float64
	Drivers      int
	Model        Model
	Alpha        float64
}

func (sc Scenario) model() Model {
	if sc.Model == "" {
		return ModelSaturation
	}
	return sc.Model
}

func (sc Scenario) alpha() float64 {
	if sc.Alpha == 0 {
		return DefaultAlpha
	}
	return sc.Alpha
}

// SimulateOnce runs one shift window twice from identical driver starting
// states: once following the greedy recommendation, once repositioning at
// random. It returns the total macro revenue of each strategy.
//
// Per slot, each strategy picks targets for drivers with hours left; a
// driver who stays earns, a mover travels for the slot and arrives at its
// target for the next one. Hours tick down by SlotHours either way.
func SimulateOnce(table *domain.DemandTable, sc Scenario, rng *rand.Rand) (recTotal, randTotal float64) {
	model, alpha := sc.model(), sc.alpha()

	recDrivers := make([]Driver, sc.Drivers)
	randDrivers := make([]Driver, sc.Drivers)
	for i := range recDrivers {
		d := Driver{
			Location:  rng.Intn(domain.LocationsPerCity),
			HoursLeft: float64(1 + rng.Intn(8)),
		}
		recDrivers[i] = d
		randDrivers[i] = d
	}

	hours := sc.StartHours
	steps := int(math.Ceil(sc.HorizonHours / SlotHours))

	for s := 0; s < steps; s++ {
		revenues := demand.RevenueVector(table, sc.Condition, sc.City, hours)

		recTotal += stepRecommended(recDrivers, revenues, model, alpha)
		randTotal += stepRandom(randDrivers, revenues, model, alpha, rng)

		hours = math.Mod(hours+SlotHours, 24)
	}
	return recTotal, randTotal
}

// stepRecommended advances one slot under the greedy strategy and returns
// the revenue earned by the drivers who stayed put.
func stepRecommended(drivers []Driver, revenues []float64, model Model, alpha float64) float64 {
	activeIdx := activeDrivers(drivers)
	if len(activeIdx) == 0 {
		return 0
	}

	active := make([]Driver, len(activeIdx))
	for i, di := range activeIdx {
		active[i] = drivers[di]
	}
	counts := GreedyAllocation(len(active), revenues, model, alpha)
	targets := AssignTargets(active, counts)

	stayCounts := make([]int, len(revenues))
	for i, di := range activeIdx {
		if targets[i] == drivers[di].Location {
			if drivers[di].Location < len(stayCounts) {
				stayCounts[drivers[di].Location]++
			}
		} else {
			drivers[di].Location = targets[i] // in transit; arrives next slot
		}
		drivers[di].HoursLeft = math.Max(0, drivers[di].HoursLeft-SlotHours)
	}
	return MacroRevenue(stayCounts, revenues, model, alpha)
}

// stepRandom advances one slot with uniformly random targets.
func stepRandom(drivers []Driver, revenues []float64, model Model, alpha float64, rng *rand.Rand) float64 {
	activeIdx := activeDrivers(drivers)
	if len(activeIdx) == 0 {
		return 0
	}

	stayCounts := make([]int, len(revenues))
	for _, di := range activeIdx {
		tgt := rng.Intn(domain.LocationsPerCity)
		if tgt == drivers[di].Location {
			if tgt < len(stayCounts) {
				stayCounts[tgt]++
			}
		} else {
			drivers[di].Location = tgt
		}
		drivers[di].HoursLeft = math.Max(0, drivers[di].HoursLeft-SlotHours)
	}
	return MacroRevenue(stayCounts, revenues, model, alpha)
}

func activeDrivers(drivers []Driver) []int {
	idx := make([]int, 0, len(drivers))
	for i, d := range drivers {
		if d.HoursLeft > 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// ExperimentResult holds per-run totals for both strategies.
type ExperimentResult struct {
	RecTotals  []float64
	RandTotals []float64
}

// Summary condenses an experiment into the headline numbers.
type Summary struct {
	Runs      int
	MeanRec   float64
	StdRec    float64
	MeanRand  float64
	StdRand   float64
	WinRate   float64
	UpliftPct float64
}

// RunExperiment repeats SimulateOnce runs times with a shared seeded RNG,
// so results are reproducible for a fixed seed.
func RunExperiment(table *domain.DemandTable, sc Scenario, runs int, seed int64) ExperimentResult {
	rng := rand.New(rand.NewSource(seed))
	res := ExperimentResult{
		RecTotals:  make([]float64, runs),
		RandTotals: make([]float64, runs),
	}
	for i := 0; i < runs; i++ {
		res.RecTotals[i], res.RandTotals[i] = SimulateOnce(table, sc, rng)
	}
	return res
}

// Summarize computes strategy means, spreads, the share of runs where the
// recommendation beat random, and the mean revenue uplift.
func (r ExperimentResult) Summarize() Summary {
	s := Summary{Runs: len(r.RecTotals)}
	if s.Runs == 0 {
		return s
	}
	s.MeanRec = stat.Mean(r.RecTotals, nil)
	s.MeanRand = stat.Mean(r.RandTotals, nil)
	if s.Runs > 1 {
		s.StdRec = stat.StdDev(r.RecTotals, nil)
		s.StdRand = stat.StdDev(r.RandTotals, nil)
	}
	wins := 0
	for i := range r.RecTotals {
		if r.RecTotals[i] > r.RandTotals[i] {
			wins++
		}
	}
	s.WinRate = float64(wins) / float64(s.Runs)
	if s.MeanRand != 0 {
		s.UpliftPct = (s.MeanRec/s.MeanRand - 1) * 100
	}
	return s
}
