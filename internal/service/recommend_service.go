package service

import (
	"github.com/driverdash/backend/internal/demand"
	"github.com/driverdash/backend/internal/sim"
)

// Recommendation is the allocation advice for one selection: how many
// drivers each location should absorb, alongside the expected revenue
// vector the advice was computed from.
type Recommendation struct {
	Condition    string    `json:"condition"`
	City         int       `json:"city"`
	ElapsedHours float64   `json:"elapsed_hours"`
	Drivers      int       `json:"drivers"`
	Counts       []int     `json:"counts"`
	Revenues     []float64 `json:"revenues"`
}

// RecommendService computes driver allocation advice from the demand table.
type RecommendService struct {
	mapSvc *MapService
	model  sim.Model
	alpha  float64
}

// NewRecommendService creates a new recommendation service
func NewRecommendService(mapSvc *MapService) *RecommendService {
	return &RecommendService{
		mapSvc: mapSvc,
		model:  sim.ModelSaturation,
		alpha:  sim.DefaultAlpha,
	}
}

// Recommend greedily splits the given driver count across the city's
// locations by marginal expected revenue. A selection with no demand row
// yields a zero revenue vector and a uniform-by-greedy spread; absent data
// is advice-neutral, not an error.
func (s *RecommendService) Recommend(condition string, city int, elapsedHours float64, drivers int) Recommendation {
	revenues := demand.RevenueVector(s.mapSvc.DemandTable(), condition, city, elapsedHours)
	counts := sim.GreedyAllocation(drivers, revenues, s.model, s.alpha)
	return Recommendation{
		Condition:    condition,
		City:         city,
		ElapsedHours: elapsedHours,
		Drivers:      drivers,
		Counts:       counts,
		Revenues:     revenues,
	}
}
