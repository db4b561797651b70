package costfunction

import (
	"fmt"

	da "github.com/lintang-b-s/behaviorplanner/pkg/datastructure"
)

const (
	GOAL_DISTANCE_COST = "goal_distance"
	INEFFICIENCY_COST  = "inefficiency"
)

// CostCalculator sums an ordered registry of weighted cost functions. It holds
// no state between calls, so one calculator may score trajectories from many
// goroutines once its registry is built.
type CostCalculator struct {
	registry []WeightedCost
}

// NewCostCalculator returns a calculator with the default registry:
// goal distance weighted by cfg.ReachGoal, then inefficiency weighted by
// cfg.Efficiency.
func NewCostCalculator(cfg Config) *CostCalculator {
	return NewCostCalculatorWithRegistry(
		NewWeightedCost(GOAL_DISTANCE_COST, cfg.ReachGoal, NewGoalDistanceCost(cfg.Epsilon)),
		NewWeightedCost(INEFFICIENCY_COST, cfg.Efficiency, NewInefficiencyCost(cfg.Epsilon, cfg.Horizon)),
	)
}

func NewCostCalculatorWithRegistry(registry ...WeightedCost) *CostCalculator {
	return &CostCalculator{registry: append([]WeightedCost(nil), registry...)}
}

// Register appends a cost term. Not safe to call while trajectories are being scored.
func (cc *CostCalculator) Register(name string, weight float64, fn CostFunction) *CostCalculator {
	cc.registry = append(cc.registry, NewWeightedCost(name, weight, fn))
	return cc
}

func (cc *CostCalculator) Registry() []WeightedCost {
	return append([]WeightedCost(nil), cc.registry...)
}

// CostTerm is the contribution of one registry entry to a trajectory cost.
type CostTerm struct {
	Name     string
	Weight   float64
	Cost     float64
	Weighted float64
}

type CostBreakdown struct {
	Data  da.TrajectoryData
	Terms []CostTerm
	Total float64
}

// CalculateCost returns the weighted sum of every registered cost function for trajectory.
func (cc *CostCalculator) CalculateCost(vehicle Vehicle, trajectory da.Trajectory,
	predictions da.Predictions) (float64, error) {
	breakdown, err := cc.CalculateCostBreakdown(vehicle, trajectory, predictions)
	if err != nil {
		return 0, err
	}
	return breakdown.Total, nil
}

// CalculateCostBreakdown is CalculateCost keeping the per-term costs. A NaN,
// infinite or negative term is reported as ErrInvalidCostInput instead of being
// added, since one NaN would poison the comparison of every candidate.
func (cc *CostCalculator) CalculateCostBreakdown(vehicle Vehicle, trajectory da.Trajectory,
	predictions da.Predictions) (CostBreakdown, error) {
	data, err := ComputeHelperData(vehicle, trajectory, predictions)
	if err != nil {
		return CostBreakdown{}, err
	}

	breakdown := CostBreakdown{
		Data:  data,
		Terms: make([]CostTerm, 0, len(cc.registry)),
	}
	for _, wc := range cc.registry {
		cost := wc.Fn.Evaluate(vehicle, trajectory, predictions, data)
		weighted := wc.Weight * cost
		if !isFinite(cost) || !isFinite(weighted) {
			return CostBreakdown{}, fmt.Errorf("cost %q is %v: %w", wc.Name, cost, ErrInvalidCostInput)
		}
		if cost < 0 {
			return CostBreakdown{}, fmt.Errorf("cost %q is negative (%v): %w", wc.Name, cost, ErrInvalidCostInput)
		}

		breakdown.Terms = append(breakdown.Terms, CostTerm{
			Name:     wc.Name,
			Weight:   wc.Weight,
			Cost:     cost,
			Weighted: weighted,
		})
		breakdown.Total += weighted
	}

	if !isFinite(breakdown.Total) {
		return CostBreakdown{}, fmt.Errorf("total cost overflows: %w", ErrInvalidCostInput)
	}
	return breakdown, nil
}
