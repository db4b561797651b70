// Package planner scores the candidate trajectories of one decision cycle and
// picks the cheapest one.
package planner

import (
	"context"
	"errors"

	"github.com/lintang-b-s/behaviorplanner/pkg/concurrent"
	"github.com/lintang-b-s/behaviorplanner/pkg/costfunction"
	da "github.com/lintang-b-s/behaviorplanner/pkg/datastructure"
)

var ErrNoValidTrajectory = errors.New("no valid trajectory")

type CostCalculator interface {
	CalculateCostBreakdown(vehicle costfunction.Vehicle, trajectory da.Trajectory,
		predictions da.Predictions) (costfunction.CostBreakdown, error)
}

// Evaluation is the cost of the trajectory at Index of the candidate list.
// Err is set when that single trajectory could not be scored.
type Evaluation struct {
	Index     int
	Cost      float64
	Breakdown costfunction.CostBreakdown
	Err       error
}

type Planner struct {
	calculator CostCalculator
	workers    int
}

func NewPlanner(calculator CostCalculator, workers int) *Planner {
	return &Planner{
		calculator: calculator,
		workers:    workers,
	}
}

// EvaluateTrajectories scores every trajectory concurrently. vehicle and
// predictions must not be modified until it returns. Evaluations are returned
// in the order of trajectories.
func (p *Planner) EvaluateTrajectories(ctx context.Context, vehicle costfunction.Vehicle,
	predictions da.Predictions, trajectories []da.Trajectory) ([]Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	evaluations := concurrent.Map(p.workers, trajectories, func(trajectory da.Trajectory) Evaluation {
		if err := ctx.Err(); err != nil {
			return Evaluation{Err: err}
		}
		breakdown, err := p.calculator.CalculateCostBreakdown(vehicle, trajectory, predictions)
		if err != nil {
			return Evaluation{Err: err}
		}
		return Evaluation{Cost: breakdown.Total, Breakdown: breakdown}
	})
	for i := range evaluations {
		evaluations[i].Index = i
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return evaluations, nil
}

// ChooseTrajectory returns the cheapest successfully scored evaluation. Ties
// go to the lowest index.
func ChooseTrajectory(evaluations []Evaluation) (Evaluation, error) {
	var (
		best  Evaluation
		found bool
	)
	for _, ev := range evaluations {
		if ev.Err != nil {
			continue
		}
		if !found || ev.Cost < best.Cost {
			best, found = ev, true
		}
	}
	if !found {
		return Evaluation{}, ErrNoValidTrajectory
	}
	return best, nil
}

// ChooseNextTrajectory evaluates trajectories and returns the cheapest one
// together with every evaluation.
func (p *Planner) ChooseNextTrajectory(ctx context.Context, vehicle costfunction.Vehicle,
	predictions da.Predictions, trajectories []da.Trajectory) (Evaluation, []Evaluation, error) {
	evaluations, err := p.EvaluateTrajectories(ctx, vehicle, predictions, trajectories)
	if err != nil {
		return Evaluation{}, nil, err
	}
	best, err := ChooseTrajectory(evaluations)
	if err != nil {
		return Evaluation{}, evaluations, err
	}
	return best, evaluations, nil
}
