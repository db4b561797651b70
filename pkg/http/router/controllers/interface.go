package controllers

import (
	"context"

	da "github.com/lintang-b-s/behaviorplanner/pkg/datastructure"
	"github.com/lintang-b-s/behaviorplanner/pkg/planner"
	"github.com/lintang-b-s/behaviorplanner/pkg/vehicle"
)

type PlannerService interface {
	EvaluateTrajectories(ctx context.Context, ego *vehicle.Ego, predictions da.Predictions,
		trajectories []da.Trajectory) ([]planner.Evaluation, int, map[int]float64, error)
}

type EvaluationObserver interface {
	ObserveEvaluations(evaluations []planner.Evaluation, bestIndex int)
}
