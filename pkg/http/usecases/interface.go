package usecases

import (
	"context"

	"github.com/lintang-b-s/behaviorplanner/pkg/costfunction"
	da "github.com/lintang-b-s/behaviorplanner/pkg/datastructure"
	"github.com/lintang-b-s/behaviorplanner/pkg/planner"
)

type PlannerEngine interface {
	ChooseNextTrajectory(ctx context.Context, vehicle costfunction.Vehicle,
		predictions da.Predictions, trajectories []da.Trajectory) (planner.Evaluation, []planner.Evaluation, error)
}
