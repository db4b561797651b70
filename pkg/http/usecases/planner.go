package usecases

import (
	"context"
	"errors"

	da "github.com/lintang-b-s/behaviorplanner/pkg/datastructure"
	"github.com/lintang-b-s/behaviorplanner/pkg/planner"
	"github.com/lintang-b-s/behaviorplanner/pkg/util"
	"github.com/lintang-b-s/behaviorplanner/pkg/vehicle"
	"go.uber.org/zap"
)

type PlannerService struct {
	log    *zap.Logger
	engine PlannerEngine
}

func NewPlannerService(log *zap.Logger, engine PlannerEngine) *PlannerService {
	return &PlannerService{
		log:    log,
		engine: engine,
	}
}

/*
EvaluateTrajectories. scores every candidate trajectory of one decision cycle.

returns the evaluations in request order, the index of the cheapest trajectory (-1 when none
could be scored), and the representative traffic speed of every lane that has a tracked vehicle.
a single malformed trajectory only fails its own evaluation.
*/
func (ps *PlannerService) EvaluateTrajectories(ctx context.Context, ego *vehicle.Ego, predictions da.Predictions,
	trajectories []da.Trajectory) ([]planner.Evaluation, int, map[int]float64, error) {
	if err := ego.Validate(); err != nil {
		return nil, -1, nil, util.WrapErrorf(err, util.ErrBadParamInput, "%v", err)
	}
	if err := predictions.Validate(); err != nil {
		return nil, -1, nil, util.WrapErrorf(err, util.ErrBadParamInput, "%v", err)
	}
	if err := validateTrajectoryLanes(ego, trajectories); err != nil {
		return nil, -1, nil, err
	}

	best, evaluations, err := ps.engine.ChooseNextTrajectory(ctx, ego, predictions, trajectories)
	bestIndex := best.Index
	if errors.Is(err, planner.ErrNoValidTrajectory) {
		ps.log.Warn("no candidate trajectory could be scored", zap.Int("candidates", len(trajectories)))
		bestIndex = -1
	} else if err != nil {
		return nil, -1, nil, util.WrapErrorf(err, util.ErrInternalServerError, "evaluate trajectories: %v", err)
	}

	for _, ev := range evaluations {
		if ev.Err != nil {
			ps.log.Debug("trajectory rejected", zap.Int("index", ev.Index), zap.Error(ev.Err))
		}
	}
	if bestIndex >= 0 {
		ps.log.Debug("trajectory chosen", zap.Int("index", bestIndex), zap.Float64("cost", best.Cost),
			zap.String("state", trajectories[bestIndex].Last().State.String()))
	}

	return evaluations, bestIndex, laneSpeeds(ego, predictions), nil
}
