package costfunction

import (
	"math"

	da "github.com/lintang-b-s/behaviorplanner/pkg/datastructure"
)

// GoalDistanceCost grows with the distance of the intended and final lanes
// from the goal lane, and gets larger as the vehicle approaches the goal.
type GoalDistanceCost struct {
	eps float64
}

func NewGoalDistanceCost(eps float64) *GoalDistanceCost {
	return &GoalDistanceCost{eps: eps}
}

func (gd *GoalDistanceCost) Evaluate(vehicle Vehicle, trajectory da.Trajectory, predictions da.Predictions,
	data da.TrajectoryData) float64 {
	goalLane := vehicle.GetGoalLane()
	averageLaneDiff := float64(abs(data.GetIntendedLane()-goalLane)+abs(data.GetFinalLane()-goalLane)) / 2.0

	return averageLaneDiff / math.Max(data.GetEndDistanceToGoal(), gd.eps)
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
