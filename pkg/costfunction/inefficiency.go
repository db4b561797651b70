package costfunction

import (
	"math"

	da "github.com/lintang-b-s/behaviorplanner/pkg/datastructure"
)

// InefficiencyCost is higher for trajectories whose intended and final lanes
// have slower traffic, measured as the shortfall of the projected position
// after the lookahead horizon against goal s.
type InefficiencyCost struct {
	eps     float64
	horizon float64
}

func NewInefficiencyCost(eps, horizon float64) *InefficiencyCost {
	return &InefficiencyCost{
		eps:     eps,
		horizon: horizon,
	}
}

func (ic *InefficiencyCost) Evaluate(vehicle Vehicle, trajectory da.Trajectory, predictions da.Predictions,
	data da.TrajectoryData) float64 {
	goalS := vehicle.GetGoalS()

	averageDeficit := (ic.deficit(vehicle, predictions, data.GetIntendedLane(), goalS) +
		ic.deficit(vehicle, predictions, data.GetFinalLane(), goalS)) / 2.0

	// normalized so the term stays in 0..~1 across goals of different scale.
	return averageDeficit / math.Max(goalS, ic.eps)
}

func (ic *InefficiencyCost) deficit(vehicle Vehicle, predictions da.Predictions, lane int, goalS float64) float64 {
	kinematics := vehicle.GetKinematics(predictions, lane)
	return math.Max(0, goalS-kinematics.ProjectPosition(ic.horizon))
}
