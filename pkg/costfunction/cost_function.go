package costfunction

import (
	da "github.com/lintang-b-s/behaviorplanner/pkg/datastructure"
)

// Vehicle is the ego vehicle as seen by the cost model. GetKinematics is the
// kinematics provider: the feasible ego motion in lane at trajectory end.
type Vehicle interface {
	GetGoalLane() int
	GetGoalS() float64
	GetKinematics(predictions da.Predictions, lane int) da.Kinematics
}

// CostFunction scores one trajectory. Implementations must be pure and return
// a non-negative value, also when the goal is already passed.
type CostFunction interface {
	Evaluate(vehicle Vehicle, trajectory da.Trajectory, predictions da.Predictions,
		data da.TrajectoryData) float64
}

// CostFunc adapts a plain function to CostFunction.
type CostFunc func(vehicle Vehicle, trajectory da.Trajectory, predictions da.Predictions,
	data da.TrajectoryData) float64

func (f CostFunc) Evaluate(vehicle Vehicle, trajectory da.Trajectory, predictions da.Predictions,
	data da.TrajectoryData) float64 {
	return f(vehicle, trajectory, predictions, data)
}

// WeightedCost is one registry entry of the cost aggregator.
type WeightedCost struct {
	Name   string
	Weight float64
	Fn     CostFunction
}

func NewWeightedCost(name string, weight float64, fn CostFunction) WeightedCost {
	return WeightedCost{
		Name:   name,
		Weight: weight,
		Fn:     fn,
	}
}
