package datastructure

import (
	"errors"
	"fmt"
	"math"

	"github.com/lintang-b-s/behaviorplanner/pkg"
)

// TrajectoryState is one planner state of a candidate trajectory.
type TrajectoryState struct {
	State pkg.ManeuverState
	Lane  int
	S     float64 // longitudinal (frenet) position
}

func NewTrajectoryState(state pkg.ManeuverState, lane int, s float64) TrajectoryState {
	return TrajectoryState{
		State: state,
		Lane:  lane,
		S:     s,
	}
}

// Trajectory is the ordered (before, after) pair of planner states of one maneuver.
type Trajectory []TrajectoryState

// Last returns the predicted end state of the trajectory.
func (t Trajectory) Last() TrajectoryState {
	return t[len(t)-1]
}

// PredictedState is one predicted state of a tracked vehicle.
type PredictedState struct {
	Lane int
	S    float64
	V    float64
	A    float64
}

func NewPredictedState(lane int, s, v, a float64) PredictedState {
	return PredictedState{
		Lane: lane,
		S:    s,
		V:    v,
		A:    a,
	}
}

// Predictions maps a vehicle id to its predicted states. The first state of
// each sequence is the vehicle's current state.
type Predictions map[int][]PredictedState

var (
	ErrEmptyPrediction     = errors.New("predicted trajectory has no states")
	ErrNonFinitePrediction = errors.New("predicted state has a non-finite value")
)

// Validate checks the predictions once where they enter the planner, so cost
// functions can index the first state of every vehicle without shape checks.
func (p Predictions) Validate() error {
	for id, states := range p {
		if len(states) == 0 {
			return fmt.Errorf("vehicle %d: %w", id, ErrEmptyPrediction)
		}
		for i, st := range states {
			if !isFinite(st.S) || !isFinite(st.V) || !isFinite(st.A) {
				return fmt.Errorf("vehicle %d state %d: %w", id, i, ErrNonFinitePrediction)
			}
		}
	}
	return nil
}

// Kinematics is the feasible ego (position, velocity, acceleration) in a lane.
type Kinematics struct {
	position     float64
	velocity     float64
	acceleration float64
}

func NewKinematics(position, velocity, acceleration float64) Kinematics {
	return Kinematics{
		position:     position,
		velocity:     velocity,
		acceleration: acceleration,
	}
}

func (k Kinematics) GetPosition() float64 {
	return k.position
}

func (k Kinematics) GetVelocity() float64 {
	return k.velocity
}

func (k Kinematics) GetAcceleration() float64 {
	return k.acceleration
}

// ProjectPosition returns the second order estimate of the longitudinal
// position after time t.
func (k Kinematics) ProjectPosition(t float64) float64 {
	return k.position + k.velocity*t + 0.5*k.acceleration*t*t
}

// TrajectoryData is the helper data derived once per evaluated trajectory and
// shared by every cost function.
type TrajectoryData struct {
	intendedLane      int
	finalLane         int
	endDistanceToGoal float64
}

func NewTrajectoryData(intendedLane, finalLane int, endDistanceToGoal float64) TrajectoryData {
	return TrajectoryData{
		intendedLane:      intendedLane,
		finalLane:         finalLane,
		endDistanceToGoal: endDistanceToGoal,
	}
}

// GetIntendedLane returns the lane the vehicle is maneuvering toward. It only
// differs from the final lane for prepare states.
func (td TrajectoryData) GetIntendedLane() int {
	return td.intendedLane
}

func (td TrajectoryData) GetFinalLane() int {
	return td.finalLane
}

// GetEndDistanceToGoal may be negative once the goal is passed.
func (td TrajectoryData) GetEndDistanceToGoal() float64 {
	return td.endDistanceToGoal
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
