// Package vehicle provides the ego vehicle model used as the kinematics
// provider of the cost model.
package vehicle

import (
	"errors"
	"fmt"
	"math"

	"github.com/lintang-b-s/behaviorplanner/pkg"
	"github.com/lintang-b-s/behaviorplanner/pkg/costfunction"
	da "github.com/lintang-b-s/behaviorplanner/pkg/datastructure"
)

var ErrInvalidVehicle = errors.New("invalid ego vehicle")

// Ego is the ego vehicle state for one decision cycle. Units follow the
// planner: s in metres, v in metres per time step, a in metres per time step².
type Ego struct {
	Lane            int
	S               float64
	V               float64
	A               float64
	GoalLane        int
	GoalS           float64
	TargetSpeed     float64
	MaxAcceleration float64
	PreferredBuffer float64 // gap kept to the vehicle ahead
	LanesAvailable  int
}

var _ costfunction.Vehicle = (*Ego)(nil)

func (e *Ego) GetGoalLane() int {
	return e.GoalLane
}

func (e *Ego) GetGoalS() float64 {
	return e.GoalS
}

/*
GetKinematics. returns the position, velocity and acceleration the ego vehicle can reach
in lane at the next time step, given the other vehicles' predictions.

without a vehicle ahead the ego accelerates toward the target speed. with a vehicle ahead
it keeps the preferred buffer, and when it is also boxed in by a vehicle behind it simply
matches the speed of the vehicle ahead.
*/
func (e *Ego) GetKinematics(predictions da.Predictions, lane int) da.Kinematics {
	maxVelocityAccelLimit := e.MaxAcceleration + e.V

	var newVelocity float64
	if ahead, ok := e.GetVehicleAhead(predictions, lane); ok {
		if _, behind := e.GetVehicleBehind(predictions, lane); behind {
			newVelocity = ahead.V
		} else {
			maxVelocityInFront := (ahead.S - e.S - e.PreferredBuffer) + ahead.V - 0.5*e.A
			newVelocity = math.Min(math.Min(maxVelocityInFront, maxVelocityAccelLimit), e.TargetSpeed)
		}
	} else {
		newVelocity = math.Min(maxVelocityAccelLimit, e.TargetSpeed)
	}

	newAccel := newVelocity - e.V
	newPosition := e.S + newVelocity + newAccel/2.0
	return da.NewKinematics(newPosition, newVelocity, newAccel)
}

// GetVehicleAhead returns the current state of the closest tracked vehicle in lane ahead of the ego.
// Vehicles at the same s are ordered by id.
func (e *Ego) GetVehicleAhead(predictions da.Predictions, lane int) (da.PredictedState, bool) {
	var (
		nearest   da.PredictedState
		nearestID int
		found     bool
	)
	for id, states := range predictions {
		if id == pkg.EGO_VEHICLE_ID || len(states) == 0 {
			continue
		}
		cur := states[0]
		if cur.Lane != lane || cur.S <= e.S {
			continue
		}
		if !found || cur.S < nearest.S || (cur.S == nearest.S && id < nearestID) {
			nearest, nearestID, found = cur, id, true
		}
	}
	return nearest, found
}

// GetVehicleBehind returns the current state of the closest tracked vehicle in lane behind the ego.
func (e *Ego) GetVehicleBehind(predictions da.Predictions, lane int) (da.PredictedState, bool) {
	var (
		nearest   da.PredictedState
		nearestID int
		found     bool
	)
	for id, states := range predictions {
		if id == pkg.EGO_VEHICLE_ID || len(states) == 0 {
			continue
		}
		cur := states[0]
		if cur.Lane != lane || cur.S >= e.S {
			continue
		}
		if !found || cur.S > nearest.S || (cur.S == nearest.S && id < nearestID) {
			nearest, nearestID, found = cur, id, true
		}
	}
	return nearest, found
}

func (e *Ego) ValidLane(lane int) bool {
	return lane >= 0 && lane < e.LanesAvailable
}

func (e *Ego) Validate() error {
	if e.LanesAvailable <= 0 {
		return fmt.Errorf("lanes available must be positive, got %d: %w", e.LanesAvailable, ErrInvalidVehicle)
	}
	if !e.ValidLane(e.Lane) {
		return fmt.Errorf("lane %d out of range [0,%d): %w", e.Lane, e.LanesAvailable, ErrInvalidVehicle)
	}
	if !e.ValidLane(e.GoalLane) {
		return fmt.Errorf("goal lane %d out of range [0,%d): %w", e.GoalLane, e.LanesAvailable, ErrInvalidVehicle)
	}
	for name, v := range map[string]float64{
		"s":                e.S,
		"v":                e.V,
		"a":                e.A,
		"goal s":           e.GoalS,
		"target speed":     e.TargetSpeed,
		"max acceleration": e.MaxAcceleration,
		"preferred buffer": e.PreferredBuffer,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s is not finite: %w", name, ErrInvalidVehicle)
		}
	}
	return nil
}
