package costfunction

import (
	"github.com/lintang-b-s/behaviorplanner/pkg"
	da "github.com/lintang-b-s/behaviorplanner/pkg/datastructure"
)

// LaneSpeed returns the speed of a tracked vehicle currently in lane. All
// non-ego vehicles in a lane are assumed to drive at the same speed, so one
// vehicle is a representative sample. The vehicle with the lowest id answers;
// which vehicle of a shared lane answers is not part of the contract.
// ok is false when no tracked vehicle is in lane.
func LaneSpeed(predictions da.Predictions, lane int) (speed float64, ok bool) {
	sampleID := 0
	for id, states := range predictions {
		if id == pkg.EGO_VEHICLE_ID || len(states) == 0 || states[0].Lane != lane {
			continue
		}
		if !ok || id < sampleID {
			sampleID, speed, ok = id, states[0].V, true
		}
	}
	return speed, ok
}

// LaneSpeeds returns LaneSpeed for every lane that has a tracked vehicle, in
// one pass over predictions.
func LaneSpeeds(predictions da.Predictions) map[int]float64 {
	speeds := make(map[int]float64)
	sampleIDs := make(map[int]int)
	for id, states := range predictions {
		if id == pkg.EGO_VEHICLE_ID || len(states) == 0 {
			continue
		}
		lane := states[0].Lane
		if prev, seen := sampleIDs[lane]; seen && prev < id {
			continue
		}
		sampleIDs[lane] = id
		speeds[lane] = states[0].V
	}
	return speeds
}
