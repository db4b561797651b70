package costfunction

import (
	"testing"

	"github.com/lintang-b-s/behaviorplanner/pkg"
	da "github.com/lintang-b-s/behaviorplanner/pkg/datastructure"
	"github.com/stretchr/testify/assert"
)

func TestLaneSpeed(t *testing.T) {
	predictions := da.Predictions{
		pkg.EGO_VEHICLE_ID: {da.NewPredictedState(0, 10, 99, 0)},
		4:                  {da.NewPredictedState(1, 40, 18, 0), da.NewPredictedState(1, 58, 18, 0)},
		2:                  {da.NewPredictedState(1, 20, 17, 0)},
		7:                  {da.NewPredictedState(2, 5, 25, 0), da.NewPredictedState(1, 30, 25, 0)},
	}

	testCases := []struct {
		name          string
		lane          int
		expectedSpeed float64
		expectedOk    bool
	}{
		{
			name:          "ego is not a lane sample",
			lane:          0,
			expectedSpeed: 0,
			expectedOk:    false,
		},
		{
			name:          "lowest id answers for a shared lane",
			lane:          1,
			expectedSpeed: 17,
			expectedOk:    true,
		},
		{
			name:          "only the first predicted state counts",
			lane:          2,
			expectedSpeed: 25,
			expectedOk:    true,
		},
		{
			name:          "empty lane",
			lane:          3,
			expectedSpeed: 0,
			expectedOk:    false,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			speed, ok := LaneSpeed(predictions, tt.lane)
			assert.Equal(t, tt.expectedOk, ok)
			assert.Equal(t, tt.expectedSpeed, speed)
		})
	}
}

func TestLaneSpeedNoPredictions(t *testing.T) {
	speed, ok := LaneSpeed(nil, 0)
	assert.False(t, ok)
	assert.Zero(t, speed)
}

func TestLaneSpeeds(t *testing.T) {
	predictions := da.Predictions{
		pkg.EGO_VEHICLE_ID: {da.NewPredictedState(0, 10, 99, 0)},
		4:                  {da.NewPredictedState(1, 40, 18, 0)},
		2:                  {da.NewPredictedState(1, 20, 17, 0)},
		7:                  {da.NewPredictedState(2, 5, 25, 0), da.NewPredictedState(1, 30, 25, 0)},
		9:                  {},
	}

	speeds := LaneSpeeds(predictions)
	assert.Equal(t, map[int]float64{1: 17, 2: 25}, speeds)

	for lane := 0; lane < 4; lane++ {
		speed, ok := LaneSpeed(predictions, lane)
		expected, found := speeds[lane]
		assert.Equal(t, found, ok, "lane %d", lane)
		assert.Equal(t, expected, speed, "lane %d", lane)
	}
}

func TestLaneSpeedIsStableAcrossCalls(t *testing.T) {
	predictions := da.Predictions{}
	for id := 30; id > 0; id-- {
		predictions[id] = []da.PredictedState{da.NewPredictedState(0, float64(id), float64(id), 0)}
	}

	for i := 0; i < 20; i++ {
		speed, ok := LaneSpeed(predictions, 0)
		assert.True(t, ok)
		assert.Equal(t, 1.0, speed)
		assert.Equal(t, map[int]float64{0: 1}, LaneSpeeds(predictions))
	}
}
