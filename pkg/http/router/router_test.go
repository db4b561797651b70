package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"github.com/lintang-b-s/behaviorplanner/pkg/costfunction"
	http_server "github.com/lintang-b-s/behaviorplanner/pkg/http/server"
	"github.com/lintang-b-s/behaviorplanner/pkg/http/usecases"
	"github.com/lintang-b-s/behaviorplanner/pkg/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const evaluateRequestBody = `{
  "vehicle": {"lane": 1, "s": 100, "v": 10, "goal_lane": 0, "goal_s": 300,
    "target_speed": 20, "max_acceleration": 3, "preferred_buffer": 5, "lanes_available": 3},
  "predictions": [{"id": 2, "states": [{"lane": 1, "s": 160, "v": 12, "a": 0}]}],
  "trajectories": [
    [{"state": "KL", "lane": 1, "s": 100}, {"state": "KL", "lane": 1, "s": 113}],
    [{"state": "KL", "lane": 1, "s": 100}, {"state": "LCR", "lane": 0, "s": 113}]
  ]
}`

type evaluateEnvelope struct {
	Data *struct {
		BestIndex int `json:"best_index"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestServer(t *testing.T) (*API, *httptest.Server) {
	t.Helper()
	engine := planner.NewPlanner(costfunction.NewCostCalculator(costfunction.DefaultConfig()), 2)
	svc := usecases.NewPlannerService(zap.NewNop(), engine)

	api := NewAPI(zap.NewNop())
	srv := httptest.NewServer(api.Handler(http_server.Config{Timeout: 5 * time.Second}, svc))
	t.Cleanup(srv.Close)
	return api, srv
}

func TestHandlerEvaluateTrajectories(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/evaluateTrajectories", "application/json",
		strings.NewReader(evaluateRequestBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env evaluateEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.NotNil(t, env.Data)
	assert.Equal(t, 1, env.Data.BestIndex)

	metricsResp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()
	body, err := io.ReadAll(metricsResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `behaviorplanner_trajectory_evaluations_total{result="ok"} 2`)
	assert.Contains(t, string(body), "behaviorplanner_best_trajectory_cost")
}

func TestHandlerHealthz(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandlerRejectsNonJSON(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/evaluateTrajectories", "text/plain", strings.NewReader(evaluateRequestBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

func TestWebsocketEvaluate(t *testing.T) {
	api, srv := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, _, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/evaluate")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return api.hub.Len() == 1 }, time.Second, 10*time.Millisecond)

	testCases := []struct {
		name              string
		request           string
		expectedBestIndex int
		expectedErrorCode string
	}{
		{
			name:              "evaluate request",
			request:           evaluateRequestBody,
			expectedBestIndex: 1,
		},
		{
			name:              "malformed request keeps the stream open",
			request:           `{"vehicle":`,
			expectedErrorCode: http.StatusText(http.StatusBadRequest),
		},
		{
			name:              "invalid request",
			request:           strings.Replace(evaluateRequestBody, `"lanes_available": 3`, `"lanes_available": 0`, 1),
			expectedErrorCode: http.StatusText(http.StatusBadRequest),
		},
		{
			name:              "stream continues after errors",
			request:           evaluateRequestBody,
			expectedBestIndex: 1,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, wsutil.WriteClientText(conn, []byte(tt.request)))
			msg, err := wsutil.ReadServerText(conn)
			require.NoError(t, err)

			var env evaluateEnvelope
			require.NoError(t, json.Unmarshal(msg, &env))
			if tt.expectedErrorCode != "" {
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.expectedErrorCode, env.Error.Code)
				return
			}
			require.NotNil(t, env.Data)
			assert.Equal(t, tt.expectedBestIndex, env.Data.BestIndex)
		})
	}

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return api.hub.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHandlerMetricsPathLabels(t *testing.T) {
	_, srv := newTestServer(t)

	for _, p := range []string{"/wp-admin", "/api/unknown", "/.env"} {
		resp, err := http.Get(srv.URL + p)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `behaviorplanner_response_status_code{method="GET",path="other",status="404"} 3`)
	assert.NotContains(t, string(body), "wp-admin")
}
