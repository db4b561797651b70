package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(r.RemoteAddr))
})

func TestHeartbeat(t *testing.T) {
	handler := Heartbeat("healthz")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "get heartbeat", method: http.MethodGet, path: "/healthz", expectedStatus: http.StatusOK},
		{name: "head heartbeat", method: http.MethodHead, path: "/healthz", expectedStatus: http.StatusOK},
		{name: "post passes through", method: http.MethodPost, path: "/healthz", expectedStatus: http.StatusTeapot},
		{name: "other path passes through", method: http.MethodGet, path: "/api", expectedStatus: http.StatusTeapot},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestEnforceJSONHandler(t *testing.T) {
	handler := EnforceJSONHandler(okHandler)

	testCases := []struct {
		name           string
		contentType    string
		expectedStatus int
	}{
		{name: "json", contentType: "application/json", expectedStatus: http.StatusOK},
		{name: "json with charset", contentType: "application/json; charset=utf-8", expectedStatus: http.StatusOK},
		{name: "no content type", contentType: "", expectedStatus: http.StatusOK},
		{name: "plain text", contentType: "text/plain", expectedStatus: http.StatusUnsupportedMediaType},
		{name: "malformed", contentType: "application/", expectedStatus: http.StatusUnsupportedMediaType},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/evaluateTrajectories", strings.NewReader("{}"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestRealIP(t *testing.T) {
	handler := RealIP(okHandler)

	testCases := []struct {
		name       string
		header     string
		value      string
		expectedIP string
	}{
		{name: "x-real-ip", header: "X-Real-IP", value: "10.1.1.1", expectedIP: "10.1.1.1"},
		{name: "first forwarded address", header: "X-Forwarded-For", value: "10.2.2.2, 10.3.3.3", expectedIP: "10.2.2.2"},
		{name: "invalid forwarded address keeps remote addr", header: "X-Forwarded-For", value: "nope", expectedIP: "192.0.2.1:1234"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(tt.header, tt.value)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.expectedIP, rec.Body.String())
		})
	}
}

func TestLimit(t *testing.T) {
	handler := Limit(0.001, 2)(okHandler)

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		statuses = append(statuses, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
}

func TestRecoverPanic(t *testing.T) {
	api := NewAPI(zap.NewNop())
	handler := api.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("cost registry corrupted")
	}))

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "close", rec.Header().Get("Connection"))
}
