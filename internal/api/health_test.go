// Copyright (c) 2026 Inkpost. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkpost/internal/api"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type readinessBody struct {
	Success bool `json:"success"`
	Data    struct {
		Status string `json:"status"`
		Checks []struct {
			Name  string `json:"name"`
			OK    bool   `json:"ok"`
			Error string `json:"error"`
		} `json:"checks"`
	} `json:"data"`
}

/*
TestHealth_Liveness verifies /health always answers 200.
*/
func TestHealth_Liveness(t *testing.T) {
	liveness, _ := api.NewHealthHandlers(api.HealthDependencies{}, discardLogger())

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"status":"ok"`)
}

/*
TestHealth_Readiness covers the healthy and degraded outcomes.
*/
func TestHealth_Readiness(t *testing.T) {
	healthy := func(context.Context) error { return nil }
	broken := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		deps       api.HealthDependencies
		wantStatus int
		wantState  string
	}{
		{"all healthy", api.HealthDependencies{CheckDatabase: healthy, CheckCache: healthy}, http.StatusOK, "ready"},
		{"redis down", api.HealthDependencies{CheckDatabase: healthy, CheckCache: broken}, http.StatusServiceUnavailable, "degraded"},
		{"postgres down", api.HealthDependencies{CheckDatabase: broken, CheckCache: healthy}, http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, readiness := api.NewHealthHandlers(tt.deps, discardLogger())

			recorder := httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			require.Equal(t, tt.wantStatus, recorder.Code)

			var body readinessBody
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.wantState, body.Data.Status)
			assert.Equal(t, tt.wantStatus == http.StatusOK, body.Success)
			assert.Len(t, body.Data.Checks, 2)
		})
	}
}
