package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	HealthCheck(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"API is healthy and running"}`, rr.Body.String())
}

func TestReadiness(t *testing.T) {
	ok := ReadinessCheck{Name: "postgres", Check: func(context.Context) error { return nil }}
	down := ReadinessCheck{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }}

	t.Run("all checks pass", func(t *testing.T) {
		rr := httptest.NewRecorder()
		Readiness(ok)(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ready","postgres":"ok"}`, rr.Body.String())
	})

	t.Run("one failing check", func(t *testing.T) {
		rr := httptest.NewRecorder()
		Readiness(ok, down)(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.JSONEq(t, `{"status":"not ready","postgres":"ok","redis":"unavailable"}`, rr.Body.String())
	})
}
