package handler

import (
	"context"
	"go-blog-api/common"
	"go-blog-api/logger"
	"net/http"
	"time"
)

// HealthCheck godoc
// @Summary      Show the status of server
// @Description  get the status of server
// @Tags         health
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	common.WriteJSON(w, http.StatusOK, map[string]string{"status": "API is healthy and running"})
}

// ReadinessCheck is one named dependency check, e.g. a database ping.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Readiness godoc
// @Summary      Report whether the storage backends answer
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /ready [get]
func Readiness(checks ...ReadinessCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		result := map[string]string{"status": "ready"}
		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				logger.Log.WithError(err).Warnf("Readiness check %s failed", c.Name)
				result[c.Name] = "unavailable"
				result["status"] = "not ready"
				status = http.StatusServiceUnavailable
				continue
			}
			result[c.Name] = "ok"
		}
		common.WriteJSON(w, status, result)
	}
}
