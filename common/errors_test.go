package common

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Send(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		rr := httptest.NewRecorder()

		NewAppError(http.StatusUnauthorized, "Unauthorized", nil).Send(rr)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"code":401,"message":"Unauthorized"}`, rr.Body.String())
	})

	t.Run("extra fields and hidden cause", func(t *testing.T) {
		rr := httptest.NewRecorder()

		NewAppError(http.StatusInternalServerError, "Could not sign out", errors.New("db down")).
			With("logout", false).
			Send(rr)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.JSONEq(t, `{"code":500,"message":"Could not sign out","logout":false}`, rr.Body.String())
		assert.NotContains(t, rr.Body.String(), "db down")
	})
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	appErr := NewAppError(http.StatusInternalServerError, "boom", cause)

	assert.ErrorIs(t, appErr, cause)
	assert.Equal(t, "boom", appErr.Error())
}
