package handler

import (
	"fmt"
	"go-blog-api/common"
	"go-blog-api/logger"
	"net/http"
	"runtime/debug"
)

func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			err.Send(w)
		}
	}
}

// RecoverMiddleware turns a panic in a handler into a 500 response.
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Log.WithField("stack", string(debug.Stack())).Errorf("Recovered from panic: %v", rec)
				common.NewAppError(http.StatusInternalServerError, "Internal server error", fmt.Errorf("panic: %v", rec)).Send(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
