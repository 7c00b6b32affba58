package common

import (
	"encoding/json"
	"go-blog-api/logger"
	"net/http"

	"github.com/sirupsen/logrus"
)

// AppError is the error type returned by HTTP handlers. Err is logged and
// never written to the client. Extra fields are merged into the JSON body.
type AppError struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Err     error          `json:"-"`
	Extra   map[string]any `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// With adds a field to the response body and returns the receiver.
func (e *AppError) With(key string, value any) *AppError {
	if e.Extra == nil {
		e.Extra = make(map[string]any)
	}
	e.Extra[key] = value
	return e
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, len(e.Extra)+2)
	for k, v := range e.Extra {
		body[k] = v
	}
	body["code"] = e.Code
	body["message"] = e.Message
	return json.Marshal(body)
}

func (e *AppError) Send(w http.ResponseWriter) {
	fields := logrus.Fields{"status_code": e.Code}
	if e.Err != nil {
		fields["internal_error"] = e.Err.Error()
	}
	if e.Code >= http.StatusInternalServerError {
		logger.Log.WithFields(fields).Error(e.Message)
	} else {
		logger.Log.WithFields(fields).Debug(e.Message)
	}

	WriteJSON(w, e.Code, e)
}

// WriteJSON writes v as the JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.WithError(err).Error("Failed to encode response body")
	}
}
