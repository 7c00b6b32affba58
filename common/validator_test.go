package common

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-blog-api/model"

	"github.com/stretchr/testify/assert"
)

func validSignUp() model.SignUpRequest {
	return model.SignUpRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "Secret123",
		RPassword: "Secret123",
	}
}

func TestValidate_SignUpMessages(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *model.SignUpRequest)
		message string
	}{
		{"missing field", func(r *model.SignUpRequest) { r.LastName = "" }, "Missing required fields"},
		{"missing field wins over bad email", func(r *model.SignUpRequest) { r.FirstName = ""; r.Email = "nope" }, "Missing required fields"},
		{"invalid email", func(r *model.SignUpRequest) { r.Email = "ada@example" }, "Email address is invalid!"},
		{"invalid email wins over short password", func(r *model.SignUpRequest) { r.Email = "ada"; r.Password = "x"; r.RPassword = "x" }, "Email address is invalid!"},
		{"password equals email", func(r *model.SignUpRequest) { r.Password = r.Email; r.RPassword = r.Email }, "Can't use the email address as password."},
		{"short password", func(r *model.SignUpRequest) { r.Password = "Ab1"; r.RPassword = "Ab1" }, "Password must be at least 8 characters long"},
		{"no uppercase", func(r *model.SignUpRequest) { r.Password = "secret123"; r.RPassword = "secret123" }, "Password must contain at least one uppercase letter"},
		{"no lowercase", func(r *model.SignUpRequest) { r.Password = "SECRET123"; r.RPassword = "SECRET123" }, "Password must contain at least one lowercase letter"},
		{"no digit", func(r *model.SignUpRequest) { r.Password = "SecretPass"; r.RPassword = "SecretPass" }, "Password must contain at least one number"},
		{"mismatch", func(r *model.SignUpRequest) { r.RPassword = "Secret124" }, "Passwords do not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignUp()
			tt.mutate(&req)

			appErr := Validate(&req)

			if assert.NotNil(t, appErr) {
				assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
				assert.Equal(t, tt.message, appErr.Message)
			}
		})
	}

	t.Run("valid", func(t *testing.T) {
		req := validSignUp()
		assert.Nil(t, Validate(&req))
	})
}

func TestValidate_PostStatus(t *testing.T) {
	req := model.PostRequest{Title: "t", Text: "b", Excerpt: "e", Published: "scheduled"}

	appErr := Validate(&req)

	if assert.NotNil(t, appErr) {
		assert.Equal(t, "Published must be either published or draft", appErr.Message)
	}
}

func TestValidateAndDecode(t *testing.T) {
	t.Run("malformed body", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
		var req model.SignInRequest

		appErr := ValidateAndDecode(r, &req)

		if assert.NotNil(t, appErr) {
			assert.Equal(t, http.StatusBadRequest, appErr.Code)
		}
	})

	t.Run("decoded and valid", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.co","password":"pw"}`))
		var req model.SignInRequest

		appErr := ValidateAndDecode(r, &req)

		assert.Nil(t, appErr)
		assert.Equal(t, "a@b.co", req.Email)
	})
}
