package handler

import (
	"context"
	"go-blog-api/model"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockVerifier struct{ mock.Mock }

func (m *mockVerifier) Verify(ctx context.Context, token string, kind model.TokenKind) (*model.Actor, bool) {
	args := m.Called(token, kind)
	actor, _ := args.Get(0).(*model.Actor)
	return actor, args.Bool(1)
}

func TestRequireActor(t *testing.T) {
	ada := &model.Actor{ID: "a1", FirstName: "Ada"}

	var seen *model.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	tests := []struct {
		name       string
		header     string
		setupMock  func(m *mockVerifier)
		wantStatus int
		wantActor  *model.Actor
	}{
		{
			name:       "no header",
			setupMock:  func(m *mockVerifier) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "rejected token",
			header: "bad",
			setupMock: func(m *mockVerifier) {
				m.On("Verify", "bad", model.AccessToken).Return(nil, false).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "header is passed through verbatim",
			header: "Bearer good",
			setupMock: func(m *mockVerifier) {
				m.On("Verify", "Bearer good", model.AccessToken).Return(ada, true).Once()
			},
			wantStatus: http.StatusNoContent,
			wantActor:  ada,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seen = nil
			verifier := new(mockVerifier)
			tc.setupMock(verifier)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()

			RequireActor(verifier)(next).ServeHTTP(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Equal(t, tc.wantActor, seen)
			if tc.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"code":401,"message":"Unauthorized"}`, rr.Body.String())
			}
			verifier.AssertExpectations(t)
		})
	}
}

func TestCurrentActor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, appErr := currentActor(req)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.Code)

	ada := &model.Actor{ID: "a1"}
	actor, appErr := currentActor(req.WithContext(WithActor(req.Context(), ada)))
	assert.Nil(t, appErr)
	assert.Same(t, ada, actor)
}
