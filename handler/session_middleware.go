package handler

import (
	"context"
	"go-blog-api/common"
	"go-blog-api/model"
	"net/http"
)

type contextKey string

const actorKey contextKey = "actor"

// ActorVerifier resolves a token to the actor it was issued for.
type ActorVerifier interface {
	Verify(ctx context.Context, token string, kind model.TokenKind) (*model.Actor, bool)
}

func WithActor(ctx context.Context, actor *model.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

func ActorFromContext(ctx context.Context) (*model.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(*model.Actor)
	return actor, ok && actor != nil
}

// RequireActor admits a request only when its Authorization header, taken
// verbatim, is a valid access token. The resolved actor is put in the
// request context.
func RequireActor(tokens ActorVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			if token == "" {
				common.NewAppError(http.StatusUnauthorized, "Unauthorized", nil).Send(w)
				return
			}

			actor, ok := tokens.Verify(r.Context(), token, model.AccessToken)
			if !ok {
				common.NewAppError(http.StatusUnauthorized, "Unauthorized", nil).Send(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func currentActor(r *http.Request) (*model.Actor, *common.AppError) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		return nil, common.NewAppError(http.StatusUnauthorized, "Unauthorized", nil)
	}
	return actor, nil
}
