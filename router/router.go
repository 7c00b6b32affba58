package router

import (
	_ "go-blog-api/docs"
	"go-blog-api/handler"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// Role bundles what one actor role needs mounted: its account endpoints and
// the middleware that admits its access tokens.
type Role struct {
	Sessions *handler.SessionHandler
	Tokens   handler.ActorVerifier
}

type Handlers struct {
	Authors   Role
	Readers   Role
	Posts     *handler.AuthorPostHandler
	Feed      *handler.ReaderHandler
	Readiness []handler.ReadinessCheck
}

func NewRouter(h Handlers) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.HealthCheck)
	mux.Handle("GET /ready", handler.Readiness(h.Readiness...))
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mountSessions(mux, "/api/authors", h.Authors)
	mountSessions(mux, "/api/readers", h.Readers)

	if h.Posts != nil {
		auth := handler.RequireActor(h.Authors.Tokens)
		mux.Handle("GET /api/authors/posts", auth(handler.ErrorHandlingMiddleware(h.Posts.ListPosts)))
		mux.Handle("POST /api/authors/posts", auth(handler.ErrorHandlingMiddleware(h.Posts.CreatePost)))
		mux.Handle("GET /api/authors/posts/{id}", auth(handler.ErrorHandlingMiddleware(h.Posts.GetPost)))
		mux.Handle("PUT /api/authors/posts/{id}", auth(handler.ErrorHandlingMiddleware(h.Posts.UpdatePost)))
		mux.Handle("DELETE /api/authors/posts/{id}", auth(handler.ErrorHandlingMiddleware(h.Posts.DeletePost)))
	}

	if h.Feed != nil {
		auth := handler.RequireActor(h.Readers.Tokens)
		mux.Handle("GET /api/readers/posts", handler.ErrorHandlingMiddleware(h.Feed.ListPosts))
		mux.Handle("GET /api/readers/posts/{id}", handler.ErrorHandlingMiddleware(h.Feed.ShowPost))
		mux.Handle("GET /api/readers/posts/{id}/comments", handler.ErrorHandlingMiddleware(h.Feed.ListComments))
		mux.Handle("GET /api/readers/comments/{id}", handler.ErrorHandlingMiddleware(h.Feed.GetComment))
		mux.Handle("POST /api/readers/comments", auth(handler.ErrorHandlingMiddleware(h.Feed.CreateComment)))
		mux.Handle("PUT /api/readers/comments/{id}", auth(handler.ErrorHandlingMiddleware(h.Feed.UpdateComment)))
		mux.Handle("DELETE /api/readers/comments/{id}", auth(handler.ErrorHandlingMiddleware(h.Feed.DeleteComment)))
	}

	return handler.RecoverMiddleware(handler.LoggingMiddleware(mux))
}

func mountSessions(mux *http.ServeMux, prefix string, role Role) {
	if role.Sessions == nil {
		return
	}
	s := role.Sessions
	auth := handler.RequireActor(role.Tokens)

	mux.Handle("POST "+prefix+"/signup", handler.ErrorHandlingMiddleware(s.SignUp))
	mux.Handle("POST "+prefix+"/signin", handler.ErrorHandlingMiddleware(s.SignIn))
	mux.Handle("POST "+prefix+"/refresh", handler.ErrorHandlingMiddleware(s.Refresh))
	mux.Handle("GET "+prefix+"/status", handler.ErrorHandlingMiddleware(s.Status))
	mux.Handle("POST "+prefix+"/signout", handler.ErrorHandlingMiddleware(s.SignOut))

	mux.Handle("GET "+prefix+"/profile", auth(handler.ErrorHandlingMiddleware(s.Profile)))
	mux.Handle("PUT "+prefix+"/profile", auth(handler.ErrorHandlingMiddleware(s.UpdateProfile)))
	mux.Handle("DELETE "+prefix+"/profile", auth(handler.ErrorHandlingMiddleware(s.DeleteAccount)))
}
