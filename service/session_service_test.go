package service

import (
	"context"
	"errors"
	"testing"

	"go-blog-api/model"
	"go-blog-api/repository/memory"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, event model.Event) {
	m.Called(event.Type, event.Subject)
}

type sessionFixture struct {
	svc     *SessionService
	tokens  *TokenService
	actors  *memory.ActorRepository
	posts   *memory.PostRepository
	revoked *memory.RevocationRepository
	events  *mockPublisher
}

func newSessionFixture(role model.Role) *sessionFixture {
	actors := memory.NewActorRepository(role)
	revoked := memory.NewRevocationRepository()
	posts := memory.NewPostRepository()
	tokens := NewTokenService(testTokenConfig, actors, revoked)
	events := new(mockPublisher)
	events.On("Publish", mock.Anything, mock.Anything).Maybe()

	return &sessionFixture{
		svc:     NewSessionService(role, tokens, actors, posts, NewBcryptHasher(bcrypt.MinCost), events),
		tokens:  tokens,
		actors:  actors,
		posts:   posts,
		revoked: revoked,
		events:  events,
	}
}

func signUpRequest(email string) model.SignUpRequest {
	return model.SignUpRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "Secret123",
		RPassword: "Secret123",
	}
}

func TestSessionService_SignUp(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(model.RoleAuthor)

	actor, err := f.svc.SignUp(ctx, signUpRequest("ada@example.com"))

	require.NoError(t, err)
	assert.NotEmpty(t, actor.ID)
	assert.True(t, actor.IsActive)
	assert.NotEqual(t, "Secret123", actor.PasswordHash)
	f.events.AssertCalled(t, "Publish", model.EventSignedUp, model.SubjectActor)

	t.Run("email already in use", func(t *testing.T) {
		_, err := f.svc.SignUp(ctx, signUpRequest("ada@example.com"))
		assert.ErrorIs(t, err, ErrEmailInUse)
	})

	t.Run("same email may exist in the other role", func(t *testing.T) {
		readers := newSessionFixture(model.RoleReader)
		_, err := readers.svc.SignUp(ctx, signUpRequest("ada@example.com"))
		assert.NoError(t, err)
	})
}

func TestSessionService_SignIn(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(model.RoleAuthor)
	_, err := f.svc.SignUp(ctx, signUpRequest("ada@example.com"))
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		session, err := f.svc.SignIn(ctx, model.SignInRequest{Email: "ada@example.com", Password: "Secret123"})

		require.NoError(t, err)
		assert.Equal(t, "Ada", session.Actor.FirstName)
		assert.NotEmpty(t, session.Access.Token)
		assert.NotEmpty(t, session.Refresh.Token)

		_, ok := f.tokens.Verify(ctx, session.Access.Token, model.AccessToken)
		assert.True(t, ok)
	})

	t.Run("unknown actor", func(t *testing.T) {
		_, err := f.svc.SignIn(ctx, model.SignInRequest{Email: "nobody@example.com", Password: "Secret123"})
		assert.ErrorIs(t, err, ErrActorNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.svc.SignIn(ctx, model.SignInRequest{Email: "ada@example.com", Password: "Wrong1234"})
		assert.ErrorIs(t, err, ErrIncorrectPassword)
	})
}

func TestSessionService_Refresh(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(model.RoleAuthor)
	_, err := f.svc.SignUp(ctx, signUpRequest("ada@example.com"))
	require.NoError(t, err)
	session, err := f.svc.SignIn(ctx, model.SignInRequest{Email: "ada@example.com", Password: "Secret123"})
	require.NoError(t, err)

	t.Run("issues a new access token without rotating", func(t *testing.T) {
		refreshed, err := f.svc.Refresh(ctx, session.Refresh.Token)

		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.Access.Token)
		assert.Empty(t, refreshed.Refresh.Token)

		_, ok := f.tokens.Verify(ctx, session.Refresh.Token, model.RefreshToken)
		assert.True(t, ok, "refresh token stays usable")
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := f.svc.Refresh(ctx, "")
		assert.ErrorIs(t, err, ErrNoToken)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := f.svc.Refresh(ctx, session.Access.Token)
		assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	})
}

func TestSessionService_SignOut(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(model.RoleReader)
	_, err := f.svc.SignUp(ctx, signUpRequest("rea@example.com"))
	require.NoError(t, err)
	session, err := f.svc.SignIn(ctx, model.SignInRequest{Email: "rea@example.com", Password: "Secret123"})
	require.NoError(t, err)

	require.NoError(t, f.svc.SignOut(ctx, session.Access.Token))

	_, ok := f.svc.Status(ctx, session.Access.Token)
	assert.False(t, ok)
	f.events.AssertCalled(t, "Publish", model.EventSignedOut, model.SubjectActor)

	t.Run("refresh token survives sign-out", func(t *testing.T) {
		_, err := f.svc.Refresh(ctx, session.Refresh.Token)
		assert.NoError(t, err)
	})

	t.Run("arbitrary strings are revoked as presented", func(t *testing.T) {
		require.NoError(t, f.svc.SignOut(ctx, "Bearer whatever"))
		assert.Equal(t, 1, f.revoked.Count("Bearer whatever"))
	})

	t.Run("no token", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.SignOut(ctx, ""), ErrNoToken)
	})
}

func TestSessionService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(model.RoleAuthor)
	actor, err := f.svc.SignUp(ctx, signUpRequest("ada@example.com"))
	require.NoError(t, err)
	_, err = f.svc.SignUp(ctx, signUpRequest("bob@example.com"))
	require.NoError(t, err)
	session, err := f.svc.SignIn(ctx, model.SignInRequest{Email: "ada@example.com", Password: "Secret123"})
	require.NoError(t, err)

	t.Run("email held by another actor", func(t *testing.T) {
		err := f.svc.UpdateProfile(ctx, actor, session.Access.Token, signUpRequest("bob@example.com"))
		assert.ErrorIs(t, err, ErrEmailInUse)
	})

	t.Run("keeping the own email is allowed and revokes the token", func(t *testing.T) {
		req := signUpRequest("ada@example.com")
		req.FirstName = "Augusta"
		req.Password, req.RPassword = "NewSecret9", "NewSecret9"

		err := f.svc.UpdateProfile(ctx, actor, session.Access.Token, req)

		require.NoError(t, err)
		_, ok := f.svc.Status(ctx, session.Access.Token)
		assert.False(t, ok)

		stored, err := f.actors.GetByID(ctx, actor.ID)
		require.NoError(t, err)
		assert.Equal(t, "Augusta", stored.FirstName)

		_, err = f.svc.SignIn(ctx, model.SignInRequest{Email: "ada@example.com", Password: "NewSecret9"})
		assert.NoError(t, err)
	})
}

func TestSessionService_UpdateProfile_DropsPublishedFeed(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(model.RoleAuthor)
	actor, err := f.svc.SignUp(ctx, signUpRequest("ada@example.com"))
	require.NoError(t, err)
	session, err := f.svc.SignIn(ctx, model.SignInRequest{Email: "ada@example.com", Password: "Secret123"})
	require.NoError(t, err)

	cache := new(mockCacheClient)
	posts := NewPostService(f.posts, memory.NewCommentRepository(), f.actors, cache, 0, nil)
	f.svc.OnProfileUpdated(posts.InvalidatePublished)

	t.Run("rejected update keeps the cache", func(t *testing.T) {
		_, err := f.svc.SignUp(ctx, signUpRequest("bob@example.com"))
		require.NoError(t, err)

		err = f.svc.UpdateProfile(ctx, actor, session.Access.Token, signUpRequest("bob@example.com"))

		assert.ErrorIs(t, err, ErrEmailInUse)
		cache.AssertNotCalled(t, "Del", mock.Anything)
	})

	t.Run("successful update drops the cache", func(t *testing.T) {
		cache.On("Del", []string{publishedPostsKey}).Return(redis.NewIntResult(1, nil)).Once()
		req := signUpRequest("ada@example.com")
		req.FirstName = "Augusta"

		require.NoError(t, f.svc.UpdateProfile(ctx, actor, session.Access.Token, req))

		cache.AssertExpectations(t)
	})
}

func TestSessionService_DeleteAccount(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(model.RoleAuthor)
	actor, err := f.svc.SignUp(ctx, signUpRequest("ada@example.com"))
	require.NoError(t, err)

	post := &model.Post{Title: "t", AuthorID: actor.ID, Published: model.PostDraft}
	require.NoError(t, f.posts.Create(ctx, post))

	t.Run("refused while posts exist", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.DeleteAccount(ctx, actor), ErrActorHasPosts)
	})

	t.Run("deleted once posts are gone", func(t *testing.T) {
		require.NoError(t, f.posts.Delete(ctx, post.ID))

		require.NoError(t, f.svc.DeleteAccount(ctx, actor))

		_, err := f.actors.GetByID(ctx, actor.ID)
		assert.Error(t, err)
		assert.True(t, errors.Is(f.svc.DeleteAccount(ctx, actor), ErrActorNotFound))
	})
}
