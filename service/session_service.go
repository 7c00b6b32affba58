package service

import (
	"context"
	"errors"
	"fmt"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrActorNotFound       = errors.New("actor not found")
	ErrIncorrectPassword   = errors.New("incorrect password")
	ErrEmailInUse          = errors.New("email is already in use")
	ErrActorHasPosts       = errors.New("actor still owns posts")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrNoToken             = errors.New("no token presented")
)

// Session is the result of a sign-in or a refresh. Refresh is empty when
// the refresh token was not reissued.
type Session struct {
	Actor   *model.Actor
	Access  IssuedToken
	Refresh IssuedToken
}

// SessionService runs the account lifecycle for a single role.
type SessionService struct {
	role   model.Role
	tokens *TokenService
	actors repository.IActorRepository
	posts  repository.IPostRepository
	hasher IPasswordHasher
	events IEventPublisher

	onProfileUpdated func(ctx context.Context)
}

func NewSessionService(
	role model.Role,
	tokens *TokenService,
	actors repository.IActorRepository,
	posts repository.IPostRepository,
	hasher IPasswordHasher,
	events IEventPublisher,
) *SessionService {
	return &SessionService{
		role:   role,
		tokens: tokens,
		actors: actors,
		posts:  posts,
		hasher: hasher,
		events: events,
	}
}

// OnProfileUpdated registers fn to run after a successful profile update.
// Author names are denormalised into the published feed, so the author
// service uses it to drop the cached feed.
func (s *SessionService) OnProfileUpdated(fn func(ctx context.Context)) *SessionService {
	s.onProfileUpdated = fn
	return s
}

func (s *SessionService) Role() model.Role {
	return s.role
}

// SignUp creates an actor from an already validated request.
func (s *SessionService) SignUp(ctx context.Context, req model.SignUpRequest) (*model.Actor, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"role":     s.role,
		"username": req.Email,
	})

	if err := s.ensureUsernameFree(ctx, req.Email, ""); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	actor := &model.Actor{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Email,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.actors.Create(ctx, actor); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailInUse
		}
		return nil, fmt.Errorf("create actor: %w", err)
	}

	log.WithField("actor_id", actor.ID).Info("Actor signed up")
	s.publish(ctx, model.EventSignedUp, actor.ID)
	return actor, nil
}

func (s *SessionService) SignIn(ctx context.Context, req model.SignInRequest) (*Session, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"role":     s.role,
		"username": req.Email,
	})

	actor, err := s.actors.GetByUsername(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrActorNotFound
		}
		return nil, fmt.Errorf("find actor: %w", err)
	}

	if !s.hasher.Compare(actor.PasswordHash, req.Password) {
		log.Warn("Sign-in rejected: incorrect password")
		return nil, ErrIncorrectPassword
	}

	access, err := s.tokens.IssueAccessToken(actor)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.IssueRefreshToken(actor)
	if err != nil {
		return nil, err
	}

	log.WithField("actor_id", actor.ID).Info("Actor signed in")
	s.publish(ctx, model.EventSignedIn, actor.ID)
	return &Session{Actor: actor, Access: access, Refresh: refresh}, nil
}

// Refresh mints a new access token from a refresh token. The refresh token
// itself is not rotated.
func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, ErrNoToken
	}

	actor, ok := s.tokens.Verify(ctx, refreshToken, model.RefreshToken)
	if !ok {
		return nil, ErrInvalidRefreshToken
	}

	access, err := s.tokens.IssueAccessToken(actor)
	if err != nil {
		return nil, err
	}
	return &Session{Actor: actor, Access: access}, nil
}

// Status reports the actor behind an access token, if any.
func (s *SessionService) Status(ctx context.Context, accessToken string) (*model.Actor, bool) {
	return s.tokens.Verify(ctx, accessToken, model.AccessToken)
}

// SignOut revokes the presented access token as-is. The refresh token is
// left alone; clearing the cookie is the caller's job.
func (s *SessionService) SignOut(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return ErrNoToken
	}

	actor, known := s.tokens.Verify(ctx, accessToken, model.AccessToken)
	if err := s.tokens.Revoke(ctx, accessToken); err != nil {
		return err
	}

	if known {
		logger.Log.WithFields(logrus.Fields{"role": s.role, "actor_id": actor.ID}).Info("Actor signed out")
		s.publish(ctx, model.EventSignedOut, actor.ID)
	}
	return nil
}

// UpdateProfile replaces the actor's names, username and password, then
// revokes the access token the request was made with.
func (s *SessionService) UpdateProfile(ctx context.Context, actor *model.Actor, presentedToken string, req model.UpdateProfileRequest) error {
	if err := s.ensureUsernameFree(ctx, req.Email, actor.ID); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	updated := *actor
	updated.FirstName = req.FirstName
	updated.LastName = req.LastName
	updated.Username = req.Email
	updated.PasswordHash = hash

	if err := s.actors.Update(ctx, &updated); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return ErrEmailInUse
		case errors.Is(err, repository.ErrNotFound):
			return ErrActorNotFound
		}
		return fmt.Errorf("update actor: %w", err)
	}

	if err := s.tokens.Revoke(ctx, presentedToken); err != nil {
		return err
	}

	if s.onProfileUpdated != nil {
		s.onProfileUpdated(ctx)
	}

	logger.Log.WithFields(logrus.Fields{"role": s.role, "actor_id": actor.ID}).Info("Actor profile updated")
	s.publish(ctx, model.EventUpdated, actor.ID)
	return nil
}

// DeleteAccount removes the actor unless it still owns posts.
func (s *SessionService) DeleteAccount(ctx context.Context, actor *model.Actor) error {
	owned, err := s.posts.CountByAuthor(ctx, actor.ID)
	if err != nil {
		return fmt.Errorf("count posts: %w", err)
	}
	if owned > 0 {
		return ErrActorHasPosts
	}

	if err := s.actors.Delete(ctx, actor.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrActorNotFound
		}
		return fmt.Errorf("delete actor: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{"role": s.role, "actor_id": actor.ID}).Info("Actor deleted")
	s.publish(ctx, model.EventDeleted, actor.ID)
	return nil
}

func (s *SessionService) ensureUsernameFree(ctx context.Context, username, ownID string) error {
	existing, err := s.actors.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("find actor: %w", err)
	case existing.ID != ownID:
		return ErrEmailInUse
	}
	return nil
}

func (s *SessionService) publish(ctx context.Context, eventType model.EventType, actorID string) {
	publish(ctx, s.events, model.Event{
		Type:      eventType,
		Subject:   model.SubjectActor,
		SubjectID: actorID,
		ActorID:   actorID,
		Role:      s.role,
	})
}
