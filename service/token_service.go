package service

import (
	"context"
	"errors"
	"fmt"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/repository"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 10 * 24 * time.Hour
)

// TokenConfig holds the signing secrets and lifetimes. The same secrets are
// shared by every role; the role boundary is the actor repository.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// IssuedToken is a signed token and the moment it stops being valid.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenService issues, verifies and revokes the tokens of one role.
type TokenService struct {
	cfg     TokenConfig
	actors  repository.IActorRepository
	revoked repository.IRevocationRepository
	now     func() time.Time
}

func NewTokenService(cfg TokenConfig, actors repository.IActorRepository, revoked repository.IRevocationRepository) *TokenService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &TokenService{
		cfg:     cfg,
		actors:  actors,
		revoked: revoked,
		now:     time.Now,
	}
}

func (s *TokenService) IssueAccessToken(actor *model.Actor) (IssuedToken, error) {
	return s.issue(actor, model.AccessToken)
}

func (s *TokenService) IssueRefreshToken(actor *model.Actor) (IssuedToken, error) {
	return s.issue(actor, model.RefreshToken)
}

func (s *TokenService) issue(actor *model.Actor, kind model.TokenKind) (IssuedToken, error) {
	secret, ttl := s.keyFor(kind)
	now := s.now()
	expiresAt := now.Add(ttl)

	claims := &model.AppClaims{
		ID:       actor.ID,
		Username: actor.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		logger.Log.WithError(err).WithField("actor_id", actor.ID).Error("Failed to sign JWT")
		return IssuedToken{}, fmt.Errorf("failed to sign %s token: %w", kind, err)
	}
	return IssuedToken{Token: signed, ExpiresAt: expiresAt}, nil
}

// Verify resolves token to its actor. The blacklist is consulted before the
// signature, and any failure, including a store error, yields (nil, false).
func (s *TokenService) Verify(ctx context.Context, token string, kind model.TokenKind) (*model.Actor, bool) {
	if token == "" {
		return nil, false
	}
	log := logger.Log.WithField("kind", kind)

	revoked, err := s.revoked.Exists(ctx, token)
	if err != nil {
		log.WithError(err).Warn("Revocation lookup failed, rejecting token")
		return nil, false
	}
	if revoked {
		log.Debug("Rejected revoked token")
		return nil, false
	}

	claims, err := s.parse(token, kind)
	if err != nil {
		log.WithError(err).Debug("Rejected token")
		return nil, false
	}

	actor, err := s.actors.GetByID(ctx, claims.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.WithError(err).Warn("Actor lookup failed, rejecting token")
		}
		return nil, false
	}
	return actor, true
}

func (s *TokenService) parse(token string, kind model.TokenKind) (*model.AppClaims, error) {
	secret, _ := s.keyFor(kind)
	claims := &model.AppClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.ID == "" {
		return nil, errors.New("token carries no actor id")
	}
	return claims, nil
}

// Revoke blacklists the literal token string. Revoking twice is allowed.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	if err := s.revoked.Add(ctx, token); err != nil {
		logger.Log.WithError(err).Error("Failed to revoke token")
		return fmt.Errorf("revoke token: %w", err)
	}
	logger.Log.Debug("Token revoked")
	return nil
}

func (s *TokenService) keyFor(kind model.TokenKind) ([]byte, time.Duration) {
	if kind == model.RefreshToken {
		return []byte(s.cfg.RefreshSecret), s.cfg.RefreshTTL
	}
	return []byte(s.cfg.AccessSecret), s.cfg.AccessTTL
}
