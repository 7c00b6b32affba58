package repository

import (
	"context"
	"errors"
	"go-blog-api/model"
)

var (
	// ErrNotFound is returned by every backend when no row or document matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate record")
)

// IActorRepository stores the actors of a single role.
type IActorRepository interface {
	Create(ctx context.Context, actor *model.Actor) error
	GetByID(ctx context.Context, id string) (*model.Actor, error)
	GetByUsername(ctx context.Context, username string) (*model.Actor, error)
	Update(ctx context.Context, actor *model.Actor) error
	Delete(ctx context.Context, id string) error
}

// IRevocationRepository is the append-only token blacklist.
type IRevocationRepository interface {
	Add(ctx context.Context, token string) error
	Exists(ctx context.Context, token string) (bool, error)
}

type IPostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error)
	ListPublished(ctx context.Context) ([]*model.Post, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
	CountByAuthor(ctx context.Context, authorID string) (int64, error)
}

type ICommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]*model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, id string) error
	DeleteByPost(ctx context.Context, postID string) error
}
