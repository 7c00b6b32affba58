package memory

import (
	"context"
	"go-blog-api/model"
	"go-blog-api/repository"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type CommentRepository struct {
	mu       sync.RWMutex
	comments map[string]model.Comment
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[string]model.Comment)}
}

func (r *CommentRepository) Create(_ context.Context, comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	comment.ID = uuid.NewString()
	comment.CreatedAt = time.Now().UTC()
	r.comments[comment.ID] = *comment
	return nil
}

func (r *CommentRepository) GetByID(_ context.Context, id string) (*model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comment, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &comment, nil
}

func (r *CommentRepository) ListByPost(_ context.Context, postID string) ([]*model.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comments := make([]*model.Comment, 0)
	for _, comment := range r.comments {
		if comment.PostID == postID {
			comments = append(comments, &comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (r *CommentRepository) Update(_ context.Context, comment *model.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.comments[comment.ID]
	if !ok {
		return repository.ErrNotFound
	}
	current.Text = comment.Text
	r.comments[comment.ID] = current
	*comment = current
	return nil
}

func (r *CommentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *CommentRepository) DeleteByPost(_ context.Context, postID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, comment := range r.comments {
		if comment.PostID == postID {
			delete(r.comments, id)
		}
	}
	return nil
}
