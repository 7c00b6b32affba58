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

type PostRepository struct {
	mu    sync.RWMutex
	posts map[string]model.Post
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[string]model.Post)}
}

func (r *PostRepository) Create(_ context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = uuid.NewString()
	post.CreatedAt = time.Now().UTC()
	r.posts[post.ID] = *post
	return nil
}

func (r *PostRepository) GetByID(_ context.Context, id string) (*model.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &post, nil
}

func (r *PostRepository) ListByAuthor(_ context.Context, authorID string) ([]*model.Post, error) {
	return r.filter(func(p *model.Post) bool { return p.AuthorID == authorID }), nil
}

func (r *PostRepository) ListPublished(_ context.Context) ([]*model.Post, error) {
	return r.filter((*model.Post).IsPublished), nil
}

func (r *PostRepository) Update(_ context.Context, post *model.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.posts[post.ID]
	if !ok {
		return repository.ErrNotFound
	}
	post.AuthorID = current.AuthorID
	post.CreatedAt = current.CreatedAt
	r.posts[post.ID] = *post
	return nil
}

func (r *PostRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *PostRepository) CountByAuthor(_ context.Context, authorID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int64
	for _, post := range r.posts {
		if post.AuthorID == authorID {
			n++
		}
	}
	return n, nil
}

// filter returns matching posts, newest first.
func (r *PostRepository) filter(keep func(*model.Post) bool) []*model.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*model.Post, 0)
	for _, post := range r.posts {
		if keep(&post) {
			posts = append(posts, &post)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}
