package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/repository"
	"time"

	"github.com/sirupsen/logrus"
)

const publishedPostsKey = "posts:published"

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrPostIsDraft      = errors.New("post is in draft mode")
	ErrPermissionDenied = errors.New("you can only change your own content")
)

type PostService struct {
	posts    repository.IPostRepository
	comments repository.ICommentRepository
	authors  repository.IActorRepository
	cache    ICacheClient
	cacheTTL time.Duration
	events   IEventPublisher
}

// NewPostService wires the post service. cache may be nil, in which case the
// published list is always read from the repository.
func NewPostService(
	posts repository.IPostRepository,
	comments repository.ICommentRepository,
	authors repository.IActorRepository,
	cache ICacheClient,
	cacheTTL time.Duration,
	events IEventPublisher,
) *PostService {
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &PostService{
		posts:    posts,
		comments: comments,
		authors:  authors,
		cache:    cache,
		cacheTTL: cacheTTL,
		events:   events,
	}
}

func (s *PostService) CreatePost(ctx context.Context, author *model.Actor, req model.PostRequest) (*model.Post, error) {
	post := &model.Post{
		Title:     req.Title,
		Text:      req.Text,
		AuthorID:  author.ID,
		Published: req.Published,
		Excerpt:   req.Excerpt,
		Thumbnail: req.Thumbnail,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"author_id": author.ID,
		"post_id":   post.ID,
	}).Info("Post created")

	s.invalidate(ctx)
	s.publish(ctx, model.EventCreated, post.ID, author.ID)
	return post, nil
}

// ListAuthorPosts returns summaries of every post the author owns.
func (s *PostService) ListAuthorPosts(ctx context.Context, author *model.Actor) ([]model.PostSummary, error) {
	posts, err := s.posts.ListByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	summaries := make([]model.PostSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, p.Summary())
	}
	return summaries, nil
}

// GetAuthorPost returns one of the author's own posts.
func (s *PostService) GetAuthorPost(ctx context.Context, author *model.Actor, id string) (*model.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.AuthorID != author.ID {
		logger.Log.WithFields(logrus.Fields{
			"author_id": author.ID,
			"post_id":   id,
		}).Warn("Permission denied for accessing another author's post")
		return nil, ErrPermissionDenied
	}
	return post, nil
}

// UpdatePost overwrites the post fields. The thumbnail is kept unless the
// request carries a new one.
func (s *PostService) UpdatePost(ctx context.Context, author *model.Actor, id string, req model.PostRequest) (*model.Post, error) {
	post, err := s.GetAuthorPost(ctx, author, id)
	if err != nil {
		return nil, err
	}

	post.Title = req.Title
	post.Text = req.Text
	post.Published = req.Published
	post.Excerpt = req.Excerpt
	if req.Thumbnail != "" {
		post.Thumbnail = req.Thumbnail
	}

	if err := s.posts.Update(ctx, post); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	s.invalidate(ctx)
	s.publish(ctx, model.EventUpdated, post.ID, author.ID)
	return post, nil
}

// DeletePost removes the post and its comments.
func (s *PostService) DeletePost(ctx context.Context, author *model.Actor, id string) error {
	if _, err := s.GetAuthorPost(ctx, author, id); err != nil {
		return err
	}

	if err := s.comments.DeleteByPost(ctx, id); err != nil {
		return fmt.Errorf("delete post comments: %w", err)
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return fmt.Errorf("delete post: %w", err)
	}

	s.invalidate(ctx)
	s.publish(ctx, model.EventDeleted, id, author.ID)
	return nil
}

// ListPublished returns every published post with its author's name, using a
// cache-aside read when a cache is configured.
func (s *PostService) ListPublished(ctx context.Context) ([]model.PostView, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, publishedPostsKey).Result()
		if err == nil {
			var views []model.PostView
			if err := json.Unmarshal([]byte(cached), &views); err == nil {
				return views, nil
			}
		}
	}

	posts, err := s.posts.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	names := newNameResolver(s.authors)
	views := make([]model.PostView, 0, len(posts))
	for _, p := range posts {
		view := postView(p, names.resolve(ctx, p.AuthorID))
		view.Text = ""
		views = append(views, view)
	}

	if s.cache != nil {
		if data, err := json.Marshal(views); err == nil {
			if err := s.cache.Set(ctx, publishedPostsKey, data, s.cacheTTL).Err(); err != nil {
				logger.Log.WithError(err).Warn("Failed to cache published posts")
			}
		}
	}
	return views, nil
}

// GetPublished returns a single post for readers. Drafts are refused.
func (s *PostService) GetPublished(ctx context.Context, id string) (*model.PostView, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if !post.IsPublished() {
		return nil, ErrPostIsDraft
	}

	view := postView(post, newNameResolver(s.authors).resolve(ctx, post.AuthorID))
	return &view, nil
}

// InvalidatePublished drops the cached published feed.
func (s *PostService) InvalidatePublished(ctx context.Context) {
	s.invalidate(ctx)
}

func (s *PostService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, publishedPostsKey).Err(); err != nil {
		logger.Log.WithError(err).Warn("Failed to invalidate published posts cache")
	}
}

func (s *PostService) publish(ctx context.Context, eventType model.EventType, postID, authorID string) {
	publish(ctx, s.events, model.Event{
		Type:      eventType,
		Subject:   model.SubjectPost,
		SubjectID: postID,
		ActorID:   authorID,
		Role:      model.RoleAuthor,
	})
}

func postView(p *model.Post, author model.AuthorName) model.PostView {
	return model.PostView{
		ID:        p.ID,
		Title:     p.Title,
		Text:      p.Text,
		Excerpt:   p.Excerpt,
		Thumbnail: p.Thumbnail,
		Published: p.Published,
		CreatedAt: p.CreatedAt,
		Author:    author,
	}
}

// nameResolver looks up actor names once per id for the life of a request.
type nameResolver struct {
	actors repository.IActorRepository
	seen   map[string]model.AuthorName
}

func newNameResolver(actors repository.IActorRepository) *nameResolver {
	return &nameResolver{actors: actors, seen: make(map[string]model.AuthorName)}
}

// resolve returns the actor's name, or just the id if the actor is gone.
func (r *nameResolver) resolve(ctx context.Context, id string) model.AuthorName {
	if name, ok := r.seen[id]; ok {
		return name
	}
	name := model.AuthorName{ID: id}
	if actor, err := r.actors.GetByID(ctx, id); err == nil {
		name.FirstName = actor.FirstName
		name.LastName = actor.LastName
	} else if !errors.Is(err, repository.ErrNotFound) {
		logger.Log.WithError(err).WithField("actor_id", id).Warn("Failed to resolve actor name")
	}
	r.seen[id] = name
	return name
}
