package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-blog-api/model"
	"go-blog-api/repository/memory"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCacheClient struct{ mock.Mock }

func (m *mockCacheClient) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(key)
	return args.Get(0).(*redis.StringCmd)
}

func (m *mockCacheClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}

func (m *mockCacheClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	args := m.Called(keys)
	return args.Get(0).(*redis.IntCmd)
}

type postFixture struct {
	svc      *PostService
	posts    *memory.PostRepository
	comments *memory.CommentRepository
	author   *model.Actor
	other    *model.Actor
}

func newPostFixture(t *testing.T, cache ICacheClient) *postFixture {
	t.Helper()
	ctx := context.Background()
	authors := memory.NewActorRepository(model.RoleAuthor)
	author := &model.Actor{FirstName: "Ada", LastName: "Lovelace", Username: "ada@example.com"}
	other := &model.Actor{FirstName: "Bob", LastName: "Builder", Username: "bob@example.com"}
	require.NoError(t, authors.Create(ctx, author))
	require.NoError(t, authors.Create(ctx, other))

	posts := memory.NewPostRepository()
	comments := memory.NewCommentRepository()
	return &postFixture{
		svc:      NewPostService(posts, comments, authors, cache, 10*time.Minute, nil),
		posts:    posts,
		comments: comments,
		author:   author,
		other:    other,
	}
}

func postRequest(status string) model.PostRequest {
	return model.PostRequest{Title: "Title", Text: "Body", Published: status, Excerpt: "Excerpt", Thumbnail: "thumb.png"}
}

func TestPostService_AuthorCRUD(t *testing.T) {
	ctx := context.Background()
	f := newPostFixture(t, nil)

	post, err := f.svc.CreatePost(ctx, f.author, postRequest(model.PostDraft))
	require.NoError(t, err)
	assert.Equal(t, f.author.ID, post.AuthorID)

	t.Run("list own posts", func(t *testing.T) {
		summaries, err := f.svc.ListAuthorPosts(ctx, f.author)
		require.NoError(t, err)
		require.Len(t, summaries, 1)
		assert.Equal(t, "Title", summaries[0].Title)

		none, err := f.svc.ListAuthorPosts(ctx, f.other)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("other authors are refused", func(t *testing.T) {
		_, err := f.svc.GetAuthorPost(ctx, f.other, post.ID)
		assert.ErrorIs(t, err, ErrPermissionDenied)

		_, err = f.svc.UpdatePost(ctx, f.other, post.ID, postRequest(model.PostPublished))
		assert.ErrorIs(t, err, ErrPermissionDenied)

		assert.ErrorIs(t, f.svc.DeletePost(ctx, f.other, post.ID), ErrPermissionDenied)
	})

	t.Run("update keeps thumbnail when none is sent", func(t *testing.T) {
		req := postRequest(model.PostPublished)
		req.Title = "New title"
		req.Thumbnail = ""

		updated, err := f.svc.UpdatePost(ctx, f.author, post.ID, req)

		require.NoError(t, err)
		assert.Equal(t, "New title", updated.Title)
		assert.Equal(t, "thumb.png", updated.Thumbnail)
		assert.True(t, updated.IsPublished())
	})

	t.Run("delete removes comments too", func(t *testing.T) {
		require.NoError(t, f.comments.Create(ctx, &model.Comment{Text: "hi", ReaderID: "r1", PostID: post.ID}))

		require.NoError(t, f.svc.DeletePost(ctx, f.author, post.ID))

		_, err := f.svc.GetAuthorPost(ctx, f.author, post.ID)
		assert.ErrorIs(t, err, ErrPostNotFound)
		left, err := f.comments.ListByPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Empty(t, left)
	})
}

func TestPostService_GetPublished(t *testing.T) {
	ctx := context.Background()
	f := newPostFixture(t, nil)

	draft, err := f.svc.CreatePost(ctx, f.author, postRequest(model.PostDraft))
	require.NoError(t, err)
	live, err := f.svc.CreatePost(ctx, f.author, postRequest(model.PostPublished))
	require.NoError(t, err)

	_, err = f.svc.GetPublished(ctx, draft.ID)
	assert.ErrorIs(t, err, ErrPostIsDraft)

	view, err := f.svc.GetPublished(ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", view.Author.FirstName)
	assert.Equal(t, "Body", view.Text)

	_, err = f.svc.GetPublished(ctx, "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostService_ListPublished_Cache(t *testing.T) {
	ctx := context.Background()

	t.Run("cache miss reads the store and fills the cache", func(t *testing.T) {
		cache := new(mockCacheClient)
		f := newPostFixture(t, cache)
		require.NoError(t, f.posts.Create(ctx, &model.Post{Title: "Live", AuthorID: f.author.ID, Published: model.PostPublished}))
		require.NoError(t, f.posts.Create(ctx, &model.Post{Title: "Draft", AuthorID: f.author.ID, Published: model.PostDraft}))

		cache.On("Get", publishedPostsKey).Return(redis.NewStringResult("", redis.Nil)).Once()
		cache.On("Set", publishedPostsKey, mock.Anything, 10*time.Minute).Return(redis.NewStatusResult("OK", nil)).Once()

		views, err := f.svc.ListPublished(ctx)

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "Live", views[0].Title)
		assert.Equal(t, "Lovelace", views[0].Author.LastName)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		cache := new(mockCacheClient)
		f := newPostFixture(t, cache)
		cached, err := json.Marshal([]model.PostView{{ID: "p1", Title: "From cache"}})
		require.NoError(t, err)

		cache.On("Get", publishedPostsKey).Return(redis.NewStringResult(string(cached), nil)).Once()

		views, err := f.svc.ListPublished(ctx)

		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, "From cache", views[0].Title)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("writes invalidate the cache", func(t *testing.T) {
		cache := new(mockCacheClient)
		f := newPostFixture(t, cache)

		cache.On("Del", []string{publishedPostsKey}).Return(redis.NewIntResult(1, nil)).Times(3)

		post, err := f.svc.CreatePost(ctx, f.author, postRequest(model.PostPublished))
		require.NoError(t, err)
		_, err = f.svc.UpdatePost(ctx, f.author, post.ID, postRequest(model.PostDraft))
		require.NoError(t, err)
		require.NoError(t, f.svc.DeletePost(ctx, f.author, post.ID))

		cache.AssertExpectations(t)
	})

	t.Run("cache errors do not fail the request", func(t *testing.T) {
		cache := new(mockCacheClient)
		f := newPostFixture(t, cache)

		cache.On("Get", publishedPostsKey).Return(redis.NewStringResult("", errors.New("redis down"))).Once()
		cache.On("Set", publishedPostsKey, mock.Anything, mock.Anything).Return(redis.NewStatusResult("", errors.New("redis down"))).Once()

		views, err := f.svc.ListPublished(ctx)

		assert.NoError(t, err)
		assert.Empty(t, views)
	})
}
