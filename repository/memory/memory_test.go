package memory

import (
	"context"
	"testing"

	"go-blog-api/model"
	"go-blog-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewActorRepository(model.RoleAuthor)

	ada := &model.Actor{FirstName: "Ada", Username: "ada@example.com", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, ada))
	assert.NotEmpty(t, ada.ID)
	assert.Equal(t, model.RoleAuthor, ada.Role)

	t.Run("duplicate username", func(t *testing.T) {
		err := repo.Create(ctx, &model.Actor{Username: "ada@example.com"})
		assert.ErrorIs(t, err, repository.ErrDuplicate)
	})

	t.Run("lookups", func(t *testing.T) {
		byID, err := repo.GetByID(ctx, ada.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada", byID.FirstName)

		byName, err := repo.GetByUsername(ctx, "ada@example.com")
		require.NoError(t, err)
		assert.Equal(t, ada.ID, byName.ID)

		_, err = repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("update rejects a username held by another actor", func(t *testing.T) {
		bob := &model.Actor{FirstName: "Bob", Username: "bob@example.com"}
		require.NoError(t, repo.Create(ctx, bob))

		bob.Username = "ada@example.com"
		assert.ErrorIs(t, repo.Update(ctx, bob), repository.ErrDuplicate)
	})

	t.Run("returned values are copies", func(t *testing.T) {
		got, err := repo.GetByID(ctx, ada.ID)
		require.NoError(t, err)
		got.FirstName = "Changed"

		again, err := repo.GetByID(ctx, ada.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada", again.FirstName)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, ada.ID))
		assert.ErrorIs(t, repo.Delete(ctx, ada.ID), repository.ErrNotFound)
	})
}

func TestRevocationRepository_AppendOnly(t *testing.T) {
	ctx := context.Background()
	repo := NewRevocationRepository()

	found, err := repo.Exists(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Add(ctx, "t1"))
	require.NoError(t, repo.Add(ctx, "t1"))

	found, err = repo.Exists(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, repo.Count("t1"))
}

func TestPostRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPostRepository()

	published := &model.Post{Title: "one", AuthorID: "a1", Published: model.PostPublished}
	draft := &model.Post{Title: "two", AuthorID: "a1", Published: model.PostDraft}
	other := &model.Post{Title: "three", AuthorID: "a2", Published: model.PostPublished}
	for _, p := range []*model.Post{published, draft, other} {
		require.NoError(t, repo.Create(ctx, p))
	}

	mine, err := repo.ListByAuthor(ctx, "a1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	public, err := repo.ListPublished(ctx)
	require.NoError(t, err)
	assert.Len(t, public, 2)

	n, err := repo.CountByAuthor(ctx, "a1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	draft.Title = "two edited"
	draft.AuthorID = "hijack"
	require.NoError(t, repo.Update(ctx, draft))
	got, err := repo.GetByID(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "two edited", got.Title)
	assert.Equal(t, "a1", got.AuthorID)

	require.NoError(t, repo.Delete(ctx, draft.ID))
	_, err = repo.GetByID(ctx, draft.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCommentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewCommentRepository()

	c1 := &model.Comment{Text: "first", ReaderID: "r1", PostID: "p1"}
	c2 := &model.Comment{Text: "second", ReaderID: "r2", PostID: "p1"}
	c3 := &model.Comment{Text: "elsewhere", ReaderID: "r1", PostID: "p2"}
	for _, c := range []*model.Comment{c1, c2, c3} {
		require.NoError(t, repo.Create(ctx, c))
	}

	list, err := repo.ListByPost(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	c1.Text = "edited"
	require.NoError(t, repo.Update(ctx, c1))
	assert.Equal(t, "r1", c1.ReaderID)

	require.NoError(t, repo.DeleteByPost(ctx, "p1"))
	list, err = repo.ListByPost(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = repo.GetByID(ctx, c3.ID)
	assert.NoError(t, err)
}
