package postgres

import (
	"context"
	"database/sql"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/repository"

	"github.com/sirupsen/logrus"
)

const postColumns = `id, title, text, author_id, published, excerpt, thumbnail, created_at`

type PostRepository struct {
	DB *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	log := logger.Log.WithFields(logrus.Fields{
		"author_id": post.AuthorID,
		"published": post.Published,
	})
	log.Info("Executing query to create a new post")

	query := `INSERT INTO posts (title, text, author_id, published, excerpt, thumbnail) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query, post.Title, post.Text, post.AuthorID, post.Published, post.Excerpt, post.Thumbnail).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create post query")
		return mapError(err)
	}
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	post := &model.Post{}
	err := r.DB.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id).Scan(
		&post.ID, &post.Title, &post.Text, &post.AuthorID, &post.Published,
		&post.Excerpt, &post.Thumbnail, &post.CreatedAt,
	)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).WithField("post_id", id).Error("Failed to execute get post query")
		}
		return nil, mapError(err)
	}
	return post, nil
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	if !validID(authorID) {
		return []*model.Post{}, nil
	}
	return r.list(ctx, `SELECT `+postColumns+` FROM posts WHERE author_id = $1 ORDER BY created_at DESC`, authorID)
}

func (r *PostRepository) ListPublished(ctx context.Context) ([]*model.Post, error) {
	return r.list(ctx, `SELECT `+postColumns+` FROM posts WHERE published = $1 ORDER BY created_at DESC`, model.PostPublished)
}

func (r *PostRepository) list(ctx context.Context, query string, args ...any) ([]*model.Post, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute list posts query")
		return nil, err
	}
	defer rows.Close()

	posts := make([]*model.Post, 0)
	for rows.Next() {
		post := &model.Post{}
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Text, &post.AuthorID, &post.Published,
			&post.Excerpt, &post.Thumbnail, &post.CreatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	log := logger.Log.WithField("post_id", post.ID)
	log.Info("Executing query to update post")

	if !validID(post.ID) {
		return repository.ErrNotFound
	}
	query := `UPDATE posts SET title = $1, text = $2, published = $3, excerpt = $4, thumbnail = $5 WHERE id = $6`
	res, err := r.DB.ExecContext(ctx, query, post.Title, post.Text, post.Published, post.Excerpt, post.Thumbnail, post.ID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update post query")
		return err
	}
	return expectOneRow(res)
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log.WithField("post_id", id)
	log.Info("Executing query to delete post")

	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete post query")
		return err
	}
	return expectOneRow(res)
}

func (r *PostRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	if !validID(authorID) {
		return 0, nil
	}
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID).Scan(&n)
	if err != nil {
		logger.Log.WithError(err).WithField("author_id", authorID).Error("Failed to execute count posts query")
		return 0, err
	}
	return n, nil
}
