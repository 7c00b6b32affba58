package postgres

import (
	"context"
	"database/sql"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/repository"

	"github.com/sirupsen/logrus"
)

type CommentRepository struct {
	DB *sql.DB
}

func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	log := logger.Log.WithFields(logrus.Fields{
		"reader_id": comment.ReaderID,
		"post_id":   comment.PostID,
	})
	log.Info("Executing query to create a new comment")

	query := `INSERT INTO comments (text, reader_id, post_id) VALUES ($1, $2, $3) RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query, comment.Text, comment.ReaderID, comment.PostID).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create comment query")
		return mapError(err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	comment := &model.Comment{}
	err := r.DB.QueryRowContext(ctx, `SELECT id, text, reader_id, post_id, created_at FROM comments WHERE id = $1`, id).
		Scan(&comment.ID, &comment.Text, &comment.ReaderID, &comment.PostID, &comment.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).WithField("comment_id", id).Error("Failed to execute get comment query")
		}
		return nil, mapError(err)
	}
	return comment, nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	if !validID(postID) {
		return comments, nil
	}

	rows, err := r.DB.QueryContext(ctx, `SELECT id, text, reader_id, post_id, created_at FROM comments WHERE post_id = $1 ORDER BY created_at`, postID)
	if err != nil {
		logger.Log.WithError(err).WithField("post_id", postID).Error("Failed to execute list comments query")
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		comment := &model.Comment{}
		if err := rows.Scan(&comment.ID, &comment.Text, &comment.ReaderID, &comment.PostID, &comment.CreatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// Update changes the comment text and reloads the stored row into comment.
func (r *CommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	log := logger.Log.WithField("comment_id", comment.ID)
	log.Info("Executing query to update comment")

	if !validID(comment.ID) {
		return repository.ErrNotFound
	}
	err := r.DB.QueryRowContext(ctx,
		`UPDATE comments SET text = $1 WHERE id = $2 RETURNING reader_id, post_id, created_at`,
		comment.Text, comment.ID,
	).Scan(&comment.ReaderID, &comment.PostID, &comment.CreatedAt)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute update comment query")
		}
		return mapError(err)
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log.WithField("comment_id", id)
	log.Info("Executing query to delete comment")

	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete comment query")
		return err
	}
	return expectOneRow(res)
}

func (r *CommentRepository) DeleteByPost(ctx context.Context, postID string) error {
	if !validID(postID) {
		return nil
	}
	_, err := r.DB.ExecContext(ctx, `DELETE FROM comments WHERE post_id = $1`, postID)
	if err != nil {
		logger.Log.WithError(err).WithField("post_id", postID).Error("Failed to execute delete comments query")
	}
	return err
}
