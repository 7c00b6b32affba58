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

var ErrCommentNotFound = errors.New("comment not found")

type CommentService struct {
	comments repository.ICommentRepository
	posts    repository.IPostRepository
	readers  repository.IActorRepository
	events   IEventPublisher
}

func NewCommentService(
	comments repository.ICommentRepository,
	posts repository.IPostRepository,
	readers repository.IActorRepository,
	events IEventPublisher,
) *CommentService {
	return &CommentService{comments: comments, posts: posts, readers: readers, events: events}
}

// Create attaches a comment to a published post. Drafts are refused.
func (s *CommentService) Create(ctx context.Context, reader *model.Actor, req model.CommentRequest) (*model.Comment, error) {
	if err := s.ensurePublished(ctx, req.PostID); err != nil {
		return nil, err
	}

	comment := &model.Comment{Text: req.Text, ReaderID: reader.ID, PostID: req.PostID}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"reader_id":  reader.ID,
		"post_id":    req.PostID,
		"comment_id": comment.ID,
	}).Info("Comment created")
	s.publish(ctx, model.EventCreated, comment.ID, reader.ID)
	return comment, nil
}

// ListForPost returns the post's comments with reader names, oldest first.
// A draft's comments are not listed.
func (s *CommentService) ListForPost(ctx context.Context, postID string) ([]model.CommentView, error) {
	if err := s.ensurePublished(ctx, postID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	names := newNameResolver(s.readers)
	views := make([]model.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, commentView(c, names.resolve(ctx, c.ReaderID)))
	}
	return views, nil
}

func (s *CommentService) Get(ctx context.Context, id string) (*model.CommentView, error) {
	comment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	view := commentView(comment, newNameResolver(s.readers).resolve(ctx, comment.ReaderID))
	return &view, nil
}

func (s *CommentService) Update(ctx context.Context, reader *model.Actor, id string, req model.CommentUpdateRequest) (*model.Comment, error) {
	comment, err := s.owned(ctx, reader, id)
	if err != nil {
		return nil, err
	}

	comment.Text = req.Text
	if err := s.comments.Update(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}

	s.publish(ctx, model.EventUpdated, comment.ID, reader.ID)
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, reader *model.Actor, id string) error {
	if _, err := s.owned(ctx, reader, id); err != nil {
		return err
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("delete comment: %w", err)
	}

	s.publish(ctx, model.EventDeleted, id, reader.ID)
	return nil
}

func (s *CommentService) ensurePublished(ctx context.Context, postID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if !post.IsPublished() {
		return ErrPostIsDraft
	}
	return nil
}

func (s *CommentService) find(ctx context.Context, id string) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) owned(ctx context.Context, reader *model.Actor, id string) (*model.Comment, error) {
	comment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.ReaderID != reader.ID {
		logger.Log.WithFields(logrus.Fields{
			"reader_id":  reader.ID,
			"comment_id": id,
		}).Warn("Permission denied for changing another reader's comment")
		return nil, ErrPermissionDenied
	}
	return comment, nil
}

func (s *CommentService) publish(ctx context.Context, eventType model.EventType, commentID, readerID string) {
	publish(ctx, s.events, model.Event{
		Type:      eventType,
		Subject:   model.SubjectComment,
		SubjectID: commentID,
		ActorID:   readerID,
		Role:      model.RoleReader,
	})
}

func commentView(c *model.Comment, user model.AuthorName) model.CommentView {
	return model.CommentView{
		ID:        c.ID,
		Text:      c.Text,
		PostID:    c.PostID,
		CreatedAt: c.CreatedAt,
		User:      user,
	}
}
