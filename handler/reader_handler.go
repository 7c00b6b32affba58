package handler

import (
	"errors"
	"go-blog-api/common"
	"go-blog-api/model"
	"go-blog-api/service"
	"net/http"
)

// ReaderHandler serves the public feed and the readers' comments.
type ReaderHandler struct {
	posts    *service.PostService
	comments *service.CommentService
}

func NewReaderHandler(posts *service.PostService, comments *service.CommentService) *ReaderHandler {
	return &ReaderHandler{posts: posts, comments: comments}
}

func commentError(err error) *common.AppError {
	switch {
	case errors.Is(err, service.ErrCommentNotFound):
		return common.NewAppError(http.StatusNotFound, "Comment not found!", nil)
	case errors.Is(err, service.ErrPostNotFound):
		return common.NewAppError(http.StatusNotFound, "Post not found!", nil)
	case errors.Is(err, service.ErrPostIsDraft):
		return common.NewAppError(http.StatusForbidden, "Post you requested is in Draft mode!", nil)
	case errors.Is(err, service.ErrPermissionDenied):
		return common.NewAppError(http.StatusForbidden, "You can only manage your own comments", nil)
	default:
		return common.NewAppError(http.StatusInternalServerError, "Could not process comment request", err)
	}
}

// ListPosts godoc
// @Summary      List published posts
// @Tags         feed
// @Produce      json
// @Success      200  {object}  PublishedPostsResponse
// @Router       /api/readers/posts [get]
func (h *ReaderHandler) ListPosts(w http.ResponseWriter, r *http.Request) *common.AppError {
	posts, err := h.posts.ListPublished(r.Context())
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve posts", err)
	}
	if len(posts) == 0 {
		common.WriteJSON(w, http.StatusOK, MessageResponse{Message: "No Published posts!"})
		return nil
	}
	common.WriteJSON(w, http.StatusOK, PublishedPostsResponse{Posts: posts})
	return nil
}

// ShowPost godoc
// @Summary      Show a published post
// @Tags         feed
// @Produce      json
// @Param        id  path  string  true  "Post ID"
// @Success      200  {object}  PublishedPostResponse
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /api/readers/posts/{id} [get]
func (h *ReaderHandler) ShowPost(w http.ResponseWriter, r *http.Request) *common.AppError {
	post, err := h.posts.GetPublished(r.Context(), r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostIsDraft):
			return common.NewAppError(http.StatusForbidden, "Post you requested is in Draft mode!", nil)
		case errors.Is(err, service.ErrPostNotFound):
			return common.NewAppError(http.StatusNotFound, "Post not found!", nil)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not retrieve post", err)
		}
	}
	common.WriteJSON(w, http.StatusOK, PublishedPostResponse{Post: post})
	return nil
}

// ListComments godoc
// @Summary      List the comments on a post
// @Tags         comments
// @Produce      json
// @Param        id  path  string  true  "Post ID"
// @Success      200  {object}  CommentsResponse
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Router       /api/readers/posts/{id}/comments [get]
func (h *ReaderHandler) ListComments(w http.ResponseWriter, r *http.Request) *common.AppError {
	comments, err := h.comments.ListForPost(r.Context(), r.PathValue("id"))
	if err != nil {
		return commentError(err)
	}
	common.WriteJSON(w, http.StatusOK, CommentsResponse{Comments: comments})
	return nil
}

// CreateComment godoc
// @Summary      Comment on a post
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        body  body  model.CommentRequest  true  "Comment"
// @Success      201  {object}  MessageResponse
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Failure      422  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/readers/comments [post]
func (h *ReaderHandler) CreateComment(w http.ResponseWriter, r *http.Request) *common.AppError {
	reader, appErr := currentActor(r)
	if appErr != nil {
		return appErr
	}

	var req model.CommentRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	comment, err := h.comments.Create(r.Context(), reader, req)
	if err != nil {
		return commentError(err)
	}
	common.WriteJSON(w, http.StatusCreated, MessageResponse{Message: "Comment Created Successfully!", ID: comment.ID})
	return nil
}

// GetComment godoc
// @Summary      Show a comment
// @Tags         comments
// @Produce      json
// @Param        id  path  string  true  "Comment ID"
// @Success      200  {object}  CommentsResponse
// @Failure      404  {object}  common.AppError
// @Router       /api/readers/comments/{id} [get]
func (h *ReaderHandler) GetComment(w http.ResponseWriter, r *http.Request) *common.AppError {
	comment, err := h.comments.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			return common.NewAppError(http.StatusNotFound, "No Published comments!", nil)
		}
		return commentError(err)
	}
	common.WriteJSON(w, http.StatusOK, CommentsResponse{Comments: []model.CommentView{*comment}})
	return nil
}

// UpdateComment godoc
// @Summary      Edit one of the reader's comments
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Comment ID"
// @Param        body  body  model.CommentUpdateRequest  true  "Comment"
// @Success      201  {object}  CommentResponse
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/readers/comments/{id} [put]
func (h *ReaderHandler) UpdateComment(w http.ResponseWriter, r *http.Request) *common.AppError {
	reader, appErr := currentActor(r)
	if appErr != nil {
		return appErr
	}

	var req model.CommentUpdateRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	comment, err := h.comments.Update(r.Context(), reader, r.PathValue("id"), req)
	if err != nil {
		return commentError(err)
	}
	common.WriteJSON(w, http.StatusCreated, CommentResponse{Comment: comment})
	return nil
}

// DeleteComment godoc
// @Summary      Delete one of the reader's comments
// @Tags         comments
// @Produce      json
// @Param        id  path  string  true  "Comment ID"
// @Success      200  {object}  MessageResponse
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/readers/comments/{id} [delete]
func (h *ReaderHandler) DeleteComment(w http.ResponseWriter, r *http.Request) *common.AppError {
	reader, appErr := currentActor(r)
	if appErr != nil {
		return appErr
	}

	if err := h.comments.Delete(r.Context(), reader, r.PathValue("id")); err != nil {
		return commentError(err)
	}
	common.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Comment deleted successfully!"})
	return nil
}
