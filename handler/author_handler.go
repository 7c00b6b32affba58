package handler

import (
	"errors"
	"go-blog-api/common"
	"go-blog-api/model"
	"go-blog-api/service"
	"net/http"
)

// AuthorPostHandler serves an author's management of their own posts.
type AuthorPostHandler struct {
	service *service.PostService
}

func NewAuthorPostHandler(svc *service.PostService) *AuthorPostHandler {
	return &AuthorPostHandler{service: svc}
}

func postError(err error) *common.AppError {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		return common.NewAppError(http.StatusNotFound, "Post not found!", nil)
	case errors.Is(err, service.ErrPermissionDenied):
		return common.NewAppError(http.StatusForbidden, "You can only manage your own posts", nil)
	default:
		return common.NewAppError(http.StatusInternalServerError, "Could not process post request", err)
	}
}

// ListPosts godoc
// @Summary      List the signed-in author's posts
// @Tags         author posts
// @Produce      json
// @Success      200  {object}  AuthorPostsResponse
// @Security     BearerAuth
// @Router       /api/authors/posts [get]
func (h *AuthorPostHandler) ListPosts(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, appErr := currentActor(r)
	if appErr != nil {
		return appErr
	}

	posts, err := h.service.ListAuthorPosts(r.Context(), author)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve posts", err)
	}
	if len(posts) == 0 {
		common.WriteJSON(w, http.StatusOK, MessageResponse{Message: "You have no posts yet!"})
		return nil
	}
	common.WriteJSON(w, http.StatusOK, AuthorPostsResponse{Posts: posts})
	return nil
}

// CreatePost godoc
// @Summary      Create a post
// @Tags         author posts
// @Accept       json
// @Produce      json
// @Param        body  body  model.PostRequest  true  "Post"
// @Success      201  {object}  MessageResponse
// @Failure      422  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/authors/posts [post]
func (h *AuthorPostHandler) CreatePost(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, appErr := currentActor(r)
	if appErr != nil {
		return appErr
	}

	var req model.PostRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	post, err := h.service.CreatePost(r.Context(), author, req)
	if err != nil {
		return postError(err)
	}
	common.WriteJSON(w, http.StatusCreated, MessageResponse{Message: "Post Created Successfully!", ID: post.ID})
	return nil
}

// GetPost godoc
// @Summary      Show one of the author's posts
// @Tags         author posts
// @Produce      json
// @Param        id  path  string  true  "Post ID"
// @Success      200  {object}  PostResponse
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/authors/posts/{id} [get]
func (h *AuthorPostHandler) GetPost(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, appErr := currentActor(r)
	if appErr != nil {
		return appErr
	}

	post, err := h.service.GetAuthorPost(r.Context(), author, r.PathValue("id"))
	if err != nil {
		return postError(err)
	}
	common.WriteJSON(w, http.StatusOK, PostResponse{Post: post})
	return nil
}

// UpdatePost godoc
// @Summary      Edit one of the author's posts
// @Tags         author posts
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Post ID"
// @Param        body  body  model.PostRequest  true  "Post"
// @Success      201  {object}  PostResponse
// @Failure      403  {object}  common.AppError
// @Failure      404  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/authors/posts/{id} [put]
func (h *AuthorPostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, appErr := currentActor(r)
	if appErr != nil {
		return appErr
	}

	var req model.PostRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	post, err := h.service.UpdatePost(r.Context(), author, r.PathValue("id"), req)
	if err != nil {
		return postError(err)
	}
	common.WriteJSON(w, http.StatusCreated, PostResponse{Post: post})
	return nil
}

// DeletePost godoc
// @Summary      Delete one of the author's posts
// @Tags         author posts
// @Produce      json
// @Param        id  path  string  true  "Post ID"
// @Success      200  {object}  MessageResponse
// @Failure      404  {object}  common.AppError
// @Security     BearerAuth
// @Router       /api/authors/posts/{id} [delete]
func (h *AuthorPostHandler) DeletePost(w http.ResponseWriter, r *http.Request) *common.AppError {
	author, appErr := currentActor(r)
	if appErr != nil {
		return appErr
	}

	if err := h.service.DeletePost(r.Context(), author, r.PathValue("id")); err != nil {
		return postError(err)
	}
	common.WriteJSON(w, http.StatusOK, MessageResponse{Message: "Post deleted successfully!"})
	return nil
}
