package handler

import (
	"go-blog-api/model"
	"time"
)

type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// TokenResponse is returned by sign-in and refresh. The refresh token itself
// travels in the refreshtoken cookie.
type TokenResponse struct {
	Token     string    `json:"token"`
	Expire    time.Time `json:"expire"`
	FirstName string    `json:"firstName"`
}

type StatusResponse struct {
	FirstName string `json:"firstName,omitempty"`
}

type LogoutResponse struct {
	Logout  bool   `json:"logout"`
	Message string `json:"message"`
}

type DeleteResponse struct {
	Delete  bool   `json:"delete"`
	Message string `json:"message"`
}

type AuthorPostsResponse struct {
	Posts []model.PostSummary `json:"posts"`
}

type PostResponse struct {
	Post *model.Post `json:"post"`
}

type PublishedPostsResponse struct {
	Posts []model.PostView `json:"posts"`
}

type PublishedPostResponse struct {
	Post *model.PostView `json:"post"`
}

type CommentsResponse struct {
	Comments []model.CommentView `json:"comments"`
}

type CommentResponse struct {
	Comment *model.Comment `json:"comment"`
}
