package model

import "time"

type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	ReaderID  string    `json:"user"`
	PostID    string    `json:"post"`
	CreatedAt time.Time `json:"timestamp"`
}

// CommentView is a comment with its reader's name.
type CommentView struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	PostID    string     `json:"post"`
	CreatedAt time.Time  `json:"timestamp"`
	User      AuthorName `json:"user"`
}
