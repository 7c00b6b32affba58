package model

import "time"

const (
	PostPublished = "published"
	PostDraft     = "draft"
)

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	AuthorID  string    `json:"author"`
	Published string    `json:"published"`
	Excerpt   string    `json:"excerpt"`
	Thumbnail string    `json:"thumbnail"`
	CreatedAt time.Time `json:"timestamp"`
}

func (p *Post) IsPublished() bool {
	return p.Published == PostPublished
}

// PostSummary is a list entry without the post body.
type PostSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"timestamp"`
	Excerpt   string    `json:"excerpt"`
	Thumbnail string    `json:"thumbnail"`
	AuthorID  string    `json:"author"`
	Published string    `json:"published"`
}

func (p *Post) Summary() PostSummary {
	return PostSummary{
		ID:        p.ID,
		Title:     p.Title,
		CreatedAt: p.CreatedAt,
		Excerpt:   p.Excerpt,
		Thumbnail: p.Thumbnail,
		AuthorID:  p.AuthorID,
		Published: p.Published,
	}
}

// AuthorName is the embedded author reference on public post views.
type AuthorName struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// PostView is a post as shown to readers.
type PostView struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Text      string     `json:"text,omitempty"`
	Excerpt   string     `json:"excerpt"`
	Thumbnail string     `json:"thumbnail"`
	Published string     `json:"published"`
	CreatedAt time.Time  `json:"timestamp"`
	Author    AuthorName `json:"author"`
}
