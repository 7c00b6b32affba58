// Package mongo implements the repositories on MongoDB. Collection and field
// names match the mongoose models of the existing blog database: readers live
// in "visitors", a comment's owner is its "visitor" field and "isactive" is
// stored as the string "true" or "false".
package mongo

import (
	"errors"
	"go-blog-api/model"
	"go-blog-api/repository"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	authorsCollection  = "authors"
	readersCollection  = "visitors"
	postsCollection    = "posts"
	commentsCollection = "comments"
	revokedCollection  = "blackjwts"
)

type actorDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	FirstName string        `bson:"firstName"`
	LastName  string        `bson:"lastName"`
	Username  string        `bson:"username"`
	Password  string        `bson:"password"`
	IsActive  string        `bson:"isactive"`
	CreatedAt time.Time     `bson:"createdAt"`
}

func newActorDocument(a *model.Actor) actorDocument {
	return actorDocument{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Username:  a.Username,
		Password:  a.PasswordHash,
		IsActive:  strconv.FormatBool(a.IsActive),
		CreatedAt: a.CreatedAt,
	}
}

func (d actorDocument) toModel(role model.Role) *model.Actor {
	return &model.Actor{
		ID:           d.ID.Hex(),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Username:     d.Username,
		PasswordHash: d.Password,
		Role:         role,
		IsActive:     d.IsActive == "true",
		CreatedAt:    d.CreatedAt,
	}
}

type postDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Title     string        `bson:"title"`
	Text      string        `bson:"text"`
	Author    bson.ObjectID `bson:"author"`
	Published string        `bson:"published"`
	Excerpt   string        `bson:"excerpt"`
	Thumbnail string        `bson:"thumbnail"`
	Timestamp time.Time     `bson:"timestamp"`
}

func (d postDocument) toModel() *model.Post {
	return &model.Post{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Text:      d.Text,
		AuthorID:  d.Author.Hex(),
		Published: d.Published,
		Excerpt:   d.Excerpt,
		Thumbnail: d.Thumbnail,
		CreatedAt: d.Timestamp,
	}
}

type commentDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Text      string        `bson:"text"`
	Visitor   bson.ObjectID `bson:"visitor"`
	Post      bson.ObjectID `bson:"post"`
	Timestamp time.Time     `bson:"timestamp"`
}

func (d commentDocument) toModel() *model.Comment {
	return &model.Comment{
		ID:        d.ID.Hex(),
		Text:      d.Text,
		ReaderID:  d.Visitor.Hex(),
		PostID:    d.Post.Hex(),
		CreatedAt: d.Timestamp,
	}
}

type revokedDocument struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Token     string        `bson:"token"`
	CreatedAt time.Time     `bson:"createdAt"`
}

// objectID parses a hex id. A malformed id cannot match any document.
func objectID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.NilObjectID, repository.ErrNotFound
	}
	return oid, nil
}

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repository.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return repository.ErrDuplicate
	default:
		return err
	}
}
