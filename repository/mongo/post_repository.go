package mongo

import (
	"context"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/repository"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type PostRepository struct {
	coll *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(postsCollection)}
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	author, err := objectID(post.AuthorID)
	if err != nil {
		return err
	}

	post.CreatedAt = time.Now().UTC()
	doc := postDocument{
		Title:     post.Title,
		Text:      post.Text,
		Author:    author,
		Published: post.Published,
		Excerpt:   post.Excerpt,
		Thumbnail: post.Thumbnail,
		Timestamp: post.CreatedAt,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		logger.Log.WithError(err).WithField("author_id", post.AuthorID).Error("Failed to insert post document")
		return err
	}
	post.ID = res.InsertedID.(bson.ObjectID).Hex()
	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc postDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapError(err)
	}
	return doc.toModel(), nil
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID string) ([]*model.Post, error) {
	author, err := objectID(authorID)
	if err != nil {
		return []*model.Post{}, nil
	}
	return r.find(ctx, bson.M{"author": author})
}

func (r *PostRepository) ListPublished(ctx context.Context) ([]*model.Post, error) {
	return r.find(ctx, bson.M{"published": model.PostPublished})
}

func (r *PostRepository) find(ctx context.Context, filter bson.M) ([]*model.Post, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	posts := make([]*model.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, doc.toModel())
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, post *model.Post) error {
	oid, err := objectID(post.ID)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"title":     post.Title,
		"text":      post.Text,
		"published": post.Published,
		"excerpt":   post.Excerpt,
		"thumbnail": post.Thumbnail,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *PostRepository) CountByAuthor(ctx context.Context, authorID string) (int64, error) {
	author, err := objectID(authorID)
	if err != nil {
		return 0, nil
	}
	return r.coll.CountDocuments(ctx, bson.M{"author": author})
}
