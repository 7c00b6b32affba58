package mongo

import (
	"context"
	"go-blog-api/model"
	"go-blog-api/repository"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type CommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{coll: db.Collection(commentsCollection)}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	visitor, err := objectID(comment.ReaderID)
	if err != nil {
		return err
	}
	post, err := objectID(comment.PostID)
	if err != nil {
		return err
	}

	comment.CreatedAt = time.Now().UTC()
	res, err := r.coll.InsertOne(ctx, commentDocument{
		Text:      comment.Text,
		Visitor:   visitor,
		Post:      post,
		Timestamp: comment.CreatedAt,
	})
	if err != nil {
		return err
	}
	comment.ID = res.InsertedID.(bson.ObjectID).Hex()
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc commentDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapError(err)
	}
	return doc.toModel(), nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	post, err := objectID(postID)
	if err != nil {
		return []*model.Comment{}, nil
	}
	cursor, err := r.coll.Find(ctx, bson.M{"post": post}, options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []commentDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	comments := make([]*model.Comment, 0, len(docs))
	for _, doc := range docs {
		comments = append(comments, doc.toModel())
	}
	return comments, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *model.Comment) error {
	oid, err := objectID(comment.ID)
	if err != nil {
		return err
	}

	var doc commentDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"text": comment.Text}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return mapError(err)
	}
	*comment = *doc.toModel()
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
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

func (r *CommentRepository) DeleteByPost(ctx context.Context, postID string) error {
	post, err := objectID(postID)
	if err != nil {
		return nil
	}
	_, err = r.coll.DeleteMany(ctx, bson.M{"post": post})
	return err
}
