package mongo

import (
	"context"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/repository"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type ActorRepository struct {
	coll *mongo.Collection
	role model.Role
}

func NewActorRepository(db *mongo.Database, role model.Role) *ActorRepository {
	name := readersCollection
	if role == model.RoleAuthor {
		name = authorsCollection
	}
	return &ActorRepository{coll: db.Collection(name), role: role}
}

func (r *ActorRepository) Create(ctx context.Context, actor *model.Actor) error {
	log := logger.Log.WithFields(logrus.Fields{
		"collection": r.coll.Name(),
		"username":   actor.Username,
	})
	log.Info("Inserting a new actor document")

	actor.CreatedAt = time.Now().UTC()
	res, err := r.coll.InsertOne(ctx, newActorDocument(actor))
	if err != nil {
		log.WithError(err).Error("Failed to insert actor document")
		return mapError(err)
	}
	actor.ID = res.InsertedID.(bson.ObjectID).Hex()
	actor.Role = r.role
	return nil
}

func (r *ActorRepository) GetByID(ctx context.Context, id string) (*model.Actor, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ActorRepository) GetByUsername(ctx context.Context, username string) (*model.Actor, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *ActorRepository) findOne(ctx context.Context, filter bson.M) (*model.Actor, error) {
	var doc actorDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapError(err)
	}
	return doc.toModel(r.role), nil
}

func (r *ActorRepository) Update(ctx context.Context, actor *model.Actor) error {
	oid, err := objectID(actor.ID)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"firstName": actor.FirstName,
		"lastName":  actor.LastName,
		"username":  actor.Username,
		"password":  actor.PasswordHash,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		logger.Log.WithError(err).WithField("actor_id", actor.ID).Error("Failed to update actor document")
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ActorRepository) Delete(ctx context.Context, id string) error {
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
