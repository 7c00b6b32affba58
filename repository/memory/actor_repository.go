// Package memory keeps every repository in process maps. It backs the
// "memory" storage driver and the service and handler tests.
package memory

import (
	"context"
	"go-blog-api/model"
	"go-blog-api/repository"
	"sync"
	"time"

	"github.com/google/uuid"
)

type ActorRepository struct {
	mu     sync.RWMutex
	role   model.Role
	actors map[string]model.Actor
}

func NewActorRepository(role model.Role) *ActorRepository {
	return &ActorRepository{role: role, actors: make(map[string]model.Actor)}
}

func (r *ActorRepository) Create(_ context.Context, actor *model.Actor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.actors {
		if existing.Username == actor.Username {
			return repository.ErrDuplicate
		}
	}

	actor.ID = uuid.NewString()
	actor.Role = r.role
	actor.CreatedAt = time.Now().UTC()
	r.actors[actor.ID] = *actor
	return nil
}

func (r *ActorRepository) GetByID(_ context.Context, id string) (*model.Actor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	actor, ok := r.actors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &actor, nil
}

func (r *ActorRepository) GetByUsername(_ context.Context, username string) (*model.Actor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, actor := range r.actors {
		if actor.Username == username {
			return &actor, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ActorRepository) Update(_ context.Context, actor *model.Actor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.actors[actor.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.actors {
		if id != actor.ID && existing.Username == actor.Username {
			return repository.ErrDuplicate
		}
	}

	actor.Role = current.Role
	actor.CreatedAt = current.CreatedAt
	r.actors[actor.ID] = *actor
	return nil
}

func (r *ActorRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.actors[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.actors, id)
	return nil
}
