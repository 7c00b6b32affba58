package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"go-blog-api/logger"
	"go-blog-api/model"
	"go-blog-api/repository"

	"github.com/sirupsen/logrus"
)

// ActorRepository stores the actors of one role in that role's table.
type ActorRepository struct {
	DB    *sql.DB
	role  model.Role
	table string
}

func NewActorRepository(db *sql.DB, role model.Role) *ActorRepository {
	table := "readers"
	if role == model.RoleAuthor {
		table = "authors"
	}
	return &ActorRepository{DB: db, role: role, table: table}
}

func (r *ActorRepository) Create(ctx context.Context, actor *model.Actor) error {
	log := logger.Log.WithFields(logrus.Fields{
		"table":    r.table,
		"username": actor.Username,
	})
	log.Info("Executing query to create a new actor")

	query := fmt.Sprintf(`INSERT INTO %s (first_name, last_name, username, password, is_active) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`, r.table)
	err := r.DB.QueryRowContext(ctx, query, actor.FirstName, actor.LastName, actor.Username, actor.PasswordHash, actor.IsActive).
		Scan(&actor.ID, &actor.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create actor query")
		return mapError(err)
	}
	actor.Role = r.role
	return nil
}

func (r *ActorRepository) GetByID(ctx context.Context, id string) (*model.Actor, error) {
	if !validID(id) {
		return nil, repository.ErrNotFound
	}
	query := fmt.Sprintf(`SELECT id, first_name, last_name, username, password, is_active, created_at FROM %s WHERE id = $1`, r.table)
	return r.getOne(ctx, query, id)
}

func (r *ActorRepository) GetByUsername(ctx context.Context, username string) (*model.Actor, error) {
	query := fmt.Sprintf(`SELECT id, first_name, last_name, username, password, is_active, created_at FROM %s WHERE username = $1`, r.table)
	return r.getOne(ctx, query, username)
}

func (r *ActorRepository) getOne(ctx context.Context, query string, arg string) (*model.Actor, error) {
	actor := &model.Actor{Role: r.role}
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&actor.ID, &actor.FirstName, &actor.LastName, &actor.Username,
		&actor.PasswordHash, &actor.IsActive, &actor.CreatedAt,
	)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.Log.WithError(err).WithField("table", r.table).Error("Failed to execute get actor query")
		}
		return nil, mapError(err)
	}
	return actor, nil
}

func (r *ActorRepository) Update(ctx context.Context, actor *model.Actor) error {
	log := logger.Log.WithFields(logrus.Fields{
		"table":    r.table,
		"actor_id": actor.ID,
	})
	log.Info("Executing query to update actor")

	if !validID(actor.ID) {
		return repository.ErrNotFound
	}
	query := fmt.Sprintf(`UPDATE %s SET first_name = $1, last_name = $2, username = $3, password = $4 WHERE id = $5`, r.table)
	res, err := r.DB.ExecContext(ctx, query, actor.FirstName, actor.LastName, actor.Username, actor.PasswordHash, actor.ID)
	if err != nil {
		log.WithError(err).Error("Failed to execute update actor query")
		return mapError(err)
	}
	return expectOneRow(res)
}

func (r *ActorRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log.WithFields(logrus.Fields{
		"table":    r.table,
		"actor_id": id,
	})
	log.Info("Executing query to delete actor")

	if !validID(id) {
		return repository.ErrNotFound
	}
	res, err := r.DB.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table), id)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete actor query")
		return mapError(err)
	}
	return expectOneRow(res)
}
