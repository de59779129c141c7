package repository

import (
	"context"
	"database/sql"

	"meeting-optimizer-api/core/database"
	"meeting-optimizer-api/modules/directory/entity"

	"github.com/lib/pq"
)

type TeamGroupRepositoryInterface interface {
	EnsureSchema(ctx context.Context) error
	CreateGroup(ctx context.Context, group *entity.TeamGroup) (*entity.TeamGroup, error)
	GetGroups(ctx context.Context) ([]entity.TeamGroup, error)
	GetGroupByID(ctx context.Context, id string) (*entity.TeamGroup, error)
	CountGroups(ctx context.Context) (int, error)
}

type teamGroupRepository struct {
	db database.Database
}

func NewTeamGroupRepository(db database.Database) TeamGroupRepositoryInterface {
	return &teamGroupRepository{db: db}
}

func (r *teamGroupRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS team_groups (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			color       TEXT NOT NULL DEFAULT '',
			members     TEXT[] NOT NULL DEFAULT '{}',
			created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	return r.db.ExecContext(ctx, query)
}

func (r *teamGroupRepository) CreateGroup(ctx context.Context, group *entity.TeamGroup) (*entity.TeamGroup, error) {
	query := `
		INSERT INTO team_groups (id, name, description, color, members)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    description = EXCLUDED.description,
		    color = EXCLUDED.color,
		    members = EXCLUDED.members,
		    updated_at = NOW()
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		group.ID, group.Name, group.Description, group.Color, pq.Array([]string(group.Members)),
	).Scan(&group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (r *teamGroupRepository) GetGroups(ctx context.Context) ([]entity.TeamGroup, error) {
	var groups []entity.TeamGroup
	query := `
		SELECT id, name, description, color, members, created_at, updated_at
		FROM team_groups
		ORDER BY name
	`
	if err := r.db.SelectContext(ctx, &groups, query); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *teamGroupRepository) GetGroupByID(ctx context.Context, id string) (*entity.TeamGroup, error) {
	var group entity.TeamGroup
	query := `
		SELECT id, name, description, color, members, created_at, updated_at
		FROM team_groups
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &group, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *teamGroupRepository) CountGroups(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM team_groups`); err != nil {
		return 0, err
	}
	return count, nil
}
