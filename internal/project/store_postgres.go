// Copyright (c) 2026 eZunder. All rights reserved.

package project

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ezunder/ezunder/internal/platform/apperr"
	"github.com/ezunder/ezunder/internal/platform/dberr"
	"github.com/ezunder/ezunder/pkg/pagination"
)

// psql builds PostgreSQL-flavored ($1, $2, ...) queries.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// projectColumns is the canonical column list for hydration.
const projectColumns = "id, userid, name, description, status, settings, createdat, updatedat"

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the project Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists a new project row.

Parameters:
  - context: context.Context
  - project: *Project

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, project *Project) error {
	const query = `
		INSERT INTO projects (
			id, userid, name, description, status, settings, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := repository.pool.Exec(context, query,
		project.ID,
		project.UserID,
		project.Name,
		project.Description,
		project.Status,
		project.Settings,
		project.CreatedAt,
		project.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_project_repo_create_failed: %w", err), "Project")
	}

	return nil
}

/*
FindByID returns a single project scoped to its owner.

Description: The userID predicate makes foreign projects indistinguishable
from missing ones (apperr.NotFound either way).

Parameters:
  - context: context.Context
  - id: string
  - userID: string

Returns:
  - *Project: Hydrated entity
  - error: apperr.NotFound or database failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id, userID string) (*Project, error) {
	query := `
		SELECT ` + projectColumns + `
		FROM projects
		WHERE id = $1 AND userid = $2`

	project := &Project{}
	err := repository.pool.QueryRow(context, query, id, userID).Scan(
		&project.ID,
		&project.UserID,
		&project.Name,
		&project.Description,
		&project.Status,
		&project.Settings,
		&project.CreatedAt,
		&project.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "Project")
	}

	return project, nil
}

/*
List returns a page of the user's projects plus the unpaginated total.

Description: Built with squirrel because the status filter is optional;
results are ordered newest first (UUIDv7 IDs sort by creation time, but
createdat is explicit and index-friendly).

Parameters:
  - context: context.Context
  - userID: string
  - filter: Filter
  - page: pagination.Params

Returns:
  - []*Project: Result page
  - int64: Total matching rows
  - error: Database failures
*/
func (repository *PostgresRepository) List(context context.Context, userID string, filter Filter, page pagination.Params) ([]*Project, int64, error) {
	predicate := squirrel.Eq{"userid": userID}

	builder := psql.
		Select(projectColumns).
		From("projects").
		Where(predicate).
		OrderBy("createdat DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset))

	countBuilder := psql.
		Select("COUNT(*)").
		From("projects").
		Where(predicate)

	if filter.Status != "" {
		statusPredicate := squirrel.Eq{"status": filter.Status}
		builder = builder.Where(statusPredicate)
		countBuilder = countBuilder.Where(statusPredicate)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_project_repo_list_build_failed: %w", err)
	}

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(fmt.Errorf("postgres_project_repo_list_failed: %w", err), "Project")
	}
	defer rows.Close()

	projects := make([]*Project, 0, page.Limit)
	for rows.Next() {
		project := &Project{}
		if err := rows.Scan(
			&project.ID,
			&project.UserID,
			&project.Name,
			&project.Description,
			&project.Status,
			&project.Settings,
			&project.CreatedAt,
			&project.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Project")
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Project")
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_project_repo_count_build_failed: %w", err)
	}

	var total int64
	if err := repository.pool.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Project")
	}

	return projects, total, nil
}

/*
Update persists changes to an owner-scoped project.

Parameters:
  - context: context.Context
  - project: *Project

Returns:
  - error: apperr.NotFound when no owned row matched, or database failures
*/
func (repository *PostgresRepository) Update(context context.Context, project *Project) error {
	const query = `
		UPDATE projects
		SET name = $3, description = $4, status = $5, settings = $6, updatedat = $7
		WHERE id = $1 AND userid = $2`

	tag, err := repository.pool.Exec(context, query,
		project.ID,
		project.UserID,
		project.Name,
		project.Description,
		project.Status,
		project.Settings,
		project.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_project_repo_update_failed: %w", err), "Project")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Project")
	}

	return nil
}

/*
Delete removes an owner-scoped project; the documents cascade in the schema.

Parameters:
  - context: context.Context
  - id: string
  - userID: string

Returns:
  - error: apperr.NotFound when no owned row matched, or database failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id, userID string) error {
	const query = `DELETE FROM projects WHERE id = $1 AND userid = $2`

	tag, err := repository.pool.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_project_repo_delete_failed: %w", err), "Project")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Project")
	}

	return nil
}
