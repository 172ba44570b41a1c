// Copyright (c) 2026 eZunder. All rights reserved.

package document

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

// documentColumns is the canonical column list for hydration.
const documentColumns = "id, userid, projectid, title, content, type, status, wordcount, version, createdat, updatedat"

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the document Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists a new document row.

Description: When ProjectID is set, the INSERT..SELECT verifies project
ownership in the same statement. There is no separate confirm-then-act
read, so a concurrent project deletion cannot slip a document into a
foreign or vanished project.

Parameters:
  - context: context.Context
  - document: *Document

Returns:
  - error: apperr.NotFound("Project") or persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, document *Document) error {
	if document.ProjectID == nil {
		const query = `
			INSERT INTO documents (
				id, userid, projectid, title, content, type, status, wordcount, version, createdat, updatedat
			) VALUES ($1, $2, NULL, $3, $4, $5, $6, $7, $8, $9, $10)`

		_, err := repository.pool.Exec(context, query,
			document.ID,
			document.UserID,
			document.Title,
			document.Content,
			document.Type,
			document.Status,
			document.WordCount,
			document.Version,
			document.CreatedAt,
			document.UpdatedAt,
		)
		if err != nil {
			return dberr.Wrap(fmt.Errorf("postgres_document_repo_create_failed: %w", err), "Document")
		}
		return nil
	}

	const query = `
		INSERT INTO documents (
			id, userid, projectid, title, content, type, status, wordcount, version, createdat, updatedat
		)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		WHERE EXISTS (
			SELECT 1 FROM projects WHERE id = $3 AND userid = $2
		)`

	tag, err := repository.pool.Exec(context, query,
		document.ID,
		document.UserID,
		*document.ProjectID,
		document.Title,
		document.Content,
		document.Type,
		document.Status,
		document.WordCount,
		document.Version,
		document.CreatedAt,
		document.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_document_repo_create_failed: %w", err), "Document")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Project")
	}

	return nil
}

/*
FindByID returns a single document scoped to its owner.

Parameters:
  - context: context.Context
  - id: string
  - userID: string

Returns:
  - *Document: Hydrated entity
  - error: apperr.NotFound or database failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id, userID string) (*Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1 AND userid = $2`

	document := &Document{}
	err := repository.pool.QueryRow(context, query, id, userID).Scan(
		&document.ID,
		&document.UserID,
		&document.ProjectID,
		&document.Title,
		&document.Content,
		&document.Type,
		&document.Status,
		&document.WordCount,
		&document.Version,
		&document.CreatedAt,
		&document.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "Document")
	}

	return document, nil
}

/*
List returns a page of the user's documents in one project plus the total.

Parameters:
  - context: context.Context
  - userID: string
  - filter: Filter (ProjectID required)
  - page: pagination.Params

Returns:
  - []*Document: Result page
  - int64: Total matching rows
  - error: Database failures
*/
func (repository *PostgresRepository) List(context context.Context, userID string, filter Filter, page pagination.Params) ([]*Document, int64, error) {
	predicate := squirrel.Eq{
		"userid":    userID,
		"projectid": filter.ProjectID,
	}

	builder := psql.
		Select(documentColumns).
		From("documents").
		Where(predicate).
		OrderBy("createdat DESC").
		Limit(uint64(page.Limit)).
		Offset(uint64(page.Offset))

	countBuilder := psql.
		Select("COUNT(*)").
		From("documents").
		Where(predicate)

	if filter.Status != "" {
		statusPredicate := squirrel.Eq{"status": filter.Status}
		builder = builder.Where(statusPredicate)
		countBuilder = countBuilder.Where(statusPredicate)
	}
	if filter.Type != "" {
		typePredicate := squirrel.Eq{"type": filter.Type}
		builder = builder.Where(typePredicate)
		countBuilder = countBuilder.Where(typePredicate)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_document_repo_list_build_failed: %w", err)
	}

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(fmt.Errorf("postgres_document_repo_list_failed: %w", err), "Document")
	}
	defer rows.Close()

	documents := make([]*Document, 0, page.Limit)
	for rows.Next() {
		document := &Document{}
		if err := rows.Scan(
			&document.ID,
			&document.UserID,
			&document.ProjectID,
			&document.Title,
			&document.Content,
			&document.Type,
			&document.Status,
			&document.WordCount,
			&document.Version,
			&document.CreatedAt,
			&document.UpdatedAt,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "Document")
		}
		documents = append(documents, document)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "Document")
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_document_repo_count_build_failed: %w", err)
	}

	var total int64
	if err := repository.pool.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "Document")
	}

	return documents, total, nil
}

/*
Update persists changes to an owner-scoped document.

Parameters:
  - context: context.Context
  - document: *Document

Returns:
  - error: apperr.NotFound when no owned row matched, or database failures
*/
func (repository *PostgresRepository) Update(context context.Context, document *Document) error {
	const query = `
		UPDATE documents
		SET title = $3, content = $4, type = $5, status = $6,
		    wordcount = $7, version = $8, updatedat = $9
		WHERE id = $1 AND userid = $2`

	tag, err := repository.pool.Exec(context, query,
		document.ID,
		document.UserID,
		document.Title,
		document.Content,
		document.Type,
		document.Status,
		document.WordCount,
		document.Version,
		document.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_document_repo_update_failed: %w", err), "Document")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Document")
	}

	return nil
}

/*
Delete removes an owner-scoped document.

Parameters:
  - context: context.Context
  - id: string
  - userID: string

Returns:
  - error: apperr.NotFound when no owned row matched, or database failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id, userID string) error {
	const query = `DELETE FROM documents WHERE id = $1 AND userid = $2`

	tag, err := repository.pool.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_document_repo_delete_failed: %w", err), "Document")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Document")
	}

	return nil
}
