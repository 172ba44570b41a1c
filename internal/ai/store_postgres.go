// Copyright (c) 2026 eZunder. All rights reserved.

package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ezunder/ezunder/internal/platform/dberr"
)

// psql builds PostgreSQL-flavored ($1, $2, ...) queries.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PostgresUsageRepository implements UsageRepository using pgx.
type PostgresUsageRepository struct {
	pool *pgxpool.Pool
}

// NewUsageRepository creates a new PostgreSQL implementation of UsageRepository.
func NewUsageRepository(pool *pgxpool.Pool) *PostgresUsageRepository {
	return &PostgresUsageRepository{pool: pool}
}

/*
Insert records one successful model call.

Parameters:
  - context: context.Context
  - log: *UsageLog

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUsageRepository) Insert(context context.Context, log *UsageLog) error {
	const query = `
		INSERT INTO ai_usage_logs (
			id, userid, requesttype, prompt, response, tokensused, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := repository.pool.Exec(context, query,
		log.ID,
		log.UserID,
		log.RequestType,
		log.Prompt,
		log.Response,
		log.TokensUsed,
		log.CreatedAt,
	)

	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_usage_repo_insert_failed: %w", err), "Usage log")
	}

	return nil
}

/*
Stats aggregates usage per request type inside an optional time window.

Description: One GROUP BY query serves both the per-type breakdown and,
summed in Go, the totals. The window is half-open: createdat >= from and
createdat < to.

Parameters:
  - context: context.Context
  - userID: string
  - from: time.Time (zero = unbounded)
  - to: time.Time (zero = unbounded)

Returns:
  - *UsageStats: Totals plus a per-type breakdown
  - error: Database failures
*/
func (repository *PostgresUsageRepository) Stats(context context.Context, userID string, from, to time.Time) (*UsageStats, error) {
	builder := psql.
		Select("requesttype", "COUNT(*)", "COALESCE(SUM(tokensused), 0)").
		From("ai_usage_logs").
		Where(squirrel.Eq{"userid": userID}).
		GroupBy("requesttype").
		OrderBy("requesttype")

	if !from.IsZero() {
		builder = builder.Where(squirrel.GtOrEq{"createdat": from})
	}
	if !to.IsZero() {
		builder = builder.Where(squirrel.Lt{"createdat": to})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres_usage_repo_stats_build_failed: %w", err)
	}

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(fmt.Errorf("postgres_usage_repo_stats_failed: %w", err), "Usage log")
	}
	defer rows.Close()

	stats := &UsageStats{RequestsByType: make([]TypeStat, 0, 4)}
	for rows.Next() {
		var entry TypeStat
		if err := rows.Scan(&entry.Type, &entry.Count, &entry.Tokens); err != nil {
			return nil, dberr.Wrap(err, "Usage log")
		}
		stats.RequestsByType = append(stats.RequestsByType, entry)
		stats.TotalRequests += entry.Count
		stats.TotalTokens += entry.Tokens
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Usage log")
	}

	return stats, nil
}
