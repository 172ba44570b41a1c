// Copyright (c) 2026 eZunder. All rights reserved.

package ai

import (
	"context"
	"time"
)

// UsageRepository defines the data access contract for AI usage accounting.
type UsageRepository interface {

	/*
		Insert records one successful model call.

		Parameters:
		  - context: context.Context
		  - log: *UsageLog

		Returns:
		  - error: Persistence failures
	*/
	Insert(context context.Context, log *UsageLog) error

	/*
		Stats aggregates the user's usage in the half-open window [from, to).
		A zero from or to leaves that side of the window unbounded.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - from: time.Time
		  - to: time.Time

		Returns:
		  - *UsageStats: Totals plus a per-type breakdown
		  - error: Database failures
	*/
	Stats(context context.Context, userID string, from, to time.Time) (*UsageStats, error)
}
