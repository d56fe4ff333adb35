package core

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// ErrorLogService records operation failures for later inspection.
// Logging is fire-and-forget: it must never fail the operation whose
// error it is recording.
type ErrorLogService interface {
	LogError(ctx context.Context, category, message, requestID string)
}

type errorLogService struct {
	pool *pgxpool.Pool
	log  zerolog.Logger
}

// NewErrorLogService constructs an ErrorLogService backed by PostgreSQL.
func NewErrorLogService(pool *pgxpool.Pool, log zerolog.Logger) ErrorLogService {
	return &errorLogService{pool: pool, log: log}
}

func (s *errorLogService) LogError(ctx context.Context, category, message, requestID string) {
	// The caller's context may already be cancelled when the failure is a
	// timeout; use a short independent deadline so the row still lands.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	var reqID *string
	if requestID != "" {
		reqID = &requestID
	}

	if _, err := s.pool.Exec(ctx,
		"INSERT INTO error_logs (category, message, request_id) VALUES ($1, $2, $3)",
		category, message, reqID,
	); err != nil {
		s.log.Error().Err(err).
			Str("category", category).
			Msg("error log write failed")
	}
}
