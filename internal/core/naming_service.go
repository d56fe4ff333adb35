package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// InvoiceNamePrefix is the naming series prefix for purchase invoices.
const InvoiceNamePrefix = "ACC-PINV"

// NamingService assigns gapless per-fiscal-year document names.
type NamingService interface {
	// NextNameTx reserves the next number of the (prefix, fiscalYear)
	// series inside the caller's transaction and returns the formatted
	// name, e.g. ACC-PINV-2024-00001. The reservation commits or rolls
	// back with the caller's transaction, keeping the series gapless.
	NextNameTx(ctx context.Context, tx pgx.Tx, prefix string, fiscalYear int) (string, error)
}

type namingService struct{}

// NewNamingService constructs a NamingService.
func NewNamingService() NamingService {
	return &namingService{}
}

func (s *namingService) NextNameTx(ctx context.Context, tx pgx.Tx, prefix string, fiscalYear int) (string, error) {
	// Concurrency-safe gapless counter: the upsert takes a row lock, so
	// two concurrent inserts of the same series serialize here.
	var lastNumber int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO naming_series (prefix, fiscal_year, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, fiscal_year)
		DO UPDATE SET last_number = naming_series.last_number + 1
		RETURNING last_number`,
		prefix, fiscalYear,
	).Scan(&lastNumber); err != nil {
		return "", fmt.Errorf("advance naming series %s-%d: %w", prefix, fiscalYear, err)
	}

	return fmt.Sprintf("%s-%d-%05d", prefix, fiscalYear, lastNumber), nil
}
