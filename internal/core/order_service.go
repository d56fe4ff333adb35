package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OrderService resolves purchase order line references for invoice linkage.
type OrderService interface {
	// MatchOrderLine looks up the order line matching
	// (parent, name, item_code) and returns its identifier, or nil when no
	// line matches.
	MatchOrderLine(ctx context.Context, order, lineName, itemCode string) (*string, error)
}

type orderService struct {
	pool *pgxpool.Pool
}

// NewOrderService constructs an OrderService backed by PostgreSQL.
func NewOrderService(pool *pgxpool.Pool) OrderService {
	return &orderService{pool: pool}
}

func (s *orderService) MatchOrderLine(ctx context.Context, order, lineName, itemCode string) (*string, error) {
	var matched string
	err := s.pool.QueryRow(ctx, `
		SELECT name FROM purchase_order_items
		WHERE parent = $1 AND name = $2 AND item_code = $3`,
		order, lineName, itemCode,
	).Scan(&matched)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("match order line %s/%s: %w", order, lineName, err)
	}
	return &matched, nil
}
