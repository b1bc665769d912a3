package pgsql

import (
	"context"
	"fmt"

	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/internal/core/ports"
	"github.com/afriramp/afri_ramp_app/internal/models"
	"github.com/afriramp/afri_ramp_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxConversionRepository implements ports.ConversionRepository using
// pgxpool. The afri_conversions table is append-only; no update or delete
// statement exists here on purpose.
type PgxConversionRepository struct {
	pool *pgxpool.Pool
}

// NewConversionRepository creates a new PgxConversionRepository.
func NewConversionRepository(pool *pgxpool.Pool) ports.ConversionRepository {
	return &PgxConversionRepository{pool: pool}
}

// SaveConversion appends one immutable conversion audit row.
func (r *PgxConversionRepository) SaveConversion(ctx context.Context, conv domain.AfriConversion) error {
	m := mapping.ToModelAfriConversion(conv)
	query := `
		INSERT INTO afri_conversions (
			conversion_id, transaction_id, from_currency, to_currency,
			from_amount, to_amount, exchange_rate_used, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		m.ID, m.TransactionID, m.FromCurrency, m.ToCurrency,
		m.FromAmount, m.ToAmount, m.ExchangeRateUsed, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert conversion audit row: %w", err)
	}
	return nil
}

// FindConversionsByTransaction returns the audit rows realized inside one
// transaction, oldest first.
func (r *PgxConversionRepository) FindConversionsByTransaction(ctx context.Context, transactionID string) ([]domain.AfriConversion, error) {
	query := `
		SELECT conversion_id, transaction_id, from_currency, to_currency,
		       from_amount, to_amount, exchange_rate_used, created_at
		FROM afri_conversions
		WHERE transaction_id = $1
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions for transaction %s: %w", transactionID, err)
	}
	modelConvs, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.AfriConversion])
	if err != nil {
		return nil, fmt.Errorf("failed to scan conversion rows: %w", err)
	}

	convs := make([]domain.AfriConversion, 0, len(modelConvs))
	for _, m := range modelConvs {
		convs = append(convs, mapping.ToDomainAfriConversion(m))
	}
	return convs, nil
}
