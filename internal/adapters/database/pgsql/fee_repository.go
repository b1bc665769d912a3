package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/internal/core/ports"
	"github.com/afriramp/afri_ramp_app/internal/models"
	"github.com/afriramp/afri_ramp_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const feeStructureColumns = `
	fee_structure_id, transaction_type, min_amount, max_amount,
	fee_percentage, flat_fee_amount, currency, country_code,
	is_active, effective_from, effective_until, created_at`

// PgxFeeRepository implements ports.FeeRepository using pgxpool.
type PgxFeeRepository struct {
	pool *pgxpool.Pool
}

// NewFeeRepository creates a new PgxFeeRepository.
func NewFeeRepository(pool *pgxpool.Pool) ports.FeeRepository {
	return &PgxFeeRepository{pool: pool}
}

// SaveFeeStructure inserts a new fee rule.
func (r *PgxFeeRepository) SaveFeeStructure(ctx context.Context, fee domain.FeeStructure) error {
	m := mapping.ToModelFeeStructure(fee)
	query := `
		INSERT INTO fee_structures (` + feeStructureColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query,
		m.ID, m.TransactionType, m.MinAmount, m.MaxAmount,
		m.FeePercentage, m.FlatFeeAmount, m.Currency, m.CountryCode,
		m.IsActive, m.EffectiveFrom, m.EffectiveUntil, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fee structure: %w", err)
	}
	return nil
}

// FindActiveRules returns the active rules for the type and currency that
// were effective at the given instant. Amount-band and country selection
// stay in the service where the determinism rules live.
func (r *PgxFeeRepository) FindActiveRules(ctx context.Context, txType domain.TransactionType, currency string, at time.Time) ([]domain.FeeStructure, error) {
	query := `
		SELECT ` + feeStructureColumns + `
		FROM fee_structures
		WHERE transaction_type = $1 AND currency = $2
		  AND is_active
		  AND effective_from <= $3
		  AND (effective_until IS NULL OR effective_until > $3)
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, string(txType), currency, at)
	if err != nil {
		return nil, fmt.Errorf("failed to query fee rules for %s/%s: %w", txType, currency, err)
	}
	modelRules, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.FeeStructure])
	if err != nil {
		return nil, fmt.Errorf("failed to scan fee rule rows: %w", err)
	}

	rules := make([]domain.FeeStructure, 0, len(modelRules))
	for _, m := range modelRules {
		rules = append(rules, mapping.ToDomainFeeStructure(m))
	}
	return rules, nil
}
