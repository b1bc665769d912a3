package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/afriramp/afri_ramp_app/internal/apperrors"
	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/internal/core/ports"
	"github.com/afriramp/afri_ramp_app/internal/models"
	"github.com/afriramp/afri_ramp_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const exchangeRateColumns = `
	exchange_rate_id, from_currency, to_currency, rate, spread, source,
	valid_from, valid_until, created_at`

// rateInForceCond is the single definition of "this row is still in force
// at %s". SetRate's close step and FindCurrentRate must agree on it: a row
// the read side would resolve is a row the close step must supersede,
// including TTL'd rows whose valid_until has not yet passed.
const rateInForceCond = `(valid_until IS NULL OR valid_until > %s)`

var closeRateQuery = fmt.Sprintf(`
		UPDATE exchange_rates
		SET valid_until = $1
		WHERE from_currency = $2 AND to_currency = $3 AND `+rateInForceCond, "$1")

var currentRateQuery = fmt.Sprintf(`
		SELECT `+exchangeRateColumns+`
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2
		  AND valid_from <= now()
		  AND `+rateInForceCond, "now()") + `
		ORDER BY valid_from DESC`

// PgxExchangeRateRepository implements ports.ExchangeRateRepository using pgxpool.
type PgxExchangeRateRepository struct {
	pool *pgxpool.Pool
}

// NewExchangeRateRepository creates a new PgxExchangeRateRepository.
func NewExchangeRateRepository(pool *pgxpool.Pool) ports.ExchangeRateRepository {
	return &PgxExchangeRateRepository{pool: pool}
}

// SetRate closes every rate for the pair still in force and inserts the
// new one inside a DB transaction. A pair-scoped advisory lock serializes
// concurrent publishers; TTL'd rows sit outside the partial unique index,
// so the lock is what guarantees at most one in-force row survives. A
// publisher that still collides with the index surfaces ErrDuplicate for
// the service to retry.
func (r *PgxExchangeRateRepository) SetRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`,
		m.FromCurrency+"/"+m.ToCurrency,
	); err != nil {
		return fmt.Errorf("failed to lock pair %s/%s: %w", m.FromCurrency, m.ToCurrency, err)
	}

	if _, err := tx.Exec(ctx, closeRateQuery, m.ValidFrom, m.FromCurrency, m.ToCurrency); err != nil {
		return fmt.Errorf("failed to close open rate for %s/%s: %w", m.FromCurrency, m.ToCurrency, err)
	}

	insertQuery := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.ID, m.FromCurrency, m.ToCurrency, m.Rate, m.Spread, m.Source,
		m.ValidFrom, m.ValidUntil, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("open rate row for %s/%s: %w", m.FromCurrency, m.ToCurrency, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert exchange rate: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rate update: %w", err)
	}
	return nil
}

// FindCurrentRate returns the open rate for the pair that is in force now.
// A TTL'd rate whose valid_until has passed no longer matches.
func (r *PgxExchangeRateRepository) FindCurrentRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.ExchangeRate, error) {
	rows, err := r.pool.Query(ctx, currentRateQuery, fromCurrency, toCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to query current rate for %s/%s: %w", fromCurrency, toCurrency, err)
	}
	matches, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.ExchangeRate])
	if err != nil {
		return nil, fmt.Errorf("failed to scan current rate: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, apperrors.ErrNotFound
	case 1:
		rate := mapping.ToDomainExchangeRate(matches[0])
		return &rate, nil
	default:
		// The close step supersedes every in-force row before an insert,
		// so two matches mean the table was mutated outside the
		// application.
		return nil, fmt.Errorf("%w: %d concurrent rates for %s/%s", apperrors.ErrIntegrityViolation, len(matches), fromCurrency, toCurrency)
	}
}

// ListRates returns retained rate rows for the pair, newest first.
func (r *PgxExchangeRateRepository) ListRates(ctx context.Context, fromCurrency, toCurrency string, limit int) ([]domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2
		ORDER BY valid_from DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, fromCurrency, toCurrency, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates for %s/%s: %w", fromCurrency, toCurrency, err)
	}
	modelRates, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.ExchangeRate])
	if err != nil {
		return nil, fmt.Errorf("failed to scan rate rows: %w", err)
	}

	rates := make([]domain.ExchangeRate, 0, len(modelRates))
	for _, m := range modelRates {
		rates = append(rates, mapping.ToDomainExchangeRate(m))
	}
	return rates, nil
}

// FindStaleRates returns open rates whose valid_from predates the cutoff,
// feeding the staleness monitor.
func (r *PgxExchangeRateRepository) FindStaleRates(ctx context.Context, olderThan time.Time) ([]domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE valid_until IS NULL AND valid_from < $1
		ORDER BY valid_from ASC
	`
	rows, err := r.pool.Query(ctx, query, olderThan)
	if err != nil {
		return nil, fmt.Errorf("failed to query stale rates: %w", err)
	}
	modelRates, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.ExchangeRate])
	if err != nil {
		return nil, fmt.Errorf("failed to scan stale rate rows: %w", err)
	}

	rates := make([]domain.ExchangeRate, 0, len(modelRates))
	for _, m := range modelRates {
		rates = append(rates, mapping.ToDomainExchangeRate(m))
	}
	return rates, nil
}
