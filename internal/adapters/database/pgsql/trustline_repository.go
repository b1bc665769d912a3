package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/afriramp/afri_ramp_app/internal/apperrors"
	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/internal/core/ports"
	"github.com/afriramp/afri_ramp_app/internal/models"
	"github.com/afriramp/afri_ramp_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const trustlineColumns = `
	operation_id, wallet_address, chain_tx_hash, status, error_message,
	retry_count, created_at, updated_at`

// PgxTrustlineRepository implements ports.TrustlineRepository using
// pgxpool. The partial unique index on wallet_address WHERE status =
// 'pending' makes InsertPendingOperation the concurrency gate.
type PgxTrustlineRepository struct {
	pool *pgxpool.Pool
}

// NewTrustlineRepository creates a new PgxTrustlineRepository.
func NewTrustlineRepository(pool *pgxpool.Pool) ports.TrustlineRepository {
	return &PgxTrustlineRepository{pool: pool}
}

// InsertPendingOperation inserts a pending row; a second pending row for
// the same wallet loses to the partial unique index.
func (r *PgxTrustlineRepository) InsertPendingOperation(ctx context.Context, op domain.TrustlineOperation) error {
	m := mapping.ToModelTrustlineOperation(op)
	query := `
		INSERT INTO trustline_operations (` + trustlineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		m.ID, m.WalletAddress, m.ChainTxHash, m.Status, m.ErrorMessage,
		m.RetryCount, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("pending trustline operation for wallet %s: %w", m.WalletAddress, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert trustline operation: %w", err)
	}
	return nil
}

// FindOperationByID retrieves one operation row.
func (r *PgxTrustlineRepository) FindOperationByID(ctx context.Context, id string) (*domain.TrustlineOperation, error) {
	query := `SELECT ` + trustlineColumns + ` FROM trustline_operations WHERE operation_id = $1`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query trustline operation %s: %w", id, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[models.TrustlineOperation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("trustline operation %s not found", id))
		}
		return nil, fmt.Errorf("failed to scan trustline operation: %w", err)
	}
	op := mapping.ToDomainTrustlineOperation(m)
	return &op, nil
}

// FindLatestByWallet returns the wallet's most recent operation.
func (r *PgxTrustlineRepository) FindLatestByWallet(ctx context.Context, walletAddress string) (*domain.TrustlineOperation, error) {
	query := `
		SELECT ` + trustlineColumns + `
		FROM trustline_operations
		WHERE wallet_address = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	rows, err := r.pool.Query(ctx, query, walletAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to query trustline operations for %s: %w", walletAddress, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[models.TrustlineOperation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan trustline operation: %w", err)
	}
	op := mapping.ToDomainTrustlineOperation(m)
	return &op, nil
}

// CountPendingByWallet counts the wallet's pending operations. The index
// keeps this at 0 or 1; anything higher means outside interference.
func (r *PgxTrustlineRepository) CountPendingByWallet(ctx context.Context, walletAddress string) (int, error) {
	var count int
	query := `SELECT count(*) FROM trustline_operations WHERE wallet_address = $1 AND status = 'pending'`
	if err := r.pool.QueryRow(ctx, query, walletAddress).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending trustline operations for %s: %w", walletAddress, err)
	}
	return count, nil
}

// ResolveOperation moves a pending operation to its terminal status under
// the same guarded-transition contract as the transaction ledger.
func (r *PgxTrustlineRepository) ResolveOperation(ctx context.Context, id string, status domain.TrustlineStatus, chainTxHash, errorMessage *string) (*domain.TrustlineOperation, error) {
	query := `
		UPDATE trustline_operations
		SET status = $2,
		    chain_tx_hash = COALESCE($3, chain_tx_hash),
		    error_message = COALESCE($4, error_message),
		    updated_at = now()
		WHERE operation_id = $1 AND status = 'pending'
		RETURNING ` + trustlineColumns + `
	`
	rows, err := r.pool.Query(ctx, query, id, string(status), chainTxHash, errorMessage)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve trustline operation %s: %w", id, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[models.TrustlineOperation])
	if err == nil {
		op := mapping.ToDomainTrustlineOperation(m)
		return &op, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to scan resolved trustline operation: %w", err)
	}

	var current string
	err = r.pool.QueryRow(ctx, `SELECT status FROM trustline_operations WHERE operation_id = $1`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("trustline operation %s not found", id))
		}
		return nil, fmt.Errorf("failed to read trustline operation %s status: %w", id, err)
	}
	return nil, fmt.Errorf("%w: trustline operation %s is %s, wanted pending", apperrors.ErrInvalidTransition, id, current)
}

// IncrementRetry bumps the retry counter of a still-pending operation and
// returns the new count.
func (r *PgxTrustlineRepository) IncrementRetry(ctx context.Context, id string) (int, error) {
	var count int
	query := `
		UPDATE trustline_operations
		SET retry_count = retry_count + 1, updated_at = now()
		WHERE operation_id = $1 AND status = 'pending'
		RETURNING retry_count
	`
	err := r.pool.QueryRow(ctx, query, id).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewNotFoundError(fmt.Sprintf("pending trustline operation %s not found", id))
		}
		return 0, fmt.Errorf("failed to increment retry for trustline operation %s: %w", id, err)
	}
	return count, nil
}
