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
	"github.com/afriramp/afri_ramp_app/pkg/money"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxWalletRepository implements ports.WalletRepository using pgxpool.
type PgxWalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates a new PgxWalletRepository.
func NewWalletRepository(pool *pgxpool.Pool) ports.WalletRepository {
	return &PgxWalletRepository{pool: pool}
}

// EnsureWallet upserts the wallet row so later flag and balance updates
// always have a target.
func (r *PgxWalletRepository) EnsureWallet(ctx context.Context, address string) error {
	query := `
		INSERT INTO wallets (wallet_address, has_afri_trustline, afri_balance, created_at, updated_at)
		VALUES ($1, false, 0, now(), now())
		ON CONFLICT (wallet_address) DO NOTHING
	`
	if _, err := r.pool.Exec(ctx, query, address); err != nil {
		return fmt.Errorf("failed to ensure wallet %s: %w", address, err)
	}
	return nil
}

// FindWallet retrieves one wallet row.
func (r *PgxWalletRepository) FindWallet(ctx context.Context, address string) (*domain.Wallet, error) {
	query := `
		SELECT wallet_address, has_afri_trustline, afri_balance, last_balance_check, created_at, updated_at
		FROM wallets
		WHERE wallet_address = $1
	`
	rows, err := r.pool.Query(ctx, query, address)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallet %s: %w", address, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[models.Wallet])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan wallet row: %w", err)
	}
	wallet := mapping.ToDomainWallet(m)
	return &wallet, nil
}

// SetTrustlineFlag records whether the wallet holds a confirmed AFRI
// trustline.
func (r *PgxWalletRepository) SetTrustlineFlag(ctx context.Context, address string, hasTrustline bool) error {
	query := `UPDATE wallets SET has_afri_trustline = $2, updated_at = now() WHERE wallet_address = $1`
	tag, err := r.pool.Exec(ctx, query, address, hasTrustline)
	if err != nil {
		return fmt.Errorf("failed to set trustline flag for %s: %w", address, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("wallet %s not found", address))
	}
	return nil
}

// UpdateCachedBalance refreshes the read-side balance cache.
func (r *PgxWalletRepository) UpdateCachedBalance(ctx context.Context, address string, balance money.Money) error {
	query := `
		UPDATE wallets
		SET afri_balance = $2, last_balance_check = now(), updated_at = now()
		WHERE wallet_address = $1
	`
	tag, err := r.pool.Exec(ctx, query, address, balance)
	if err != nil {
		return fmt.Errorf("failed to update cached balance for %s: %w", address, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("wallet %s not found", address))
	}
	return nil
}
