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

const transactionColumns = `
	transaction_id, wallet_address, transaction_type, from_currency, to_currency,
	from_amount, to_amount, afri_amount, fee_amount, status,
	payment_provider, payment_reference, blockchain_tx_hash, error_message,
	metadata, created_at, updated_at`

// PgxTransactionRepository implements ports.TransactionRepository using
// pgxpool.
type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new PgxTransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) ports.TransactionRepository {
	return &PgxTransactionRepository{pool: pool}
}

// SaveTransaction inserts the transaction, its conversion audit row, and,
// when present, its bill-payment detail row within one DB transaction.
// Writing the audit row here keeps the trail free of rows correlated to a
// transaction that never committed.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, conv *domain.AfriConversion, bill *domain.BillPaymentDetail) error {
	m := mapping.ToModelTransaction(txn)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txnQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err = tx.Exec(ctx, txnQuery,
		m.ID, m.WalletAddress, m.Type, m.FromCurrency, m.ToCurrency,
		m.FromAmount, m.ToAmount, m.AfriAmount, m.FeeAmount, m.Status,
		m.PaymentProvider, m.PaymentReference, m.BlockchainTxHash, m.ErrorMessage,
		m.Metadata, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", m.ID, err)
	}

	if conv != nil {
		c := mapping.ToModelAfriConversion(*conv)
		convQuery := `
			INSERT INTO afri_conversions (
				conversion_id, transaction_id, from_currency, to_currency,
				from_amount, to_amount, exchange_rate_used, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		_, err = tx.Exec(ctx, convQuery,
			c.ID, c.TransactionID, c.FromCurrency, c.ToCurrency,
			c.FromAmount, c.ToAmount, c.ExchangeRateUsed, c.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert conversion audit row for %s: %w", m.ID, err)
		}
	}

	if bill != nil {
		b := mapping.ToModelBillPaymentDetail(*bill)
		billQuery := `
			INSERT INTO bill_payments (
				bill_payment_id, transaction_id, biller_code, customer_ref,
				biller_name, amount, currency, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		_, err = tx.Exec(ctx, billQuery,
			b.ID, b.TransactionID, b.BillerCode, b.CustomerRef,
			b.BillerName, b.Amount, b.Currency, b.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bill payment detail for %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction insert: %w", err)
	}
	return nil
}

// FindTransactionByID retrieves one transaction row.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1`

	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %s: %w", id, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[models.Transaction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", id))
		}
		return nil, fmt.Errorf("failed to scan transaction %s: %w", id, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// FindTransactionsByWallet returns a wallet's transactions, newest first.
func (r *PgxTransactionRepository) FindTransactionsByWallet(ctx context.Context, walletAddress string, limit, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE wallet_address = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, walletAddress, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for wallet %s: %w", walletAddress, err)
	}
	modelTxns, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Transaction])
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction rows: %w", err)
	}

	txns := make([]domain.Transaction, 0, len(modelTxns))
	for _, m := range modelTxns {
		txns = append(txns, mapping.ToDomainTransaction(m))
	}
	return txns, nil
}

// FindBillPaymentByTransaction retrieves the bill detail row for one
// transaction.
func (r *PgxTransactionRepository) FindBillPaymentByTransaction(ctx context.Context, transactionID string) (*domain.BillPaymentDetail, error) {
	query := `
		SELECT bill_payment_id, transaction_id, biller_code, customer_ref,
		       biller_name, amount, currency, created_at
		FROM bill_payments
		WHERE transaction_id = $1
	`
	rows, err := r.pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bill payment for %s: %w", transactionID, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[models.BillPaymentDetail])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("bill payment for transaction %s not found", transactionID))
		}
		return nil, fmt.Errorf("failed to scan bill payment row: %w", err)
	}
	bill := mapping.ToDomainBillPaymentDetail(m)
	return &bill, nil
}

// TransitionStatus applies a single guarded UPDATE: the row moves only if
// its current status is one of `from`. Losing the guard is reported as
// ErrInvalidTransition so callers can treat duplicate signals as no-ops; a
// missing row is ErrNotFound.
func (r *PgxTransactionRepository) TransitionStatus(ctx context.Context, id string, from []domain.TransactionStatus, to domain.TransactionStatus, update ports.TransactionUpdate) (*domain.Transaction, error) {
	fromStatuses := make([]string, 0, len(from))
	for _, s := range from {
		fromStatuses = append(fromStatuses, string(s))
	}

	query := `
		UPDATE transactions
		SET status = $2,
		    payment_provider = COALESCE($3, payment_provider),
		    payment_reference = COALESCE($4, payment_reference),
		    blockchain_tx_hash = COALESCE($5, blockchain_tx_hash),
		    error_message = COALESCE($6, error_message),
		    to_amount = COALESCE($7, to_amount),
		    afri_amount = COALESCE($8, afri_amount),
		    updated_at = now()
		WHERE transaction_id = $1 AND status = ANY($9)
		RETURNING ` + transactionColumns + `
	`
	rows, err := r.pool.Query(ctx, query,
		id, string(to),
		update.PaymentProvider, update.PaymentReference, update.BlockchainTxHash,
		update.ErrorMessage, update.ToAmount, update.AfriAmount,
		fromStatuses,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to transition transaction %s: %w", id, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByPos[models.Transaction])
	if err == nil {
		txn := mapping.ToDomainTransaction(m)
		return &txn, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to scan transitioned transaction %s: %w", id, err)
	}

	// Zero rows: tell a missing row apart from a guard loss.
	var current string
	err = r.pool.QueryRow(ctx, `SELECT status FROM transactions WHERE transaction_id = $1`, id).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction %s not found", id))
		}
		return nil, fmt.Errorf("failed to read transaction %s status: %w", id, err)
	}
	return nil, fmt.Errorf("%w: transaction %s is %s, wanted one of %v", apperrors.ErrInvalidTransition, id, current, fromStatuses)
}
