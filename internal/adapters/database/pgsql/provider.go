package pgsql

import (
	"github.com/afriramp/afri_ramp_app/internal/core/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository over one shared pool.
func NewRepositoryProvider(pool *pgxpool.Pool) ports.RepositoryProvider {
	return ports.RepositoryProvider{
		ExchangeRateRepo: NewExchangeRateRepository(pool),
		ConversionRepo:   NewConversionRepository(pool),
		FeeRepo:          NewFeeRepository(pool),
		TransactionRepo:  NewTransactionRepository(pool),
		TrustlineRepo:    NewTrustlineRepository(pool),
		WalletRepo:       NewWalletRepository(pool),
		WebhookRepo:      NewWebhookRepository(pool),
	}
}
