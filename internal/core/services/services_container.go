package services

import (
	"net/http"

	"github.com/afriramp/afri_ramp_app/internal/core/ports"
	portssvc "github.com/afriramp/afri_ramp_app/internal/core/ports/services"
	"github.com/afriramp/afri_ramp_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos ports.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Rate resolver and fee calculator come first since the ledger depends
	// on both.
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, repos.ConversionRepo)
	container.Fee = NewFeeService(repos.FeeRepo)
	container.Trustline = NewTrustlineService(repos.TrustlineRepo, repos.WalletRepo)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.WalletRepo,
		repos.ConversionRepo,
		container.ExchangeRate,
		container.Fee,
		container.Trustline,
	)

	verifier := NewHMACVerifier(cfg.ProviderSecrets)
	container.Webhook = NewWebhookService(
		repos.WebhookRepo,
		container.Transaction,
		verifier,
		&http.Client{Timeout: cfg.DispatchTimeout},
		cfg.DispatchTargets,
		cfg.WebhookMaxRetries,
	)

	return container
}

// Compile-time checks that each implementation satisfies its facade.
var (
	_ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)
	_ portssvc.FeeSvcFacade          = (*FeeService)(nil)
	_ portssvc.TransactionSvcFacade  = (*TransactionService)(nil)
	_ portssvc.TrustlineSvcFacade    = (*TrustlineService)(nil)
	_ portssvc.WebhookSvcFacade      = (*WebhookService)(nil)
)
