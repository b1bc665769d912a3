package dto

import (
	"time"

	"github.com/afriramp/afri_ramp_app/internal/core/domain"
	"github.com/afriramp/afri_ramp_app/pkg/money"
)

// BeginTrustlineRequest starts trustline establishment for a wallet.
type BeginTrustlineRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
}

// ResolveTrustlineRequest records the chain outcome for an operation.
type ResolveTrustlineRequest struct {
	Outcome      string  `json:"outcome" binding:"required,oneof=confirmed failed"`
	ChainTxHash  *string `json:"chainTxHash,omitempty"`
	ErrorMessage *string `json:"errorMessage,omitempty"`
}

// TrustlineOperationResponse is the wire shape of one operation.
type TrustlineOperationResponse struct {
	ID            string    `json:"id"`
	WalletAddress string    `json:"walletAddress"`
	Status        string    `json:"status"`
	ChainTxHash   *string   `json:"chainTxHash,omitempty"`
	ErrorMessage  *string   `json:"errorMessage,omitempty"`
	RetryCount    int       `json:"retryCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TrustlineStatusResponse reports the wallet flag plus the latest operation.
type TrustlineStatusResponse struct {
	WalletAddress    string                      `json:"walletAddress"`
	HasAfriTrustline bool                        `json:"hasAfriTrustline"`
	LatestOperation  *TrustlineOperationResponse `json:"latestOperation,omitempty"`
}

// RefreshBalanceRequest reports an observed on-chain AFRI balance.
type RefreshBalanceRequest struct {
	Balance money.Money `json:"balance" binding:"required"`
}

// WalletResponse is the wire shape of a wallet's cached ledger view.
type WalletResponse struct {
	Address          string      `json:"address"`
	HasAfriTrustline bool        `json:"hasAfriTrustline"`
	AfriBalance      money.Money `json:"afriBalance"`
	LastBalanceCheck *time.Time  `json:"lastBalanceCheck,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// ToWalletResponse converts a domain wallet to its response shape.
func ToWalletResponse(w domain.Wallet) WalletResponse {
	return WalletResponse{
		Address:          w.Address,
		HasAfriTrustline: w.HasAfriTrustline,
		AfriBalance:      w.AfriBalance,
		LastBalanceCheck: w.LastBalanceCheck,
		CreatedAt:        w.CreatedAt,
		UpdatedAt:        w.UpdatedAt,
	}
}

// ToTrustlineOperationResponse converts a domain operation to its response shape.
func ToTrustlineOperationResponse(op domain.TrustlineOperation) TrustlineOperationResponse {
	return TrustlineOperationResponse{
		ID:            op.ID,
		WalletAddress: op.WalletAddress,
		Status:        string(op.Status),
		ChainTxHash:   op.ChainTxHash,
		ErrorMessage:  op.ErrorMessage,
		RetryCount:    op.RetryCount,
		CreatedAt:     op.CreatedAt,
		UpdatedAt:     op.UpdatedAt,
	}
}
