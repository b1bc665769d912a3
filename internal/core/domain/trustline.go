package domain

import "time"

// TrustlineStatus is a state in the trustline-establishment lifecycle.
type TrustlineStatus string

const (
	TrustlinePending   TrustlineStatus = "pending"
	TrustlineConfirmed TrustlineStatus = "confirmed"
	TrustlineFailed    TrustlineStatus = "failed"
)

// IsTerminal reports whether the operation has resolved.
func (s TrustlineStatus) IsTerminal() bool {
	return s == TrustlineConfirmed || s == TrustlineFailed
}

// TrustlineOperation tracks one attempt to establish the AFRI trustline for
// a wallet. At most one pending row may exist per wallet; a wallet may
// accumulate any number of historical confirmed/failed rows.
type TrustlineOperation struct {
	ID            string          `json:"id"`
	WalletAddress string          `json:"walletAddress"`
	ChainTxHash   *string         `json:"chainTxHash,omitempty"`
	Status        TrustlineStatus `json:"status"`
	ErrorMessage  *string         `json:"errorMessage,omitempty"`
	RetryCount    int             `json:"retryCount"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
