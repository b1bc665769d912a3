package models

import "time"

// TrustlineOperation mirrors one row of the trustline_operations table. A
// partial unique index on wallet_address WHERE status = 'pending' makes the
// insert itself the concurrency gate.
type TrustlineOperation struct {
	ID            string     `json:"id"`
	WalletAddress string     `json:"walletAddress"`
	ChainTxHash   *string    `json:"chainTxHash"`
	Status        string     `json:"status"`
	ErrorMessage  *string    `json:"errorMessage"`
	RetryCount    int        `json:"retryCount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
