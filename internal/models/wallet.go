package models

import (
	"time"

	"github.com/afriramp/afri_ramp_app/pkg/money"
)

// Wallet mirrors one row of the wallets table.
type Wallet struct {
	Address          string      `json:"address"`
	HasAfriTrustline bool        `json:"hasAfriTrustline"`
	AfriBalance      money.Money `json:"afriBalance"`
	LastBalanceCheck *time.Time  `json:"lastBalanceCheck"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}
