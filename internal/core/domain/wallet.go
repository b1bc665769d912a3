package domain

import (
	"time"

	"github.com/afriramp/afri_ramp_app/pkg/money"
)

// Wallet tracks per-wallet flags and a read-side balance cache. The
// afri_conversions audit trail is authoritative for money; AfriBalance is a
// convenience cache refreshed by callers and never used for money math.
type Wallet struct {
	Address          string      `json:"address"`
	HasAfriTrustline bool        `json:"hasAfriTrustline"`
	AfriBalance      money.Money `json:"afriBalance"`
	LastBalanceCheck *time.Time  `json:"lastBalanceCheck,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}
