package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod represents how a donation was funded.
type PaymentMethod string

const (
	PaymentMethodCrypto PaymentMethod = "CRYPTO"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodBank   PaymentMethod = "BANK"
)

// Valid reports whether the payment method is one the platform accepts.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCrypto, PaymentMethodCard, PaymentMethodBank:
		return true
	}
	return false
}

// RequiresChain reports whether this payment method moves value through the
// external ledger before the donation can be recorded.
func (m PaymentMethod) RequiresChain() bool {
	return m == PaymentMethodCrypto
}

// Donation is one immutable entry in the donation ledger. Rows are append-only:
// never mutated, never deleted. TxRef is the external transaction reference and
// carries a uniqueness constraint, which is what makes retries of the record
// step idempotent.
type Donation struct {
	ID            uuid.UUID     `json:"id"`
	CampaignID    uuid.UUID     `json:"campaign_id"`
	DonorWallet   string        `json:"donor_wallet"`
	Amount        int64         `json:"amount"` // In smallest currency unit; always > 0
	TxRef         string        `json:"tx_ref"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	CreatedAt     time.Time     `json:"created_at"`
}

// DonationWithCampaign joins a donation with the title of the campaign it
// funded, for donor-facing listings.
type DonationWithCampaign struct {
	Donation
	CampaignTitle string `json:"campaign_title"`
}

// SyntheticTxRef builds a reference for donations that never touched the
// external ledger, so the uniqueness constraint covers them too.
func SyntheticTxRef() string {
	return "off-" + uuid.New().String()
}
