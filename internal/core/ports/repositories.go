package ports

import (
	"context"
	"errors"

	"hopechain/internal/core/domain"

	"github.com/google/uuid"
)

// ErrDuplicateTxRef is returned by DonationRepository.Create when the ledger
// already holds a donation with the same external transaction reference.
var ErrDuplicateTxRef = errors.New("duplicate transaction reference")

// CampaignRepository defines persistence operations for campaigns.
// Raised figures are always computed by join/aggregate over the donations
// table at read time; no method stores a raised total.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CampaignWithRaised, error)
	List(ctx context.Context) ([]domain.CampaignWithRaised, error)
	ListByOwner(ctx context.Context, ownerWallet string) ([]domain.CampaignWithRaised, error)
}

// DonationRepository defines persistence for the append-only donation ledger.
type DonationRepository interface {
	// Create appends one donation. It returns ErrDuplicateTxRef when a row
	// with the same TxRef already exists.
	Create(ctx context.Context, donation *domain.Donation) error
	GetByTxRef(ctx context.Context, txRef string) (*domain.Donation, error)
	ListByDonor(ctx context.Context, donorWallet string) ([]domain.DonationWithCampaign, error)
	// SumByCampaign returns the live aggregate: 0 for an unknown or
	// donation-less campaign, never negative.
	SumByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error)
}

// CommentRepository defines persistence for campaign comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Comment, error)
}

// AuditRepository persists the audit trail of mutating operations.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}
