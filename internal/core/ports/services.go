package ports

import (
	"context"
	"time"

	"hopechain/internal/core/domain"

	"github.com/google/uuid"
)

// TokenService validates (and, for tooling and tests, mints) the opaque bearer
// credential. Credential issuance to end users is an external concern.
type TokenService interface {
	Generate(identity domain.Identity, ttl time.Duration) (string, time.Time, error)
	Validate(tokenString string) (*domain.Identity, error)
}

// ChainClient is the external ledger collaborator. Submit hands a value
// transfer to the ledger and returns its transaction reference, or an error
// when the ledger rejected it. The core never retries a failed submission.
type ChainClient interface {
	Submit(ctx context.Context, operation string, args []string, value int64) (string, error)
}

// ConfirmationCache is the Redis fast path for confirmed-donation retries:
// it maps an external transaction reference to the already-recorded donation
// so a retry can be answered without touching the database.
type ConfirmationCache interface {
	Get(ctx context.Context, txRef string) ([]byte, error) // Returns cached donation JSON or nil
	Set(ctx context.Context, txRef string, value []byte, ttl time.Duration) error
}

// --- Service Ports (Business Logic) ---

// CampaignService is the campaign store: creation and raised-aware reads.
type CampaignService interface {
	Create(ctx context.Context, identity domain.Identity, req CreateCampaignRequest) (*domain.Campaign, error)
	List(ctx context.Context) ([]domain.CampaignWithRaised, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.CampaignWithRaised, error)
	ListByOwner(ctx context.Context, identity domain.Identity) ([]domain.CampaignWithRaised, error)
	Raised(ctx context.Context, id uuid.UUID) (int64, error)
}

// CreateCampaignRequest holds validated input for campaign creation.
type CreateCampaignRequest struct {
	Title          string
	Description    string
	Goal           int64
	Category       string
	PeopleAffected int
	CampaignType   domain.CampaignType
}

// DonationService reconciles the two-phase donate flow across the external
// ledger and the local donation ledger.
type DonationService interface {
	// Donate validates, submits the value transfer to the external ledger,
	// then records the confirmed transfer locally. An external failure means
	// nothing happened; a local failure after external success is surfaced
	// as a distinct error carrying the transaction reference.
	Donate(ctx context.Context, identity domain.Identity, req DonateRequest) (*domain.Donation, error)
	// RecordConfirmed durably appends an externally confirmed donation.
	// Idempotent on the transaction reference: a duplicate is a no-op that
	// returns the donation already recorded.
	RecordConfirmed(ctx context.Context, identity domain.Identity, req RecordConfirmedRequest) (*domain.Donation, error)
	ListByDonor(ctx context.Context, identity domain.Identity) ([]domain.DonationWithCampaign, error)
}

// DonateRequest holds validated input for the two-phase donate flow.
type DonateRequest struct {
	CampaignID    uuid.UUID
	Amount        int64
	PaymentMethod domain.PaymentMethod
}

// RecordConfirmedRequest holds input for the idempotent local record step.
// TxRef may be empty for donations without an external leg; a synthetic
// reference is assigned in that case.
type RecordConfirmedRequest struct {
	CampaignID    uuid.UUID
	Amount        int64
	TxRef         string
	PaymentMethod domain.PaymentMethod
}

// AuditService records audit entries for successful mutating operations.
// Log is fire-and-forget: it never blocks the request path and never fails it.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// CommentService posts and lists campaign comments.
type CommentService interface {
	Post(ctx context.Context, identity domain.Identity, campaignID uuid.UUID, text string) (*domain.Comment, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Comment, error)
}
