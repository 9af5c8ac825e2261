package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hopechain/internal/core/domain"
	"hopechain/internal/core/ports"
	"hopechain/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CampaignServiceImpl implements ports.CampaignService.
type CampaignServiceImpl struct {
	campaignRepo ports.CampaignRepository
	log          zerolog.Logger
}

// NewCampaignService creates a new CampaignServiceImpl.
func NewCampaignService(campaignRepo ports.CampaignRepository, log zerolog.Logger) *CampaignServiceImpl {
	return &CampaignServiceImpl{
		campaignRepo: campaignRepo,
		log:          log,
	}
}

// Create stores a new campaign owned by the calling identity's wallet.
// Only the ngo role reaches this point; the route gate enforces it.
func (s *CampaignServiceImpl) Create(ctx context.Context, identity domain.Identity, req ports.CreateCampaignRequest) (*domain.Campaign, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validation("title is required")
	}
	if req.Goal <= 0 {
		return nil, apperror.Validation("goal must be a positive amount")
	}
	if req.PeopleAffected < 0 {
		return nil, apperror.Validation("people_affected cannot be negative")
	}

	campaignType := req.CampaignType
	if campaignType == "" {
		campaignType = domain.CampaignTypeGeneral
	}
	if !campaignType.Valid() {
		return nil, apperror.Validation("unknown campaign type")
	}

	campaign := &domain.Campaign{
		ID:             uuid.New(),
		Title:          title,
		Description:    strings.TrimSpace(req.Description),
		Goal:           req.Goal,
		Category:       strings.TrimSpace(req.Category),
		PeopleAffected: req.PeopleAffected,
		OwnerWallet:    identity.Wallet,
		CampaignType:   campaignType,
		CreatedAt:      time.Now().UTC(),
	}

	if err := s.campaignRepo.Create(ctx, campaign); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create campaign: %w", err))
	}

	s.log.Info().
		Str("campaign_id", campaign.ID.String()).
		Str("owner_wallet", campaign.OwnerWallet).
		Int64("goal", campaign.Goal).
		Msg("campaign created")

	return campaign, nil
}

// List returns every campaign with its live raised aggregate.
func (s *CampaignServiceImpl) List(ctx context.Context) ([]domain.CampaignWithRaised, error) {
	campaigns, err := s.campaignRepo.List(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list campaigns: %w", err))
	}
	return campaigns, nil
}

// Get returns one campaign with its live raised aggregate.
func (s *CampaignServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.CampaignWithRaised, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get campaign: %w", err))
	}
	if campaign == nil {
		return nil, apperror.ErrNotFound("campaign")
	}
	return campaign, nil
}

// ListByOwner returns the calling identity's own campaigns.
func (s *CampaignServiceImpl) ListByOwner(ctx context.Context, identity domain.Identity) ([]domain.CampaignWithRaised, error) {
	campaigns, err := s.campaignRepo.ListByOwner(ctx, identity.Wallet)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list campaigns by owner: %w", err))
	}
	return campaigns, nil
}

// Raised returns the raised total for one campaign. The campaign must exist;
// an unknown id is a not-found, not a zero.
func (s *CampaignServiceImpl) Raised(ctx context.Context, id uuid.UUID) (int64, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("get campaign: %w", err))
	}
	if campaign == nil {
		return 0, apperror.ErrNotFound("campaign")
	}
	return campaign.Raised, nil
}
