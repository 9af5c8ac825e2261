package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"hopechain/internal/core/domain"
	"hopechain/internal/core/ports"
	"hopechain/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const confirmationTTL = 24 * time.Hour

// chainDonateOp is the ledger gateway operation for a donation transfer.
const chainDonateOp = "donate"

// DonationServiceImpl implements ports.DonationService. It owns the two-phase
// donate flow: the external ledger commits first, the local ledger second,
// and the seam between the two phases is surfaced to callers rather than
// papered over.
type DonationServiceImpl struct {
	donationRepo ports.DonationRepository
	campaignRepo ports.CampaignRepository
	chainClient  ports.ChainClient
	confirmCache ports.ConfirmationCache
	log          zerolog.Logger
}

// NewDonationService creates a new DonationServiceImpl.
func NewDonationService(
	donationRepo ports.DonationRepository,
	campaignRepo ports.CampaignRepository,
	chainClient ports.ChainClient,
	confirmCache ports.ConfirmationCache,
	log zerolog.Logger,
) *DonationServiceImpl {
	return &DonationServiceImpl{
		donationRepo: donationRepo,
		campaignRepo: campaignRepo,
		chainClient:  chainClient,
		confirmCache: confirmCache,
		log:          log,
	}
}

// Donate runs the full two-phase flow.
//
// Phase order is fixed: validate, submit to the external ledger, then record
// locally. Validation failures stop everything before any money moves. An
// external failure means no donation happened anywhere. A local failure after
// external success is the one genuinely bad seam: money moved but the record
// is missing, so the error carries the transaction reference the caller needs
// to retry the record step.
func (s *DonationServiceImpl) Donate(ctx context.Context, identity domain.Identity, req ports.DonateRequest) (*domain.Donation, error) {
	if err := s.validateDonation(ctx, req.CampaignID, req.Amount, req.PaymentMethod); err != nil {
		return nil, err
	}

	method := req.PaymentMethod
	var txRef string
	if method.RequiresChain() {
		ref, err := s.chainClient.Submit(ctx, chainDonateOp,
			[]string{req.CampaignID.String(), identity.Wallet},
			req.Amount,
		)
		if err != nil {
			s.log.Warn().Err(err).
				Str("campaign_id", req.CampaignID.String()).
				Int64("amount", req.Amount).
				Msg("ledger submission failed, nothing recorded")
			return nil, apperror.ErrChainSubmission(err)
		}
		txRef = ref
	} else {
		txRef = domain.SyntheticTxRef()
	}

	donation, err := s.record(ctx, identity, req.CampaignID, req.Amount, txRef, method)
	if err != nil {
		// External leg already committed. Never retry the chain; surface
		// the reference so the record step can be retried on its own.
		s.log.Error().Err(err).
			Str("tx_ref", txRef).
			Str("campaign_id", req.CampaignID.String()).
			Msg("donation confirmed on ledger but local record failed")
		return nil, apperror.ErrRecordAfterConfirm(txRef, err)
	}
	return donation, nil
}

// RecordConfirmed durably appends a donation that was already confirmed
// externally. Safe to call any number of times with the same reference:
// exactly one row results, and every call returns it.
func (s *DonationServiceImpl) RecordConfirmed(ctx context.Context, identity domain.Identity, req ports.RecordConfirmedRequest) (*domain.Donation, error) {
	if err := s.validateDonation(ctx, req.CampaignID, req.Amount, req.PaymentMethod); err != nil {
		return nil, err
	}

	txRef := req.TxRef
	if txRef == "" {
		if req.PaymentMethod.RequiresChain() {
			return nil, apperror.Validation("tx_ref is required for crypto donations")
		}
		txRef = domain.SyntheticTxRef()
	}

	donation, err := s.record(ctx, identity, req.CampaignID, req.Amount, txRef, req.PaymentMethod)
	if err != nil {
		return nil, apperror.ErrRecordAfterConfirm(txRef, err)
	}
	return donation, nil
}

// ListByDonor returns the calling donor's history, newest first.
func (s *DonationServiceImpl) ListByDonor(ctx context.Context, identity domain.Identity) ([]domain.DonationWithCampaign, error) {
	donations, err := s.donationRepo.ListByDonor(ctx, identity.Wallet)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list donations: %w", err))
	}
	return donations, nil
}

// validateDonation is the fail-fast gate: nothing may reach the external
// ledger until the donation is known to be recordable.
func (s *DonationServiceImpl) validateDonation(ctx context.Context, campaignID uuid.UUID, amount int64, method domain.PaymentMethod) error {
	if amount <= 0 {
		return apperror.ErrInvalidAmount()
	}
	if !method.Valid() {
		return apperror.Validation("unknown payment method")
	}

	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("get campaign: %w", err))
	}
	if campaign == nil {
		return apperror.ErrNotFound("campaign")
	}
	return nil
}

// record is the idempotent local append, layered like the confirmation path
// everywhere else in the system: Redis fast path, then authoritative DB
// lookup, then insert with the unique index as the final arbiter of races.
func (s *DonationServiceImpl) record(ctx context.Context, identity domain.Identity, campaignID uuid.UUID, amount int64, txRef string, method domain.PaymentMethod) (*domain.Donation, error) {
	// Layer 1: Redis confirmation check
	cached, err := s.confirmCache.Get(ctx, txRef)
	if err != nil {
		s.log.Warn().Err(err).Str("tx_ref", txRef).Msg("redis confirmation check failed, falling through to DB")
	}
	if cached != nil {
		return s.unmarshalCachedDonation(cached)
	}

	// Layer 2: DB check
	existing, err := s.donationRepo.GetByTxRef(ctx, txRef)
	if err != nil {
		return nil, fmt.Errorf("db confirmation check: %w", err)
	}
	if existing != nil {
		s.cacheDonation(ctx, existing)
		return existing, nil
	}

	donation := &domain.Donation{
		ID:            uuid.New(),
		CampaignID:    campaignID,
		DonorWallet:   identity.Wallet,
		Amount:        amount,
		TxRef:         txRef,
		PaymentMethod: method,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.donationRepo.Create(ctx, donation); err != nil {
		if errors.Is(err, ports.ErrDuplicateTxRef) {
			// Lost the race to a concurrent retry; the committed row wins.
			winner, getErr := s.donationRepo.GetByTxRef(ctx, txRef)
			if getErr != nil {
				return nil, fmt.Errorf("fetch winning donation: %w", getErr)
			}
			if winner == nil {
				return nil, fmt.Errorf("duplicate tx_ref %s but no row found", txRef)
			}
			s.cacheDonation(ctx, winner)
			return winner, nil
		}
		return nil, fmt.Errorf("insert donation: %w", err)
	}

	s.cacheDonation(ctx, donation)

	s.log.Info().
		Str("donation_id", donation.ID.String()).
		Str("campaign_id", campaignID.String()).
		Str("tx_ref", txRef).
		Str("amount", strconv.FormatInt(amount, 10)).
		Msg("donation recorded")

	return donation, nil
}

// cacheDonation is best-effort: a cache write failure never fails the flow.
func (s *DonationServiceImpl) cacheDonation(ctx context.Context, d *domain.Donation) {
	payload, err := json.Marshal(d)
	if err != nil {
		s.log.Warn().Err(err).Str("tx_ref", d.TxRef).Msg("marshal donation for cache failed")
		return
	}
	if err := s.confirmCache.Set(ctx, d.TxRef, payload, confirmationTTL); err != nil {
		s.log.Warn().Err(err).Str("tx_ref", d.TxRef).Msg("confirmation cache write failed")
	}
}

func (s *DonationServiceImpl) unmarshalCachedDonation(data []byte) (*domain.Donation, error) {
	var d domain.Donation
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unmarshal cached donation: %w", err)
	}
	return &d, nil
}
