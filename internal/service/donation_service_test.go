package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hopechain/internal/core/domain"
	"hopechain/internal/core/ports"
	"hopechain/internal/core/ports/mocks"
	"hopechain/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type donationDeps struct {
	donationRepo *mocks.MockDonationRepository
	campaignRepo *mocks.MockCampaignRepository
	chainClient  *mocks.MockChainClient
	confirmCache *mocks.MockConfirmationCache
}

func newDonationService(t *testing.T) (*DonationServiceImpl, donationDeps) {
	ctrl := gomock.NewController(t)
	deps := donationDeps{
		donationRepo: mocks.NewMockDonationRepository(ctrl),
		campaignRepo: mocks.NewMockCampaignRepository(ctrl),
		chainClient:  mocks.NewMockChainClient(ctrl),
		confirmCache: mocks.NewMockConfirmationCache(ctrl),
	}
	svc := NewDonationService(deps.donationRepo, deps.campaignRepo, deps.chainClient, deps.confirmCache, zerolog.Nop())
	return svc, deps
}

func donorIdentity() domain.Identity {
	return domain.Identity{
		UserID: uuid.New(),
		Role:   domain.RoleDonor,
		Wallet: "0xDonor00000000000000000000000000000000001",
	}
}

func existingCampaign(id uuid.UUID) *domain.CampaignWithRaised {
	return &domain.CampaignWithRaised{
		Campaign: domain.Campaign{
			ID:    id,
			Title: "Flood Relief Fund",
			Goal:  500000,
		},
	}
}

func TestDonate_Success(t *testing.T) {
	svc, deps := newDonationService(t)
	identity := donorIdentity()
	campaignID := uuid.New()

	deps.campaignRepo.EXPECT().GetByID(gomock.Any(), campaignID).Return(existingCampaign(campaignID), nil)
	deps.chainClient.EXPECT().
		Submit(gomock.Any(), "donate", []string{campaignID.String(), identity.Wallet}, int64(7500)).
		Return("0xabc123", nil)
	deps.confirmCache.EXPECT().Get(gomock.Any(), "0xabc123").Return(nil, nil)
	deps.donationRepo.EXPECT().GetByTxRef(gomock.Any(), "0xabc123").Return(nil, nil)
	deps.donationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	deps.confirmCache.EXPECT().Set(gomock.Any(), "0xabc123", gomock.Any(), gomock.Any()).Return(nil)

	donation, err := svc.Donate(context.Background(), identity, ports.DonateRequest{
		CampaignID:    campaignID,
		Amount:        7500,
		PaymentMethod: domain.PaymentMethodCrypto,
	})
	require.NoError(t, err)
	require.NotNil(t, donation)
	assert.Equal(t, "0xabc123", donation.TxRef)
	assert.Equal(t, int64(7500), donation.Amount)
	assert.Equal(t, identity.Wallet, donation.DonorWallet)
}

func TestDonate_InvalidAmountNeverReachesLedger(t *testing.T) {
	svc, _ := newDonationService(t)
	// No expectations on chainClient or repos: a non-positive amount must
	// fail before any collaborator is touched.

	for _, amount := range []int64{0, -1, -5000} {
		_, err := svc.Donate(context.Background(), donorIdentity(), ports.DonateRequest{
			CampaignID:    uuid.New(),
			Amount:        amount,
			PaymentMethod: domain.PaymentMethodCrypto,
		})
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "VAL_001", appErr.Code)
	}
}

func TestDonate_UnknownCampaign(t *testing.T) {
	svc, deps := newDonationService(t)
	campaignID := uuid.New()

	deps.campaignRepo.EXPECT().GetByID(gomock.Any(), campaignID).Return(nil, nil)

	_, err := svc.Donate(context.Background(), donorIdentity(), ports.DonateRequest{
		CampaignID:    campaignID,
		Amount:        100,
		PaymentMethod: domain.PaymentMethodCrypto,
	})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "RES_001", appErr.Code)
}

func TestDonate_LedgerFailureRecordsNothing(t *testing.T) {
	svc, deps := newDonationService(t)
	identity := donorIdentity()
	campaignID := uuid.New()

	deps.campaignRepo.EXPECT().GetByID(gomock.Any(), campaignID).Return(existingCampaign(campaignID), nil)
	deps.chainClient.EXPECT().
		Submit(gomock.Any(), "donate", gomock.Any(), int64(100)).
		Return("", errors.New("insufficient funds"))
	// No donationRepo.Create expectation: nothing may be persisted.

	_, err := svc.Donate(context.Background(), identity, ports.DonateRequest{
		CampaignID:    campaignID,
		Amount:        100,
		PaymentMethod: domain.PaymentMethodCrypto,
	})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CHN_001", appErr.Code)
}

func TestDonate_LocalFailureAfterLedgerSuccess(t *testing.T) {
	svc, deps := newDonationService(t)
	identity := donorIdentity()
	campaignID := uuid.New()

	deps.campaignRepo.EXPECT().GetByID(gomock.Any(), campaignID).Return(existingCampaign(campaignID), nil)
	deps.chainClient.EXPECT().
		Submit(gomock.Any(), "donate", gomock.Any(), int64(100)).
		Return("0xconfirmed", nil)
	deps.confirmCache.EXPECT().Get(gomock.Any(), "0xconfirmed").Return(nil, nil)
	deps.donationRepo.EXPECT().GetByTxRef(gomock.Any(), "0xconfirmed").Return(nil, nil)
	deps.donationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	_, err := svc.Donate(context.Background(), identity, ports.DonateRequest{
		CampaignID:    campaignID,
		Amount:        100,
		PaymentMethod: domain.PaymentMethodCrypto,
	})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CHN_002", appErr.Code)
	// The seam error must carry the reference so the record step can be retried.
	assert.Contains(t, appErr.Message, "0xconfirmed")
}

func TestDonate_NonCryptoSkipsLedger(t *testing.T) {
	svc, deps := newDonationService(t)
	identity := donorIdentity()
	campaignID := uuid.New()

	deps.campaignRepo.EXPECT().GetByID(gomock.Any(), campaignID).Return(existingCampaign(campaignID), nil)
	// No chainClient expectation: card donations never touch the ledger.
	deps.confirmCache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
	deps.donationRepo.EXPECT().GetByTxRef(gomock.Any(), gomock.Any()).Return(nil, nil)
	deps.donationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	deps.confirmCache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	donation, err := svc.Donate(context.Background(), identity, ports.DonateRequest{
		CampaignID:    campaignID,
		Amount:        100,
		PaymentMethod: domain.PaymentMethodCard,
	})
	require.NoError(t, err)
	assert.True(t, len(donation.TxRef) > 4 && donation.TxRef[:4] == "off-")
}

func TestRecordConfirmed_CacheHitSkipsDB(t *testing.T) {
	svc, deps := newDonationService(t)
	identity := donorIdentity()
	campaignID := uuid.New()

	recorded := &domain.Donation{
		ID:            uuid.New(),
		CampaignID:    campaignID,
		DonorWallet:   identity.Wallet,
		Amount:        30,
		TxRef:         "tx123",
		PaymentMethod: domain.PaymentMethodCrypto,
		CreatedAt:     time.Now().UTC(),
	}
	cached, err := json.Marshal(recorded)
	require.NoError(t, err)

	deps.campaignRepo.EXPECT().GetByID(gomock.Any(), campaignID).Return(existingCampaign(campaignID), nil)
	deps.confirmCache.EXPECT().Get(gomock.Any(), "tx123").Return(cached, nil)
	// No donationRepo expectations: the cache answers the retry.

	result, err := svc.RecordConfirmed(context.Background(), identity, ports.RecordConfirmedRequest{
		CampaignID:    campaignID,
		Amount:        30,
		TxRef:         "tx123",
		PaymentMethod: domain.PaymentMethodCrypto,
	})
	require.NoError(t, err)
	assert.Equal(t, recorded.ID, result.ID)
	assert.Equal(t, int64(30), result.Amount)
}

func TestRecordConfirmed_DuplicateTxRefIsNoOp(t *testing.T) {
	svc, deps := newDonationService(t)
	identity := donorIdentity()
	campaignID := uuid.New()

	existing := &domain.Donation{
		ID:          uuid.New(),
		CampaignID:  campaignID,
		DonorWallet: identity.Wallet,
		Amount:      30,
		TxRef:       "tx123",
	}

	deps.campaignRepo.EXPECT().GetByID(gomock.Any(), campaignID).Return(existingCampaign(campaignID), nil)
	deps.confirmCache.EXPECT().Get(gomock.Any(), "tx123").Return(nil, nil)
	deps.donationRepo.EXPECT().GetByTxRef(gomock.Any(), "tx123").Return(existing, nil)
	deps.confirmCache.EXPECT().Set(gomock.Any(), "tx123", gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.RecordConfirmed(context.Background(), identity, ports.RecordConfirmedRequest{
		CampaignID:    campaignID,
		Amount:        30,
		TxRef:         "tx123",
		PaymentMethod: domain.PaymentMethodCrypto,
	})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, result.ID, "retry must return the donation already recorded")
}

func TestRecordConfirmed_ConcurrentRetryLosesRaceGracefully(t *testing.T) {
	svc, deps := newDonationService(t)
	identity := donorIdentity()
	campaignID := uuid.New()

	winner := &domain.Donation{
		ID:         uuid.New(),
		CampaignID: campaignID,
		Amount:     30,
		TxRef:      "tx123",
	}

	deps.campaignRepo.EXPECT().GetByID(gomock.Any(), campaignID).Return(existingCampaign(campaignID), nil)
	deps.confirmCache.EXPECT().Get(gomock.Any(), "tx123").Return(nil, nil)
	// First lookup sees nothing, the insert hits the unique index, the
	// second lookup finds the row the concurrent retry committed.
	deps.donationRepo.EXPECT().GetByTxRef(gomock.Any(), "tx123").Return(nil, nil)
	deps.donationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(ports.ErrDuplicateTxRef)
	deps.donationRepo.EXPECT().GetByTxRef(gomock.Any(), "tx123").Return(winner, nil)
	deps.confirmCache.EXPECT().Set(gomock.Any(), "tx123", gomock.Any(), gomock.Any()).Return(nil)

	result, err := svc.RecordConfirmed(context.Background(), identity, ports.RecordConfirmedRequest{
		CampaignID:    campaignID,
		Amount:        30,
		TxRef:         "tx123",
		PaymentMethod: domain.PaymentMethodCrypto,
	})
	require.NoError(t, err)
	assert.Equal(t, winner.ID, result.ID)
}

func TestRecordConfirmed_CacheFailureFallsThroughToDB(t *testing.T) {
	svc, deps := newDonationService(t)
	identity := donorIdentity()
	campaignID := uuid.New()

	deps.campaignRepo.EXPECT().GetByID(gomock.Any(), campaignID).Return(existingCampaign(campaignID), nil)
	deps.confirmCache.EXPECT().Get(gomock.Any(), "tx123").Return(nil, errors.New("redis down"))
	deps.donationRepo.EXPECT().GetByTxRef(gomock.Any(), "tx123").Return(nil, nil)
	deps.donationRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	deps.confirmCache.EXPECT().Set(gomock.Any(), "tx123", gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	result, err := svc.RecordConfirmed(context.Background(), identity, ports.RecordConfirmedRequest{
		CampaignID:    campaignID,
		Amount:        30,
		TxRef:         "tx123",
		PaymentMethod: domain.PaymentMethodCrypto,
	})
	require.NoError(t, err, "cache being down must not fail the record step")
	assert.Equal(t, "tx123", result.TxRef)
}

func TestRecordConfirmed_MissingTxRefForCrypto(t *testing.T) {
	svc, deps := newDonationService(t)
	campaignID := uuid.New()

	deps.campaignRepo.EXPECT().GetByID(gomock.Any(), campaignID).Return(existingCampaign(campaignID), nil)

	_, err := svc.RecordConfirmed(context.Background(), donorIdentity(), ports.RecordConfirmedRequest{
		CampaignID:    campaignID,
		Amount:        30,
		PaymentMethod: domain.PaymentMethodCrypto,
	})
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VAL_001", appErr.Code)
}

func TestListByDonor(t *testing.T) {
	svc, deps := newDonationService(t)
	identity := donorIdentity()

	deps.donationRepo.EXPECT().ListByDonor(gomock.Any(), identity.Wallet).Return([]domain.DonationWithCampaign{
		{Donation: domain.Donation{TxRef: "tx2", Amount: 45}, CampaignTitle: "Flood Relief Fund"},
		{Donation: domain.Donation{TxRef: "tx1", Amount: 30}, CampaignTitle: "Flood Relief Fund"},
	}, nil)

	donations, err := svc.ListByDonor(context.Background(), identity)
	require.NoError(t, err)
	require.Len(t, donations, 2)
	assert.Equal(t, "tx2", donations[0].TxRef)
}
