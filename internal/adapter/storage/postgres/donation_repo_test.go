package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"hopechain/internal/core/domain"
	"hopechain/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDonation(campaignID uuid.UUID) *domain.Donation {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Donation{
		ID:            uuid.New(),
		CampaignID:    campaignID,
		DonorWallet:   "0xDonor00000000000000000000000000000000001",
		Amount:        7500,
		TxRef:         "0xabc123def456",
		PaymentMethod: domain.PaymentMethodCrypto,
		CreatedAt:     now,
	}
}

func donationColumns() []string {
	return []string{"id", "campaign_id", "donor_wallet", "amount", "tx_ref", "payment_method", "created_at"}
}

func donationRow(d *domain.Donation) *pgxmock.Rows {
	return pgxmock.NewRows(donationColumns()).AddRow(
		d.ID, d.CampaignID, d.DonorWallet, d.Amount, d.TxRef, d.PaymentMethod, d.CreatedAt,
	)
}

func TestDonationRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)
	d := newTestDonation(uuid.New())

	mock.ExpectExec("INSERT INTO donations").
		WithArgs(d.ID, d.CampaignID, d.DonorWallet, d.Amount, d.TxRef, d.PaymentMethod, d.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Create(context.Background(), d)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepo_Create_DuplicateTxRef(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)
	d := newTestDonation(uuid.New())

	mock.ExpectExec("INSERT INTO donations").
		WithArgs(d.ID, d.CampaignID, d.DonorWallet, d.Amount, d.TxRef, d.PaymentMethod, d.CreatedAt).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "donations_tx_ref_key"})

	err = repo.Create(context.Background(), d)
	assert.ErrorIs(t, err, ports.ErrDuplicateTxRef)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepo_Create_OtherError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)
	d := newTestDonation(uuid.New())

	mock.ExpectExec("INSERT INTO donations").
		WithArgs(d.ID, d.CampaignID, d.DonorWallet, d.Amount, d.TxRef, d.PaymentMethod, d.CreatedAt).
		WillReturnError(errors.New("connection reset"))

	err = repo.Create(context.Background(), d)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrDuplicateTxRef)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepo_GetByTxRef(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)
	d := newTestDonation(uuid.New())

	mock.ExpectQuery("SELECT .+ FROM donations WHERE tx_ref").
		WithArgs(d.TxRef).
		WillReturnRows(donationRow(d))

	result, err := repo.GetByTxRef(context.Background(), d.TxRef)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, d.ID, result.ID)
	assert.Equal(t, d.Amount, result.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepo_GetByTxRef_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM donations WHERE tx_ref").
		WithArgs("0xmissing").
		WillReturnRows(pgxmock.NewRows(donationColumns()))

	result, err := repo.GetByTxRef(context.Background(), "0xmissing")
	assert.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepo_ListByDonor(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)
	d := newTestDonation(uuid.New())

	rows := pgxmock.NewRows(append(donationColumns(), "title")).AddRow(
		d.ID, d.CampaignID, d.DonorWallet, d.Amount, d.TxRef, d.PaymentMethod, d.CreatedAt,
		"Flood Relief Fund",
	)
	mock.ExpectQuery("SELECT .+ FROM donations d").
		WithArgs(d.DonorWallet).
		WillReturnRows(rows)

	result, err := repo.ListByDonor(context.Background(), d.DonorWallet)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, d.TxRef, result[0].TxRef)
	assert.Equal(t, "Flood Relief Fund", result[0].CampaignTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepo_SumByCampaign(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)
	campaignID := uuid.New()

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(campaignID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(75)))

	sum, err := repo.SumByCampaign(context.Background(), campaignID)
	require.NoError(t, err)
	assert.Equal(t, int64(75), sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationRepo_SumByCampaign_NoDonations(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewDonationRepo(mock)
	campaignID := uuid.New()

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs(campaignID).
		WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(int64(0)))

	sum, err := repo.SumByCampaign(context.Background(), campaignID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}
