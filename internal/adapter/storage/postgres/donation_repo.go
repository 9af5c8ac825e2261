package postgres

import (
	"context"
	"errors"
	"fmt"

	"hopechain/internal/core/domain"
	"hopechain/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint breaches.
const pgUniqueViolation = "23505"

// DonationRepo implements ports.DonationRepository on the append-only
// donations table. The unique index on tx_ref is what makes concurrent
// retries of the record step collapse into a single row.
type DonationRepo struct {
	pool Pool
}

// NewDonationRepo creates a new DonationRepo.
func NewDonationRepo(pool Pool) *DonationRepo {
	return &DonationRepo{pool: pool}
}

// Create appends one donation. ports.ErrDuplicateTxRef signals that a row with
// the same tx_ref was committed first (by this caller's earlier attempt or a
// concurrent retry).
func (r *DonationRepo) Create(ctx context.Context, d *domain.Donation) error {
	query := `INSERT INTO donations (id, campaign_id, donor_wallet, amount, tx_ref, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		d.ID, d.CampaignID, d.DonorWallet, d.Amount, d.TxRef, d.PaymentMethod, d.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ports.ErrDuplicateTxRef
		}
		return fmt.Errorf("insert donation: %w", err)
	}
	return nil
}

// GetByTxRef fetches a donation by its external transaction reference.
// Returns nil, nil when no donation carries the reference.
func (r *DonationRepo) GetByTxRef(ctx context.Context, txRef string) (*domain.Donation, error) {
	query := `SELECT id, campaign_id, donor_wallet, amount, tx_ref, payment_method, created_at
		FROM donations WHERE tx_ref = $1`

	d := &domain.Donation{}
	err := r.pool.QueryRow(ctx, query, txRef).Scan(
		&d.ID, &d.CampaignID, &d.DonorWallet, &d.Amount, &d.TxRef, &d.PaymentMethod, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan donation: %w", err)
	}
	return d, nil
}

// ListByDonor fetches a donor's donations joined with campaign titles,
// newest first.
func (r *DonationRepo) ListByDonor(ctx context.Context, donorWallet string) ([]domain.DonationWithCampaign, error) {
	query := `SELECT d.id, d.campaign_id, d.donor_wallet, d.amount, d.tx_ref, d.payment_method, d.created_at, c.title
		FROM donations d
		JOIN campaigns c ON c.id = d.campaign_id
		WHERE d.donor_wallet = $1
		ORDER BY d.created_at DESC, d.id`

	rows, err := r.pool.Query(ctx, query, donorWallet)
	if err != nil {
		return nil, fmt.Errorf("list donations by donor: %w", err)
	}
	defer rows.Close()

	var donations []domain.DonationWithCampaign
	for rows.Next() {
		d := domain.DonationWithCampaign{}
		err := rows.Scan(
			&d.ID, &d.CampaignID, &d.DonorWallet, &d.Amount, &d.TxRef, &d.PaymentMethod, &d.CreatedAt,
			&d.CampaignTitle,
		)
		if err != nil {
			return nil, fmt.Errorf("scan donation row: %w", err)
		}
		donations = append(donations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate donation rows: %w", err)
	}
	return donations, nil
}

// SumByCampaign computes the live raised aggregate for one campaign.
// Unknown and donation-less campaigns both aggregate to 0.
func (r *DonationRepo) SumByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM donations WHERE campaign_id = $1`

	var sum int64
	if err := r.pool.QueryRow(ctx, query, campaignID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum donations: %w", err)
	}
	return sum, nil
}
