package postgres

import (
	"context"
	"errors"
	"fmt"

	"hopechain/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CampaignRepo implements ports.CampaignRepository.
type CampaignRepo struct {
	pool Pool
}

// NewCampaignRepo creates a new CampaignRepo.
func NewCampaignRepo(pool Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

// campaignWithRaisedSelect joins campaigns with the live donation aggregate.
// Raised is computed from committed rows only; it is never stored.
const campaignWithRaisedSelect = `SELECT c.id, c.title, c.description, c.goal, c.category,
	c.people_affected, c.owner_wallet, c.campaign_type, c.created_at,
	COALESCE(SUM(d.amount), 0) AS raised
	FROM campaigns c
	LEFT JOIN donations d ON d.campaign_id = c.id`

// Create inserts a new campaign row.
func (r *CampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	query := `INSERT INTO campaigns (id, title, description, goal, category, people_affected,
		owner_wallet, campaign_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.Title, c.Description, c.Goal, c.Category,
		c.PeopleAffected, c.OwnerWallet, c.CampaignType, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

// GetByID fetches one campaign with its derived raised amount.
// Returns nil, nil when the id is unknown.
func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CampaignWithRaised, error) {
	query := campaignWithRaisedSelect + ` WHERE c.id = $1 GROUP BY c.id`

	return r.scanCampaign(r.pool.QueryRow(ctx, query, id))
}

// List fetches every campaign joined with its live raised aggregate.
// Order is stable within a call: newest first, id as tiebreaker.
func (r *CampaignRepo) List(ctx context.Context) ([]domain.CampaignWithRaised, error) {
	query := campaignWithRaisedSelect + ` GROUP BY c.id ORDER BY c.created_at DESC, c.id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	return r.collectCampaigns(rows)
}

// ListByOwner fetches the campaigns created by one owner wallet.
func (r *CampaignRepo) ListByOwner(ctx context.Context, ownerWallet string) ([]domain.CampaignWithRaised, error) {
	query := campaignWithRaisedSelect + ` WHERE c.owner_wallet = $1 GROUP BY c.id ORDER BY c.created_at DESC, c.id`

	rows, err := r.pool.Query(ctx, query, ownerWallet)
	if err != nil {
		return nil, fmt.Errorf("list campaigns by owner: %w", err)
	}
	defer rows.Close()

	return r.collectCampaigns(rows)
}

func (r *CampaignRepo) collectCampaigns(rows pgx.Rows) ([]domain.CampaignWithRaised, error) {
	var campaigns []domain.CampaignWithRaised
	for rows.Next() {
		c := domain.CampaignWithRaised{}
		err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.Goal, &c.Category,
			&c.PeopleAffected, &c.OwnerWallet, &c.CampaignType, &c.CreatedAt,
			&c.Raised,
		)
		if err != nil {
			return nil, fmt.Errorf("scan campaign row: %w", err)
		}
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaign rows: %w", err)
	}
	return campaigns, nil
}

// scanCampaign is a helper to scan a single row into a CampaignWithRaised.
func (r *CampaignRepo) scanCampaign(row pgx.Row) (*domain.CampaignWithRaised, error) {
	c := &domain.CampaignWithRaised{}
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.Goal, &c.Category,
		&c.PeopleAffected, &c.OwnerWallet, &c.CampaignType, &c.CreatedAt,
		&c.Raised,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan campaign: %w", err)
	}
	return c, nil
}
