package postgres

import (
	"context"
	"fmt"

	"hopechain/internal/core/domain"

	"github.com/google/uuid"
)

// CommentRepo implements ports.CommentRepository.
type CommentRepo struct {
	pool Pool
}

// NewCommentRepo creates a new CommentRepo.
func NewCommentRepo(pool Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

func (r *CommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	query := `INSERT INTO comments (id, campaign_id, author_id, author_wallet, author_role, text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.CampaignID, c.AuthorID, c.AuthorWallet, c.AuthorRole, c.Text, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// ListByCampaign fetches a campaign's comments, newest first.
func (r *CommentRepo) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Comment, error) {
	query := `SELECT id, campaign_id, author_id, author_wallet, author_role, text, created_at
		FROM comments WHERE campaign_id = $1
		ORDER BY created_at DESC, id`

	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		c := domain.Comment{}
		err := rows.Scan(&c.ID, &c.CampaignID, &c.AuthorID, &c.AuthorWallet, &c.AuthorRole, &c.Text, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment rows: %w", err)
	}
	return comments, nil
}
