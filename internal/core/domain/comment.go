package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is an append-only note left on a campaign by any authenticated user.
type Comment struct {
	ID           uuid.UUID `json:"id"`
	CampaignID   uuid.UUID `json:"campaign_id"`
	AuthorID     uuid.UUID `json:"author_id"`
	AuthorWallet string    `json:"author_wallet"`
	AuthorRole   Role      `json:"author_role"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
}
