package domain

import (
	"time"

	"github.com/google/uuid"
)

// CampaignType classifies what a campaign raises funds for.
type CampaignType string

const (
	CampaignTypeMedical   CampaignType = "MEDICAL"
	CampaignTypeEducation CampaignType = "EDUCATION"
	CampaignTypeDisaster  CampaignType = "DISASTER"
	CampaignTypeGeneral   CampaignType = "GENERAL"
)

// Valid reports whether the campaign type is a known classification.
func (t CampaignType) Valid() bool {
	switch t {
	case CampaignTypeMedical, CampaignTypeEducation, CampaignTypeDisaster, CampaignTypeGeneral:
		return true
	}
	return false
}

// Campaign represents a fundraising request created by an NGO. Campaigns are
// immutable once created; there are no edit or delete operations.
type Campaign struct {
	ID             uuid.UUID    `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Goal           int64        `json:"goal"` // In smallest currency unit; always > 0
	Category       string       `json:"category"`
	PeopleAffected int          `json:"people_affected"`
	OwnerWallet    string       `json:"owner_wallet"`
	CampaignType   CampaignType `json:"campaign_type"`
	CreatedAt      time.Time    `json:"created_at"`
}

// CampaignWithRaised pairs a campaign with its live aggregate. Raised is never
// stored on the campaign row; it is recomputed from the donation ledger on
// every read.
type CampaignWithRaised struct {
	Campaign
	Raised int64 `json:"raised"`
}

// Progress returns the funding progress in percent, capped at 100.
func (c *CampaignWithRaised) Progress() float64 {
	if c.Goal <= 0 {
		return 0
	}
	p := float64(c.Raised) / float64(c.Goal) * 100
	if p > 100 {
		return 100
	}
	return p
}
