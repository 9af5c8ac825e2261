package dto

// CreateCampaignRequest is the request body for campaign creation.
type CreateCampaignRequest struct {
	Title          string `json:"title" binding:"required,min=1,max=200"`
	Description    string `json:"description" binding:"max=5000"`
	Goal           int64  `json:"goal" binding:"required,gt=0"`
	Category       string `json:"category" binding:"max=100"`
	PeopleAffected int    `json:"people_affected" binding:"gte=0"`
	CampaignType   string `json:"campaign_type" binding:"omitempty,oneof=MEDICAL EDUCATION DISASTER GENERAL"`
}

// DonateRequest is the request body for the full two-phase donate flow.
type DonateRequest struct {
	CampaignID    string `json:"campaign_id" binding:"required,uuid"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	PaymentMethod string `json:"payment_method" binding:"omitempty,oneof=CRYPTO CARD BANK"`
}

// RecordConfirmedRequest is the request body for recording a donation whose
// external leg already confirmed.
type RecordConfirmedRequest struct {
	CampaignID    string `json:"campaign_id" binding:"required,uuid"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	TxRef         string `json:"tx_ref" binding:"omitempty,max=200"`
	PaymentMethod string `json:"payment_method" binding:"omitempty,oneof=CRYPTO CARD BANK"`
}

// PostCommentRequest is the request body for posting a campaign comment.
type PostCommentRequest struct {
	Text string `json:"text" binding:"required,min=1,max=2000"`
}

// CampaignResponse is the response body for a single campaign.
type CampaignResponse struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Goal           int64   `json:"goal"`
	Raised         int64   `json:"raised"`
	Progress       float64 `json:"progress"`
	Category       string  `json:"category"`
	PeopleAffected int     `json:"people_affected"`
	OwnerWallet    string  `json:"owner_wallet"`
	CampaignType   string  `json:"campaign_type"`
	CreatedAt      string  `json:"created_at"`
}

// RaisedResponse is the response body for the raised-total endpoint.
type RaisedResponse struct {
	CampaignID string `json:"campaign_id"`
	Raised     int64  `json:"raised"`
}

// DonationResponse is the response body for a recorded donation.
type DonationResponse struct {
	ID            string `json:"id"`
	CampaignID    string `json:"campaign_id"`
	CampaignTitle string `json:"campaign_title,omitempty"`
	DonorWallet   string `json:"donor_wallet"`
	Amount        int64  `json:"amount"`
	TxRef         string `json:"tx_ref"`
	PaymentMethod string `json:"payment_method"`
	CreatedAt     string `json:"created_at"`
}

// CommentResponse is the response body for a campaign comment.
type CommentResponse struct {
	ID           string `json:"id"`
	CampaignID   string `json:"campaign_id"`
	AuthorWallet string `json:"author_wallet"`
	AuthorRole   string `json:"author_role"`
	Text         string `json:"text"`
	CreatedAt    string `json:"created_at"`
}
