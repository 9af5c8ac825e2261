package handler

import (
	"time"

	"hopechain/internal/adapter/http/dto"
	"hopechain/internal/adapter/http/middleware"
	"hopechain/internal/core/domain"
	"hopechain/internal/core/ports"
	"hopechain/pkg/apperror"
	"hopechain/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CampaignHandler handles campaign-related endpoints.
type CampaignHandler struct {
	campaignSvc ports.CampaignService
}

// NewCampaignHandler creates a new CampaignHandler.
func NewCampaignHandler(campaignSvc ports.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaignSvc: campaignSvc}
}

// Create handles POST /api/v1/campaigns.
func (h *CampaignHandler) Create(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	campaign, err := h.campaignSvc.Create(c.Request.Context(), identity, ports.CreateCampaignRequest{
		Title:          req.Title,
		Description:    req.Description,
		Goal:           req.Goal,
		Category:       req.Category,
		PeopleAffected: req.PeopleAffected,
		CampaignType:   domain.CampaignType(req.CampaignType),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toCampaignResponse(&domain.CampaignWithRaised{Campaign: *campaign}))
}

// List handles GET /api/v1/campaigns.
func (h *CampaignHandler) List(c *gin.Context) {
	campaigns, err := h.campaignSvc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		out = append(out, toCampaignResponse(&campaigns[i]))
	}
	response.OK(c, out)
}

// Get handles GET /api/v1/campaigns/:id.
func (h *CampaignHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid campaign id"))
		return
	}

	campaign, err := h.campaignSvc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toCampaignResponse(campaign))
}

// Raised handles GET /api/v1/campaigns/:id/raised.
func (h *CampaignHandler) Raised(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid campaign id"))
		return
	}

	raised, err := h.campaignSvc.Raised(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.RaisedResponse{CampaignID: id.String(), Raised: raised})
}

// ListMine handles GET /api/v1/campaigns/mine.
func (h *CampaignHandler) ListMine(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	campaigns, err := h.campaignSvc.ListByOwner(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		out = append(out, toCampaignResponse(&campaigns[i]))
	}
	response.OK(c, out)
}

// toCampaignResponse converts a campaign with its aggregate to a DTO.
func toCampaignResponse(c *domain.CampaignWithRaised) dto.CampaignResponse {
	return dto.CampaignResponse{
		ID:             c.ID.String(),
		Title:          c.Title,
		Description:    c.Description,
		Goal:           c.Goal,
		Raised:         c.Raised,
		Progress:       c.Progress(),
		Category:       c.Category,
		PeopleAffected: c.PeopleAffected,
		OwnerWallet:    c.OwnerWallet,
		CampaignType:   string(c.CampaignType),
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
	}
}
