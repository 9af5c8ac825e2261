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

// DonationHandler handles donation-related endpoints.
type DonationHandler struct {
	donationSvc ports.DonationService
}

// NewDonationHandler creates a new DonationHandler.
func NewDonationHandler(donationSvc ports.DonationService) *DonationHandler {
	return &DonationHandler{donationSvc: donationSvc}
}

// Donate handles POST /api/v1/donations: the full two-phase flow.
func (h *DonationHandler) Donate(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.DonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	campaignID, err := uuid.Parse(req.CampaignID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid campaign id"))
		return
	}

	donation, err := h.donationSvc.Donate(c.Request.Context(), identity, ports.DonateRequest{
		CampaignID:    campaignID,
		Amount:        req.Amount,
		PaymentMethod: paymentMethodOrDefault(req.PaymentMethod),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toDonationResponse(donation))
}

// RecordConfirmed handles POST /api/v1/donations/confirmed: the idempotent
// local record step for an externally confirmed transfer.
func (h *DonationHandler) RecordConfirmed(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.RecordConfirmedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	campaignID, err := uuid.Parse(req.CampaignID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid campaign id"))
		return
	}

	donation, err := h.donationSvc.RecordConfirmed(c.Request.Context(), identity, ports.RecordConfirmedRequest{
		CampaignID:    campaignID,
		Amount:        req.Amount,
		TxRef:         req.TxRef,
		PaymentMethod: paymentMethodOrDefault(req.PaymentMethod),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toDonationResponse(donation))
}

// ListMine handles GET /api/v1/donations/mine.
func (h *DonationHandler) ListMine(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	donations, err := h.donationSvc.ListByDonor(c.Request.Context(), identity)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.DonationResponse, 0, len(donations))
	for i := range donations {
		resp := toDonationResponse(&donations[i].Donation)
		resp.CampaignTitle = donations[i].CampaignTitle
		out = append(out, resp)
	}
	response.OK(c, out)
}

func paymentMethodOrDefault(m string) domain.PaymentMethod {
	if m == "" {
		return domain.PaymentMethodCrypto
	}
	return domain.PaymentMethod(m)
}

// toDonationResponse converts a domain.Donation to a DTO.
func toDonationResponse(d *domain.Donation) dto.DonationResponse {
	return dto.DonationResponse{
		ID:            d.ID.String(),
		CampaignID:    d.CampaignID.String(),
		DonorWallet:   d.DonorWallet,
		Amount:        d.Amount,
		TxRef:         d.TxRef,
		PaymentMethod: string(d.PaymentMethod),
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
	}
}
