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

// CommentHandler handles campaign comment endpoints.
type CommentHandler struct {
	commentSvc ports.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(commentSvc ports.CommentService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

// Post handles POST /api/v1/campaigns/:id/comments.
func (h *CommentHandler) Post(c *gin.Context) {
	identity, ok := middleware.Identity(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid campaign id"))
		return
	}

	var req dto.PostCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	comment, err := h.commentSvc.Post(c.Request.Context(), identity, campaignID, req.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toCommentResponse(comment))
}

// List handles GET /api/v1/campaigns/:id/comments.
func (h *CommentHandler) List(c *gin.Context) {
	campaignID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid campaign id"))
		return
	}

	comments, err := h.commentSvc.ListByCampaign(c.Request.Context(), campaignID)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, toCommentResponse(&comments[i]))
	}
	response.OK(c, out)
}

// toCommentResponse converts a domain.Comment to a DTO.
func toCommentResponse(cm *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:           cm.ID.String(),
		CampaignID:   cm.CampaignID.String(),
		AuthorWallet: cm.AuthorWallet,
		AuthorRole:   string(cm.AuthorRole),
		Text:         cm.Text,
		CreatedAt:    cm.CreatedAt.Format(time.RFC3339),
	}
}
