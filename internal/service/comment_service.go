package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hopechain/internal/core/domain"
	"hopechain/internal/core/ports"
	"hopechain/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxCommentLength bounds stored comment text.
const maxCommentLength = 2000

// CommentServiceImpl implements ports.CommentService.
type CommentServiceImpl struct {
	commentRepo  ports.CommentRepository
	campaignRepo ports.CampaignRepository
	log          zerolog.Logger
}

// NewCommentService creates a new CommentServiceImpl.
func NewCommentService(commentRepo ports.CommentRepository, campaignRepo ports.CampaignRepository, log zerolog.Logger) *CommentServiceImpl {
	return &CommentServiceImpl{
		commentRepo:  commentRepo,
		campaignRepo: campaignRepo,
		log:          log,
	}
}

// Post attaches a comment to an existing campaign. Any valid identity may
// comment regardless of role.
func (s *CommentServiceImpl) Post(ctx context.Context, identity domain.Identity, campaignID uuid.UUID, text string) (*domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.Validation("comment text is required")
	}
	if len(text) > maxCommentLength {
		return nil, apperror.Validation("comment text too long")
	}

	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get campaign: %w", err))
	}
	if campaign == nil {
		return nil, apperror.ErrNotFound("campaign")
	}

	comment := &domain.Comment{
		ID:           uuid.New(),
		CampaignID:   campaignID,
		AuthorID:     identity.UserID,
		AuthorWallet: identity.Wallet,
		AuthorRole:   identity.Role,
		Text:         text,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create comment: %w", err))
	}

	s.log.Info().
		Str("comment_id", comment.ID.String()).
		Str("campaign_id", campaignID.String()).
		Str("author_role", string(identity.Role)).
		Msg("comment posted")

	return comment, nil
}

// ListByCampaign returns a campaign's comments, newest first. The campaign
// must exist; an unknown id is a not-found, not an empty list.
func (s *CommentServiceImpl) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]domain.Comment, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get campaign: %w", err))
	}
	if campaign == nil {
		return nil, apperror.ErrNotFound("campaign")
	}

	comments, err := s.commentRepo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list comments: %w", err))
	}
	return comments, nil
}
