package draftapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flock/internal/core/apperr"
	draftEntity "flock/internal/core/draft"
	"flock/internal/core/pagination"
	draftPort "flock/internal/ports/draft"
	postPort "flock/internal/ports/post"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// Publisher turns draft content into a post.
type Publisher interface {
	CreatePost(ctx context.Context, userID uuid.UUID, content string) (*postPort.PostDTO, error)
}

type DraftService struct {
	DraftRepository draftPort.DraftRepository
	publisher       Publisher
	logger          *zap.Logger
}

func NewDraftService(repo draftPort.DraftRepository, publisher Publisher, logger *zap.Logger) *DraftService {
	return &DraftService{DraftRepository: repo, publisher: publisher, logger: logger}
}

func (s *DraftService) CreateDraft(ctx context.Context, userID uuid.UUID, content string) (*draftPort.DraftDTO, error) {
	now := time.Now().UTC()
	d := &draftEntity.Draft{
		ID:        uuid.Must(uuid.NewV7()),
		UserID:    userID,
		Content:   strings.TrimSpace(content),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.DraftRepository.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}
	dto := draftPort.NewDraftDTO(d)
	return &dto, nil
}

func (s *DraftService) UpdateDraft(ctx context.Context, userID, draftID uuid.UUID, content string) (*draftPort.DraftDTO, error) {
	d, err := s.owned(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}
	d.Content = strings.TrimSpace(content)
	d.UpdatedAt = time.Now().UTC()
	if err := s.DraftRepository.Update(ctx, d); err != nil {
		return nil, fmt.Errorf("update draft: %w", err)
	}
	dto := draftPort.NewDraftDTO(d)
	return &dto, nil
}

func (s *DraftService) ListDrafts(ctx context.Context, userID uuid.UUID, req pagination.Request) (pagination.Page[draftPort.DraftDTO], error) {
	rows, err := s.DraftRepository.ListByUser(ctx, userID, req)
	if err != nil {
		return pagination.Page[draftPort.DraftDTO]{}, fmt.Errorf("list drafts: %w", err)
	}
	page := pagination.Build(rows, req.Limit, func(d *draftEntity.Draft) uuid.UUID { return d.ID })
	return pagination.Map(page, draftPort.NewDraftDTO), nil
}

// DeleteDraft removes a draft owned by userID. Someone else's draft is left untouched.
func (s *DraftService) DeleteDraft(ctx context.Context, userID, draftID uuid.UUID) error {
	if _, err := s.owned(ctx, userID, draftID); err != nil {
		return err
	}
	return s.DraftRepository.Delete(ctx, draftID)
}

// PublishDraft creates a post from the draft and then removes the draft.
func (s *DraftService) PublishDraft(ctx context.Context, userID, draftID uuid.UUID) (*postPort.PostDTO, error) {
	d, err := s.owned(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}
	p, err := s.publisher.CreatePost(ctx, userID, d.Content)
	if err != nil {
		return nil, err
	}
	if err := s.DraftRepository.Delete(ctx, d.ID); err != nil {
		s.logger.Warn("draft published but not removed", zap.String("draftID", d.ID.String()), zap.Error(err))
	}
	return p, nil
}

func (s *DraftService) owned(ctx context.Context, userID, draftID uuid.UUID) (*draftEntity.Draft, error) {
	d, err := s.DraftRepository.FindByID(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if !d.OwnedBy(userID) {
		return nil, apperr.Forbidden("draft belongs to another user")
	}
	return d, nil
}
