package draft

import (
	"context"
	"time"

	"flock/internal/core/draft"
	"flock/internal/core/pagination"

	"github.com/gofrs/uuid"
)

type DraftRepository interface {
	Create(ctx context.Context, d *draft.Draft) error
	FindByID(ctx context.Context, id uuid.UUID) (*draft.Draft, error)
	Update(ctx context.Context, d *draft.Draft) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListByUser returns drafts of userID, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, req pagination.Request) ([]*draft.Draft, error)
}

type DraftDTO struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewDraftDTO(d *draft.Draft) DraftDTO {
	return DraftDTO{
		ID:        d.ID.String(),
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
