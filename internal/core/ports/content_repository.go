package ports

import (
	"context"

	"github.com/researchnotes/portal-api/internal/core/domain"
)

// NoteRepository persists private notes. ListByOwner returns newest-first.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Note, error)
}

// CommentRepository persists public comments. List returns newest-first.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	List(ctx context.Context) ([]domain.Comment, error)
}
