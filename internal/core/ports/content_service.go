package ports

import (
	"context"

	"github.com/researchnotes/portal-api/internal/core/domain"
)

type ContentService interface {
	// ListNotes returns the notes owned by the identity, newest first.
	ListNotes(ctx context.Context, ownerID string) ([]domain.Note, error)
	// CreateNote trims and stores a note for the owner.
	CreateNote(ctx context.Context, ownerID, username, text string) (*domain.Note, error)
	// ListComments returns all comments, newest first.
	ListComments(ctx context.Context) ([]domain.Comment, error)
	// CreateComment trims and stores a comment authored by the identity.
	CreateComment(ctx context.Context, authorID, username, text string) (*domain.Comment, error)
}
