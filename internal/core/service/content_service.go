package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/researchnotes/portal-api/internal/core/domain"
	"github.com/researchnotes/portal-api/internal/core/ports"
)

// ContentService implements note and comment listing/creation.
type ContentService struct {
	notes    ports.NoteRepository
	comments ports.CommentRepository
	audit    ports.AuditRecorder
	logger   zerolog.Logger
}

func NewContentService(
	notes ports.NoteRepository,
	comments ports.CommentRepository,
	audit ports.AuditRecorder,
	logger zerolog.Logger,
) *ContentService {
	return &ContentService{notes: notes, comments: comments, audit: audit, logger: logger}
}

func (s *ContentService) ListNotes(ctx context.Context, ownerID string) ([]domain.Note, error) {
	notes, err := s.notes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
	return notes, nil
}

func (s *ContentService) CreateNote(ctx context.Context, ownerID, username, text string) (*domain.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}

	note, err := s.notes.Create(ctx, &domain.Note{
		OwnerID:   ownerID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create note")
		return nil, err
	}

	s.record(username, domain.AuditNoteCreated, note.ID)
	return note, nil
}

func (s *ContentService) ListComments(ctx context.Context) ([]domain.Comment, error) {
	comments, err := s.comments.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (s *ContentService) CreateComment(ctx context.Context, authorID, username, text string) (*domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}

	comment, err := s.comments.Create(ctx, &domain.Comment{
		AuthorID:  authorID,
		Author:    username,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("author_id", authorID).Msg("failed to create comment")
		return nil, err
	}

	s.record(username, domain.AuditCommentCreated, comment.ID)
	return comment, nil
}

func (s *ContentService) record(actor, action, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Enqueue(ports.AuditEventInput{
		Actor:     actor,
		Action:    action,
		Detail:    detail,
		Timestamp: time.Now().UTC().Unix(),
	})
}
