package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/researchnotes/portal-api/internal/api/middleware"
	"github.com/researchnotes/portal-api/internal/core/domain"
)

type stubContentService struct {
	notes    []domain.Note
	comments []domain.Comment
	err      error
}

func (s *stubContentService) ListNotes(_ context.Context, ownerID string) ([]domain.Note, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []domain.Note
	for _, n := range s.notes {
		if n.OwnerID == ownerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *stubContentService) CreateNote(_ context.Context, ownerID, _, text string) (*domain.Note, error) {
	if s.err != nil {
		return nil, s.err
	}
	note := domain.Note{
		ID:        "note-1",
		OwnerID:   ownerID,
		Text:      strings.TrimSpace(text),
		CreatedAt: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	s.notes = append(s.notes, note)
	return &note, nil
}

func (s *stubContentService) ListComments(_ context.Context) ([]domain.Comment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.comments, nil
}

func (s *stubContentService) CreateComment(_ context.Context, authorID, username, text string) (*domain.Comment, error) {
	if s.err != nil {
		return nil, s.err
	}
	comment := domain.Comment{
		ID:        "comment-1",
		AuthorID:  authorID,
		Author:    username,
		Text:      strings.TrimSpace(text),
		CreatedAt: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
	}
	s.comments = append(s.comments, comment)
	return &comment, nil
}

func newAPIEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asIdentity(c echo.Context, identityID, username string) {
	c.Set(middleware.ContextIdentityID, identityID)
	c.Set(middleware.ContextUsername, username)
}

func TestNoteHandler_List_ReturnsOwnNotesOnly(t *testing.T) {
	e := echo.New()
	svc := &stubContentService{notes: []domain.Note{
		{ID: "n1", OwnerID: "id-1", Text: "mine", CreatedAt: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "n2", OwnerID: "id-2", Text: "theirs", CreatedAt: time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC)},
	}}
	h := NewNoteHandler(svc)

	c, rec := jsonRequest(e, http.MethodGet, "/api/notes", "")
	asIdentity(c, "id-1", "alice")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp noteListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Notes) != 1 || resp.Notes[0].ID != "n1" || resp.Notes[0].Text != "mine" {
		t.Fatalf("unexpected notes: %+v", resp.Notes)
	}
	if resp.Notes[0].CreatedAt != "2025-05-02T00:00:00Z" {
		t.Fatalf("created_at not RFC3339: %q", resp.Notes[0].CreatedAt)
	}
}

func TestNoteHandler_List_EmptyIsAnArrayNotNull(t *testing.T) {
	e := echo.New()
	h := NewNoteHandler(&stubContentService{})

	c, rec := jsonRequest(e, http.MethodGet, "/api/notes", "")
	asIdentity(c, "id-1", "alice")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"notes":[]`) {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestNoteHandler_List_Unauthenticated(t *testing.T) {
	e := echo.New()
	h := NewNoteHandler(&stubContentService{})

	c, _ := jsonRequest(e, http.MethodGet, "/api/notes", "")

	err := h.List(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestNoteHandler_Create(t *testing.T) {
	e := newAPIEcho()
	svc := &stubContentService{}
	h := NewNoteHandler(svc)

	c, rec := jsonRequest(e, http.MethodPost, "/api/notes", `{"text":"  remember this  "}`)
	asIdentity(c, "id-1", "alice")

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp noteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Text != "remember this" {
		t.Fatalf("text not trimmed: %q", resp.Text)
	}
	if len(svc.notes) != 1 || svc.notes[0].OwnerID != "id-1" {
		t.Fatalf("note not stored for caller: %+v", svc.notes)
	}
}

func TestNoteHandler_Create_WhitespaceOnlyText(t *testing.T) {
	e := newAPIEcho()
	h := NewNoteHandler(&stubContentService{err: domain.ErrEmptyText})

	c, _ := jsonRequest(e, http.MethodPost, "/api/notes", `{"text":"   "}`)
	asIdentity(c, "id-1", "alice")

	if err := h.Create(c); err != domain.ErrEmptyText {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

func TestNoteHandler_Create_MissingText(t *testing.T) {
	e := newAPIEcho()
	h := NewNoteHandler(&stubContentService{})

	c, _ := jsonRequest(e, http.MethodPost, "/api/notes", `{}`)
	asIdentity(c, "id-1", "alice")

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestNoteHandler_Create_InvalidBody(t *testing.T) {
	e := echo.New()
	h := NewNoteHandler(&stubContentService{})

	c, _ := jsonRequest(e, http.MethodPost, "/api/notes", `{"text":`)
	asIdentity(c, "id-1", "alice")

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestNoteHandler_Create_Unauthenticated(t *testing.T) {
	e := echo.New()
	h := NewNoteHandler(&stubContentService{})

	c, _ := jsonRequest(e, http.MethodPost, "/api/notes", `{"text":"hi"}`)

	err := h.Create(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
