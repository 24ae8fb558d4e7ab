package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/researchnotes/portal-api/internal/api/metrics"
	"github.com/researchnotes/portal-api/internal/core/domain"
	"github.com/researchnotes/portal-api/internal/core/ports"
)

// NoteHandler serves the private notes API. The routes are mounted behind
// the admin gate even though notes are owner-scoped, reproducing the
// upstream behavior of the portal.
type NoteHandler struct {
	content ports.ContentService
}

func NewNoteHandler(content ports.ContentService) *NoteHandler {
	return &NoteHandler{content: content}
}

type noteResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type noteListResponse struct {
	Notes []noteResponse `json:"notes"`
}

type createContentRequest struct {
	Text string `json:"text" validate:"required,max=10000"`
}

// List handles GET /api/notes.
//
// @Summary      List the caller's notes, newest first
// @Tags         notes
// @Produce      json
// @Success      200  {object}  noteListResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	identityID, _, ok := currentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	notes, err := h.content.ListNotes(c.Request().Context(), identityID)
	if err != nil {
		return err
	}

	out := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}
	return c.JSON(http.StatusOK, noteListResponse{Notes: out})
}

// Create handles POST /api/notes.
//
// @Summary      Create a note owned by the caller
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      createContentRequest  true  "Note text"
// @Success      201   {object}  noteResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	identityID, username, ok := currentIdentity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}

	var req createContentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.content.CreateNote(c.Request().Context(), identityID, username, req.Text)
	if err != nil {
		return err
	}

	metrics.ContentCreatedTotal.WithLabelValues("note").Inc()
	return c.JSON(http.StatusCreated, toNoteResponse(*note))
}

func toNoteResponse(n domain.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		Text:      n.Text,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}
