package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/researchnotes/portal-api/internal/api/metrics"
	"github.com/researchnotes/portal-api/internal/core/domain"
	"github.com/researchnotes/portal-api/internal/core/ports"
)

// CommentHandler serves the public comment feed: anyone may read, any
// authenticated identity may post.
type CommentHandler struct {
	content ports.ContentService
}

func NewCommentHandler(content ports.ContentService) *CommentHandler {
	return &CommentHandler{content: content}
}

type commentResponse struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type commentListResponse struct {
	Comments []commentResponse `json:"comments"`
}

// List handles GET /api/comments.
//
// @Summary      List all comments, newest first
// @Tags         comments
// @Produce      json
// @Success      200  {object}  commentListResponse
// @Router       /api/comments [get]
func (h *CommentHandler) List(c echo.Context) error {
	comments, err := h.content.ListComments(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, toCommentResponse(comment))
	}
	return c.JSON(http.StatusOK, commentListResponse{Comments: out})
}

// Create handles POST /api/comments.
//
// @Summary      Post a comment as the caller
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        body  body      createContentRequest  true  "Comment text"
// @Success      201   {object}  commentResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/comments [post]
func (h *CommentHandler) Create(c echo.Context) error {
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

	comment, err := h.content.CreateComment(c.Request().Context(), identityID, username, req.Text)
	if err != nil {
		return err
	}

	metrics.ContentCreatedTotal.WithLabelValues("comment").Inc()
	return c.JSON(http.StatusCreated, toCommentResponse(*comment))
}

func toCommentResponse(comment domain.Comment) commentResponse {
	return commentResponse{
		ID:        comment.ID,
		Author:    comment.Author,
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
	}
}
