package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/researchnotes/portal-api/internal/core/ports"
)

const maxAuditLimit = 200

// AuditHandler exposes the admin-only audit trail.
type AuditHandler struct {
	audit ports.AuditService
}

func NewAuditHandler(audit ports.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

type auditEventResponse struct {
	ID        string `json:"id"`
	Actor     string `json:"actor"`
	Action    string `json:"action"`
	Detail    string `json:"detail,omitempty"`
	Timestamp string `json:"timestamp"`
}

type auditListResponse struct {
	Events []auditEventResponse `json:"events"`
}

// List handles GET /api/audit.
//
// @Summary      List recent audit events, newest first
// @Tags         audit
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of events (default 50, cap 200)"
// @Success      200    {object}  auditListResponse
// @Failure      401    {object}  map[string]string
// @Failure      403    {object}  map[string]string
// @Router       /api/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = n
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	events, err := h.audit.RecentEvents(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	out := make([]auditEventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, auditEventResponse{
			ID:        event.ID,
			Actor:     event.Actor,
			Action:    event.Action,
			Detail:    event.Detail,
			Timestamp: event.Timestamp.Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, auditListResponse{Events: out})
}
