package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/researchnotes/portal-api/internal/core/domain"
	"github.com/researchnotes/portal-api/internal/core/ports"
)

type stubAuditService struct {
	events    []domain.AuditEvent
	lastLimit int
}

func (s *stubAuditService) Process(_ context.Context, _ ports.AuditEventInput) error {
	return nil
}

func (s *stubAuditService) RecentEvents(_ context.Context, limit int) ([]domain.AuditEvent, error) {
	s.lastLimit = limit
	return s.events, nil
}

func TestAuditHandler_List(t *testing.T) {
	e := echo.New()
	svc := &stubAuditService{events: []domain.AuditEvent{
		{ID: "e1", Actor: "alice", Action: domain.AuditLogin, Timestamp: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)},
	}}
	h := NewAuditHandler(svc)

	c, rec := jsonRequest(e, http.MethodGet, "/api/audit", "")
	asIdentity(c, "id-9", "root")

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp auditListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(resp.Events) != 1 || resp.Events[0].Actor != "alice" || resp.Events[0].Action != domain.AuditLogin {
		t.Fatalf("unexpected events: %+v", resp.Events)
	}
	if resp.Events[0].Timestamp != "2025-05-01T12:00:00Z" {
		t.Fatalf("timestamp not RFC3339: %q", resp.Events[0].Timestamp)
	}
}

func TestAuditHandler_List_LimitHandling(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantLimit int
		wantErr   bool
	}{
		{"default", "", 0, false},
		{"explicit", "?limit=10", 10, false},
		{"capped", "?limit=9999", maxAuditLimit, false},
		{"not a number", "?limit=abc", 0, true},
		{"negative", "?limit=-5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			svc := &stubAuditService{lastLimit: -1}
			h := NewAuditHandler(svc)

			c, _ := jsonRequest(e, http.MethodGet, "/api/audit"+tt.query, "")
			asIdentity(c, "id-9", "root")

			err := h.List(c)
			if tt.wantErr {
				httpErr, ok := err.(*echo.HTTPError)
				if !ok || httpErr.Code != http.StatusBadRequest {
					t.Fatalf("expected 400 HTTPError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if svc.lastLimit != tt.wantLimit {
				t.Fatalf("expected limit %d, got %d", tt.wantLimit, svc.lastLimit)
			}
		})
	}
}
