// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/dock-quiz/auth"
	"github.com/danielhkuo/dock-quiz/cliparse"
	"github.com/danielhkuo/dock-quiz/middleware"
	"github.com/danielhkuo/dock-quiz/models"
	"github.com/danielhkuo/dock-quiz/sink"
)

const maxLeadLimit = 200

// LeadReader is the read side of a lead store. *sink.SQLSink implements it.
type LeadReader interface {
	ListLeads(ctx context.Context, limit int) ([]sink.StoredLead, error)
	GetLead(ctx context.Context, id string) (sink.StoredLead, error)
}

type LeadHandler struct {
	leads LeadReader
	cfg   cliparse.Config
	now   func() time.Time
}

func NewLeadHandler(leads LeadReader, cfg cliparse.Config) *LeadHandler {
	return &LeadHandler{leads: leads, cfg: cfg, now: time.Now}
}

// ListLeads handles GET /leads
func (h *LeadHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			middleware.FieldErrorResponse(w, http.StatusBadRequest, "limit must be a positive integer", "limit")
			return
		}
		limit = min(n, maxLeadLimit)
	}

	leads, err := h.leads.ListLeads(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list leads", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := models.ListLeadsResponse{Leads: make([]models.LeadSummary, 0, len(leads))}
	for _, lead := range leads {
		resp.Leads = append(resp.Leads, h.summary(lead))
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetLead handles GET /leads/{id}
func (h *LeadHandler) GetLead(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}

	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "lead_id is required")
		return
	}

	lead, err := h.leads.GetLead(r.Context(), id)
	if errors.Is(err, sink.ErrLeadNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Lead not found")
		return
	}
	if err != nil {
		slog.Error("failed to get lead", "lead_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LeadDetail{
		LeadSummary: h.summary(lead),
		Answers:     lead.Answers,
		Origin:      lead.Origin,
	})
}

func (h *LeadHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

func (h *LeadHandler) summary(lead sink.StoredLead) models.LeadSummary {
	return models.LeadSummary{
		ID:            lead.ID,
		SessionID:     lead.SessionID,
		FirstName:     lead.Contact.FirstName,
		LastName:      lead.Contact.LastName,
		Email:         lead.Contact.Email,
		Phone:         lead.Contact.Phone,
		ContactMethod: lead.Contact.ContactMethod,
		SubmittedAt:   lead.SubmittedAt,
		SubmittedAgo:  humanize.RelTime(lead.SubmittedAt, h.now(), "ago", "from now"),
	}
}
