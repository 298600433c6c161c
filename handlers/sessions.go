// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/dock-quiz/auth"
	"github.com/danielhkuo/dock-quiz/cliparse"
	"github.com/danielhkuo/dock-quiz/middleware"
	"github.com/danielhkuo/dock-quiz/models"
	"github.com/danielhkuo/dock-quiz/quiz"
)

type SessionHandler struct {
	store *SessionStore
	cfg   cliparse.Config
}

func NewSessionHandler(store *SessionStore, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{store: store, cfg: cfg}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := h.store.Create(h.origin(r))
	token := auth.GenerateSessionToken(id, h.cfg.SessionSalt)

	var view models.SessionView
	err := h.store.With(id, func(s *quiz.Session) error {
		view = buildView(s)
		return nil
	})
	if err != nil {
		slog.Error("failed to load new session", "session_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("session created", "session_id", id)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID:    id,
		SessionToken: token,
		Session:      view,
	})
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(s *quiz.Session) error { return nil })
}

// Advance handles POST /sessions/{id}/advance
func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(s *quiz.Session) error {
		s.SetOrigin(h.origin(r))
		return h.logSubmit(s, s.Advance(r.Context()))
	})
}

// Retreat handles POST /sessions/{id}/retreat
func (h *SessionHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(s *quiz.Session) error {
		return s.Retreat()
	})
}

// SelectAnswer handles PUT /sessions/{id}/answer
func (h *SessionHandler) SelectAnswer(w http.ResponseWriter, r *http.Request) {
	var req models.SelectAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Value == nil {
		middleware.FieldErrorResponse(w, http.StatusBadRequest, "value is required", "value")
		return
	}

	h.serve(w, r, func(s *quiz.Session) error {
		value := *req.Value
		q, err := s.CurrentQuestion()
		if err != nil {
			return err
		}
		if !q.Kind.IsChoice() && !value.IsMulti() {
			value = quiz.Scalar(middleware.SanitizeText(value.String()))
		}
		return s.SelectAnswer(value)
	})
}

// ToggleOption handles POST /sessions/{id}/answer/toggle
func (h *SessionHandler) ToggleOption(w http.ResponseWriter, r *http.Request) {
	var req models.ToggleOptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Option == "" {
		middleware.FieldErrorResponse(w, http.StatusBadRequest, "option is required", "option")
		return
	}

	h.serve(w, r, func(s *quiz.Session) error {
		return s.ToggleOption(req.Option, req.Checked)
	})
}

// UpdateContact handles PATCH /sessions/{id}/contact
func (h *SessionHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateContactRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	h.serve(w, r, func(s *quiz.Session) error {
		var method quiz.ContactMethod
		if req.ContactMethod != nil {
			m, err := quiz.ParseContactMethod(*req.ContactMethod)
			if err != nil {
				return err
			}
			method = m
		}

		setters := []struct {
			value *string
			set   func(string) error
		}{
			{req.FirstName, s.SetFirstName},
			{req.LastName, s.SetLastName},
			{req.Email, s.SetEmail},
			{req.Phone, s.SetPhone},
		}
		for _, f := range setters {
			if f.value == nil {
				continue
			}
			if err := f.set(middleware.SanitizeText(*f.value)); err != nil {
				return err
			}
		}
		if method != "" {
			return s.SetContactMethod(method)
		}
		return nil
	})
}

// Submit handles POST /sessions/{id}/submit
func (h *SessionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, func(s *quiz.Session) error {
		s.SetOrigin(h.origin(r))
		return h.logSubmit(s, s.Submit(r.Context()))
	})
}

// serve authenticates the request, applies event to the session and writes
// the resulting view.
func (h *SessionHandler) serve(w http.ResponseWriter, r *http.Request, event func(*quiz.Session) error) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	token := r.Header.Get("X-Session-Token")
	if err := auth.ValidateSessionToken(id, token, h.cfg.SessionSalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid session token")
		return
	}

	var view models.SessionView
	err := h.store.With(id, func(s *quiz.Session) error {
		if err := event(s); err != nil {
			return err
		}
		view = buildView(s)
		return nil
	})
	if err != nil {
		writeSessionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// logSubmit records the outcome when err came from a submission attempt.
func (h *SessionHandler) logSubmit(s *quiz.Session, err error) error {
	var subErr *quiz.SubmissionError
	switch {
	case errors.As(err, &subErr):
		slog.Error("lead submission failed", "session_id", s.ID(), "error", subErr.Err)
	case err == nil && s.Phase() == quiz.PhaseConfirmation:
		if lead, ok := s.Lead(); ok {
			slog.Info("lead accepted", "session_id", s.ID(), "answers", len(lead.Answers))
		}
	}
	return err
}

func (h *SessionHandler) origin(r *http.Request) quiz.Origin {
	return quiz.Origin{
		IPHash:    auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt),
		UserAgent: r.UserAgent(),
	}
}

func writeSessionError(w http.ResponseWriter, err error) {
	var validation *quiz.ValidationError
	var submission *quiz.SubmissionError

	switch {
	case errors.As(err, &validation):
		middleware.FieldErrorResponse(w, http.StatusUnprocessableEntity, validation.Reason, validation.Field)
	case errors.As(err, &submission):
		middleware.ErrorResponse(w, http.StatusBadGateway, "Lead submission failed, please try again")
	case errors.Is(err, quiz.ErrInvalidTransition):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrSessionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
	default:
		slog.Error("session event failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

func buildView(s *quiz.Session) models.SessionView {
	catalog := s.Catalog()
	view := models.SessionView{
		ID:            s.ID(),
		Phase:         s.Phase(),
		StepTitle:     s.StepTitle(),
		Progress:      s.Progress(),
		QuestionCount: catalog.Len(),
		CanProceed:    s.CanProceed(),
		NextLabel:     s.NextLabel(),
		Contact:       s.Contact(),
		CanSubmit:     s.CanSubmit(),
		Message:       s.ConfirmationMessage(),
	}

	if q, err := s.CurrentQuestion(); err == nil {
		answer := s.CurrentAnswer()
		view.Question = &q
		view.Answer = &answer
		view.QuestionNumber = s.Index() + 1
		view.CanGoBack = s.Index() > 0
	}
	switch s.Phase() {
	case quiz.PhaseIntro:
		view.CanProceed = true
	case quiz.PhaseContactCollection:
		view.CanProceed = view.CanSubmit
	}
	return view
}
