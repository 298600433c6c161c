// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danielhkuo/dock-quiz/auth"
	"github.com/danielhkuo/dock-quiz/models"
	"github.com/danielhkuo/dock-quiz/quiz"
	"github.com/danielhkuo/dock-quiz/testutil"
)

// captureSink records submitted leads, or fails with err when set.
type captureSink struct {
	mu    sync.Mutex
	leads []quiz.Lead
	err   error
}

func (c *captureSink) Submit(_ context.Context, lead quiz.Lead) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.leads = append(c.leads, lead)
	return nil
}

func testCatalog(t *testing.T) *quiz.Catalog {
	t.Helper()
	c, err := quiz.NewCatalog([]quiz.Question{
		{ID: 1, Kind: quiz.KindSingleChoice, Prompt: "Primary function?", Options: []string{"Boat Access", "Relax and Entertain", "Both"}, Required: true, Section: "Dock Requirements"},
		{ID: 2, Kind: quiz.KindFreeText, Prompt: "Lake or river name", Required: true, Section: "Dock Requirements"},
		{ID: 3, Kind: quiz.KindMultiChoice, Prompt: "Shoreline", Options: []string{"Rocky", "Sandy", "Grassy"}, Required: false, Section: "Dock Usage"},
	})
	if err != nil {
		t.Fatalf("Failed to build catalog: %v", err)
	}
	return c
}

func newTestSessionHandler(t *testing.T, sink quiz.Sink) (*SessionHandler, *SessionStore) {
	t.Helper()
	cfg := testutil.GetTestConfig()
	store := NewSessionStore(testCatalog(t), sink, cfg.SessionTTL)
	return NewSessionHandler(store, cfg), store
}

func createTestSession(t *testing.T, h *SessionHandler) models.CreateSessionResponse {
	t.Helper()
	w := httptest.NewRecorder()
	h.CreateSession(w, testutil.MakeRequest("POST", "/sessions", nil, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateSessionResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

// call runs one session handler and returns the recorder.
func call(handler http.HandlerFunc, method, path string, s models.CreateSessionResponse, body interface{}) *httptest.ResponseRecorder {
	req := testutil.MakeRequest(method, path, body, map[string]string{
		"X-Session-Token": s.SessionToken,
	})
	req.SetPathValue("id", s.SessionID)
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func decodeView(t *testing.T, w *httptest.ResponseRecorder) models.SessionView {
	t.Helper()
	var view models.SessionView
	testutil.AssertJSON(t, w, &view)
	return view
}

func answer(v quiz.Value) models.SelectAnswerRequest {
	return models.SelectAnswerRequest{Value: &v}
}

func strPtr(s string) *string {
	return &s
}

func TestCreateSession(t *testing.T) {
	h, store := newTestSessionHandler(t, &captureSink{})
	resp := createTestSession(t, h)

	if resp.SessionID == "" {
		t.Fatal("Expected non-empty session_id")
	}
	expectedToken := auth.GenerateSessionToken(resp.SessionID, h.cfg.SessionSalt)
	if resp.SessionToken != expectedToken {
		t.Error("Session token does not match expected value")
	}
	if resp.Session.Phase != quiz.PhaseIntro {
		t.Errorf("Expected phase intro, got %s", resp.Session.Phase)
	}
	if resp.Session.NextLabel != quiz.LabelStart {
		t.Errorf("Expected next label %q, got %q", quiz.LabelStart, resp.Session.NextLabel)
	}
	if !resp.Session.CanProceed {
		t.Error("Expected intro to allow proceeding")
	}
	if resp.Session.Question != nil {
		t.Error("Expected no question in intro")
	}
	if store.Len() != 1 {
		t.Errorf("Expected 1 stored session, got %d", store.Len())
	}
}

func TestSessionAuthorization(t *testing.T) {
	h, _ := newTestSessionHandler(t, &captureSink{})
	created := createTestSession(t, h)

	tests := []struct {
		name           string
		id             string
		token          string
		expectedStatus int
	}{
		{"valid token", created.SessionID, created.SessionToken, http.StatusOK},
		{"missing token", created.SessionID, "", http.StatusUnauthorized},
		{"wrong token", created.SessionID, "not-a-token", http.StatusUnauthorized},
		{"token for another session", created.SessionID, auth.GenerateSessionToken("other", h.cfg.SessionSalt), http.StatusUnauthorized},
		{"unknown session", "missing", auth.GenerateSessionToken("missing", h.cfg.SessionSalt), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := call(h.GetSession, "GET", "/sessions/"+tt.id, models.CreateSessionResponse{
				SessionID:    tt.id,
				SessionToken: tt.token,
			}, nil)
			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}
}

func TestQuestionnaireFlow(t *testing.T) {
	h, _ := newTestSessionHandler(t, &captureSink{})
	s := createTestSession(t, h)

	w := call(h.Advance, "POST", "/sessions/x/advance", s, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	view := decodeView(t, w)
	if view.Phase != quiz.PhaseQuestionnaire || view.Question == nil || view.Question.ID != 1 {
		t.Fatalf("Expected first question, got %+v", view)
	}
	if view.Progress != 33 || view.QuestionNumber != 1 || view.QuestionCount != 3 {
		t.Errorf("Unexpected progress %d, number %d of %d", view.Progress, view.QuestionNumber, view.QuestionCount)
	}
	if view.StepTitle != "Step 1: Dock Requirements" {
		t.Errorf("Unexpected step title '%s'", view.StepTitle)
	}
	if view.CanProceed || view.CanGoBack {
		t.Error("Expected unanswered first question to block both directions")
	}

	// Required question blocks advancing
	w = call(h.Advance, "POST", "/sessions/x/advance", s, nil)
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	var errResp models.ErrorResponse
	testutil.AssertJSON(t, w, &errResp)
	if errResp.Field != "question_1" {
		t.Errorf("Expected field question_1, got '%s'", errResp.Field)
	}

	// Unknown option is rejected
	w = call(h.SelectAnswer, "PUT", "/sessions/x/answer", s, answer(quiz.Scalar("Fishing")))
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

	w = call(h.SelectAnswer, "PUT", "/sessions/x/answer", s, answer(quiz.Scalar("Both")))
	testutil.AssertStatus(t, w, http.StatusOK)
	view = decodeView(t, w)
	if view.Answer == nil || view.Answer.String() != "Both" || !view.CanProceed {
		t.Errorf("Expected answer 'Both' and can_proceed, got %+v", view)
	}

	w = call(h.Advance, "POST", "/sessions/x/advance", s, nil)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Free text is stripped of markup
	w = call(h.SelectAnswer, "PUT", "/sessions/x/answer", s, answer(quiz.Scalar("<b>Lake</b> Superior")))
	testutil.AssertStatus(t, w, http.StatusOK)
	view = decodeView(t, w)
	if view.Answer.String() != "Lake Superior" {
		t.Errorf("Expected sanitized answer 'Lake Superior', got '%s'", view.Answer.String())
	}

	// Going back keeps the earlier answer
	w = call(h.Retreat, "POST", "/sessions/x/retreat", s, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	view = decodeView(t, w)
	if view.Question.ID != 1 || view.Answer.String() != "Both" {
		t.Errorf("Expected question 1 with answer 'Both', got %+v", view)
	}

	// Retreat at the first question is a no-op
	w = call(h.Retreat, "POST", "/sessions/x/retreat", s, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	if view := decodeView(t, w); view.Question.ID != 1 {
		t.Errorf("Expected to stay on question 1, got %d", view.Question.ID)
	}
}

func TestSelectAnswerMissingValue(t *testing.T) {
	h, _ := newTestSessionHandler(t, &captureSink{})
	s := createTestSession(t, h)
	call(h.Advance, "POST", "/sessions/x/advance", s, nil)

	w := call(h.SelectAnswer, "PUT", "/sessions/x/answer", s, map[string]string{})
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestToggleOption(t *testing.T) {
	h, store := newTestSessionHandler(t, &captureSink{})
	s := createTestSession(t, h)

	// Toggling on a single-choice question is a validation error
	call(h.Advance, "POST", "/sessions/x/advance", s, nil)
	w := call(h.ToggleOption, "POST", "/sessions/x/answer/toggle", s, models.ToggleOptionRequest{Option: "Both", Checked: true})
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

	err := store.With(s.SessionID, func(session *quiz.Session) error {
		if err := session.SelectAnswer(quiz.Scalar("Both")); err != nil {
			return err
		}
		if err := session.Advance(context.Background()); err != nil {
			return err
		}
		if err := session.SelectAnswer(quiz.Scalar("Lake Test")); err != nil {
			return err
		}
		return session.Advance(context.Background())
	})
	if err != nil {
		t.Fatalf("Failed to reach multi-choice question: %v", err)
	}

	for _, option := range []string{"Sandy", "Rocky", "Grassy"} {
		w = call(h.ToggleOption, "POST", "/sessions/x/answer/toggle", s, models.ToggleOptionRequest{Option: option, Checked: true})
		testutil.AssertStatus(t, w, http.StatusOK)
	}
	w = call(h.ToggleOption, "POST", "/sessions/x/answer/toggle", s, models.ToggleOptionRequest{Option: "Grassy", Checked: false})
	testutil.AssertStatus(t, w, http.StatusOK)

	view := decodeView(t, w)
	if diff := cmp.Diff([]string{"Rocky", "Sandy"}, view.Answer.List()); diff != "" {
		t.Errorf("answer mismatch (-want +got):\n%s", diff)
	}
	if view.NextLabel != quiz.LabelLastQuestion {
		t.Errorf("Expected next label %q, got %q", quiz.LabelLastQuestion, view.NextLabel)
	}

	w = call(h.ToggleOption, "POST", "/sessions/x/answer/toggle", s, models.ToggleOptionRequest{Option: "Muddy", Checked: true})
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

	w = call(h.ToggleOption, "POST", "/sessions/x/answer/toggle", s, models.ToggleOptionRequest{Checked: true})
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestContactAndSubmit(t *testing.T) {
	sink := &captureSink{}
	h, store := newTestSessionHandler(t, sink)
	s := createTestSession(t, h)

	err := store.With(s.SessionID, func(session *quiz.Session) error {
		testutil.AnswerAll(t, session)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// Retreat only works inside the questionnaire
	w := call(h.Retreat, "POST", "/sessions/x/retreat", s, nil)
	testutil.AssertStatus(t, w, http.StatusConflict)

	w = call(h.UpdateContact, "PATCH", "/sessions/x/contact", s, models.UpdateContactRequest{
		FirstName: strPtr("  John "),
		LastName:  strPtr("O'Brien"),
	})
	testutil.AssertStatus(t, w, http.StatusOK)
	view := decodeView(t, w)
	if view.Phase != quiz.PhaseContactCollection || view.StepTitle != "Step 3: Your Contact Information" {
		t.Errorf("Unexpected contact view: %+v", view)
	}
	if view.Contact.FirstName != "John" || view.Contact.LastName != "O'Brien" {
		t.Errorf("Unexpected contact: %+v", view.Contact)
	}
	if view.CanSubmit || view.CanProceed {
		t.Error("Expected partial contact to block submission")
	}

	w = call(h.Submit, "POST", "/sessions/x/submit", s, nil)
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	var errResp models.ErrorResponse
	testutil.AssertJSON(t, w, &errResp)
	if errResp.Field != "email,phone" {
		t.Errorf("Expected missing fields 'email,phone', got '%s'", errResp.Field)
	}

	w = call(h.UpdateContact, "PATCH", "/sessions/x/contact", s, models.UpdateContactRequest{
		ContactMethod: strPtr("Fax"),
	})
	testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)

	w = call(h.UpdateContact, "PATCH", "/sessions/x/contact", s, models.UpdateContactRequest{
		Email:         strPtr("john@example.com"),
		Phone:         strPtr("555-123-4567"),
		ContactMethod: strPtr("Phone"),
	})
	testutil.AssertStatus(t, w, http.StatusOK)
	if view := decodeView(t, w); !view.CanSubmit || view.NextLabel != quiz.LabelSubmit {
		t.Errorf("Expected complete contact, got %+v", view)
	}

	req := testutil.MakeRequest("POST", "/sessions/x/submit", nil, map[string]string{
		"X-Session-Token": s.SessionToken,
		"X-Forwarded-For": "203.0.113.7",
		"User-Agent":      "dock-test",
	})
	req.SetPathValue("id", s.SessionID)
	w = httptest.NewRecorder()
	h.Submit(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	view = decodeView(t, w)
	if view.Phase != quiz.PhaseConfirmation || view.Message != "Thank You, John!" || view.Progress != 100 {
		t.Errorf("Unexpected confirmation view: %+v", view)
	}

	if len(sink.leads) != 1 {
		t.Fatalf("Expected 1 lead, got %d", len(sink.leads))
	}
	lead := sink.leads[0]
	if lead.SessionID != s.SessionID {
		t.Errorf("Expected session id %s, got %s", s.SessionID, lead.SessionID)
	}
	wantOrigin := quiz.Origin{IPHash: auth.HashIP("203.0.113.7", h.cfg.IPHashSalt), UserAgent: "dock-test"}
	if diff := cmp.Diff(wantOrigin, lead.Origin); diff != "" {
		t.Errorf("origin mismatch (-want +got):\n%s", diff)
	}
	if lead.Contact.ContactMethod != quiz.ContactPhone {
		t.Errorf("Expected contact method phone, got %s", lead.Contact.ContactMethod)
	}

	// Confirmation is terminal
	w = call(h.Advance, "POST", "/sessions/x/advance", s, nil)
	testutil.AssertStatus(t, w, http.StatusConflict)
	w = call(h.UpdateContact, "PATCH", "/sessions/x/contact", s, models.UpdateContactRequest{FirstName: strPtr("Jane")})
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestSubmitSinkFailure(t *testing.T) {
	sink := &captureSink{err: errors.New("crm unavailable")}
	h, store := newTestSessionHandler(t, sink)
	s := createTestSession(t, h)

	err := store.With(s.SessionID, func(session *quiz.Session) error {
		testutil.AnswerAll(t, session)
		c := testutil.SampleContact()
		session.SetFirstName(c.FirstName)
		session.SetLastName(c.LastName)
		session.SetEmail(c.Email)
		return session.SetPhone(c.Phone)
	})
	if err != nil {
		t.Fatal(err)
	}

	w := call(h.Advance, "POST", "/sessions/x/advance", s, nil)
	testutil.AssertStatus(t, w, http.StatusBadGateway)

	w = call(h.GetSession, "GET", "/sessions/x", s, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	if view := decodeView(t, w); view.Phase != quiz.PhaseContactCollection {
		t.Errorf("Expected session to stay in contact collection, got %s", view.Phase)
	}

	// A later retry succeeds once the sink recovers
	sink.mu.Lock()
	sink.err = nil
	sink.mu.Unlock()

	w = call(h.Submit, "POST", "/sessions/x/submit", s, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	if len(sink.leads) != 1 {
		t.Errorf("Expected 1 lead after retry, got %d", len(sink.leads))
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	h, _ := newTestSessionHandler(t, &captureSink{})
	first := createTestSession(t, h)
	second := createTestSession(t, h)

	call(h.Advance, "POST", "/sessions/x/advance", first, nil)
	call(h.SelectAnswer, "PUT", "/sessions/x/answer", first, answer(quiz.Scalar("Both")))

	w := call(h.GetSession, "GET", "/sessions/x", second, nil)
	testutil.AssertStatus(t, w, http.StatusOK)
	if view := decodeView(t, w); view.Phase != quiz.PhaseIntro {
		t.Errorf("Expected second session to stay in intro, got %s", view.Phase)
	}

	// One session's token does not open another
	w = call(h.GetSession, "GET", "/sessions/x", models.CreateSessionResponse{
		SessionID:    second.SessionID,
		SessionToken: first.SessionToken,
	}, nil)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}
