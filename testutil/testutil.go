// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/dock-quiz/cliparse"
	"github.com/danielhkuo/dock-quiz/db"
	"github.com/danielhkuo/dock-quiz/quiz"
)

// SetupTestDB creates a fresh SQLite database with the full schema in a
// per-test temp directory. The database is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		Sink:         cliparse.SinkSQL,
		DatabaseType: "sqlite",
		DatabaseURL:  "file:test.db",
		AdminKey:     "test-admin-key",
		SessionSalt:  "test-session-salt",
		IPHashSalt:   "test-ip-salt",
		SessionTTL:   30 * time.Minute,
		SinkRetries:  0,
	}
}

// SampleContact returns the contact record used across tests.
func SampleContact() quiz.ContactInfo {
	return quiz.ContactInfo{
		FirstName:     "John",
		LastName:      "Smith",
		Email:         "john@example.com",
		Phone:         "555-123-4567",
		ContactMethod: quiz.ContactEither,
	}
}

// SampleLead returns a lead with one scalar and one list answer.
func SampleLead(sessionID string) quiz.Lead {
	return quiz.Lead{
		SessionID: sessionID,
		Answers: []quiz.Answer{
			{QuestionID: 1, Value: quiz.Scalar("Both")},
			{QuestionID: 5, Value: quiz.Multi("Rocky", "Sandy")},
		},
		Contact:     SampleContact(),
		Origin:      quiz.Origin{IPHash: "0123456789abcdef", UserAgent: "go-test"},
		SubmittedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// AnswerAll drives s from intro to contact collection, answering every
// required question with its first option, "1" for numerics, or "Lake Test"
// for free text.
func AnswerAll(t *testing.T, s *quiz.Session) {
	t.Helper()
	ctx := context.Background()

	if s.Phase() == quiz.PhaseIntro {
		if err := s.Advance(ctx); err != nil {
			t.Fatalf("Failed to start quiz: %v", err)
		}
	}
	for s.Phase() == quiz.PhaseQuestionnaire {
		q, err := s.CurrentQuestion()
		if err != nil {
			t.Fatalf("Failed to get question: %v", err)
		}
		if q.Required {
			var v quiz.Value
			switch q.Kind {
			case quiz.KindMultiChoice:
				v = quiz.Multi(q.Options[0])
			case quiz.KindSingleChoice:
				v = quiz.Scalar(q.Options[0])
			case quiz.KindNumeric:
				v = quiz.Scalar("1")
			default:
				v = quiz.Scalar("Lake Test")
			}
			if err := s.SelectAnswer(v); err != nil {
				t.Fatalf("Failed to answer question %d: %v", q.ID, err)
			}
		}
		if err := s.Advance(ctx); err != nil {
			t.Fatalf("Failed to advance past question %d: %v", q.ID, err)
		}
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
