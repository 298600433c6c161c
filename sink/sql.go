// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/danielhkuo/dock-quiz/quiz"
)

// ErrLeadNotFound is returned by GetLead for unknown ids.
var ErrLeadNotFound = errors.New("lead not found")

// StoredLead is a lead read back from the database.
type StoredLead struct {
	ID string
	quiz.Lead
}

// SQLSink stores leads in the lead and lead_answer tables.
type SQLSink struct {
	db *sql.DB
}

func NewSQLSink(db *sql.DB) *SQLSink {
	return &SQLSink{db: db}
}

// Submit inserts the lead and its answers in one transaction. A lead
// already stored for the same session is treated as submitted, so a retry
// after a lost commit acknowledgement succeeds.
func (s *SQLSink) Submit(ctx context.Context, lead quiz.Lead) error {
	leadID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO lead (id, session_id, first_name, last_name, email, phone, contact_method, ip_hash, user_agent, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (session_id) DO NOTHING
	`, leadID, lead.SessionID, lead.Contact.FirstName, lead.Contact.LastName,
		lead.Contact.Email, lead.Contact.Phone, string(lead.Contact.ContactMethod),
		nullString(lead.Origin.IPHash), nullString(lead.Origin.UserAgent), lead.SubmittedAt)
	if err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check lead insert: %w", err)
	}
	if inserted == 0 {
		slog.Warn("lead already stored", "session_id", lead.SessionID)
		return nil
	}

	for i, a := range lead.Answers {
		value, err := json.Marshal(a.Value)
		if err != nil {
			return fmt.Errorf("failed to encode answer %d: %w", a.QuestionID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO lead_answer (lead_id, question_id, position, value)
			VALUES ($1, $2, $3, $4)
		`, leadID, a.QuestionID, i, string(value))
		if err != nil {
			return fmt.Errorf("failed to insert answer %d: %w", a.QuestionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit lead: %w", err)
	}

	slog.Info("lead stored", "lead_id", leadID, "session_id", lead.SessionID, "answers", len(lead.Answers))
	return nil
}

// ListLeads returns the most recent leads, newest first, without answers.
func (s *SQLSink) ListLeads(ctx context.Context, limit int) ([]StoredLead, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, first_name, last_name, email, phone, contact_method, ip_hash, user_agent, submitted_at
		FROM lead
		ORDER BY submitted_at DESC, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	leads := []StoredLead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leads: %w", err)
	}
	return leads, nil
}

// GetLead returns one lead with its answers in submission order.
func (s *SQLSink) GetLead(ctx context.Context, id string) (StoredLead, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, first_name, last_name, email, phone, contact_method, ip_hash, user_agent, submitted_at
		FROM lead
		WHERE id = $1
	`, id)
	lead, err := scanLead(row)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredLead{}, ErrLeadNotFound
	}
	if err != nil {
		return StoredLead{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT question_id, value
		FROM lead_answer
		WHERE lead_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return StoredLead{}, fmt.Errorf("failed to query answers: %w", err)
	}
	defer rows.Close()

	lead.Answers = []quiz.Answer{}
	for rows.Next() {
		var a quiz.Answer
		var raw string
		if err := rows.Scan(&a.QuestionID, &raw); err != nil {
			return StoredLead{}, fmt.Errorf("failed to scan answer: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &a.Value); err != nil {
			return StoredLead{}, fmt.Errorf("failed to decode answer %d: %w", a.QuestionID, err)
		}
		lead.Answers = append(lead.Answers, a)
	}
	if err := rows.Err(); err != nil {
		return StoredLead{}, fmt.Errorf("failed to read answers: %w", err)
	}
	return lead, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLead(row scanner) (StoredLead, error) {
	var lead StoredLead
	var method string
	var ipHash, userAgent sql.NullString
	err := row.Scan(
		&lead.ID, &lead.SessionID,
		&lead.Contact.FirstName, &lead.Contact.LastName,
		&lead.Contact.Email, &lead.Contact.Phone, &method,
		&ipHash, &userAgent, &lead.SubmittedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredLead{}, err
	}
	if err != nil {
		return StoredLead{}, fmt.Errorf("failed to scan lead: %w", err)
	}
	lead.Contact.ContactMethod = quiz.ContactMethod(method)
	lead.Origin = quiz.Origin{IPHash: ipHash.String, UserAgent: userAgent.String}
	return lead, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
