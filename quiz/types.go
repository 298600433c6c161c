// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quiz

import (
	"context"
	"strings"
	"time"
)

// Kind is the input kind of a question.
type Kind string

const (
	KindSingleChoice Kind = "single-choice"
	KindNumeric      Kind = "numeric"
	KindFreeText     Kind = "free-text"
	KindMultiChoice  Kind = "multi-choice"
)

// IsChoice reports whether questions of this kind carry options.
func (k Kind) IsChoice() bool {
	return k == KindSingleChoice || k == KindMultiChoice
}

func (k Kind) valid() bool {
	switch k {
	case KindSingleChoice, KindNumeric, KindFreeText, KindMultiChoice:
		return true
	}
	return false
}

// Question is one immutable catalog entry.
type Question struct {
	ID          int      `json:"id"`
	Kind        Kind     `json:"kind"`
	Prompt      string   `json:"prompt"`
	HelpText    string   `json:"help_text,omitempty"`
	Options     []string `json:"options,omitempty"`
	Required    bool     `json:"required"`
	Placeholder string   `json:"placeholder,omitempty"`
	Unit        string   `json:"unit,omitempty"`
	Section     string   `json:"section,omitempty"`
}

// HasOption reports whether option is one of the question's options.
func (q Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Phase is the view phase of a session.
type Phase string

const (
	PhaseIntro             Phase = "intro"
	PhaseQuestionnaire     Phase = "questionnaire"
	PhaseContactCollection Phase = "contact-collection"
	PhaseConfirmation      Phase = "confirmation"
)

// ContactMethod is the respondent's preferred way to be reached.
type ContactMethod string

const (
	ContactEmail  ContactMethod = "email"
	ContactPhone  ContactMethod = "phone"
	ContactEither ContactMethod = "either"
)

// ParseContactMethod maps a case-insensitive name to a ContactMethod.
func ParseContactMethod(s string) (ContactMethod, error) {
	switch m := ContactMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case ContactEmail, ContactPhone, ContactEither:
		return m, nil
	}
	return "", invalid("contact_method", "must be one of: email, phone, either")
}

// ContactInfo is the contact form state. All four text fields are required
// before a lead can be submitted; none are format-checked.
type ContactInfo struct {
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	ContactMethod ContactMethod `json:"contact_method"`
}

// Missing returns the names of required fields that are still empty, in
// form order.
func (c ContactInfo) Missing() []string {
	var missing []string
	if c.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if c.LastName == "" {
		missing = append(missing, "last_name")
	}
	if c.Email == "" {
		missing = append(missing, "email")
	}
	if c.Phone == "" {
		missing = append(missing, "phone")
	}
	return missing
}

// Complete reports whether every required field is filled in.
func (c ContactInfo) Complete() bool {
	return len(c.Missing()) == 0
}

// Answer is a recorded answer to one question.
type Answer struct {
	QuestionID int   `json:"question_id"`
	Value      Value `json:"value"`
}

// Origin is optional request metadata attached to a lead.
type Origin struct {
	IPHash    string `json:"ip_hash,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// Lead is a completed quiz handed to a Sink.
type Lead struct {
	SessionID   string      `json:"session_id"`
	Answers     []Answer    `json:"answers"`
	Contact     ContactInfo `json:"contact"`
	Origin      Origin      `json:"origin"`
	SubmittedAt time.Time   `json:"submitted_at"`
}

// Sink receives completed leads.
type Sink interface {
	Submit(ctx context.Context, lead Lead) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, lead Lead) error

func (f SinkFunc) Submit(ctx context.Context, lead Lead) error {
	return f(ctx, lead)
}
