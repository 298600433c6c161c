// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/danielhkuo/dock-quiz/quiz"
)

// Request types

// Value is a pointer so a missing field can be told apart from "".
type SelectAnswerRequest struct {
	Value *quiz.Value `json:"value"`
}

type ToggleOptionRequest struct {
	Option  string `json:"option"`
	Checked bool   `json:"checked"`
}

// Only non-nil fields are applied.
type UpdateContactRequest struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	ContactMethod *string `json:"contact_method"`
}

// Response types

type CreateSessionResponse struct {
	SessionID    string      `json:"session_id"`
	SessionToken string      `json:"session_token"`
	Session      SessionView `json:"session"`
}

// SessionView is everything a client needs to render the current step.
type SessionView struct {
	ID             string           `json:"id"`
	Phase          quiz.Phase       `json:"phase"`
	StepTitle      string           `json:"step_title,omitempty"`
	Progress       int              `json:"progress"`
	QuestionNumber int              `json:"question_number,omitempty"`
	QuestionCount  int              `json:"question_count"`
	Question       *quiz.Question   `json:"question,omitempty"`
	Answer         *quiz.Value      `json:"answer,omitempty"`
	CanProceed     bool             `json:"can_proceed"`
	CanGoBack      bool             `json:"can_go_back"`
	NextLabel      string           `json:"next_label,omitempty"`
	Contact        quiz.ContactInfo `json:"contact"`
	CanSubmit      bool             `json:"can_submit"`
	Message        string           `json:"message,omitempty"`
}

type CatalogResponse struct {
	Sections  []string        `json:"sections"`
	Questions []quiz.Question `json:"questions"`
}

type LeadSummary struct {
	ID            string             `json:"id"`
	SessionID     string             `json:"session_id"`
	FirstName     string             `json:"first_name"`
	LastName      string             `json:"last_name"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	ContactMethod quiz.ContactMethod `json:"contact_method"`
	SubmittedAt   time.Time          `json:"submitted_at"`
	SubmittedAgo  string             `json:"submitted_ago"`
}

type LeadDetail struct {
	LeadSummary
	Answers []quiz.Answer `json:"answers"`
	Origin  quiz.Origin   `json:"origin"`
}

type ListLeadsResponse struct {
	Leads []LeadSummary `json:"leads"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}
