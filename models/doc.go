// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request and response types for the API.

# Request Types

Types for parsing incoming JSON:

  - SelectAnswerRequest: value (string or list of strings)
  - ToggleOptionRequest: option, checked
  - UpdateContactRequest: first_name, last_name, email, phone, contact_method

# Response Types

Types for JSON responses:

  - CreateSessionResponse: session_id, session_token, session
  - SessionView: phase, step title, progress, current question and answer,
    contact form state, can_proceed, can_submit
  - CatalogResponse: sections, questions
  - LeadSummary / LeadDetail / ListLeadsResponse: admin lead listing
  - ErrorResponse: error, message, field

Domain types (questions, answers, contact info) come from package quiz and
are embedded as-is.
*/
package models
