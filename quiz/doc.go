// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package quiz implements the dock quiz session state machine.

# Phases

A session moves through four phases:

	intro → questionnaire → contact-collection → confirmation

Inside the questionnaire the session tracks a question index over the
catalog. Advance moves forward (blocked while a required question is
unanswered), Retreat moves back and clamps at the first question.
Confirmation is terminal.

	s := quiz.NewSession(id, catalog, sink)
	_ = s.Advance(ctx)                         // intro → questionnaire
	_ = s.SelectAnswer(quiz.Scalar("Both"))
	_ = s.Advance(ctx)                         // next question

# Answers

Answers are tagged values: Scalar for single-choice, numeric, and
free-text questions, Multi for multi-choice questions. The shape is checked
against the question kind when the answer is recorded.

# Submission

From contact collection, Submit (or Advance) forwards a Lead to the
session's Sink. A sink failure returns a *SubmissionError and leaves the
session in contact collection so the respondent can try again.

# Errors

Illegal transitions return ErrInvalidTransition. Blocked moves return a
*ValidationError naming the field at fault.
*/
package quiz
