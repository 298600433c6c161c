// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sink

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/danielhkuo/dock-quiz/quiz"
)

// LogSink logs each lead and never fails.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink returns a LogSink writing to logger, or to slog.Default when
// logger is nil.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Submit(ctx context.Context, lead quiz.Lead) error {
	answers := make([]any, 0, len(lead.Answers))
	for _, a := range lead.Answers {
		answers = append(answers, slog.String(questionKey(a.QuestionID), a.Value.String()))
	}

	s.logger.InfoContext(ctx, "lead submitted",
		"session_id", lead.SessionID,
		slog.Group("contact",
			"first_name", lead.Contact.FirstName,
			"last_name", lead.Contact.LastName,
			"email", lead.Contact.Email,
			"phone", lead.Contact.Phone,
			"method", string(lead.Contact.ContactMethod),
		),
		slog.Group("answers", answers...),
		"submitted_at", lead.SubmittedAt,
	)
	return nil
}

func questionKey(id int) string {
	return "q" + strconv.Itoa(id)
}
