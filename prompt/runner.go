// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package prompt

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danielhkuo/dock-quiz/quiz"
)

const (
	// PreviousOption is appended to choice prompts after the first question.
	PreviousOption = "« Previous"
	// BackInput typed into a text prompt goes back one question.
	BackInput = "<"

	retryOption = "Try again"
	quitOption  = "Quit"

	progressWidth = 20
)

var (
	headlineStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0d9488"))
	stepStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563eb"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
	successStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#16a34a"))
)

// Runner walks one session through the quiz on a terminal.
type Runner struct {
	driver Driver
}

func NewRunner(driver Driver) *Runner {
	return &Runner{driver: driver}
}

// Run drives s until it reaches confirmation or input is aborted.
func (r *Runner) Run(ctx context.Context, s *quiz.Session) error {
	for {
		var err error
		switch s.Phase() {
		case quiz.PhaseIntro:
			err = r.intro(ctx, s)
		case quiz.PhaseQuestionnaire:
			err = r.question(ctx, s)
		case quiz.PhaseContactCollection:
			err = r.contact(ctx, s)
		case quiz.PhaseConfirmation:
			return r.confirmation(ctx, s)
		default:
			return fmt.Errorf("unknown phase %q", s.Phase())
		}
		if err != nil {
			return err
		}
	}
}

func (r *Runner) intro(ctx context.Context, s *quiz.Session) error {
	msg := headlineStyle.Render("Find the Perfect Dock for Your Shoreline, In 3 Minutes or Less") + "\n" +
		"Take our short quiz and get your custom dock recommendation, complete buyer's guide, and FREE 3D rendering of your dream dock.\n" +
		mutedStyle.Render(s.NextLabel()+" »")
	if err := r.driver.Info(ctx, msg); err != nil {
		return err
	}
	return s.Advance(ctx)
}

func (r *Runner) question(ctx context.Context, s *quiz.Session) error {
	q, err := s.CurrentQuestion()
	if err != nil {
		return err
	}
	if err := r.driver.Info(ctx, header(s)); err != nil {
		return err
	}

	back, err := r.ask(ctx, s, q)
	if err != nil {
		return r.reject(ctx, err)
	}
	if back {
		return s.Retreat()
	}
	return r.reject(ctx, s.Advance(ctx))
}

// ask prompts for q and records the answer. It reports true when the
// respondent chose to go back.
func (r *Runner) ask(ctx context.Context, s *quiz.Session, q quiz.Question) (bool, error) {
	canGoBack := s.Index() > 0
	current := s.CurrentAnswer()

	switch q.Kind {
	case quiz.KindSingleChoice:
		options := withPrevious(q.Options, canGoBack)
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      q.Prompt,
			Options:      options,
			DefaultIndex: slices.Index(q.Options, current.String()),
			Help:         q.HelpText,
		})
		if err != nil {
			return false, err
		}
		if idx < 0 || idx >= len(options) {
			return false, fmt.Errorf("selection %d out of range", idx)
		}
		if options[idx] == PreviousOption {
			return true, nil
		}
		return false, s.SelectAnswer(quiz.Scalar(options[idx]))

	case quiz.KindMultiChoice:
		options := withPrevious(q.Options, canGoBack)
		var defaults []int
		for _, v := range current.List() {
			defaults = append(defaults, slices.Index(q.Options, v))
		}
		picked, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  q.Prompt,
			Options:  options,
			Defaults: defaults,
			Help:     q.HelpText,
		})
		if err != nil {
			return false, err
		}
		selected := make([]string, 0, len(picked))
		for _, idx := range picked {
			if idx < 0 || idx >= len(options) {
				return false, fmt.Errorf("selection %d out of range", idx)
			}
			if options[idx] == PreviousOption {
				return true, nil
			}
			selected = append(selected, options[idx])
		}
		return false, s.SelectAnswer(quiz.Multi(selected...))

	default:
		help := q.HelpText
		if canGoBack {
			help = strings.TrimSpace(help + " (enter " + BackInput + " to go back)")
		}
		message := q.Prompt
		if q.Unit != "" {
			message += " (" + q.Unit + ")"
		}
		text, err := r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: current.String(),
			Help:    help,
		})
		if err != nil {
			return false, err
		}
		if canGoBack && strings.TrimSpace(text) == BackInput {
			return true, nil
		}
		return false, s.SelectAnswer(quiz.Scalar(strings.TrimSpace(text)))
	}
}

func (r *Runner) contact(ctx context.Context, s *quiz.Session) error {
	if !s.CanSubmit() {
		if err := r.driver.Info(ctx, header(s)); err != nil {
			return err
		}
		if err := r.askContact(ctx, s); err != nil {
			return err
		}
	}

	err := s.Submit(ctx)
	var subErr *quiz.SubmissionError
	if !errors.As(err, &subErr) {
		return r.reject(ctx, err)
	}

	if err := r.driver.Info(ctx, warnStyle.Render("We couldn't send your details: "+subErr.Err.Error())); err != nil {
		return err
	}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: "What would you like to do?",
		Options: []string{retryOption, quitOption},
	})
	if err != nil {
		return err
	}
	if idx != 0 {
		return subErr
	}
	return nil
}

func (r *Runner) askContact(ctx context.Context, s *quiz.Session) error {
	c := s.Contact()
	fields := []struct {
		message string
		current string
		set     func(string) error
	}{
		{"First Name", c.FirstName, s.SetFirstName},
		{"Last Name", c.LastName, s.SetLastName},
		{"Email Address", c.Email, s.SetEmail},
		{"Phone Number", c.Phone, s.SetPhone},
	}
	for _, f := range fields {
		value, err := r.driver.Input(ctx, InputConfig{
			Message:   f.message,
			Default:   f.current,
			Validator: required,
		})
		if err != nil {
			return err
		}
		if err := f.set(value); err != nil {
			return err
		}
	}

	methods := []quiz.ContactMethod{quiz.ContactEmail, quiz.ContactPhone, quiz.ContactEither}
	labels := []string{"Email", "Phone", "Either"}
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      "Preferred contact method",
		Options:      labels,
		DefaultIndex: slices.Index(methods, c.ContactMethod),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(methods) {
		return fmt.Errorf("selection %d out of range", idx)
	}
	return s.SetContactMethod(methods[idx])
}

func (r *Runner) confirmation(ctx context.Context, s *quiz.Session) error {
	msg := successStyle.Render(s.ConfirmationMessage()) + "\n" +
		"Your custom dock proposal is being prepared by our engineering team."
	return r.driver.Info(ctx, msg)
}

// reject shows a validation failure so the same step is asked again. Other
// errors are returned unchanged.
func (r *Runner) reject(ctx context.Context, err error) error {
	var validation *quiz.ValidationError
	if !errors.As(err, &validation) {
		return err
	}
	return r.driver.Info(ctx, warnStyle.Render(validation.Reason))
}

func header(s *quiz.Session) string {
	var b strings.Builder
	if title := s.StepTitle(); title != "" {
		b.WriteString(stepStyle.Render(title))
		b.WriteString("\n")
	}
	if s.Phase() == quiz.PhaseQuestionnaire {
		fmt.Fprintf(&b, "Question %d of %d  ", s.Index()+1, s.Catalog().Len())
	}
	b.WriteString(progressBar(s.Progress()))
	return b.String()
}

func progressBar(percent int) string {
	filled := percent * progressWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressWidth-filled)
	return mutedStyle.Render(fmt.Sprintf("%s %d%%", bar, percent))
}

func withPrevious(options []string, canGoBack bool) []string {
	out := slices.Clone(options)
	if canGoBack {
		out = append(out, PreviousOption)
	}
	return out
}

func required(v string) error {
	if strings.TrimSpace(v) == "" {
		return errors.New("this field is required")
	}
	return nil
}
