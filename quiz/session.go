// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quiz

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Button labels shown for the forward action in each phase.
const (
	LabelStart        = "Get My FREE Dock Package Now"
	LabelNext         = "Next"
	LabelLastQuestion = "Get My Dock Package"
	LabelSubmit       = "Get My Custom Dock Package"
)

const contactStepTitle = "Your Contact Information"

// Session is one respondent's quiz state. A Session is not safe for
// concurrent use; callers serialize events per session.
type Session struct {
	id      string
	catalog *Catalog
	sink    Sink
	now     func() time.Time

	phase   Phase
	index   int
	answers map[int]Value
	contact ContactInfo
	origin  Origin
	lead    *Lead
}

// NewSession returns a session in the intro phase.
func NewSession(id string, catalog *Catalog, sink Sink) *Session {
	return &Session{
		id:      id,
		catalog: catalog,
		sink:    sink,
		now:     time.Now,
		phase:   PhaseIntro,
		answers: make(map[int]Value, catalog.Len()),
		contact: ContactInfo{ContactMethod: ContactEither},
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Catalog() *Catalog { return s.catalog }

func (s *Session) Phase() Phase { return s.phase }

// Index returns the active question index. It is meaningful only in the
// questionnaire phase.
func (s *Session) Index() int { return s.index }

func (s *Session) Contact() ContactInfo { return s.contact }

// SetOrigin attaches request metadata that is forwarded with the lead.
func (s *Session) SetOrigin(o Origin) {
	s.origin = o
}

// Advance moves the session forward one step. In contact collection it
// submits the lead.
func (s *Session) Advance(ctx context.Context) error {
	switch s.phase {
	case PhaseIntro:
		s.phase = PhaseQuestionnaire
		s.index = 0
		return nil
	case PhaseQuestionnaire:
		if !s.CanProceed() {
			q := s.catalog.At(s.index)
			return invalid(questionField(q), "an answer is required")
		}
		if s.IsLastQuestion() {
			s.phase = PhaseContactCollection
			return nil
		}
		s.index++
		return nil
	case PhaseContactCollection:
		return s.Submit(ctx)
	}
	return fmt.Errorf("advance from %s: %w", s.phase, ErrInvalidTransition)
}

// Retreat moves back one question. At the first question it is a no-op.
func (s *Session) Retreat() error {
	if s.phase != PhaseQuestionnaire {
		return fmt.Errorf("retreat from %s: %w", s.phase, ErrInvalidTransition)
	}
	if s.index > 0 {
		s.index--
	}
	return nil
}

// IsLastQuestion reports whether the questionnaire is on its final question.
func (s *Session) IsLastQuestion() bool {
	return s.phase == PhaseQuestionnaire && s.index == s.catalog.Len()-1
}

// CurrentQuestion returns the active catalog entry.
func (s *Session) CurrentQuestion() (Question, error) {
	if s.phase != PhaseQuestionnaire {
		return Question{}, fmt.Errorf("no current question in %s: %w", s.phase, ErrInvalidTransition)
	}
	return s.catalog.At(s.index), nil
}

// SelectAnswer records v for the current question, replacing any earlier
// answer.
func (s *Session) SelectAnswer(v Value) error {
	q, err := s.CurrentQuestion()
	if err != nil {
		return err
	}
	if err := checkValue(q, v); err != nil {
		return err
	}
	s.answers[q.ID] = v.clone()
	return nil
}

// ToggleOption checks or unchecks one option of the current multi-choice
// question. The stored list keeps catalog order.
func (s *Session) ToggleOption(option string, checked bool) error {
	q, err := s.CurrentQuestion()
	if err != nil {
		return err
	}
	if q.Kind != KindMultiChoice {
		return invalid(questionField(q), "toggle needs a multi-choice question, got %s", q.Kind)
	}
	if !q.HasOption(option) {
		return invalid(questionField(q), "unknown option %q", option)
	}

	current := s.answers[q.ID].list
	selected := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		in := slices.Contains(current, o)
		if o == option {
			in = checked
		}
		if in {
			selected = append(selected, o)
		}
	}
	s.answers[q.ID] = Value{multi: true, list: selected}
	return nil
}

// CurrentAnswer returns the stored answer for the current question, or the
// empty value for its kind. Outside the questionnaire it returns the zero
// Value.
func (s *Session) CurrentAnswer() Value {
	q, err := s.CurrentQuestion()
	if err != nil {
		return Value{}
	}
	if v, ok := s.answers[q.ID]; ok {
		return v
	}
	return emptyFor(q.Kind)
}

// CanProceed reports whether the current question allows moving forward:
// it is optional, or it has a non-empty answer.
func (s *Session) CanProceed() bool {
	q, err := s.CurrentQuestion()
	if err != nil {
		return false
	}
	if !q.Required {
		return true
	}
	v, ok := s.answers[q.ID]
	return ok && !v.Empty()
}

// Answers returns the recorded answers in catalog order.
func (s *Session) Answers() []Answer {
	out := make([]Answer, 0, len(s.answers))
	for _, q := range s.catalog.questions {
		if v, ok := s.answers[q.ID]; ok {
			out = append(out, Answer{QuestionID: q.ID, Value: v.clone()})
		}
	}
	return out
}

// Progress returns the completion percentage shown in the progress bar.
func (s *Session) Progress() int {
	switch s.phase {
	case PhaseQuestionnaire:
		return int(math.Round(float64(s.index+1) / float64(s.catalog.Len()) * 100))
	case PhaseContactCollection, PhaseConfirmation:
		return 100
	}
	return 0
}

// StepTitle returns the heading for the current step, such as
// "Step 1: Dock Requirements".
func (s *Session) StepTitle() string {
	switch s.phase {
	case PhaseQuestionnaire:
		section := s.catalog.At(s.index).Section
		if section == "" {
			return ""
		}
		return fmt.Sprintf("Step %d: %s", s.catalog.step(section), section)
	case PhaseContactCollection:
		return fmt.Sprintf("Step %d: %s", len(s.catalog.sections)+1, contactStepTitle)
	}
	return ""
}

// NextLabel returns the label of the forward button for the current state.
func (s *Session) NextLabel() string {
	switch s.phase {
	case PhaseIntro:
		return LabelStart
	case PhaseQuestionnaire:
		if s.IsLastQuestion() {
			return LabelLastQuestion
		}
		return LabelNext
	case PhaseContactCollection:
		return LabelSubmit
	}
	return ""
}

// ConfirmationMessage returns the thank-you heading shown once the lead is
// submitted, or "" before that.
func (s *Session) ConfirmationMessage() string {
	if s.phase != PhaseConfirmation {
		return ""
	}
	return fmt.Sprintf("Thank You, %s!", s.contact.FirstName)
}

func (s *Session) SetFirstName(v string) error {
	return s.setContact(func(c *ContactInfo) { c.FirstName = strings.TrimSpace(v) })
}

func (s *Session) SetLastName(v string) error {
	return s.setContact(func(c *ContactInfo) { c.LastName = strings.TrimSpace(v) })
}

func (s *Session) SetEmail(v string) error {
	return s.setContact(func(c *ContactInfo) { c.Email = strings.TrimSpace(v) })
}

func (s *Session) SetPhone(v string) error {
	return s.setContact(func(c *ContactInfo) { c.Phone = strings.TrimSpace(v) })
}

func (s *Session) SetContactMethod(m ContactMethod) error {
	if _, err := ParseContactMethod(string(m)); err != nil {
		return err
	}
	return s.setContact(func(c *ContactInfo) { c.ContactMethod = m })
}

func (s *Session) setContact(set func(*ContactInfo)) error {
	if s.phase == PhaseConfirmation {
		return fmt.Errorf("contact is locked after submission: %w", ErrInvalidTransition)
	}
	set(&s.contact)
	return nil
}

// CanSubmit reports whether every required contact field is filled in.
func (s *Session) CanSubmit() bool {
	return s.contact.Complete()
}

// Submit forwards the lead to the sink and moves to confirmation. On sink
// failure the session stays in contact collection.
func (s *Session) Submit(ctx context.Context) error {
	if s.phase != PhaseContactCollection {
		return fmt.Errorf("submit from %s: %w", s.phase, ErrInvalidTransition)
	}
	if missing := s.contact.Missing(); len(missing) > 0 {
		return invalid(strings.Join(missing, ","), "required")
	}
	if s.sink == nil {
		return &SubmissionError{Err: errors.New("no sink configured")}
	}

	lead := Lead{
		SessionID:   s.id,
		Answers:     s.Answers(),
		Contact:     s.contact,
		Origin:      s.origin,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.sink.Submit(ctx, lead); err != nil {
		return &SubmissionError{Err: err}
	}

	s.lead = &lead
	s.phase = PhaseConfirmation
	return nil
}

// Lead returns the submitted lead once the session is confirmed.
func (s *Session) Lead() (Lead, bool) {
	if s.lead == nil {
		return Lead{}, false
	}
	return *s.lead, true
}

func checkValue(q Question, v Value) error {
	field := questionField(q)
	if q.Kind == KindMultiChoice {
		if !v.multi {
			return invalid(field, "multi-choice answer must be a list")
		}
		seen := make(map[string]struct{}, len(v.list))
		for _, o := range v.list {
			if !q.HasOption(o) {
				return invalid(field, "unknown option %q", o)
			}
			if _, dup := seen[o]; dup {
				return invalid(field, "option %q selected twice", o)
			}
			seen[o] = struct{}{}
		}
		return nil
	}

	if v.multi {
		return invalid(field, "%s answer must be a single value", q.Kind)
	}
	switch q.Kind {
	case KindSingleChoice:
		if v.scalar != "" && !q.HasOption(v.scalar) {
			return invalid(field, "unknown option %q", v.scalar)
		}
	case KindNumeric:
		if t := strings.TrimSpace(v.scalar); t != "" {
			if _, err := strconv.ParseFloat(t, 64); err != nil {
				return invalid(field, "%q is not a number", v.scalar)
			}
		}
	}
	return nil
}

func questionField(q Question) string {
	return "question_" + strconv.Itoa(q.ID)
}
