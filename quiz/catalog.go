// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package quiz

import (
	"errors"
	"fmt"
	"slices"
)

// Catalog is the fixed, ordered list of questions. It is never mutated
// after NewCatalog returns.
type Catalog struct {
	questions []Question
	byID      map[int]int
	sections  []string
}

// NewCatalog validates the questions and returns a catalog in the order
// given.
func NewCatalog(questions []Question) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, errors.New("catalog has no questions")
	}

	c := &Catalog{
		questions: make([]Question, 0, len(questions)),
		byID:      make(map[int]int, len(questions)),
	}
	for i, q := range questions {
		if err := checkQuestion(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("question %d: duplicate id %d", i+1, q.ID)
		}
		q.Options = slices.Clone(q.Options)
		c.byID[q.ID] = len(c.questions)
		c.questions = append(c.questions, q)
		if q.Section != "" && !slices.Contains(c.sections, q.Section) {
			c.sections = append(c.sections, q.Section)
		}
	}
	return c, nil
}

func checkQuestion(q Question) error {
	if q.ID <= 0 {
		return fmt.Errorf("id must be positive, got %d", q.ID)
	}
	if !q.Kind.valid() {
		return fmt.Errorf("unknown kind %q", q.Kind)
	}
	if q.Prompt == "" {
		return errors.New("prompt is required")
	}
	if q.Kind.IsChoice() {
		if len(q.Options) == 0 {
			return fmt.Errorf("%s question needs options", q.Kind)
		}
		seen := make(map[string]struct{}, len(q.Options))
		for _, o := range q.Options {
			if o == "" {
				return errors.New("empty option")
			}
			if _, dup := seen[o]; dup {
				return fmt.Errorf("duplicate option %q", o)
			}
			seen[o] = struct{}{}
		}
	} else if len(q.Options) > 0 {
		return fmt.Errorf("%s question cannot have options", q.Kind)
	}
	return nil
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// At returns the question at index i. It panics if i is out of range.
func (c *Catalog) At(i int) Question {
	return c.questions[i]
}

// ByID looks a question up by id.
func (c *Catalog) ByID(id int) (Question, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Question{}, false
	}
	return c.questions[i], true
}

// Questions returns a copy of the questions in order.
func (c *Catalog) Questions() []Question {
	out := make([]Question, len(c.questions))
	for i, q := range c.questions {
		q.Options = slices.Clone(q.Options)
		out[i] = q
	}
	return out
}

// Sections returns the distinct section names in order of first use.
func (c *Catalog) Sections() []string {
	return slices.Clone(c.sections)
}

// step returns the 1-based step number of section, or 0 if unknown.
func (c *Catalog) step(section string) int {
	return slices.Index(c.sections, section) + 1
}
