// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package catalog provides the dock quiz questions and loads alternative
// catalogs from YAML files.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/dock-quiz/quiz"
)

// Section names used by the default catalog.
const (
	SectionRequirements = "Dock Requirements"
	SectionUsage        = "Dock Usage & Essentials"
)

var defaultQuestions = []quiz.Question{
	{
		ID:       1,
		Kind:     quiz.KindSingleChoice,
		Prompt:   "What's the primary function of your dock?",
		HelpText: "This helps us recommend the right dock design and features",
		Options:  []string{"Boat Access", "Relax and Entertain", "Both"},
		Required: true,
		Section:  SectionRequirements,
	},
	{
		ID:          2,
		Kind:        quiz.KindNumeric,
		Prompt:      "Water depth at dock end (approximate feet)",
		HelpText:    "Measure from where you want the end of your dock to be",
		Required:    true,
		Placeholder: "Enter depth in feet",
		Unit:        "ft",
		Section:     SectionRequirements,
	},
	{
		ID:       3,
		Kind:     quiz.KindSingleChoice,
		Prompt:   "Does your site experience water level variations?",
		HelpText: "Seasonal changes, tides, or dam-controlled water levels",
		Options:  []string{"Yes", "No", "Unsure"},
		Required: true,
		Section:  SectionRequirements,
	},
	{
		ID:       4,
		Kind:     quiz.KindSingleChoice,
		Prompt:   "Do you have an existing dock you'd like us to remove?",
		Options:  []string{"Yes", "No"},
		Required: true,
		Section:  SectionRequirements,
	},
	{
		ID:       5,
		Kind:     quiz.KindMultiChoice,
		Prompt:   "Describe your shoreline (select all that apply)",
		Options:  []string{"Rocky", "Sandy", "Grassy", "Mixed small rocks/soil", "Other"},
		Required: true,
		Section:  SectionRequirements,
	},
	{
		ID:       6,
		Kind:     quiz.KindSingleChoice,
		Prompt:   "What's your shoreline slope?",
		Options:  []string{"Beach (Gentle)", "Medium Slope", "Steep Slope", "Cliff"},
		Required: true,
		Section:  SectionRequirements,
	},
	{
		ID:       7,
		Kind:     quiz.KindSingleChoice,
		Prompt:   "Wave and wind exposure at your site",
		HelpText: "How protected is your waterfront from waves and wind?",
		Options:  []string{"Protected", "Moderate", "Very Windy or Wavy", "Unsure"},
		Required: true,
		Section:  SectionRequirements,
	},
	{
		ID:          8,
		Kind:        quiz.KindFreeText,
		Prompt:      "Lake or river name",
		HelpText:    "This helps us understand local conditions and regulations",
		Required:    true,
		Placeholder: "e.g., Lake Minnetonka, Mississippi River",
		Section:     SectionUsage,
	},
	{
		ID:       9,
		Kind:     quiz.KindSingleChoice,
		Prompt:   "Do you own a boat or personal watercraft?",
		Options:  []string{"Yes", "No"},
		Required: true,
		Section:  SectionUsage,
	},
	{
		ID:          10,
		Kind:        quiz.KindNumeric,
		Prompt:      "Boat length (if applicable)",
		HelpText:    "Length of your boat in feet",
		Required:    false,
		Placeholder: "Enter boat length",
		Unit:        "ft",
		Section:     SectionUsage,
	},
	{
		ID:       11,
		Kind:     quiz.KindMultiChoice,
		Prompt:   "Interested in dock accessories? (Select all that apply)",
		Options:  []string{"Dock Ladder", "Dock Cleats", "Dock Bumpers", "Lights", "Kayak Rack", "Not at this time"},
		Required: false,
		Section:  SectionUsage,
	},
}

// Default returns the built-in dock questionnaire.
func Default() *quiz.Catalog {
	c, err := quiz.NewCatalog(defaultQuestions)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid default catalog: %v", err))
	}
	return c
}

// File is the YAML layout of a catalog file.
type File struct {
	Questions []QuestionEntry `yaml:"questions"`
}

// QuestionEntry is one question in a catalog file.
type QuestionEntry struct {
	ID          int      `yaml:"id"`
	Kind        string   `yaml:"kind"`
	Prompt      string   `yaml:"prompt"`
	HelpText    string   `yaml:"help_text,omitempty"`
	Options     []string `yaml:"options,omitempty"`
	Required    bool     `yaml:"required"`
	Placeholder string   `yaml:"placeholder,omitempty"`
	Unit        string   `yaml:"unit,omitempty"`
	Section     string   `yaml:"section,omitempty"`
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*quiz.Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	questions := make([]quiz.Question, 0, len(f.Questions))
	for _, e := range f.Questions {
		questions = append(questions, quiz.Question{
			ID:          e.ID,
			Kind:        quiz.Kind(e.Kind),
			Prompt:      e.Prompt,
			HelpText:    e.HelpText,
			Options:     e.Options,
			Required:    e.Required,
			Placeholder: e.Placeholder,
			Unit:        e.Unit,
			Section:     e.Section,
		})
	}

	c, err := quiz.NewCatalog(questions)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

// Load reads a YAML catalog file. An empty path returns the default
// catalog.
func Load(path string) (*quiz.Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}
