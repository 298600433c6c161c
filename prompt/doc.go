// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package prompt runs the dock quiz in a terminal.

A Runner drives a quiz.Session through a Driver. NewSurveyDriver prompts
interactively; tests script a Driver instead.

	runner := prompt.NewRunner(prompt.NewSurveyDriver())
	err := runner.Run(ctx, session)

Choice prompts offer PreviousOption after the first question, and text
prompts accept BackInput to go back. Rejected answers are explained and the
same question is asked again. Ctrl+C returns ErrAborted.
*/
package prompt
