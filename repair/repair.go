// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package repair implements best-effort repair of malformed JSON text.
//
// Repair applies a fixed sequence of textual rewrites that correct common
// authoring mistakes, then checks whether the result is valid JSON:
//
//  1. trailing comma removal:             {"a":1,}       => {"a":1}
//  2. unquoted key quoting:               {a:1}          => {"a":1}
//  3. single-to-double quote conversion:  {"a":'x'}      => {"a":"x"}
//  4. missing comma insertion:            ["a" "b"]      => ["a", "b"]
//  5. brace/bracket balancing:            {"a":[1]       => {"a":[1]}
//
// Each step is applied only if it changes the text, and the names of the steps
// that did so are reported in order. The rewrites are heuristics, not a
// grammar-driven recovery: many inputs cannot be repaired, and Repair reports
// that rather than guessing further. The input is never modified; a fixed text
// is returned only if it parses.
package repair

import (
	"errors"

	"github.com/creachadair/jsonfix/format"
)

// Names of the repair steps, in the order they are applied.
const (
	TrailingCommas = "trailing comma removal"
	UnquotedKeys   = "unquoted key quoting"
	SingleQuotes   = "single-to-double quote conversion"
	MissingCommas  = "missing comma insertion"
	Balance        = "brace/bracket balancing"
)

// A Step is a single named textual transformation.  A step fires if Apply
// returns text different from its input.
type Step struct {
	Name  string
	Apply func(string) string
}

// Steps returns the standard repair pipeline, in order.
func Steps() []Step {
	return []Step{
		{Name: TrailingCommas, Apply: RemoveTrailingCommas},
		{Name: UnquotedKeys, Apply: QuoteKeys},
		{Name: SingleQuotes, Apply: ConvertSingleQuotes},
		{Name: MissingCommas, Apply: InsertMissingCommas},
		{Name: Balance, Apply: BalanceBrackets},
	}
}

// Result is the outcome of a repair.  If OK is true, Text is the repaired
// text, which is valid JSON, and Applied lists the names of the steps that
// changed it. Otherwise Reason describes why the text could not be repaired,
// and Err is the error reported by the final validation.
type Result struct {
	OK      bool
	Text    string
	Applied []string

	Reason string
	Err    error
}

// Repair attempts to repair text using the standard pipeline.
// It is shorthand for Run(text, Steps()).
func Repair(text string) Result { return Run(text, Steps()) }

// Run attempts to repair text by applying each of steps in order.
//
// If text is already valid JSON, Run reports success without applying any
// steps, and the result text equals the input. If text is empty or all
// whitespace, Run reports failure with reason "no content".
func Run(text string, steps []Step) Result {
	if err := format.Check(text); err == nil {
		return Result{OK: true, Text: text}
	} else if errors.Is(err, format.ErrNoContent) {
		return Result{Reason: err.Error(), Err: err}
	}

	fixed := text
	var applied []string
	for _, step := range steps {
		if next := step.Apply(fixed); next != fixed {
			fixed = next
			applied = append(applied, step.Name)
		}
	}
	if err := format.Check(fixed); err != nil {
		return Result{Reason: err.Error(), Err: err}
	}
	return Result{OK: true, Text: fixed, Applied: applied}
}
