//
//  Copyright © Altinn. All rights reserved.
//

// Package assert provides a combinator framework for validating
// attribute sets before resolution and delegation.
//
// An [Assertion] is a predicate over a collection of attribute matches
// that reports failures by writing into a shared [Errors] map, keyed by
// the name of the failing rule. Assertions never fail via Go errors;
// validation problems are data, returned to callers as a
// [ProblemDetails].
//
// Combinators compose assertions:
//   - [All]: every assertion must pass; all failures accumulate
//   - [Any]: at least one assertion must pass
//   - [Single]: exactly one assertion must pass
//
// Use [Evaluate] to run assertions against a value set and [Join] to
// merge the outcomes of several independent evaluations.
package assert

import (
	"fmt"
	"slices"

	"github.com/altinn/accessmgmt/pkg/core/attribute"
)

// Errors is a structured validation error map: rule name to messages.
type Errors map[string][]string

// Add records messages under the given rule key, ignoring messages
// already present.
func (e Errors) Add(key string, messages ...string) {
	for _, m := range messages {
		if !slices.Contains(e[key], m) {
			e[key] = append(e[key], m)
		}
	}
}

// Merge folds all entries of other into e, deduplicating messages.
func (e Errors) Merge(other Errors) {
	for key, messages := range other {
		e.Add(key, messages...)
	}
}

// Assertion is a validation predicate over a collection of attribute
// matches. A passing assertion writes nothing; a failing assertion adds
// one or more messages to the error map under its rule name.
type Assertion func(errs Errors, values []attribute.AttributeMatch)

// singleKey is the rule name used by the Single combinator.
const singleKey = "Single"

// All composes assertions so that every one of them runs against the
// same value collection, with every produced error merged into the
// shared error map.
func All(assertions ...Assertion) Assertion {
	return func(errs Errors, values []attribute.AttributeMatch) {
		for _, assertion := range assertions {
			assertion(errs, values)
		}
	}
}

// Any composes assertions so that the combination passes if at least
// one of them passes. Each assertion runs against a fresh error map; if
// none passed, all captured per-branch errors are merged into the
// caller's map.
func Any(assertions ...Assertion) Assertion {
	return func(errs Errors, values []attribute.AttributeMatch) {
		failures := make([]Errors, 0, len(assertions))
		for _, assertion := range assertions {
			branch := Errors{}
			assertion(branch, values)
			if len(branch) == 0 {
				return
			}
			failures = append(failures, branch)
		}
		for _, f := range failures {
			errs.Merge(f)
		}
	}
}

// Single composes assertions so that exactly one of them must pass.
// Zero passing assertions is a failure carrying all captured per-branch
// errors; more than one passing is a failure on its own.
func Single(assertions ...Assertion) Assertion {
	return func(errs Errors, values []attribute.AttributeMatch) {
		failures := make([]Errors, 0, len(assertions))
		for _, assertion := range assertions {
			branch := Errors{}
			assertion(branch, values)
			if len(branch) > 0 {
				failures = append(failures, branch)
			}
		}

		passed := len(assertions) - len(failures)
		switch {
		case passed == 1:
			return
		case passed == 0:
			errs.Add(singleKey, "none of the assertions passed, exactly one must pass")
			for _, f := range failures {
				errs.Merge(f)
			}
		default:
			errs.Add(singleKey, fmt.Sprintf("%d assertions passed, exactly one must pass", passed))
		}
	}
}

// Evaluate runs each assertion once against the values and returns the
// accumulated validation problems, or nil if every assertion passed.
func Evaluate(values []attribute.AttributeMatch, assertions ...Assertion) *ProblemDetails {
	errs := Errors{}
	for _, assertion := range assertions {
		assertion(errs, values)
	}
	if len(errs) == 0 {
		return nil
	}
	return newProblem(errs)
}

// Join merges multiple independent evaluation results (e.g. from
// different input batches) into one, or returns nil if every evaluation
// was nil.
func Join(evaluations ...*ProblemDetails) *ProblemDetails {
	errs := Errors{}
	for _, ev := range evaluations {
		if ev == nil {
			continue
		}
		errs.Merge(ev.Errors)
	}
	if len(errs) == 0 {
		return nil
	}
	return newProblem(errs)
}
