//
//  Copyright © Altinn. All rights reserved.
//

// Package attribute defines the attribute data model shared by the
// resolver, assertion, and delegation packages.
//
// An [AttributeMatch] is one fact about a subject or resource, keyed by
// a URN from the catalog in urn.go (e.g. "urn:altinn:person:identifier-no").
// The same logical fact may be produced by multiple resolution branches;
// sets of matches are therefore always deduplicated by (ID, Value).
//
// Attribute ids are compared case-insensitively throughout.
package attribute

import "strings"

// AttributeMatch is an (id, value) pair identifying one fact about a
// subject or resource. It is an immutable value type; equality is
// structural.
type AttributeMatch struct {
	// ID is the URN identifying the fact type.
	ID string `json:"id" yaml:"id"`
	// Value is the fact itself, always carried as a string.
	Value string `json:"value" yaml:"value"`
}

// String returns the match in "id=value" form.
func (a AttributeMatch) String() string {
	return a.ID + "=" + a.Value
}

// EqualID reports whether the match carries the given attribute id,
// ignoring case.
func (a AttributeMatch) EqualID(id string) bool {
	return strings.EqualFold(a.ID, id)
}

// Value returns the value of the attribute with the given id, and
// whether it was present.
func Value(attributes []AttributeMatch, id string) (string, bool) {
	for _, a := range attributes {
		if a.EqualID(id) {
			return a.Value, true
		}
	}
	return "", false
}

// Has reports whether any attribute carries the given id.
func Has(attributes []AttributeMatch, id string) bool {
	_, ok := Value(attributes, id)
	return ok
}

// Dedup returns the attributes with structural duplicates removed,
// preserving first-occurrence order. The input is not modified.
func Dedup(attributes []AttributeMatch) []AttributeMatch {
	seen := make(map[AttributeMatch]struct{}, len(attributes))
	out := make([]AttributeMatch, 0, len(attributes))
	for _, a := range attributes {
		key := AttributeMatch{ID: strings.ToLower(a.ID), Value: a.Value}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}

// Missing returns the wanted ids not present in the attribute set.
func Missing(attributes []AttributeMatch, wanted []string) []string {
	var out []string
	for _, w := range wanted {
		if !Has(attributes, w) {
			out = append(out, w)
		}
	}
	return out
}

// Satisfied reports whether every wanted id is present in the set.
func Satisfied(attributes []AttributeMatch, wanted []string) bool {
	return len(Missing(attributes, wanted)) == 0
}
