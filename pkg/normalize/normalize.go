// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

// Package normalize canonicalizes login identifiers before storage and lookup.
//
// # Usage
//
// Usernames and emails are unique keys in the credential store. Normalizing
// them to one canonical form stops visually identical Unicode variants
// ("ｕser" vs "user", composed vs decomposed accents) from registering as
// distinct accounts.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Identifier converts a username to its canonical form.
//
// # Transformation Pipeline
//
// 1. Trims surrounding whitespace.
// 2. Normalizes to NFKC (compatibility composition: fullwidth forms, ligatures).
// 3. Applies Unicode case folding.
//
// A fresh Caser is created per call: cases.Caser carries internal state and
// must not be shared across goroutines.
func Identifier(s string) string {
	s = strings.TrimSpace(s)
	s = norm.NFKC.String(s)
	return cases.Fold().String(s)
}

// Email canonicalizes an email address.
//
// The whole address is folded: local-part case-sensitivity is permitted by
// RFC 5321 but no mainstream provider honors it, and a case-insensitive
// uniqueness key is the safer default for an HR system.
func Email(s string) string {
	return Identifier(s)
}
