// Copyright (c) 2026 PeopleDesk. All rights reserved.
// Author: eng@peopledesk.io

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peopledesk/peopledesk/pkg/normalize"
)

/*
TestIdentifier verifies trimming, compatibility normalization, and case
folding collapse Unicode lookalikes to one canonical key.
*/
func TestIdentifier(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already_canonical", "alice", "alice"},
		{"surrounding_whitespace", "  alice \t", "alice"},
		{"uppercase", "ALICE", "alice"},
		{"mixed_case", "AlIcE", "alice"},
		{"fullwidth_latin", "ａｌｉｃｅ", "alice"},
		{"ligature", "oﬃce", "office"},
		{"accented_composed_vs_decomposed", "Café", "café"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.Identifier(tt.input))
		})
	}
}

/*
TestEmail verifies the whole address folds to lowercase.
*/
func TestEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", normalize.Email(" Alice@Example.COM "))
}

/*
TestIdentifier_Concurrent exercises concurrent callers; the fold caser must
not be shared state.
*/
func TestIdentifier_Concurrent(t *testing.T) {
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				assert.Equal(t, "alice", normalize.Identifier("ALICE"))
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
