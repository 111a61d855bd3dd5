package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ErrNoIngredients rejects an ingredient search without any usable term.
var ErrNoIngredients = errors.New("at least one ingredient must be specified")

// IngredientMatch searches recipe ingredient names by case-insensitive substring.
type IngredientMatch struct {
	Terms    []string
	MatchAll bool
}

// NewIngredientMatch lower-cases and trims the terms, dropping blanks and
// duplicates. It fails when nothing is left to match.
func NewIngredientMatch(terms []string, matchAll bool) (IngredientMatch, error) {
	seen := make(map[string]struct{}, len(terms))
	normalized := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		normalized = append(normalized, term)
	}
	if len(normalized) == 0 {
		return IngredientMatch{}, ErrNoIngredients
	}
	return IngredientMatch{Terms: normalized, MatchAll: matchAll}, nil
}

// Matches applies the same rule the database query does to a list of
// ingredient names.
func (m IngredientMatch) Matches(names []string) bool {
	lowered := make([]string, len(names))
	for i, name := range names {
		lowered[i] = strings.ToLower(name)
	}
	contains := func(term string) bool {
		for _, name := range lowered {
			if strings.Contains(name, term) {
				return true
			}
		}
		return false
	}

	for _, term := range m.Terms {
		found := contains(term)
		if m.MatchAll && !found {
			return false
		}
		if !m.MatchAll && found {
			return true
		}
	}
	return m.MatchAll
}

// Hash identifies the match independent of term order.
func (m IngredientMatch) Hash() string {
	terms := append([]string(nil), m.Terms...)
	sort.Strings(terms)
	payload, err := json.Marshal(struct {
		Terms    []string `json:"t"`
		MatchAll bool     `json:"a"`
	}{terms, m.MatchAll})
	if err != nil {
		panic(fmt.Sprintf("query: encoding ingredient match: %v", err))
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(payload))
}
