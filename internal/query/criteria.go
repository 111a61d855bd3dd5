// Package query describes which recipes a read should return: optional
// filters, pagination and the ingredient matcher.
package query

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100

	// QuickRecipeMinutes is the total-time ceiling implied by QuickRecipes.
	QuickRecipeMinutes = 30
)

// Criteria selects a page of recipes. Every filter is optional and is
// skipped entirely when absent; present filters are combined with AND.
type Criteria struct {
	PageNumber   int
	PageSize     int
	Search       Optional[string]
	Tag          Optional[string]
	Difficulty   Optional[string]
	MaxTime      Optional[int]
	QuickRecipes bool
}

// Normalize clamps pagination and turns blank text filters into None.
func (c Criteria) Normalize() Criteria {
	if c.PageNumber < 1 {
		c.PageNumber = 1
	}
	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		c.PageSize = DefaultPageSize
	}
	c.Search = trimmed(c.Search)
	c.Tag = trimmed(c.Tag)
	c.Difficulty = trimmed(c.Difficulty)
	return c
}

func trimmed(o Optional[string]) Optional[string] {
	v, ok := o.Get()
	if !ok {
		return o
	}
	if v = strings.TrimSpace(v); v == "" {
		return None[string]()
	}
	return Some(v)
}

// EffectiveMaxTime merges MaxTime and QuickRecipes. Both predicates apply
// when both are given, so the stricter bound wins.
func (c Criteria) EffectiveMaxTime() Optional[int] {
	explicit, ok := c.MaxTime.Get()
	switch {
	case c.QuickRecipes && ok:
		return Some(min(explicit, QuickRecipeMinutes))
	case c.QuickRecipes:
		return Some(QuickRecipeMinutes)
	default:
		return c.MaxTime
	}
}

// Offset is the number of matching rows skipped before the page starts.
func (c Criteria) Offset() int {
	return (c.PageNumber - 1) * c.PageSize
}

// TotalPages is ceil(total / pageSize).
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// canonicalCriteria fixes field order and encoding for hashing.
type canonicalCriteria struct {
	PageNumber int              `json:"p"`
	PageSize   int              `json:"s"`
	Search     Optional[string] `json:"q"`
	Tag        Optional[string] `json:"t"`
	Difficulty Optional[string] `json:"d"`
	MaxTime    Optional[int]    `json:"m"`
}

// Hash identifies the normalized criteria. Two criteria that select the same
// rows hash the same: QuickRecipes is folded into the effective max time.
func (c Criteria) Hash() string {
	n := c.Normalize()
	payload, err := json.Marshal(canonicalCriteria{
		PageNumber: n.PageNumber,
		PageSize:   n.PageSize,
		Search:     n.Search,
		Tag:        n.Tag,
		Difficulty: n.Difficulty,
		MaxTime:    n.EffectiveMaxTime(),
	})
	if err != nil {
		// Only plain strings and ints are encoded here
		panic(fmt.Sprintf("query: encoding criteria: %v", err))
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(payload))
}
