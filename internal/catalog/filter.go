// Package catalog holds the pure listing logic shared by the marketplace and
// rental views: filtering, rental pricing and status tones.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// All is the filter value that places no constraint on a field.
const All = "all"

// Listing is anything that can be shown in a catalog browser.
type Listing interface {
	SearchText() (title, description string)
	Kind() string
	Group() string
}

// Criteria selects the visible part of a catalog. Empty Type and Category
// behave like All.
type Criteria struct {
	Search   string
	Type     string
	Category string
}

// Active reports whether any criterion constrains the result.
func (c Criteria) Active() bool {
	return c.Search != "" || constrains(c.Type) || constrains(c.Category)
}

// Filter returns the listings matching every criterion, in their original order.
// The input slice is not modified.
func Filter[T Listing](items []T, c Criteria) []T {
	m := newMatcher(c)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if m.match(item) {
			out = append(out, item)
		}
	}
	return out
}

// Match reports whether a single listing passes the criteria.
func Match(item Listing, c Criteria) bool {
	return newMatcher(c).match(item)
}

type matcher struct {
	folder   cases.Caser
	term     string
	typ      string
	category string
}

func newMatcher(c Criteria) *matcher {
	m := &matcher{folder: cases.Fold(), typ: c.Type, category: c.Category}
	if c.Search != "" {
		m.term = m.folder.String(c.Search)
	}
	return m
}

func (m *matcher) match(item Listing) bool {
	if constrains(m.typ) && item.Kind() != m.typ {
		return false
	}
	if constrains(m.category) && item.Group() != m.category {
		return false
	}
	if m.term == "" {
		return true
	}
	title, description := item.SearchText()
	return strings.Contains(m.folder.String(title), m.term) ||
		strings.Contains(m.folder.String(description), m.term)
}

func constrains(v string) bool {
	return v != "" && v != All
}
