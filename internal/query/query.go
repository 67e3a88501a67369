// Package query derives the displayed todo list: a case-insensitive
// substring filter followed by a newest-first sort.
package query

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/Makepad-fr/tada/internal/model"
)

// Visible returns the todos whose content contains term, ignoring case,
// newest first. Equal timestamps fall back to descending ID so the order is
// stable across calls. The input is not modified.
func Visible(todos []model.Todo, term string) []model.Todo {
	m := NewMatcher(term)
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if m.Match(t.Content) {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, Newest)
	return out
}

// Newest orders a before b when a was created later.
func Newest(a, b model.Todo) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(b.ID, a.ID)
}

// Matcher tests content against one folded search term.
type Matcher struct {
	caser  cases.Caser
	folded string
}

// NewMatcher folds term once. A Matcher is not safe for concurrent use.
func NewMatcher(term string) *Matcher {
	m := &Matcher{caser: cases.Fold()}
	m.folded = m.fold(term)
	return m
}

// Match reports whether content contains the term. An empty term matches everything.
func (m *Matcher) Match(content string) bool {
	if m.folded == "" {
		return true
	}
	return strings.Contains(m.fold(content), m.folded)
}

func (m *Matcher) fold(s string) string {
	return m.caser.String(norm.NFC.String(s))
}
