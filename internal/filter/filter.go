// Package filter hides and shows checklist rows from a search query.
//
// A query is tried as a case-insensitive regular expression first. Queries
// that do not compile, such as "(", fall back to a literal case-insensitive
// substring match. The empty query matches every label.
package filter

import (
	"regexp"
	"strings"

	"github.com/zjrosen/selectmenu/internal/log"
)

// Target is a list whose rows can be hidden.
type Target interface {
	Len() int
	Label(i int) string
	SetHidden(i int, hidden bool)
}

// pattern is a compiled query.
type pattern struct {
	re      *regexp.Regexp
	literal string // lower-cased query, used when re is nil
}

func (p pattern) match(label string) bool {
	if p.re != nil {
		return p.re.MatchString(label)
	}
	return strings.Contains(strings.ToLower(label), p.literal)
}

// Matcher evaluates queries against labels. Compiled queries are memoized;
// the memo never changes a result.
type Matcher struct {
	patterns *memo[pattern]
}

// NewMatcher creates a Matcher with an empty memo.
func NewMatcher() *Matcher {
	return &Matcher{patterns: newMemo[pattern](defaultExpiration, defaultCleanupInterval)}
}

// Match reports whether label matches query.
func (m *Matcher) Match(query, label string) bool {
	if query == "" {
		return true
	}
	return m.compile(query).match(label)
}

// Apply re-evaluates every row of target against query and returns how many
// rows remain visible.
func (m *Matcher) Apply(target Target, query string) int {
	visible := 0
	for i := 0; i < target.Len(); i++ {
		if m.ApplyRow(target, i, query) {
			visible++
		}
	}
	log.Debug(log.CatFilter, "Filter applied", "query", query, "visible", visible, "total", target.Len())
	return visible
}

// ApplyRow evaluates a single row and reports whether it is visible.
func (m *Matcher) ApplyRow(target Target, i int, query string) bool {
	ok := m.Match(query, target.Label(i))
	target.SetHidden(i, !ok)
	return ok
}

func (m *Matcher) compile(query string) pattern {
	if p, ok := m.patterns.get(query); ok {
		return p
	}

	p := pattern{literal: strings.ToLower(query)}
	re, err := regexp.Compile("(?i)" + query)
	if err != nil {
		log.Debug(log.CatFilter, "Query is not a valid pattern, matching literally", "query", query, "error", err)
	} else {
		p.re = re
	}
	m.patterns.set(query, p)
	return p
}
