// Package policy decides, per endpoint and method, whether the HTTP layer
// should surface success and error notifications. Most endpoints notify on
// both outcomes; polling-style reads are silenced here instead of per-call
// opt-out plumbing at every call site.
package policy

import (
	"regexp"
	"strings"
)

// Placeholder is the segment standing in for an ID in a rule pattern.
const Placeholder = ":id"

// idSegment matches path segments that look like hex/UUID identifiers.
var idSegment = regexp.MustCompile(`^[0-9a-fA-F-]+$`)

// Decision says which notifications to emit for a request outcome.
type Decision struct {
	ShowSuccess bool
	ShowError   bool
}

// Rule maps one endpoint pattern to a decision. Either Decision is set (flat
// form) or Methods is consulted with Fallback as the per-rule default.
type Rule struct {
	Pattern  string
	Decision *Decision
	Methods  map[string]Decision
	Fallback *Decision
}

// Table is an ordered rule list; the first matching rule wins.
type Table struct {
	rules  []Rule
	global Decision
}

// New builds a table over the given rules with the standard global default:
// notify on both outcomes.
func New(rules []Rule) *Table {
	return &Table{
		rules:  rules,
		global: Decision{ShowSuccess: true, ShowError: true},
	}
}

// Resolve returns the decision for a request path and HTTP method.
func (t *Table) Resolve(path, method string) Decision {
	cleaned := Clean(path)
	normalized := Normalize(cleaned)

	for _, rule := range t.rules {
		if rule.Pattern != cleaned && !patternMatches(rule.Pattern, normalized) {
			continue
		}
		if rule.Decision != nil {
			return *rule.Decision
		}
		if d, ok := rule.Methods[strings.ToUpper(method)]; ok {
			return d
		}
		if rule.Fallback != nil {
			return *rule.Fallback
		}
		return t.global
	}
	return t.global
}

// Clean strips the query string and trailing slashes from a path.
func Clean(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// Normalize replaces every ID-looking segment with the placeholder. The
// leading empty segment before the first slash is never touched.
func Normalize(path string) string {
	segments := strings.Split(path, "/")
	for i := 1; i < len(segments); i++ {
		if segments[i] != "" && idSegment.MatchString(segments[i]) {
			segments[i] = Placeholder
		}
	}
	return strings.Join(segments, "/")
}

// patternMatches reports whether a placeholder-bearing pattern covers the
// normalized path: same segment count, every non-placeholder segment equal,
// placeholder segments lining up with normalized ID segments.
func patternMatches(pattern, normalized string) bool {
	if !strings.Contains(pattern, Placeholder) {
		return false
	}
	ps := strings.Split(pattern, "/")
	ns := strings.Split(normalized, "/")
	if len(ps) != len(ns) {
		return false
	}
	for i := range ps {
		if ps[i] != ns[i] {
			return false
		}
	}
	return true
}
