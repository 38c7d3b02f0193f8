package model

import "strings"

// Rule is a compile-time auto-tagging rule matched against a new client's
// WM_CLASS (class, instance), title and WM_WINDOW_ROLE. Any of the four
// patterns may be empty, meaning "don't care". Matching rules apply
// additively.
type Rule struct {
	Class    string
	Instance string
	Title    string
	Role     string

	Tags       uint32
	IsCentered bool
	IsFloating bool
	Monitor    int // -1 means "don't reassign"
}

// Matches reports whether every non-empty pattern in r is a substring of
// the corresponding client attribute.
func (r Rule) Matches(class, instance, title, role string) bool {
	return matchPattern(r.Class, class) &&
		matchPattern(r.Instance, instance) &&
		matchPattern(r.Title, title) &&
		matchPattern(r.Role, role)
}

func matchPattern(pattern, value string) bool {
	if pattern == "" {
		return true
	}
	return strings.Contains(value, pattern)
}

// ApplyRules merges every rule matching the client's attributes into tags,
// isFloating and isCentered, and returns the target monitor index from the
// last matching rule that names one (-1 if none do).
func ApplyRules(rules []Rule, class, instance, title, role string) (tags uint32, isFloating, isCentered bool, monitor int) {
	monitor = -1
	for _, r := range rules {
		if !r.Matches(class, instance, title, role) {
			continue
		}
		tags |= r.Tags
		if r.IsFloating {
			isFloating = true
		}
		if r.IsCentered {
			isCentered = true
		}
		if r.Monitor >= 0 {
			monitor = r.Monitor
		}
	}
	return
}
