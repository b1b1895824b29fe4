// Package blockers decides which issues matter for the blocking graph and
// links them through their "Blocks" relationships.
package blockers

import "github.com/Mr-Slippery/jirascope/internal/model"

// Rules parameterizes the relevance filter. The zero value matches
// nothing; use DefaultRules or values from configuration.
type Rules struct {
	ResolvedStatuses   []string
	RelevantPriorities []string
	RelevantSeverities []string
}

// DefaultRules returns the stock filter rules.
func DefaultRules() Rules {
	return Rules{
		ResolvedStatuses:   []string{"Done", "Resolved", "Fertig", "Closed"},
		RelevantPriorities: []string{"High", "Highest"},
		RelevantSeverities: []string{"Major"},
	}
}

// Resolved reports whether the issue's status counts as resolved.
func (r Rules) Resolved(issue model.Issue) bool {
	return contains(r.ResolvedStatuses, issue.Status)
}

// Relevant selects issues that matter for graph inclusion: unresolved,
// outside the target component, and of relevant priority or severity.
// An empty component disables the component exclusion. An issue without
// a severity never matches on severity.
func (r Rules) Relevant(issue model.Issue, component string) bool {
	if r.Resolved(issue) {
		return false
	}
	if component != "" && issue.HasComponent(component) {
		return false
	}
	if contains(r.RelevantPriorities, issue.Priority) {
		return true
	}
	return issue.Severity != "" && contains(r.RelevantSeverities, issue.Severity)
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
