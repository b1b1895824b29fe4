// Package model holds the in-memory issue records the pipeline operates on.
// Issues are read-only snapshots of tracker state at fetch time.
package model

// LinkDirection tells which side of a typed issue link the linked issue is on.
type LinkDirection string

const (
	// Outward means this issue points at the linked issue ("X blocks Y").
	Outward LinkDirection = "outward"
	// Inward means the linked issue points at this one ("X is blocked by Y").
	Inward LinkDirection = "inward"
)

// LinkTypeBlocks is the link type the blocker linker cares about.
const LinkTypeBlocks = "Blocks"

// Link is a typed, directed relationship to another issue.
type Link struct {
	Type      string        `json:"type"`
	Direction LinkDirection `json:"direction"`
	Key       string        `json:"key"`
}

// Issue is a tracker issue reduced to the fields the pipeline needs.
// Severity is empty when the tracker has no severity field for the issue.
type Issue struct {
	Key        string   `json:"key"`
	Summary    string   `json:"summary,omitempty"`
	Status     string   `json:"status"`
	Priority   string   `json:"priority"`
	Severity   string   `json:"severity,omitempty"`
	Components []string `json:"components,omitempty"`
	Links      []Link   `json:"links,omitempty"`
}

// HasComponent reports whether the issue belongs to the named component.
func (i Issue) HasComponent(name string) bool {
	for _, c := range i.Components {
		if c == name {
			return true
		}
	}
	return false
}

// BlockingRecord collects the relevant blocking relationships of one issue.
// Blocks holds keys of relevant issues this one blocks; IsBlockedBy holds keys
// of relevant issues blocking this one.
type BlockingRecord struct {
	Blocks      []string `json:"blocks"`
	IsBlockedBy []string `json:"is-blocked-by"`
}

// IssueSet is an ordered collection of issues with key lookup.
type IssueSet struct {
	issues []Issue
	byKey  map[string]int
}

// NewIssueSet builds a set from issues in order. Later duplicates of a key are
// ignored so the first fetched snapshot of an issue wins.
func NewIssueSet(issues []Issue) *IssueSet {
	s := &IssueSet{byKey: make(map[string]int, len(issues))}
	for _, issue := range issues {
		s.Add(issue)
	}
	return s
}

// Add appends an issue unless its key is already present.
func (s *IssueSet) Add(issue Issue) {
	if _, ok := s.byKey[issue.Key]; ok {
		return
	}
	s.byKey[issue.Key] = len(s.issues)
	s.issues = append(s.issues, issue)
}

// Get returns the issue with the given key.
func (s *IssueSet) Get(key string) (Issue, bool) {
	idx, ok := s.byKey[key]
	if !ok {
		return Issue{}, false
	}
	return s.issues[idx], true
}

// Contains reports whether an issue with the given key is in the set.
func (s *IssueSet) Contains(key string) bool {
	_, ok := s.byKey[key]
	return ok
}

// Issues returns the issues in insertion order.
func (s *IssueSet) Issues() []Issue {
	return s.issues
}

// Len returns the number of issues in the set.
func (s *IssueSet) Len() int {
	return len(s.issues)
}
