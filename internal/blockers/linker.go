package blockers

import (
	"fmt"

	"github.com/Mr-Slippery/jirascope/internal/model"
)

// GetBlocked builds a blocking record for every unresolved issue under
// check that blocks at least one relevant issue. Only "Blocks" links are
// considered. Link targets are resolved against allIssues; a key that
// cannot be resolved is a data-consistency error between the fetched
// sets and is reported, never skipped.
//
// Outward targets that are themselves under check are ignored so the
// component does not count itself. Inward targets are filtered with the
// component exclusion disabled.
func GetBlocked(checkIssues, allIssues *model.IssueSet, component string, rules Rules) (map[string]model.BlockingRecord, error) {
	blocked := make(map[string]model.BlockingRecord)

	for _, issue := range checkIssues.Issues() {
		if rules.Resolved(issue) {
			continue
		}

		var outward, inward []string
		for _, link := range issue.Links {
			if link.Type != model.LinkTypeBlocks {
				continue
			}

			target, ok := allIssues.Get(link.Key)
			if !ok {
				return nil, fmt.Errorf("unresolved issue reference %q linked from %s", link.Key, issue.Key)
			}

			switch link.Direction {
			case model.Outward:
				if checkIssues.Contains(target.Key) {
					continue
				}
				if rules.Relevant(target, component) {
					outward = append(outward, target.Key)
				}
			case model.Inward:
				if rules.Relevant(target, "") {
					inward = append(inward, target.Key)
				}
			}
		}

		if len(outward) > 0 {
			blocked[issue.Key] = model.BlockingRecord{
				Blocks:      outward,
				IsBlockedBy: inward,
			}
		}
	}

	return blocked, nil
}
