package blockers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Slippery/jirascope/internal/model"
)

func outwardBlocks(key string) model.Link {
	return model.Link{Type: model.LinkTypeBlocks, Direction: model.Outward, Key: key}
}

func inwardBlocks(key string) model.Link {
	return model.Link{Type: model.LinkTypeBlocks, Direction: model.Inward, Key: key}
}

func TestGetBlockedBasic(t *testing.T) {
	// A (component X, Medium) blocks B (component Y, High)
	a := model.Issue{Key: "APP-1", Status: "Open", Priority: "Medium",
		Components: []string{"X"}, Links: []model.Link{outwardBlocks("APP-2")}}
	b := model.Issue{Key: "APP-2", Status: "Open", Priority: "High", Components: []string{"Y"}}

	check := model.NewIssueSet([]model.Issue{a})
	all := model.NewIssueSet([]model.Issue{a, b})

	blocked, err := GetBlocked(check, all, "X", DefaultRules())
	require.NoError(t, err)

	require.Contains(t, blocked, "APP-1")
	assert.Equal(t, []string{"APP-2"}, blocked["APP-1"].Blocks)
	assert.Empty(t, blocked["APP-1"].IsBlockedBy)
}

func TestGetBlockedSkipsResolvedCheckIssue(t *testing.T) {
	a := model.Issue{Key: "APP-1", Status: "Closed", Priority: "Medium",
		Links: []model.Link{outwardBlocks("APP-2")}}
	b := model.Issue{Key: "APP-2", Status: "Open", Priority: "High"}

	blocked, err := GetBlocked(model.NewIssueSet([]model.Issue{a}), model.NewIssueSet([]model.Issue{a, b}), "X", DefaultRules())
	require.NoError(t, err)
	assert.Empty(t, blocked)
}

func TestGetBlockedResolvedTargetNotRelevant(t *testing.T) {
	// C blocks D, but D is resolved: no record for C.
	c := model.Issue{Key: "APP-3", Status: "Open", Priority: "Medium",
		Links: []model.Link{outwardBlocks("APP-4")}}
	d := model.Issue{Key: "APP-4", Status: "Closed", Priority: "High"}

	blocked, err := GetBlocked(model.NewIssueSet([]model.Issue{c}), model.NewIssueSet([]model.Issue{c, d}), "X", DefaultRules())
	require.NoError(t, err)
	assert.Empty(t, blocked)
}

func TestGetBlockedSameComponentExcluded(t *testing.T) {
	// E and F are both component X; F is High priority but still excluded.
	e := model.Issue{Key: "APP-5", Status: "Open", Priority: "Medium",
		Components: []string{"X"}, Links: []model.Link{outwardBlocks("APP-6")}}
	f := model.Issue{Key: "APP-6", Status: "Open", Priority: "High", Components: []string{"X"}}

	blocked, err := GetBlocked(model.NewIssueSet([]model.Issue{e}), model.NewIssueSet([]model.Issue{e, f}), "X", DefaultRules())
	require.NoError(t, err)
	assert.Empty(t, blocked)
}

func TestGetBlockedTargetInCheckSetSkipped(t *testing.T) {
	// Both under check: the outward link must not count, even though the
	// target has no component membership the filter would catch.
	a := model.Issue{Key: "APP-1", Status: "Open", Priority: "Medium",
		Links: []model.Link{outwardBlocks("APP-2")}}
	b := model.Issue{Key: "APP-2", Status: "Open", Priority: "High"}

	blocked, err := GetBlocked(model.NewIssueSet([]model.Issue{a, b}), model.NewIssueSet([]model.Issue{a, b}), "X", DefaultRules())
	require.NoError(t, err)
	assert.NotContains(t, blocked, "APP-1")
}

func TestGetBlockedInwardIgnoresComponent(t *testing.T) {
	// The inward blocker is in the target component itself; the inward
	// side deliberately skips the component exclusion, so it is recorded.
	a := model.Issue{Key: "APP-1", Status: "Open", Priority: "Medium",
		Links: []model.Link{outwardBlocks("APP-2"), inwardBlocks("APP-3")}}
	b := model.Issue{Key: "APP-2", Status: "Open", Priority: "High", Components: []string{"Y"}}
	blocker := model.Issue{Key: "APP-3", Status: "Open", Priority: "High", Components: []string{"X"}}

	blocked, err := GetBlocked(model.NewIssueSet([]model.Issue{a}), model.NewIssueSet([]model.Issue{a, b, blocker}), "X", DefaultRules())
	require.NoError(t, err)

	require.Contains(t, blocked, "APP-1")
	assert.Equal(t, []string{"APP-2"}, blocked["APP-1"].Blocks)
	assert.Equal(t, []string{"APP-3"}, blocked["APP-1"].IsBlockedBy)
}

func TestGetBlockedInwardOnlyNoRecord(t *testing.T) {
	// A record exists only when the issue blocks something.
	a := model.Issue{Key: "APP-1", Status: "Open", Priority: "Medium",
		Links: []model.Link{inwardBlocks("APP-3")}}
	blocker := model.Issue{Key: "APP-3", Status: "Open", Priority: "High"}

	blocked, err := GetBlocked(model.NewIssueSet([]model.Issue{a}), model.NewIssueSet([]model.Issue{a, blocker}), "X", DefaultRules())
	require.NoError(t, err)
	assert.Empty(t, blocked)
}

func TestGetBlockedIgnoresOtherLinkTypes(t *testing.T) {
	a := model.Issue{Key: "APP-1", Status: "Open", Priority: "Medium",
		Links: []model.Link{{Type: "Relates", Direction: model.Outward, Key: "APP-2"}}}
	b := model.Issue{Key: "APP-2", Status: "Open", Priority: "High"}

	blocked, err := GetBlocked(model.NewIssueSet([]model.Issue{a}), model.NewIssueSet([]model.Issue{a, b}), "X", DefaultRules())
	require.NoError(t, err)
	assert.Empty(t, blocked)
}

func TestGetBlockedUnresolvedReference(t *testing.T) {
	a := model.Issue{Key: "APP-1", Status: "Open", Priority: "Medium",
		Links: []model.Link{outwardBlocks("GONE-1")}}

	_, err := GetBlocked(model.NewIssueSet([]model.Issue{a}), model.NewIssueSet([]model.Issue{a}), "X", DefaultRules())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unresolved issue reference")
	assert.Contains(t, err.Error(), "GONE-1")
}

func TestGetBlockedNeverEmptyBlocks(t *testing.T) {
	issues := []model.Issue{
		{Key: "APP-1", Status: "Open", Priority: "Medium", Links: []model.Link{outwardBlocks("APP-3")}},
		{Key: "APP-2", Status: "Open", Priority: "Medium"},
		{Key: "APP-3", Status: "Open", Priority: "High", Components: []string{"Y"}},
	}
	check := model.NewIssueSet(issues[:2])
	all := model.NewIssueSet(issues)

	blocked, err := GetBlocked(check, all, "X", DefaultRules())
	require.NoError(t, err)
	for key, record := range blocked {
		assert.NotEmpty(t, record.Blocks, "record %s has empty blocks", key)
	}
}

func TestGetBlockedSeverityTarget(t *testing.T) {
	// Target qualifies by Major severity despite Low priority.
	a := model.Issue{Key: "APP-1", Status: "Open", Priority: "Medium",
		Links: []model.Link{outwardBlocks("APP-2")}}
	b := model.Issue{Key: "APP-2", Status: "Open", Priority: "Low", Severity: "Major", Components: []string{"Y"}}

	blocked, err := GetBlocked(model.NewIssueSet([]model.Issue{a}), model.NewIssueSet([]model.Issue{a, b}), "X", DefaultRules())
	require.NoError(t, err)
	require.Contains(t, blocked, "APP-1")
	assert.Equal(t, []string{"APP-2"}, blocked["APP-1"].Blocks)
}
