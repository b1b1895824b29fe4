package jira

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Mr-Slippery/jirascope/internal/model"
)

// ProjectQuery builds the JQL for a project, optionally narrowed to a
// component. Results are ordered by key so runs are deterministic.
func ProjectQuery(project, component string) string {
	jql := fmt.Sprintf("project = %s", project)
	if component != "" {
		jql += fmt.Sprintf(" AND component = %q", component)
	}
	return jql + " ORDER BY key ASC"
}

// Fetcher retrieves complete result sets by paging through a Searcher.
type Fetcher struct {
	searcher  Searcher
	pageSize  int
	maxIssues int
	logger    *logrus.Logger
}

// NewFetcher creates a fetcher. pageSize and maxIssues fall back to the
// defaults (50, 1000) when non-positive.
func NewFetcher(searcher Searcher, pageSize, maxIssues int, logger *logrus.Logger) *Fetcher {
	if pageSize <= 0 {
		pageSize = 50
	}
	if maxIssues <= 0 {
		maxIssues = 1000
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Fetcher{
		searcher:  searcher,
		pageSize:  pageSize,
		maxIssues: maxIssues,
		logger:    logger,
	}
}

// SearchAll pages through every result for a query, stopping at a short
// page or the issue cap.
func (f *Fetcher) SearchAll(ctx context.Context, jql string) ([]model.Issue, error) {
	var all []model.Issue
	for {
		size := min(f.pageSize, f.maxIssues-len(all))
		if size <= 0 {
			f.logger.WithFields(logrus.Fields{
				"jql": jql,
				"cap": f.maxIssues,
			}).Warn("issue cap reached, results truncated")
			break
		}

		page, err := f.searcher.Search(ctx, jql, len(all), size)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)

		if len(page) < size {
			break
		}
	}

	f.logger.WithFields(logrus.Fields{
		"jql":    jql,
		"issues": len(all),
	}).Debug("search complete")
	return all, nil
}

// ProjectIssues retrieves all issues of the project, optionally narrowed
// to one component.
func (f *Fetcher) ProjectIssues(ctx context.Context, project, component string) ([]model.Issue, error) {
	return f.SearchAll(ctx, ProjectQuery(project, component))
}
