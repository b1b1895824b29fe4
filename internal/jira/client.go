// Package jira wraps the Jira REST API behind the small query surface the
// pipeline needs: paginated JQL search and an authenticated-user lookup.
package jira

import (
	"context"
	"fmt"

	jira "github.com/andygrunwald/go-jira"
	"golang.org/x/time/rate"

	"github.com/Mr-Slippery/jirascope/internal/model"
)

// searchFields limits search responses to the fields the pipeline reads.
var searchFields = []string{"summary", "status", "priority", "components", "issuelinks"}

// Searcher is the query boundary the pipeline depends on: one page of
// issues matching a JQL query.
type Searcher interface {
	Search(ctx context.Context, jql string, startAt, maxResults int) ([]model.Issue, error)
}

// Client wraps the Jira SDK client with rate limiting
type Client struct {
	client        *jira.Client
	limiter       *rate.Limiter
	severityField string
}

// NewClient creates a basic-auth Jira client. rateLimit is requests per
// second; severityField is the custom field ID carrying severity, empty
// when the tracker has none.
func NewClient(server, username, password string, rateLimit int, severityField string) (*Client, error) {
	tp := jira.BasicAuthTransport{
		Username: username,
		Password: password,
	}
	client, err := jira.NewClient(tp.Client(), server)
	if err != nil {
		return nil, fmt.Errorf("jira client for %s: %w", server, err)
	}

	if rateLimit <= 0 {
		rateLimit = 10
	}

	return &Client{
		client:        client,
		limiter:       rate.NewLimiter(rate.Limit(rateLimit), 1),
		severityField: severityField,
	}, nil
}

// Search retrieves one page of issues matching the JQL query.
func (c *Client) Search(ctx context.Context, jql string, startAt, maxResults int) ([]model.Issue, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	fields := searchFields
	if c.severityField != "" {
		fields = append(append([]string{}, searchFields...), c.severityField)
	}

	issues, _, err := c.client.Issue.SearchWithContext(ctx, jql, &jira.SearchOptions{
		StartAt:    startAt,
		MaxResults: maxResults,
		Fields:     fields,
	})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", jql, err)
	}

	out := make([]model.Issue, 0, len(issues))
	for _, issue := range issues {
		out = append(out, toModel(issue, c.severityField))
	}
	return out, nil
}

// Self returns the display name of the authenticated user. Used to
// verify credentials before storing them.
func (c *Client) Self(ctx context.Context) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	user, _, err := c.client.User.GetSelfWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("verify credentials: %w", err)
	}

	if user.DisplayName != "" {
		return user.DisplayName, nil
	}
	return user.Name, nil
}
