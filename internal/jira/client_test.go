package jira

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Slippery/jirascope/internal/model"
)

const issuePage = `{
	"startAt": %d,
	"maxResults": %d,
	"total": 2,
	"issues": [
		{
			"key": "APP-1",
			"fields": {
				"summary": "Login broken",
				"status": {"name": "Open"},
				"priority": {"name": "High"},
				"components": [{"name": "Core"}],
				"issuelinks": [
					{"type": {"name": "Blocks"}, "outwardIssue": {"key": "APP-2"}}
				],
				"customfield_10042": {"value": "Major"}
			}
		},
		{
			"key": "APP-2",
			"fields": {
				"summary": "Session store down",
				"status": {"name": "Closed"},
				"priority": {"name": "Low"},
				"issuelinks": []
			}
		}
	]
}`

func newFakeJira(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var auths []string

	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/2/search", func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))
		startAt, _ := strconv.Atoi(r.URL.Query().Get("startAt"))
		maxResults, _ := strconv.Atoi(r.URL.Query().Get("maxResults"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, issuePage, startAt, maxResults)
	})
	mux.HandleFunc("/rest/api/2/myself", func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"name": "alice", "displayName": "Alice Example"}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &auths
}

func TestClientSearch(t *testing.T) {
	server, auths := newFakeJira(t)

	client, err := NewClient(server.URL, "alice", "secret", 100, "customfield_10042")
	require.NoError(t, err)

	issues, err := client.Search(context.Background(), "project = APP", 0, 50)
	require.NoError(t, err)
	require.Len(t, issues, 2)

	assert.Equal(t, model.Issue{
		Key:        "APP-1",
		Summary:    "Login broken",
		Status:     "Open",
		Priority:   "High",
		Severity:   "Major",
		Components: []string{"Core"},
		Links: []model.Link{
			{Type: "Blocks", Direction: model.Outward, Key: "APP-2"},
		},
	}, issues[0])

	assert.Equal(t, "Closed", issues[1].Status)
	assert.Empty(t, issues[1].Severity)

	require.NotEmpty(t, *auths)
	assert.Contains(t, (*auths)[0], "Basic ")
}

func TestClientSearchWithoutSeverityField(t *testing.T) {
	server, _ := newFakeJira(t)

	client, err := NewClient(server.URL, "alice", "secret", 100, "")
	require.NoError(t, err)

	issues, err := client.Search(context.Background(), "project = APP", 0, 50)
	require.NoError(t, err)
	// The custom field stays out of the record when no field is configured.
	assert.Empty(t, issues[0].Severity)
}

func TestClientSelf(t *testing.T) {
	server, _ := newFakeJira(t)

	client, err := NewClient(server.URL, "alice", "secret", 100, "")
	require.NoError(t, err)

	name, err := client.Self(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alice Example", name)
}

func TestClientSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorMessages":["boom"]}`, http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "alice", "secret", 100, "")
	require.NoError(t, err)

	_, err = client.Search(context.Background(), "project = APP", 0, 50)
	assert.Error(t, err)
}
