package jira

import (
	jira "github.com/andygrunwald/go-jira"
	"github.com/trivago/tgo/tcontainer"

	"github.com/Mr-Slippery/jirascope/internal/model"
)

// toModel reduces an SDK issue to the pipeline's issue record.
func toModel(in jira.Issue, severityField string) model.Issue {
	out := model.Issue{Key: in.Key}
	fields := in.Fields
	if fields == nil {
		return out
	}

	out.Summary = fields.Summary
	if fields.Status != nil {
		out.Status = fields.Status.Name
	}
	if fields.Priority != nil {
		out.Priority = fields.Priority.Name
	}
	for _, component := range fields.Components {
		if component != nil {
			out.Components = append(out.Components, component.Name)
		}
	}

	for _, link := range fields.IssueLinks {
		if link == nil {
			continue
		}
		// A link can carry both sides when the API expands both stubs.
		if link.OutwardIssue != nil {
			out.Links = append(out.Links, model.Link{
				Type:      link.Type.Name,
				Direction: model.Outward,
				Key:       link.OutwardIssue.Key,
			})
		}
		if link.InwardIssue != nil {
			out.Links = append(out.Links, model.Link{
				Type:      link.Type.Name,
				Direction: model.Inward,
				Key:       link.InwardIssue.Key,
			})
		}
	}

	if severityField != "" {
		out.Severity = severityName(fields.Unknowns, severityField)
	}
	return out
}

// severityName extracts the severity value from the custom field, which
// Jira serves either as a plain string or as a select-option object.
func severityName(unknowns tcontainer.MarshalMap, field string) string {
	raw, ok := unknowns[field]
	if !ok || raw == nil {
		return ""
	}
	switch v := raw.(type) {
	case string:
		return v
	case map[string]interface{}:
		for _, key := range []string{"value", "name"} {
			if s, ok := v[key].(string); ok {
				return s
			}
		}
	}
	return ""
}
