package jira

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// FieldIDs holds the project-schema-dependent custom field ids used to
// link an issue to a parent, epic or sprint.
type FieldIDs struct {
	Parent string `yaml:"parent"`
	Epic   string `yaml:"epic"`
	Sprint string `yaml:"sprint"`
}

// DefaultFieldIDs returns the custom field ids of the original project
// scheme. Other projects usually need overrides from the config file.
func DefaultFieldIDs() FieldIDs {
	return FieldIDs{
		Parent: "customfield_10009",
		Epic:   "customfield_10008",
		Sprint: "customfield_10010",
	}
}

// CreateSpec describes one issue to create. Optional fields are only
// sent when set.
type CreateSpec struct {
	ProjectKey  string
	IssueType   string
	Summary     string
	Priority    string
	Description string
	ParentKey   string
	EpicKey     string
	SprintID    int
}

// CreateIssue creates an issue and returns a browsable URL for it.
// There is no idempotence: identical calls create separate issues.
func (c *Client) CreateIssue(ctx context.Context, spec CreateSpec, ids FieldIDs) (string, error) {
	fields := map[string]any{
		"project":   map[string]string{"key": spec.ProjectKey},
		"issuetype": map[string]string{"name": spec.IssueType},
		"summary":   spec.Summary,
	}
	if spec.Priority != "" {
		fields["priority"] = map[string]string{"name": spec.Priority}
	}
	if spec.Description != "" {
		fields["description"] = spec.Description
	}
	if spec.ParentKey != "" {
		fields[ids.Parent] = spec.ParentKey
	}
	if spec.EpicKey != "" {
		fields[ids.Epic] = spec.EpicKey
	}
	if spec.SprintID != 0 {
		fields[ids.Sprint] = spec.SprintID
	}

	var created createdIssue
	if err := c.Post(ctx, issuePath, map[string]any{"fields": fields}, &created); err != nil {
		return "", fmt.Errorf("create issue: %w", err)
	}
	return c.BrowseURL(created.Key), nil
}

// SearchFilter describes a JQL search. Unset filters are omitted from
// the query.
type SearchFilter struct {
	Assignee        string
	Project         string
	InCurrentSprint bool
	Statuses        []string
	Keys            []string
}

// jql composes the query string by joining present clauses with AND.
func (f SearchFilter) jql() string {
	var parts []string
	if f.Assignee != "" {
		parts = append(parts, "assignee="+f.Assignee)
	}
	if f.Project != "" {
		parts = append(parts, "project = "+f.Project)
	}
	if f.InCurrentSprint {
		parts = append(parts, "sprint IN openSprints()")
	}
	if len(f.Statuses) > 0 {
		parts = append(parts, fmt.Sprintf("status IN (%s)", strings.Join(f.Statuses, ", ")))
	}
	switch {
	case len(f.Keys) == 1:
		parts = append(parts, fmt.Sprintf("issueKey = %q", f.Keys[0]))
	case len(f.Keys) > 1:
		quoted := make([]string, len(f.Keys))
		for i, k := range f.Keys {
			quoted[i] = fmt.Sprintf("%q", k)
		}
		parts = append(parts, fmt.Sprintf("issueKey IN (%s)", strings.Join(quoted, ", ")))
	}
	return strings.Join(parts, " AND ")
}

// SearchIssues runs a JQL search and returns the matching issues sorted
// ascending by last-updated timestamp. Jira's timestamp format sorts
// lexicographically within one timezone, which is good enough here.
func (c *Client) SearchIssues(ctx context.Context, filter SearchFilter) ([]Issue, error) {
	query := url.Values{}
	query.Set("jql", filter.jql())

	var result searchResult
	if err := c.Get(ctx, searchPath, query, &result); err != nil {
		return nil, fmt.Errorf("search issues: %w", err)
	}

	sort.SliceStable(result.Issues, func(i, j int) bool {
		return result.Issues[i].Fields.Updated < result.Issues[j].Fields.Updated
	})
	return result.Issues, nil
}

// GetIssue fetches a single issue by key via search.
func (c *Client) GetIssue(ctx context.Context, key string) (Issue, error) {
	issues, err := c.SearchIssues(ctx, SearchFilter{Keys: []string{key}})
	if err != nil {
		return Issue{}, err
	}
	if len(issues) != 1 {
		return Issue{}, fmt.Errorf("expected exactly one issue for key %s, got %d", key, len(issues))
	}
	return issues[0], nil
}
