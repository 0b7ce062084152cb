package jira

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// IssueTypes discovers the issue types valid for a project and returns
// a registry mapping each known name to its tracker-assigned id. Remote
// names with no local match are logged at warn level and skipped.
func (c *Client) IssueTypes(ctx context.Context, projectKey string) (Registry, error) {
	var meta createMeta
	if err := c.Get(ctx, createMetaPath, nil, &meta); err != nil {
		return nil, fmt.Errorf("fetch create metadata: %w", err)
	}

	var project *createMetaProject
	for i := range meta.Projects {
		if meta.Projects[i].Key == projectKey {
			project = &meta.Projects[i]
			break
		}
	}
	if project == nil {
		return nil, fmt.Errorf("project %s not found in create metadata", projectKey)
	}

	known := make(map[string]bool, len(KnownIssueTypes))
	for _, name := range KnownIssueTypes {
		known[name] = true
	}

	registry := make(Registry, len(project.IssueTypes))
	for _, it := range project.IssueTypes {
		if !known[it.Name] {
			c.logger.Warn("unknown issue type", "name", it.Name, "project", projectKey)
			continue
		}
		registry[it.Name] = IssueType{Name: it.Name, ID: it.ID}
	}
	return registry, nil
}

// CreateFieldMetadata fetches the field schema for creating issues of
// the given type. The issue type must carry a discovered id, so
// IssueTypes must have run first.
func (c *Client) CreateFieldMetadata(ctx context.Context, projectKey string, it IssueType) ([]FieldMeta, error) {
	if it.ID == "" {
		return nil, fmt.Errorf("issue type %s has no discovered id; run issue type discovery first", it.Name)
	}

	path := fmt.Sprintf("%s/%s/issuetypes/%s", fieldMetaPath, projectKey, it.ID)
	var resp fieldMetaResponse
	if err := c.Get(ctx, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch field metadata: %w", err)
	}

	var required []string
	fields := make([]FieldMeta, 0, len(resp.Fields))
	for _, f := range resp.Fields {
		if f.Required {
			required = append(required, f.Key)
		}
		fields = append(fields, FieldMeta{
			Name:       f.Name,
			Key:        f.Key,
			Required:   f.Required,
			SchemaType: f.Schema.Type,
			Operations: f.Operations,
		})
	}
	c.logger.Info("required fields", "keys", required)
	return fields, nil
}

// BoardID resolves the single board of the given type for a project.
// Zero or multiple matches return *AmbiguousBoardError so the operator
// can supply an explicit board id instead.
func (c *Client) BoardID(ctx context.Context, projectKey, boardType string) (int, error) {
	query := url.Values{}
	query.Set("projectKeyOrId", projectKey)
	query.Set("type", boardType)

	var boards boardList
	if err := c.Get(ctx, boardPath, query, &boards); err != nil {
		return 0, fmt.Errorf("fetch boards: %w", err)
	}
	if len(boards.Values) != 1 {
		return 0, &AmbiguousBoardError{ProjectKey: projectKey, Boards: boards.Values}
	}
	return boards.Values[0].ID, nil
}

// CurrentSprintID returns the id of the board's active sprint, or
// *NoActiveSprintError if there is none.
func (c *Client) CurrentSprintID(ctx context.Context, boardID int) (int, error) {
	query := url.Values{}
	query.Set("state", "active")

	path := boardPath + "/" + strconv.Itoa(boardID) + "/sprint"
	var sprints sprintList
	if err := c.Get(ctx, path, query, &sprints); err != nil {
		return 0, fmt.Errorf("fetch sprints: %w", err)
	}
	if len(sprints.Values) == 0 {
		return 0, &NoActiveSprintError{BoardID: boardID}
	}
	return sprints.Values[0].ID, nil
}
