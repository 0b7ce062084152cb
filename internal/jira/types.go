package jira

// IssueType pairs a human-readable issue type name with the id the
// tracker assigned to it in the active project. The id is empty until
// discovery has run.
type IssueType struct {
	Name string
	ID   string
}

// Registry maps issue type names to their discovered metadata. It is
// populated once per run by Client.IssueTypes and read-only afterwards.
type Registry map[string]IssueType

// KnownIssueTypes are the issue type names this tool understands. The
// set reflects one project's scheme and may differ for other projects;
// remote names outside this set are logged and skipped during discovery.
var KnownIssueTypes = []string{
	"Initiative",
	"Epic",
	"Story",
	"Task",
	"Bug",
	"Sub-task",
	"Eng Design",
	"Release",
	"Feature Flag",
	"Design",
}

// Lookup returns the registry entry for name. The second return value
// reports whether the name was discovered with a non-empty id.
func (r Registry) Lookup(name string) (IssueType, bool) {
	it, ok := r[name]
	return it, ok && it.ID != ""
}

// FieldMeta describes one field of the create-issue screen for a
// project and issue type.
type FieldMeta struct {
	Name       string   `json:"name"`
	Key        string   `json:"key"`
	Required   bool     `json:"required"`
	SchemaType string   `json:"schemaType"`
	Operations []string `json:"operations"`
}

// Board represents a Jira agile board.
type Board struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Sprint represents a Jira sprint.
type Sprint struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// Issue represents a single issue as returned by the search API.
type Issue struct {
	Key    string `json:"key"`
	Fields Fields `json:"fields"`
}

// Fields represents the inner fields of a Jira issue.
type Fields struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Status      Status `json:"status"`
	Assignee    *User  `json:"assignee"` // nullable
	Updated     string `json:"updated"`
}

// Status represents the status field of an issue.
type Status struct {
	Name string `json:"name"`
}

// User represents the assignee or reporter of an issue.
type User struct {
	DisplayName string `json:"displayName"`
}

// searchResult is the top-level structure from the search API.
type searchResult struct {
	Issues []Issue `json:"issues"`
}

// boardList is the paged response of the agile board endpoint.
type boardList struct {
	Values []Board `json:"values"`
}

// sprintList is the paged response of the board sprint endpoint.
type sprintList struct {
	Values []Sprint `json:"values"`
}

// createMetaProject is one project entry of the createmeta response.
type createMetaProject struct {
	Key        string `json:"key"`
	IssueTypes []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"issuetypes"`
}

// createMeta is the top-level createmeta response.
type createMeta struct {
	Projects []createMetaProject `json:"projects"`
}

// fieldMetaResponse is the createmeta field schema for one issue type.
type fieldMetaResponse struct {
	Fields []struct {
		Name     string `json:"name"`
		Key      string `json:"key"`
		Required bool   `json:"required"`
		Schema   struct {
			Type string `json:"type"`
		} `json:"schema"`
		Operations []string `json:"operations"`
	} `json:"fields"`
}

// createdIssue is the response of a successful issue creation.
type createdIssue struct {
	Key string `json:"key"`
}
