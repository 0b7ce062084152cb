package ticket

import (
	"fmt"

	"github.com/gi8lino/bugcsv/internal/csvfile"
	"github.com/gi8lino/bugcsv/internal/jira"
	"github.com/gi8lino/bugcsv/internal/render"
)

// Draft is one prospective ticket derived from a CSV row. It is built
// per row and consumed by creation or discarded on operator decline.
type Draft struct {
	ProjectKey  string
	IssueType   string
	Summary     string
	Description string
	EpicKey     string
	SprintID    int
}

// Options carries the per-run settings applied to every draft.
type Options struct {
	ProjectKey string
	EpicKey    string
	SprintID   int
}

// descriptionData feeds the description template.
type descriptionData struct {
	Description string
	Notes       string
	URL         string
}

// FromRow builds a Draft from a CSV row. The summary is the Title
// column, falling back to the description when empty.
func FromRow(row csvfile.Row, opts Options, r *render.Renderer) (Draft, error) {
	base := row[csvfile.ColDescription]

	summary := row[csvfile.ColTitle]
	if summary == "" {
		summary = base
	}

	description, err := r.Description(descriptionData{
		Description: base,
		Notes:       row[csvfile.ColNotes],
		URL:         row[csvfile.ColPlatformURL],
	})
	if err != nil {
		return Draft{}, fmt.Errorf("compose description: %w", err)
	}

	return Draft{
		ProjectKey:  opts.ProjectKey,
		IssueType:   "Bug",
		Summary:     summary,
		Description: description,
		EpicKey:     opts.EpicKey,
		SprintID:    opts.SprintID,
	}, nil
}

// CreateSpec converts the draft into the creation payload spec.
func (d Draft) CreateSpec() jira.CreateSpec {
	return jira.CreateSpec{
		ProjectKey:  d.ProjectKey,
		IssueType:   d.IssueType,
		Summary:     d.Summary,
		Description: d.Description,
		EpicKey:     d.EpicKey,
		SprintID:    d.SprintID,
	}
}
