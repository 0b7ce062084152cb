package jira

import (
	"fmt"
	"strings"
)

// APIError is returned for any non-2xx response from the tracker.
// It carries the HTTP status and the raw response body.
type APIError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("jira returned status %d: %s", e.Status, e.Body)
}

// AmbiguousBoardError is returned when board discovery does not find
// exactly one board for a project.
type AmbiguousBoardError struct {
	ProjectKey string
	Boards     []Board
}

// Error implements the error interface. Candidates are rendered as
// "name (id)" so the operator can pick one for --board-id.
func (e *AmbiguousBoardError) Error() string {
	names := make([]string, len(e.Boards))
	for i, b := range e.Boards {
		names[i] = fmt.Sprintf("%s (%d)", b.Name, b.ID)
	}
	return fmt.Sprintf("found %d boards for project %s: %s. Try setting --board-id directly",
		len(e.Boards), e.ProjectKey, strings.Join(names, ", "))
}

// NoActiveSprintError is returned when a board has no active sprint.
type NoActiveSprintError struct {
	BoardID int
}

// Error implements the error interface.
func (e *NoActiveSprintError) Error() string {
	return fmt.Sprintf("no active sprint found for board %d", e.BoardID)
}
