package app_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gi8lino/bugcsv/internal/app"
	"github.com/gi8lino/bugcsv/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = "Priority,Description of issue,Additional notes,Platform/URL,Title"

func dummyEnv(string) string { return "" }

// jiraStub serves the minimal API surface a run touches and records
// every issue creation payload.
type jiraStub struct {
	srv     *httptest.Server
	created []map[string]any
}

func newJiraStub(t *testing.T) *jiraStub {
	t.Helper()

	stub := &jiraStub{}
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/api/2/issue/createmeta", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"projects": [{"key": "DW", "issuetypes": [
			{"id": "10001", "name": "Bug"},
			{"id": "10002", "name": "Epic"},
			{"id": "10099", "name": "Roadmap Item"}
		]}]}`)) // nolint:errcheck
	})
	mux.HandleFunc("/rest/api/3/issue/createmeta/DW/issuetypes/10001", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"fields": [
			{"name": "Summary", "key": "summary", "required": true, "schema": {"type": "string"}, "operations": ["set"]},
			{"name": "Sprint", "key": "customfield_10010", "required": false, "schema": {"type": "number"}, "operations": ["set"]}
		]}`)) // nolint:errcheck
	})
	mux.HandleFunc("/rest/agile/1.0/board", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"values": [{"id": 7, "name": "DW board", "type": "scrum"}]}`)) // nolint:errcheck
	})
	mux.HandleFunc("/rest/agile/1.0/board/7/sprint", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"values": [{"id": 42, "name": "Sprint 9", "state": "active"}]}`)) // nolint:errcheck
	})
	mux.HandleFunc("/rest/api/2/issue", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		stub.created = append(stub.created, payload["fields"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"key": "DW-101"}`)) // nolint:errcheck
	})

	stub.srv = httptest.NewServer(mux)
	t.Cleanup(stub.srv.Close)
	return stub
}

func writeBugsCSV(t *testing.T) string {
	t.Helper()

	return testutils.MustWriteCSV(t, csvHeader,
		"Stop ship,first bug,Repro on Android,http://x,Bug one",
		"Nice to have,minor bug,,,Bug two",
		"Stop ship,second bug,,,Bug three")
}

func baseArgs(stub *jiraStub, csvPath string, extra ...string) []string {
	args := []string{
		"--jira-url=" + stub.srv.URL,
		"--jira-email=me@example.com",
		"--jira-token=token",
		"--project=DW",
	}
	args = append(args, extra...)
	return append(args, csvPath)
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("confirm first row, decline second", func(t *testing.T) {
		t.Parallel()

		stub := newJiraStub(t)
		csvPath := writeBugsCSV(t)

		// empty line confirms row one, "n" declines row two
		in := strings.NewReader("\nn\n")
		var out strings.Builder

		err := app.Run(context.Background(), "test", baseArgs(stub, csvPath, "--epic=DW-9"), in, &out, dummyEnv)
		require.NoError(t, err)

		require.Len(t, stub.created, 1)
		fields := stub.created[0]
		assert.Equal(t, "Bug one", fields["summary"])
		assert.Equal(t, "first bug\n\n**Additional notes**:\nRepro on Android\n\n**Platform/URL**: http://x",
			fields["description"])
		assert.Equal(t, "DW-9", fields["customfield_10008"])
		assert.NotContains(t, fields, "customfield_10010")

		assert.Contains(t, out.String(), `Found 2 bugs with priority "Stop ship"`)
		assert.Contains(t, out.String(), stub.srv.URL+"/browse/DW-101")
		assert.Contains(t, out.String(), "Skipping.")
	})

	t.Run("add to sprint resolves board and sprint", func(t *testing.T) {
		t.Parallel()

		stub := newJiraStub(t)
		csvPath := writeBugsCSV(t)

		var out strings.Builder
		err := app.Run(context.Background(), "test",
			baseArgs(stub, csvPath, "--add-to-sprint", "--yes"),
			strings.NewReader(""), &out, dummyEnv)
		require.NoError(t, err)

		require.Len(t, stub.created, 2)
		for _, fields := range stub.created {
			assert.Equal(t, float64(42), fields["customfield_10010"])
		}
		assert.Contains(t, out.String(), "Getting current sprint...")
	})

	t.Run("list fields prints metadata and creates nothing", func(t *testing.T) {
		t.Parallel()

		stub := newJiraStub(t)
		csvPath := writeBugsCSV(t)

		var out strings.Builder
		err := app.Run(context.Background(), "test",
			baseArgs(stub, csvPath, "--list-fields"),
			strings.NewReader(""), &out, dummyEnv)
		require.NoError(t, err)

		assert.Empty(t, stub.created)
		assert.Contains(t, out.String(), "customfield_10010")
		assert.Contains(t, out.String(), "summary")
	})

	t.Run("csv validation fails before any creation", func(t *testing.T) {
		t.Parallel()

		stub := newJiraStub(t)
		csvPath := testutils.MustWriteCSV(t, "Priority,Description of issue", "Stop ship,x")

		var out strings.Builder
		err := app.Run(context.Background(), "test", baseArgs(stub, csvPath, "--yes"),
			strings.NewReader(""), &out, dummyEnv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing from csv")
		assert.Empty(t, stub.created)
	})

	t.Run("help requested prints usage and returns nil", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		err := app.Run(context.Background(), "v1.2.3", []string{"--help"}, strings.NewReader(""), &out, dummyEnv)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "Usage")
	})

	t.Run("version requested prints version and returns nil", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		err := app.Run(context.Background(), "v9.8.7", []string{"--version"}, strings.NewReader(""), &out, dummyEnv)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "v9.8.7")
	})

	t.Run("unknown flag surfaces parsing error", func(t *testing.T) {
		t.Parallel()

		var out strings.Builder
		err := app.Run(context.Background(), "test", []string{"--does-not-exist"}, strings.NewReader(""), &out, dummyEnv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing error")
	})

	t.Run("missing credentials fail", func(t *testing.T) {
		t.Parallel()

		stub := newJiraStub(t)
		csvPath := writeBugsCSV(t)

		args := []string{
			"--jira-url=" + stub.srv.URL,
			"--project=DW",
			csvPath,
		}
		var out strings.Builder
		err := app.Run(context.Background(), "test", args, strings.NewReader(""), &out, dummyEnv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no valid auth method")
	})
}
