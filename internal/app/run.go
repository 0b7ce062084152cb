package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/gi8lino/bugcsv/internal/config"
	"github.com/gi8lino/bugcsv/internal/csvfile"
	"github.com/gi8lino/bugcsv/internal/flag"
	"github.com/gi8lino/bugcsv/internal/jira"
	"github.com/gi8lino/bugcsv/internal/logging"
	"github.com/gi8lino/bugcsv/internal/render"
	"github.com/gi8lino/bugcsv/internal/ticket"
	"github.com/gi8lino/bugcsv/internal/utils"

	"github.com/containeroo/tinyflags"
	"github.com/joho/godotenv"
)

// Run executes one bugcsv invocation: discover project metadata, read
// and filter the CSV, and create one ticket per confirmed row.
func Run(ctx context.Context, version string, args []string, in io.Reader, w io.Writer, getEnv func(string) string) error {
	// Create a new context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Credentials may live in an untracked .env file
	_ = godotenv.Load()

	// Parse command-line flags
	flags, err := flag.ParseArgs(version, args, w, getEnv)
	if err != nil {
		if tinyflags.IsHelpRequested(err) || tinyflags.IsVersionRequested(err) {
			fmt.Fprint(w, err.Error()) // nolint:errcheck
			return nil
		}
		return fmt.Errorf("parsing error: %w", err)
	}

	// Setup logger
	logger := logging.SetupLogger(flags.LogFormat, flags.Debug, w)

	logger.Info("Starting bugcsv",
		"version", version,
		"project", flags.ProjectKey,
	)

	// Load optional config
	cfg, err := config.Load(flags.Config)
	if err != nil {
		return fmt.Errorf("loading config error: %w", err)
	}

	// Parse render templates
	renderer, err := render.New(cfg.Templates.Description, cfg.Templates.Preview)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	// Setup jira client
	auth, method, err := jira.ResolveAuth(flags.JiraBearerToken, flags.JiraEmail, flags.JiraToken)
	if err != nil {
		return err
	}
	client := jira.NewClient(flags.JiraURL, auth, logger, flags.JiraSkipTLS, flags.JiraTimeout)

	logger.Debug("jira auth",
		"method", method,
		"header", utils.ObfuscateHeader(utils.GetAuthorizationHeader(auth)),
	)

	var confirmer Confirmer = NewStdinConfirmer(in, w)
	if flags.Yes {
		confirmer = AutoConfirmer{Answer: true, Out: w}
	}

	return run(ctx, client, cfg, flags, renderer, confirmer, w)
}

// run is the driver proper, separated from wiring for tests.
func run(ctx context.Context, client *jira.Client, cfg config.Config, flags flag.Config, renderer *render.Renderer, confirmer Confirmer, w io.Writer) error {
	// Issue type discovery must run before any creation: field ids
	// depend on the project's issue type scheme.
	registry, err := client.IssueTypes(ctx, flags.ProjectKey)
	if err != nil {
		return fmt.Errorf("discover issue types: %w", err)
	}

	bug, ok := registry.Lookup("Bug")
	if !ok {
		return fmt.Errorf("project %s has no Bug issue type", flags.ProjectKey)
	}

	// Read-only introspection mode, mutually exclusive with creation.
	if flags.ListFields {
		fields, err := client.CreateFieldMetadata(ctx, flags.ProjectKey, bug)
		if err != nil {
			return err
		}
		return printFields(w, fields)
	}

	var sprintID int
	if flags.AddSprint {
		fmt.Fprintln(w, "Getting current sprint...") // nolint:errcheck
		boardID := flags.BoardID
		if boardID == 0 {
			if boardID, err = client.BoardID(ctx, flags.ProjectKey, cfg.BoardType); err != nil {
				return err
			}
		}
		if sprintID, err = client.CurrentSprintID(ctx, boardID); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "Reading CSV %s\n", flags.CSVPath) // nolint:errcheck
	rows, err := csvfile.Load(flags.CSVPath, flags.Priority)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Found %d bugs with priority %q. Creating tickets...\n", len(rows), flags.Priority) // nolint:errcheck

	opts := ticket.Options{
		ProjectKey: flags.ProjectKey,
		EpicKey:    flags.EpicKey,
		SprintID:   sprintID,
	}

	for _, row := range rows {
		draft, err := ticket.FromRow(row, opts, renderer)
		if err != nil {
			return err
		}

		preview, err := renderer.Preview(draft)
		if err != nil {
			return err
		}

		create, err := confirmer.Confirm(preview)
		if err != nil {
			return err
		}
		if !create {
			fmt.Fprintln(w, "Skipping.") // nolint:errcheck
			continue
		}

		// A failing creation aborts the batch; already-created tickets
		// stay in place, there is no rollback.
		issueURL, err := client.CreateIssue(ctx, draft.CreateSpec(), cfg.FieldIDs)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, issueURL) // nolint:errcheck
	}

	return nil
}

// printFields renders the create-screen field metadata as a table.
func printFields(w io.Writer, fields []jira.FieldMeta) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKEY\tREQUIRED\tTYPE\tOPERATIONS") // nolint:errcheck
	for _, f := range fields {
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%s\n", // nolint:errcheck
			f.Name, f.Key, f.Required, f.SchemaType, strings.Join(f.Operations, ","))
	}
	return tw.Flush()
}
