package flag

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/gi8lino/bugcsv/internal/logging"

	"github.com/containeroo/resolver"
	"github.com/containeroo/tinyflags"
)

// Priorities recognized by the input spreadsheet. The filter value is
// matched verbatim against the Priority column, so other values are
// accepted but will usually match nothing.
var Priorities = []string{
	"Stop ship",
	"Ship before complete",
	"Design input needed",
	"Nice to have",
}

// Config aggregates CLI flags after parsing.
type Config struct {
	CSVPath    string // Positional path to the bug spreadsheet
	ProjectKey string // Jira project key to create tickets in
	EpicKey    string // Optional epic to link each ticket under
	BoardID    int    // Explicit board id for sprint resolution
	Priority   string // Priority value to filter rows on
	ListFields bool   // Introspection mode: print Bug field metadata and exit
	AddSprint  bool   // Attach created tickets to the active sprint
	Yes        bool   // Skip interactive confirmation, create every row

	Config string // Path to optional YAML config file

	JiraURL         *url.URL      // Jira site base URL
	JiraEmail       string        // Account email for Basic auth
	JiraToken       string        // API token (resolved via env:/file: indirection)
	JiraBearerToken string        // Bearer token, alternative to email+token
	JiraTimeout     time.Duration // HTTP client timeout
	JiraSkipTLS     bool          // Skip TLS certificate verification

	Debug     bool              // Enables debug logging
	LogFormat logging.LogFormat // Log output format (text or json)
}

// ParseArgs parses CLI arguments into Config, handling version/help flags.
func ParseArgs(version string, args []string, out io.Writer, getEnv func(string) string) (Config, error) {
	var cfg Config
	tf := tinyflags.NewFlagSet("bugcsv", tinyflags.ContinueOnError)
	tf.Version(version)
	tf.SetGetEnvFn(getEnv)
	tf.EnvPrefix("BUGCSV")
	tf.SetOutput(out)

	// Run mode
	tf.StringVar(&cfg.ProjectKey, "project", "", "Jira project key to create tickets in").
		Placeholder("KEY").
		Value()
	tf.StringVar(&cfg.EpicKey, "epic", "", "Optional epic to set as parent").
		Placeholder("KEY").
		Value()
	tf.IntVar(&cfg.BoardID, "board-id", 0, "Numeric id of the sprint board. Only necessary if adding to the current sprint and the project has more than one board").
		Value()
	tf.StringVar(&cfg.Priority, "priority", "Stop ship",
		fmt.Sprintf("Priority to create tickets for. Expected values: %s", strings.Join(Priorities, ", "))).
		Value()
	tf.BoolVar(&cfg.ListFields, "list-fields", false, "List all possible fields for a bug in this project and exit").Value()
	tf.BoolVar(&cfg.AddSprint, "add-to-sprint", false, "Add bugs to the current sprint upon creation").Value()
	tf.BoolVar(&cfg.Yes, "yes", false, "Create tickets without asking for confirmation").Short("y").Value()

	tf.StringVar(&cfg.Config, "config", "", "Path to optional config file").Value()

	// Jira connection
	jiraURL := tf.String("jira-url", "", "Jira site base URL (e.g. https://example.atlassian.net)").
		Validate(func(s string) error {
			u, err := url.Parse(s)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("must be an absolute URL")
			}
			return nil
		}).
		Placeholder("URL").
		Value()
	tf.StringVar(&cfg.JiraEmail, "jira-email", "", "Account email for Basic auth").
		Validate(func(s string) error {
			if s != "" && !strings.Contains(s, "@") {
				return fmt.Errorf("email must contain @")
			}
			return nil
		}).
		Value()
	tf.StringVar(&cfg.JiraToken, "jira-token", "", "API token. Supports env:VAR and file:/path indirection").
		Placeholder("TOKEN").
		Value()
	tf.StringVar(&cfg.JiraBearerToken, "jira-bearer-token", "", "Bearer token, alternative to email+token").
		Placeholder("TOKEN").
		Value()
	jiraTimeout := tf.Duration("jira-timeout", 10*time.Second, "Jira HTTP client timeout").
		Validate(func(d time.Duration) error {
			if d <= 0 {
				return fmt.Errorf("timeout must be > 0")
			}
			return nil
		}).
		Value()
	tf.BoolVar(&cfg.JiraSkipTLS, "jira-skip-tls-verify", false, "Skip TLS certificate verification").Value()

	// Logging
	tf.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging").Value()
	logFormat := tf.String("log-format", "text", "Log format").Choices("text", "json").Short("l").Value()

	// Parse
	if err := tf.Parse(args); err != nil {
		return Config{}, err
	}

	// Post-parse
	cfg.LogFormat = logging.LogFormat(*logFormat)
	cfg.JiraTimeout = *jiraTimeout

	if *jiraURL == "" {
		return Config{}, fmt.Errorf("missing required flag --jira-url")
	}
	u, err := url.Parse(strings.TrimRight(*jiraURL, "/"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid --jira-url: %w", err)
	}
	cfg.JiraURL = u

	if cfg.ProjectKey == "" {
		return Config{}, fmt.Errorf("missing required flag --project")
	}

	// token may point at an env var or file instead of holding the secret
	if cfg.JiraToken != "" {
		token, err := resolver.ResolveVariable(cfg.JiraToken)
		if err != nil {
			return Config{}, fmt.Errorf("resolve --jira-token: %w", err)
		}
		cfg.JiraToken = token
	}

	positional := tf.Args()
	if len(positional) != 1 {
		return Config{}, fmt.Errorf("expected exactly one positional argument: the CSV file containing bugs")
	}
	cfg.CSVPath = positional[0]

	return cfg, nil
}
