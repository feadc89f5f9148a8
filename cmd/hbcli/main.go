// Hbcli exercises the Honeybadger Data API from the command line. Each
// subcommand maps to one API operation and prints the response as
// indented JSON, which makes it handy for smoke-testing a token or
// inspecting payloads outside the MCP server.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/nachoal/honeybadger-mcp/pkg/config"
	"github.com/nachoal/honeybadger-mcp/pkg/honeybadger"
)

const version = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		usage(os.Stderr)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "hbcli:", err)
		return 1
	}
	client, err := honeybadger.New(honeybadger.Config{
		Token:             cfg.APIToken,
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RateLimit,
		UserAgent:         "hbcli/" + version,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "hbcli:", err)
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	payload, err := dispatch(ctx, client, args[0], args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage(os.Stderr)
			return 2
		}
		printError(err)
		return 1
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		fmt.Println(string(payload))
		return 0
	}
	fmt.Println(buf.String())
	return 0
}

// dispatch parses the subcommand arguments and issues the API call.
func dispatch(ctx context.Context, client *honeybadger.Client, command string, args []string) (json.RawMessage, error) {
	switch command {

	// ── Projects ─────────────────────────────────────────────────────────

	case "projects":
		fs := newFlagSet("projects")
		accountID := fs.Int("account-id", 0, "filter by account ID")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return client.ListProjects(ctx, *accountID)

	case "project":
		pos, _, err := positionals(args, "project_id")
		if err != nil {
			return nil, err
		}
		projectID, err := intArg("project_id", pos[0])
		if err != nil {
			return nil, err
		}
		return client.GetProject(ctx, projectID)

	case "create-project":
		pos, rest, err := positionals(args, "name")
		if err != nil {
			return nil, err
		}
		fs := newFlagSet("create-project")
		accountID := fs.Int("account-id", 0, "account to create the project in")
		language := fs.String("language", "", "project language")
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		params := honeybadger.ProjectParams{Name: &pos[0]}
		if *language != "" {
			params.Language = language
		}
		return client.CreateProject(ctx, *accountID, params)

	case "update-project":
		pos, rest, err := positionals(args, "project_id")
		if err != nil {
			return nil, err
		}
		projectID, err := intArg("project_id", pos[0])
		if err != nil {
			return nil, err
		}
		fs := newFlagSet("update-project")
		name := fs.String("name", "", "new project name")
		language := fs.String("language", "", "project language")
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		var params honeybadger.ProjectParams
		if *name != "" {
			params.Name = name
		}
		if *language != "" {
			params.Language = language
		}
		return client.UpdateProject(ctx, projectID, params)

	case "delete-project":
		pos, _, err := positionals(args, "project_id")
		if err != nil {
			return nil, err
		}
		projectID, err := intArg("project_id", pos[0])
		if err != nil {
			return nil, err
		}
		return client.DeleteProject(ctx, projectID)

	case "project-occurrences":
		fs := newFlagSet("project-occurrences")
		projectID := fs.Int("project-id", 0, "project ID, omit for all projects")
		period := fs.String("period", "hour", "hour, day, week or month")
		environment := fs.String("environment", "", "filter by environment")
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		return client.ProjectOccurrences(ctx, *projectID, *period, *environment)

	// ── Faults ───────────────────────────────────────────────────────────

	case "faults":
		pos, rest, err := positionals(args, "project_id")
		if err != nil {
			return nil, err
		}
		projectID, err := intArg("project_id", pos[0])
		if err != nil {
			return nil, err
		}
		fs := newFlagSet("faults")
		query := fs.String("query", "", "search query")
		limit := fs.Int("limit", 25, "maximum number of results")
		order := fs.String("order", "recent", "recent or frequent")
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		return client.ListFaults(ctx, projectID, honeybadger.FaultListOptions{
			Query: *query,
			Limit: *limit,
			Order: *order,
		})

	case "fault":
		projectID, faultID, _, err := faultRef(args)
		if err != nil {
			return nil, err
		}
		return client.GetFault(ctx, projectID, faultID)

	case "fault-summary":
		pos, rest, err := positionals(args, "project_id")
		if err != nil {
			return nil, err
		}
		projectID, err := intArg("project_id", pos[0])
		if err != nil {
			return nil, err
		}
		fs := newFlagSet("fault-summary")
		query := fs.String("query", "", "search query")
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		return client.FaultSummary(ctx, projectID, *query)

	case "update-fault":
		projectID, faultID, rest, err := faultRef(args)
		if err != nil {
			return nil, err
		}
		fs := newFlagSet("update-fault")
		resolved := fs.String("resolved", "", `"true" or "false"`)
		ignored := fs.String("ignored", "", `"true" or "false"`)
		assigneeID := fs.Int("assignee-id", 0, "user ID to assign the fault to")
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		var params honeybadger.FaultParams
		if params.Resolved, err = optionalBool("resolved", *resolved); err != nil {
			return nil, err
		}
		if params.Ignored, err = optionalBool("ignored", *ignored); err != nil {
			return nil, err
		}
		if flagWasSet(fs, "assignee-id") {
			params.AssigneeID = assigneeID
		}
		return client.UpdateFault(ctx, projectID, faultID, params)

	case "delete-fault":
		projectID, faultID, _, err := faultRef(args)
		if err != nil {
			return nil, err
		}
		return client.DeleteFault(ctx, projectID, faultID)

	case "fault-occurrences":
		projectID, faultID, rest, err := faultRef(args)
		if err != nil {
			return nil, err
		}
		fs := newFlagSet("fault-occurrences")
		period := fs.String("period", "day", "hour, day, week or month")
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		return client.FaultOccurrences(ctx, projectID, faultID, *period)

	case "fault-notices":
		projectID, faultID, rest, err := faultRef(args)
		if err != nil {
			return nil, err
		}
		fs := newFlagSet("fault-notices")
		createdAfter := fs.Int64("created-after", 0, "unix timestamp, only notices after this time")
		createdBefore := fs.Int64("created-before", 0, "unix timestamp, only notices before this time")
		limit := fs.Int("limit", 25, "number of results, max 25")
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		return client.FaultNotices(ctx, projectID, faultID, honeybadger.NoticeListOptions{
			CreatedAfter:  *createdAfter,
			CreatedBefore: *createdBefore,
			Limit:         *limit,
		})

	case "pause-fault":
		projectID, faultID, rest, err := faultRef(args)
		if err != nil {
			return nil, err
		}
		fs := newFlagSet("pause-fault")
		window := fs.String("time", "", "hour, day or week")
		count := fs.Int("count", 0, "occurrences to pause for (10, 100 or 1000)")
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		return client.PauseFault(ctx, projectID, faultID, *window, *count)

	case "unpause-fault":
		projectID, faultID, _, err := faultRef(args)
		if err != nil {
			return nil, err
		}
		return client.UnpauseFault(ctx, projectID, faultID)

	case "bulk-resolve":
		pos, rest, err := positionals(args, "project_id")
		if err != nil {
			return nil, err
		}
		projectID, err := intArg("project_id", pos[0])
		if err != nil {
			return nil, err
		}
		fs := newFlagSet("bulk-resolve")
		query := fs.String("query", "", "search query to filter faults")
		if err := fs.Parse(rest); err != nil {
			return nil, err
		}
		return client.ResolveFaults(ctx, projectID, *query)
	}

	return nil, fmt.Errorf("unknown command %q, run hbcli without arguments for usage", command)
}

// ──────────────────────────────────────────────────────────────────────────────
// Argument helpers
// ──────────────────────────────────────────────────────────────────────────────

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// positionals peels the named leading arguments off args and returns them
// together with whatever is left for flag parsing.
func positionals(args []string, names ...string) ([]string, []string, error) {
	for i, name := range names {
		if i >= len(args) || strings.HasPrefix(args[i], "-") {
			return nil, nil, fmt.Errorf("missing argument <%s>", name)
		}
	}
	return args[:len(names)], args[len(names):], nil
}

func intArg(name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("<%s> must be an integer, got %q", name, value)
	}
	return n, nil
}

// faultRef parses the project_id/fault_id pair shared by the fault commands.
func faultRef(args []string) (projectID, faultID int, rest []string, err error) {
	pos, rest, err := positionals(args, "project_id", "fault_id")
	if err != nil {
		return 0, 0, nil, err
	}
	if projectID, err = intArg("project_id", pos[0]); err != nil {
		return 0, 0, nil, err
	}
	if faultID, err = intArg("fault_id", pos[1]); err != nil {
		return 0, 0, nil, err
	}
	return projectID, faultID, rest, nil
}

func optionalBool(name, value string) (*bool, error) {
	switch value {
	case "":
		return nil, nil
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	}
	return nil, fmt.Errorf("--%s must be \"true\" or \"false\", got %q", name, value)
}

func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// ──────────────────────────────────────────────────────────────────────────────
// Output
// ──────────────────────────────────────────────────────────────────────────────

func printError(err error) {
	var apiErr *honeybadger.APIError
	var transportErr *honeybadger.TransportError
	var decodeErr *honeybadger.DecodeError
	switch {
	case errors.As(err, &apiErr):
		fmt.Fprintf(os.Stderr, "hbcli: API error: status=%d\n%s\n", apiErr.Status, apiErr.Body)
		if hint := apiErr.Hint(); hint != "" {
			fmt.Fprintln(os.Stderr, "hint:", hint)
		}
	case errors.As(err, &transportErr):
		fmt.Fprintln(os.Stderr, "hbcli: request failed:", transportErr.Err)
	case errors.As(err, &decodeErr):
		fmt.Fprintf(os.Stderr, "hbcli: response was not JSON: %v\n%s\n", decodeErr.Err, decodeErr.Body)
	default:
		fmt.Fprintln(os.Stderr, "hbcli:", err)
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: hbcli <command> [arguments]

Project commands:
  projects [--account-id N]                        List all projects
  project <project_id>                             Get project details
  create-project <name> [--account-id N] [--language L]
                                                   Create a new project
  update-project <project_id> [--name S] [--language L]
                                                   Update a project
  delete-project <project_id>                      Delete a project
  project-occurrences [--project-id N] [--period P] [--environment E]
                                                   Occurrence counts over time

Fault commands:
  faults <project_id> [--query Q] [--limit N] [--order O]
  fault <project_id> <fault_id>
  fault-summary <project_id> [--query Q]
  update-fault <project_id> <fault_id> [--resolved B] [--ignored B] [--assignee-id N]
  delete-fault <project_id> <fault_id>
  fault-occurrences <project_id> <fault_id> [--period P]
  fault-notices <project_id> <fault_id> [--created-after T] [--created-before T] [--limit N]
  pause-fault <project_id> <fault_id> [--time W | --count N]
  unpause-fault <project_id> <fault_id>
  bulk-resolve <project_id> [--query Q]

Environment:
  HONEYBADGER_API_TOKEN  personal auth token (required)
  HONEYBADGER_BASE_URL   API root (default `+honeybadger.DefaultBaseURL+`)
`)
}
