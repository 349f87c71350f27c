// Package cli defines the pt flag grammar and dispatches the single action a
// given invocation selects.
package cli

import (
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/pivotaltools/pt/internal/config"
	"github.com/pivotaltools/pt/internal/tracker"
)

// CLI is the kong grammar. Value flags are pointers so that "flag not given"
// is distinguishable from "flag given with its zero value".
type CLI struct {
	// Actions. When several are given, dispatch picks the first in its
	// fixed priority order.
	ListProjects bool    `help:"List the named projects from the config file."`
	ShowProject  bool    `help:"Show the project's metadata."`
	ShowStory    bool    `help:"Show one story (--story-id) or every story (--all-stories)."`
	AllStories   bool    `help:"With --show-story, fetch every story in the project."`
	Search       *string `placeholder:"FILTER" help:"Show the stories matching a filter expression."`
	AddStory     bool    `help:"Add a new story (title from --story)."`
	UpdateStory  bool    `help:"Update the story named by --story-id."`
	DeleteStory  bool    `help:"Delete the story named by --story-id."`
	AddNote      *string `placeholder:"TEXT" help:"Attach a note to the story named by --story-id."`
	Man          bool    `help:"Show the full manual."`

	// Project selection.
	Project   *string `short:"p" help:"Project name, looked up in the config file."`
	ProjectID *int    `placeholder:"ID" help:"Numeric project ID, used verbatim."`

	// Story fields.
	StoryID     *int     `short:"i" placeholder:"ID" help:"Story ID."`
	Story       *string  `short:"s" placeholder:"TITLE" help:"Story title."`
	Description *string  `help:"Story description."`
	RequestedBy *string  `placeholder:"NAME" help:"Requesting user (defaults to 'me' from the config file)."`
	OwnedBy     *string  `placeholder:"NAME" help:"Owning user."`
	Label       []string `short:"l" help:"Story label (repeatable, accepts comma-separated values)."`
	Estimate    *int     `help:"Point estimate."`
	CreatedAt   *string  `placeholder:"DATE" help:"Creation date."`
	Deadline    *string  `placeholder:"DATE" help:"Story deadline (release stories only)."`
	StoryType   *string  `placeholder:"TYPE" help:"Story type: feature, release, bug or chore."`
	State       *string  `help:"Story state: unscheduled, unstarted, started, finished, delivered, accepted or rejected."`
	ShowNotes   bool     `help:"Include notes when showing a story."`

	// Story type shortcuts.
	Feature bool `help:"Shortcut for --story-type=feature."`
	Release bool `help:"Shortcut for --story-type=release."`
	Bug     bool `help:"Shortcut for --story-type=bug."`
	Chore   bool `help:"Shortcut for --story-type=chore."`

	Timeout *time.Duration `help:"HTTP request timeout (default 30s)."`
	Verbose bool           `short:"v" help:"Log requests and responses to stderr."`
}

// Validate rejects enumerated values outside their closed sets at parse time,
// so nothing invalid ever reaches the network layer.
func (c *CLI) Validate() error {
	if c.StoryType != nil {
		if _, err := tracker.ParseStoryType(*c.StoryType); err != nil {
			return err
		}
	}
	if c.State != nil {
		if _, err := tracker.ParseStoryState(*c.State); err != nil {
			return err
		}
	}
	return nil
}

// Globals holds the shared state every action runs against.
type Globals struct {
	Stdout    io.Writer
	Stderr    io.Writer
	Settings  *config.Settings
	ConfigErr error
	API       tracker.API
	Log       *zap.SugaredLogger
}

// Manual is the long-form documentation printed by --man.
const Manual = `pt - a command-line interface to Pivotal Tracker

CONFIGURATION
  pt folds these files together, later entries overriding earlier ones
  key-by-key:

    /etc/pivotal_tracker/config.yaml
    $XDG_CONFIG_HOME/pivotal_tracker/config.yaml
    ~/.pivotal_tracker.yaml
    ./.pivotal_tracker.yaml

  Example:

    general:
      api_key: "c0ffee"
      me: "Alice"
      default_project: Testing
    projects:
      Testing: 1
      Ops: 42

  PIVOTAL_API_KEY, PIVOTAL_ME, PIVOTAL_DEFAULT_PROJECT, PIVOTAL_API_URL and
  PIVOTAL_TIMEOUT override individual keys (a local .env file is honored).

PROJECT SELECTION
  --project NAME takes priority and must name an entry under projects:,
  otherwise --project-id ID is used verbatim, otherwise the configured
  default_project applies.

ACTIONS (one per invocation)
  --list-projects
      Print the configured project table. Works without an API key.
  --show-project
      Print the project's name, point scale and iteration settings.
  --show-story --story-id ID [--show-notes]
      Print one story. --show-story --all-stories prints every story.
  --search FILTER
      Print the stories matching the service-side filter expression.
  --add-story --story TITLE [fields...]
      Create a story. --requested-by defaults to 'me' from the config file;
      --bug/--feature/--chore/--release shortcut --story-type.
  --update-story --story-id ID [fields...]
      Send only the fields you name; at least one is required.
  --delete-story --story-id ID
      Delete a story and print the service's confirmation.
  --add-note TEXT --story-id ID
      Attach a note to a story.

EXIT STATUS
  0 on success, 1 on a usage error, an unknown project name, or a failure
  reported by the service.
`
