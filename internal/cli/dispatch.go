package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pivotaltools/pt/internal/config"
	"github.com/pivotaltools/pt/internal/output"
	"github.com/pivotaltools/pt/internal/tracker"
)

// usageError is a pre-network failure: bad or missing flags, an unknown
// project name, an empty update set. It reaches stderr and exit code 1
// without any request being attempted.
type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

// Run dispatches the selected action and maps the outcome to the process
// exit code: 0 on success, 1 on any failure.
func Run(c *CLI, g *Globals) int {
	err := Dispatch(c, g)
	if err == nil {
		return 0
	}
	var apiErr *tracker.APIError
	if errors.As(err, &apiErr) {
		output.RenderErrors(g.Stderr, apiErr.Errors)
	} else {
		fmt.Fprintln(g.Stderr, err)
	}
	return 1
}

// Dispatch runs the first matching action in the fixed priority order:
// list-projects, show-project, show-story, search, add-story, update-story,
// delete-story, add-note. When no action flag is present it does nothing,
// matching the historical tool.
func Dispatch(c *CLI, g *Globals) error {
	ctx := context.Background()
	switch {
	case c.ListProjects:
		return runListProjects(c, g)
	case c.ShowProject:
		return runShowProject(ctx, c, g)
	case c.ShowStory:
		return runShowStory(ctx, c, g)
	case c.Search != nil:
		return runSearch(ctx, c, g)
	case c.AddStory:
		return runAddStory(ctx, c, g)
	case c.UpdateStory:
		return runUpdateStory(ctx, c, g)
	case c.DeleteStory:
		return runDeleteStory(ctx, c, g)
	case c.AddNote != nil:
		return runAddNote(ctx, c, g)
	}
	return nil
}

// runListProjects needs no API key and degrades gracefully when the config is
// missing or broken.
func runListProjects(c *CLI, g *Globals) error {
	var projects map[string]int
	if g.Settings != nil {
		projects = g.Settings.Projects
	}
	output.RenderProjectTable(g.Stdout, projects)
	return nil
}

func runShowProject(ctx context.Context, c *CLI, g *Globals) error {
	settings, err := remoteSettings(g)
	if err != nil {
		return err
	}
	projectID, err := resolveProject(c, settings)
	if err != nil {
		return err
	}
	project, err := g.API.GetProject(ctx, projectID)
	if err != nil {
		return err
	}
	output.RenderProject(g.Stdout, project)
	return nil
}

func runShowStory(ctx context.Context, c *CLI, g *Globals) error {
	settings, err := remoteSettings(g)
	if err != nil {
		return err
	}
	projectID, err := resolveProject(c, settings)
	if err != nil {
		return err
	}
	switch {
	case c.AllStories:
		stories, err := g.API.AllStories(ctx, projectID)
		if err != nil {
			return err
		}
		output.RenderStories(g.Stdout, stories, c.ShowNotes)
		return nil
	case c.StoryID != nil:
		story, err := g.API.GetStory(ctx, projectID, *c.StoryID)
		if err != nil {
			return err
		}
		output.RenderStory(g.Stdout, story, c.ShowNotes)
		return nil
	default:
		return usageError{"Showing a story requires --story-id or --all-stories."}
	}
}

func runSearch(ctx context.Context, c *CLI, g *Globals) error {
	filter := *c.Search
	if filter == "" {
		return usageError{"Search requires a filter string."}
	}
	settings, err := remoteSettings(g)
	if err != nil {
		return err
	}
	projectID, err := resolveProject(c, settings)
	if err != nil {
		return err
	}
	stories, err := g.API.Search(ctx, projectID, filter)
	if err != nil {
		return err
	}
	fmt.Fprintf(g.Stdout, "%d stories match %q:\n\n", len(stories), filter)
	output.RenderStories(g.Stdout, stories, c.ShowNotes)
	return nil
}

func runAddStory(ctx context.Context, c *CLI, g *Globals) error {
	if c.Story == nil {
		return usageError{"Cannot add a story without a title (--story)."}
	}
	settings, err := remoteSettings(g)
	if err != nil {
		return err
	}
	projectID, err := resolveProject(c, settings)
	if err != nil {
		return err
	}
	story, err := g.API.CreateStory(ctx, projectID, buildCreateRequest(c, settings))
	if err != nil {
		return err
	}
	output.RenderStory(g.Stdout, story, false)
	return nil
}

func runUpdateStory(ctx context.Context, c *CLI, g *Globals) error {
	if c.StoryID == nil {
		return usageError{"Cannot update a story without --story-id."}
	}
	req := buildUpdateRequest(c)
	if req.Empty() {
		return usageError{"Cannot update a story, without specifying what to update."}
	}
	settings, err := remoteSettings(g)
	if err != nil {
		return err
	}
	projectID, err := resolveProject(c, settings)
	if err != nil {
		return err
	}
	story, err := g.API.UpdateStory(ctx, projectID, *c.StoryID, req)
	if err != nil {
		return err
	}
	output.RenderStory(g.Stdout, story, false)
	return nil
}

func runDeleteStory(ctx context.Context, c *CLI, g *Globals) error {
	if c.StoryID == nil {
		return usageError{"Cannot delete a story without --story-id."}
	}
	settings, err := remoteSettings(g)
	if err != nil {
		return err
	}
	projectID, err := resolveProject(c, settings)
	if err != nil {
		return err
	}
	msg, err := g.API.DeleteStory(ctx, projectID, *c.StoryID)
	if err != nil {
		return err
	}
	fmt.Fprintln(g.Stdout, msg)
	return nil
}

func runAddNote(ctx context.Context, c *CLI, g *Globals) error {
	if c.StoryID == nil {
		return usageError{"Cannot add a note without --story-id."}
	}
	settings, err := remoteSettings(g)
	if err != nil {
		return err
	}
	projectID, err := resolveProject(c, settings)
	if err != nil {
		return err
	}
	note, err := g.API.AddNote(ctx, projectID, *c.StoryID, *c.AddNote)
	if err != nil {
		return err
	}
	output.RenderNote(g.Stdout, note)
	return nil
}

// remoteSettings gates every action that talks to the service: a broken
// config file is fatal here (and only here), and an API key is required.
func remoteSettings(g *Globals) (*config.Settings, error) {
	if g.ConfigErr != nil {
		return nil, fmt.Errorf("cannot reach Pivotal Tracker: %w", g.ConfigErr)
	}
	if g.Settings == nil || g.Settings.General.APIKey == "" {
		return nil, usageError{"No API key configured. Add general.api_key to ~/.pivotal_tracker.yaml."}
	}
	if g.API == nil {
		return nil, errors.New("no API client configured")
	}
	return g.Settings, nil
}
