package cli

import (
	"strings"

	"github.com/pivotaltools/pt/internal/config"
	"github.com/pivotaltools/pt/internal/tracker"
)

// NormalizeLabels flattens repeated --label values, each of which may itself
// be comma-separated, into one comma-joined string. Repeated flags and a
// single comma-joined value normalize identically.
func NormalizeLabels(values []string) string {
	var labels []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				labels = append(labels, part)
			}
		}
	}
	return strings.Join(labels, ",")
}

// effectiveStoryType returns the explicit --story-type value, or the first
// set shortcut flag, or nil when neither was given.
func effectiveStoryType(c *CLI) *string {
	if c.StoryType != nil {
		return c.StoryType
	}
	shortcuts := []struct {
		set bool
		t   tracker.StoryType
	}{
		{c.Feature, tracker.StoryTypeFeature},
		{c.Release, tracker.StoryTypeRelease},
		{c.Bug, tracker.StoryTypeBug},
		{c.Chore, tracker.StoryTypeChore},
	}
	for _, s := range shortcuts {
		if s.set {
			t := string(s.t)
			return &t
		}
	}
	return nil
}

// buildCreateRequest assembles the add-story field set. Only explicitly
// supplied fields are included; requested_by falls back to the configured
// 'me' value, and an absent story type or state lets the service choose its
// default.
func buildCreateRequest(c *CLI, settings *config.Settings) tracker.StoryRequest {
	req := tracker.StoryRequest{
		Name:         c.Story,
		Description:  c.Description,
		RequestedBy:  c.RequestedBy,
		OwnedBy:      c.OwnedBy,
		Estimate:     c.Estimate,
		CreatedAt:    c.CreatedAt,
		Deadline:     c.Deadline,
		StoryType:    effectiveStoryType(c),
		CurrentState: c.State,
	}
	if req.RequestedBy == nil && settings != nil && settings.General.Me != "" {
		me := settings.General.Me
		req.RequestedBy = &me
	}
	if len(c.Label) > 0 {
		labels := NormalizeLabels(c.Label)
		req.Labels = &labels
	}
	return req
}

// buildUpdateRequest assembles the update-story field set: exactly the
// update-relevant flags the user supplied, nothing more. No defaults apply.
func buildUpdateRequest(c *CLI) tracker.StoryRequest {
	req := tracker.StoryRequest{
		Name:         c.Story,
		Description:  c.Description,
		RequestedBy:  c.RequestedBy,
		OwnedBy:      c.OwnedBy,
		Estimate:     c.Estimate,
		CreatedAt:    c.CreatedAt,
		Deadline:     c.Deadline,
		StoryType:    effectiveStoryType(c),
		CurrentState: c.State,
	}
	if len(c.Label) > 0 {
		labels := NormalizeLabels(c.Label)
		req.Labels = &labels
	}
	return req
}
