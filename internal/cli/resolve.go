package cli

import (
	"github.com/pivotaltools/pt/internal/config"
)

// errInvalidProject carries the historical CLI message verbatim.
var errInvalidProject = usageError{"Invalid Project Name."}

// resolveProject determines the effective project ID. An explicit project
// name wins and must exist in the config table; an explicit numeric ID is
// used verbatim (the service validates it); otherwise the configured default
// project applies, propagated as zero when unconfigured.
func resolveProject(c *CLI, settings *config.Settings) (int, error) {
	if settings == nil {
		settings = &config.Settings{}
	}
	switch {
	case c.Project != nil:
		id, ok := settings.ProjectID(*c.Project)
		if !ok {
			return 0, errInvalidProject
		}
		return id, nil
	case c.ProjectID != nil:
		return *c.ProjectID, nil
	default:
		id, _ := settings.ProjectID(settings.General.DefaultProject)
		return id, nil
	}
}
