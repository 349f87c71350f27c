// Package output renders API results as human-readable text. Renderers write
// plain bytes; color is layered on only when the destination is a terminal.
package output

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/pivotaltools/pt/internal/tracker"
)

// labelWidth right-aligns the story field labels ("Requested By" is the
// widest).
const labelWidth = 12

// storyDivider separates stories in a multi-story listing.
var storyDivider = strings.Repeat("=", 50)

// RenderProject writes a project's metadata as labeled lines with a trailing
// blank line.
func RenderProject(w io.Writer, p *tracker.Project) {
	fmt.Fprintf(w, "Name: %s\n", p.Name)
	fmt.Fprintf(w, "Point Scale: %s\n", p.PointScale)
	if p.IterationsStart != "" {
		fmt.Fprintf(w, "Iterations Start: %s\n", p.IterationsStart)
	}
	fmt.Fprintf(w, "Weeks per Iteration: %d\n", p.WeeksPerIteration)
	fmt.Fprintln(w)
}

// RenderStory writes one story. Optional fields are omitted entirely when the
// service did not supply them; notes appear only when showNotes is set and
// the story has any.
func RenderStory(w io.Writer, s *tracker.Story, showNotes bool) {
	header := fmt.Sprintf("Story %d (%s) < %s >", s.ID, s.StoryType, s.URL)
	fmt.Fprintln(w, styled(w, Styles.Header, header))

	field(w, "Name", s.Name)
	field(w, "Estimate", strconv.Itoa(s.Estimate))
	field(w, "State", s.CurrentState)
	if s.Description != "" {
		multilineField(w, "Description", s.Description)
	}
	field(w, "Requested By", s.RequestedBy)
	if s.OwnedBy != "" {
		field(w, "Owned By", s.OwnedBy)
	}
	field(w, "Created", s.CreatedAt)
	if s.Deadline != "" {
		field(w, "Deadline", s.Deadline)
	}
	if len(s.Labels) > 0 {
		field(w, "Label(s)", strings.Join(s.Labels, ", "))
	}
	if showNotes && len(s.Notes) > 0 {
		fmt.Fprintf(w, "%s:\n", styled(w, Styles.Label, fmt.Sprintf("%*s", labelWidth, "Notes")))
		for i, n := range s.Notes {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "  %s @ %s:\n", n.Author, n.Date)
			for _, line := range strings.Split(n.Text, "\n") {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
	}
}

// RenderStories writes each story, separated by a fifty-character divider and
// a blank line. No divider precedes the first story.
func RenderStories(w io.Writer, stories []tracker.Story, showNotes bool) {
	for i := range stories {
		if i > 0 {
			fmt.Fprintf(w, "%s\n\n", storyDivider)
		}
		RenderStory(w, &stories[i], showNotes)
	}
}

// RenderNote writes a standalone note, as returned by add-note.
func RenderNote(w io.Writer, n *tracker.Note) {
	fmt.Fprintf(w, "Note (%d) %s @ %s\n", n.ID, n.Author, n.Date)
	for _, line := range strings.Split(n.Text, "\n") {
		fmt.Fprintf(w, "  %s\n", line)
	}
}

// RenderErrors writes the service's error strings to the error stream.
func RenderErrors(w io.Writer, errs []string) {
	fmt.Fprintln(w, styled(w, Styles.Danger, "Unable to process request:"))
	for _, e := range errs {
		fmt.Fprintf(w, "  %s\n", e)
	}
}

// RenderProjectTable writes the configured name-to-ID table, sorted by name.
func RenderProjectTable(w io.Writer, projects map[string]int) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No named projects found.")
		return
	}

	names := make([]string, 0, len(projects))
	for name := range projects {
		names = append(names, name)
	}
	sort.Strings(names)

	table := tablewriter.NewTable(w)
	table.Header([]string{"Project", "ID"})
	for _, name := range names {
		_ = table.Append([]string{name, strconv.Itoa(projects[name])})
	}
	_ = table.Render()
}

// field writes one right-aligned labeled line.
func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s: %s\n", styled(w, Styles.Label, fmt.Sprintf("%*s", labelWidth, label)), value)
}

// multilineField writes the first line inline and indents every subsequent
// line to the value column.
func multilineField(w io.Writer, label, value string) {
	lines := strings.Split(value, "\n")
	field(w, label, lines[0])
	for _, line := range lines[1:] {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", labelWidth+2), line)
	}
}
