package tracker

import (
	"fmt"
	"strings"
)

// StoryType is the closed set of story types the service accepts.
type StoryType string

const (
	StoryTypeFeature StoryType = "feature"
	StoryTypeRelease StoryType = "release"
	StoryTypeBug     StoryType = "bug"
	StoryTypeChore   StoryType = "chore"
)

// StoryTypes lists every valid story type, in display order.
var StoryTypes = []StoryType{StoryTypeFeature, StoryTypeRelease, StoryTypeBug, StoryTypeChore}

// ParseStoryType validates s against the closed story-type set.
func ParseStoryType(s string) (StoryType, error) {
	for _, t := range StoryTypes {
		if s == string(t) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid story type %q (expected one of %s)", s, joinTypes())
}

func joinTypes() string {
	parts := make([]string, len(StoryTypes))
	for i, t := range StoryTypes {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// StoryState is the closed set of workflow states a story can be in.
type StoryState string

const (
	StateUnscheduled StoryState = "unscheduled"
	StateUnstarted   StoryState = "unstarted"
	StateStarted     StoryState = "started"
	StateFinished    StoryState = "finished"
	StateDelivered   StoryState = "delivered"
	StateAccepted    StoryState = "accepted"
	StateRejected    StoryState = "rejected"
)

// StoryStates lists every valid story state, in workflow order.
var StoryStates = []StoryState{
	StateUnscheduled, StateUnstarted, StateStarted,
	StateFinished, StateDelivered, StateAccepted, StateRejected,
}

// ParseStoryState validates s against the closed state set.
func ParseStoryState(s string) (StoryState, error) {
	for _, st := range StoryStates {
		if s == string(st) {
			return st, nil
		}
	}
	parts := make([]string, len(StoryStates))
	for i, st := range StoryStates {
		parts[i] = string(st)
	}
	return "", fmt.Errorf("invalid state %q (expected one of %s)", s, strings.Join(parts, ", "))
}

// Project is the service's project metadata record.
type Project struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	PointScale        string `json:"point_scale"`
	IterationsStart   string `json:"iterations_start,omitempty"`
	WeeksPerIteration int    `json:"weeks_per_iteration"`
}

// Note is a comment attached to a story.
type Note struct {
	ID     int    `json:"id"`
	Author string `json:"author"`
	Date   string `json:"date"`
	Text   string `json:"text"`
}

// Story is the service's story record. Optional fields come back as empty
// strings when the service omits them.
type Story struct {
	ID           int      `json:"id"`
	URL          string   `json:"url"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	Estimate     int      `json:"estimate"`
	StoryType    string   `json:"story_type"`
	CurrentState string   `json:"current_state"`
	RequestedBy  string   `json:"requested_by"`
	OwnedBy      string   `json:"owned_by,omitempty"`
	CreatedAt    string   `json:"created_at"`
	Deadline     string   `json:"deadline,omitempty"`
	Labels       []string `json:"labels,omitempty"`
	Notes        []Note   `json:"notes,omitempty"`
}

// StoryRequest carries the fields of a create or update request. Every field
// is a pointer so that only explicitly supplied fields are serialized; the
// service applies its own defaults for anything absent.
type StoryRequest struct {
	Name         *string `json:"name,omitempty"`
	Description  *string `json:"description,omitempty"`
	RequestedBy  *string `json:"requested_by,omitempty"`
	OwnedBy      *string `json:"owned_by,omitempty"`
	Labels       *string `json:"labels,omitempty"`
	Estimate     *int    `json:"estimate,omitempty"`
	CreatedAt    *string `json:"created_at,omitempty"`
	Deadline     *string `json:"deadline,omitempty"`
	StoryType    *string `json:"story_type,omitempty"`
	CurrentState *string `json:"current_state,omitempty"`
}

// Empty reports whether no field of the request was supplied.
func (r StoryRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.RequestedBy == nil &&
		r.OwnedBy == nil && r.Labels == nil && r.Estimate == nil &&
		r.CreatedAt == nil && r.Deadline == nil && r.StoryType == nil &&
		r.CurrentState == nil
}

// APIError is a failure reported by the service, carrying its error strings.
type APIError struct {
	Errors []string
}

func (e *APIError) Error() string {
	return strings.Join(e.Errors, "; ")
}
