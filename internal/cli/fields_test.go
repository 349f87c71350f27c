package cli

import (
	"testing"

	"github.com/pivotaltools/pt/internal/config"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func TestNormalizeLabels(t *testing.T) {
	repeated := NormalizeLabels([]string{"a", "b", "c"})
	joined := NormalizeLabels([]string{"a,b,c"})
	if repeated != joined {
		t.Fatalf("repeated (%q) and comma-joined (%q) labels should normalize identically", repeated, joined)
	}
	if repeated != "a,b,c" {
		t.Fatalf("expected a,b,c, got %q", repeated)
	}

	if got := NormalizeLabels([]string{" a , b ", "c"}); got != "a,b,c" {
		t.Fatalf("expected whitespace trimmed, got %q", got)
	}
	if got := NormalizeLabels(nil); got != "" {
		t.Fatalf("expected empty string for no labels, got %q", got)
	}
}

func TestEffectiveStoryType(t *testing.T) {
	if got := effectiveStoryType(&CLI{}); got != nil {
		t.Fatalf("expected nil story type, got %q", *got)
	}
	if got := effectiveStoryType(&CLI{Bug: true}); got == nil || *got != "bug" {
		t.Fatal("expected bug from shortcut flag")
	}
	// An explicit --story-type beats any shortcut flag.
	if got := effectiveStoryType(&CLI{StoryType: strp("chore"), Bug: true}); got == nil || *got != "chore" {
		t.Fatal("expected explicit story type to win")
	}
}

func TestBuildCreateRequest(t *testing.T) {
	settings := &config.Settings{General: config.General{Me: "Alice"}}

	t.Run("requested_by falls back to me", func(t *testing.T) {
		req := buildCreateRequest(&CLI{Story: strp("Fix bug")}, settings)
		if req.RequestedBy == nil || *req.RequestedBy != "Alice" {
			t.Fatal("expected requested_by to default to Alice")
		}
	})

	t.Run("explicit requested_by wins", func(t *testing.T) {
		req := buildCreateRequest(&CLI{Story: strp("Fix bug"), RequestedBy: strp("Carol")}, settings)
		if req.RequestedBy == nil || *req.RequestedBy != "Carol" {
			t.Fatal("expected explicit requested_by")
		}
	})

	t.Run("no me and no flag leaves requested_by unset", func(t *testing.T) {
		req := buildCreateRequest(&CLI{Story: strp("Fix bug")}, &config.Settings{})
		if req.RequestedBy != nil {
			t.Fatal("expected requested_by to stay unset")
		}
	})

	t.Run("unsupplied type and state are omitted", func(t *testing.T) {
		req := buildCreateRequest(&CLI{Story: strp("Fix bug")}, settings)
		if req.StoryType != nil || req.CurrentState != nil {
			t.Fatal("expected story type and state to stay unset")
		}
	})

	t.Run("labels flatten to one comma-joined string", func(t *testing.T) {
		req := buildCreateRequest(&CLI{Story: strp("Fix bug"), Label: []string{"a", "b,c"}}, settings)
		if req.Labels == nil || *req.Labels != "a,b,c" {
			t.Fatal("expected flattened labels")
		}
	})
}

func TestBuildUpdateRequest(t *testing.T) {
	t.Run("empty when nothing supplied", func(t *testing.T) {
		if !buildUpdateRequest(&CLI{}).Empty() {
			t.Fatal("expected empty request")
		}
	})

	t.Run("contains exactly the supplied fields", func(t *testing.T) {
		req := buildUpdateRequest(&CLI{OwnedBy: strp("Bob"), Estimate: intp(3)})
		if req.OwnedBy == nil || *req.OwnedBy != "Bob" {
			t.Fatal("expected owned_by")
		}
		if req.Estimate == nil || *req.Estimate != 3 {
			t.Fatal("expected estimate")
		}
		if req.Name != nil || req.Description != nil || req.RequestedBy != nil ||
			req.Labels != nil || req.CreatedAt != nil || req.Deadline != nil ||
			req.StoryType != nil || req.CurrentState != nil {
			t.Fatal("unsupplied fields must stay unset")
		}
	})

	t.Run("no requested_by fallback on update", func(t *testing.T) {
		req := buildUpdateRequest(&CLI{Story: strp("New title")})
		if req.RequestedBy != nil {
			t.Fatal("update must not default requested_by")
		}
	})

	t.Run("shortcut flag supplies the story type", func(t *testing.T) {
		req := buildUpdateRequest(&CLI{Chore: true})
		if req.Empty() {
			t.Fatal("a shortcut type flag alone is a non-empty update")
		}
		if req.StoryType == nil || *req.StoryType != "chore" {
			t.Fatal("expected chore")
		}
	})
}
