package cli

import (
	"errors"
	"testing"

	"github.com/pivotaltools/pt/internal/config"
)

func resolverSettings() *config.Settings {
	return &config.Settings{
		General:  config.General{DefaultProject: "Testing"},
		Projects: map[string]int{"testing": 1, "ops": 42},
	}
}

func TestResolveProject(t *testing.T) {
	t.Run("explicit name wins", func(t *testing.T) {
		id, err := resolveProject(&CLI{Project: strp("Ops"), ProjectID: intp(99)}, resolverSettings())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != 42 {
			t.Fatalf("expected 42, got %d", id)
		}
	})

	t.Run("unknown name fails regardless of other flags", func(t *testing.T) {
		_, err := resolveProject(&CLI{Project: strp("Nope"), ProjectID: intp(99)}, resolverSettings())
		if !errors.Is(err, errInvalidProject) {
			t.Fatalf("expected invalid-project error, got %v", err)
		}
		if err.Error() != "Invalid Project Name." {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})

	t.Run("numeric id is used verbatim", func(t *testing.T) {
		id, err := resolveProject(&CLI{ProjectID: intp(99)}, resolverSettings())
		if err != nil || id != 99 {
			t.Fatalf("expected 99, got %d (%v)", id, err)
		}
	})

	t.Run("default project applies last", func(t *testing.T) {
		id, err := resolveProject(&CLI{}, resolverSettings())
		if err != nil || id != 1 {
			t.Fatalf("expected 1, got %d (%v)", id, err)
		}
	})

	t.Run("unconfigured default propagates zero", func(t *testing.T) {
		id, err := resolveProject(&CLI{}, &config.Settings{})
		if err != nil || id != 0 {
			t.Fatalf("expected 0, got %d (%v)", id, err)
		}
	})

	t.Run("nil settings behave as empty", func(t *testing.T) {
		id, err := resolveProject(&CLI{}, nil)
		if err != nil || id != 0 {
			t.Fatalf("expected 0, got %d (%v)", id, err)
		}
	})
}
