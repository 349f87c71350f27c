package cli

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseArgs(t *testing.T, args ...string) (*CLI, error) {
	t.Helper()
	var c CLI
	parser, err := kong.New(&c, kong.Name("pt"))
	require.NoError(t, err)
	_, err = parser.Parse(args)
	return &c, err
}

func TestFlagPresenceIsDistinctFromZeroValue(t *testing.T) {
	c, err := parseArgs(t)
	require.NoError(t, err)
	assert.Nil(t, c.Estimate)
	assert.Nil(t, c.Story)
	assert.Nil(t, c.Search)

	c, err = parseArgs(t, "--estimate", "0", "--story", "", "--search", "")
	require.NoError(t, err)
	require.NotNil(t, c.Estimate)
	assert.Equal(t, 0, *c.Estimate)
	require.NotNil(t, c.Story)
	assert.Equal(t, "", *c.Story)
	require.NotNil(t, c.Search)
}

func TestEnumValuesRejectedAtParseTime(t *testing.T) {
	_, err := parseArgs(t, "--story-type", "epic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid story type")

	_, err = parseArgs(t, "--state", "done")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid state")

	for _, valid := range []string{"feature", "release", "bug", "chore"} {
		_, err := parseArgs(t, "--story-type", valid)
		assert.NoError(t, err, "story type %q should parse", valid)
	}
}

func TestUnknownFlagRejected(t *testing.T) {
	_, err := parseArgs(t, "--no-such-flag")
	assert.Error(t, err)
}

func TestFlagForms(t *testing.T) {
	c, err := parseArgs(t, "--story-id=7", "-p", "Testing")
	require.NoError(t, err)
	require.NotNil(t, c.StoryID)
	assert.Equal(t, 7, *c.StoryID)
	require.NotNil(t, c.Project)
	assert.Equal(t, "Testing", *c.Project)
}

func TestRepeatableLabels(t *testing.T) {
	c, err := parseArgs(t, "--label", "a", "--label", "b,c")
	require.NoError(t, err)
	assert.Equal(t, "a,b,c", NormalizeLabels(c.Label))
}
