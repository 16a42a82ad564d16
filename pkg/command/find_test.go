package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/agent-browser/pkg/protocol"
)

func TestFind_RequiresKindAndValue(t *testing.T) {
	assert.Nil(t, compile("find"))
	assert.Nil(t, compile("find", "role"))
	assert.Nil(t, compile("find", "xpath", "//div"))
}

func TestFind_RoleDefaults(t *testing.T) {
	cmd := compile("find", "role", "button")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionGetByRole, cmd.Action)
	assert.Equal(t, "button", *cmd.Role)
	assert.Equal(t, "click", *cmd.Subaction)
	assert.Nil(t, cmd.Value)
	assert.Nil(t, cmd.Name)
	require.NotNil(t, cmd.Exact)
	assert.False(t, *cmd.Exact)
}

func TestFind_RoleWithNameAndExact(t *testing.T) {
	cmd := compile("find", "role", "button", "--name", "Submit", "--exact")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionGetByRole, cmd.Action)
	assert.Equal(t, "button", *cmd.Role)
	assert.Equal(t, "click", *cmd.Subaction, "flags do not occupy the subaction position")
	require.NotNil(t, cmd.Name)
	assert.Equal(t, "Submit", *cmd.Name)
	assert.True(t, *cmd.Exact)
}

func TestFind_RoleFillValue(t *testing.T) {
	cmd := compile("find", "role", "textbox", "fill", "some", "long", "text")
	require.NotNil(t, cmd)
	assert.Equal(t, "fill", *cmd.Subaction)
	require.NotNil(t, cmd.Value)
	assert.Equal(t, "some long text", *cmd.Value)
}

func TestFind_TextLikeKinds(t *testing.T) {
	tests := []struct {
		kind   string
		action protocol.Action
	}{
		{"text", protocol.ActionGetByText},
		{"alt", protocol.ActionGetByAltText},
		{"title", protocol.ActionGetByTitle},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			cmd := compile("find", tt.kind, "Welcome", "--exact")
			require.NotNil(t, cmd)
			assert.Equal(t, tt.action, cmd.Action)
			assert.Equal(t, "Welcome", *cmd.Text)
			assert.True(t, *cmd.Exact)
			assert.Nil(t, cmd.Value)
		})
	}
}

func TestFind_LabelAndPlaceholder(t *testing.T) {
	cmd := compile("find", "label", "Email", "fill", "a@b.c")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionGetByLabel, cmd.Action)
	assert.Equal(t, "Email", *cmd.Label)
	assert.Equal(t, "fill", *cmd.Subaction)
	assert.Equal(t, "a@b.c", *cmd.Value)

	cmd = compile("find", "placeholder", "Search...", "click")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionGetByPlaceholder, cmd.Action)
	assert.Equal(t, "Search...", *cmd.Placeholder)
	assert.Nil(t, cmd.Value)
}

func TestFind_TestID(t *testing.T) {
	cmd := compile("find", "testid", "login-btn")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionGetByTestID, cmd.Action)
	assert.Equal(t, "login-btn", *cmd.TestID)
	assert.Equal(t, "click", *cmd.Subaction)
	assert.Nil(t, cmd.Exact, "testid locators carry no exact flag")
}

func TestFind_FirstLastNth(t *testing.T) {
	cmd := compile("find", "first", ".item")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionNth, cmd.Action)
	assert.Equal(t, ".item", *cmd.Selector)
	assert.Equal(t, 0, *cmd.Index)

	cmd = compile("find", "last", ".item", "hover")
	require.NotNil(t, cmd)
	assert.Equal(t, -1, *cmd.Index)
	assert.Equal(t, "hover", *cmd.Subaction)

	// nth carries an explicit index, shifting subaction and fill by
	// one position.
	cmd = compile("find", "nth", "2", ".item", "fill", "row", "text")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionNth, cmd.Action)
	assert.Equal(t, 2, *cmd.Index)
	assert.Equal(t, ".item", *cmd.Selector)
	assert.Equal(t, "fill", *cmd.Subaction)
	assert.Equal(t, "row text", *cmd.Value)

	assert.Nil(t, compile("find", "nth", "two", ".item"), "index must parse")
	assert.Nil(t, compile("find", "nth", "2"), "selector is required")
}
