package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/agent-browser/pkg/protocol"
)

func TestResponse_JSONMode(t *testing.T) {
	var buf bytes.Buffer
	resp := protocol.OK("r1", map[string]string{"title": "Example"})

	require.NoError(t, New(true, &buf).Response(&resp))

	var decoded protocol.Response
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "r1", decoded.ID)
	assert.True(t, decoded.Success)
}

func TestResponse_HumanSuccess(t *testing.T) {
	var buf bytes.Buffer
	resp := protocol.OK("r1", nil)

	require.NoError(t, New(false, &buf).Response(&resp))
	assert.Contains(t, buf.String(), "ok")
}

func TestResponse_HumanFailure(t *testing.T) {
	var buf bytes.Buffer
	resp := protocol.Fail("r1", assert.AnError)

	require.NoError(t, New(false, &buf).Response(&resp))
	assert.Contains(t, buf.String(), assert.AnError.Error())
}

func TestResponse_KeyValueData(t *testing.T) {
	var buf bytes.Buffer
	resp := protocol.OK("r1", map[string]any{"url": "https://example.com", "count": 3})

	require.NoError(t, New(false, &buf).Response(&resp))
	out := buf.String()
	assert.Contains(t, out, "url:")
	assert.Contains(t, out, "https://example.com")
	assert.Contains(t, out, "count:")
	assert.Contains(t, out, "3")
}

func TestResponse_SnapshotPrintsRaw(t *testing.T) {
	var buf bytes.Buffer
	resp := protocol.OK("r1", map[string]string{"snapshot": "html\n  body\n"})

	require.NoError(t, New(false, &buf).Response(&resp))
	assert.Equal(t, "html\n  body\n", buf.String())
}

func TestResponse_HTMLWithoutTTYIsPlain(t *testing.T) {
	var buf bytes.Buffer
	resp := protocol.OK("r1", map[string]string{"html": "<div>x</div>"})

	require.NoError(t, New(false, &buf).Response(&resp))
	assert.Equal(t, "<div>x</div>\n", buf.String())
}

func TestUsage(t *testing.T) {
	var buf bytes.Buffer
	Usage(&buf, []string{"frobnicate", "#x"})
	assert.Contains(t, buf.String(), "frobnicate")

	buf.Reset()
	Usage(&buf, nil)
	assert.Contains(t, buf.String(), "no command")
}
