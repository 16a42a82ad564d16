package client

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/agent-browser/pkg/config"
	"github.com/entrhq/agent-browser/pkg/flags"
	"github.com/entrhq/agent-browser/pkg/protocol"
)

// fakeDaemon answers one command per connection on the session socket.
func fakeDaemon(t *testing.T, socket string, handle func(cmd protocol.Command) protocol.Response) {
	t.Helper()

	listener, err := net.Listen("unix", socket)
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				scanner := bufio.NewScanner(conn)
				for scanner.Scan() {
					var cmd protocol.Command
					if json.Unmarshal(scanner.Bytes(), &cmd) != nil {
						return
					}
					payload, _ := json.Marshal(handle(cmd))
					payload = append(payload, '\n')
					if _, err := conn.Write(payload); err != nil {
						return
					}
				}
			}(conn)
		}
	}()
}

func TestSend_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{SocketDir: dir}
	opts := &flags.Options{Session: "test"}

	fakeDaemon(t, filepath.Join(dir, "test.sock"), func(cmd protocol.Command) protocol.Response {
		assert.Equal(t, protocol.ActionTitle, cmd.Action)
		return protocol.OK(cmd.ID, map[string]string{"title": "Example"})
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cmd := &protocol.Command{ID: "r42", Action: protocol.ActionTitle}
	resp, err := New(cfg, opts).Send(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "r42", resp.ID)
	assert.JSONEq(t, `{"title":"Example"}`, string(resp.Data))
}

func TestSend_BackendError(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{SocketDir: dir}
	opts := &flags.Options{Session: "test"}

	fakeDaemon(t, filepath.Join(dir, "test.sock"), func(cmd protocol.Command) protocol.Response {
		return protocol.Fail(cmd.ID, assert.AnError)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := New(cfg, opts).Send(ctx, &protocol.Command{ID: "r1", Action: protocol.ActionBack})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, assert.AnError.Error(), resp.Error)
}
