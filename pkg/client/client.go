// Package client delivers compiled commands to the session daemon,
// spawning it on demand. One invocation sends exactly one command and
// reads exactly one response.
package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/entrhq/agent-browser/pkg/config"
	"github.com/entrhq/agent-browser/pkg/flags"
	"github.com/entrhq/agent-browser/pkg/protocol"
)

// DaemonBinary is the daemon executable the client spawns when no
// daemon is listening for the session.
const DaemonBinary = "agent-browserd"

const (
	dialTimeout  = 2 * time.Second
	spawnWait    = 10 * time.Second
	spawnBackoff = 100 * time.Millisecond
)

// Client talks to one session's daemon.
type Client struct {
	cfg  *config.Config
	opts *flags.Options
}

// New creates a client for the session named in opts.
func New(cfg *config.Config, opts *flags.Options) *Client {
	return &Client{cfg: cfg, opts: opts}
}

// Send delivers cmd to the session daemon and returns its response,
// starting the daemon first when necessary. The context bounds the
// whole exchange including any daemon spawn.
func (c *Client) Send(ctx context.Context, cmd *protocol.Command) (*protocol.Response, error) {
	socket, err := c.cfg.SocketPath(c.opts.Session)
	if err != nil {
		return nil, err
	}

	conn, err := c.dial(ctx, socket)
	if err != nil {
		if spawnErr := c.spawnDaemon(); spawnErr != nil {
			return nil, spawnErr
		}
		conn, err = c.awaitDaemon(ctx, socket)
		if err != nil {
			return nil, err
		}
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("failed to set connection deadline: %w", err)
		}
	}

	payload, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to encode command: %w", err)
	}
	payload = append(payload, '\n')
	if _, err := conn.Write(payload); err != nil {
		return nil, fmt.Errorf("failed to send command: %w", err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp protocol.Response
	if err := json.Unmarshal(line, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

func (c *Client) dial(ctx context.Context, socket string) (net.Conn, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	return dialer.DialContext(ctx, "unix", socket)
}

// spawnDaemon starts agent-browserd for the session, preferring a
// binary next to this executable over one on PATH.
func (c *Client) spawnDaemon() error {
	path, err := daemonPath()
	if err != nil {
		return err
	}

	args := []string{"-session", c.opts.Session}
	if c.opts.Headed || c.cfg.Headed {
		args = append(args, "-headed")
	}
	if c.opts.Debug {
		args = append(args, "-debug")
	}

	cmd := exec.Command(path, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", DaemonBinary, err)
	}
	// The daemon outlives this invocation; don't wait on it, just
	// release the process handle.
	return cmd.Process.Release()
}

// awaitDaemon retries the socket until the freshly spawned daemon is
// listening or the wait budget runs out.
func (c *Client) awaitDaemon(ctx context.Context, socket string) (net.Conn, error) {
	deadline := time.Now().Add(spawnWait)
	for {
		conn, err := c.dial(ctx, socket)
		if err == nil {
			return conn, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("daemon did not start for session %q: %w", c.opts.Session, err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(spawnBackoff):
		}
	}
}

func daemonPath() (string, error) {
	if self, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(self), DaemonBinary)
		if _, err := os.Stat(sibling); err == nil {
			return sibling, nil
		}
	}
	path, err := exec.LookPath(DaemonBinary)
	if err != nil {
		return "", fmt.Errorf("%s not found next to the client or on PATH: %w", DaemonBinary, err)
	}
	return path, nil
}
