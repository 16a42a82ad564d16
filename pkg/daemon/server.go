// Package daemon implements the per-session browser backend. It
// listens on a unix socket, reads one JSON command per line, executes
// it against a Playwright-driven browser, and writes one JSON response
// per line.
package daemon

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/entrhq/agent-browser/pkg/config"
	"github.com/entrhq/agent-browser/pkg/logging"
	"github.com/entrhq/agent-browser/pkg/protocol"
)

// Server accepts client connections for one session.
type Server struct {
	session  string
	cfg      *config.Config
	log      *logging.Logger
	executor *Executor

	mu       sync.Mutex
	listener net.Listener
	lastUsed time.Time
	done     chan struct{}
	stopOnce sync.Once
}

// NewServer creates a server for the named session. headed launches
// the browser with a visible window.
func NewServer(session string, cfg *config.Config, headed bool, log *logging.Logger) *Server {
	return &Server{
		session:  session,
		cfg:      cfg,
		log:      log,
		executor: NewExecutor(headed, log),
		lastUsed: time.Now(),
		done:     make(chan struct{}),
	}
}

// Run listens on the session socket and serves until the browser is
// closed, the idle timeout elapses, or Stop is called.
func (s *Server) Run() error {
	socket, err := s.cfg.SocketPath(s.session)
	if err != nil {
		return err
	}

	// A stale socket from a crashed daemon would block the listener.
	if _, err := os.Stat(socket); err == nil {
		if conn, dialErr := net.DialTimeout("unix", socket, time.Second); dialErr == nil {
			conn.Close()
			return fmt.Errorf("daemon already running for session %q", s.session)
		}
		os.Remove(socket)
	}

	listener, err := net.Listen("unix", socket)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", socket, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
	defer os.Remove(socket)
	defer listener.Close()

	s.log.Infof("session %q listening on %s", s.session, socket)

	go s.watchIdle()
	go func() {
		<-s.executor.Closed()
		s.Stop()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return nil
			default:
				return fmt.Errorf("accept failed: %w", err)
			}
		}
		go s.serve(conn)
	}
}

// Stop shuts the server down and releases the browser.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.mu.Lock()
		if s.listener != nil {
			s.listener.Close()
		}
		s.mu.Unlock()
		s.executor.Shutdown()
		s.log.Infof("session %q stopped", s.session)
	})
}

func (s *Server) serve(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		s.touch()

		var cmd protocol.Command
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil {
			s.log.Errorf("malformed command: %v", err)
			s.reply(conn, protocol.Fail("", fmt.Errorf("malformed command: %w", err)))
			continue
		}

		s.log.Debugf("dispatch %s (%s)", cmd.Action, cmd.ID)
		resp := s.executor.Execute(&cmd)
		if !resp.Success {
			s.log.Errorf("%s failed: %s", cmd.Action, resp.Error)
		}
		s.reply(conn, resp)
	}
}

func (s *Server) reply(conn net.Conn, resp protocol.Response) {
	payload, err := json.Marshal(resp)
	if err != nil {
		s.log.Errorf("failed to encode response: %v", err)
		return
	}
	payload = append(payload, '\n')
	if _, err := conn.Write(payload); err != nil {
		s.log.Errorf("failed to write response: %v", err)
	}
}

func (s *Server) touch() {
	s.mu.Lock()
	s.lastUsed = time.Now()
	s.mu.Unlock()
}

func (s *Server) watchIdle() {
	idle := s.cfg.Idle()
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			expired := time.Since(s.lastUsed) > idle
			s.mu.Unlock()
			if expired {
				s.log.Infof("session %q idle for %s, shutting down", s.session, idle)
				s.Stop()
				return
			}
		}
	}
}
