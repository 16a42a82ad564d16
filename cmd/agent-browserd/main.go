// Package main provides the agent-browser session daemon. One daemon
// process owns one named browser session: it listens on a unix socket,
// executes commands from clients, and exits after a period of
// inactivity or when told to close.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/entrhq/agent-browser/pkg/config"
	"github.com/entrhq/agent-browser/pkg/daemon"
	"github.com/entrhq/agent-browser/pkg/logging"
)

func main() {
	var (
		session    = flag.String("session", "default", "Session name this daemon serves")
		headed     = flag.Bool("headed", false, "Launch the browser with a visible window")
		debug      = flag.Bool("debug", false, "Enable debug logging")
		configPath = flag.String("config", "", "Path to the config file (default: ~/.agent-browser/config.yaml)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "agent-browserd - browser session daemon\n\n")
		fmt.Fprintf(os.Stderr, "Usage: agent-browserd [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nClients normally spawn this automatically; running it by hand\n")
		fmt.Fprintf(os.Stderr, "is only useful for debugging a session in the foreground.\n")
	}
	flag.Parse()

	log, err := logging.New("daemon")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: file logging unavailable: %v\n", err)
	}
	defer log.Close()
	log.SetDebug(*debug)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Errorf("config: %v", err)
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	srv := daemon.NewServer(*session, cfg, *headed, log)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Infof("received %v, shutting down", sig)
		srv.Stop()
	}()

	log.Infof("session %q starting, run id %s", *session, log.RunID())
	if err := srv.Run(); err != nil {
		log.Errorf("server: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
