// Package main provides the agent-browser command line client.
// It compiles a shell-style command line into a browser automation
// command, delivers it to the per-session daemon (spawning one when
// needed), and renders the daemon's response.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/entrhq/agent-browser/pkg/client"
	"github.com/entrhq/agent-browser/pkg/command"
	"github.com/entrhq/agent-browser/pkg/config"
	"github.com/entrhq/agent-browser/pkg/flags"
	"github.com/entrhq/agent-browser/pkg/output"
)

const version = "0.1.0"

// requestTimeout bounds a single round trip to the daemon. Navigation
// and waits run inside the daemon with their own timeouts, so this only
// has to outlive the slowest single action.
const requestTimeout = 2 * time.Minute

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 || isHelp(args[0]) {
		printUsage(os.Stderr)
		if len(args) == 0 {
			return 1
		}
		return 0
	}
	if args[0] == "version" || args[0] == "--version" {
		fmt.Printf("agent-browser v%s\n", version)
		return 0
	}

	opts := flags.Parse(args)

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		return 1
	}
	// The config file session only applies when neither the flag nor
	// the environment chose one.
	if cfg.Session != "" && !sessionSpecified(args) {
		opts.Session = cfg.Session
	}
	if cfg.Headed {
		opts.Headed = true
	}

	cleaned := flags.Strip(args)
	cmd := command.Compile(cleaned, opts)
	if cmd == nil {
		output.Usage(os.Stderr, cleaned)
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	resp, err := client.New(cfg, opts).Send(ctx, cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if renderErr := output.New(opts.JSON, os.Stdout).Response(resp); renderErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", renderErr)
		return 1
	}
	if !resp.Success {
		return 1
	}
	return 0
}

func isHelp(arg string) bool {
	return arg == "help" || arg == "--help" || arg == "-h"
}

// sessionSpecified reports whether the session was chosen explicitly,
// either on the command line or through the environment.
func sessionSpecified(args []string) bool {
	if os.Getenv(flags.SessionEnvVar) != "" {
		return true
	}
	for _, a := range args {
		if a == "--session" {
			return true
		}
	}
	return false
}

func printUsage(out *os.File) {
	fmt.Fprintf(out, "agent-browser - remote-controlled browser automation\n\n")
	fmt.Fprintf(out, "Usage: agent-browser [options] <command> [args...]\n\n")
	fmt.Fprintf(out, "Options:\n")
	fmt.Fprintf(out, "  --session <name>   Target a named browser session (default: default)\n")
	fmt.Fprintf(out, "  --headed           Launch the browser with a visible window\n")
	fmt.Fprintf(out, "  --json             Print the raw response envelope as JSON\n")
	fmt.Fprintf(out, "  --full, -f         Capture full-page screenshots\n")
	fmt.Fprintf(out, "  --debug            Enable daemon debug logging\n")
	fmt.Fprintf(out, "\nCommands:\n")
	fmt.Fprintf(out, "  open <url>                      Navigate to a URL (aliases: goto, navigate)\n")
	fmt.Fprintf(out, "  back | forward | reload         History navigation\n")
	fmt.Fprintf(out, "  click | dblclick | hover <sel>  Pointer interactions\n")
	fmt.Fprintf(out, "  fill <sel> <text>               Replace an input's value\n")
	fmt.Fprintf(out, "  type <sel> <text>               Type into an input key by key\n")
	fmt.Fprintf(out, "  press <key>                     Send a key chord (alias: key)\n")
	fmt.Fprintf(out, "  select <sel> <value>            Choose a select option\n")
	fmt.Fprintf(out, "  check | uncheck | focus <sel>   Element state\n")
	fmt.Fprintf(out, "  scroll [dir] [px]               Scroll the page\n")
	fmt.Fprintf(out, "  drag <source> <target>          Drag one element onto another\n")
	fmt.Fprintf(out, "  upload <sel> <file>...          Set file input contents\n")
	fmt.Fprintf(out, "  wait <ms|selector>              Sleep or await an element\n")
	fmt.Fprintf(out, "  find <kind> <value> [action]    Locate by role, text, label, ...\n")
	fmt.Fprintf(out, "  get <what> [sel]                Read text, html, value, url, ...\n")
	fmt.Fprintf(out, "  is <state> <sel>                Query visibility and state\n")
	fmt.Fprintf(out, "  screenshot [path]               Capture the page (see --full)\n")
	fmt.Fprintf(out, "  pdf <path>                      Export the page as PDF\n")
	fmt.Fprintf(out, "  snapshot [-i] [-c] [-d n]       Accessibility-style page outline\n")
	fmt.Fprintf(out, "  eval <script>                   Run JavaScript in the page\n")
	fmt.Fprintf(out, "  mouse <move|down|up|wheel>      Low level mouse control\n")
	fmt.Fprintf(out, "  set <viewport|device|geo|...>   Emulation settings\n")
	fmt.Fprintf(out, "  network <route|unroute|requests>  Intercept and inspect traffic\n")
	fmt.Fprintf(out, "  cookies [get|set|clear]         Cookie access\n")
	fmt.Fprintf(out, "  storage <local|session> [op]    Web storage access\n")
	fmt.Fprintf(out, "  tab [new|close|list|<n>]        Tab management\n")
	fmt.Fprintf(out, "  frame <sel> | frame main        Scope commands to an iframe\n")
	fmt.Fprintf(out, "  dialog <accept|dismiss> [text]  Arm the next dialog\n")
	fmt.Fprintf(out, "  console | errors [--clear]      Drain captured page output\n")
	fmt.Fprintf(out, "  trace <start|stop> [path]       Record a trace\n")
	fmt.Fprintf(out, "  state [save|load] [path]        Persist storage state\n")
	fmt.Fprintf(out, "  close                           Shut the session down (aliases: quit, exit)\n")
	fmt.Fprintf(out, "\nEnvironment Variables:\n")
	fmt.Fprintf(out, "  %s   Default session name\n", flags.SessionEnvVar)
	fmt.Fprintf(out, "\nExamples:\n")
	fmt.Fprintf(out, "  agent-browser open example.com\n")
	fmt.Fprintf(out, "  agent-browser find role button click --name Submit\n")
	fmt.Fprintf(out, "  agent-browser --session work --json get text h1\n")
}
