// Package flags extracts the global options shared by every
// agent-browser invocation. Global options are command-independent:
// they configure output rendering and session routing, never the
// compiled command itself (except the full-page capture switch, which
// the screenshot family reads).
package flags

import "os"

// SessionEnvVar names the environment variable supplying the default
// session id when no --session flag is given.
const SessionEnvVar = "AGENT_BROWSER_SESSION"

// Options holds the recognized global options for one invocation.
// Constructed once from the raw argument list and read-only after.
type Options struct {
	// JSON switches output to raw response JSON.
	JSON bool

	// Full requests full-page capture for screenshots.
	Full bool

	// Headed launches the browser with a visible window.
	Headed bool

	// Debug raises daemon log verbosity.
	Debug bool

	// Session names the daemon session to talk to.
	Session string
}

// Parse scans args left to right and returns the populated options.
// Unrecognized tokens are ignored; they are the command compiler's
// input, not an error here. A trailing --session with no value is
// silently dropped.
func Parse(args []string) *Options {
	opts := &Options{Session: defaultSession()}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--json":
			opts.JSON = true
		case "--full", "-f":
			opts.Full = true
		case "--headed":
			opts.Headed = true
		case "--debug":
			opts.Debug = true
		case "--session":
			if i+1 < len(args) {
				opts.Session = args[i+1]
				i++
			}
		}
	}
	return opts
}

// Strip returns args with every recognized global option token (and
// the value following --session) removed, preserving the relative
// order of everything else. Command-specific flags such as --exact or
// --abort are not global options and pass through untouched, so they
// never collide with positional arguments in the compiler's
// sub-grammars.
func Strip(args []string) []string {
	result := make([]string, 0, len(args))
	skipNext := false

	for _, arg := range args {
		if skipNext {
			skipNext = false
			continue
		}
		switch arg {
		case "--session":
			skipNext = true
		case "--json", "--full", "-f", "--headed", "--debug":
			// dropped
		default:
			result = append(result, arg)
		}
	}
	return result
}

func defaultSession() string {
	if s := os.Getenv(SessionEnvVar); s != "" {
		return s
	}
	return "default"
}
