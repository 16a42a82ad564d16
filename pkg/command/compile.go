// Package command compiles a tokenized CLI invocation into a single
// protocol.Command for the browser daemon.
//
// Compilation is pure and synchronous: one token list in, one command
// (or no-match) out. There is exactly one failure outcome — a nil
// command — regardless of cause: unknown command, unknown sub-verb,
// missing required argument, or a required numeric argument that does
// not parse. Malformed optional arguments never fail a recognized
// command; they fall back to their defaults.
package command

import (
	"strconv"
	"strings"

	"github.com/entrhq/agent-browser/pkg/flags"
	"github.com/entrhq/agent-browser/pkg/protocol"
)

// Compile translates args into a command message. args is the token
// list with global options already stripped (flags.Strip); opts
// supplies the cross-cutting switches a few families read, currently
// only the full-page capture flag. A nil result means the invocation
// is not a recognized command.
func Compile(args []string, opts *flags.Options) *protocol.Command {
	if len(args) == 0 {
		return nil
	}

	id := protocol.NewID()
	rest := args[1:]

	switch args[0] {
	// Navigation
	case "open", "goto", "navigate":
		url, ok := arg(rest, 0)
		if !ok {
			return nil
		}
		if !strings.HasPrefix(url, "http") {
			url = "https://" + url
		}
		return &protocol.Command{ID: id, Action: protocol.ActionNavigate, URL: &url}
	case "back":
		return &protocol.Command{ID: id, Action: protocol.ActionBack}
	case "forward":
		return &protocol.Command{ID: id, Action: protocol.ActionForward}
	case "reload":
		return &protocol.Command{ID: id, Action: protocol.ActionReload}

	// Element interaction
	case "click":
		return selectorCommand(id, protocol.ActionClick, rest)
	case "dblclick":
		return selectorCommand(id, protocol.ActionDblClick, rest)
	case "fill":
		sel, ok := arg(rest, 0)
		if !ok {
			return nil
		}
		return &protocol.Command{ID: id, Action: protocol.ActionFill, Selector: &sel, Value: protocol.String(joinFrom(rest, 1))}
	case "type":
		sel, ok := arg(rest, 0)
		if !ok {
			return nil
		}
		return &protocol.Command{ID: id, Action: protocol.ActionType, Selector: &sel, Text: protocol.String(joinFrom(rest, 1))}
	case "hover":
		return selectorCommand(id, protocol.ActionHover, rest)
	case "focus":
		return selectorCommand(id, protocol.ActionFocus, rest)
	case "check":
		return selectorCommand(id, protocol.ActionCheck, rest)
	case "uncheck":
		return selectorCommand(id, protocol.ActionUncheck, rest)
	case "select":
		sel, ok := arg(rest, 0)
		val, ok2 := arg(rest, 1)
		if !ok || !ok2 {
			return nil
		}
		return &protocol.Command{ID: id, Action: protocol.ActionSelect, Selector: &sel, Value: &val}
	case "drag":
		src, ok := arg(rest, 0)
		dst, ok2 := arg(rest, 1)
		if !ok || !ok2 {
			return nil
		}
		return &protocol.Command{ID: id, Action: protocol.ActionDrag, Source: &src, Target: &dst}
	case "upload":
		sel, ok := arg(rest, 0)
		if !ok {
			return nil
		}
		return &protocol.Command{ID: id, Action: protocol.ActionUpload, Selector: &sel, Files: append([]string(nil), rest[1:]...)}

	// Keyboard
	case "press", "key":
		return keyCommand(id, protocol.ActionPress, rest)
	case "keydown":
		return keyCommand(id, protocol.ActionKeyDown, rest)
	case "keyup":
		return keyCommand(id, protocol.ActionKeyUp, rest)

	// Scroll
	case "scroll":
		dir := argOr(rest, 0, "down")
		amount := intOr(rest, 1, 300)
		return &protocol.Command{ID: id, Action: protocol.ActionScroll, Direction: &dir, Amount: &amount}
	case "scrollintoview", "scrollinto":
		return selectorCommand(id, protocol.ActionScrollIntoView, rest)

	// Wait: an integer is a timeout in milliseconds, anything else is
	// a selector. An all-digit selector is therefore unreachable here;
	// that tie-break is deliberate.
	case "wait":
		v, ok := arg(rest, 0)
		if !ok {
			return nil
		}
		if ms, err := strconv.ParseUint(v, 10, 64); err == nil {
			return &protocol.Command{ID: id, Action: protocol.ActionWait, Timeout: &ms}
		}
		return &protocol.Command{ID: id, Action: protocol.ActionWait, Selector: &v}

	// Capture
	case "screenshot":
		return &protocol.Command{ID: id, Action: protocol.ActionScreenshot, Path: strAt(rest, 0), FullPage: protocol.Bool(opts.Full)}
	case "pdf":
		path, ok := arg(rest, 0)
		if !ok {
			return nil
		}
		return &protocol.Command{ID: id, Action: protocol.ActionPDF, Path: &path}
	case "snapshot":
		return compileSnapshot(rest, id)

	// Script evaluation; never fails on arity, zero args is an empty
	// script.
	case "eval":
		return &protocol.Command{ID: id, Action: protocol.ActionEvaluate, Script: protocol.String(strings.Join(rest, " "))}

	// Lifecycle
	case "close", "quit", "exit":
		return &protocol.Command{ID: id, Action: protocol.ActionClose}

	// Page queries
	case "get":
		return compileGet(rest, id)

	// Element state checks
	case "is":
		switch argOr(rest, 0, "") {
		case "visible":
			return selectorCommand(id, protocol.ActionIsVisible, rest[1:])
		case "enabled":
			return selectorCommand(id, protocol.ActionIsEnabled, rest[1:])
		case "checked":
			return selectorCommand(id, protocol.ActionIsChecked, rest[1:])
		}
		return nil

	// Locators
	case "find":
		return compileFind(rest, id)

	// Mouse
	case "mouse":
		return compileMouse(rest, id)

	// Browser settings
	case "set":
		return compileSet(rest, id)

	// Network
	case "network":
		return compileNetwork(rest, id)

	// Storage
	case "storage":
		st, ok := arg(rest, 0)
		if !ok || (st != "local" && st != "session") {
			return nil
		}
		op := argOr(rest, 1, "get")
		return &protocol.Command{
			ID:          id,
			Action:      protocol.ActionStorage,
			StorageType: &st,
			Operation:   &op,
			Key:         strAt(rest, 2),
			Value:       strAt(rest, 3),
		}

	// Cookies
	case "cookies":
		return compileCookies(rest, id)

	// Tabs
	case "tab":
		return compileTab(rest, id)

	// Windows
	case "window":
		if argOr(rest, 0, "") == "new" {
			return &protocol.Command{ID: id, Action: protocol.ActionWindowNew}
		}
		return nil

	// Frames
	case "frame":
		sel, ok := arg(rest, 0)
		if !ok {
			return nil
		}
		if sel == "main" && len(rest) == 1 {
			return &protocol.Command{ID: id, Action: protocol.ActionFrameMain}
		}
		return &protocol.Command{ID: id, Action: protocol.ActionFrame, Selector: &sel}

	// Dialogs
	case "dialog":
		switch argOr(rest, 0, "") {
		case "accept":
			return &protocol.Command{ID: id, Action: protocol.ActionDialog, Response: protocol.String("accept"), PromptText: strAt(rest, 1)}
		case "dismiss":
			return &protocol.Command{ID: id, Action: protocol.ActionDialog, Response: protocol.String("dismiss")}
		}
		return nil

	// Debugging
	case "trace":
		switch argOr(rest, 0, "") {
		case "start":
			return &protocol.Command{ID: id, Action: protocol.ActionTraceStart, Path: strAt(rest, 1)}
		case "stop":
			return &protocol.Command{ID: id, Action: protocol.ActionTraceStop, Path: strAt(rest, 1)}
		}
		return nil
	case "console":
		_, clear := extractFlag(rest, "--clear")
		return &protocol.Command{ID: id, Action: protocol.ActionConsole, Clear: &clear}
	case "errors":
		_, clear := extractFlag(rest, "--clear")
		return &protocol.Command{ID: id, Action: protocol.ActionErrors, Clear: &clear}
	case "highlight":
		return selectorCommand(id, protocol.ActionHighlight, rest)

	// Session state
	case "state":
		switch argOr(rest, 0, "") {
		case "save":
			return pathCommand(id, protocol.ActionStateSave, rest[1:])
		case "load":
			return pathCommand(id, protocol.ActionStateLoad, rest[1:])
		}
		return nil
	}

	return nil
}

// selectorCommand builds a one-selector command, failing when the
// selector is absent.
func selectorCommand(id string, action protocol.Action, args []string) *protocol.Command {
	sel, ok := arg(args, 0)
	if !ok {
		return nil
	}
	return &protocol.Command{ID: id, Action: action, Selector: &sel}
}

func keyCommand(id string, action protocol.Action, args []string) *protocol.Command {
	key, ok := arg(args, 0)
	if !ok {
		return nil
	}
	return &protocol.Command{ID: id, Action: action, Key: &key}
}

func pathCommand(id string, action protocol.Action, args []string) *protocol.Command {
	path, ok := arg(args, 0)
	if !ok {
		return nil
	}
	return &protocol.Command{ID: id, Action: action, Path: &path}
}

func compileGet(rest []string, id string) *protocol.Command {
	switch argOr(rest, 0, "") {
	case "text":
		return selectorCommand(id, protocol.ActionGetText, rest[1:])
	case "html":
		return selectorCommand(id, protocol.ActionInnerHTML, rest[1:])
	case "value":
		return selectorCommand(id, protocol.ActionInputValue, rest[1:])
	case "attr":
		sel, ok := arg(rest, 1)
		attr, ok2 := arg(rest, 2)
		if !ok || !ok2 {
			return nil
		}
		return &protocol.Command{ID: id, Action: protocol.ActionGetAttribute, Selector: &sel, Attribute: &attr}
	case "url":
		return &protocol.Command{ID: id, Action: protocol.ActionURL}
	case "title":
		return &protocol.Command{ID: id, Action: protocol.ActionTitle}
	case "count":
		return selectorCommand(id, protocol.ActionCount, rest[1:])
	case "box":
		return selectorCommand(id, protocol.ActionBoundingBox, rest[1:])
	}
	return nil
}

func compileMouse(rest []string, id string) *protocol.Command {
	switch argOr(rest, 0, "") {
	case "move":
		x, ok := intAt(rest, 1)
		y, ok2 := intAt(rest, 2)
		if !ok || !ok2 {
			return nil
		}
		return &protocol.Command{ID: id, Action: protocol.ActionMouseMove, X: &x, Y: &y}
	case "down":
		button := argOr(rest, 1, "left")
		return &protocol.Command{ID: id, Action: protocol.ActionMouseDown, Button: &button}
	case "up":
		button := argOr(rest, 1, "left")
		return &protocol.Command{ID: id, Action: protocol.ActionMouseUp, Button: &button}
	case "wheel":
		dy := intOr(rest, 1, 100)
		dx := intOr(rest, 2, 0)
		return &protocol.Command{ID: id, Action: protocol.ActionMouseWheel, DeltaX: &dx, DeltaY: &dy}
	}
	return nil
}

func compileNetwork(rest []string, id string) *protocol.Command {
	switch argOr(rest, 0, "") {
	case "route":
		rem, abort := extractFlag(rest, "--abort")
		rem, body := extractFlagValue(rem, "--body")
		url, ok := arg(rem, 1)
		if !ok {
			return nil
		}
		return &protocol.Command{ID: id, Action: protocol.ActionRoute, URL: &url, Abort: &abort, Body: body}
	case "unroute":
		return &protocol.Command{ID: id, Action: protocol.ActionUnroute, URL: strAt(rest, 1)}
	case "requests":
		rem, clear := extractFlag(rest, "--clear")
		_, filter := extractFlagValue(rem, "--filter")
		return &protocol.Command{ID: id, Action: protocol.ActionRequests, Clear: &clear, Filter: filter}
	}
	return nil
}

func compileCookies(rest []string, id string) *protocol.Command {
	switch argOr(rest, 0, "get") {
	case "set":
		name, ok := arg(rest, 1)
		value, ok2 := arg(rest, 2)
		if !ok || !ok2 {
			return nil
		}
		return &protocol.Command{ID: id, Action: protocol.ActionCookies, Operation: protocol.String("set"), Name: &name, Value: &value}
	case "clear":
		return &protocol.Command{ID: id, Action: protocol.ActionCookies, Operation: protocol.String("clear")}
	case "get":
		return &protocol.Command{ID: id, Action: protocol.ActionCookies, Operation: protocol.String("get"), Name: strAt(rest, 1)}
	default:
		// Unknown verbs read like filters someone guessed at; fall
		// back to a plain get.
		return &protocol.Command{ID: id, Action: protocol.ActionCookies, Operation: protocol.String("get")}
	}
}

func compileTab(rest []string, id string) *protocol.Command {
	switch v := argOr(rest, 0, "list"); v {
	case "new":
		return &protocol.Command{ID: id, Action: protocol.ActionTabNew, URL: strAt(rest, 1)}
	case "list":
		return &protocol.Command{ID: id, Action: protocol.ActionTabList}
	case "close":
		return &protocol.Command{ID: id, Action: protocol.ActionTabClose, Index: intPtrAt(rest, 1)}
	default:
		if n, err := strconv.Atoi(v); err == nil {
			return &protocol.Command{ID: id, Action: protocol.ActionTabSwitch, Index: &n}
		}
		return &protocol.Command{ID: id, Action: protocol.ActionTabList}
	}
}

// compileSnapshot scans the whole tail for snapshot flags.
// Unrecognized tokens are skipped; a -d value that is not an integer
// leaves maxDepth unset and the value token is re-examined as an
// ordinary token.
func compileSnapshot(rest []string, id string) *protocol.Command {
	cmd := &protocol.Command{ID: id, Action: protocol.ActionSnapshot}
	for i := 0; i < len(rest); i++ {
		switch rest[i] {
		case "-i", "--interactive":
			cmd.Interactive = protocol.Bool(true)
		case "-c", "--compact":
			cmd.Compact = protocol.Bool(true)
		case "-d", "--depth":
			if n, ok := intAt(rest, i+1); ok {
				cmd.MaxDepth = &n
				i++
			}
		case "-s", "--selector":
			if s, ok := arg(rest, i+1); ok {
				cmd.Selector = &s
				i++
			}
		}
	}
	return cmd
}
