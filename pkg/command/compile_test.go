package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/agent-browser/pkg/flags"
	"github.com/entrhq/agent-browser/pkg/protocol"
)

func compile(args ...string) *protocol.Command {
	return Compile(args, &flags.Options{Session: "default"})
}

func TestCompile_Empty(t *testing.T) {
	assert.Nil(t, compile())
	assert.Nil(t, compile("bogus"))
	assert.Nil(t, compile("OPEN", "example.com"), "dispatch is case-sensitive")
}

func TestCompile_Navigate(t *testing.T) {
	tests := []struct {
		name string
		args []string
		url  string
	}{
		{"bare host gets https prefix", []string{"open", "example.com"}, "https://example.com"},
		{"http url unchanged", []string{"goto", "http://x"}, "http://x"},
		{"https url unchanged", []string{"navigate", "https://a.dev/path"}, "https://a.dev/path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := compile(tt.args...)
			require.NotNil(t, cmd)
			assert.Equal(t, protocol.ActionNavigate, cmd.Action)
			require.NotNil(t, cmd.URL)
			assert.Equal(t, tt.url, *cmd.URL)
			assert.NotEmpty(t, cmd.ID)
		})
	}

	assert.Nil(t, compile("open"), "url is required")
}

func TestCompile_SynonymsAndBareActions(t *testing.T) {
	tests := []struct {
		args   []string
		action protocol.Action
	}{
		{[]string{"back"}, protocol.ActionBack},
		{[]string{"forward"}, protocol.ActionForward},
		{[]string{"reload"}, protocol.ActionReload},
		{[]string{"close"}, protocol.ActionClose},
		{[]string{"quit"}, protocol.ActionClose},
		{[]string{"exit"}, protocol.ActionClose},
		{[]string{"press", "Enter"}, protocol.ActionPress},
		{[]string{"key", "Enter"}, protocol.ActionPress},
	}
	for _, tt := range tests {
		cmd := compile(tt.args...)
		require.NotNil(t, cmd, "args: %v", tt.args)
		assert.Equal(t, tt.action, cmd.Action)
	}
}

func TestCompile_SelectorFamilies(t *testing.T) {
	families := map[string]protocol.Action{
		"click":          protocol.ActionClick,
		"dblclick":       protocol.ActionDblClick,
		"hover":          protocol.ActionHover,
		"focus":          protocol.ActionFocus,
		"check":          protocol.ActionCheck,
		"uncheck":        protocol.ActionUncheck,
		"scrollintoview": protocol.ActionScrollIntoView,
		"highlight":      protocol.ActionHighlight,
	}
	for name, action := range families {
		t.Run(name, func(t *testing.T) {
			cmd := compile(name, "#submit")
			require.NotNil(t, cmd)
			assert.Equal(t, action, cmd.Action)
			require.NotNil(t, cmd.Selector)
			assert.Equal(t, "#submit", *cmd.Selector)

			assert.Nil(t, compile(name), "selector is required")
		})
	}
}

func TestCompile_FillJoinsValue(t *testing.T) {
	cmd := compile("fill", "#email", "john", "doe@example.com")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionFill, cmd.Action)
	assert.Equal(t, "#email", *cmd.Selector)
	require.NotNil(t, cmd.Value)
	assert.Equal(t, "john doe@example.com", *cmd.Value)

	// A fill with no value tokens keeps an explicitly empty value.
	cmd = compile("fill", "#email")
	require.NotNil(t, cmd)
	assert.Equal(t, "", *cmd.Value)

	assert.Nil(t, compile("fill"))
}

func TestCompile_TypeJoinsText(t *testing.T) {
	cmd := compile("type", "input", "hello", "world")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionType, cmd.Action)
	require.NotNil(t, cmd.Text)
	assert.Equal(t, "hello world", *cmd.Text)
}

func TestCompile_TwoArgFamilies(t *testing.T) {
	cmd := compile("select", "#country", "NZ")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionSelect, cmd.Action)
	assert.Equal(t, "NZ", *cmd.Value)
	assert.Nil(t, compile("select", "#country"), "value is required")

	cmd = compile("drag", ".card", ".column")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionDrag, cmd.Action)
	assert.Equal(t, ".card", *cmd.Source)
	assert.Equal(t, ".column", *cmd.Target)
	assert.Nil(t, compile("drag", ".card"))
}

func TestCompile_Upload(t *testing.T) {
	cmd := compile("upload", "input[type=file]", "a.png", "b.png")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionUpload, cmd.Action)
	assert.Equal(t, []string{"a.png", "b.png"}, cmd.Files)

	cmd = compile("upload", "input[type=file]")
	require.NotNil(t, cmd)
	assert.Empty(t, cmd.Files)

	assert.Nil(t, compile("upload"))
}

func TestCompile_Scroll(t *testing.T) {
	cmd := compile("scroll")
	require.NotNil(t, cmd)
	assert.Equal(t, "down", *cmd.Direction)
	assert.Equal(t, 300, *cmd.Amount)

	cmd = compile("scroll", "up", "50")
	require.NotNil(t, cmd)
	assert.Equal(t, "up", *cmd.Direction)
	assert.Equal(t, 50, *cmd.Amount)

	// A malformed amount degrades to the default, never to no-match.
	cmd = compile("scroll", "up", "abc")
	require.NotNil(t, cmd)
	assert.Equal(t, 300, *cmd.Amount)
}

func TestCompile_Wait(t *testing.T) {
	cmd := compile("wait", "500")
	require.NotNil(t, cmd)
	require.NotNil(t, cmd.Timeout)
	assert.Equal(t, uint64(500), *cmd.Timeout)
	assert.Nil(t, cmd.Selector)

	cmd = compile("wait", ".loaded")
	require.NotNil(t, cmd)
	require.NotNil(t, cmd.Selector)
	assert.Equal(t, ".loaded", *cmd.Selector)
	assert.Nil(t, cmd.Timeout)

	// A negative number is not a valid timeout, so it reads as a
	// selector.
	cmd = compile("wait", "-5")
	require.NotNil(t, cmd)
	assert.Equal(t, "-5", *cmd.Selector)

	assert.Nil(t, compile("wait"))
}

func TestCompile_Screenshot(t *testing.T) {
	cmd := Compile([]string{"screenshot"}, &flags.Options{})
	require.NotNil(t, cmd)
	assert.Nil(t, cmd.Path)
	require.NotNil(t, cmd.FullPage)
	assert.False(t, *cmd.FullPage)

	cmd = Compile([]string{"screenshot", "out.png"}, &flags.Options{Full: true})
	require.NotNil(t, cmd)
	assert.Equal(t, "out.png", *cmd.Path)
	assert.True(t, *cmd.FullPage)
}

func TestCompile_PDF(t *testing.T) {
	cmd := compile("pdf", "page.pdf")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionPDF, cmd.Action)
	assert.Equal(t, "page.pdf", *cmd.Path)
	assert.Nil(t, compile("pdf"))
}

func TestCompile_Snapshot(t *testing.T) {
	cmd := compile("snapshot")
	require.NotNil(t, cmd)
	assert.Nil(t, cmd.Interactive)
	assert.Nil(t, cmd.Compact)
	assert.Nil(t, cmd.MaxDepth)
	assert.Nil(t, cmd.Selector)

	cmd = compile("snapshot", "-d", "3", "-s", "div.main", "-i")
	require.NotNil(t, cmd)
	assert.Equal(t, 3, *cmd.MaxDepth)
	assert.Equal(t, "div.main", *cmd.Selector)
	assert.True(t, *cmd.Interactive)
	assert.Nil(t, cmd.Compact)

	// Long forms and unrecognized tokens.
	cmd = compile("snapshot", "--compact", "junk", "--depth", "7")
	require.NotNil(t, cmd)
	assert.True(t, *cmd.Compact)
	assert.Equal(t, 7, *cmd.MaxDepth)

	// A malformed depth value leaves maxDepth unset.
	cmd = compile("snapshot", "-d", "deep")
	require.NotNil(t, cmd)
	assert.Nil(t, cmd.MaxDepth)
}

func TestCompile_Eval(t *testing.T) {
	cmd := compile("eval", "document.title", "+", "'!'")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionEvaluate, cmd.Action)
	assert.Equal(t, "document.title + '!'", *cmd.Script)

	// eval never fails on arity; no args is an empty script.
	cmd = compile("eval")
	require.NotNil(t, cmd)
	assert.Equal(t, "", *cmd.Script)
}

func TestCompile_Get(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		action protocol.Action
	}{
		{"text", []string{"get", "text", "h1"}, protocol.ActionGetText},
		{"html", []string{"get", "html", "main"}, protocol.ActionInnerHTML},
		{"value", []string{"get", "value", "input"}, protocol.ActionInputValue},
		{"count", []string{"get", "count", "li"}, protocol.ActionCount},
		{"box", []string{"get", "box", "#hero"}, protocol.ActionBoundingBox},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := compile(tt.args...)
			require.NotNil(t, cmd)
			assert.Equal(t, tt.action, cmd.Action)
			assert.Equal(t, tt.args[2], *cmd.Selector)

			assert.Nil(t, compile(tt.args[:2]...), "selector is required")
		})
	}

	cmd := compile("get", "attr", "a", "href")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionGetAttribute, cmd.Action)
	assert.Equal(t, "a", *cmd.Selector)
	assert.Equal(t, "href", *cmd.Attribute)
	assert.Nil(t, compile("get", "attr", "a"))

	assert.Equal(t, protocol.ActionURL, compile("get", "url").Action)
	assert.Equal(t, protocol.ActionTitle, compile("get", "title").Action)

	assert.Nil(t, compile("get"))
	assert.Nil(t, compile("get", "bogus"))
}

func TestCompile_Is(t *testing.T) {
	tests := []struct {
		verb   string
		action protocol.Action
	}{
		{"visible", protocol.ActionIsVisible},
		{"enabled", protocol.ActionIsEnabled},
		{"checked", protocol.ActionIsChecked},
	}
	for _, tt := range tests {
		cmd := compile("is", tt.verb, "#box")
		require.NotNil(t, cmd)
		assert.Equal(t, tt.action, cmd.Action)
		assert.Equal(t, "#box", *cmd.Selector)

		assert.Nil(t, compile("is", tt.verb))
	}
	assert.Nil(t, compile("is"))
	assert.Nil(t, compile("is", "hidden", "#box"))
}

func TestCompile_Mouse(t *testing.T) {
	cmd := compile("mouse", "move", "10", "20")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionMouseMove, cmd.Action)
	assert.Equal(t, 10, *cmd.X)
	assert.Equal(t, 20, *cmd.Y)

	// Coordinates are required integers.
	assert.Nil(t, compile("mouse", "move", "10"))
	assert.Nil(t, compile("mouse", "move", "10", "twenty"))

	// Origin is a valid coordinate.
	cmd = compile("mouse", "move", "0", "0")
	require.NotNil(t, cmd)
	assert.Equal(t, 0, *cmd.X)

	cmd = compile("mouse", "down")
	require.NotNil(t, cmd)
	assert.Equal(t, "left", *cmd.Button)

	cmd = compile("mouse", "up", "right")
	require.NotNil(t, cmd)
	assert.Equal(t, "right", *cmd.Button)

	cmd = compile("mouse", "wheel")
	require.NotNil(t, cmd)
	assert.Equal(t, 100, *cmd.DeltaY)
	assert.Equal(t, 0, *cmd.DeltaX)

	cmd = compile("mouse", "wheel", "250", "30")
	require.NotNil(t, cmd)
	assert.Equal(t, 250, *cmd.DeltaY)
	assert.Equal(t, 30, *cmd.DeltaX)

	assert.Nil(t, compile("mouse"))
	assert.Nil(t, compile("mouse", "drag"))
}

func TestCompile_Network(t *testing.T) {
	cmd := compile("network", "route", "https://api.test", "--abort")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionRoute, cmd.Action)
	assert.Equal(t, "https://api.test", *cmd.URL)
	assert.True(t, *cmd.Abort)
	assert.Nil(t, cmd.Body)

	cmd = compile("network", "route", "**/api/*", "--body", `{"ok":true}`)
	require.NotNil(t, cmd)
	assert.False(t, *cmd.Abort)
	require.NotNil(t, cmd.Body)
	assert.Equal(t, `{"ok":true}`, *cmd.Body)

	assert.Nil(t, compile("network", "route"))
	assert.Nil(t, compile("network", "route", "--abort"), "flag tokens are not the url")

	cmd = compile("network", "unroute")
	require.NotNil(t, cmd)
	assert.Nil(t, cmd.URL)

	cmd = compile("network", "unroute", "**/api/*")
	require.NotNil(t, cmd)
	assert.Equal(t, "**/api/*", *cmd.URL)

	cmd = compile("network", "requests", "--clear", "--filter", "api")
	require.NotNil(t, cmd)
	assert.True(t, *cmd.Clear)
	assert.Equal(t, "api", *cmd.Filter)

	assert.Nil(t, compile("network"))
	assert.Nil(t, compile("network", "throttle"))
}

func TestCompile_Storage(t *testing.T) {
	cmd := compile("storage", "local")
	require.NotNil(t, cmd)
	assert.Equal(t, "local", *cmd.StorageType)
	assert.Equal(t, "get", *cmd.Operation)
	assert.Nil(t, cmd.Key)
	assert.Nil(t, cmd.Value)

	cmd = compile("storage", "session", "set", "token", "abc123")
	require.NotNil(t, cmd)
	assert.Equal(t, "session", *cmd.StorageType)
	assert.Equal(t, "set", *cmd.Operation)
	assert.Equal(t, "token", *cmd.Key)
	assert.Equal(t, "abc123", *cmd.Value)

	assert.Nil(t, compile("storage"))
	assert.Nil(t, compile("storage", "indexeddb"))
}

func TestCompile_Cookies(t *testing.T) {
	cmd := compile("cookies")
	require.NotNil(t, cmd)
	assert.Equal(t, "get", *cmd.Operation)
	assert.Nil(t, cmd.Name)

	cmd = compile("cookies", "get", "sid")
	require.NotNil(t, cmd)
	assert.Equal(t, "sid", *cmd.Name)

	cmd = compile("cookies", "set", "sid", "xyz")
	require.NotNil(t, cmd)
	assert.Equal(t, "set", *cmd.Operation)
	assert.Equal(t, "sid", *cmd.Name)
	assert.Equal(t, "xyz", *cmd.Value)
	assert.Nil(t, compile("cookies", "set", "sid"), "value is required")

	cmd = compile("cookies", "clear")
	require.NotNil(t, cmd)
	assert.Equal(t, "clear", *cmd.Operation)

	// Unknown verbs fall back to a plain get.
	cmd = compile("cookies", "dump")
	require.NotNil(t, cmd)
	assert.Equal(t, "get", *cmd.Operation)
	assert.Nil(t, cmd.Name)
}

func TestCompile_Tab(t *testing.T) {
	assert.Equal(t, protocol.ActionTabList, compile("tab").Action)
	assert.Equal(t, protocol.ActionTabList, compile("tab", "list").Action)
	assert.Equal(t, protocol.ActionTabList, compile("tab", "sideways").Action)

	cmd := compile("tab", "new")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionTabNew, cmd.Action)
	assert.Nil(t, cmd.URL)

	cmd = compile("tab", "new", "https://example.com")
	assert.Equal(t, "https://example.com", *cmd.URL)

	cmd = compile("tab", "close")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionTabClose, cmd.Action)
	assert.Nil(t, cmd.Index)

	cmd = compile("tab", "close", "2")
	assert.Equal(t, 2, *cmd.Index)

	cmd = compile("tab", "3")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionTabSwitch, cmd.Action)
	assert.Equal(t, 3, *cmd.Index)
}

func TestCompile_WindowFrameDialog(t *testing.T) {
	assert.Equal(t, protocol.ActionWindowNew, compile("window", "new").Action)
	assert.Nil(t, compile("window"))
	assert.Nil(t, compile("window", "maximize"))

	assert.Equal(t, protocol.ActionFrameMain, compile("frame", "main").Action)
	cmd := compile("frame", "iframe#checkout")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionFrame, cmd.Action)
	assert.Equal(t, "iframe#checkout", *cmd.Selector)
	assert.Nil(t, compile("frame"))

	cmd = compile("dialog", "accept", "yes please")
	require.NotNil(t, cmd)
	assert.Equal(t, "accept", *cmd.Response)
	assert.Equal(t, "yes please", *cmd.PromptText)

	cmd = compile("dialog", "accept")
	require.NotNil(t, cmd)
	assert.Nil(t, cmd.PromptText)

	cmd = compile("dialog", "dismiss")
	require.NotNil(t, cmd)
	assert.Equal(t, "dismiss", *cmd.Response)

	assert.Nil(t, compile("dialog"))
	assert.Nil(t, compile("dialog", "ignore"))
}

func TestCompile_TraceConsoleErrors(t *testing.T) {
	cmd := compile("trace", "start")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionTraceStart, cmd.Action)
	assert.Nil(t, cmd.Path)

	cmd = compile("trace", "stop", "trace.zip")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionTraceStop, cmd.Action)
	assert.Equal(t, "trace.zip", *cmd.Path)

	assert.Nil(t, compile("trace"))

	cmd = compile("console")
	require.NotNil(t, cmd)
	assert.False(t, *cmd.Clear)

	cmd = compile("errors", "--clear")
	require.NotNil(t, cmd)
	assert.True(t, *cmd.Clear)
}

func TestCompile_State(t *testing.T) {
	cmd := compile("state", "save", "auth.json")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionStateSave, cmd.Action)
	assert.Equal(t, "auth.json", *cmd.Path)

	cmd = compile("state", "load", "auth.json")
	require.NotNil(t, cmd)
	assert.Equal(t, protocol.ActionStateLoad, cmd.Action)

	assert.Nil(t, compile("state", "save"), "path is required")
	assert.Nil(t, compile("state"))
	assert.Nil(t, compile("state", "export", "x"))
}

func TestCompile_IdempotentExceptID(t *testing.T) {
	a := compile("fill", "#q", "hello", "world")
	b := compile("fill", "#q", "hello", "world")
	require.NotNil(t, a)
	require.NotNil(t, b)

	a.ID, b.ID = "", ""
	assert.Equal(t, a, b)
}

// Stripping global options must not change compilation, wherever the
// option tokens appeared.
func TestCompile_StripIsOrderIndependent(t *testing.T) {
	variants := [][]string{
		{"--json", "fill", "#q", "hello", "--session", "work"},
		{"fill", "--json", "#q", "--session", "work", "hello"},
		{"fill", "#q", "hello", "--json", "--session", "work"},
	}

	want := compile("fill", "#q", "hello")
	require.NotNil(t, want)

	for _, v := range variants {
		got := compile(flags.Strip(v)...)
		require.NotNil(t, got, "variant: %v", v)
		got.ID = want.ID
		assert.Equal(t, want, got, "variant: %v", v)
	}
}
