// Package protocol defines the wire format shared by the agent-browser
// client and daemon: the command message compiled from a CLI invocation
// and the response envelope the daemon sends back.
package protocol

// Action identifies the operation a command asks the daemon to perform.
// The set is closed; the compiler only ever emits one of these tags.
type Action string

const (
	// Navigation
	ActionNavigate Action = "navigate"
	ActionBack     Action = "back"
	ActionForward  Action = "forward"
	ActionReload   Action = "reload"

	// Element interaction
	ActionClick          Action = "click"
	ActionDblClick       Action = "dblclick"
	ActionFill           Action = "fill"
	ActionType           Action = "type"
	ActionHover          Action = "hover"
	ActionFocus          Action = "focus"
	ActionCheck          Action = "check"
	ActionUncheck        Action = "uncheck"
	ActionSelect         Action = "select"
	ActionDrag           Action = "drag"
	ActionUpload         Action = "upload"
	ActionScrollIntoView Action = "scrollintoview"
	ActionHighlight      Action = "highlight"

	// Keyboard and mouse
	ActionPress      Action = "press"
	ActionKeyDown    Action = "keydown"
	ActionKeyUp      Action = "keyup"
	ActionScroll     Action = "scroll"
	ActionMouseMove  Action = "mousemove"
	ActionMouseDown  Action = "mousedown"
	ActionMouseUp    Action = "mouseup"
	ActionMouseWheel Action = "mousewheel"

	// Synchronization
	ActionWait Action = "wait"

	// Capture
	ActionScreenshot Action = "screenshot"
	ActionPDF        Action = "pdf"
	ActionSnapshot   Action = "snapshot"

	// Script evaluation
	ActionEvaluate Action = "evaluate"

	// Page queries
	ActionGetText      Action = "gettext"
	ActionInnerHTML    Action = "innerhtml"
	ActionInputValue   Action = "inputvalue"
	ActionGetAttribute Action = "getattribute"
	ActionURL          Action = "url"
	ActionTitle        Action = "title"
	ActionCount        Action = "count"
	ActionBoundingBox  Action = "boundingbox"

	// Element state checks
	ActionIsVisible Action = "isvisible"
	ActionIsEnabled Action = "isenabled"
	ActionIsChecked Action = "ischecked"

	// Locators
	ActionGetByRole        Action = "getbyrole"
	ActionGetByText        Action = "getbytext"
	ActionGetByLabel       Action = "getbylabel"
	ActionGetByPlaceholder Action = "getbyplaceholder"
	ActionGetByAltText     Action = "getbyalttext"
	ActionGetByTitle       Action = "getbytitle"
	ActionGetByTestID      Action = "getbytestid"
	ActionNth              Action = "nth"

	// Browser settings
	ActionViewport    Action = "viewport"
	ActionDevice      Action = "device"
	ActionGeolocation Action = "geolocation"
	ActionOffline     Action = "offline"
	ActionHeaders     Action = "headers"
	ActionCredentials Action = "credentials"
	ActionMedia       Action = "media"

	// Network
	ActionRoute    Action = "route"
	ActionUnroute  Action = "unroute"
	ActionRequests Action = "requests"

	// Storage and cookies
	ActionStorage Action = "storage"
	ActionCookies Action = "cookies"

	// Tabs, windows, frames
	ActionTabNew    Action = "tab_new"
	ActionTabList   Action = "tab_list"
	ActionTabClose  Action = "tab_close"
	ActionTabSwitch Action = "tab_switch"
	ActionWindowNew Action = "window_new"
	ActionFrameMain Action = "frame_main"
	ActionFrame     Action = "frame"

	// Dialogs
	ActionDialog Action = "dialog"

	// Debugging
	ActionTraceStart Action = "trace_start"
	ActionTraceStop  Action = "trace_stop"
	ActionConsole    Action = "console"
	ActionErrors     Action = "errors"

	// Session state
	ActionStateSave Action = "state_save"
	ActionStateLoad Action = "state_load"

	// Lifecycle
	ActionClose Action = "close"
)

// Command is the single message compiled from one CLI invocation.
// ID and Action are always present; every other field belongs to a
// subset of actions and is omitted from the wire when unset, so the
// daemon can distinguish "not specified" from "explicitly empty".
type Command struct {
	ID     string `json:"id"`
	Action Action `json:"action"`

	URL       *string  `json:"url,omitempty"`
	Selector  *string  `json:"selector,omitempty"`
	Value     *string  `json:"value,omitempty"`
	Text      *string  `json:"text,omitempty"`
	Source    *string  `json:"source,omitempty"`
	Target    *string  `json:"target,omitempty"`
	Files     []string `json:"files,omitempty"`
	Key       *string  `json:"key,omitempty"`
	Direction *string  `json:"direction,omitempty"`
	Amount    *int     `json:"amount,omitempty"`
	Timeout   *uint64  `json:"timeout,omitempty"`
	Path      *string  `json:"path,omitempty"`
	FullPage  *bool    `json:"fullPage,omitempty"`
	Script    *string  `json:"script,omitempty"`
	Attribute *string  `json:"attribute,omitempty"`

	// Snapshot options
	Interactive *bool `json:"interactive,omitempty"`
	Compact     *bool `json:"compact,omitempty"`
	MaxDepth    *int  `json:"maxDepth,omitempty"`

	// Mouse coordinates and deltas
	X      *int    `json:"x,omitempty"`
	Y      *int    `json:"y,omitempty"`
	Button *string `json:"button,omitempty"`
	DeltaX *int    `json:"deltaX,omitempty"`
	DeltaY *int    `json:"deltaY,omitempty"`

	// Browser settings
	Width         *int     `json:"width,omitempty"`
	Height        *int     `json:"height,omitempty"`
	Device        *string  `json:"device,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Offline       *bool    `json:"offline,omitempty"`
	Headers       *string  `json:"headers,omitempty"`
	Username      *string  `json:"username,omitempty"`
	Password      *string  `json:"password,omitempty"`
	ColorScheme   *string  `json:"colorScheme,omitempty"`
	ReducedMotion *bool    `json:"reducedMotion,omitempty"`

	// Network
	Abort  *bool   `json:"abort,omitempty"`
	Body   *string `json:"body,omitempty"`
	Clear  *bool   `json:"clear,omitempty"`
	Filter *string `json:"filter,omitempty"`

	// Storage and cookies
	StorageType *string `json:"storageType,omitempty"`
	Operation   *string `json:"operation,omitempty"`
	Name        *string `json:"name,omitempty"`

	// Tabs and locators
	Index *int `json:"index,omitempty"`

	// Dialogs
	Response   *string `json:"response,omitempty"`
	PromptText *string `json:"promptText,omitempty"`

	// Locator fields
	Role        *string `json:"role,omitempty"`
	Label       *string `json:"label,omitempty"`
	Placeholder *string `json:"placeholder,omitempty"`
	TestID      *string `json:"testId,omitempty"`
	Subaction   *string `json:"subaction,omitempty"`
	Exact       *bool   `json:"exact,omitempty"`
}

// Pointer helpers for building commands. Mirrors the option helper
// style used by playwright-go.

// String returns a pointer to s.
func String(s string) *string { return &s }

// Int returns a pointer to i.
func Int(i int) *int { return &i }

// Uint64 returns a pointer to u.
func Uint64(u uint64) *uint64 { return &u }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }
