package daemon

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/agent-browser/pkg/logging"
	"github.com/entrhq/agent-browser/pkg/protocol"
)

// Executor runs one command at a time against the session browser.
// Commands are serialized; the CLI sends one per invocation and the
// browser is not safe to drive concurrently anyway.
type Executor struct {
	state     *browserState
	log       *logging.Logger
	closed    chan struct{}
	closeOnce sync.Once
}

// NewExecutor creates an executor. The browser launches lazily on the
// first command that needs it.
func NewExecutor(headed bool, log *logging.Logger) *Executor {
	return &Executor{
		state:  newBrowserState(headed, log),
		log:    log,
		closed: make(chan struct{}),
	}
}

// Closed is signalled when a close command has been executed.
func (e *Executor) Closed() <-chan struct{} {
	return e.closed
}

// Shutdown releases the browser resources.
func (e *Executor) Shutdown() {
	e.state.mu.Lock()
	defer e.state.mu.Unlock()
	e.state.shutdown()
}

// Execute runs cmd and always returns a response carrying the
// command's id, so the client can correlate it. A panic during
// dispatch (a wire command missing a required field dereferences a nil
// pointer) becomes a failed response instead of taking the daemon
// down.
func (e *Executor) Execute(cmd *protocol.Command) (resp protocol.Response) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorf("panic executing %s: %v", cmd.Action, r)
			resp = protocol.Fail(cmd.ID, fmt.Errorf("internal error executing %s: %v", cmd.Action, r))
		}
	}()

	data, err := e.dispatch(cmd)
	if err != nil {
		return protocol.Fail(cmd.ID, err)
	}
	return protocol.OK(cmd.ID, data)
}

func (e *Executor) dispatch(cmd *protocol.Command) (any, error) {
	b := e.state
	b.mu.Lock()
	defer b.mu.Unlock()

	// close must work even when the browser never launched, and a
	// repeated close must not re-close the signal channel.
	if cmd.Action == protocol.ActionClose {
		b.shutdown()
		e.closeOnce.Do(func() { close(e.closed) })
		return map[string]bool{"closed": true}, nil
	}

	if err := b.ensure(); err != nil {
		return nil, err
	}
	page, err := b.page()
	if err != nil {
		return nil, err
	}

	switch cmd.Action {
	// Navigation
	case protocol.ActionNavigate:
		if _, err := page.Goto(*cmd.URL, playwright.PageGotoOptions{}); err != nil {
			return nil, fmt.Errorf("navigation failed: %w", err)
		}
		return map[string]string{"url": page.URL()}, nil
	case protocol.ActionBack:
		if _, err := page.GoBack(); err != nil {
			return nil, fmt.Errorf("back failed: %w", err)
		}
		return map[string]string{"url": page.URL()}, nil
	case protocol.ActionForward:
		if _, err := page.GoForward(); err != nil {
			return nil, fmt.Errorf("forward failed: %w", err)
		}
		return map[string]string{"url": page.URL()}, nil
	case protocol.ActionReload:
		if _, err := page.Reload(); err != nil {
			return nil, fmt.Errorf("reload failed: %w", err)
		}
		return nil, nil

	// Element interaction
	case protocol.ActionClick:
		return nil, e.withLocator(*cmd.Selector, func(loc playwright.Locator) error {
			return loc.Click()
		})
	case protocol.ActionDblClick:
		return nil, e.withLocator(*cmd.Selector, func(loc playwright.Locator) error {
			return loc.Dblclick()
		})
	case protocol.ActionFill:
		return nil, e.withLocator(*cmd.Selector, func(loc playwright.Locator) error {
			return loc.Fill(deref(cmd.Value))
		})
	case protocol.ActionType:
		return nil, e.withLocator(*cmd.Selector, func(loc playwright.Locator) error {
			return loc.PressSequentially(deref(cmd.Text))
		})
	case protocol.ActionHover:
		return nil, e.withLocator(*cmd.Selector, func(loc playwright.Locator) error {
			return loc.Hover()
		})
	case protocol.ActionFocus:
		return nil, e.withLocator(*cmd.Selector, func(loc playwright.Locator) error {
			return loc.Focus()
		})
	case protocol.ActionCheck:
		return nil, e.withLocator(*cmd.Selector, func(loc playwright.Locator) error {
			return loc.Check()
		})
	case protocol.ActionUncheck:
		return nil, e.withLocator(*cmd.Selector, func(loc playwright.Locator) error {
			return loc.Uncheck()
		})
	case protocol.ActionSelect:
		return nil, e.withLocator(*cmd.Selector, func(loc playwright.Locator) error {
			_, err := loc.SelectOption(playwright.SelectOptionValues{
				ValuesOrLabels: &[]string{deref(cmd.Value)},
			})
			return err
		})
	case protocol.ActionDrag:
		source, err := b.locator(*cmd.Source)
		if err != nil {
			return nil, err
		}
		target, err := b.locator(*cmd.Target)
		if err != nil {
			return nil, err
		}
		if err := source.DragTo(target); err != nil {
			return nil, fmt.Errorf("drag failed: %w", err)
		}
		return nil, nil
	case protocol.ActionUpload:
		return nil, e.withLocator(*cmd.Selector, func(loc playwright.Locator) error {
			return loc.SetInputFiles(cmd.Files)
		})
	case protocol.ActionScrollIntoView:
		return nil, e.withLocator(*cmd.Selector, func(loc playwright.Locator) error {
			return loc.ScrollIntoViewIfNeeded()
		})
	case protocol.ActionHighlight:
		return nil, e.withLocator(*cmd.Selector, func(loc playwright.Locator) error {
			return loc.Highlight()
		})

	// Keyboard
	case protocol.ActionPress:
		return nil, page.Keyboard().Press(*cmd.Key)
	case protocol.ActionKeyDown:
		return nil, page.Keyboard().Down(*cmd.Key)
	case protocol.ActionKeyUp:
		return nil, page.Keyboard().Up(*cmd.Key)

	// Scroll
	case protocol.ActionScroll:
		dx, dy := scrollDelta(deref(cmd.Direction), derefInt(cmd.Amount))
		if _, err := page.Evaluate(fmt.Sprintf("window.scrollBy(%d, %d)", dx, dy)); err != nil {
			return nil, fmt.Errorf("scroll failed: %w", err)
		}
		return nil, nil

	// Mouse
	case protocol.ActionMouseMove:
		return nil, page.Mouse().Move(float64(*cmd.X), float64(*cmd.Y))
	case protocol.ActionMouseDown:
		return nil, page.Mouse().Down(playwright.MouseDownOptions{Button: mouseButton(deref(cmd.Button))})
	case protocol.ActionMouseUp:
		return nil, page.Mouse().Up(playwright.MouseUpOptions{Button: mouseButton(deref(cmd.Button))})
	case protocol.ActionMouseWheel:
		return nil, page.Mouse().Wheel(float64(derefInt(cmd.DeltaX)), float64(derefInt(cmd.DeltaY)))

	// Synchronization
	case protocol.ActionWait:
		if cmd.Timeout != nil {
			time.Sleep(time.Duration(*cmd.Timeout) * time.Millisecond)
			return nil, nil
		}
		return nil, e.withLocator(*cmd.Selector, func(loc playwright.Locator) error {
			return loc.WaitFor()
		})

	// Capture
	case protocol.ActionScreenshot:
		opts := playwright.PageScreenshotOptions{FullPage: cmd.FullPage}
		if cmd.Path != nil {
			opts.Path = cmd.Path
		}
		shot, err := page.Screenshot(opts)
		if err != nil {
			return nil, fmt.Errorf("screenshot failed: %w", err)
		}
		if cmd.Path != nil {
			return map[string]string{"path": *cmd.Path}, nil
		}
		return map[string]int{"bytes": len(shot)}, nil
	case protocol.ActionPDF:
		return e.exportPDF(page, *cmd.Path)
	case protocol.ActionSnapshot:
		return e.snapshot(page, cmd)

	// Script evaluation
	case protocol.ActionEvaluate:
		result, err := page.Evaluate(deref(cmd.Script))
		if err != nil {
			return nil, fmt.Errorf("evaluate failed: %w", err)
		}
		return map[string]any{"result": result}, nil

	// Page queries
	case protocol.ActionGetText:
		return e.stringResult("text", *cmd.Selector, func(loc playwright.Locator) (string, error) {
			return loc.TextContent()
		})
	case protocol.ActionInnerHTML:
		return e.stringResult("html", *cmd.Selector, func(loc playwright.Locator) (string, error) {
			return loc.InnerHTML()
		})
	case protocol.ActionInputValue:
		return e.stringResult("value", *cmd.Selector, func(loc playwright.Locator) (string, error) {
			return loc.InputValue()
		})
	case protocol.ActionGetAttribute:
		loc, err := b.locator(*cmd.Selector)
		if err != nil {
			return nil, err
		}
		value, err := loc.GetAttribute(*cmd.Attribute)
		if err != nil {
			return nil, fmt.Errorf("getattribute failed: %w", err)
		}
		return map[string]string{"attribute": *cmd.Attribute, "value": value}, nil
	case protocol.ActionURL:
		return map[string]string{"url": page.URL()}, nil
	case protocol.ActionTitle:
		title, err := page.Title()
		if err != nil {
			return nil, fmt.Errorf("title failed: %w", err)
		}
		return map[string]string{"title": title}, nil
	case protocol.ActionCount:
		loc, err := b.locator(*cmd.Selector)
		if err != nil {
			return nil, err
		}
		count, err := loc.Count()
		if err != nil {
			return nil, fmt.Errorf("count failed: %w", err)
		}
		return map[string]int{"count": count}, nil
	case protocol.ActionBoundingBox:
		loc, err := b.locator(*cmd.Selector)
		if err != nil {
			return nil, err
		}
		box, err := loc.BoundingBox()
		if err != nil {
			return nil, fmt.Errorf("boundingbox failed: %w", err)
		}
		return box, nil

	// Element state checks
	case protocol.ActionIsVisible:
		return e.boolResult("visible", *cmd.Selector, func(loc playwright.Locator) (bool, error) {
			return loc.IsVisible()
		})
	case protocol.ActionIsEnabled:
		return e.boolResult("enabled", *cmd.Selector, func(loc playwright.Locator) (bool, error) {
			return loc.IsEnabled()
		})
	case protocol.ActionIsChecked:
		return e.boolResult("checked", *cmd.Selector, func(loc playwright.Locator) (bool, error) {
			return loc.IsChecked()
		})

	// Locators
	case protocol.ActionGetByRole, protocol.ActionGetByText, protocol.ActionGetByLabel,
		protocol.ActionGetByPlaceholder, protocol.ActionGetByAltText,
		protocol.ActionGetByTitle, protocol.ActionGetByTestID, protocol.ActionNth:
		return e.runLocatorAction(page, cmd)

	// Browser settings
	case protocol.ActionViewport:
		if err := page.SetViewportSize(*cmd.Width, *cmd.Height); err != nil {
			return nil, fmt.Errorf("viewport failed: %w", err)
		}
		return nil, nil
	case protocol.ActionDevice:
		return e.emulateDevice(*cmd.Device)
	case protocol.ActionGeolocation:
		if err := b.context.GrantPermissions([]string{"geolocation"}); err != nil {
			return nil, fmt.Errorf("geolocation permission failed: %w", err)
		}
		err := b.context.SetGeolocation(&playwright.Geolocation{
			Latitude:  *cmd.Latitude,
			Longitude: *cmd.Longitude,
		})
		if err != nil {
			return nil, fmt.Errorf("geolocation failed: %w", err)
		}
		return nil, nil
	case protocol.ActionOffline:
		if err := b.context.SetOffline(*cmd.Offline); err != nil {
			return nil, fmt.Errorf("offline failed: %w", err)
		}
		return map[string]bool{"offline": *cmd.Offline}, nil
	case protocol.ActionHeaders:
		var headers map[string]string
		if err := json.Unmarshal([]byte(*cmd.Headers), &headers); err != nil {
			return nil, fmt.Errorf("headers must be a JSON object of strings: %w", err)
		}
		if err := b.context.SetExtraHTTPHeaders(headers); err != nil {
			return nil, fmt.Errorf("headers failed: %w", err)
		}
		return nil, nil
	case protocol.ActionCredentials:
		// HTTP credentials only apply at context creation.
		err := b.newContext(playwright.BrowserNewContextOptions{
			HttpCredentials: &playwright.HttpCredentials{
				Username: *cmd.Username,
				Password: *cmd.Password,
			},
		})
		if err != nil {
			return nil, err
		}
		_, err = b.addPage()
		return nil, err
	case protocol.ActionMedia:
		opts := playwright.PageEmulateMediaOptions{}
		switch deref(cmd.ColorScheme) {
		case "dark":
			opts.ColorScheme = playwright.ColorSchemeDark
		case "light":
			opts.ColorScheme = playwright.ColorSchemeLight
		default:
			opts.ColorScheme = playwright.ColorSchemeNoPreference
		}
		if cmd.ReducedMotion != nil && *cmd.ReducedMotion {
			opts.ReducedMotion = playwright.ReducedMotionReduce
		}
		if err := page.EmulateMedia(opts); err != nil {
			return nil, fmt.Errorf("media failed: %w", err)
		}
		return nil, nil

	// Network
	case protocol.ActionRoute:
		abort := cmd.Abort != nil && *cmd.Abort
		if err := b.routes.add(*cmd.URL, abort, cmd.Body); err != nil {
			return nil, fmt.Errorf("invalid route pattern %q: %w", *cmd.URL, err)
		}
		return nil, nil
	case protocol.ActionUnroute:
		removed := b.routes.remove(cmd.URL)
		return map[string]int{"removed": removed}, nil
	case protocol.ActionRequests:
		b.evmu.Lock()
		entries := b.requestBuf
		if cmd.Clear != nil && *cmd.Clear {
			b.requestBuf = nil
		}
		b.evmu.Unlock()
		if cmd.Filter != nil {
			filtered := make([]requestEntry, 0, len(entries))
			for _, entry := range entries {
				if strings.Contains(entry.URL, *cmd.Filter) {
					filtered = append(filtered, entry)
				}
			}
			entries = filtered
		}
		return map[string]any{"requests": entries}, nil

	// Storage
	case protocol.ActionStorage:
		return e.storage(page, cmd)

	// Cookies
	case protocol.ActionCookies:
		return e.cookies(page, cmd)

	// Tabs, windows, frames
	case protocol.ActionTabNew:
		newPage, err := b.addPage()
		if err != nil {
			return nil, err
		}
		if cmd.URL != nil {
			if _, err := newPage.Goto(*cmd.URL, playwright.PageGotoOptions{}); err != nil {
				return nil, fmt.Errorf("navigation failed: %w", err)
			}
		}
		return map[string]int{"index": b.active}, nil
	case protocol.ActionTabList:
		tabs, err := b.tabs()
		if err != nil {
			return nil, err
		}
		return map[string]any{"tabs": tabs}, nil
	case protocol.ActionTabClose:
		index := b.active
		if cmd.Index != nil {
			index = *cmd.Index
		}
		return nil, b.closeTab(index)
	case protocol.ActionTabSwitch:
		if *cmd.Index < 0 || *cmd.Index >= len(b.pages) {
			return nil, fmt.Errorf("no tab %d", *cmd.Index)
		}
		b.active = *cmd.Index
		if err := b.pages[b.active].BringToFront(); err != nil {
			return nil, fmt.Errorf("tab switch failed: %w", err)
		}
		return nil, nil
	case protocol.ActionWindowNew:
		// A new window is a fresh page in this context; Chromium
		// decides how to present it.
		_, err := b.addPage()
		if err != nil {
			return nil, err
		}
		return map[string]int{"index": b.active}, nil
	case protocol.ActionFrameMain:
		b.frameSel = ""
		return nil, nil
	case protocol.ActionFrame:
		b.frameSel = *cmd.Selector
		return map[string]string{"frame": *cmd.Selector}, nil

	// Dialogs
	case protocol.ActionDialog:
		accept := deref(cmd.Response) == "accept"
		b.evmu.Lock()
		b.dialogAccept = &accept
		b.dialogPrompt = cmd.PromptText
		b.evmu.Unlock()
		return nil, nil

	// Debugging
	case protocol.ActionTraceStart:
		opts := playwright.TracingStartOptions{
			Screenshots: playwright.Bool(true),
			Snapshots:   playwright.Bool(true),
		}
		if err := b.context.Tracing().Start(opts); err != nil {
			return nil, fmt.Errorf("trace start failed: %w", err)
		}
		b.tracing = true
		return nil, nil
	case protocol.ActionTraceStop:
		if !b.tracing {
			return nil, fmt.Errorf("no trace in progress")
		}
		var err error
		if cmd.Path != nil {
			err = b.context.Tracing().Stop(*cmd.Path)
		} else {
			err = b.context.Tracing().Stop()
		}
		if err != nil {
			return nil, fmt.Errorf("trace stop failed: %w", err)
		}
		b.tracing = false
		return nil, nil
	case protocol.ActionConsole:
		b.evmu.Lock()
		entries := b.consoleBuf
		if cmd.Clear != nil && *cmd.Clear {
			b.consoleBuf = nil
		}
		b.evmu.Unlock()
		return map[string]any{"messages": entries}, nil
	case protocol.ActionErrors:
		b.evmu.Lock()
		entries := b.errorBuf
		if cmd.Clear != nil && *cmd.Clear {
			b.errorBuf = nil
		}
		b.evmu.Unlock()
		return map[string]any{"errors": entries}, nil

	// Session state
	case protocol.ActionStateSave:
		if _, err := b.context.StorageState(*cmd.Path); err != nil {
			return nil, fmt.Errorf("state save failed: %w", err)
		}
		return map[string]string{"path": *cmd.Path}, nil
	case protocol.ActionStateLoad:
		err := b.newContext(playwright.BrowserNewContextOptions{
			StorageStatePath: cmd.Path,
		})
		if err != nil {
			return nil, err
		}
		_, err = b.addPage()
		return nil, err
	}

	return nil, fmt.Errorf("unsupported action %q", cmd.Action)
}

// withLocator resolves the selector and runs fn, wrapping errors with
// the action context.
func (e *Executor) withLocator(selector string, fn func(playwright.Locator) error) error {
	loc, err := e.state.locator(selector)
	if err != nil {
		return err
	}
	return fn(loc)
}

func (e *Executor) stringResult(key, selector string, fn func(playwright.Locator) (string, error)) (any, error) {
	loc, err := e.state.locator(selector)
	if err != nil {
		return nil, err
	}
	value, err := fn(loc)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", key, err)
	}
	return map[string]string{key: value}, nil
}

func (e *Executor) boolResult(key, selector string, fn func(playwright.Locator) (bool, error)) (any, error) {
	loc, err := e.state.locator(selector)
	if err != nil {
		return nil, err
	}
	value, err := fn(loc)
	if err != nil {
		return nil, fmt.Errorf("%s check failed: %w", key, err)
	}
	return map[string]bool{key: value}, nil
}

func (e *Executor) emulateDevice(name string) (any, error) {
	b := e.state
	descriptor, ok := b.pw.Devices[name]
	if !ok {
		return nil, fmt.Errorf("unknown device %q", name)
	}
	err := b.newContext(playwright.BrowserNewContextOptions{
		UserAgent:         playwright.String(descriptor.UserAgent),
		Viewport:          descriptor.Viewport,
		DeviceScaleFactor: playwright.Float(descriptor.DeviceScaleFactor),
		IsMobile:          playwright.Bool(descriptor.IsMobile),
		HasTouch:          playwright.Bool(descriptor.HasTouch),
	})
	if err != nil {
		return nil, err
	}
	if _, err := b.addPage(); err != nil {
		return nil, err
	}
	return map[string]string{"device": name}, nil
}

func (e *Executor) storage(page playwright.Page, cmd *protocol.Command) (any, error) {
	object := "localStorage"
	if deref(cmd.StorageType) == "session" {
		object = "sessionStorage"
	}

	switch deref(cmd.Operation) {
	case "get":
		if cmd.Key != nil {
			result, err := page.Evaluate(fmt.Sprintf("%s.getItem(%q)", object, *cmd.Key))
			if err != nil {
				return nil, fmt.Errorf("storage get failed: %w", err)
			}
			return map[string]any{"key": *cmd.Key, "value": result}, nil
		}
		result, err := page.Evaluate(fmt.Sprintf("Object.fromEntries(Object.entries(%s))", object))
		if err != nil {
			return nil, fmt.Errorf("storage get failed: %w", err)
		}
		return map[string]any{"entries": result}, nil
	case "set":
		if cmd.Key == nil || cmd.Value == nil {
			return nil, fmt.Errorf("storage set requires a key and a value")
		}
		if _, err := page.Evaluate(fmt.Sprintf("%s.setItem(%q, %q)", object, *cmd.Key, *cmd.Value)); err != nil {
			return nil, fmt.Errorf("storage set failed: %w", err)
		}
		return nil, nil
	case "remove":
		if cmd.Key == nil {
			return nil, fmt.Errorf("storage remove requires a key")
		}
		if _, err := page.Evaluate(fmt.Sprintf("%s.removeItem(%q)", object, *cmd.Key)); err != nil {
			return nil, fmt.Errorf("storage remove failed: %w", err)
		}
		return nil, nil
	case "clear":
		if _, err := page.Evaluate(object + ".clear()"); err != nil {
			return nil, fmt.Errorf("storage clear failed: %w", err)
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown storage operation %q", deref(cmd.Operation))
	}
}

func (e *Executor) cookies(page playwright.Page, cmd *protocol.Command) (any, error) {
	b := e.state

	switch deref(cmd.Operation) {
	case "get":
		cookies, err := b.context.Cookies()
		if err != nil {
			return nil, fmt.Errorf("cookies failed: %w", err)
		}
		if cmd.Name != nil {
			filtered := cookies[:0]
			for _, c := range cookies {
				if c.Name == *cmd.Name {
					filtered = append(filtered, c)
				}
			}
			cookies = filtered
		}
		return map[string]any{"cookies": cookies}, nil
	case "set":
		cookie := playwright.OptionalCookie{
			Name:  *cmd.Name,
			Value: *cmd.Value,
			URL:   playwright.String(page.URL()),
		}
		if err := b.context.AddCookies([]playwright.OptionalCookie{cookie}); err != nil {
			return nil, fmt.Errorf("cookie set failed: %w", err)
		}
		return nil, nil
	case "clear":
		if err := b.context.ClearCookies(); err != nil {
			return nil, fmt.Errorf("cookie clear failed: %w", err)
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cookie operation %q", deref(cmd.Operation))
	}
}

// runLocatorAction resolves a find-style locator and applies its
// sub-action.
func (e *Executor) runLocatorAction(page playwright.Page, cmd *protocol.Command) (any, error) {
	loc, err := e.resolveLocator(page, cmd)
	if err != nil {
		return nil, err
	}

	switch deref(cmd.Subaction) {
	case "click", "":
		return nil, loc.Click()
	case "dblclick":
		return nil, loc.Dblclick()
	case "fill":
		return nil, loc.Fill(deref(cmd.Value))
	case "type":
		return nil, loc.PressSequentially(deref(cmd.Value))
	case "hover":
		return nil, loc.Hover()
	case "check":
		return nil, loc.Check()
	case "uncheck":
		return nil, loc.Uncheck()
	case "focus":
		return nil, loc.Focus()
	case "text":
		text, err := loc.TextContent()
		if err != nil {
			return nil, fmt.Errorf("text failed: %w", err)
		}
		return map[string]string{"text": text}, nil
	default:
		return nil, fmt.Errorf("unknown subaction %q", deref(cmd.Subaction))
	}
}

func (e *Executor) resolveLocator(page playwright.Page, cmd *protocol.Command) (playwright.Locator, error) {
	switch cmd.Action {
	case protocol.ActionGetByRole:
		opts := playwright.PageGetByRoleOptions{}
		if cmd.Name != nil {
			opts.Name = *cmd.Name
		}
		if cmd.Exact != nil {
			opts.Exact = cmd.Exact
		}
		return page.GetByRole(playwright.AriaRole(deref(cmd.Role)), opts), nil
	case protocol.ActionGetByText:
		return page.GetByText(deref(cmd.Text), playwright.PageGetByTextOptions{Exact: cmd.Exact}), nil
	case protocol.ActionGetByLabel:
		return page.GetByLabel(deref(cmd.Label), playwright.PageGetByLabelOptions{Exact: cmd.Exact}), nil
	case protocol.ActionGetByPlaceholder:
		return page.GetByPlaceholder(deref(cmd.Placeholder), playwright.PageGetByPlaceholderOptions{Exact: cmd.Exact}), nil
	case protocol.ActionGetByAltText:
		return page.GetByAltText(deref(cmd.Text), playwright.PageGetByAltTextOptions{Exact: cmd.Exact}), nil
	case protocol.ActionGetByTitle:
		return page.GetByTitle(deref(cmd.Text), playwright.PageGetByTitleOptions{Exact: cmd.Exact}), nil
	case protocol.ActionGetByTestID:
		return page.GetByTestId(deref(cmd.TestID)), nil
	case protocol.ActionNth:
		loc, err := e.state.locator(deref(cmd.Selector))
		if err != nil {
			return nil, err
		}
		if cmd.Index != nil && *cmd.Index == -1 {
			return loc.Last(), nil
		}
		return loc.Nth(derefInt(cmd.Index)), nil
	}
	return nil, fmt.Errorf("not a locator action: %s", cmd.Action)
}

func scrollDelta(direction string, amount int) (dx, dy int) {
	switch direction {
	case "up":
		return 0, -amount
	case "left":
		return -amount, 0
	case "right":
		return amount, 0
	default:
		return 0, amount
	}
}

func mouseButton(name string) *playwright.MouseButton {
	switch name {
	case "right":
		return playwright.MouseButtonRight
	case "middle":
		return playwright.MouseButtonMiddle
	default:
		return playwright.MouseButtonLeft
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
