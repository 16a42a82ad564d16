package daemon

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/agent-browser/pkg/logging"
)

const (
	defaultTimeout = 30000.0
	bufferLimit    = 500
)

type consoleEntry struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type requestEntry struct {
	Method string `json:"method"`
	URL    string `json:"url"`
	Status int    `json:"status,omitempty"`
}

type tabInfo struct {
	Index  int    `json:"index"`
	URL    string `json:"url"`
	Title  string `json:"title"`
	Active bool   `json:"active"`
}

// browserState owns the Playwright resources for one session: a
// browser, its current context, the open pages (tabs), and the event
// buffers the console/errors/requests commands drain.
type browserState struct {
	mu sync.Mutex

	log    *logging.Logger
	headed bool

	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	pages   []playwright.Page
	active  int

	// frameSel scopes selector resolution to an iframe; empty means
	// the main frame.
	frameSel string

	routes *routeTable

	// evmu guards the event buffers and the dialog policy. Page event
	// handlers fire while an action still holds mu, so they must not
	// touch it.
	evmu       sync.Mutex
	consoleBuf []consoleEntry
	errorBuf   []string
	requestBuf []requestEntry

	// dialogAccept holds how the next dialogs should be answered: nil
	// means auto-dismiss.
	dialogAccept *bool
	dialogPrompt *string

	tracing bool
}

func newBrowserState(headed bool, log *logging.Logger) *browserState {
	return &browserState{
		log:    log,
		headed: headed,
		routes: newRouteTable(),
		active: -1,
	}
}

// ensure lazily launches Playwright and a first page; every action
// goes through here so the browser only starts when a command needs
// it.
func (b *browserState) ensure() error {
	if b.pw == nil {
		opts := &playwright.RunOptions{
			Verbose: false,
			Stdout:  io.Discard,
			Stderr:  io.Discard,
		}
		if err := playwright.Install(opts); err != nil {
			return fmt.Errorf("failed to install playwright: %w", err)
		}
		pw, err := playwright.Run(opts)
		if err != nil {
			return fmt.Errorf("failed to start playwright: %w", err)
		}
		b.pw = pw
	}

	if b.browser == nil {
		browser, err := b.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
			Headless: playwright.Bool(!b.headed),
		})
		if err != nil {
			return fmt.Errorf("failed to launch browser: %w", err)
		}
		b.browser = browser
	}

	if b.context == nil {
		if err := b.newContext(playwright.BrowserNewContextOptions{}); err != nil {
			return err
		}
	}

	if len(b.pages) == 0 {
		if _, err := b.addPage(); err != nil {
			return err
		}
	}
	return nil
}

// newContext replaces the current context. Pages belonging to the old
// context are dropped; settings like device emulation and HTTP
// credentials can only be applied at context creation.
func (b *browserState) newContext(opts playwright.BrowserNewContextOptions) error {
	if b.context != nil {
		_ = b.context.Close()
		b.pages = nil
		b.active = -1
	}

	context, err := b.browser.NewContext(opts)
	if err != nil {
		return fmt.Errorf("failed to create context: %w", err)
	}
	b.context = context

	// One catch-all route; the table decides per-request whether to
	// abort, fulfill, or continue.
	if err := context.Route("**/*", b.routes.handle); err != nil {
		return fmt.Errorf("failed to install route handler: %w", err)
	}
	return nil
}

func (b *browserState) addPage() (playwright.Page, error) {
	page, err := b.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(defaultTimeout)
	b.wireEvents(page)
	b.pages = append(b.pages, page)
	b.active = len(b.pages) - 1
	return page, nil
}

func (b *browserState) wireEvents(page playwright.Page) {
	page.OnConsole(func(msg playwright.ConsoleMessage) {
		b.evmu.Lock()
		defer b.evmu.Unlock()
		b.consoleBuf = appendBounded(b.consoleBuf, consoleEntry{Type: msg.Type(), Text: msg.Text()})
	})
	page.OnPageError(func(err error) {
		b.evmu.Lock()
		defer b.evmu.Unlock()
		b.errorBuf = appendBounded(b.errorBuf, err.Error())
	})
	page.OnRequest(func(req playwright.Request) {
		b.evmu.Lock()
		defer b.evmu.Unlock()
		b.requestBuf = appendBounded(b.requestBuf, requestEntry{Method: req.Method(), URL: req.URL()})
	})
	page.OnDialog(func(dialog playwright.Dialog) {
		b.evmu.Lock()
		accept := b.dialogAccept
		prompt := b.dialogPrompt
		b.evmu.Unlock()

		if accept != nil && *accept {
			if prompt != nil {
				_ = dialog.Accept(*prompt)
			} else {
				_ = dialog.Accept()
			}
			return
		}
		_ = dialog.Dismiss()
	})
}

func appendBounded[T any](buf []T, entry T) []T {
	buf = append(buf, entry)
	if len(buf) > bufferLimit {
		buf = buf[len(buf)-bufferLimit:]
	}
	return buf
}

// page returns the active tab.
func (b *browserState) page() (playwright.Page, error) {
	if b.active < 0 || b.active >= len(b.pages) {
		return nil, fmt.Errorf("no active page")
	}
	return b.pages[b.active], nil
}

// locator resolves a selector inside the current frame scope.
func (b *browserState) locator(selector string) (playwright.Locator, error) {
	page, err := b.page()
	if err != nil {
		return nil, err
	}
	if b.frameSel != "" {
		return page.FrameLocator(b.frameSel).Locator(selector), nil
	}
	return page.Locator(selector), nil
}

func (b *browserState) tabs() ([]tabInfo, error) {
	infos := make([]tabInfo, 0, len(b.pages))
	for i, page := range b.pages {
		title, err := page.Title()
		if err != nil {
			title = ""
		}
		infos = append(infos, tabInfo{
			Index:  i,
			URL:    page.URL(),
			Title:  title,
			Active: i == b.active,
		})
	}
	return infos, nil
}

func (b *browserState) closeTab(index int) error {
	if index < 0 || index >= len(b.pages) {
		return fmt.Errorf("no tab %d", index)
	}
	if err := b.pages[index].Close(); err != nil {
		return fmt.Errorf("failed to close tab %d: %w", index, err)
	}
	b.pages = append(b.pages[:index], b.pages[index+1:]...)
	if b.active >= len(b.pages) {
		b.active = len(b.pages) - 1
	}
	return nil
}

func (b *browserState) shutdown() {
	if b.context != nil {
		_ = b.context.Close()
		b.context = nil
	}
	if b.browser != nil {
		_ = b.browser.Close()
		b.browser = nil
	}
	if b.pw != nil {
		_ = b.pw.Stop()
		b.pw = nil
	}
	b.pages = nil
	b.active = -1
}
