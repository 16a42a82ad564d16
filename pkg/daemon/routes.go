package daemon

import (
	"sync"

	"github.com/gobwas/glob"
	"github.com/playwright-community/playwright-go"
)

// routeRule intercepts requests whose URL matches the pattern.
// Abort wins over a fulfillment body; a rule with neither lets the
// request continue (useful only as a placeholder, but harmless).
type routeRule struct {
	pattern string
	matcher glob.Glob
	abort   bool
	body    *string
}

// routeTable holds the interception rules registered by
// `network route` and answers the single catch-all Playwright route
// handler. Rules are matched newest-first so a later route overrides
// an earlier one for overlapping patterns.
type routeTable struct {
	mu    sync.Mutex
	rules []routeRule
}

func newRouteTable() *routeTable {
	return &routeTable{}
}

// add registers a rule. The pattern is a URL glob where * spans path
// segments and ** spans everything, matching the pattern style of the
// CLI examples.
func (t *routeTable) add(pattern string, abort bool, body *string) error {
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rules = append(t.rules, routeRule{pattern: pattern, matcher: matcher, abort: abort, body: body})
	return nil
}

// remove deletes rules matching the pattern, or every rule when
// pattern is nil. Returns how many rules were removed.
func (t *routeTable) remove(pattern *string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if pattern == nil {
		n := len(t.rules)
		t.rules = nil
		return n
	}

	kept := t.rules[:0]
	removed := 0
	for _, rule := range t.rules {
		if rule.pattern == *pattern {
			removed++
			continue
		}
		kept = append(kept, rule)
	}
	t.rules = kept
	return removed
}

// match returns the winning rule for a URL, or nil.
func (t *routeTable) match(url string) *routeRule {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := len(t.rules) - 1; i >= 0; i-- {
		if t.rules[i].matcher.Match(url) {
			rule := t.rules[i]
			return &rule
		}
	}
	return nil
}

// handle is the catch-all Playwright route handler.
func (t *routeTable) handle(route playwright.Route) {
	rule := t.match(route.Request().URL())
	if rule == nil {
		_ = route.Continue()
		return
	}
	if rule.abort {
		_ = route.Abort()
		return
	}
	if rule.body != nil {
		_ = route.Fulfill(playwright.RouteFulfillOptions{Body: *rule.body})
		return
	}
	_ = route.Continue()
}
