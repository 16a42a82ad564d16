package command

import (
	"github.com/entrhq/agent-browser/pkg/protocol"
)

// compileFind builds a locator command. The tail flags --name <value>
// and --exact are extracted first so they never shift the positional
// arguments, then the remainder is read as
//
//	find <kind> <value> [subaction] [fill value...]
//
// with the sub-action defaulting to click. The nth kind carries an
// explicit index before the sub-action, shifting the later positions
// by one.
func compileFind(rest []string, id string) *protocol.Command {
	rem, exact := extractFlag(rest, "--exact")
	rem, name := extractFlagValue(rem, "--name")

	kind, ok := arg(rem, 0)
	value, ok2 := arg(rem, 1)
	if !ok || !ok2 {
		return nil
	}

	sub := argOr(rem, 2, "click")
	var fill *string
	if len(rem) > 3 {
		fill = protocol.String(joinFrom(rem, 3))
	}

	switch kind {
	case "role":
		return &protocol.Command{ID: id, Action: protocol.ActionGetByRole, Role: &value, Subaction: &sub, Value: fill, Name: name, Exact: &exact}
	case "text":
		return &protocol.Command{ID: id, Action: protocol.ActionGetByText, Text: &value, Subaction: &sub, Exact: &exact}
	case "label":
		return &protocol.Command{ID: id, Action: protocol.ActionGetByLabel, Label: &value, Subaction: &sub, Value: fill, Exact: &exact}
	case "placeholder":
		return &protocol.Command{ID: id, Action: protocol.ActionGetByPlaceholder, Placeholder: &value, Subaction: &sub, Value: fill, Exact: &exact}
	case "alt":
		return &protocol.Command{ID: id, Action: protocol.ActionGetByAltText, Text: &value, Subaction: &sub, Exact: &exact}
	case "title":
		return &protocol.Command{ID: id, Action: protocol.ActionGetByTitle, Text: &value, Subaction: &sub, Exact: &exact}
	case "testid":
		return &protocol.Command{ID: id, Action: protocol.ActionGetByTestID, TestID: &value, Subaction: &sub, Value: fill}
	case "first":
		return &protocol.Command{ID: id, Action: protocol.ActionNth, Selector: &value, Index: protocol.Int(0), Subaction: &sub, Value: fill}
	case "last":
		return &protocol.Command{ID: id, Action: protocol.ActionNth, Selector: &value, Index: protocol.Int(-1), Subaction: &sub, Value: fill}
	case "nth":
		idx, okIdx := intAt(rem, 1)
		sel, okSel := arg(rem, 2)
		if !okIdx || !okSel {
			return nil
		}
		nthSub := argOr(rem, 3, "click")
		var nthFill *string
		if len(rem) > 4 {
			nthFill = protocol.String(joinFrom(rem, 4))
		}
		return &protocol.Command{ID: id, Action: protocol.ActionNth, Selector: &sel, Index: &idx, Subaction: &nthSub, Value: nthFill}
	}
	return nil
}
