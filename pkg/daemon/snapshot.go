package daemon

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
	"golang.org/x/net/html"

	"github.com/entrhq/agent-browser/pkg/protocol"
)

// snapshot renders the page (or a selector's subtree) as an indented
// element outline. interactive keeps only elements a user can act on,
// compact drops whitespace-only text, and maxDepth bounds the tree.
func (e *Executor) snapshot(page playwright.Page, cmd *protocol.Command) (any, error) {
	var rawHTML string
	var err error

	if cmd.Selector != nil {
		loc, locErr := e.state.locator(*cmd.Selector)
		if locErr != nil {
			return nil, locErr
		}
		rawHTML, err = loc.InnerHTML()
	} else {
		rawHTML, err = page.Content()
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot failed: %w", err)
	}

	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	opts := snapshotOptions{
		interactive: cmd.Interactive != nil && *cmd.Interactive,
		compact:     cmd.Compact != nil && *cmd.Compact,
		maxDepth:    -1,
	}
	if cmd.MaxDepth != nil {
		opts.maxDepth = *cmd.MaxDepth
	}

	var builder strings.Builder
	writeSnapshotNode(doc, &builder, 0, opts)

	return map[string]string{"snapshot": builder.String()}, nil
}

type snapshotOptions struct {
	interactive bool
	compact     bool
	maxDepth    int
}

// skippedElements never contribute to a snapshot.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"meta":     true,
	"link":     true,
	"head":     true,
}

// interactiveElements are the ones kept in interactive-only mode.
var interactiveElements = map[string]bool{
	"a":        true,
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
	"option":   true,
	"label":    true,
	"form":     true,
}

func writeSnapshotNode(n *html.Node, builder *strings.Builder, depth int, opts snapshotOptions) {
	if opts.maxDepth >= 0 && depth > opts.maxDepth {
		return
	}

	switch n.Type {
	case html.CommentNode, html.DoctypeNode:
		return
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" || opts.interactive {
			return
		}
		if opts.compact {
			if runes := []rune(text); len(runes) > 80 {
				text = string(runes[:80]) + "…"
			}
		}
		indent(builder, depth)
		builder.WriteString(text)
		builder.WriteByte('\n')
		return
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if skippedElements[tag] {
			return
		}

		keep := !opts.interactive || isInteractive(n, tag)
		childDepth := depth
		if keep {
			indent(builder, depth)
			builder.WriteString(describeElement(n, tag))
			builder.WriteByte('\n')
			childDepth = depth + 1
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			writeSnapshotNode(child, builder, childDepth, opts)
		}
		return
	}

	// Document and fragment roots pass straight through to children.
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		writeSnapshotNode(child, builder, depth, opts)
	}
}

func isInteractive(n *html.Node, tag string) bool {
	if interactiveElements[tag] {
		return true
	}
	for _, attr := range n.Attr {
		if attr.Key == "role" || attr.Key == "onclick" || attr.Key == "tabindex" {
			return true
		}
	}
	return false
}

// describeElement renders a single element as a tag with its most
// identifying attributes.
func describeElement(n *html.Node, tag string) string {
	var sb strings.Builder
	sb.WriteString(tag)

	for _, attr := range n.Attr {
		switch attr.Key {
		case "id":
			sb.WriteString("#" + attr.Val)
		case "class":
			for _, class := range strings.Fields(attr.Val) {
				sb.WriteString("." + class)
			}
		}
	}
	for _, attr := range n.Attr {
		switch attr.Key {
		case "href", "name", "type", "placeholder", "value", "aria-label", "role", "data-testid":
			fmt.Fprintf(&sb, " [%s=%s]", attr.Key, attr.Val)
		}
	}
	return sb.String()
}

func indent(builder *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		builder.WriteString("  ")
	}
}
