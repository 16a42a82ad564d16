// Package output renders daemon responses for the terminal. JSON mode
// prints the raw response envelope for scripting; human mode styles
// the outcome and pretty-prints the payload.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/entrhq/agent-browser/pkg/protocol"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// Renderer writes one response per invocation.
type Renderer struct {
	jsonMode bool
	out      io.Writer
	color    bool
}

// New creates a renderer. jsonMode selects raw JSON output.
func New(jsonMode bool, out io.Writer) *Renderer {
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd())
	}
	return &Renderer{jsonMode: jsonMode, out: out, color: color}
}

// Response renders resp. The returned error reports write failures
// only; a failed backend response renders fine and is signalled to
// the caller through resp.Success.
func (r *Renderer) Response(resp *protocol.Response) error {
	if r.jsonMode {
		payload, err := json.Marshal(resp)
		if err != nil {
			return fmt.Errorf("failed to encode response: %w", err)
		}
		_, err = fmt.Fprintln(r.out, string(payload))
		return err
	}

	if !resp.Success {
		_, err := fmt.Fprintln(r.out, errStyle.Render("✗ "+resp.Error))
		return err
	}

	if len(resp.Data) == 0 {
		_, err := fmt.Fprintln(r.out, okStyle.Render("✓ ok"))
		return err
	}
	return r.renderData(resp.Data)
}

func (r *Renderer) renderData(data json.RawMessage) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// Non-object payloads print as-is.
		_, err := fmt.Fprintln(r.out, string(data))
		return err
	}

	// Payloads that are a single block of markup or text get the
	// whole line; everything else renders as key: value pairs.
	if len(fields) == 1 {
		for key, raw := range fields {
			switch key {
			case "html":
				var markup string
				if err := json.Unmarshal(raw, &markup); err == nil {
					return r.highlight(markup, "html")
				}
			case "snapshot":
				var tree string
				if err := json.Unmarshal(raw, &tree); err == nil {
					_, err := fmt.Fprint(r.out, tree)
					return err
				}
			}
		}
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := formatValue(fields[key])
		if _, err := fmt.Fprintf(r.out, "%s %s\n", keyStyle.Render(key+":"), value); err != nil {
			return err
		}
	}
	return nil
}

// highlight writes markup with syntax coloring on terminals and plain
// on pipes.
func (r *Renderer) highlight(code, lexer string) error {
	if !r.color {
		_, err := fmt.Fprintln(r.out, code)
		return err
	}
	if err := quick.Highlight(r.out, code, lexer, "terminal256", "monokai"); err != nil {
		_, err = fmt.Fprintln(r.out, code)
		return err
	}
	_, err := fmt.Fprintln(r.out)
	return err
}

func formatValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	// Compound values get indented JSON.
	var compound any
	if err := json.Unmarshal(raw, &compound); err == nil {
		switch compound.(type) {
		case map[string]any, []any:
			pretty, err := json.MarshalIndent(compound, "", "  ")
			if err == nil {
				return "\n" + faintStyle.Render(string(pretty))
			}
		}
	}
	return strings.TrimSpace(string(raw))
}

// Usage prints the no-match error for an unrecognized invocation.
func Usage(out io.Writer, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(out, errStyle.Render("✗ no command given"))
	} else {
		fmt.Fprintln(out, errStyle.Render(fmt.Sprintf("✗ unrecognized command: %s", strings.Join(args, " "))))
	}
	fmt.Fprintln(out, faintStyle.Render("run agent-browser help for usage"))
}
