package command

import (
	"strconv"
	"strings"
)

// Token helpers shared by the command families. Required arguments use
// arg/intAt/floatAt, which report absence so the caller can turn it
// into a no-match. Optional arguments use the *Or and *At pointer
// variants, which degrade to defaults instead of failing.

// arg returns args[i] when it exists.
func arg(args []string, i int) (string, bool) {
	if i < 0 || i >= len(args) {
		return "", false
	}
	return args[i], true
}

// argOr returns args[i], or def when absent.
func argOr(args []string, i int, def string) string {
	if v, ok := arg(args, i); ok {
		return v
	}
	return def
}

// strAt returns a pointer to args[i], or nil when absent.
func strAt(args []string, i int) *string {
	if v, ok := arg(args, i); ok {
		return &v
	}
	return nil
}

// intAt parses args[i] as an integer. Absent or malformed both
// report failure.
func intAt(args []string, i int) (int, bool) {
	v, ok := arg(args, i)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// intOr parses args[i], falling back to def when absent or malformed.
func intOr(args []string, i, def int) int {
	if n, ok := intAt(args, i); ok {
		return n
	}
	return def
}

// intPtrAt parses args[i] as an integer, or nil when absent or
// malformed.
func intPtrAt(args []string, i int) *int {
	if n, ok := intAt(args, i); ok {
		return &n
	}
	return nil
}

// floatAt parses args[i] as a float. Absent or malformed both report
// failure.
func floatAt(args []string, i int) (float64, bool) {
	v, ok := arg(args, i)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// joinFrom joins args[i:] with single spaces. Multi-word values need
// no quoting; the join is a literal concatenation of the raw tokens.
func joinFrom(args []string, i int) string {
	if i >= len(args) {
		return ""
	}
	return strings.Join(args[i:], " ")
}

// extractFlag removes every occurrence of name from args and reports
// whether at least one was present. The returned slice preserves the
// order of the remaining tokens, so positional parsing can run on it
// afterwards without flags shifting argument positions.
func extractFlag(args []string, name string) ([]string, bool) {
	found := false
	result := make([]string, 0, len(args))
	for _, a := range args {
		if a == name {
			found = true
			continue
		}
		result = append(result, a)
	}
	return result, found
}

// extractFlagValue removes the first occurrence of name together with
// the token following it, returning that token as the value. A flag
// with no following token is removed and yields nil.
func extractFlagValue(args []string, name string) ([]string, *string) {
	for i, a := range args {
		if a != name {
			continue
		}
		result := make([]string, 0, len(args)-1)
		result = append(result, args[:i]...)
		var value *string
		if i+1 < len(args) {
			v := args[i+1]
			value = &v
			result = append(result, args[i+2:]...)
		}
		return result, value
	}
	return args, nil
}

// hasToken reports whether args contains the exact token.
func hasToken(args []string, token string) bool {
	for _, a := range args {
		if a == token {
			return true
		}
	}
	return false
}
