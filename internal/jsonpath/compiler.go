package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
)

// maxSteps bounds the length of a compiled path so evaluation recursion
// stays shallow regardless of input.
const maxSteps = 64

// Compile parses a path expression into executable steps.
//
// Two spellings are accepted and equivalent: rooted "$.k1.k2[0]" and bare
// "k1.k2[0]". Keys containing '.', '[' or other special characters must
// be quoted: $."k1.k2". Bracket selectors are [N] for an index, [*] for a
// wildcard and [a:b] for a half-open slice with both bounds present.
// "$.[*]" is tolerated as a spelling of "$[*]".
//
// A malformed remainder after at least one valid step does not fail the
// compile: the parser stops at the first unresolvable token and records
// the rest as a single StepInvalid, which can never match. Callers depend
// on "$.k1[2]]]]]" resolving to "not found" rather than erroring.
func Compile(expr string) (*Path, error) {
	steps, err := compile(strings.TrimSpace(expr))
	if err != nil {
		return nil, err
	}
	return &Path{raw: expr, steps: steps}, nil
}

func compile(expr string) ([]Step, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: expression cannot be empty", ErrSyntax)
	}

	i := 0
	if expr[0] == '$' {
		if len(expr) == 1 {
			return nil, nil // bare root: the whole document
		}
		if expr[1] != '.' && expr[1] != '[' {
			return nil, fmt.Errorf("%w: expected '.' or '[' after '$' in %q", ErrSyntax, expr)
		}
		i = 1
	}

	var steps []Step
	for i < len(expr) {
		if len(steps) == maxSteps {
			return nil, fmt.Errorf("%w: more than %d steps in %q", ErrSyntax, maxSteps, expr)
		}
		step, next, err := parseStep(expr, i, len(steps) == 0)
		if err != nil {
			if len(steps) == 0 {
				return nil, err
			}
			// A valid prefix followed by garbage still compiles; the
			// garbage becomes a terminal step that matches nothing.
			return append(steps, Step{Kind: StepInvalid}), nil
		}
		steps = append(steps, step)
		i = next
	}
	return steps, nil
}

func parseStep(expr string, i int, first bool) (Step, int, error) {
	switch {
	case expr[i] == '.':
		i++
		if i == len(expr) {
			return Step{}, i, fmt.Errorf("%w: expression cannot end with '.'", ErrSyntax)
		}
		if expr[i] == '[' {
			return parseBracket(expr, i)
		}
		return parseName(expr, i)
	case expr[i] == '[':
		return parseBracket(expr, i)
	case first:
		// The bare spelling starts directly with a name or wildcard.
		return parseName(expr, i)
	default:
		return Step{}, i, fmt.Errorf("%w: unexpected token %q at position %d, expected '.' or '['", ErrSyntax, expr[i], i)
	}
}

func parseName(expr string, i int) (Step, int, error) {
	if expr[i] == '*' {
		return Step{Kind: StepWildcard}, i + 1, nil
	}
	if expr[i] == '\'' || expr[i] == '"' {
		name, next, err := parseQuotedName(expr, i)
		if err != nil {
			return Step{}, i, err
		}
		return Step{Kind: StepKey, Key: name}, next, nil
	}

	start := i
	for i < len(expr) && idRune(expr[i]) {
		i++
	}
	if start == i {
		return Step{}, i, fmt.Errorf("%w: empty name selector at position %d", ErrSyntax, start)
	}
	return Step{Kind: StepKey, Key: expr[start:i]}, i, nil
}

func parseQuotedName(expr string, i int) (string, int, error) {
	quote := expr[i]
	for j := i + 1; j < len(expr); j++ {
		if expr[j] == quote {
			return expr[i+1 : j], j + 1, nil
		}
	}
	return "", i, fmt.Errorf("%w: unterminated %c-quoted name", ErrSyntax, quote)
}

func parseBracket(expr string, i int) (Step, int, error) {
	i++ // consume '['
	end := strings.IndexByte(expr[i:], ']')
	if end == -1 {
		return Step{}, i, fmt.Errorf("%w: unterminated bracket selector, missing ']'", ErrSyntax)
	}

	content := strings.TrimSpace(expr[i : i+end])
	next := i + end + 1

	switch {
	case content == "*":
		return Step{Kind: StepWildcard}, next, nil
	case isQuotedName(content):
		return Step{Kind: StepKey, Key: content[1 : len(content)-1]}, next, nil
	case strings.Contains(content, ":"):
		return parseSlice(content, next)
	}

	idx, err := strconv.Atoi(content)
	if err != nil {
		return Step{}, i, fmt.Errorf("%w: invalid bracket content %q", ErrSyntax, content)
	}
	return Step{Kind: StepIndex, Index: idx}, next, nil
}

// parseSlice parses "a:b". Both bounds are required; a step clause is not
// supported in this dialect.
func parseSlice(content string, next int) (Step, int, error) {
	lo, hi, _ := strings.Cut(content, ":")

	start, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return Step{}, next, fmt.Errorf("%w: invalid slice lower bound %q", ErrSyntax, lo)
	}
	end, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return Step{}, next, fmt.Errorf("%w: invalid slice upper bound %q", ErrSyntax, hi)
	}
	return Step{Kind: StepSlice, Start: start, End: end}, next, nil
}

func isQuotedName(s string) bool {
	return (len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'') ||
		(len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"')
}

// idRune checks if a byte is valid for unquoted names. Multi-byte UTF-8
// sequences pass so non-ASCII keys work without quoting.
func idRune(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') ||
		b == '_' || b == '-' || b >= 0x80
}
