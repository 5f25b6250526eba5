package lexer

import (
	"fmt"
	"regexp"
)

// RefPatternV1 matches internal table and field IDs as embedded by the platform
// in unformatted script text, e.g. A, B3, ZZ, C12.
const RefPatternV1 = `^[A-Z][A-Z0-9]{0,3}$`

// RefPattern classifies a word as a raw table/field reference.
// The host platform owns the ID format, so the rule is versioned.
type RefPattern struct {
	Version string
	Expr    *regexp.Regexp
}

// DefaultRefPattern returns the v1 pattern
func DefaultRefPattern() RefPattern {
	return RefPattern{Version: "v1", Expr: regexp.MustCompile(RefPatternV1)}
}

// NewRefPattern compiles a raw reference pattern; the expression is anchored if it is not already
func NewRefPattern(version, expr string) (RefPattern, error) {
	if expr == "" {
		return RefPattern{}, fmt.Errorf("ref pattern %v: expression was empty", version)
	}
	if expr[0] != '^' {
		expr = "^(?:" + expr + ")$"
	}
	compiled, err := regexp.Compile(expr)
	if err != nil {
		return RefPattern{}, fmt.Errorf("failed to compile ref pattern %v: %w", version, err)
	}
	return RefPattern{Version: version, Expr: compiled}, nil
}

// Match returns true if word has the shape of an internal ID
func (p RefPattern) Match(word string) bool {
	if p.Expr == nil {
		return false
	}
	return p.Expr.MatchString(word)
}
