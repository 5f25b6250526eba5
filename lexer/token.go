package lexer

import "strings"

// Kind classifies a lexical unit of Ninox script
type Kind string

const (
	Keyword         Kind = "keyword"
	BuiltinFunction Kind = "builtin"
	Identifier      Kind = "identifier"
	RawTableRef     Kind = "rawTableRef"
	RawFieldRef     Kind = "rawFieldRef"
	StringLiteral   Kind = "string"
	NumberLiteral   Kind = "number"
	LineComment     Kind = "lineComment"
	BlockComment    Kind = "blockComment"
	Operator        Kind = "operator"
	Punctuation     Kind = "punctuation"
	Whitespace      Kind = "whitespace"
	Newline         Kind = "newline"
	Unknown         Kind = "unknown"
)

// Token represents a single lexical unit.
// Start and End are byte offsets into the tokenized source; tokens produced by Tokenize
// partition the source without gaps or overlaps.
type Token struct {
	Kind      Kind   `yaml:"kind"`
	Text      string `yaml:"text"`
	Start     int    `yaml:"start"`
	End       int    `yaml:"end"`
	Synthetic bool   `yaml:"synthetic,omitempty"` // Text was rewritten and no longer equals source[Start:End]
}

// IsComment returns true for line and block comments
func (t Token) IsComment() bool {
	return t.Kind == LineComment || t.Kind == BlockComment
}

// IsSpace returns true for whitespace and newline tokens
func (t Token) IsSpace() bool {
	return t.Kind == Whitespace || t.Kind == Newline
}

// IsTrivia returns true for tokens without syntactic meaning (space, newline, comment)
func (t Token) IsTrivia() bool {
	return t.IsSpace() || t.IsComment()
}

// Is returns true if token has the given kind and text
func (t Token) Is(kind Kind, text string) bool {
	return t.Kind == kind && t.Text == text
}

// Join concatenates token texts
func Join(tokens []Token) string {
	var builder strings.Builder
	for _, token := range tokens {
		builder.WriteString(token.Text)
	}
	return builder.String()
}

// NextSignificant returns index of the first non-trivia token at or after from, or -1
func NextSignificant(tokens []Token, from int) int {
	for i := from; i < len(tokens); i++ {
		if !tokens[i].IsTrivia() {
			return i
		}
	}
	return -1
}

// PrevSignificant returns index of the last non-trivia token at or before from, or -1
func PrevSignificant(tokens []Token, from int) int {
	if from >= len(tokens) {
		from = len(tokens) - 1
	}
	for i := from; i >= 0; i-- {
		if !tokens[i].IsTrivia() {
			return i
		}
	}
	return -1
}
