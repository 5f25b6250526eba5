package highlight

import (
	"github.com/viant/nxscript/lexer"
	"strings"
)

// Category is a display category of a token
type Category string

const (
	KeywordCategory     Category = "keyword"
	BuiltinCategory     Category = "builtin"
	IdentifierCategory  Category = "identifier"
	TableCategory       Category = "table"
	FieldCategory       Category = "field"
	StringCategory      Category = "string"
	NumberCategory      Category = "number"
	CommentCategory     Category = "comment"
	OperatorCategory    Category = "operator"
	PunctuationCategory Category = "punctuation"
	WhitespaceCategory  Category = "whitespace"
	UnknownCategory     Category = "unknown"
)

// StyledSpan is a token annotated with its display category and 1-based line
type StyledSpan struct {
	Kind     lexer.Kind `yaml:"kind"`
	Category Category   `yaml:"category"`
	Text     string     `yaml:"text"`
	Line     int        `yaml:"line"`
}

// CategoryOf maps a token kind to its display category
func CategoryOf(kind lexer.Kind) Category {
	switch kind {
	case lexer.Keyword:
		return KeywordCategory
	case lexer.BuiltinFunction:
		return BuiltinCategory
	case lexer.Identifier:
		return IdentifierCategory
	case lexer.RawTableRef:
		return TableCategory
	case lexer.RawFieldRef:
		return FieldCategory
	case lexer.StringLiteral:
		return StringCategory
	case lexer.NumberLiteral:
		return NumberCategory
	case lexer.LineComment, lexer.BlockComment:
		return CommentCategory
	case lexer.Operator:
		return OperatorCategory
	case lexer.Punctuation:
		return PunctuationCategory
	case lexer.Whitespace, lexer.Newline:
		return WhitespaceCategory
	}
	return UnknownCategory
}

// Classify annotates tokens with display categories and line numbers.
// A span's line is where it starts; line breaks inside block comments and strings advance the count.
func Classify(tokens []lexer.Token) []StyledSpan {
	var result = make([]StyledSpan, 0, len(tokens))
	line := 1
	for _, token := range tokens {
		result = append(result, StyledSpan{Kind: token.Kind, Category: CategoryOf(token.Kind), Text: token.Text, Line: line})
		if token.Kind == lexer.Newline {
			line++
			continue
		}
		line += strings.Count(token.Text, "\n")
	}
	return result
}
