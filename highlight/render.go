package highlight

import (
	"fmt"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"io"
)

// Formatter names accepted by Theme
const (
	Terminal256 = "terminal256"
	Terminal16m = "terminal16m"
	HTML        = "html"
	Plain       = "noop"
)

// HTMLClassPrefix prefixes CSS classes emitted by the HTML formatter
const HTMLClassPrefix = "nx-"

// Theme selects a chroma style and output formatter
type Theme struct {
	Name        string
	Style       string // chroma style name, e.g. monokai
	Formatter   string // one of Terminal256, Terminal16m, HTML, Plain
	LineNumbers bool   // HTML only
	Standalone  bool   // HTML only: full document with embedded CSS
}

// ANSITheme returns a 256 color terminal theme for dark or light backgrounds
func ANSITheme(dark bool) Theme {
	if dark {
		return Theme{Name: "ansi-dark", Style: "monokai", Formatter: Terminal256}
	}
	return Theme{Name: "ansi-light", Style: "github", Formatter: Terminal256}
}

// HTMLTheme returns a theme emitting nx- prefixed CSS classes with line numbers
func HTMLTheme() Theme {
	return Theme{Name: "html", Style: "github", Formatter: HTML, LineNumbers: true}
}

var tokenTypes = map[Category]chroma.TokenType{
	KeywordCategory:     chroma.Keyword,
	BuiltinCategory:     chroma.NameBuiltin,
	IdentifierCategory:  chroma.Name,
	TableCategory:       chroma.NameClass,
	FieldCategory:       chroma.NameAttribute,
	StringCategory:      chroma.LiteralString,
	NumberCategory:      chroma.LiteralNumber,
	CommentCategory:     chroma.Comment,
	OperatorCategory:    chroma.Operator,
	PunctuationCategory: chroma.Punctuation,
	WhitespaceCategory:  chroma.Text,
	UnknownCategory:     chroma.Error,
}

// TokenType maps a display category to a chroma token type
func TokenType(category Category) chroma.TokenType {
	if tokenType, ok := tokenTypes[category]; ok {
		return tokenType
	}
	return chroma.Error
}

// Iterator adapts spans to a chroma token iterator
func Iterator(spans []StyledSpan) chroma.Iterator {
	tokens := make([]chroma.Token, 0, len(spans))
	for _, span := range spans {
		tokens = append(tokens, chroma.Token{Type: TokenType(span.Category), Value: span.Text})
	}
	return chroma.Literator(tokens...)
}

// Render writes spans styled by theme
func Render(w io.Writer, spans []StyledSpan, theme Theme) error {
	style, err := theme.style()
	if err != nil {
		return err
	}
	formatter, err := theme.formatter()
	if err != nil {
		return err
	}
	if err = formatter.Format(w, style, Iterator(spans)); err != nil {
		return fmt.Errorf("failed to render %v: %w", theme.Name, err)
	}
	return nil
}

func (t Theme) style() (*chroma.Style, error) {
	if t.Style == "" {
		return styles.Fallback, nil
	}
	style, ok := styles.Registry[t.Style]
	if !ok {
		return nil, fmt.Errorf("unknown style: %v", t.Style)
	}
	return style, nil
}

func (t Theme) formatter() (chroma.Formatter, error) {
	switch t.Formatter {
	case HTML:
		return html.New(
			html.WithClasses(true),
			html.WithAllClasses(true),
			html.ClassPrefix(HTMLClassPrefix),
			html.WithLineNumbers(t.LineNumbers),
			html.Standalone(t.Standalone),
		), nil
	case "":
		return formatters.NoOp, nil
	}
	formatter, ok := formatters.Registry[t.Formatter]
	if !ok {
		return nil, fmt.Errorf("unknown formatter: %v", t.Formatter)
	}
	return formatter, nil
}
