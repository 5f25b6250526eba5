package formatter

import (
	"github.com/viant/nxscript/lexer"
	"strings"
)

// DefaultIndent is the number of spaces per indentation level
const DefaultIndent = 4

// Formatter re-indents token streams
type Formatter struct {
	indent string
}

// Option configures a Formatter
type Option func(*Formatter)

// WithIndent sets number of spaces per indentation level
func WithIndent(spaces int) Option {
	return func(f *Formatter) {
		if spaces >= 0 {
			f.indent = strings.Repeat(" ", spaces)
		}
	}
}

// New creates a formatter
func New(options ...Option) *Formatter {
	ret := &Formatter{indent: strings.Repeat(" ", DefaultIndent)}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

var defaultFormatter = New()

// Format formats tokens with the default formatter
func Format(tokens []lexer.Token) string {
	return defaultFormatter.Format(tokens)
}

// Format re-indents tokens. Line breaks are kept as they are, so formatted output is a fixed point.
func (f *Formatter) Format(tokens []lexer.Token) string {
	w := &writer{indent: f.indent, lineStart: true}
	for _, token := range tokens {
		switch token.Kind {
		case lexer.Newline:
			w.newline(token.Text)
			continue
		case lexer.Whitespace:
			if !w.lineStart {
				w.space = true
			}
			continue
		}
		w.write(token)
	}
	return w.String()
}

type writer struct {
	strings.Builder
	indent    string
	level     int
	headers   int // for, while and switch headers waiting for their do
	lineStart bool
	space     bool
}

func (w *writer) newline(text string) {
	w.space = false
	w.lineStart = true
	w.WriteString(text)
}

func (w *writer) write(token lexer.Token) {
	if isCloser(token) && w.level > 0 {
		w.level--
	}
	if w.lineStart {
		level := w.level
		if token.Is(lexer.Keyword, "else") && level > 0 {
			level--
		}
		w.WriteString(strings.Repeat(w.indent, level))
		w.lineStart = false
	} else if w.space {
		w.WriteByte(' ')
	}
	w.space = false
	w.WriteString(token.Text)
	w.open(token)
}

func (w *writer) open(token lexer.Token) {
	switch token.Kind {
	case lexer.Keyword:
		switch token.Text {
		case "if":
			w.level++
		case "for", "while", "switch":
			w.level++
			w.headers++
		case "do":
			if w.headers > 0 {
				w.headers--
				return
			}
			w.level++
		}
	case lexer.Punctuation:
		if token.Text == "(" || token.Text == "[" {
			w.level++
		}
	}
}

func isCloser(token lexer.Token) bool {
	switch token.Kind {
	case lexer.Keyword:
		return token.Text == "end"
	case lexer.Punctuation:
		return token.Text == ")" || token.Text == "]"
	}
	return false
}

// LineCount returns number of lines in code, 0 for empty code
func LineCount(code string) int {
	if code == "" {
		return 0
	}
	return strings.Count(code, "\n") + 1
}

// Preview collapses whitespace and shortens code to at most max characters
func Preview(code string, max int) string {
	if max <= 0 {
		return ""
	}
	preview := []rune(strings.Join(strings.Fields(code), " "))
	if len(preview) <= max {
		return string(preview)
	}
	if max <= 3 {
		return string(preview[:max])
	}
	return string(preview[:max-3]) + "..."
}
