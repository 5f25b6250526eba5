package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	lineCommentMarker  = "//"
	blockCommentMarker = "---"
	punctuation        = "()[]{},.;:"
	singleOperators    = "+-*/%=<>!"
)

// multiOperators are matched before single character operators and punctuation
var multiOperators = []string{":=", "<=", ">=", "!=", "<>"}

// Lexer converts Ninox script into classified tokens
type Lexer struct {
	refPattern RefPattern
}

// Option configures a Lexer
type Option func(*Lexer)

// WithRefPattern overrides the raw table/field reference rule
func WithRefPattern(pattern RefPattern) Option {
	return func(l *Lexer) {
		l.refPattern = pattern
	}
}

// New creates a lexer
func New(options ...Option) *Lexer {
	ret := &Lexer{refPattern: DefaultRefPattern()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

var defaultLexer = New()

// Tokenize tokenizes source with the default lexer
func Tokenize(source string) []Token {
	return defaultLexer.Tokenize(source)
}

// Tokenize scans source left to right and returns its tokens.
// It never fails: unterminated strings and block comments close at end of source
// and unrecognized characters become single character Unknown tokens.
func (l *Lexer) Tokenize(source string) []Token {
	s := &scanner{src: source, refPattern: l.refPattern, tokens: make([]Token, 0, len(source)/3)}
	for s.pos < len(s.src) {
		s.scan()
	}
	return s.tokens
}

type scanner struct {
	src        string
	pos        int
	tokens     []Token
	refPattern RefPattern
}

func (s *scanner) emit(kind Kind, end int) {
	s.tokens = append(s.tokens, Token{Kind: kind, Text: s.src[s.pos:end], Start: s.pos, End: end})
	s.pos = end
}

func (s *scanner) scan() {
	rest := s.src[s.pos:]
	c := rest[0]
	switch {
	case strings.HasPrefix(rest, lineCommentMarker):
		s.emit(LineComment, s.lineEnd(s.pos))
	case strings.HasPrefix(rest, blockCommentMarker):
		end := len(s.src)
		if idx := strings.Index(rest[len(blockCommentMarker):], blockCommentMarker); idx != -1 {
			end = s.pos + 2*len(blockCommentMarker) + idx
		}
		s.emit(BlockComment, end)
	case c == '"' || c == '\'':
		s.emit(StringLiteral, s.stringEnd(s.pos, c))
	case isDigit(c):
		s.emit(NumberLiteral, s.numberEnd(s.pos))
	case c == '\n':
		s.emit(Newline, s.pos+1)
	case c == '\r':
		if len(rest) > 1 && rest[1] == '\n' {
			s.emit(Newline, s.pos+2)
			return
		}
		s.emit(Newline, s.pos+1)
	case c == ' ' || c == '\t':
		end := s.pos + 1
		for end < len(s.src) && (s.src[end] == ' ' || s.src[end] == '\t') {
			end++
		}
		s.emit(Whitespace, end)
	default:
		r, size := utf8.DecodeRuneInString(rest)
		if isWordStart(r) {
			end := s.wordEnd(s.pos + size)
			s.emit(s.classify(s.src[s.pos:end], end), end)
			return
		}
		for _, op := range multiOperators {
			if strings.HasPrefix(rest, op) {
				s.emit(Operator, s.pos+len(op))
				return
			}
		}
		switch {
		case strings.IndexByte(singleOperators, c) != -1:
			s.emit(Operator, s.pos+1)
		case strings.IndexByte(punctuation, c) != -1:
			s.emit(Punctuation, s.pos+1)
		default:
			s.emit(Unknown, s.pos+size)
		}
	}
}

func (s *scanner) lineEnd(pos int) int {
	if idx := strings.IndexAny(s.src[pos:], "\r\n"); idx != -1 {
		return pos + idx
	}
	return len(s.src)
}

func (s *scanner) stringEnd(pos int, quote byte) int {
	i := pos + 1
	for i < len(s.src) {
		switch c := s.src[i]; {
		case c == '\\' && i+1 < len(s.src) && (s.src[i+1] == quote || s.src[i+1] == '\\'):
			i += 2
		case c == quote:
			return i + 1
		default:
			i++
		}
	}
	return len(s.src)
}

func (s *scanner) numberEnd(pos int) int {
	end := digitsEnd(s.src, pos)
	if end+1 < len(s.src) && s.src[end] == '.' && isDigit(s.src[end+1]) {
		end = digitsEnd(s.src, end+1)
	}
	return end
}

func (s *scanner) wordEnd(pos int) int {
	for pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[pos:])
		if !isWordPart(r) {
			break
		}
		pos += size
	}
	return pos
}

func (s *scanner) classify(word string, end int) Kind {
	switch {
	case keywords[word]:
		return Keyword
	case builtins[word]:
		return BuiltinFunction
	case s.refPattern.Match(word):
		if s.followedByDot(end) || s.afterSelect() {
			return RawTableRef
		}
		return RawFieldRef
	}
	return Identifier
}

func (s *scanner) followedByDot(pos int) bool {
	for pos < len(s.src) && (s.src[pos] == ' ' || s.src[pos] == '\t') {
		pos++
	}
	return pos < len(s.src) && s.src[pos] == '.'
}

func (s *scanner) afterSelect() bool {
	idx := PrevSignificant(s.tokens, len(s.tokens)-1)
	return idx != -1 && s.tokens[idx].Is(Keyword, "select")
}

func digitsEnd(src string, pos int) int {
	for pos < len(src) && isDigit(src[pos]) {
		pos++
	}
	return pos
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordStart(r rune) bool {
	return r == '_' || (r != utf8.RuneError && unicode.IsLetter(r))
}

func isWordPart(r rune) bool {
	return isWordStart(r) || (r >= '0' && r <= '9') || (r != utf8.RuneError && unicode.IsDigit(r))
}
