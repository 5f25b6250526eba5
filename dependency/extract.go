package dependency

import (
	"github.com/viant/nxscript/lexer"
	"github.com/viant/nxscript/schema"
	"strings"
)

// ExtractSource tokenizes source and extracts its references
func ExtractSource(source string, origin schema.Origin) []Reference {
	return Extract(lexer.Tokenize(source), origin)
}

// Extract finds do as database, do as server and openDatabase references in source order.
// Only keyword and function tokens match, text inside strings and comments is never a reference.
func Extract(tokens []lexer.Token, origin schema.Origin) []Reference {
	var result = make([]Reference, 0)
	for i := lexer.NextSignificant(tokens, 0); i != -1; i = lexer.NextSignificant(tokens, i+1) {
		token := tokens[i]
		switch {
		case token.Is(lexer.Keyword, "do"):
			if ref, ok := matchDo(tokens, i, origin); ok {
				result = append(result, ref)
			}
		case token.Text == "openDatabase" && (token.Kind == lexer.BuiltinFunction || token.Kind == lexer.Identifier):
			if ref, ok := matchOpenDatabase(tokens, i, origin); ok {
				result = append(result, ref)
			}
		}
	}
	return result
}

func matchDo(tokens []lexer.Token, doIdx int, origin schema.Origin) (Reference, bool) {
	asIdx := lexer.NextSignificant(tokens, doIdx+1)
	if asIdx == -1 || !tokens[asIdx].Is(lexer.Keyword, "as") {
		return Reference{}, false
	}
	targetIdx := lexer.NextSignificant(tokens, asIdx+1)
	if targetIdx == -1 {
		return Reference{}, false
	}
	switch target := tokens[targetIdx]; {
	case target.Is(lexer.Keyword, "server"):
		return newReference(origin, ServerExecution, "", tokens[doIdx:targetIdx+1]), true
	case target.Is(lexer.Keyword, "database"):
		nameIdx := lexer.NextSignificant(tokens, targetIdx+1)
		if nameIdx == -1 || tokens[nameIdx].Kind != lexer.StringLiteral {
			return Reference{}, false
		}
		return newReference(origin, ExplicitDatabase, Unquote(tokens[nameIdx].Text), tokens[doIdx:nameIdx+1]), true
	}
	return Reference{}, false
}

func matchOpenDatabase(tokens []lexer.Token, callIdx int, origin schema.Origin) (Reference, bool) {
	openIdx := lexer.NextSignificant(tokens, callIdx+1)
	if openIdx == -1 || !tokens[openIdx].Is(lexer.Punctuation, "(") {
		return Reference{}, false
	}
	nameIdx := lexer.NextSignificant(tokens, openIdx+1)
	if nameIdx == -1 || tokens[nameIdx].Kind != lexer.StringLiteral {
		return Reference{}, false
	}
	end := matchingClose(tokens, openIdx)
	if end == -1 {
		end = nameIdx
	}
	return newReference(origin, OpenDatabase, Unquote(tokens[nameIdx].Text), tokens[callIdx:end+1]), true
}

func matchingClose(tokens []lexer.Token, openIdx int) int {
	depth := 0
	for i := openIdx; i < len(tokens); i++ {
		if tokens[i].Kind != lexer.Punctuation {
			continue
		}
		switch tokens[i].Text {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func newReference(origin schema.Origin, refType Type, target string, matched []lexer.Token) Reference {
	return Reference{
		SourceDatabaseID:   origin.DatabaseID,
		TargetDatabaseName: target,
		Type:               refType,
		Snippet:            snippet(matched),
		Origin:             origin,
	}
}

// snippet joins matched tokens collapsing whitespace and newline runs to one space
func snippet(tokens []lexer.Token) string {
	var builder strings.Builder
	space := false
	for _, token := range tokens {
		if token.IsSpace() {
			space = true
			continue
		}
		if space && builder.Len() > 0 {
			builder.WriteByte(' ')
		}
		space = false
		builder.WriteString(token.Text)
	}
	return builder.String()
}

// Unquote returns the contents of a string literal; only the delimiter and backslash are escaped
func Unquote(literal string) string {
	if literal == "" || (literal[0] != '"' && literal[0] != '\'') {
		return literal
	}
	quote := literal[0]
	body := literal[1:]
	if n := len(body); n > 0 && body[n-1] == quote && !escaped(body, n-1) {
		body = body[:n-1]
	}
	var builder strings.Builder
	for i := 0; i < len(body); i++ {
		if body[i] == '\\' && i+1 < len(body) && (body[i+1] == quote || body[i+1] == '\\') {
			i++
		}
		builder.WriteByte(body[i])
	}
	return builder.String()
}

// escaped returns true if the byte at index is preceded by an odd number of backslashes
func escaped(text string, index int) bool {
	count := 0
	for i := index - 1; i >= 0 && text[i] == '\\'; i-- {
		count++
	}
	return count%2 == 1
}
