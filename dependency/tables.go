package dependency

import (
	"github.com/viant/nxscript/lexer"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	lookupFunctions    = map[string]bool{"first": true, "last": true, "count": true}
	aggregateFunctions = map[string]bool{"sum": true, "max": true, "min": true, "avg": true, "cnt": true}
	notTableNames      = map[string]bool{"void": true}
)

// minTableNameLength is the shortest unknown name accepted as a table
const minTableNameLength = 3

// ExtractTableReferences returns sorted, distinct table names used by a translated script through
// select T, first(T, last(T, count(T and aggregates such as sum(T.F).
// Names are kept when known or when they look like a table name.
func ExtractTableReferences(tokens []lexer.Token, knownTables []string) []string {
	known := make(map[string]bool, len(knownTables))
	for _, name := range knownTables {
		known[name] = true
	}
	unique := map[string]bool{}
	for i := lexer.NextSignificant(tokens, 0); i != -1; i = lexer.NextSignificant(tokens, i+1) {
		name, ok := tableAt(tokens, i)
		if !ok || !(known[name] || plausible(name)) {
			continue
		}
		unique[name] = true
	}
	var result = make([]string, 0, len(unique))
	for name := range unique {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

func tableAt(tokens []lexer.Token, index int) (string, bool) {
	token := tokens[index]
	switch {
	case token.Is(lexer.Keyword, "select"):
		return nameAt(tokens, lexer.NextSignificant(tokens, index+1))
	case token.Kind == lexer.BuiltinFunction && lookupFunctions[token.Text]:
		return nameAt(tokens, argument(tokens, index))
	case token.Kind == lexer.BuiltinFunction && aggregateFunctions[token.Text]:
		tableIdx := argument(tokens, index)
		name, ok := nameAt(tokens, tableIdx)
		if !ok {
			return "", false
		}
		dot := lexer.NextSignificant(tokens, tableIdx+1)
		if dot == -1 || !tokens[dot].Is(lexer.Punctuation, ".") {
			return "", false
		}
		if field := lexer.NextSignificant(tokens, dot+1); field == -1 || !isName(tokens[field]) {
			return "", false
		}
		return name, true
	}
	return "", false
}

// argument returns index of the first significant token after "(" following the function at index
func argument(tokens []lexer.Token, index int) int {
	open := lexer.NextSignificant(tokens, index+1)
	if open == -1 || !tokens[open].Is(lexer.Punctuation, "(") {
		return -1
	}
	return lexer.NextSignificant(tokens, open+1)
}

func nameAt(tokens []lexer.Token, index int) (string, bool) {
	if index == -1 || !isName(tokens[index]) {
		return "", false
	}
	token := tokens[index]
	if token.Kind == lexer.Identifier && !strings.HasPrefix(token.Text, "'") {
		return token.Text, true
	}
	return Unquote(token.Text), true
}

func isName(token lexer.Token) bool {
	switch token.Kind {
	case lexer.Identifier, lexer.StringLiteral, lexer.RawTableRef, lexer.RawFieldRef:
		return true
	}
	return false
}

func plausible(name string) bool {
	if utf8.RuneCountInString(name) < minTableNameLength {
		return false
	}
	lower := strings.ToLower(name)
	return !lexer.IsKeyword(lower) && !notTableNames[lower]
}
