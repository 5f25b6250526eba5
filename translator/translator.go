package translator

import (
	"github.com/viant/nxscript/lexer"
	"github.com/viant/nxscript/symbol"
	"strings"
	"unicode"
)

// Stats counts raw references seen during translation
type Stats struct {
	Resolved   int `yaml:"resolved"`
	Unresolved int `yaml:"unresolved"`
}

// Add accumulates other stats
func (s *Stats) Add(other Stats) {
	s.Resolved += other.Resolved
	s.Unresolved += other.Unresolved
}

// Translate replaces resolvable raw table and field references with display names
func Translate(tokens []lexer.Token, table *symbol.Table, scope symbol.Scope) []lexer.Token {
	result, _ := TranslateWithStats(tokens, table, scope)
	return result
}

// TranslateWithStats translates tokens and reports how many raw references were resolved.
// Field references resolve in the table named by a T. qualifier, then in the table of an enclosing
// select filter or where clause, then in scope.TableID. A qualifier naming a reference field of that
// table is a traversal: it resolves as the field and the next field resolves in the referenced table.
// Unresolved references are kept as is.
func TranslateWithStats(tokens []lexer.Token, table *symbol.Table, scope symbol.Scope) ([]lexer.Token, Stats) {
	if table == nil {
		panic("translator: symbol table was nil")
	}
	stats := Stats{}
	result := make([]lexer.Token, len(tokens))
	copy(result, tokens)
	filters := &filterStack{}
	traversals := map[int]symbol.Scope{}
	for i, token := range tokens {
		switch token.Kind {
		case lexer.RawTableRef:
			if owner, ok := fieldScope(tokens, i, filters, traversals, scope); ok && !afterSelect(tokens, i) {
				if target, ok := table.Target(owner, token.Text); ok {
					name, _ := table.Resolve(owner, token.Text)
					traversals[i] = target
					stats.record(true)
					result[i] = replace(token, name)
					break
				}
			}
			name, ok := table.Resolve(scope.Database(), token.Text)
			stats.record(ok)
			if ok {
				result[i] = replace(token, name)
			}
		case lexer.RawFieldRef:
			name, ok := "", false
			if owner, known := fieldScope(tokens, i, filters, traversals, scope); known {
				name, ok = table.Resolve(owner, token.Text)
			}
			stats.record(ok)
			if ok {
				result[i] = replace(token, name)
			}
		}
		filters.track(tokens, i)
	}
	return result, stats
}

func (s *Stats) record(resolved bool) {
	if resolved {
		s.Resolved++
		return
	}
	s.Unresolved++
}

// fieldScope returns the table scope owning the field reference at index
func fieldScope(tokens []lexer.Token, index int, filters *filterStack, traversals map[int]symbol.Scope, scope symbol.Scope) (symbol.Scope, bool) {
	if dot := lexer.PrevSignificant(tokens, index-1); dot != -1 && tokens[dot].Is(lexer.Punctuation, ".") {
		qualifier := lexer.PrevSignificant(tokens, dot-1)
		if qualifier == -1 {
			return symbol.Scope{}, false
		}
		if target, ok := traversals[qualifier]; ok {
			return target, true
		}
		switch token := tokens[qualifier]; {
		case token.Kind == lexer.RawTableRef:
			return scope.Table(token.Text), true
		case token.Is(lexer.Keyword, "this"):
			return scope, scope.TableID != ""
		case token.Is(lexer.Punctuation, ")"), token.Is(lexer.Punctuation, "]"):
			tableID, ok := groupTable(tokens, qualifier)
			return scope.Table(tableID), ok
		}
		return symbol.Scope{}, false
	}
	if current, ok := filters.top(); ok {
		return scope.Table(current.tableID), current.tableID != ""
	}
	return scope, scope.TableID != ""
}

func afterSelect(tokens []lexer.Token, index int) bool {
	prev := lexer.PrevSignificant(tokens, index-1)
	return prev != -1 && tokens[prev].Is(lexer.Keyword, "select")
}

// groupTable returns the table selected by a bracket group ending at closer: (select T ...) or select T[...]
func groupTable(tokens []lexer.Token, closer int) (string, bool) {
	opener := matchingOpener(tokens, closer)
	if opener == -1 {
		return "", false
	}
	if tokens[opener].Text == "(" {
		if selectIdx := lexer.NextSignificant(tokens, opener+1); selectIdx != -1 && tokens[selectIdx].Is(lexer.Keyword, "select") {
			if ref := lexer.NextSignificant(tokens, selectIdx+1); ref != -1 && tokens[ref].Kind == lexer.RawTableRef {
				return tokens[ref].Text, true
			}
		}
		return "", false
	}
	tableID, _ := selectedTable(tokens, opener-1)
	return tableID, tableID != ""
}

// selectedTable reports whether the significant token at or before index is the table of a select;
// tableID is empty when that table is not a raw reference
func selectedTable(tokens []lexer.Token, index int) (tableID string, selected bool) {
	ref := lexer.PrevSignificant(tokens, index)
	if ref == -1 {
		return "", false
	}
	selectIdx := lexer.PrevSignificant(tokens, ref-1)
	if selectIdx == -1 || !tokens[selectIdx].Is(lexer.Keyword, "select") {
		return "", false
	}
	if tokens[ref].Kind == lexer.RawTableRef {
		return tokens[ref].Text, true
	}
	return "", true
}

func matchingOpener(tokens []lexer.Token, closer int) int {
	depth := 0
	for i := closer; i >= 0; i-- {
		if tokens[i].Kind != lexer.Punctuation {
			continue
		}
		switch tokens[i].Text {
		case ")", "]":
			depth++
		case "(", "[":
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func replace(token lexer.Token, name string) lexer.Token {
	return lexer.Token{Kind: lexer.Identifier, Text: quote(name), Start: token.Start, End: token.End, Synthetic: true}
}

// quote writes names that would not re-tokenize as a single word as 'quoted name'
func quote(name string) string {
	if isPlainWord(name) && !lexer.IsKeyword(name) {
		return name
	}
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(name)
	return "'" + escaped + "'"
}

func isPlainWord(name string) bool {
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return name != ""
}
