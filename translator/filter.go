package translator

import "github.com/viant/nxscript/lexer"

// filter is an open bracket or where clause; an empty tableID inside a select means the table is unknown
type filter struct {
	tableID  string
	selected bool
	where    bool
}

// filterStack tracks brackets and where clauses that change the table fields belong to
type filterStack struct {
	items []filter
}

// top returns the innermost filter naming a select table
func (s *filterStack) top() (filter, bool) {
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i].selected {
			return s.items[i], true
		}
	}
	return filter{}, false
}

func (s *filterStack) push(item filter) {
	s.items = append(s.items, item)
}

func (s *filterStack) closeWhere() {
	for len(s.items) > 0 && s.items[len(s.items)-1].where {
		s.items = s.items[:len(s.items)-1]
	}
}

func (s *filterStack) pop() {
	s.closeWhere()
	if len(s.items) > 0 {
		s.items = s.items[:len(s.items)-1]
	}
}

// track updates the stack after the token at index has been translated
func (s *filterStack) track(tokens []lexer.Token, index int) {
	token := tokens[index]
	switch token.Kind {
	case lexer.Punctuation:
		switch token.Text {
		case "[":
			tableID, selected := selectedTable(tokens, index-1)
			s.push(filter{tableID: tableID, selected: selected})
		case "(":
			s.push(filter{})
		case ")", "]":
			s.pop()
		case ";", ",":
			s.closeWhere()
		}
	case lexer.Newline:
		s.closeWhere()
	case lexer.Keyword:
		switch token.Text {
		case "where":
			if tableID, selected := selectedTable(tokens, index-1); selected {
				s.push(filter{tableID: tableID, selected: true, where: true})
			}
		case "then", "do", "else", "end", "order", "limit":
			s.closeWhere()
		}
	}
}
