package lexer

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"testing/quick"
)

type expectToken struct {
	Kind Kind
	Text string
}

func simplify(tokens []Token) []expectToken {
	var result = make([]expectToken, 0, len(tokens))
	for _, token := range tokens {
		result = append(result, expectToken{Kind: token.Kind, Text: token.Text})
	}
	return result
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		description string
		source      string
		expect      []expectToken
	}{
		{
			description: "empty source",
			source:      "",
			expect:      []expectToken{},
		},
		{
			description: "field refs in if statement",
			source:      `if A3 > 0 then B7 := "ok" end`,
			expect: []expectToken{
				{Keyword, "if"}, {Whitespace, " "}, {RawFieldRef, "A3"}, {Whitespace, " "}, {Operator, ">"},
				{Whitespace, " "}, {NumberLiteral, "0"}, {Whitespace, " "}, {Keyword, "then"}, {Whitespace, " "},
				{RawFieldRef, "B7"}, {Whitespace, " "}, {Operator, ":="}, {Whitespace, " "}, {StringLiteral, `"ok"`},
				{Whitespace, " "}, {Keyword, "end"},
			},
		},
		{
			description: "table qualified field and select",
			source:      "A.B1 + cnt(select C)",
			expect: []expectToken{
				{RawTableRef, "A"}, {Punctuation, "."}, {RawFieldRef, "B1"}, {Whitespace, " "}, {Operator, "+"},
				{Whitespace, " "}, {BuiltinFunction, "cnt"}, {Punctuation, "("}, {Keyword, "select"}, {Whitespace, " "},
				{RawTableRef, "C"}, {Punctuation, ")"},
			},
		},
		{
			description: "table ref followed by spaced dot",
			source:      "A .B",
			expect: []expectToken{
				{RawTableRef, "A"}, {Whitespace, " "}, {Punctuation, "."}, {RawFieldRef, "B"},
			},
		},
		{
			description: "line comment excludes newline",
			source:      "// note\nlet x := 1",
			expect: []expectToken{
				{LineComment, "// note"}, {Newline, "\n"}, {Keyword, "let"}, {Whitespace, " "}, {Identifier, "x"},
				{Whitespace, " "}, {Operator, ":="}, {Whitespace, " "}, {NumberLiteral, "1"},
			},
		},
		{
			description: "bare line comment marker at end of source",
			source:      "x //",
			expect:      []expectToken{{Identifier, "x"}, {Whitespace, " "}, {LineComment, "//"}},
		},
		{
			description: "block comment spans lines",
			source:      "--- a\nb ---x",
			expect:      []expectToken{{BlockComment, "--- a\nb ---"}, {Identifier, "x"}},
		},
		{
			description: "unterminated block comment closes at end of source",
			source:      "x --- open\nmore",
			expect:      []expectToken{{Identifier, "x"}, {Whitespace, " "}, {BlockComment, "--- open\nmore"}},
		},
		{
			description: "escaped delimiters in strings",
			source:      `"a\"b" 'it\'s' "c\\"`,
			expect: []expectToken{
				{StringLiteral, `"a\"b"`}, {Whitespace, " "}, {StringLiteral, `'it\'s'`}, {Whitespace, " "},
				{StringLiteral, `"c\\"`},
			},
		},
		{
			description: "unterminated string runs to end of source",
			source:      `let x := "oops`,
			expect: []expectToken{
				{Keyword, "let"}, {Whitespace, " "}, {Identifier, "x"}, {Whitespace, " "}, {Operator, ":="},
				{Whitespace, " "}, {StringLiteral, `"oops`},
			},
		},
		{
			description: "numbers and unary minus",
			source:      "-3.14 + 2. - 7",
			expect: []expectToken{
				{Operator, "-"}, {NumberLiteral, "3.14"}, {Whitespace, " "}, {Operator, "+"}, {Whitespace, " "},
				{NumberLiteral, "2"}, {Punctuation, "."}, {Whitespace, " "}, {Operator, "-"}, {Whitespace, " "},
				{NumberLiteral, "7"},
			},
		},
		{
			description: "compound operators",
			source:      "a<=b<>c!=d>=e",
			expect: []expectToken{
				{Identifier, "a"}, {Operator, "<="}, {Identifier, "b"}, {Operator, "<>"}, {Identifier, "c"},
				{Operator, "!="}, {Identifier, "d"}, {Operator, ">="}, {Identifier, "e"},
			},
		},
		{
			description: "line terminators",
			source:      "a\r\nb\rc\n",
			expect: []expectToken{
				{Identifier, "a"}, {Newline, "\r\n"}, {Identifier, "b"}, {Newline, "\r"}, {Identifier, "c"},
				{Newline, "\n"},
			},
		},
		{
			description: "unicode names and unknown characters",
			source:      "Straße € \xff",
			expect: []expectToken{
				{Identifier, "Straße"}, {Whitespace, " "}, {Unknown, "€"}, {Whitespace, " "}, {Unknown, "\xff"},
			},
		},
		{
			description: "keywords are case sensitive",
			source:      "If DO end",
			expect: []expectToken{
				{Identifier, "If"}, {Whitespace, " "}, {RawFieldRef, "DO"}, {Whitespace, " "}, {Keyword, "end"},
			},
		},
		{
			description: "cross database call",
			source:      "do as database 'Mitarbeiter' openDatabase(\"X\") end",
			expect: []expectToken{
				{Keyword, "do"}, {Whitespace, " "}, {Keyword, "as"}, {Whitespace, " "}, {Keyword, "database"},
				{Whitespace, " "}, {StringLiteral, "'Mitarbeiter'"}, {Whitespace, " "}, {BuiltinFunction, "openDatabase"},
				{Punctuation, "("}, {StringLiteral, `"X"`}, {Punctuation, ")"}, {Whitespace, " "}, {Keyword, "end"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			tokens := Tokenize(tc.source)
			require.NotNil(t, tokens)
			assert.EqualValues(t, tc.expect, simplify(tokens))
			assert.EqualValues(t, tc.source, Join(tokens))
		})
	}
}

func TestTokenize_Offsets(t *testing.T) {
	source := "let a := 'x';\n--- c ---\nA.B"
	tokens := Tokenize(source)
	expectStart := 0
	for _, token := range tokens {
		assert.Equal(t, expectStart, token.Start)
		assert.Equal(t, source[token.Start:token.End], token.Text)
		assert.False(t, token.Synthetic)
		expectStart = token.End
	}
	assert.Equal(t, len(source), expectStart)
}

func TestTokenize_Reconstruction(t *testing.T) {
	corpus := []string{
		"",
		"\"",
		"'\\",
		"---",
		"----",
		"//",
		"\r",
		"1.",
		".5",
		"\x00\xfe\xff",
		"if a then\n\t(b;\n c)\nelse d end",
		"for i in [1, 2, 3] do\n  alert(text(i))\nend",
	}
	for _, source := range corpus {
		assert.Equal(t, source, Join(Tokenize(source)), "source: %q", source)
	}
	property := func(source string) bool {
		return Join(Tokenize(source)) == source
	}
	require.NoError(t, quick.Check(property, &quick.Config{MaxCount: 2000}))
	bytesProperty := func(data []byte) bool {
		return Join(Tokenize(string(data))) == string(data)
	}
	require.NoError(t, quick.Check(bytesProperty, &quick.Config{MaxCount: 2000}))
}

func TestLexer_WithRefPattern(t *testing.T) {
	pattern, err := NewRefPattern("v2", `[a-z]{2}[0-9]+`)
	require.NoError(t, err)
	assert.Equal(t, "v2", pattern.Version)

	lexer := New(WithRefPattern(pattern))
	assert.EqualValues(t, []expectToken{
		{RawTableRef, "ab12"}, {Punctuation, "."}, {RawFieldRef, "cd3"}, {Whitespace, " "}, {Identifier, "A"},
	}, simplify(lexer.Tokenize("ab12.cd3 A")))

	_, err = NewRefPattern("broken", "[")
	assert.Error(t, err)
	_, err = NewRefPattern("empty", "")
	assert.Error(t, err)
}

func TestSignificant(t *testing.T) {
	tokens := Tokenize("a // c\n  b")
	assert.Equal(t, 5, NextSignificant(tokens, 1))
	assert.Equal(t, 0, PrevSignificant(tokens, 4))
	assert.Equal(t, -1, NextSignificant(tokens, 6))
	assert.Equal(t, 5, PrevSignificant(tokens, 100))
}
