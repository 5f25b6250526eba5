package dependency

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/nxscript/lexer"
	"github.com/viant/nxscript/schema"
	"gopkg.in/yaml.v3"
	"testing"
)

var origin = schema.Origin{DatabaseID: "db1", DatabaseName: "CRM", TableID: "A", TableName: "Kunden", CodeType: schema.AfterUpdate, Category: schema.TriggerCategory}

type expectReference struct {
	Target  string `yaml:"target"`
	Type    Type   `yaml:"type"`
	Snippet string `yaml:"snippet"`
}

func TestExtract(t *testing.T) {
	tests := []struct {
		description string
		source      string
		expect      string
	}{
		{
			description: "explicit database block",
			source:      "let x := 1;\ndo as database 'Mitarbeiter'\n  alert(x)\nend",
			expect: `
- target: Mitarbeiter
  type: explicitDatabase
  snippet: do as database 'Mitarbeiter'
`,
		},
		{
			description: "server execution with comment between keywords",
			source:      "do // remote\n as\tserver\n  http(\"POST\", url)\nend",
			expect: `
- type: serverExecution
  snippet: do // remote as server
`,
		},
		{
			description: "open database call",
			source:      `let db := openDatabase( "Lager \"Nord\"" , true);`,
			expect: `
- target: Lager "Nord"
  type: openDatabase
  snippet: openDatabase( "Lager \"Nord\"" , true)
`,
		},
		{
			description: "multiple references in source order",
			source:      "openDatabase('B')\ndo as server\ndo as database \"A\" end end",
			expect: `
- target: B
  type: openDatabase
  snippet: openDatabase('B')
- type: serverExecution
  snippet: do as server
- target: A
  type: explicitDatabase
  snippet: do as database "A"
`,
		},
		{
			description: "literal text is not a reference",
			source:      `sendEmail({to: "a@b.c", text: "do as database 'X'"}) // do as server`,
			expect:      `[]`,
		},
		{
			description: "non literal database name",
			source:      "do as database name end; openDatabase(name)",
			expect:      `[]`,
		},
		{
			description: "keywords are case sensitive",
			source:      "DO as database 'X'",
			expect:      `[]`,
		},
		{
			description: "unterminated call keeps snippet through name",
			source:      "openDatabase('X'",
			expect: `
- target: X
  type: openDatabase
  snippet: openDatabase('X'
`,
		},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			var expect []expectReference
			require.NoError(t, yaml.Unmarshal([]byte(tc.expect), &expect))
			references := ExtractSource(tc.source, origin)
			require.NotNil(t, references)
			var actual = make([]expectReference, 0)
			for _, ref := range references {
				assert.Equal(t, "db1", ref.SourceDatabaseID)
				assert.Equal(t, origin, ref.Origin)
				actual = append(actual, expectReference{Target: ref.TargetDatabaseName, Type: ref.Type, Snippet: ref.Snippet})
			}
			if expect == nil {
				expect = []expectReference{}
			}
			assert.EqualValues(t, expect, actual)
		})
	}
}

func TestExtract_Mitarbeiter(t *testing.T) {
	references := Extract(lexer.Tokenize(`if A then do as database 'Mitarbeiter' alert("x") end end`), origin)
	require.Len(t, references, 1)
	assert.Equal(t, ExplicitDatabase, references[0].Type)
	assert.Equal(t, "Mitarbeiter", references[0].TargetDatabaseName)
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		description string
		literal     string
		expect      string
	}{
		{description: "double quoted", literal: `"abc"`, expect: "abc"},
		{description: "single quoted escape", literal: `'it\'s'`, expect: "it's"},
		{description: "escaped backslash before closing quote", literal: `"a\\"`, expect: `a\`},
		{description: "other escapes are kept", literal: `"a\nb"`, expect: `a\nb`},
		{description: "unterminated", literal: `"abc`, expect: "abc"},
		{description: "unterminated with escaped quote", literal: `"a\"`, expect: `a"`},
		{description: "not a literal", literal: "abc", expect: "abc"},
		{description: "empty literal", literal: `''`, expect: ""},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expect, Unquote(tc.literal))
		})
	}
}

func TestParseType(t *testing.T) {
	actual, ok := ParseType("openDatabase")
	assert.True(t, ok)
	assert.Equal(t, OpenDatabase, actual)
	_, ok = ParseType("do as database")
	assert.False(t, ok)
}
