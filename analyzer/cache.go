package analyzer

import (
	"github.com/hashicorp/golang-lru/v2"
	"github.com/viant/nxscript/lexer"
)

// DefaultCacheSize is the number of tokenized sources kept in memory
const DefaultCacheSize = 1024

type cached struct {
	source string
	tokens []lexer.Token
}

// tokenCache keeps tokenized sources keyed by content hash; safe for concurrent use
type tokenCache struct {
	entries *lru.Cache[uint64, cached]
}

func newTokenCache(size int) (*tokenCache, error) {
	entries, err := lru.New[uint64, cached](size)
	if err != nil {
		return nil, err
	}
	return &tokenCache{entries: entries}, nil
}

// tokenize returns cached tokens for source, tokenizing on miss; callers must not modify returned tokens
func (c *tokenCache) tokenize(lex *lexer.Lexer, key uint64, source string) ([]lexer.Token, bool) {
	if c == nil {
		return lex.Tokenize(source), false
	}
	if entry, ok := c.entries.Get(key); ok && entry.source == source {
		return entry.tokens, true
	}
	tokens := lex.Tokenize(source)
	c.entries.Add(key, cached{source: source, tokens: tokens})
	return tokens, false
}

func (c *tokenCache) len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
