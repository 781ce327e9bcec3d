package parsecache

import (
	"github.com/tenglei/jsoncol/internal/jsonval"
)

// Cache memoizes parsed documents for one prepare/close scope, keyed by
// the raw document text. A scope is owned by a single evaluation context,
// so the cache does no locking.
type Cache struct {
	enabled bool
	docs    map[string]jsonval.Value
	parses  int
}

// New uses enabled=false to force a fresh parse per lookup. Disabling
// never changes a result, only how often the text is parsed.
func New(enabled bool) *Cache {
	return &Cache{enabled: enabled}
}

// Load returns the parsed form of text, parsing each distinct text at
// most once while the cache is enabled. Parse failures are not cached.
func (c *Cache) Load(text string) (jsonval.Value, error) {
	if c.enabled {
		if v, ok := c.docs[text]; ok {
			return v, nil
		}
	}

	c.parses++
	v, err := jsonval.ParseString(text)
	if err != nil {
		return jsonval.Value{}, err
	}

	if c.enabled {
		if c.docs == nil {
			c.docs = make(map[string]jsonval.Value)
		}
		c.docs[text] = v
	}
	return v, nil
}

// Parses reports how many parse attempts the cache performed. It is the
// observable difference between an enabled and a disabled cache.
func (c *Cache) Parses() int { return c.parses }

// Len reports how many distinct documents the cache holds.
func (c *Cache) Len() int { return len(c.docs) }

// Reset drops every entry and zeroes the parse counter. Scopes reset on
// close so no entry survives across unrelated batches.
func (c *Cache) Reset() {
	clear(c.docs)
	c.parses = 0
}
