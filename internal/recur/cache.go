package recur

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

const parseCacheSize = 256

// Rule strings repeat heavily when projecting templates day after day,
// so parsed rules are kept in a small LRU. Parse failures are not
// cached; they are cheap and rare.
var parseCache = newParseCache()

func newParseCache() *lru.Cache[string, Rule] {
	c, err := lru.New[string, Rule](parseCacheSize)
	if err != nil {
		// Only possible with a non-positive size.
		panic(err)
	}
	return c
}

func parsed(rule string) (Rule, error) {
	if r, ok := parseCache.Get(rule); ok {
		return r, nil
	}
	r, err := Parse(rule)
	if err != nil {
		return Rule{}, err
	}
	parseCache.Add(rule, r)
	return r, nil
}
