package arxivtex

import (
	"container/list"
	"regexp"
	"sync"
)

// patternCache is a thread-safe LRU of compiled patterns keyed by source.
type patternCache struct {
	capacity int
	cache    map[string]*list.Element
	list     *list.List
	mu       sync.Mutex
}

type patternEntry struct {
	src string
	re  *regexp.Regexp
}

func newPatternCache(capacity int) *patternCache {
	if capacity <= 0 {
		capacity = 64
	}
	return &patternCache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		list:     list.New(),
	}
}

// compile returns the compiled form of src, compiling it on a miss.
// src must be a valid pattern.
func (c *patternCache) compile(src string) *regexp.Regexp {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.cache[src]; ok {
		c.list.MoveToFront(elem)
		return elem.Value.(*patternEntry).re
	}

	re := regexp.MustCompile(src)
	if c.list.Len() >= c.capacity {
		if back := c.list.Back(); back != nil {
			delete(c.cache, back.Value.(*patternEntry).src)
			c.list.Remove(back)
		}
	}
	c.cache[src] = c.list.PushFront(&patternEntry{src: src, re: re})
	return re
}

func (c *patternCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Len()
}

// Label and reference patterns depend only on ExtractOptions, which rarely
// vary within a run.
var patterns = newPatternCache(0)
