package cache

import (
	"time"
)

func InitStorage() *Cache {
	return &Cache{}
}

// SetIfAbsent stores v only when k is missing and reports whether it did.
// Entries set this way never expire, the owner removes them with Del.
func (c *Cache) SetIfAbsent(k any, v any) bool {
	_, loaded := c.entries.LoadOrStore(k, v)
	return !loaded
}

func (c *Cache) Del(k any) {
	c.entries.Delete(k)
}

// Load returns nil for a missing key.
func (c *Cache) Load(k any) any {
	v, _ := c.entries.Load(k)
	return v
}

// Incr bumps the counter stored under k. The counter is dropped window after
// it was created, so the result is the number of hits in a fixed window.
func (c *Cache) Incr(k any, window time.Duration) int64 {
	fresh := &counter{}
	act, loaded := c.entries.LoadOrStore(k, fresh)
	if !loaded {
		time.AfterFunc(window, func() {
			c.entries.CompareAndDelete(k, fresh)
		})
	}

	cnt, ok := act.(*counter)
	if !ok {
		return 0
	}
	return cnt.n.Add(1)
}
