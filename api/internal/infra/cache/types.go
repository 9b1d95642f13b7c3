package cache

import (
	"sync"
	"sync/atomic"
)

// Cache is a concurrent key/value map shared by the wallet locker and the
// request rate limiter. The zero value is ready to use.
type Cache struct {
	entries sync.Map
}

type counter struct {
	n atomic.Int64
}
