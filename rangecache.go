package rangecache

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rangekit/rangecache/simplelru"
)

// RangeKey identifies an inclusive sub-range [Left, Right] of the
// backing array. It is the key type of the underlying store; two keys
// are equal iff both bounds match.
type RangeKey struct {
	Left  int
	Right int
}

// Contains reports whether index i falls inside the range.
func (k RangeKey) Contains(i int) bool {
	return k.Left <= i && i <= k.Right
}

// Cache is a thread-safe memoizing cache for range-sum queries over a
// caller-owned backing array.
//
// The array is held by reference and never copied; it must only be
// mutated through Update, otherwise cached sums go stale.
type Cache struct {
	array   []int64
	store   *simplelru.LRU[RangeKey, int64]
	logger  *slog.Logger
	metrics MetricsCollector
	lock    sync.Mutex
}

// New creates a Cache of the given capacity bound to array.
// Returns ErrInvalidCapacity if capacity is less than one.
func New(array []int64, capacity int, opts ...Option) (*Cache, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	o := options{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: NoopMetricsCollector{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	store, err := simplelru.NewLRU[RangeKey, int64](capacity, nil)
	if err != nil {
		return nil, err
	}

	return &Cache{
		array:   array,
		store:   store,
		logger:  o.logger,
		metrics: o.metrics,
	}, nil
}

// RangeSum returns the sum of the backing array over [left, right]
// inclusive. On a store hit the memoized sum is returned without
// touching the array; on a miss the sum is computed, memoized and
// returned. Returns *ErrInvalidRange when the bounds are malformed or
// out of range, with no state changed.
func (c *Cache) RangeSum(left, right int) (int64, error) {
	start := time.Now()

	c.lock.Lock()
	defer c.lock.Unlock()

	if left < 0 || left > right || right >= len(c.array) {
		return 0, &ErrInvalidRange{Left: left, Right: right, Len: len(c.array)}
	}

	key := RangeKey{Left: left, Right: right}
	if sum, ok := c.store.Get(key); ok {
		c.metrics.RecordRangeSum(true, time.Since(start))
		c.logger.Debug("range sum hit", "left", left, "right", right, "sum", sum)
		return sum, nil
	}

	var sum int64
	for _, v := range c.array[left : right+1] {
		sum += v
	}
	if evicted := c.store.Add(key, sum); evicted {
		c.metrics.RecordEviction()
	}
	c.metrics.RecordRangeSum(false, time.Since(start))
	c.logger.Debug("range sum miss", "left", left, "right", right, "sum", sum)
	return sum, nil
}

// Update writes value into the backing array at index and purges every
// cached range that covers index; ranges not covering it survive with
// their recency order intact. Returns *ErrInvalidIndex when index is
// out of range, with the array and store untouched.
func (c *Cache) Update(index int, value int64) error {
	start := time.Now()

	c.lock.Lock()
	defer c.lock.Unlock()

	if index < 0 || index >= len(c.array) {
		return &ErrInvalidIndex{Index: index, Len: len(c.array)}
	}

	c.array[index] = value
	invalidated := c.store.RemoveFunc(func(key RangeKey) bool {
		return key.Contains(index)
	})

	c.metrics.RecordUpdate(invalidated, time.Since(start))
	c.logger.Debug("update", "index", index, "value", value, "invalidated", invalidated)
	return nil
}

// Contains checks if a range is memoized, without updating the
// recent-ness of the key.
func (c *Cache) Contains(left, right int) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.store.Contains(RangeKey{Left: left, Right: right})
}

// Peek returns the memoized sum for a range (or undefined if not found)
// without updating the "recently used"-ness of the key.
func (c *Cache) Peek(left, right int) (sum int64, ok bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.store.Peek(RangeKey{Left: left, Right: right})
}

// Keys returns a slice of the memoized range keys, from oldest to newest.
func (c *Cache) Keys() []RangeKey {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.store.Keys()
}

// Len returns the number of memoized ranges.
func (c *Cache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.store.Len()
}

// Purge is used to completely clear the store. The backing array is
// left as is.
func (c *Cache) Purge() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.store.Purge()
}

// Resize changes the store capacity, returning the number of entries
// evicted to fit.
func (c *Cache) Resize(capacity int) (evicted int) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if capacity < 1 {
		return 0
	}
	evicted = c.store.Resize(capacity)
	for i := 0; i < evicted; i++ {
		c.metrics.RecordEviction()
	}
	return evicted
}
