// Package rangecache provides a memoizing cache for range-sum queries
// over a mutable integer array.
//
// Cache sits in front of a caller-owned backing array and answers
// "sum of array over [left, right]" with cache-aside semantics: results
// are computed on miss, memoized in a fixed-capacity LRU store, and
// returned unchanged on hit. Point writes go through Update, which
// invalidates exactly the cached ranges that cover the written index,
// so a cached result is never stale.
//
// The recency structure is the LRU in the simplelru sub-package, based
// on the LRU implementation in groupcache:
// https://github.com/golang/groupcache/tree/master/lru
//
// Cache takes a lock while operating, and is therefore thread-safe for
// consumers. The simplelru package is not thread-safe on its own.
package rangecache
