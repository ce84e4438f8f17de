// Package cache provides the compositor's caches.
//
// [ImageCache] memoizes image references to texture handles and pixel
// sizes, loading each reference at most once. [ShardedCache] is a generic
// LRU used to memoize text layouts across frames.
package cache
