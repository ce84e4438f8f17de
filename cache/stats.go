package cache

// Stats is a snapshot of cache counters.
type Stats struct {
	Len int
	// Capacity is the total across shards.
	Capacity  int
	Hits      uint64
	Misses    uint64
	HitRate   float64
	Evictions uint64
}
