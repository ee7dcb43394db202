package cache

// Stats is a point-in-time snapshot of a store's counters. Counters
// cover the life of the process and reset only on an explicit
// ResetStats or Clear.
type Stats struct {
	// Hits is the number of Get calls answered from the table.
	Hits int64 `json:"hits"`

	// Misses is the number of Get calls that found nothing fresh.
	Misses int64 `json:"misses"`

	// Sets is the number of entries written.
	Sets int64 `json:"sets"`

	// Evictions is the number of entries removed lazily after their
	// TTL elapsed.
	Evictions int64 `json:"evictions"`

	// Invalidations is the number of entries removed by Invalidate,
	// InvalidateMatching, or their pattern/prefix helpers.
	Invalidations int64 `json:"invalidations"`

	// Size is the number of live entries at snapshot time.
	Size int `json:"size"`
}

// HitRate returns hits/(hits+misses), or 0 when no Get has been seen.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
