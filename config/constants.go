package config

import "time"

// Cache Constants
const (
	// CacheTTL is how long a fetched article generation stays fresh
	CacheTTL = 30 * time.Minute

	// PageSize is the number of articles per feed page
	PageSize = 5
)

// Enrichment Constants
const (
	// BatchWarmupDelay is the wait before the first generation call in a
	// batch run, to avoid bursting right after a fetch cycle
	BatchWarmupDelay = 10 * time.Second

	// BatchItemDelay is the wait between consecutive generation calls
	BatchItemDelay = 5 * time.Second

	// GenerateTimeout bounds a single text-generation call
	GenerateTimeout = 60 * time.Second
)

// Fetch Constants
const (
	// FetchTimeout bounds a single headlines request
	FetchTimeout = 15 * time.Second

	// ExtractTimeout bounds full-content extraction for one article
	ExtractTimeout = 30 * time.Second

	// ExtractWorkers is the size of the content-extraction worker pool
	ExtractWorkers = 5
)

// Display Constants
const (
	// WordsPerMinute is the assumed reading speed for read-time estimates
	WordsPerMinute = 200
)
