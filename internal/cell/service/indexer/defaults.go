package indexer

import "time"

const (
	defaultPollInterval    = 1 * time.Second
	defaultRetryBackoff    = 1 * time.Second
	defaultMaxRetryBackoff = 1 * time.Minute
	defaultPurgeInterval   = 1000

	// purgeSpanLimit caps how many heights a single purge run crosses.
	purgeSpanLimit = 10_000
)
