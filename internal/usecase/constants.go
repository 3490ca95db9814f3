package usecase

import "time"

const (
	// BalanceCacheTTL is how long computed balances stay cached. Every
	// mutation invalidates the cache, so the TTL only bounds staleness if an
	// invalidation is lost.
	BalanceCacheTTL = 60 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// GroupCodeAttempts is how many times group creation retries on a join
	// code collision before giving up.
	GroupCodeAttempts = 5
)
