package services

import "time"

// SetPurgeNow replaces the purge ticket clock and returns a restore func.
func SetPurgeNow(now func() time.Time) func() {
	prev := purgeNow
	purgeNow = now
	return func() { purgeNow = prev }
}
