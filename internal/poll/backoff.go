package poll

import "time"

// Backoff is the retry delay state machine: a fixed base doubled per
// attempt, capped. Keeping it as plain data lets tests check the schedule
// without real sleeps.
type Backoff struct {
	Base time.Duration
	Cap  time.Duration

	attempt int
}

// Next returns the delay to wait before the upcoming retry and advances the
// state.
func (b *Backoff) Next() time.Duration {
	d := b.Base << b.attempt
	if b.Cap > 0 && (d > b.Cap || d <= 0) { // shift overflow also lands on the cap
		d = b.Cap
	}
	b.attempt++
	return d
}

func (b *Backoff) Attempts() int { return b.attempt }
