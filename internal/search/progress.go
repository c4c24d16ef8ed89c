package search

import (
	"time"

	"github.com/pdfraven/pdfraven/internal/domain"
)

// progressTracker throttles progress events to one per half second,
// except that reaching the end of the space always reports.
type progressTracker struct {
	total    uint64
	lastDone uint64
	lastT    time.Time
}

func newProgressTracker(total, start uint64) *progressTracker {
	return &progressTracker{total: total, lastDone: start}
}

func (p *progressTracker) maybeEmit(sessionID string, done uint64, now time.Time) (bool, domain.ProgressMsg) {
	if p.lastT.IsZero() {
		p.lastT = now
	}

	if now.Sub(p.lastT) < 500*time.Millisecond && done != p.total {
		return false, domain.ProgressMsg{}
	}

	delta := done - p.lastDone
	secs := now.Sub(p.lastT).Seconds()
	rate := 0
	if secs > 0 {
		rate = int(float64(delta) / secs)
	}
	pct := 0
	if p.total > 0 {
		// Float math: done*100 overflows uint64 for large mask spaces.
		pct = int(float64(done) / float64(p.total) * 100)
	}

	msg := domain.ProgressMsg{
		SessionID:  sessionID,
		Checked:    done,
		Total:      p.total,
		Percent:    pct,
		RatePerSec: rate,
	}

	p.lastDone = done
	p.lastT = now
	return true, msg
}
