package session

import (
	"math/rand"
	"time"
)

// pause sleeps for a random duration between min and max seconds. LinkedIn
// rate-limits accounts that navigate at machine speed, so every page action
// gets a small human-scale gap.
func pause(minSec, maxSec int) {
	if minSec >= maxSec {
		time.Sleep(time.Duration(minSec) * time.Second)
		return
	}
	n := rand.Intn(maxSec-minSec+1) + minSec
	time.Sleep(time.Duration(n) * time.Second)
}

// pauseMillis sleeps for a random duration between min and max milliseconds.
func pauseMillis(minMs, maxMs int) {
	if minMs >= maxMs {
		time.Sleep(time.Duration(minMs) * time.Millisecond)
		return
	}
	n := rand.Intn(maxMs-minMs+1) + minMs
	time.Sleep(time.Duration(n) * time.Millisecond)
}
