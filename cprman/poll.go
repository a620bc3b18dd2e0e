// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cprman

import (
	"runtime"
	"time"

	"github.com/jpillora/backoff"
)

// wait spins until ready returns true.
//
// With no timeout configured this is a relaxed busy wait, matching the
// hardware contract that the bit always comes good: PLLs lock within a few
// hundred microseconds and an in-flight divider cycle is shorter still.
// With a timeout the spin backs off to short sleeps and gives up with a
// StallError, for callers that would rather fail than hang on broken
// hardware.
func (r *Regs) wait(clock, what string, ready func() bool) error {
	if r.waitTimeout == 0 {
		for !ready() {
			runtime.Gosched()
		}
		return nil
	}
	b := &backoff.Backoff{
		Min:    time.Microsecond,
		Max:    100 * time.Microsecond,
		Factor: 2,
	}
	deadline := time.Now().Add(r.waitTimeout)
	for !ready() {
		if time.Now().After(deadline) {
			return &StallError{Clock: clock, What: what}
		}
		time.Sleep(b.Duration())
	}
	return nil
}
