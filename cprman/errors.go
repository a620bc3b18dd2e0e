// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cprman

import "fmt"

// RangeError is returned by SetRate when the requested rate falls outside
// what the clock can synthesize. No registers have been written.
type RangeError struct {
	Clock    string
	Rate     uint64
	Min, Max uint64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: rate %d outside (%d, %d)",
		e.Clock, e.Rate, e.Min, e.Max)
}

// ResolutionError is returned by New when a descriptor names a parent that
// is not in the tree. The static tables make this unreachable short of
// table corruption, and the whole tree is unusable when it happens.
type ResolutionError struct {
	Clock  string
	Parent string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: parent %q not in tree", e.Clock, e.Parent)
}

// StallError is returned from a bounded wait on a hardware bit that never
// came good. Only possible when Tree is configured with a wait timeout;
// the default follows the hardware contract and spins forever.
type StallError struct {
	Clock string
	What  string
}

func (e *StallError) Error() string {
	return fmt.Sprintf("%s: stalled waiting for %s", e.Clock, e.What)
}
