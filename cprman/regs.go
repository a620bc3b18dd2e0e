// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package cprman models the BCM2835 clock manager: one crystal oscillator
// feeding five PLLs, a bank of per PLL channel dividers, and the generic
// clock generators that the peripherals actually consume. Each node computes
// and programs its own rate from a parent rate handed to it; walking the
// tree is the Tree's job, propagating a change across it is the caller's.
package cprman

import (
	"sync"
	"time"

	"github.com/platinasystems/cprman/regio"
)

// Regs is the shared register context carried by every node in the tree.
//
// The mutex serializes read-modify-write of the CM_*CTL words on the
// generic clock enable/disable and mux paths; some of those words share
// flags between consumers. The PLL and channel divider setup paths are not
// locked here. They assume one configuration transaction in flight at a
// time, which Tree preserves with its own mutex around SetRate.
type Regs struct {
	io    regio.Io
	mutex sync.Mutex

	// Zero waits forever on PLL lock and divider busy bits, like the
	// hardware expects. Nonzero bounds the spin and surfaces a
	// StallError instead of hanging the caller.
	waitTimeout time.Duration
}

func NewRegs(io regio.Io) *Regs { return &Regs{io: io} }

func (r *Regs) read(reg uint32) uint32 { return r.io.R(reg) }

// All clock manager writes carry the password, A2W registers included.
func (r *Regs) write(reg, val uint32) { r.io.W(reg, password|val) }
