// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cprman

import "fmt"

// ClockData describes a generic clock generator. The divider is a 12.12
// fixed point field with only IntBits integer and FracBits fractional bits
// wired for any given clock. Parents lists the mux inputs in CM_SRC code
// order; position 0 is used directly when there is no mux.
type ClockData struct {
	Name string

	Parents []string

	CtlReg uint32
	DivReg uint32

	IntBits  uint32
	FracBits uint32

	// Set for the VPU clock, which drives the bus for everything else
	// and has no enable bit.
	Nonstop bool
}

type Clock struct {
	regs *Regs
	data *ClockData
}

func (c *Clock) Name() string { return c.data.Name }

func (c *Clock) IsEnabled() bool {
	// The VPU clock is always on, regardless of what we might set the
	// enable bit to.
	if c.data.Nonstop {
		return true
	}
	return c.regs.read(c.data.CtlReg)&cm_enable != 0
}

// chooseDiv picks the closest divisor for rate that the clock's populated
// divider bits can express, never zero.
func (c *Clock) chooseDiv(rate, parentRate uint64) uint32 {
	data := c.data
	unusedFracMask := uint64(1)<<(cm_div_frac_bits-data.FracBits) - 1
	div := (parentRate << cm_div_frac_bits) / rate

	// Round and mask off the unused bits. 64 bit until after the clamp,
	// so a divisor far beyond the field cannot wrap the rounding add.
	if unusedFracMask != 0 {
		div += unusedFracMask >> 1
		div &^= unusedFracMask
	}

	// Clamp to the limits.
	if min := unusedFracMask + 1; div < min {
		div = min
	}
	if max := (uint64(1)<<(data.IntBits+cm_div_frac_bits) - 1) &^
		unusedFracMask; div > max {
		div = max
	}

	return uint32(div)
}

// rateFromDivisor is the inverse. A zero divisor means the clock was never
// configured and yields zero rather than a divide fault.
func (c *Clock) rateFromDivisor(parentRate uint64, div uint32) uint64 {
	data := c.data

	div >>= cm_div_frac_bits - data.FracBits
	div &= uint32(1)<<(data.IntBits+data.FracBits) - 1

	if div == 0 {
		return 0
	}

	return (parentRate << data.FracBits) / uint64(div)
}

func (c *Clock) RoundRate(rate, parentRate uint64) uint64 {
	if rate == 0 {
		return 0
	}
	return c.rateFromDivisor(parentRate, c.chooseDiv(rate, parentRate))
}

func (c *Clock) GetRate(parentRate uint64) uint64 {
	return c.rateFromDivisor(parentRate, c.regs.read(c.data.DivReg))
}

// SetRate writes the divider only; enable state and parent selection are
// separate operations.
func (c *Clock) SetRate(rate, parentRate uint64) error {
	if rate == 0 {
		return &RangeError{Clock: c.data.Name, Rate: rate, Min: 1,
			Max: parentRate}
	}
	c.regs.write(c.data.DivReg, c.chooseDiv(rate, parentRate))
	return nil
}

func (c *Clock) Prepare() error {
	data := c.data

	if data.Nonstop {
		return nil
	}

	c.regs.mutex.Lock()
	c.regs.write(data.CtlReg,
		c.regs.read(data.CtlReg)|cm_enable|cm_gate)
	c.regs.mutex.Unlock()

	return nil
}

func (c *Clock) Unprepare() {
	data := c.data

	if data.Nonstop {
		return
	}

	c.regs.mutex.Lock()
	c.regs.write(data.CtlReg,
		c.regs.read(data.CtlReg)&^uint32(cm_enable))
	c.regs.mutex.Unlock()

	// BUSY stays high until the divider completes its in-flight cycle.
	c.regs.wait(data.Name, "busy clear", func() bool {
		return c.regs.read(data.CtlReg)&cm_busy == 0
	})
}

// Parent returns the mux selection, an index into Parents.
func (c *Clock) Parent() int {
	return int(c.regs.read(c.data.CtlReg) >> cm_src_shift & cm_src_mask)
}

// SetParent switches the mux. Glitch compatibility with the current rate
// is the caller's concern; gate the clock first.
func (c *Clock) SetParent(idx int) error {
	if idx < 0 || idx >= len(c.data.Parents) {
		return fmt.Errorf("%s: no mux input %d", c.data.Name, idx)
	}

	c.regs.mutex.Lock()
	c.regs.write(c.data.CtlReg,
		c.regs.read(c.data.CtlReg)&^uint32(cm_src_mask<<cm_src_shift)|
			uint32(idx)<<cm_src_shift)
	c.regs.mutex.Unlock()

	return nil
}
