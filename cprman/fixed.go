// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cprman

import "fmt"

// Fixed is a fixed-rate root: the crystal oscillator, plus the gnd and
// testdebug mux inputs that read as zero.
type Fixed struct {
	name string
	rate uint64
}

func (f *Fixed) Name() string                 { return f.name }
func (f *Fixed) IsEnabled() bool              { return true }
func (f *Fixed) GetRate(uint64) uint64        { return f.rate }
func (f *Fixed) RoundRate(_, _ uint64) uint64 { return f.rate }
func (f *Fixed) Prepare() error               { return nil }
func (f *Fixed) Unprepare()                   {}

func (f *Fixed) SetRate(rate, _ uint64) error {
	return fmt.Errorf("%s: fixed at %d", f.name, f.rate)
}

// fixedFactor divides its parent by a constant ratio: the ÷10 stage behind
// each PLLH channel divider.
type fixedFactor struct {
	name string
	div  uint64
}

func (f *fixedFactor) Name() string    { return f.name }
func (f *fixedFactor) IsEnabled() bool { return true }

func (f *fixedFactor) GetRate(parentRate uint64) uint64 {
	return parentRate / f.div
}

func (f *fixedFactor) RoundRate(_, parentRate uint64) uint64 {
	return parentRate / f.div
}

func (f *fixedFactor) SetRate(rate, _ uint64) error {
	return fmt.Errorf("%s: fixed ratio 1/%d of parent", f.name, f.div)
}

func (f *fixedFactor) Prepare() error { return nil }
func (f *fixedFactor) Unprepare()     {}
