// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cprman

import (
	"fmt"

	"github.com/platinasystems/cprman/regio"
)

// GateData describes a pure gate: one bit enabling a clock that otherwise
// passes its parent rate straight through. peri_image gates the image
// peripherals off the non-stop vpu clock inside the password domain; the
// aux block gates (mini UART, SPI1, SPI2) live in their own unprotected
// register block.
type GateData struct {
	Name   string
	Parent string

	Reg uint32
	Bit uint
}

// A gate carries its own Io since the aux block is a separate mapping;
// passwd selects CPRMAN password writes. The regs mutex covers the
// read-modify-write either way.
type Gate struct {
	regs   *Regs
	io     regio.Io
	passwd bool
	data   *GateData
}

func (g *Gate) Name() string { return g.data.Name }

func (g *Gate) IsEnabled() bool {
	return g.io.R(g.data.Reg)&(1<<g.data.Bit) != 0
}

func (g *Gate) GetRate(parentRate uint64) uint64      { return parentRate }
func (g *Gate) RoundRate(_, parentRate uint64) uint64 { return parentRate }

func (g *Gate) SetRate(rate, parentRate uint64) error {
	return fmt.Errorf("%s: gate runs at parent rate", g.data.Name)
}

func (g *Gate) Prepare() error {
	g.regs.mutex.Lock()
	g.write(g.io.R(g.data.Reg) | 1<<g.data.Bit)
	g.regs.mutex.Unlock()
	return nil
}

func (g *Gate) Unprepare() {
	g.regs.mutex.Lock()
	g.write(g.io.R(g.data.Reg) &^ (1 << g.data.Bit))
	g.regs.mutex.Unlock()
}

func (g *Gate) write(val uint32) {
	if g.passwd {
		val |= password
	}
	g.io.W(g.data.Reg, val)
}
