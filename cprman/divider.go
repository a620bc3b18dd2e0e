// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cprman

// PllDividerData describes one PLL output channel: an 8 bit integer
// divider with a load/hold handshake in the PLL's CM register. A zero
// divider field means divide by 256. PLLH's channels have a fixed divide
// by 10 afterwards, which is what their consumers actually see; that stage
// is a separate fixed-factor node chained in by the tree.
type PllDividerData struct {
	Name      string
	SourcePll *PllData

	CmReg  uint32
	A2wReg uint32

	LoadMask     uint32
	HoldMask     uint32
	FixedDivider uint32
}

type PllDivider struct {
	regs *Regs
	data *PllDividerData
}

func (d *PllDivider) Name() string { return d.data.Name }

func (d *PllDivider) IsEnabled() bool {
	return d.regs.read(d.data.A2wReg)&a2w_pll_channel_disable == 0
}

// Closest divider in [1, 255] for rate off of parentRate. The register can
// express 256 as zero but the generic selection never picks it; 255 is
// near enough at these ratios.
func pllDividerChooseDiv(rate, parentRate uint64) uint32 {
	if rate == 0 {
		return a2w_pll_div_mask
	}
	div := (parentRate + rate/2) / rate
	if div < 1 {
		div = 1
	}
	if div > a2w_pll_div_mask {
		div = a2w_pll_div_mask
	}
	return uint32(div)
}

func (d *PllDivider) RoundRate(rate, parentRate uint64) uint64 {
	return parentRate / uint64(pllDividerChooseDiv(rate, parentRate))
}

func (d *PllDivider) GetRate(parentRate uint64) uint64 {
	div := d.regs.read(d.data.A2wReg) & a2w_pll_div_mask
	if div == 0 {
		div = 256
	}
	return parentRate / uint64(div)
}

// SetRate programs the divider, then pulses the channel's load bit to
// commit it on the next internal clock edge.
func (d *PllDivider) SetRate(rate, parentRate uint64) error {
	data := d.data
	div := pllDividerChooseDiv(rate, parentRate)

	d.regs.write(data.A2wReg,
		d.regs.read(data.A2wReg)&^uint32(a2w_pll_div_mask)|
			div<<a2w_pll_div_shift)

	cm := d.regs.read(data.CmReg)
	d.regs.write(data.CmReg, cm|data.LoadMask)
	d.regs.write(data.CmReg, cm&^data.LoadMask)

	return nil
}

// Prepare ungates the channel, then releases the hold so it runs.
func (d *PllDivider) Prepare() error {
	data := d.data

	d.regs.write(data.A2wReg,
		d.regs.read(data.A2wReg)&^uint32(a2w_pll_channel_disable))

	d.regs.write(data.CmReg,
		d.regs.read(data.CmReg)&^data.HoldMask)

	return nil
}

// Unprepare freezes the divider, then gates the channel.
func (d *PllDivider) Unprepare() {
	data := d.data

	d.regs.write(data.CmReg,
		d.regs.read(data.CmReg)&^data.LoadMask|data.HoldMask)
	d.regs.write(data.A2wReg, a2w_pll_channel_disable)
}
