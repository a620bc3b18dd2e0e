// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cprman

// PllData describes one of the five PLLs multiplying the crystal
// oscillator. The feedback divider is a 10 bit integer plus a 20 bit
// fraction; above MaxFbRate the feedback pre-divide halves the loop so the
// VCO stays in band.
type PllData struct {
	Name string

	CmCtrlReg  uint32
	A2wCtrlReg uint32
	FracReg    uint32
	AnaRegBase uint32

	// Bit in A2W_XOSC_CTRL gating this PLL's reference input.
	ReferenceEnableMask uint32
	// Bit in CM_LOCK indicating the PLL has locked.
	LockMask uint32

	Ana *PllAnaBits

	MinRate   uint64
	MaxRate   uint64
	MaxFbRate uint64
}

// PllAnaBits is the fixed bias pattern masked into the four analog
// registers on every rate change. The masks are stored complemented, as
// applied with &^=.
type PllAnaBits struct {
	Mask0, Set0 uint32
	Mask1, Set1 uint32
	Mask3, Set3 uint32

	// Bit in ANA1 engaging the feedback pre-divide by 2.
	FbPredivBit uint
}

type Pll struct {
	regs *Regs
	data *PllData
}

func (p *Pll) Name() string { return p.data.Name }

func (p *Pll) IsEnabled() bool {
	return p.regs.read(p.data.A2wCtrlReg)&a2w_pll_ctrl_prst_disable != 0
}

func pllChooseNdivAndFdiv(rate, parentRate uint64) (ndiv, fdiv uint32) {
	div := (rate << a2w_pll_frac_bits) / parentRate
	ndiv = uint32(div >> a2w_pll_frac_bits)
	fdiv = uint32(div & a2w_pll_frac_mask)
	return
}

func pllRateFromDivisors(parentRate uint64, ndiv, fdiv, pdiv uint32) uint64 {
	if pdiv == 0 {
		return 0
	}
	rate := parentRate * (uint64(ndiv)<<a2w_pll_frac_bits + uint64(fdiv))
	rate /= uint64(pdiv)
	return rate >> a2w_pll_frac_bits
}

// RoundRate returns the rate the integer and fractional dividers closest to
// rate will actually produce. The divider selection truncates down and the
// achieved rate rounds up to the next whole Hz; with the reference clock
// above one fractional step the pair is closed, so rounding the result again
// yields the same divisors and the same rate.
func (p *Pll) RoundRate(rate, parentRate uint64) uint64 {
	ndiv, fdiv := pllChooseNdivAndFdiv(rate, parentRate)
	fb := uint64(ndiv)<<a2w_pll_frac_bits + uint64(fdiv)
	const step = uint64(1)<<a2w_pll_frac_bits - 1
	return (parentRate*fb + step) >> a2w_pll_frac_bits
}

func (p *Pll) GetRate(parentRate uint64) uint64 {
	data := p.data
	if parentRate == 0 {
		return 0
	}
	a2wctrl := p.regs.read(data.A2wCtrlReg)
	fdiv := p.regs.read(data.FracReg) & a2w_pll_frac_mask
	ndiv := (a2wctrl & a2w_pll_ctrl_ndiv_mask) >> a2w_pll_ctrl_ndiv_shift
	pdiv := (a2wctrl & a2w_pll_ctrl_pdiv_mask) >> a2w_pll_ctrl_pdiv_shift

	if p.regs.read(data.AnaRegBase+4)&(1<<data.Ana.FbPredivBit) != 0 {
		ndiv *= 2
	}

	return pllRateFromDivisors(parentRate, ndiv, fdiv, pdiv)
}

func (p *Pll) SetRate(rate, parentRate uint64) error {
	data := p.data

	if rate < data.MinRate || rate > data.MaxRate {
		return &RangeError{
			Clock: data.Name,
			Rate:  rate,
			Min:   data.MinRate,
			Max:   data.MaxRate,
		}
	}

	useFbPrediv := rate > data.MaxFbRate
	if useFbPrediv {
		rate /= 2
	}

	ndiv, fdiv := pllChooseNdivAndFdiv(rate, parentRate)
	var pdiv uint32 = 1

	ana3 := p.regs.read(data.AnaRegBase + 12)
	ana2 := p.regs.read(data.AnaRegBase + 8)
	ana1 := p.regs.read(data.AnaRegBase + 4)
	ana0 := p.regs.read(data.AnaRegBase + 0)

	ana0 &^= data.Ana.Mask0
	ana0 |= data.Ana.Set0
	ana1 &^= data.Ana.Mask1
	ana1 |= data.Ana.Set1
	ana3 &^= data.Ana.Mask3
	ana3 |= data.Ana.Set3

	// If the pre-divide is coming off, drop it in the analog loop before
	// reprogramming the dividers; if it is going on, after. Either order
	// keeps the loop filter from seeing an inconsistent feedback path.
	fbPrediv := uint32(1) << data.Ana.FbPredivBit
	var doAnaSetupFirst bool
	if ana1&fbPrediv != 0 && !useFbPrediv {
		ana1 &^= fbPrediv
		doAnaSetupFirst = true
	} else if ana1&fbPrediv == 0 && useFbPrediv {
		ana1 |= fbPrediv
		doAnaSetupFirst = false
	} else {
		doAnaSetupFirst = true
	}

	// Unmask the reference clock from the oscillator.
	p.regs.write(a2w_xosc_ctrl,
		p.regs.read(a2w_xosc_ctrl)|data.ReferenceEnableMask)

	if doAnaSetupFirst {
		p.writeAna(ana0, ana1, ana2, ana3)
	}

	// Set the PLL multiplier from the oscillator.
	p.regs.write(data.FracReg, fdiv)
	p.regs.write(data.A2wCtrlReg,
		p.regs.read(data.A2wCtrlReg)&
			^uint32(a2w_pll_ctrl_ndiv_mask|a2w_pll_ctrl_pdiv_mask)|
			ndiv<<a2w_pll_ctrl_ndiv_shift|
			pdiv<<a2w_pll_ctrl_pdiv_shift)

	if !doAnaSetupFirst {
		p.writeAna(ana0, ana1, ana2, ana3)
	}

	p.GetRate(parentRate)

	return nil
}

func (p *Pll) writeAna(ana0, ana1, ana2, ana3 uint32) {
	p.regs.write(p.data.AnaRegBase+12, ana3)
	p.regs.write(p.data.AnaRegBase+8, ana2)
	p.regs.write(p.data.AnaRegBase+4, ana1)
	p.regs.write(p.data.AnaRegBase+0, ana0)
}

// Prepare takes the PLL out of analog reset and waits for lock.
func (p *Pll) Prepare() error {
	data := p.data

	p.regs.write(data.CmCtrlReg,
		p.regs.read(data.CmCtrlReg)&^uint32(cm_pll_anarst))

	return p.regs.wait(data.Name, "lock", func() bool {
		return p.regs.read(cm_lock)&data.LockMask != 0
	})
}

func (p *Pll) Unprepare() {
	p.regs.write(p.data.CmCtrlReg, cm_pll_anarst)
	p.regs.write(p.data.A2wCtrlReg, a2w_pll_ctrl_pwrdn)
}
