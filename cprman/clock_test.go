// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cprman

import (
	"testing"

	"github.com/platinasystems/cprman/regio"
)

func clockData(t *testing.T, name string) *ClockData {
	t.Helper()
	for _, data := range clockTable {
		if data.Name == name {
			return data
		}
	}
	t.Fatal(name, "not in clock table")
	return nil
}

func TestClockDivisorRoundTrip(t *testing.T) {
	mock := regio.NewMock()
	c := &Clock{regs: NewRegs(mock), data: clockData(t, "v3d")}

	// 4 integer, 8 fractional bits; round trips within parent/2^8.
	const parent = 1000000000
	for _, rate := range []uint64{
		parent,
		parent / 2,
		parent / 3,
		333333333,
		250000000,
		100000001,
		66666667,
	} {
		div := c.chooseDiv(rate, parent)
		got := c.rateFromDivisor(parent, div)
		const tolerance = parent >> 8
		if got < rate-tolerance || got > rate+tolerance {
			t.Errorf("rate %d: got %d via divisor %#x", rate, got,
				div)
		}
	}
}

func TestClockDivisorClamp(t *testing.T) {
	mock := regio.NewMock()
	c := &Clock{regs: NewRegs(mock), data: clockData(t, "v3d")}

	const parent = 19200000

	// A rate needing less than the smallest representable divisor step
	// clamps to that step's rate, not zero and not overflow.
	div := c.chooseDiv(300*parent, parent)
	if got, want := div, uint32(1)<<(cm_div_frac_bits-8); got != want {
		t.Errorf("min clamp: got %#x want %#x", got, want)
	}
	if got, want := c.rateFromDivisor(parent, div), uint64(parent)<<8; got != want {
		t.Errorf("min clamp rate: got %d want %d", got, want)
	}

	// A rate needing more than the field holds clamps to the widest
	// divisor, not zero and not wraparound.
	div = c.chooseDiv(1, parent)
	want := (uint32(1)<<(4+cm_div_frac_bits) - 1) &^
		(uint32(1)<<(cm_div_frac_bits-8) - 1)
	if div != want {
		t.Errorf("max clamp: got %#x want %#x", div, want)
	}
	if got := c.rateFromDivisor(parent, div); got == 0 {
		t.Error("max clamp rate: got 0")
	}
}

func TestClockZeroDivisor(t *testing.T) {
	mock := regio.NewMock()
	c := &Clock{regs: NewRegs(mock), data: clockData(t, "v3d")}

	// Unconfigured divider reads as rate 0, not a divide fault.
	if got := c.GetRate(1000000000); got != 0 {
		t.Errorf("got %d want 0", got)
	}
}

func TestClockSetRateWritesDividerOnly(t *testing.T) {
	tree, mock, _ := testTree(t)
	mock.Writes()

	c := &Clock{regs: tree.regs, data: clockData(t, "uart")}
	if err := c.SetRate(48000000, 1920000000); err != nil {
		t.Fatal(err)
	}
	if got := mock.Writes(); got != 1 {
		t.Errorf("%d register writes, want 1", got)
	}
	div := mock.R(cm_uartdiv) &^ uint32(password)
	// 1920/48 = divide by 40 exactly.
	if got, want := div, uint32(40)<<cm_div_frac_bits; got != want {
		t.Errorf("divider: got %#x want %#x", got, want)
	}
	if mock.R(cm_uartctl)&^uint32(password) != 0 {
		t.Error("control register touched by set rate")
	}
}

func TestClockOnOff(t *testing.T) {
	tree, mock, _ := testTree(t)

	if err := tree.Prepare("emmc"); err != nil {
		t.Fatal(err)
	}
	ctl := mock.R(cm_emmcctl)
	if ctl&cm_enable == 0 || ctl&cm_gate == 0 {
		t.Errorf("ctl %#x: enable/gate clear after prepare", ctl)
	}
	enabled, err := tree.IsEnabled("emmc")
	if err != nil {
		t.Fatal(err)
	}
	if !enabled {
		t.Error("not enabled after prepare")
	}

	// Busy is already clear in the mock, so the settle wait returns.
	if err = tree.Unprepare("emmc"); err != nil {
		t.Fatal(err)
	}
	if mock.R(cm_emmcctl)&cm_enable != 0 {
		t.Error("enable still set after unprepare")
	}
}

func TestNonstopClock(t *testing.T) {
	tree, mock, _ := testTree(t)
	mock.Writes()

	// The VPU clock can't be disabled; both operations succeed without
	// touching the enable register.
	if err := tree.Prepare("vpu"); err != nil {
		t.Fatal(err)
	}
	if err := tree.Unprepare("vpu"); err != nil {
		t.Fatal(err)
	}
	if got := mock.Writes(); got != 0 {
		t.Errorf("%d register writes on nonstop clock", got)
	}
	enabled, err := tree.IsEnabled("vpu")
	if err != nil {
		t.Fatal(err)
	}
	if !enabled {
		t.Error("nonstop clock not enabled")
	}
}

func TestClockMux(t *testing.T) {
	tree, mock, _ := testTree(t)

	parent, err := tree.Parent("uart")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := parent, "gnd"; got != want {
		t.Errorf("reset parent: got %s want %s", got, want)
	}

	if err = tree.SetParent("uart", "plld_per"); err != nil {
		t.Fatal(err)
	}
	ctl := mock.R(cm_uartctl) &^ uint32(password)
	// plld_per is mux input 6; nothing else in the word changes.
	if got, want := ctl, uint32(6); got != want {
		t.Errorf("ctl: got %#x want %#x", got, want)
	}
	parent, err = tree.Parent("uart")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := parent, "plld_per"; got != want {
		t.Errorf("parent: got %s want %s", got, want)
	}

	if err = tree.SetParent("uart", "pllb_arm"); err == nil {
		t.Error("no error for parent not in mux")
	}
	if err = tree.SetParent("timer", "plla_per"); err == nil {
		t.Error("no error for parent not in osc mux")
	}
}
