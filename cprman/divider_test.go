// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cprman

import "testing"

func TestPllDividerZeroMeansMax(t *testing.T) {
	tree, _, _ := testTree(t)

	// An all-zero divider register reads as divide by 256.
	n, err := tree.lookup("pllc_core0")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := n.GetRate(1024000000), uint64(4000000); got != want {
		t.Errorf("got %d want %d", got, want)
	}
}

func TestPllDividerSetRate(t *testing.T) {
	tree, mock, _ := testTree(t)

	n, _ := tree.lookup("pllc_core0")
	d := n.Node.(*PllDivider)
	mock.Writes()
	if err := d.SetRate(333000000, 1000000000); err != nil {
		t.Fatal(err)
	}
	if got := mock.Writes(); got != 3 {
		t.Errorf("%d register writes, want divider plus load pulse", got)
	}
	if got, want := mock.R(a2w_pllc_core0)&a2w_pll_div_mask, uint32(3); got != want {
		t.Errorf("divider: got %d want %d", got, want)
	}
	// The load bit was pulsed and came back low.
	if mock.R(cm_pllc)&cm_pllc_loadcore0 != 0 {
		t.Error("load bit left high")
	}
	if got, want := d.GetRate(1000000000), uint64(333333333); got != want {
		t.Errorf("rate: got %d want %d", got, want)
	}
}

func TestPllDividerRoundRate(t *testing.T) {
	tree, _, _ := testTree(t)

	n, _ := tree.lookup("plld_per")
	d := n.Node.(*PllDivider)

	const parent = 2000000000
	for _, x := range []struct{ rate, want uint64 }{
		{2000000000, 2000000000},
		{1000000000, 1000000000},
		{666666666, 666666666},
		{300000000, 285714285}, // divide by 7
		{1, parent / 255},      // clamped to the 8 bit field
		{1999999999, 2000000000},
	} {
		if got := d.RoundRate(x.rate, parent); got != x.want {
			t.Errorf("round %d: got %d want %d", x.rate, got, x.want)
		}
	}
}

func TestPllDividerPrepare(t *testing.T) {
	tree, mock, _ := testTree(t)

	// Start from the disabled state.
	n, _ := tree.lookup("plla_per")
	d := n.Node.(*PllDivider)
	d.Unprepare()
	if d.IsEnabled() {
		t.Fatal("enabled after unprepare")
	}
	if mock.R(cm_plla)&cm_plla_holdper == 0 {
		t.Error("hold clear after unprepare")
	}

	if err := d.Prepare(); err != nil {
		t.Fatal(err)
	}
	if !d.IsEnabled() {
		t.Error("disabled after prepare")
	}
	if mock.R(cm_plla)&cm_plla_holdper != 0 {
		t.Error("hold still set after prepare")
	}
}

func TestPllhFixedDividers(t *testing.T) {
	tree, _, _ := testTree(t)

	// PLLH channels carry a fixed divide by 10 behind the configurable
	// divider.
	for _, name := range []string{"pllh_aux", "pllh_pix", "pllh_rcal"} {
		n, err := tree.lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		f, ok := n.Node.(*fixedFactor)
		if !ok {
			t.Fatalf("%s: not a fixed factor node", name)
		}
		if got, want := f.GetRate(1080000000), uint64(108000000); got != want {
			t.Errorf("%s: got %d want %d", name, got, want)
		}
		if _, err = tree.lookup(name + "_prediv"); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}
