// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cprman

import (
	"testing"
	"time"

	"github.com/platinasystems/cprman/regio"
)

const testOsc = 19200000

func testTree(t *testing.T) (*Tree, *regio.Mock, *regio.Mock) {
	t.Helper()
	mock := regio.NewMock()
	aux := regio.NewMock()
	tree, err := New(Config{Osc: testOsc, Cprman: mock, Aux: aux})
	if err != nil {
		t.Fatal(err)
	}
	return tree, mock, aux
}

func TestPllDataRates(t *testing.T) {
	for _, data := range pllTable {
		if data.MinRate > data.MaxFbRate {
			t.Errorf("%s: min %d above max fb %d", data.Name,
				data.MinRate, data.MaxFbRate)
		}
		if data.MaxFbRate > data.MaxRate {
			t.Errorf("%s: max fb %d above max %d", data.Name,
				data.MaxFbRate, data.MaxRate)
		}
	}
}

func TestPllRoundRateIdempotent(t *testing.T) {
	tree, _, _ := testTree(t)
	for _, rate := range []uint64{
		600000000,
		999999999,
		1000000000,
		1750000000,
		2399999999,
	} {
		once, err := tree.RoundRate("pllc", rate)
		if err != nil {
			t.Fatal(err)
		}
		twice, err := tree.RoundRate("pllc", once)
		if err != nil {
			t.Fatal(err)
		}
		if once != twice {
			t.Errorf("round %d: got %d then %d", rate, once, twice)
		}
	}
}

func TestPllSetRate(t *testing.T) {
	tree, mock, _ := testTree(t)
	mock.Writes()

	if err := tree.SetRate("pllc", 1000000000); err != nil {
		t.Fatal(err)
	}

	ndiv := mock.R(a2w_pllc_ctrl) & a2w_pll_ctrl_ndiv_mask
	if got, want := ndiv, uint32(52); got != want {
		t.Errorf("ndiv: got %d want %d", got, want)
	}
	pdiv := (mock.R(a2w_pllc_ctrl) & a2w_pll_ctrl_pdiv_mask) >>
		a2w_pll_ctrl_pdiv_shift
	if got, want := pdiv, uint32(1); got != want {
		t.Errorf("pdiv: got %d want %d", got, want)
	}

	// No pre-divide below the feedback limit.
	if mock.R(a2w_pllc_ana0+4)&(1<<anaDefault.FbPredivBit) != 0 {
		t.Error("fb prediv set below max fb rate")
	}

	rate, err := tree.Rate("pllc")
	if err != nil {
		t.Fatal(err)
	}
	// Equality within one fractional step of the request.
	const step = testOsc >> a2w_pll_frac_bits
	if rate < 1000000000-step-1 || rate > 1000000000 {
		t.Errorf("rate: got %d want about 1000000000", rate)
	}
}

func TestPllSetRateFbPrediv(t *testing.T) {
	tree, mock, _ := testTree(t)

	// Above max_fb_rate the target halves and the pre-divide engages.
	if err := tree.SetRate("pllc", 2500000000); err != nil {
		t.Fatal(err)
	}

	if mock.R(a2w_pllc_ana0+4)&(1<<anaDefault.FbPredivBit) == 0 {
		t.Error("fb prediv clear above max fb rate")
	}

	ndiv := mock.R(a2w_pllc_ctrl) & a2w_pll_ctrl_ndiv_mask
	if got, want := ndiv, uint32(65); got != want {
		t.Errorf("halved ndiv: got %d want %d", got, want)
	}

	rate, err := tree.Rate("pllc")
	if err != nil {
		t.Fatal(err)
	}
	// The doubled integer divider recovers the rate to within one
	// oscillator multiple.
	if rate < 2500000000-testOsc || rate > 2500000000 {
		t.Errorf("rate: got %d want about 2500000000", rate)
	}
}

func TestPllSetRateOutOfRange(t *testing.T) {
	tree, mock, _ := testTree(t)
	mock.Writes()

	err := tree.SetRate("plld", 100000000)
	if err == nil {
		t.Fatal("no error below min rate")
	}
	if _, ok := err.(*RangeError); !ok {
		t.Errorf("got %T want *RangeError", err)
	}
	if got := mock.Writes(); got != 0 {
		t.Errorf("%d register writes after failed set", got)
	}
}

func TestPllPrepare(t *testing.T) {
	tree, mock, _ := testTree(t)

	mock.W(cm_lock, cm_lock_flockc)
	if err := tree.Prepare("pllc"); err != nil {
		t.Fatal(err)
	}
	if mock.R(cm_pllc)&cm_pll_anarst != 0 {
		t.Error("anarst still set after prepare")
	}
}

func TestPllPrepareStall(t *testing.T) {
	mock := regio.NewMock()
	tree, err := New(Config{
		Osc:         testOsc,
		Cprman:      mock,
		WaitTimeout: time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Lock bit never comes good.
	err = tree.Prepare("pllc")
	if err == nil {
		t.Fatal("no error from unlocked pll")
	}
	if _, ok := err.(*StallError); !ok {
		t.Errorf("got %T want *StallError", err)
	}
}

func TestPllUnprepare(t *testing.T) {
	tree, mock, _ := testTree(t)

	if err := tree.Unprepare("pllc"); err != nil {
		t.Fatal(err)
	}
	if mock.R(cm_pllc)&cm_pll_anarst == 0 {
		t.Error("anarst clear after unprepare")
	}
	if mock.R(a2w_pllc_ctrl)&a2w_pll_ctrl_pwrdn == 0 {
		t.Error("pwrdn clear after unprepare")
	}
}
