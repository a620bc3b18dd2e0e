// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package regio

import "testing"

func TestMock(t *testing.T) {
	m := NewMock()

	if got := m.R(0x100); got != 0 {
		t.Errorf("unwritten register: got %#x want 0", got)
	}

	m.W(0x100, 0x5a000010)
	m.W(0x104, 0xffffffff)
	if got, want := m.R(0x100), uint32(0x5a000010); got != want {
		t.Errorf("got %#x want %#x", got, want)
	}
	if got, want := m.R(0x104), uint32(0xffffffff); got != want {
		t.Errorf("got %#x want %#x", got, want)
	}

	if got := m.Writes(); got != 2 {
		t.Errorf("got %d writes, want 2", got)
	}
	// The counter resets on read.
	if got := m.Writes(); got != 0 {
		t.Errorf("got %d writes after reset, want 0", got)
	}
}
