// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cprman

// Static descriptor tables for the BCM2835. Immutable; the tree resolves
// parent names at assembly and never writes back here.

var anaDefault = PllAnaBits{
	Mask0: 0,
	Set0:  0,
	Mask1: ^uint32(7<<19 | 15<<15),
	Set1:  2<<19 | 8<<15,
	Mask3: ^uint32(7 << 7),
	Set3:  6 << 1,

	FbPredivBit: 14,
}

var anaPllh = PllAnaBits{
	Mask0: ^uint32(7<<19 | 3<<22),
	Set0:  2<<19 | 2<<22,
	Mask1: ^uint32(1<<0 | 15<<1),
	Set1:  6 << 1,
	Mask3: 0,
	Set3:  0,

	FbPredivBit: 11,
}

// PLLA is the auxiliary PLL, used to drive the CCP2 (Compact Camera Port 2)
// transmitter clock. It is in the PX LDO power domain, which is on when the
// AUDIO domain is on.
var pllaData = PllData{
	Name:                "plla",
	CmCtrlReg:           cm_plla,
	A2wCtrlReg:          a2w_plla_ctrl,
	FracReg:             a2w_plla_frac,
	AnaRegBase:          a2w_plla_ana0,
	ReferenceEnableMask: a2w_xosc_ctrl_plla_enable,
	LockMask:            cm_lock_flocka,
	Ana:                 &anaDefault,
	MinRate:             600000000,
	MaxRate:             2400000000,
	MaxFbRate:           1750000000,
}

// PLLB is used for the ARM's clock.
var pllbData = PllData{
	Name:                "pllb",
	CmCtrlReg:           cm_pllb,
	A2wCtrlReg:          a2w_pllb_ctrl,
	FracReg:             a2w_pllb_frac,
	AnaRegBase:          a2w_pllb_ana0,
	ReferenceEnableMask: a2w_xosc_ctrl_pllb_enable,
	LockMask:            cm_lock_flockb,
	Ana:                 &anaDefault,
	MinRate:             600000000,
	MaxRate:             3000000000,
	MaxFbRate:           1750000000,
}

// PLLC is the core PLL, used to drive the core VPU clock. It is in the PX
// LDO power domain, which is on when the AUDIO domain is on.
var pllcData = PllData{
	Name:                "pllc",
	CmCtrlReg:           cm_pllc,
	A2wCtrlReg:          a2w_pllc_ctrl,
	FracReg:             a2w_pllc_frac,
	AnaRegBase:          a2w_pllc_ana0,
	ReferenceEnableMask: a2w_xosc_ctrl_pllc_enable,
	LockMask:            cm_lock_flockc,
	Ana:                 &anaDefault,
	MinRate:             600000000,
	MaxRate:             3000000000,
	MaxFbRate:           1750000000,
}

// PLLD is the display PLL, used to drive DSI display panels. It is in the
// PX LDO power domain, which is on when the AUDIO domain is on.
var plldData = PllData{
	Name:                "plld",
	CmCtrlReg:           cm_plld,
	A2wCtrlReg:          a2w_plld_ctrl,
	FracReg:             a2w_plld_frac,
	AnaRegBase:          a2w_plld_ana0,
	ReferenceEnableMask: a2w_xosc_ctrl_ddr_enable,
	LockMask:            cm_lock_flockd,
	Ana:                 &anaDefault,
	MinRate:             600000000,
	MaxRate:             2400000000,
	MaxFbRate:           1750000000,
}

// PLLH is used to supply the pixel clock or the AUX clock for the TV
// encoder. It is in the HDMI power domain.
var pllhData = PllData{
	Name:                "pllh",
	CmCtrlReg:           cm_pllh,
	A2wCtrlReg:          a2w_pllh_ctrl,
	FracReg:             a2w_pllh_frac,
	AnaRegBase:          a2w_pllh_ana0,
	ReferenceEnableMask: a2w_xosc_ctrl_pllc_enable,
	LockMask:            cm_lock_flockh,
	Ana:                 &anaPllh,
	MinRate:             600000000,
	MaxRate:             3000000000,
	MaxFbRate:           1750000000,
}

var pllTable = []*PllData{
	&pllaData, &pllbData, &pllcData, &plldData, &pllhData,
}

var pllDividerTable = []*PllDividerData{
	{
		Name: "plla_core", SourcePll: &pllaData,
		CmReg: cm_plla, A2wReg: a2w_plla_core,
		LoadMask: cm_plla_loadcore, HoldMask: cm_plla_holdcore,
		FixedDivider: 1,
	},
	{
		Name: "plla_per", SourcePll: &pllaData,
		CmReg: cm_plla, A2wReg: a2w_plla_per,
		LoadMask: cm_plla_loadper, HoldMask: cm_plla_holdper,
		FixedDivider: 1,
	},
	{
		Name: "pllb_arm", SourcePll: &pllbData,
		CmReg: cm_pllb, A2wReg: a2w_pllb_arm,
		LoadMask: cm_pllb_loadarm, HoldMask: cm_pllb_holdarm,
		FixedDivider: 1,
	},
	{
		Name: "pllc_core0", SourcePll: &pllcData,
		CmReg: cm_pllc, A2wReg: a2w_pllc_core0,
		LoadMask: cm_pllc_loadcore0, HoldMask: cm_pllc_holdcore0,
		FixedDivider: 1,
	},
	{
		Name: "pllc_core1", SourcePll: &pllcData,
		CmReg: cm_pllc, A2wReg: a2w_pllc_core1,
		LoadMask: cm_pllc_loadcore1, HoldMask: cm_pllc_holdcore1,
		FixedDivider: 1,
	},
	{
		Name: "pllc_core2", SourcePll: &pllcData,
		CmReg: cm_pllc, A2wReg: a2w_pllc_core2,
		LoadMask: cm_pllc_loadcore2, HoldMask: cm_pllc_holdcore2,
		FixedDivider: 1,
	},
	{
		Name: "pllc_per", SourcePll: &pllcData,
		CmReg: cm_pllc, A2wReg: a2w_pllc_per,
		LoadMask: cm_pllc_loadper, HoldMask: cm_pllc_holdper,
		FixedDivider: 1,
	},
	{
		Name: "plld_core", SourcePll: &plldData,
		CmReg: cm_plld, A2wReg: a2w_plld_core,
		LoadMask: cm_plld_loadcore, HoldMask: cm_plld_holdcore,
		FixedDivider: 1,
	},
	{
		Name: "plld_per", SourcePll: &plldData,
		CmReg: cm_plld, A2wReg: a2w_plld_per,
		LoadMask: cm_plld_loadper, HoldMask: cm_plld_holdper,
		FixedDivider: 1,
	},
	{
		Name: "pllh_rcal", SourcePll: &pllhData,
		CmReg: cm_pllh, A2wReg: a2w_pllh_rcal,
		LoadMask:     cm_pllh_loadrcal,
		FixedDivider: 10,
	},
	{
		Name: "pllh_aux", SourcePll: &pllhData,
		CmReg: cm_pllh, A2wReg: a2w_pllh_aux,
		LoadMask:     cm_pllh_loadaux,
		FixedDivider: 10,
	},
	{
		Name: "pllh_pix", SourcePll: &pllhData,
		CmReg: cm_pllh, A2wReg: a2w_pllh_pix,
		LoadMask:     cm_pllh_loadpix,
		FixedDivider: 10,
	},
}

// Mux input lists in CM_SRC code order.
var perParents = []string{
	"gnd",
	"xosc",
	"testdebug0",
	"testdebug1",
	"plla_per",
	"pllc_per",
	"plld_per",
	"pllh_aux",
}

var vpuParents = []string{
	"gnd",
	"xosc",
	"testdebug0",
	"testdebug1",
	"plla_core",
	"pllc_core0",
	"plld_core",
	"pllh_aux",
	"pllc_core1",
	"pllc_core2",
}

var oscParents = []string{
	"gnd",
	"xosc",
	"testdebug0",
	"testdebug1",
}

var clockTable = []*ClockData{
	// A 1Mhz clock for the system clocksource, also used by the
	// watchdog timer and the camera pulse generator.
	{
		Name:    "timer",
		Parents: oscParents,
		CtlReg:  cm_timerctl, DivReg: cm_timerdiv,
		IntBits: 6, FracBits: 12,
	},
	// One Time Programmable Memory clock. Maximum 10Mhz.
	{
		Name:    "otp",
		Parents: oscParents,
		CtlReg:  cm_otpctl, DivReg: cm_otpdiv,
		IntBits: 4, FracBits: 0,
	},
	// Clock for the temperature sensor. Generally run at 2Mhz, max
	// 5Mhz.
	{
		Name:    "tsens",
		Parents: oscParents,
		CtlReg:  cm_tsensctl, DivReg: cm_tsensdiv,
		IntBits: 5, FracBits: 0,
	},
	// VPU clock. Non-stop since it drives the bus for everything else,
	// and special so it doesn't need to be gated for rate changes.
	// Also known as "clk_audio" in various hardware documentation.
	{
		Name:    "vpu",
		Parents: vpuParents,
		CtlReg:  cm_vpuctl, DivReg: cm_vpudiv,
		IntBits: 12, FracBits: 8,
		Nonstop: true,
	},
	{
		Name:    "v3d",
		Parents: vpuParents,
		CtlReg:  cm_v3dctl, DivReg: cm_v3ddiv,
		IntBits: 4, FracBits: 8,
	},
	{
		Name:    "isp",
		Parents: vpuParents,
		CtlReg:  cm_ispctl, DivReg: cm_ispdiv,
		IntBits: 4, FracBits: 8,
	},
	{
		Name:    "h264",
		Parents: vpuParents,
		CtlReg:  cm_h264ctl, DivReg: cm_h264div,
		IntBits: 4, FracBits: 8,
	},
	// Secondary SDRAM clock, for low-voltage modes when the PLL in the
	// SDRAM controller can't be used.
	{
		Name:    "sdram",
		Parents: vpuParents,
		CtlReg:  cm_sdcctl, DivReg: cm_sdcdiv,
		IntBits: 6, FracBits: 0,
	},
	{
		Name:    "uart",
		Parents: perParents,
		CtlReg:  cm_uartctl, DivReg: cm_uartdiv,
		IntBits: 10, FracBits: 12,
	},
	// TV encoder clock. Only operating frequency is 108Mhz.
	{
		Name:    "vec",
		Parents: perParents,
		CtlReg:  cm_vecctl, DivReg: cm_vecdiv,
		IntBits: 4, FracBits: 0,
	},
	// HDMI state machine.
	{
		Name:    "hsm",
		Parents: perParents,
		CtlReg:  cm_hsmctl, DivReg: cm_hsmdiv,
		IntBits: 4, FracBits: 8,
	},
	// Arasan EMMC clock.
	{
		Name:    "emmc",
		Parents: perParents,
		CtlReg:  cm_emmcctl, DivReg: cm_emmcdiv,
		IntBits: 4, FracBits: 8,
	},
}

// CM_PERIICTL is an individual gate off the non-stop vpu clock. (CM_PERIACTL,
// CM_SYSCTL and CM_VPUCTL are too, given the debug bit in the power manager,
// which we don't bother exposing.)
var periImageGateData = GateData{
	Name:   "peri_image",
	Parent: "vpu",
	Reg:    cm_periictl,
	Bit:    cm_gate_bit,
}

// Aux block gates; the hardware runs these straight off the VPU core clock.
var auxGateTable = []*GateData{
	{Name: "aux_uart", Parent: "vpu", Reg: aux_enables, Bit: aux_enables_uart},
	{Name: "aux_spi1", Parent: "vpu", Reg: aux_enables, Bit: aux_enables_spi1},
	{Name: "aux_spi2", Parent: "vpu", Reg: aux_enables, Bit: aux_enables_spi2},
}
