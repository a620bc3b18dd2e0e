// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cprman

// The CPRMAN block lives at 0x7e101000 on the VPU bus, 0x20101000 physical
// on the BCM2835 and 0x3f101000 on the BCM2836. Every CM_* write must carry
// the password in the top byte or the hardware discards it.
const (
	DefaultBase = 0x20101000
	BlockSize   = 0x2000

	password = 0x5a000000
)

// Clock manager control/divider register pairs.
const (
	cm_gnricctl = 0x000
	cm_gnricdiv = 0x004
	cm_vpuctl   = 0x008
	cm_vpudiv   = 0x00c
	cm_sysctl   = 0x010
	cm_sysdiv   = 0x014
	cm_periactl = 0x018
	cm_periadiv = 0x01c
	cm_periictl = 0x020
	cm_periidiv = 0x024
	cm_h264ctl  = 0x028
	cm_h264div  = 0x02c
	cm_ispctl   = 0x030
	cm_ispdiv   = 0x034
	cm_v3dctl   = 0x038
	cm_v3ddiv   = 0x03c
	cm_cam0ctl  = 0x040
	cm_cam0div  = 0x044
	cm_cam1ctl  = 0x048
	cm_cam1div  = 0x04c
	cm_ccp2ctl  = 0x050
	cm_ccp2div  = 0x054
	cm_dsi0ectl = 0x058
	cm_dsi0ediv = 0x05c
	cm_dsi0pctl = 0x060
	cm_dsi0pdiv = 0x064
	cm_dpictl   = 0x068
	cm_dpidiv   = 0x06c
	cm_gp0ctl   = 0x070
	cm_gp0div   = 0x074
	cm_gp1ctl   = 0x078
	cm_gp1div   = 0x07c
	cm_gp2ctl   = 0x080
	cm_gp2div   = 0x084
	cm_hsmctl   = 0x088
	cm_hsmdiv   = 0x08c
	cm_otpctl   = 0x090
	cm_otpdiv   = 0x094
	cm_pwmctl   = 0x0a0
	cm_pwmdiv   = 0x0a4
	cm_smictl   = 0x0b0
	cm_smidiv   = 0x0b4
	cm_tsensctl = 0x0e0
	cm_tsensdiv = 0x0e4
	cm_timerctl = 0x0e8
	cm_timerdiv = 0x0ec
	cm_uartctl  = 0x0f0
	cm_uartdiv  = 0x0f4
	cm_vecctl   = 0x0f8
	cm_vecdiv   = 0x0fc
	cm_pulsectl = 0x190
	cm_pulsediv = 0x194
	cm_sdcctl   = 0x1a8
	cm_sdcdiv   = 0x1ac
	cm_armctl   = 0x1b0
	cm_emmcctl  = 0x1c0
	cm_emmcdiv  = 0x1c4
)

// Bits common to the CM_*CTL registers.
const (
	cm_enable    = 1 << 4
	cm_kill      = 1 << 5
	cm_gate_bit  = 6
	cm_gate      = 1 << cm_gate_bit
	cm_busy      = 1 << 7
	cm_busyd     = 1 << 8
	cm_src_shift = 0
	cm_src_bits  = 4
	cm_src_mask  = 0xf
)

// The divider in CM_*DIV is a 12.12 fixed point field. Only some of the
// bits are wired for any given clock.
const cm_div_frac_bits = 12

const cm_osccount = 0x100

// Per PLL load/hold control, plus the analog reset bit.
const (
	cm_plla = 0x104
	cm_pllc = 0x108
	cm_plld = 0x10c
	cm_pllh = 0x110
	cm_pllb = 0x170

	cm_pll_anarst = 1 << 8

	cm_plla_holdper  = 1 << 7
	cm_plla_loadper  = 1 << 6
	cm_plla_holdcore = 1 << 5
	cm_plla_loadcore = 1 << 4
	cm_plla_holdccp2 = 1 << 3
	cm_plla_loadccp2 = 1 << 2
	cm_plla_holddsi0 = 1 << 1
	cm_plla_loaddsi0 = 1 << 0

	cm_pllc_holdper   = 1 << 7
	cm_pllc_loadper   = 1 << 6
	cm_pllc_holdcore2 = 1 << 5
	cm_pllc_loadcore2 = 1 << 4
	cm_pllc_holdcore1 = 1 << 3
	cm_pllc_loadcore1 = 1 << 2
	cm_pllc_holdcore0 = 1 << 1
	cm_pllc_loadcore0 = 1 << 0

	cm_plld_holdper  = 1 << 7
	cm_plld_loadper  = 1 << 6
	cm_plld_holdcore = 1 << 5
	cm_plld_loadcore = 1 << 4
	cm_plld_holddsi1 = 1 << 3
	cm_plld_loaddsi1 = 1 << 2
	cm_plld_holddsi0 = 1 << 1
	cm_plld_loaddsi0 = 1 << 0

	cm_pllh_loadrcal = 1 << 2
	cm_pllh_loadaux  = 1 << 1
	cm_pllh_loadpix  = 1 << 0

	cm_pllb_holdarm = 1 << 1
	cm_pllb_loadarm = 1 << 0
)

const (
	cm_lock = 0x114

	cm_lock_flockh = 1 << 12
	cm_lock_flockd = 1 << 11
	cm_lock_flockc = 1 << 10
	cm_lock_flockb = 1 << 9
	cm_lock_flocka = 1 << 8
)

const cm_event = 0x118

// A2W PLL control registers.
const (
	a2w_plla_ctrl = 0x1100
	a2w_pllc_ctrl = 0x1120
	a2w_plld_ctrl = 0x1140
	a2w_pllh_ctrl = 0x1160
	a2w_pllb_ctrl = 0x11e0

	a2w_pll_ctrl_prst_disable = 1 << 17
	a2w_pll_ctrl_pwrdn        = 1 << 16
	a2w_pll_ctrl_pdiv_mask    = 0x000007000
	a2w_pll_ctrl_pdiv_shift   = 12
	a2w_pll_ctrl_ndiv_mask    = 0x0000003ff
	a2w_pll_ctrl_ndiv_shift   = 0
)

// Analog control, four consecutive registers per PLL.
const (
	a2w_plla_ana0 = 0x1010
	a2w_pllc_ana0 = 0x1030
	a2w_plld_ana0 = 0x1050
	a2w_pllh_ana0 = 0x1070
	a2w_pllb_ana0 = 0x10f0
)

// Crystal oscillator control. PLL reference inputs are gated here.
const (
	a2w_xosc_ctrl = 0x1190

	a2w_xosc_ctrl_pllb_enable = 1 << 7
	a2w_xosc_ctrl_plla_enable = 1 << 6
	a2w_xosc_ctrl_plld_enable = 1 << 5
	a2w_xosc_ctrl_ddr_enable  = 1 << 4
	a2w_xosc_ctrl_cpr1_enable = 1 << 3
	a2w_xosc_ctrl_usb_enable  = 1 << 2
	a2w_xosc_ctrl_hdmi_enable = 1 << 1
	a2w_xosc_ctrl_pllc_enable = 1 << 0
)

// PLL fractional divider registers, 20 bit field.
const (
	a2w_plla_frac = 0x1200
	a2w_pllc_frac = 0x1220
	a2w_plld_frac = 0x1240
	a2w_pllh_frac = 0x1260
	a2w_pllb_frac = 0x12e0

	a2w_pll_frac_bits = 20
	a2w_pll_frac_mask = 1<<a2w_pll_frac_bits - 1
)

// PLL channel divider registers, 8 bit field plus a disable bit.
const (
	a2w_pll_channel_disable = 1 << 8
	a2w_pll_div_bits        = 8
	a2w_pll_div_shift       = 0
	a2w_pll_div_mask        = 1<<a2w_pll_div_bits - 1

	a2w_plla_dsi0 = 0x1300
	a2w_plla_core = 0x1400
	a2w_plla_per  = 0x1500
	a2w_plla_ccp2 = 0x1600

	a2w_pllc_core2 = 0x1320
	a2w_pllc_core1 = 0x1420
	a2w_pllc_per   = 0x1520
	a2w_pllc_core0 = 0x1620

	a2w_plld_dsi0 = 0x1340
	a2w_plld_core = 0x1440
	a2w_plld_per  = 0x1540
	a2w_plld_dsi1 = 0x1640

	a2w_pllh_aux  = 0x1360
	a2w_pllh_rcal = 0x1460
	a2w_pllh_pix  = 0x1560
	a2w_pllh_sts  = 0x1660

	a2w_pllb_arm = 0x13e0
	a2w_pllb_sp0 = 0x14e0
	a2w_pllb_sp1 = 0x15e0
	a2w_pllb_sp2 = 0x16e0
)

// The aux block (0x7e215000) has its own enable register for the mini UART
// and the two auxiliary SPI masters. No password on this block.
const (
	AuxDefaultBase = 0x20215000
	AuxBlockSize   = 0x8

	aux_enables = 0x04

	aux_enables_uart = 0
	aux_enables_spi1 = 1
	aux_enables_spi2 = 2
)
