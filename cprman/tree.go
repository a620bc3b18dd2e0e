// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package cprman

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/platinasystems/cprman/regio"
)

// Node is the surface every clock in the tree presents: the oscillator,
// the PLLs, their channel dividers, the generic clock generators, and the
// gates. Rates flow parent to child; each node computes its own from the
// parent rate handed to it.
type Node interface {
	IsEnabled() bool
	GetRate(parentRate uint64) uint64
	RoundRate(rate, parentRate uint64) uint64
	SetRate(rate, parentRate uint64) error
	Prepare() error
	Unprepare()
}

type Config struct {
	// Crystal oscillator rate in Hz, 19.2Mhz on all Raspberry Pis.
	Osc uint64
	// Oscillator node name; default "xosc". Mux parent lists naming
	// "xosc" resolve to this at assembly.
	OscName string

	Cprman regio.Io
	// Aux block mapping; the aux gates are omitted when nil.
	Aux regio.Io

	// Zero spins forever on hardware handshake bits, like the source
	// hardware contract. Nonzero bounds the waits with StallError.
	WaitTimeout time.Duration
}

type node struct {
	Node
	// Candidate parent names; index is the CM_SRC code for muxed
	// clocks. Empty for roots.
	parents []string
	// Set when the active parent comes from the clock's mux field.
	mux *Clock
}

// Tree is the assembled clock graph. The mutex serializes rate-change
// transactions across the whole tree; the node-level paths rely on that.
type Tree struct {
	mutex sync.Mutex
	regs  *Regs
	nodes map[string]*node
	names []string
}

func New(cfg Config) (*Tree, error) {
	if cfg.Cprman == nil {
		return nil, fmt.Errorf("cprman: no register block")
	}
	if cfg.Osc == 0 {
		return nil, fmt.Errorf("cprman: no oscillator rate")
	}
	oscName := cfg.OscName
	if oscName == "" {
		oscName = "xosc"
	}

	t := &Tree{
		regs:  NewRegs(cfg.Cprman),
		nodes: make(map[string]*node),
	}
	t.regs.waitTimeout = cfg.WaitTimeout

	t.add(oscName, &Fixed{name: oscName, rate: cfg.Osc})
	t.add("gnd", &Fixed{name: "gnd"})
	t.add("testdebug0", &Fixed{name: "testdebug0"})
	t.add("testdebug1", &Fixed{name: "testdebug1"})

	// All of the PLLs derive from the external oscillator.
	for _, data := range pllTable {
		t.add(data.Name, &Pll{regs: t.regs, data: data}, oscName)
	}

	// PLLH's channels have a fixed divide by 10 afterwards, which is
	// what our consumers are actually using; the configurable divider
	// keeps the name with a _prediv suffix.
	for _, data := range pllDividerTable {
		if data.FixedDivider != 1 {
			prediv := data.Name + "_prediv"
			t.add(prediv,
				&PllDivider{regs: t.regs, data: data},
				data.SourcePll.Name)
			t.add(data.Name, &fixedFactor{
				name: data.Name,
				div:  uint64(data.FixedDivider),
			}, prediv)
		} else {
			t.add(data.Name,
				&PllDivider{regs: t.regs, data: data},
				data.SourcePll.Name)
		}
	}

	for _, data := range clockTable {
		// Resolve "xosc" references to the actual oscillator name,
		// in a copy; the table stays immutable.
		parents := make([]string, len(data.Parents))
		for i, p := range data.Parents {
			if p == "xosc" {
				p = oscName
			}
			parents[i] = p
		}
		c := &Clock{regs: t.regs, data: data}
		n := t.add(data.Name, c, parents...)
		if len(parents) > 1 {
			n.mux = c
		}
	}

	t.add(periImageGateData.Name, &Gate{
		regs:   t.regs,
		io:     cfg.Cprman,
		passwd: true,
		data:   &periImageGateData,
	}, periImageGateData.Parent)

	if cfg.Aux != nil {
		for _, data := range auxGateTable {
			t.add(data.Name,
				&Gate{regs: t.regs, io: cfg.Aux, data: data},
				data.Parent)
		}
	}

	if err := t.resolve(); err != nil {
		return nil, err
	}

	t.names = make([]string, 0, len(t.nodes))
	for name := range t.nodes {
		t.names = append(t.names, name)
	}
	sort.Strings(t.names)

	return t, nil
}

func (t *Tree) add(name string, nd Node, parents ...string) *node {
	n := &node{Node: nd, parents: parents}
	t.nodes[name] = n
	return n
}

// resolve verifies every parent reference names a node in the tree. The
// static tables make a failure here table corruption, not runtime state.
func (t *Tree) resolve() error {
	for name, n := range t.nodes {
		for _, p := range n.parents {
			if _, found := t.nodes[p]; !found {
				return &ResolutionError{Clock: name, Parent: p}
			}
		}
	}
	return nil
}

// Names returns all clock names, sorted.
func (t *Tree) Names() []string { return t.names }

func (t *Tree) lookup(name string) (*node, error) {
	n, found := t.nodes[name]
	if !found {
		return nil, fmt.Errorf("%s: no such clock", name)
	}
	return n, nil
}

// Parent returns the active parent name: the mux selection for muxed
// clocks, the fixed parent otherwise, empty for roots. A mux field
// pointing outside the wired inputs yields empty.
func (t *Tree) Parent(name string) (string, error) {
	n, err := t.lookup(name)
	if err != nil {
		return "", err
	}
	return t.activeParent(n), nil
}

func (t *Tree) activeParent(n *node) string {
	if len(n.parents) == 0 {
		return ""
	}
	if n.mux != nil {
		if idx := n.mux.Parent(); idx < len(n.parents) {
			return n.parents[idx]
		}
		return ""
	}
	return n.parents[0]
}

// SetParent switches a muxed clock to the named input. Parent selection
// and rate are distinct operations; re-setting the rate afterwards is the
// caller's job.
func (t *Tree) SetParent(name, parent string) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	n, err := t.lookup(name)
	if err != nil {
		return err
	}
	if n.mux == nil {
		return fmt.Errorf("%s: no mux", name)
	}
	for i, p := range n.parents {
		if p == parent {
			return n.mux.SetParent(i)
		}
	}
	return fmt.Errorf("%s: %s is not a mux input", name, parent)
}

// ParentRate computes the effective rate feeding the named clock by
// walking parent edges to the root.
func (t *Tree) ParentRate(name string) (uint64, error) {
	n, err := t.lookup(name)
	if err != nil {
		return 0, err
	}
	return t.parentRate(n), nil
}

func (t *Tree) parentRate(n *node) uint64 {
	parent := t.activeParent(n)
	if parent == "" {
		return 0
	}
	pn := t.nodes[parent]
	return pn.GetRate(t.parentRate(pn))
}

// Rate returns the clock's current rate.
func (t *Tree) Rate(name string) (uint64, error) {
	n, err := t.lookup(name)
	if err != nil {
		return 0, err
	}
	return n.GetRate(t.parentRate(n)), nil
}

// RoundRate returns the rate the clock would actually produce for a
// request, given current parent rates.
func (t *Tree) RoundRate(name string, rate uint64) (uint64, error) {
	n, err := t.lookup(name)
	if err != nil {
		return 0, err
	}
	return n.RoundRate(rate, t.parentRate(n)), nil
}

// SetRate programs the clock for the requested rate given its current
// parent rate. One transaction at a time across the tree; rate changes do
// not cascade to descendants here, that orchestration belongs to the
// caller.
func (t *Tree) SetRate(name string, rate uint64) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	n, err := t.lookup(name)
	if err != nil {
		return err
	}
	return n.SetRate(rate, t.parentRate(n))
}

func (t *Tree) IsEnabled(name string) (bool, error) {
	n, err := t.lookup(name)
	if err != nil {
		return false, err
	}
	return n.IsEnabled(), nil
}

func (t *Tree) Prepare(name string) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	n, err := t.lookup(name)
	if err != nil {
		return err
	}
	return n.Prepare()
}

func (t *Tree) Unprepare(name string) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()
	n, err := t.lookup(name)
	if err != nil {
		return err
	}
	n.Unprepare()
	return nil
}
