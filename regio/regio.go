// Copyright © 2015-2016 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

// Package regio provides 32-bit register access to a memory mapped device
// block, either through /dev/mem on real hardware or through an in-memory
// word file for tests.
package regio

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"syscall"
	"unsafe"
)

// Io reads and writes 32-bit little-endian registers at byte offsets into a
// single device block.
type Io interface {
	R(reg uint32) uint32
	W(reg, val uint32)
}

// Mmap is an Io over a /dev/mem mapping of the device block.
type Mmap struct {
	f    *os.File
	mem  []byte
	size uint32
}

func Open(base uint64, size uint32) (*Mmap, error) {
	f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, err
	}
	mem, err := syscall.Mmap(int(f.Fd()), int64(base), int(size),
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap %#x: %v", base, err)
	}
	return &Mmap{f: f, mem: mem, size: size}, nil
}

func (m *Mmap) Close() error {
	err := syscall.Munmap(m.mem)
	if e := m.f.Close(); err == nil {
		err = e
	}
	return err
}

func (m *Mmap) R(reg uint32) uint32 {
	return atomic.LoadUint32(m.word(reg))
}

func (m *Mmap) W(reg, val uint32) {
	atomic.StoreUint32(m.word(reg), val)
}

func (m *Mmap) word(reg uint32) *uint32 {
	if reg&3 != 0 || reg >= m.size {
		panic(fmt.Sprintf("regio: bad register %#x", reg))
	}
	return (*uint32)(unsafe.Pointer(&m.mem[reg]))
}

// Mock is an Io over a plain word map, for tests and dry runs. Unwritten
// registers read as zero. The write counter lets tests assert that failed
// operations touched no registers.
type Mock struct {
	mutex  sync.Mutex
	words  map[uint32]uint32
	writes int
}

func NewMock() *Mock {
	return &Mock{words: make(map[uint32]uint32)}
}

func (m *Mock) R(reg uint32) uint32 {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.words[reg]
}

func (m *Mock) W(reg, val uint32) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.words[reg] = val
	m.writes++
}

// Writes returns the number of writes since the last call.
func (m *Mock) Writes() (n int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	n = m.writes
	m.writes = 0
	return
}
