// Package memory provides concrete bus.Bus implementations for a 6502
// family address space: a flat 64 KiB RAM, a mirrored/masked bank for
// hosts whose physical RAM is smaller than their address decode implies,
// and a 6510-style I/O port latch overlaying the zero page.
package memory

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/holomorph/go6502/bus"
	"github.com/holomorph/go6502/io"
)

// RAM implements bus.Bus as a flat, fully addressable 64 KiB array.
type RAM struct {
	mem [65536]uint8
}

// NewRAM returns a freshly power-on-randomized 64 KiB RAM bank.
func NewRAM() *RAM {
	r := &RAM{}
	r.PowerOn()
	return r
}

// Read implements bus.Bus.
func (r *RAM) Read(addr uint16) uint8 {
	return r.mem[addr]
}

// Write implements bus.Bus.
func (r *RAM) Write(addr uint16, val uint8) {
	r.mem[addr] = val
}

// PowerOn randomizes the contents of RAM, matching the undefined power-on
// state of real silicon. Conformance tests that require deterministic
// memory should use Load immediately after PowerOn.
func (r *RAM) PowerOn() {
	rand.Seed(time.Now().UnixNano())
	for i := range r.mem {
		r.mem[i] = uint8(rand.Intn(256))
	}
}

// Load copies data into RAM starting at addr, wrapping at the 64 KiB
// boundary. Intended for host test harnesses loading a raw binary image,
// not for use by the CPU core itself.
func (r *RAM) Load(addr uint16, data []uint8) {
	for _, b := range data {
		r.mem[addr] = b
		addr++
	}
}

// Mirrored wraps a 64 KiB backing RAM and masks every address into a
// window of 2^n bytes (n <= 16) before delegating, modeling a host whose
// physical RAM is aliased across a larger decoded range — e.g. the NES's
// 2 KiB of internal RAM mirrored four times across $0000-$1FFF.
type Mirrored struct {
	backing *RAM
	mask    uint16
}

// NewMirrored creates a Mirrored bank of the given size in bytes, which
// must be a power of two no larger than 65536.
func NewMirrored(size int) (*Mirrored, error) {
	if size <= 0 || size > 1<<16 || size&(size-1) != 0 {
		return nil, fmt.Errorf("invalid mirrored size %d: must be a power of 2 up to 65536", size)
	}
	return &Mirrored{
		backing: NewRAM(),
		mask:    uint16(size - 1),
	}, nil
}

// Read implements bus.Bus, masking addr into the backing window.
func (m *Mirrored) Read(addr uint16) uint8 {
	return m.backing.Read(addr & m.mask)
}

// Write implements bus.Bus, masking addr into the backing window.
func (m *Mirrored) Write(addr uint16, val uint8) {
	m.backing.Write(addr&m.mask, val)
}

// PowerOn randomizes the backing RAM.
func (m *Mirrored) PowerOn() {
	m.backing.PowerOn()
}

// Port6510 overlays the 6510's I/O direction/data latch at $0000/$0001 on
// top of an otherwise ordinary 64 KiB RAM bank, matching the address decode
// quirk of the 6510 variant used by the Commodore 64 and similar hosts.
// Direction bits set to output (1) make the corresponding data register
// ($0001) bit reflect what was last written rather than the attached
// io.Port8 input.
type Port6510 struct {
	ram       *RAM
	direction uint8
	data      uint8
	input     io.Port8
}

// NewPort6510 creates a 6510 memory bank. input may be nil if no I/O
// device is attached, in which case input bits simply read as zero.
func NewPort6510(input io.Port8) *Port6510 {
	return &Port6510{
		ram:   NewRAM(),
		input: input,
	}
}

// Read implements bus.Bus.
func (p *Port6510) Read(addr uint16) uint8 {
	switch addr {
	case 0x0000:
		return p.direction
	case 0x0001:
		var in uint8
		if p.input != nil {
			in = p.input.Input()
		}
		// Output bits reflect the latched data register; input bits
		// reflect the attached device.
		return (p.data & p.direction) | (in &^ p.direction)
	}
	return p.ram.Read(addr)
}

// Write implements bus.Bus.
func (p *Port6510) Write(addr uint16, val uint8) {
	switch addr {
	case 0x0000:
		p.direction = val
	case 0x0001:
		p.data = val
	default:
		p.ram.Write(addr, val)
	}
}

// PowerOn randomizes backing RAM and resets the port latch to input mode.
func (p *Port6510) PowerOn() {
	p.ram.PowerOn()
	p.direction = 0x00
	p.data = 0x00
}

var _ bus.Bus = (*RAM)(nil)
var _ bus.Bus = (*Mirrored)(nil)
var _ bus.Bus = (*Port6510)(nil)
