package cpu

import "github.com/holomorph/go6502/bus"

// Addressing mode decoders. Each sets c.Address (and, for Accumulator,
// c.Target) and advances PC past whatever operand bytes the
// mode consumes. The generic load/store/rmw wrappers below call one of
// these and then decide whether to also read c.Target from c.Address and
// whether a page-crossing penalty applies.
//
// A function returns true if computing the effective address crossed a
// 256 byte page boundary relative to the pre-indexed base — only
// meaningful for Absolute,X / Absolute,Y / (Indirect),Y, and only charged
// against load-class instructions (spec.md §4.4); stores and
// read-modify-write instructions already bake the worst case into their
// fixed cycle count.

// addrAccumulator implements Accumulator mode: no memory access at all.
func (c *CPU) addrAccumulator() bool {
	c.Address = uint16(c.A)
	c.Target = uint16(c.A)
	return false
}

// addrImmediate implements Immediate mode - #i.
func (c *CPU) addrImmediate() bool {
	c.Address = c.PC
	c.PC++
	return false
}

// addrRelative implements Relative mode, used only by branches. The
// sign-extended offset is stored in c.Address.
func (c *CPU) addrRelative() {
	off := c.ram.Read(c.PC)
	c.PC++
	c.Address = uint16(int16(int8(off)))
}

// addrZeroPage implements Zero Page mode - d.
func (c *CPU) addrZeroPage() bool {
	c.Address = uint16(c.ram.Read(c.PC))
	c.PC++
	return false
}

// addrZeroPageIndexed implements Zero Page,X and Zero Page,Y - d,x / d,y.
// The addition wraps within the zero page (no carry into the high byte).
func (c *CPU) addrZeroPageIndexed(reg uint8) bool {
	base := c.ram.Read(c.PC)
	c.PC++
	c.Address = uint16(base + reg)
	return false
}

func (c *CPU) addrZeroPageX() bool { return c.addrZeroPageIndexed(c.X) }
func (c *CPU) addrZeroPageY() bool { return c.addrZeroPageIndexed(c.Y) }

// addrAbsolute implements Absolute mode - a.
func (c *CPU) addrAbsolute() bool {
	c.Address = bus.Read16(c.ram, c.PC)
	c.PC += 2
	return false
}

// addrAbsoluteIndexed implements Absolute,X and Absolute,Y - a,x / a,y.
// Reports whether adding reg crossed into a new page.
func (c *CPU) addrAbsoluteIndexed(reg uint8) bool {
	base := bus.Read16(c.ram, c.PC)
	c.PC += 2
	addr := base + uint16(reg)
	c.Address = addr
	return base&0xFF00 != addr&0xFF00
}

func (c *CPU) addrAbsoluteX() bool { return c.addrAbsoluteIndexed(c.X) }
func (c *CPU) addrAbsoluteY() bool { return c.addrAbsoluteIndexed(c.Y) }

// addrIndirect implements Indirect mode - (a), used only by JMP. It
// deliberately preserves the famous page-wrap bug: when the low byte of
// the pointer is $FF, the high byte of the target is read from the start
// of the *same* page rather than the next one.
func (c *CPU) addrIndirect() bool {
	ptr := bus.Read16(c.ram, c.PC)
	c.PC += 2
	lo := c.ram.Read(ptr)
	hi := c.ram.Read((ptr & 0xFF00) | ((ptr + 1) & 0x00FF))
	c.Address = uint16(hi)<<8 | uint16(lo)
	return false
}

// addrIndirectX implements (Indirect,X) mode - (d,x). The zero page pointer
// addition wraps within the zero page.
func (c *CPU) addrIndirectX() bool {
	zp := c.ram.Read(c.PC)
	c.PC++
	c.Address = bus.Read16ZP(c.ram, zp+c.X)
	return false
}

// addrIndirectY implements (Indirect),Y mode - (d),y. Reports whether
// adding Y to the base pointer crossed into a new page.
func (c *CPU) addrIndirectY() bool {
	zp := c.ram.Read(c.PC)
	c.PC++
	base := bus.Read16ZP(c.ram, zp)
	addr := base + uint16(c.Y)
	c.Address = addr
	return base&0xFF00 != addr&0xFF00
}

// addrFunc is the common shape shared by every addressing mode usable in a
// load/store/rmw instruction (i.e. every mode except Accumulator, which has
// no memory access and is handled by dedicated opcode functions). It is
// satisfied directly by the bound method values above (e.g. c.addrZeroPage),
// since a method value already closes over its receiver.
type addrFunc func() bool

// loadInstruction computes the effective address, reads the operand into
// c.Target, runs op, and returns the cycle penalty (0 or 1) for a crossed
// page — op is responsible for register/flag effects.
func (c *CPU) loadInstruction(addr addrFunc, op func(c *CPU)) uint8 {
	crossed := addr()
	c.Target = uint16(c.ram.Read(c.Address))
	op(c)
	if crossed {
		return 1
	}
	return 0
}

// storeInstruction computes the effective address and writes val to it.
// Stores never take a page-crossing penalty; the worst case is already
// baked into their fixed cycle count.
func (c *CPU) storeInstruction(addr addrFunc, val uint8) {
	_ = addr()
	c.ram.Write(c.Address, val)
}

// rmwInstruction computes the effective address, reads the operand into
// c.Target, runs op (which must return the new 8 bit value to write back
// and set any flags itself), and writes the result back to the same
// address. Like stores, RMW instructions never take a page-crossing
// penalty.
func (c *CPU) rmwInstruction(addr addrFunc, op func() uint8) {
	_ = addr()
	c.Target = uint16(c.ram.Read(c.Address))
	result := op()
	c.ram.Write(c.Address, result)
}
