package cpu

import "github.com/holomorph/go6502/bus"

// This file implements opcode semantics: the per-operation effects on
// registers, flags, and memory once an addressing mode has resolved
// c.Address/c.Target. Notation follows spec.md §4.5: T is a 16 bit
// intermediate wide enough to preserve carry/overflow above bit 7.

// loadRegister stores val into reg and sets N/Z from the new value.
func (c *CPU) loadRegister(reg *uint8, val uint8) {
	*reg = val
	c.setZN(*reg)
}

// iADC implements ADC, including decimal mode when enabled and supported
// by this CPU variant. In binary mode SBC delegates here with Target
// ones-complemented; decimal mode SBC has its own path in iSBC.
func (c *CPU) iADC() {
	val := uint8(c.Target)
	carry := c.P & FlagCarry

	if c.P&FlagDecimal != 0 && c.cpuType != NMOSRicoh {
		aL := (c.A & 0x0F) + (val & 0x0F) + carry
		if aL >= 0x0A {
			aL = ((aL + 0x06) & 0x0F) + 0x10
		}
		sum := uint16(c.A&0xF0) + uint16(val&0xF0) + uint16(aL)
		if sum >= 0xA0 {
			sum += 0x60
		}
		seq := (c.A & 0xF0) + (val & 0xF0) + aL
		bin := c.A + val + carry
		c.overflowCheck(c.A, val, seq)
		c.carryCheck(sum)
		c.negativeCheck(uint16(seq))
		c.zeroCheck(uint16(bin))
		c.A = uint8(sum & 0xFF)
		return
	}

	sum := uint16(c.A) + uint16(val) + uint16(carry)
	c.overflowCheck(c.A, val, uint8(sum))
	c.carryCheck(sum)
	c.loadRegister(&c.A, uint8(sum))
}

// iSBC implements SBC, including decimal mode when enabled and supported.
func (c *CPU) iSBC() {
	val := uint8(c.Target)
	if c.P&FlagDecimal != 0 && c.cpuType != NMOSRicoh {
		carry := c.P & FlagCarry
		aL := int8(c.A&0x0F) - int8(val&0x0F) + int8(carry) - 1
		if aL < 0 {
			aL = ((aL - 0x06) & 0x0F) - 0x10
		}
		sum := int16(c.A&0xF0) - int16(val&0xF0) + int16(aL)
		if sum < 0 {
			sum -= 0x60
		}
		res := uint8(sum & 0xFF)

		bin := c.A + ^val + carry
		c.overflowCheck(c.A, ^val, bin)
		c.negativeCheck(uint16(bin))
		c.carryCheck(uint16(c.A) + uint16(^val) + uint16(carry))
		c.zeroCheck(uint16(bin))
		c.A = res
		return
	}
	c.Target = uint16(^val) & 0xFF
	c.iADC()
}

// iAND, iORA, iEOR implement the three logical operations against A.
func (c *CPU) iAND() { c.loadRegister(&c.A, c.A&uint8(c.Target)) }
func (c *CPU) iORA() { c.loadRegister(&c.A, c.A|uint8(c.Target)) }
func (c *CPU) iEOR() { c.loadRegister(&c.A, c.A^uint8(c.Target)) }

// iBIT tests A against Target without modifying A: Z from the AND result,
// N and V copied directly from bits 7 and 6 of Target.
func (c *CPU) iBIT() {
	val := uint8(c.Target)
	c.zeroCheck(uint16(c.A & val))
	c.negativeCheck(uint16(val))
	c.setFlag(FlagOverflow, val&FlagOverflow != 0)
}

// shift/rotate core used by both the Accumulator and memory forms.
func (c *CPU) doASL(val uint8) uint8 {
	c.carryCheck(uint16(val) << 1)
	res := val << 1
	c.setZN(res)
	return res
}

func (c *CPU) doLSR(val uint8) uint8 {
	c.setFlag(FlagCarry, val&0x01 != 0)
	res := val >> 1
	c.setZN(res)
	c.P &^= FlagNegative // LSR always clears N since bit 7 of the result is always 0.
	return res
}

func (c *CPU) doROL(val uint8) uint8 {
	carryIn := c.P & FlagCarry
	c.carryCheck(uint16(val) << 1)
	res := (val << 1) | carryIn
	c.setZN(res)
	return res
}

func (c *CPU) doROR(val uint8) uint8 {
	carryIn := c.P & FlagCarry
	newCarry := val&0x01 != 0
	res := (val >> 1) | (carryIn << 7)
	c.setFlag(FlagCarry, newCarry)
	c.setZN(res)
	return res
}

func (c *CPU) iASL() uint8 { return c.doASL(uint8(c.Target)) }
func (c *CPU) iLSR() uint8 { return c.doLSR(uint8(c.Target)) }
func (c *CPU) iROL() uint8 { return c.doROL(uint8(c.Target)) }
func (c *CPU) iROR() uint8 { return c.doROR(uint8(c.Target)) }

func (c *CPU) iASLAcc() { c.loadRegister(&c.A, c.doASL(c.A)) }
func (c *CPU) iLSRAcc() { c.loadRegister(&c.A, c.doLSR(c.A)) }
func (c *CPU) iROLAcc() { c.loadRegister(&c.A, c.doROL(c.A)) }
func (c *CPU) iRORAcc() { c.loadRegister(&c.A, c.doROR(c.A)) }

// compare implements the shared CMP/CPX/CPY logic: C is set if reg >= val,
// Z/N come from the subtraction reg-val.
func (c *CPU) compare(reg, val uint8) {
	diff := uint16(reg) + uint16(^val) + 1
	c.setZN(reg - val)
	c.carryCheck(diff)
}

func (c *CPU) compareA() { c.compare(c.A, uint8(c.Target)) }
func (c *CPU) compareX() { c.compare(c.X, uint8(c.Target)) }
func (c *CPU) compareY() { c.compare(c.Y, uint8(c.Target)) }

// iINC, iDEC implement memory increment/decrement.
func (c *CPU) iINC() uint8 {
	res := uint8(c.Target) + 1
	c.setZN(res)
	return res
}

func (c *CPU) iDEC() uint8 {
	res := uint8(c.Target) - 1
	c.setZN(res)
	return res
}

// iBRK implements BRK: PC advances past the signature byte, PC and P (with
// B set) are pushed, I is set, and PC loads from the IRQ/BRK vector.
func (c *CPU) iBRK() {
	c.PC++
	c.pushWord(c.PC)
	c.pushByte(c.P | FlagUnused | FlagBreak)
	c.P |= FlagInterrupt
	if c.cpuType == CMOS {
		c.P &^= FlagDecimal
	}
	c.PC = bus.Read16(c.ram, IRQVector)
}

// iRTI implements RTI: pull P (forcing U, clearing B) then pull PC, and
// clear whichever interrupt level was in service (NMI takes precedence so
// that a simultaneous NMI+IRQ in-service state resolves in the correct
// order on return).
func (c *CPU) iRTI() {
	c.P = c.pullByte()
	c.P |= FlagUnused
	c.P &^= FlagBreak
	c.PC = c.pullWord()
	switch {
	case c.InServiceInterrupts&pendingNMI != 0:
		c.InServiceInterrupts &^= pendingNMI
	case c.InServiceInterrupts&pendingIRQ != 0:
		c.InServiceInterrupts &^= pendingIRQ
	}
}

// iJMP implements JMP: absolute or indirect, both resolved into c.Address
// by the addressing mode already.
func (c *CPU) iJMP() { c.PC = c.Address }

// iJSR implements JSR: push PC-1 (the address of the last byte of the JSR
// instruction, since addrAbsolute has already advanced PC past the full
// 3 byte instruction) then jump.
func (c *CPU) iJSR() {
	c.pushWord(c.PC - 1)
	c.PC = c.Address
}

// iRTS implements RTS: pull PC and add one (undoing JSR's PC-1 push).
func (c *CPU) iRTS() {
	c.PC = c.pullWord() + 1
}

// iPHA, iPHP, iPLA, iPLP implement the stack push/pull instructions. PHP
// always pushes with B set; PLP always forces U set on the resulting P
// (the B bit pulled back is whatever was on the stack, per spec.md §8).
func (c *CPU) iPHA() { c.pushByte(c.A) }
func (c *CPU) iPHP() { c.pushByte(c.P | FlagUnused | FlagBreak) }
func (c *CPU) iPLA() { c.loadRegister(&c.A, c.pullByte()) }
func (c *CPU) iPLP() {
	c.P = c.pullByte()
	c.P |= FlagUnused
}

// Undocumented opcodes.

// iSLO: ASL memory, then ORA the result into A.
func (c *CPU) iSLO() uint8 {
	res := c.doASL(uint8(c.Target))
	c.loadRegister(&c.A, c.A|res)
	return res
}

// iRLA: ROL memory, then AND the result into A.
func (c *CPU) iRLA() uint8 {
	res := c.doROL(uint8(c.Target))
	c.loadRegister(&c.A, c.A&res)
	return res
}

// iSRE: LSR memory, then EOR the result into A.
func (c *CPU) iSRE() uint8 {
	res := c.doLSR(uint8(c.Target))
	c.loadRegister(&c.A, c.A^res)
	return res
}

// iRRA: ROR memory, then ADC the result into A.
func (c *CPU) iRRA() uint8 {
	res := c.doROR(uint8(c.Target))
	c.Target = uint16(res)
	c.iADC()
	return res
}

// iDCP: DEC memory, then CMP A against the result.
func (c *CPU) iDCP() uint8 {
	res := uint8(c.Target) - 1
	c.compare(c.A, res)
	return res
}

// iISC: INC memory, then SBC the result from A.
func (c *CPU) iISC() uint8 {
	res := uint8(c.Target) + 1
	c.Target = uint16(res)
	c.iSBC()
	return res
}

// iLAX loads both A and X from Target.
func (c *CPU) iLAX() {
	c.loadRegister(&c.A, uint8(c.Target))
	c.loadRegister(&c.X, uint8(c.Target))
}

// iSBX: X = (A&X) - Target, with C set if no borrow and N/Z from the
// result. Does not use the normal overflow/decimal ADC machinery.
func (c *CPU) iSBX() {
	aAndX := c.A & c.X
	val := uint8(c.Target)
	c.setFlag(FlagCarry, aAndX >= val)
	c.loadRegister(&c.X, aAndX-val)
}

// iANC: AND #i, then copy N into C (equivalent to shifting bit 7 out).
func (c *CPU) iANC() {
	c.loadRegister(&c.A, c.A&uint8(c.Target))
	c.setFlag(FlagCarry, c.A&0x80 != 0)
}

// iALR: AND #i then LSR the accumulator.
func (c *CPU) iALR() {
	c.loadRegister(&c.A, c.A&uint8(c.Target))
	c.iLSRAcc()
}

// iARR: AND #i then ROR the accumulator. In binary mode C is bit 6 of the
// rotated result and V is bit 6 XOR bit 5 of it, rather than the normal ROR
// carry-out; in decimal mode V compares bit 6 before and after the rotate
// and C comes from the high nibble of the pre-rotate AND result.
func (c *CPU) iARR() {
	t := c.A & uint8(c.Target)
	c.loadRegister(&c.A, t)
	c.iRORAcc()
	if c.P&FlagDecimal != 0 {
		c.setFlag(FlagOverflow, (t^c.A)&0x40 != 0)
		ah := t >> 4
		al := t & 0x0F
		if al+(al&1) > 5 {
			c.A = (c.A & 0xF0) | ((c.A + 6) & 0x0F)
		}
		if ah+(ah&1) > 5 {
			c.P |= FlagCarry
			c.A += 0x60
		} else {
			c.P &^= FlagCarry
		}
		return
	}
	bit6 := c.A&0x40 != 0
	bit5 := c.A&0x20 != 0
	c.setFlag(FlagOverflow, bit6 != bit5)
	c.setFlag(FlagCarry, bit6)
}

// aneMagic is the implementation-chosen constant folded into A before the
// ANE/LXA AND chain. Unstable on real hardware; spec.md §4.5/§9 calls for
// picking one deterministic value and documenting it rather than modeling
// the hardware's true nondeterminism.
const aneMagic = 0x00

// iANE: A = (A | aneMagic) & X & Target. Acknowledged unstable.
func (c *CPU) iANE() {
	c.loadRegister(&c.A, (c.A|aneMagic)&c.X&uint8(c.Target))
}

// iLXA: A = X = (A | aneMagic) & Target. Acknowledged unstable.
func (c *CPU) iLXA() {
	val := (c.A | aneMagic) & uint8(c.Target)
	c.loadRegister(&c.A, val)
	c.loadRegister(&c.X, val)
}

// iLAS: A = X = S = Target & S.
func (c *CPU) iLAS() {
	res := uint8(c.Target) & c.S
	c.A = res
	c.X = res
	c.S = res
	c.setZN(res)
}

// iJAM latches the halt condition; the core stops making forward progress
// until Reset.
func (c *CPU) iJAM() {
	c.Jammed = true
}

// unstableStore implements the SHA/SHX/SHY/TAS family: reg & (addrHigh+1)
// is written to the effective address. These are electrically unstable on
// real hardware; spec.md §4.5/§9 calls for one deterministic formula,
// which is this one.
func (c *CPU) unstableStore(addr addrFunc, reg uint8) {
	_ = addr()
	hi := uint8(c.Address>>8) + 1
	c.ram.Write(c.Address, reg&hi)
}

// iSHA implements SHA (also known as AHX): (A&X) & (addrHigh+1) -> mem.
func (c *CPU) iSHA(addr addrFunc) { c.unstableStore(addr, c.A&c.X) }

// iSHX implements SHX: X & (addrHigh+1) -> mem.
func (c *CPU) iSHX(addr addrFunc) { c.unstableStore(addr, c.X) }

// iSHY implements SHY: Y & (addrHigh+1) -> mem.
func (c *CPU) iSHY(addr addrFunc) { c.unstableStore(addr, c.Y) }

// iTAS implements TAS: S = A&X, then A&X & (addrHigh+1) -> mem.
func (c *CPU) iTAS(addr addrFunc) {
	c.S = c.A & c.X
	c.unstableStore(addr, c.A&c.X)
}
