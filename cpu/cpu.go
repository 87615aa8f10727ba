// Package cpu implements a cycle-approximate MOS 6502 family instruction
// set: decode, dispatch, and semantics for the 151 official plus ~105
// unofficial opcodes, driven one instruction at a time against a host
// supplied bus.Bus. The package never owns memory, never blocks, and never
// calls back into the host except through the bus.
package cpu

import (
	"fmt"

	"github.com/holomorph/go6502/bus"
	"github.com/holomorph/go6502/irq"
)

// CPUType selects among the small family of 6502 variants this core
// understands. They share one decode/dispatch/semantics implementation and
// differ only in the handful of places noted on each constant.
type CPUType int

const (
	// Unimplemented is the zero value and is always invalid for Init.
	Unimplemented CPUType = iota
	// NMOS is the base NMOS 6502 including all documented and undocumented
	// opcodes and full decimal mode.
	NMOS
	// NMOSRicoh is the Ricoh 2A03/2A07 used in the NES: identical to NMOS
	// except decimal mode is unimplemented (ADC/SBC never honor D).
	NMOSRicoh
	// NMOS6510 is the 6510 variant (Commodore 64). This package executes it
	// exactly like NMOS; its I/O direction/data latch at $0000/$0001 is not
	// modeled here but by the host's bus — see memory.Port6510.
	NMOS6510
	// CMOS models only the one 65C02 difference that fits this core's
	// existing NMOS dispatch table: D is cleared automatically when
	// BRK/IRQ/NMI are serviced. Its illegal opcode slots still run the
	// NMOS unofficial behaviors — the 65C02's stable-NOP reinterpretation
	// of those slots, and its genuinely new instructions, are out of scope
	// (spec.md §1 excludes 65C02/65816 extensions).
	CMOS
	// maxCPUType bounds the valid range; never a valid Init argument.
	maxCPUType
)

// Vector addresses for NMI, Reset, and IRQ/BRK, all little-endian per
// spec.md §6.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// Status register bit masks, LSB to MSB: C Z I D B U V N.
const (
	FlagCarry     = uint8(0x01)
	FlagZero      = uint8(0x02)
	FlagInterrupt = uint8(0x04)
	FlagDecimal   = uint8(0x08)
	FlagBreak     = uint8(0x10)
	FlagUnused    = uint8(0x20)
	FlagOverflow  = uint8(0x40)
	FlagNegative  = uint8(0x80)
)

// interruptKind distinguishes why the step driver is servicing an
// interrupt, since NMI and IRQ share all but their vector, priority, and
// cycle cost.
type interruptKind int

const (
	none interruptKind = iota
	irqKind
	nmiKind
)

// pendingIRQ and pendingNMI are the two masks of the PendingInterrupts and
// InServiceInterrupts latches: IRQ owns the low nibble and NMI the high
// nibble, so the zero value means nothing pending or in service.
const (
	pendingIRQ = uint8(0x0F)
	pendingNMI = uint8(0xF0)
)

// InvalidCPUState reports an invalid configuration passed to Init: an
// unknown CPUType or a nil Ram.
type InvalidCPUState struct {
	Reason string
}

// Error implements error.
func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// HaltOpcode is returned by the Step call that executes an illegal JAM
// opcode. It is informational: the core has already latched Jammed and
// will not re-report on later Step calls, which simply no-op per spec
// until Reset.
type HaltOpcode struct {
	PC     uint16
	Opcode uint8
}

// Error implements error.
func (e HaltOpcode) Error() string {
	return fmt.Sprintf("CPU jammed by opcode %.2X at PC %.4X", e.Opcode, e.PC)
}

// CPU is the architectural state of a single 6502 family processor: the
// register file, flags, cycle accounting, and interrupt latches. A CPU is
// single-owner and must only be driven by its own goroutine; IRQ/NMI may be
// called from other goroutines only if the host serializes them against
// Step itself.
type CPU struct {
	// Architectural registers.
	PC uint16
	A  uint8
	X  uint8
	Y  uint8
	S  uint8
	P  uint8

	// CyclesRemaining is the number of additional Step calls owed before
	// the next instruction may begin.
	CyclesRemaining uint8

	// Opcode is the last fetched opcode byte.
	Opcode uint8
	// Address is the effective address computed by the current
	// instruction's addressing mode (also used to carry the raw signed
	// relative offset for branches between decode and dispatch).
	Address uint16
	// Target is the 16 bit intermediate operand value for the current
	// instruction, wide enough to carry carry/overflow information above
	// bit 7 until it's narrowed on writeback.
	Target uint16

	// PendingInterrupts is the bitmask of interrupt lines asserted by the
	// host but not yet acknowledged: pendingIRQ and/or pendingNMI.
	PendingInterrupts uint8
	// InServiceInterrupts is the bitmask of interrupt lines currently being
	// serviced; cleared by RTI.
	InServiceInterrupts uint8
	// Jammed is set by an illegal JAM opcode; Step becomes a no-op until
	// Reset.
	Jammed bool

	cpuType CPUType
	ram     bus.Bus
	irq     irq.Sender
	nmi     irq.Sender
	// nmiWasRaised remembers nmi.Raised()'s value as of the last boundary
	// poll, since NMI must latch on a 0->1 edge rather than re-fire on
	// every boundary the line happens to still be held high.
	nmiWasRaised bool
}

// ChipDef configures a new CPU. Irq and Nmi are optional external sources
// polled once per instruction boundary in addition to any IRQ/NMI calls the
// host makes directly.
type ChipDef struct {
	Cpu CPUType
	Ram bus.Bus
	Irq irq.Sender
	Nmi irq.Sender
}

// Init creates a new CPU of the requested variant and applies Reset,
// loading PC from the reset vector. Returns an error if Cpu is not a valid
// variant or Ram is nil.
func Init(def *ChipDef) (*CPU, error) {
	if def.Cpu <= Unimplemented || def.Cpu >= maxCPUType {
		return nil, InvalidCPUState{Reason: fmt.Sprintf("CPU type %d is invalid", def.Cpu)}
	}
	if def.Ram == nil {
		return nil, InvalidCPUState{Reason: "Ram must not be nil"}
	}
	c := &CPU{
		cpuType: def.Cpu,
		ram:     def.Ram,
		irq:     def.Irq,
		nmi:     def.Nmi,
	}
	c.Reset()
	return c, nil
}

// Reset loads PC from the reset vector, sets S to 0xFD, sets the I and U
// flags (leaving the others undisturbed), clears all interrupt latches and
// the jam latch, and charges 8 cycles. This models the 6-cycle reset
// sequence of real silicon rounded up to the core's coarser cycle model
// (see SPEC_FULL.md §5 on the intentional accuracy ceiling here).
func (c *CPU) Reset() {
	c.PC = bus.Read16(c.ram, ResetVector)
	c.S = 0xFD
	c.P |= FlagInterrupt | FlagUnused
	c.PendingInterrupts = 0
	c.InServiceInterrupts = 0
	c.Jammed = false
	c.CyclesRemaining = 8
}

// SetPC overrides the program counter after Init/Reset. Intended for
// conformance harnesses that need to start execution at a fixed address
// rather than whatever the reset vector in a given test image contains.
func (c *CPU) SetPC(pc uint16) {
	c.PC = pc
}

// IRQ asserts the IRQ line. IRQ is level-sensitive: it remains pending
// until acknowledged (servicing requires I clear) and the host is expected
// to deassert the source once its condition clears; this core only tracks
// whether a level was seen since the last acknowledgment.
func (c *CPU) IRQ() {
	c.PendingInterrupts |= pendingIRQ
}

// NMI asserts the NMI line. NMI is edge-triggered: a single call latches
// one pending acknowledgment regardless of how long the host's NMI source
// stays asserted; a second NMI is only serviced after RTI clears the
// in-service latch and a fresh call arrives.
func (c *CPU) NMI() {
	c.PendingInterrupts |= pendingNMI
}

// Step advances the CPU by one bus tick. If an instruction is still
// running down its nominal cycle count this simply decrements
// CyclesRemaining and returns. Otherwise it arbitrates any pending
// interrupt (NMI always wins over IRQ, IRQ is masked by the I flag),
// fetches and fully executes one instruction, and sets CyclesRemaining to
// that instruction's nominal cost minus the tick that just ran it. Step
// never blocks: every opcode value decodes to a defined behavior, including
// the JAM opcodes, whose executing Step call returns a HaltOpcode error as a
// courtesy to the caller — every later Step call is a silent no-op, per
// spec, until Reset.
func (c *CPU) Step() error {
	if c.Jammed {
		return nil
	}

	if c.CyclesRemaining > 0 {
		c.CyclesRemaining--
		return nil
	}

	if c.serviceInterrupt() {
		return nil
	}

	return c.execute()
}

// serviceInterrupt runs NMI/IRQ arbitration per spec.md §5 and, if an
// interrupt is acknowledged, performs the BRK-shaped push/vector-load
// sequence. Returns true if an interrupt was serviced this Step call.
func (c *CPU) serviceInterrupt() bool {
	if c.nmi != nil {
		raised := c.nmi.Raised()
		if raised && !c.nmiWasRaised {
			c.PendingInterrupts |= pendingNMI
		}
		c.nmiWasRaised = raised
	}
	// IRQ is level-sensitive, so every boundary re-checks the line rather
	// than edge-detecting it; serviceInterrupt and the I flag are what
	// actually gate whether it gets acknowledged.
	if c.irq != nil && c.irq.Raised() {
		c.PendingInterrupts |= pendingIRQ
	}

	nmiPending := c.PendingInterrupts&pendingNMI != 0 && c.InServiceInterrupts&pendingNMI == 0
	irqPending := c.PendingInterrupts&pendingIRQ != 0 && c.InServiceInterrupts == 0 && c.P&FlagInterrupt == 0

	switch {
	case nmiPending:
		c.acknowledge(NMIVector, nmiKind)
		c.PendingInterrupts &^= pendingNMI
		c.InServiceInterrupts |= pendingNMI
		c.CyclesRemaining = 8 - 1
		return true
	case irqPending:
		c.acknowledge(IRQVector, irqKind)
		c.PendingInterrupts &^= pendingIRQ
		c.InServiceInterrupts |= pendingIRQ
		c.CyclesRemaining = 7 - 1
		return true
	}
	return false
}

// acknowledge performs the shared interrupt-entry sequence: push PC, push P
// with B clear, set I, and load PC from addr. Used for hardware interrupts
// only; BRK runs its own sequence that pushes with B set (see iBRK).
func (c *CPU) acknowledge(addr uint16, kind interruptKind) {
	c.pushWord(c.PC)
	push := (c.P | FlagUnused) &^ FlagBreak
	c.pushByte(push)
	c.P |= FlagInterrupt
	if c.cpuType == CMOS {
		c.P &^= FlagDecimal
	}
	c.PC = bus.Read16(c.ram, addr)
}
