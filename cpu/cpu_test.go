package cpu

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// flatMemory is a trivial bus.Bus backed by a plain array, used throughout
// this file instead of the memory package so cpu's tests don't import
// their own sibling package.
type flatMemory struct {
	mem [65536]uint8
}

func (r *flatMemory) Read(addr uint16) uint8         { return r.mem[addr] }
func (r *flatMemory) Write(addr uint16, val uint8)   { r.mem[addr] = val }
func (r *flatMemory) writeVector(addr uint16, v uint16) {
	r.mem[addr] = uint8(v & 0xFF)
	r.mem[addr+1] = uint8(v >> 8)
}

const resetVectorTarget = uint16(0x0400)

func setup(t *testing.T, cpuType CPUType) (*CPU, *flatMemory) {
	t.Helper()
	r := &flatMemory{}
	r.writeVector(ResetVector, resetVectorTarget)
	c, err := Init(&ChipDef{Cpu: cpuType, Ram: r})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return c, r
}

// runInstruction drains CyclesRemaining from Reset's budget, then runs
// exactly one instruction to completion and returns the cycles it took.
func runInstruction(t *testing.T, c *CPU) int {
	t.Helper()
	for c.CyclesRemaining > 0 {
		if err := c.Step(); err != nil {
			t.Fatalf("Step during drain: %v state: %s", err, spew.Sdump(c))
		}
	}
	cycles := 1
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v state: %s", err, spew.Sdump(c))
	}
	for c.CyclesRemaining > 0 {
		if err := c.Step(); err != nil {
			t.Fatalf("Step: %v state: %s", err, spew.Sdump(c))
		}
		cycles++
	}
	return cycles
}

func TestResetInvariants(t *testing.T) {
	c, r := setup(t, NMOS)
	if got, want := c.PC, resetVectorTarget; got != want {
		t.Errorf("PC after reset = %.4X, want %.4X", got, want)
	}
	if c.S != 0xFD {
		t.Errorf("S after reset = %.2X, want FD", c.S)
	}
	if !c.flag(FlagInterrupt) {
		t.Error("I flag not set after reset")
	}
	if c.P&FlagUnused == 0 {
		t.Error("U flag not set after reset")
	}
	if c.PendingInterrupts != 0 || c.InServiceInterrupts != 0 {
		t.Error("interrupt latches not clear after reset")
	}
	if c.Jammed {
		t.Error("Jammed true after reset")
	}
	_ = r
}

func TestUnusedFlagPinned(t *testing.T) {
	c, r := setup(t, NMOS)
	r.Write(resetVectorTarget, 0xA9) // LDA #$00 — exercises setZN, which
	r.Write(resetVectorTarget+1, 0x00)
	runInstruction(t, c)
	if c.P&FlagUnused == 0 {
		t.Errorf("U flag cleared by an ordinary instruction; P=%.2X", c.P)
	}
}

func TestLDAFlags(t *testing.T) {
	tests := []struct {
		name     string
		val      uint8
		wantZero bool
		wantNeg  bool
	}{
		{"LDA #$00", 0x00, true, false},
		{"LDA #$80", 0x80, false, true},
		{"LDA #$7F", 0x7F, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, r := setup(t, NMOS)
			r.Write(resetVectorTarget, 0xA9)
			r.Write(resetVectorTarget+1, tc.val)
			runInstruction(t, c)
			if c.A != tc.val {
				t.Errorf("A = %.2X, want %.2X", c.A, tc.val)
			}
			if c.flag(FlagZero) != tc.wantZero {
				t.Errorf("Z = %v, want %v", c.flag(FlagZero), tc.wantZero)
			}
			if c.flag(FlagNegative) != tc.wantNeg {
				t.Errorf("N = %v, want %v", c.flag(FlagNegative), tc.wantNeg)
			}
		})
	}
}

func TestStackRoundTrip(t *testing.T) {
	c, _ := setup(t, NMOS)
	for _, v := range []uint8{0x00, 0x42, 0xFF, 0x80} {
		before := c.S
		c.pushByte(v)
		if got := c.pullByte(); got != v {
			t.Errorf("pushByte(%.2X); pullByte() = %.2X", v, got)
		}
		if c.S != before {
			t.Errorf("S did not return to prior value: got %.2X want %.2X", c.S, before)
		}
	}
}

func TestStackWrapAtZero(t *testing.T) {
	c, r := setup(t, NMOS)
	c.S = 0x00
	c.pushByte(0x5A)
	if got := r.Read(0x0100); got != 0x5A {
		t.Errorf("push with S=0 wrote to %.4X, want $0100 (got %.2X)", 0x0100, got)
	}
	if c.S != 0xFF {
		t.Errorf("S after push at S=0 = %.2X, want FF", c.S)
	}
}

func TestPHPPLPRoundTrip(t *testing.T) {
	c, _ := setup(t, NMOS)
	c.P = FlagCarry | FlagZero | FlagUnused
	before := c.P
	c.iPHP()
	c.P = 0
	c.iPLP()
	if c.P&FlagUnused == 0 {
		t.Error("PLP did not force U set")
	}
	if c.P&(FlagCarry|FlagZero) != before&(FlagCarry|FlagZero) {
		t.Errorf("PLP did not restore C/Z: got %.2X want %.2X", c.P, before)
	}
}

func TestADCSBCInverse(t *testing.T) {
	c, _ := setup(t, NMOS)
	for _, v := range []uint8{0x00, 0x01, 0x7F, 0x80, 0xFF} {
		c.A = v
		c.P &^= FlagCarry
		c.Target = 0
		c.iADC()
		c.P |= FlagCarry
		c.Target = 0
		c.iSBC()
		if c.A != v {
			t.Errorf("ADC(#0); SBC(#0) on %.2X returned %.2X", v, c.A)
		}
	}
}

func TestDecimalModeCarryIntoHighNibble(t *testing.T) {
	c, _ := setup(t, NMOS)
	c.P |= FlagDecimal
	c.P &^= FlagCarry
	c.A = 0x09
	c.Target = 0x01
	c.iADC()
	if c.A != 0x10 {
		t.Errorf("BCD 09+01 = %.2X, want 10", c.A)
	}
	if c.flag(FlagCarry) {
		t.Error("BCD 09+01 set carry, want clear")
	}
}

func TestDecimalModeCarryOut(t *testing.T) {
	c, _ := setup(t, NMOS)
	c.P |= FlagDecimal
	c.P &^= FlagCarry
	c.A = 0x99
	c.Target = 0x01
	c.iADC()
	if c.A != 0x00 {
		t.Errorf("BCD 99+01 = %.2X, want 00", c.A)
	}
	if !c.flag(FlagCarry) {
		t.Error("BCD 99+01 did not set carry")
	}
	if !c.flag(FlagZero) {
		t.Error("BCD 99+01 did not set zero")
	}
}

func TestNMOSRicohIgnoresDecimalMode(t *testing.T) {
	c, _ := setup(t, NMOSRicoh)
	c.P |= FlagDecimal
	c.P &^= FlagCarry
	c.A = 0x09
	c.Target = 0x01
	c.iADC()
	if c.A != 0x0A {
		t.Errorf("Ricoh variant honored decimal mode: A = %.2X, want 0A", c.A)
	}
}

func TestJMPIndirectPageWrapBug(t *testing.T) {
	c, r := setup(t, NMOS)
	// The pointer operand itself, at PC, is $30FF: a normal, non-wrapped
	// two byte read of the instruction stream.
	r.Write(0x0200, 0xFF)
	r.Write(0x0201, 0x30)
	// Target low byte lives at $30FF; the bug reads the target high byte
	// back from $3000 (same page) instead of $3100 (the next page).
	r.Write(0x30FF, 0x80)
	r.Write(0x3000, 0x12)
	r.Write(0x3100, 0x34)
	c.PC = 0x0200
	crossed := c.addrIndirect()
	if crossed {
		t.Error("addrIndirect reported a page cross; it never charges one")
	}
	if c.Address != 0x1280 {
		t.Errorf("JMP ($30FF) resolved to %.4X, want 1280 (page-wrap bug)", c.Address)
	}
}

func TestBranchCycleCosts(t *testing.T) {
	tests := []struct {
		name       string
		pc         uint16
		offset     uint8
		cond       bool
		wantCycles uint8
	}{
		{"not taken", 0x0400, 0x10, false, 0},
		{"taken, no cross", 0x0400, 0x10, true, 1},
		{"taken, crosses page", 0x04F0, 0x20, true, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, r := setup(t, NMOS)
			c.PC = tc.pc
			r.Write(tc.pc, tc.offset)
			got := c.branch(tc.cond)
			if got != tc.wantCycles {
				t.Errorf("branch(%v) penalty = %d, want %d", tc.cond, got, tc.wantCycles)
			}
		})
	}
}

func TestLDAAbsoluteXPageCross(t *testing.T) {
	c, r := setup(t, NMOS)
	r.Write(resetVectorTarget, 0xBD) // LDA $00FF,X
	r.Write(resetVectorTarget+1, 0xFF)
	r.Write(resetVectorTarget+2, 0x00)
	r.Write(0x0100, 0x42)
	c.X = 1
	cycles := runInstruction(t, c)
	if c.A != 0x42 {
		t.Errorf("A = %.2X, want 42", c.A)
	}
	if cycles != 5 {
		t.Errorf("LDA $00FF,X with X=1 took %d cycles, want 5", cycles)
	}
}

func TestJAMIsolation(t *testing.T) {
	c, r := setup(t, NMOS)
	r.Write(resetVectorTarget, 0x02) // JAM
	pcBefore := c.PC
	for c.CyclesRemaining > 0 {
		if err := c.Step(); err != nil {
			t.Fatalf("unexpected error draining reset cycles: %v", err)
		}
	}
	err := c.Step()
	var halt HaltOpcode
	if err == nil {
		t.Fatal("expected a HaltOpcode error from the Step that executes JAM")
	}
	if h, ok := err.(HaltOpcode); ok {
		halt = h
	} else {
		t.Fatalf("error was not a HaltOpcode: %v", err)
	}
	if halt.Opcode != 0x02 {
		t.Errorf("HaltOpcode.Opcode = %.2X, want 02", halt.Opcode)
	}
	if !c.Jammed {
		t.Fatal("Jammed not set after JAM")
	}
	a, x, y := c.A, c.X, c.Y
	for i := 0; i < 5; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("Step while Jammed returned an error: %v", err)
		}
	}
	if c.PC != pcBefore+1 || c.A != a || c.X != x || c.Y != y {
		t.Error("CPU state changed after JAM while Jammed")
	}
	c.Reset()
	if c.Jammed {
		t.Error("Reset did not clear Jammed")
	}
}

type manualSender struct{ raised bool }

func (m *manualSender) Raised() bool { return m.raised }

func TestNMIEdgeSemantics(t *testing.T) {
	nmiSrc := &manualSender{}
	r := &flatMemory{}
	r.writeVector(ResetVector, resetVectorTarget)
	r.writeVector(NMIVector, 0x9000)
	c, err := Init(&ChipDef{Cpu: NMOS, Ram: r, Nmi: nmiSrc})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	for c.CyclesRemaining > 0 {
		c.Step()
	}

	nmiSrc.raised = true
	if err := c.Step(); err != nil {
		t.Fatalf("Step acknowledging NMI: %v", err)
	}
	if c.InServiceInterrupts&pendingNMI == 0 {
		t.Fatal("NMI not marked in-service after acknowledgment")
	}
	if c.PC != 0x9000 {
		t.Fatalf("PC after NMI ack = %.4X, want 9000", c.PC)
	}
	for c.CyclesRemaining > 0 {
		c.Step()
	}

	// Line is still held high but no fresh edge arrived: a second
	// acknowledgment must not happen while still in service.
	for i := 0; i < 3; i++ {
		if err := c.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
		for c.CyclesRemaining > 0 {
			c.Step()
		}
	}
	if c.PC == 0x9000 && c.InServiceInterrupts&pendingNMI != 0 {
		// still inside the first handler, fine — but it must not have
		// re-entered via a second push.
	}

	c.iRTI()
	if c.InServiceInterrupts&pendingNMI != 0 {
		t.Fatal("RTI did not clear NMI in-service latch")
	}

	// Line still high, no fresh edge since the handler's entry — must not
	// refire until a 0->1 transition is observed again.
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC == 0x9000 {
		t.Fatal("NMI refired without a fresh edge after RTI")
	}

	// The line is only sampled at instruction boundaries, so the low phase
	// has to be seen by a boundary Step before the line rises again.
	for c.CyclesRemaining > 0 {
		c.Step()
	}
	nmiSrc.raised = false
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	for c.CyclesRemaining > 0 {
		c.Step()
	}
	nmiSrc.raised = true
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x9000 {
		t.Fatal("fresh NMI edge after RTI was not acknowledged")
	}
}

func TestIRQMaskedByIFlag(t *testing.T) {
	irqSrc := &manualSender{raised: true}
	r := &flatMemory{}
	r.writeVector(ResetVector, resetVectorTarget)
	r.writeVector(IRQVector, 0x9100)
	r.Write(resetVectorTarget, 0xEA) // NOP
	c, err := Init(&ChipDef{Cpu: NMOS, Ram: r, Irq: irqSrc})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	for c.CyclesRemaining > 0 {
		c.Step()
	}
	// One instruction boundary with I still set: the IRQ must stay pending.
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	for c.CyclesRemaining > 0 {
		c.Step()
	}
	if c.PC == 0x9100 {
		t.Fatal("IRQ serviced despite I flag set at reset")
	}
	c.P &^= FlagInterrupt
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x9100 {
		t.Fatal("IRQ not serviced once I flag cleared")
	}
}

func TestCompareFlags(t *testing.T) {
	tests := []struct {
		name              string
		reg, val          uint8
		wantCarry, wantZ  bool
		wantN             bool
	}{
		{"equal", 0x40, 0x40, true, true, false},
		{"greater", 0x40, 0x10, true, false, false},
		{"less", 0x10, 0x40, false, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := setup(t, NMOS)
			c.compare(tc.reg, tc.val)
			if c.flag(FlagCarry) != tc.wantCarry {
				t.Errorf("C = %v, want %v", c.flag(FlagCarry), tc.wantCarry)
			}
			if c.flag(FlagZero) != tc.wantZ {
				t.Errorf("Z = %v, want %v", c.flag(FlagZero), tc.wantZ)
			}
			if c.flag(FlagNegative) != tc.wantN {
				t.Errorf("N = %v, want %v", c.flag(FlagNegative), tc.wantN)
			}
		})
	}
}
