// Package disassembler renders 6502 family machine code as text. It shares
// no code with the cpu package's dispatch table but is grounded on the same
// opcode matrix, so the mnemonic a disassembly prints always matches the
// semantics cpu.execute would actually run for that byte.
package disassembler

import (
	"fmt"

	"github.com/holomorph/go6502/bus"
)

type addrMode int

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeIndirectX
	modeIndirectY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect
	modeRelative
)

type opInfo struct {
	mnemonic string
	mode     addrMode
}

// table maps each opcode byte to the mnemonic and addressing mode used to
// format it. Unofficial opcodes use the same mnemonics spec.md settled on
// for the cpu package (SBX not AXS, LXA not OAL, ANE not XAA, SHA not AHX,
// JAM not HLT) so a disassembly line and the handler it names always match.
var table = [256]opInfo{
	0x00: {"BRK", modeImplied}, 0x01: {"ORA", modeIndirectX}, 0x02: {"JAM", modeImplied}, 0x03: {"SLO", modeIndirectX},
	0x04: {"NOP", modeZeroPage}, 0x05: {"ORA", modeZeroPage}, 0x06: {"ASL", modeZeroPage}, 0x07: {"SLO", modeZeroPage},
	0x08: {"PHP", modeImplied}, 0x09: {"ORA", modeImmediate}, 0x0A: {"ASL", modeAccumulator}, 0x0B: {"ANC", modeImmediate},
	0x0C: {"NOP", modeAbsolute}, 0x0D: {"ORA", modeAbsolute}, 0x0E: {"ASL", modeAbsolute}, 0x0F: {"SLO", modeAbsolute},
	0x10: {"BPL", modeRelative}, 0x11: {"ORA", modeIndirectY}, 0x12: {"JAM", modeImplied}, 0x13: {"SLO", modeIndirectY},
	0x14: {"NOP", modeZeroPageX}, 0x15: {"ORA", modeZeroPageX}, 0x16: {"ASL", modeZeroPageX}, 0x17: {"SLO", modeZeroPageX},
	0x18: {"CLC", modeImplied}, 0x19: {"ORA", modeAbsoluteY}, 0x1A: {"NOP", modeImplied}, 0x1B: {"SLO", modeAbsoluteY},
	0x1C: {"NOP", modeAbsoluteX}, 0x1D: {"ORA", modeAbsoluteX}, 0x1E: {"ASL", modeAbsoluteX}, 0x1F: {"SLO", modeAbsoluteX},
	0x20: {"JSR", modeAbsolute}, 0x21: {"AND", modeIndirectX}, 0x22: {"JAM", modeImplied}, 0x23: {"RLA", modeIndirectX},
	0x24: {"BIT", modeZeroPage}, 0x25: {"AND", modeZeroPage}, 0x26: {"ROL", modeZeroPage}, 0x27: {"RLA", modeZeroPage},
	0x28: {"PLP", modeImplied}, 0x29: {"AND", modeImmediate}, 0x2A: {"ROL", modeAccumulator}, 0x2B: {"ANC", modeImmediate},
	0x2C: {"BIT", modeAbsolute}, 0x2D: {"AND", modeAbsolute}, 0x2E: {"ROL", modeAbsolute}, 0x2F: {"RLA", modeAbsolute},
	0x30: {"BMI", modeRelative}, 0x31: {"AND", modeIndirectY}, 0x32: {"JAM", modeImplied}, 0x33: {"RLA", modeIndirectY},
	0x34: {"NOP", modeZeroPageX}, 0x35: {"AND", modeZeroPageX}, 0x36: {"ROL", modeZeroPageX}, 0x37: {"RLA", modeZeroPageX},
	0x38: {"SEC", modeImplied}, 0x39: {"AND", modeAbsoluteY}, 0x3A: {"NOP", modeImplied}, 0x3B: {"RLA", modeAbsoluteY},
	0x3C: {"NOP", modeAbsoluteX}, 0x3D: {"AND", modeAbsoluteX}, 0x3E: {"ROL", modeAbsoluteX}, 0x3F: {"RLA", modeAbsoluteX},
	0x40: {"RTI", modeImplied}, 0x41: {"EOR", modeIndirectX}, 0x42: {"JAM", modeImplied}, 0x43: {"SRE", modeIndirectX},
	0x44: {"NOP", modeZeroPage}, 0x45: {"EOR", modeZeroPage}, 0x46: {"LSR", modeZeroPage}, 0x47: {"SRE", modeZeroPage},
	0x48: {"PHA", modeImplied}, 0x49: {"EOR", modeImmediate}, 0x4A: {"LSR", modeAccumulator}, 0x4B: {"ALR", modeImmediate},
	0x4C: {"JMP", modeAbsolute}, 0x4D: {"EOR", modeAbsolute}, 0x4E: {"LSR", modeAbsolute}, 0x4F: {"SRE", modeAbsolute},
	0x50: {"BVC", modeRelative}, 0x51: {"EOR", modeIndirectY}, 0x52: {"JAM", modeImplied}, 0x53: {"SRE", modeIndirectY},
	0x54: {"NOP", modeZeroPageX}, 0x55: {"EOR", modeZeroPageX}, 0x56: {"LSR", modeZeroPageX}, 0x57: {"SRE", modeZeroPageX},
	0x58: {"CLI", modeImplied}, 0x59: {"EOR", modeAbsoluteY}, 0x5A: {"NOP", modeImplied}, 0x5B: {"SRE", modeAbsoluteY},
	0x5C: {"NOP", modeAbsoluteX}, 0x5D: {"EOR", modeAbsoluteX}, 0x5E: {"LSR", modeAbsoluteX}, 0x5F: {"SRE", modeAbsoluteX},
	0x60: {"RTS", modeImplied}, 0x61: {"ADC", modeIndirectX}, 0x62: {"JAM", modeImplied}, 0x63: {"RRA", modeIndirectX},
	0x64: {"NOP", modeZeroPage}, 0x65: {"ADC", modeZeroPage}, 0x66: {"ROR", modeZeroPage}, 0x67: {"RRA", modeZeroPage},
	0x68: {"PLA", modeImplied}, 0x69: {"ADC", modeImmediate}, 0x6A: {"ROR", modeAccumulator}, 0x6B: {"ARR", modeImmediate},
	0x6C: {"JMP", modeIndirect}, 0x6D: {"ADC", modeAbsolute}, 0x6E: {"ROR", modeAbsolute}, 0x6F: {"RRA", modeAbsolute},
	0x70: {"BVS", modeRelative}, 0x71: {"ADC", modeIndirectY}, 0x72: {"JAM", modeImplied}, 0x73: {"RRA", modeIndirectY},
	0x74: {"NOP", modeZeroPageX}, 0x75: {"ADC", modeZeroPageX}, 0x76: {"ROR", modeZeroPageX}, 0x77: {"RRA", modeZeroPageX},
	0x78: {"SEI", modeImplied}, 0x79: {"ADC", modeAbsoluteY}, 0x7A: {"NOP", modeImplied}, 0x7B: {"RRA", modeAbsoluteY},
	0x7C: {"NOP", modeAbsoluteX}, 0x7D: {"ADC", modeAbsoluteX}, 0x7E: {"ROR", modeAbsoluteX}, 0x7F: {"RRA", modeAbsoluteX},
	0x80: {"NOP", modeImmediate}, 0x81: {"STA", modeIndirectX}, 0x82: {"NOP", modeImmediate}, 0x83: {"SAX", modeIndirectX},
	0x84: {"STY", modeZeroPage}, 0x85: {"STA", modeZeroPage}, 0x86: {"STX", modeZeroPage}, 0x87: {"SAX", modeZeroPage},
	0x88: {"DEY", modeImplied}, 0x89: {"NOP", modeImmediate}, 0x8A: {"TXA", modeImplied}, 0x8B: {"ANE", modeImmediate},
	0x8C: {"STY", modeAbsolute}, 0x8D: {"STA", modeAbsolute}, 0x8E: {"STX", modeAbsolute}, 0x8F: {"SAX", modeAbsolute},
	0x90: {"BCC", modeRelative}, 0x91: {"STA", modeIndirectY}, 0x92: {"JAM", modeImplied}, 0x93: {"SHA", modeIndirectY},
	0x94: {"STY", modeZeroPageX}, 0x95: {"STA", modeZeroPageX}, 0x96: {"STX", modeZeroPageY}, 0x97: {"SAX", modeZeroPageY},
	0x98: {"TYA", modeImplied}, 0x99: {"STA", modeAbsoluteY}, 0x9A: {"TXS", modeImplied}, 0x9B: {"TAS", modeAbsoluteY},
	0x9C: {"SHY", modeAbsoluteX}, 0x9D: {"STA", modeAbsoluteX}, 0x9E: {"SHX", modeAbsoluteY}, 0x9F: {"SHA", modeAbsoluteY},
	0xA0: {"LDY", modeImmediate}, 0xA1: {"LDA", modeIndirectX}, 0xA2: {"LDX", modeImmediate}, 0xA3: {"LAX", modeIndirectX},
	0xA4: {"LDY", modeZeroPage}, 0xA5: {"LDA", modeZeroPage}, 0xA6: {"LDX", modeZeroPage}, 0xA7: {"LAX", modeZeroPage},
	0xA8: {"TAY", modeImplied}, 0xA9: {"LDA", modeImmediate}, 0xAA: {"TAX", modeImplied}, 0xAB: {"LXA", modeImmediate},
	0xAC: {"LDY", modeAbsolute}, 0xAD: {"LDA", modeAbsolute}, 0xAE: {"LDX", modeAbsolute}, 0xAF: {"LAX", modeAbsolute},
	0xB0: {"BCS", modeRelative}, 0xB1: {"LDA", modeIndirectY}, 0xB2: {"JAM", modeImplied}, 0xB3: {"LAX", modeIndirectY},
	0xB4: {"LDY", modeZeroPageX}, 0xB5: {"LDA", modeZeroPageX}, 0xB6: {"LDX", modeZeroPageY}, 0xB7: {"LAX", modeZeroPageY},
	0xB8: {"CLV", modeImplied}, 0xB9: {"LDA", modeAbsoluteY}, 0xBA: {"TSX", modeImplied}, 0xBB: {"LAS", modeAbsoluteY},
	0xBC: {"LDY", modeAbsoluteX}, 0xBD: {"LDA", modeAbsoluteX}, 0xBE: {"LDX", modeAbsoluteY}, 0xBF: {"LAX", modeAbsoluteY},
	0xC0: {"CPY", modeImmediate}, 0xC1: {"CMP", modeIndirectX}, 0xC2: {"NOP", modeImmediate}, 0xC3: {"DCP", modeIndirectX},
	0xC4: {"CPY", modeZeroPage}, 0xC5: {"CMP", modeZeroPage}, 0xC6: {"DEC", modeZeroPage}, 0xC7: {"DCP", modeZeroPage},
	0xC8: {"INY", modeImplied}, 0xC9: {"CMP", modeImmediate}, 0xCA: {"DEX", modeImplied}, 0xCB: {"SBX", modeImmediate},
	0xCC: {"CPY", modeAbsolute}, 0xCD: {"CMP", modeAbsolute}, 0xCE: {"DEC", modeAbsolute}, 0xCF: {"DCP", modeAbsolute},
	0xD0: {"BNE", modeRelative}, 0xD1: {"CMP", modeIndirectY}, 0xD2: {"JAM", modeImplied}, 0xD3: {"DCP", modeIndirectY},
	0xD4: {"NOP", modeZeroPageX}, 0xD5: {"CMP", modeZeroPageX}, 0xD6: {"DEC", modeZeroPageX}, 0xD7: {"DCP", modeZeroPageX},
	0xD8: {"CLD", modeImplied}, 0xD9: {"CMP", modeAbsoluteY}, 0xDA: {"NOP", modeImplied}, 0xDB: {"DCP", modeAbsoluteY},
	0xDC: {"NOP", modeAbsoluteX}, 0xDD: {"CMP", modeAbsoluteX}, 0xDE: {"DEC", modeAbsoluteX}, 0xDF: {"DCP", modeAbsoluteX},
	0xE0: {"CPX", modeImmediate}, 0xE1: {"SBC", modeIndirectX}, 0xE2: {"NOP", modeImmediate}, 0xE3: {"ISC", modeIndirectX},
	0xE4: {"CPX", modeZeroPage}, 0xE5: {"SBC", modeZeroPage}, 0xE6: {"INC", modeZeroPage}, 0xE7: {"ISC", modeZeroPage},
	0xE8: {"INX", modeImplied}, 0xE9: {"SBC", modeImmediate}, 0xEA: {"NOP", modeImplied}, 0xEB: {"SBC", modeImmediate},
	0xEC: {"CPX", modeAbsolute}, 0xED: {"SBC", modeAbsolute}, 0xEE: {"INC", modeAbsolute}, 0xEF: {"ISC", modeAbsolute},
	0xF0: {"BEQ", modeRelative}, 0xF1: {"SBC", modeIndirectY}, 0xF2: {"JAM", modeImplied}, 0xF3: {"ISC", modeIndirectY},
	0xF4: {"NOP", modeZeroPageX}, 0xF5: {"SBC", modeZeroPageX}, 0xF6: {"INC", modeZeroPageX}, 0xF7: {"ISC", modeZeroPageX},
	0xF8: {"SED", modeImplied}, 0xF9: {"SBC", modeAbsoluteY}, 0xFA: {"NOP", modeImplied}, 0xFB: {"ISC", modeAbsoluteY},
	0xFC: {"NOP", modeAbsoluteX}, 0xFD: {"SBC", modeAbsoluteX}, 0xFE: {"INC", modeAbsoluteX}, 0xFF: {"ISC", modeAbsoluteX},
}

// Step disassembles the instruction at pc and returns the formatted line
// plus the number of bytes it occupies. It always reads at least one byte
// past pc, so callers must ensure that address is valid even for a 1 byte
// instruction. It never follows control flow: a JMP/JSR target is printed,
// not chased.
func Step(pc uint16, r bus.Bus) (string, int) {
	op := r.Read(pc)
	arg1 := r.Read(pc + 1)
	arg2 := r.Read(pc + 2)
	info := table[op]

	count := 1
	var operand string
	switch info.mode {
	case modeImplied, modeAccumulator:
		// no operand bytes
	case modeImmediate:
		operand = fmt.Sprintf("#$%02X", arg1)
		count = 2
	case modeZeroPage:
		operand = fmt.Sprintf("$%02X", arg1)
		count = 2
	case modeZeroPageX:
		operand = fmt.Sprintf("$%02X,X", arg1)
		count = 2
	case modeZeroPageY:
		operand = fmt.Sprintf("$%02X,Y", arg1)
		count = 2
	case modeIndirectX:
		operand = fmt.Sprintf("($%02X,X)", arg1)
		count = 2
	case modeIndirectY:
		operand = fmt.Sprintf("($%02X),Y", arg1)
		count = 2
	case modeRelative:
		off := int16(int8(arg1))
		operand = fmt.Sprintf("$%02X ($%04X)", arg1, pc+uint16(off)+2)
		count = 2
	case modeAbsolute:
		operand = fmt.Sprintf("$%02X%02X", arg2, arg1)
		count = 3
	case modeAbsoluteX:
		operand = fmt.Sprintf("$%02X%02X,X", arg2, arg1)
		count = 3
	case modeAbsoluteY:
		operand = fmt.Sprintf("$%02X%02X,Y", arg2, arg1)
		count = 3
	case modeIndirect:
		operand = fmt.Sprintf("($%02X%02X)", arg2, arg1)
		count = 3
	}

	raw := fmt.Sprintf("%02X", op)
	switch count {
	case 2:
		raw = fmt.Sprintf("%02X %02X", op, arg1)
	case 3:
		raw = fmt.Sprintf("%02X %02X %02X", op, arg1, arg2)
	}

	line := fmt.Sprintf("%04X  %-8s  %-4s %s", pc, raw, info.mnemonic, operand)
	return line, count
}

// Mnemonic returns the mnemonic for op without formatting an operand, used
// by callers (e.g. trace logs) that only need the instruction name.
func Mnemonic(op uint8) string {
	return table[op].mnemonic
}
