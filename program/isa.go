// Package program describes the Hack target machine: its instruction set and
// the textual form of its instructions.
package program

import "strings"

// CompFunc computes an ALU result from the D register and the A or M
// operand.
type CompFunc func(x, y uint16) uint16

// JumpFunc decides a jump from the ALU result.
type JumpFunc func(v int16) bool

// Comp is a resolved comp field.
type Comp struct {
	Mnemonic string
	// UsesM is set when the y operand is RAM[A] rather than A.
	UsesM bool
	Fn    CompFunc
}

// Dest is a bit set of registers written by a C-instruction.
type Dest uint8

const (
	DestM Dest = 1 << iota
	DestD
	DestA
)

// Has reports whether d includes r.
func (d Dest) Has(r Dest) bool {
	return d&r != 0
}

// ISA is a struct that represents an Instruction Set Architecture.
type ISA struct {
	// name of the ISA.
	isaName string
	// map from comp mnemonic to the behavior of the ALU.
	comps map[string]Comp
	jumps map[string]JumpFunc
}

// NewISA creates an empty ISA.
func NewISA(name string) *ISA {
	return &ISA{
		isaName: name,
		comps:   make(map[string]Comp),
		jumps:   make(map[string]JumpFunc),
	}
}

// Name returns the name of the ISA.
func (isa *ISA) Name() string {
	return isa.isaName
}

func (isa *ISA) registerComp(mnemonic string, fn CompFunc, aliases ...string) {
	usesM := strings.Contains(mnemonic, "M")
	for _, m := range append([]string{mnemonic}, aliases...) {
		isa.comps[m] = Comp{Mnemonic: mnemonic, UsesM: usesM, Fn: fn}
	}
}

func (isa *ISA) registerJump(mnemonic string, fn JumpFunc) {
	isa.jumps[mnemonic] = fn
}

// Comp looks up a comp mnemonic. Commutative spellings such as "A+D" resolve
// to their canonical form.
func (isa *ISA) Comp(mnemonic string) (Comp, bool) {
	c, ok := isa.comps[mnemonic]
	return c, ok
}

// Jump looks up a jump mnemonic.
func (isa *ISA) Jump(mnemonic string) (JumpFunc, bool) {
	j, ok := isa.jumps[mnemonic]
	return j, ok
}

// Dest parses a dest field. Registers may appear in any order, each at most
// once.
func (isa *ISA) Dest(field string) (Dest, bool) {
	var d Dest

	for _, r := range field {
		var bit Dest

		switch r {
		case 'A':
			bit = DestA
		case 'D':
			bit = DestD
		case 'M':
			bit = DestM
		default:
			return 0, false
		}

		if d.Has(bit) {
			return 0, false
		}

		d |= bit
	}

	return d, true
}

// Hack is the instruction set of the Hack computer.
var Hack = NewISA("Hack")

func init() {
	for _, y := range []string{"A", "M"} {
		Hack.registerComp(y, compY)
		Hack.registerComp("!"+y, compNotY)
		Hack.registerComp("-"+y, compNegY)
		Hack.registerComp(y+"+1", compIncY, "1+"+y)
		Hack.registerComp(y+"-1", compDecY)
		Hack.registerComp("D+"+y, compAdd, y+"+D")
		Hack.registerComp("D-"+y, compXMinusY)
		Hack.registerComp(y+"-D", compYMinusX)
		Hack.registerComp("D&"+y, compAnd, y+"&D")
		Hack.registerComp("D|"+y, compOr, y+"|D")
	}

	Hack.registerComp("0", compZero)
	Hack.registerComp("1", compOne)
	Hack.registerComp("-1", compMinusOne)
	Hack.registerComp("D", compX)
	Hack.registerComp("!D", compNotX)
	Hack.registerComp("-D", compNegX)
	Hack.registerComp("D+1", compIncX, "1+D")
	Hack.registerComp("D-1", compDecX)

	Hack.registerJump("JGT", jumpGT)
	Hack.registerJump("JEQ", jumpEQ)
	Hack.registerJump("JGE", jumpGE)
	Hack.registerJump("JLT", jumpLT)
	Hack.registerJump("JNE", jumpNE)
	Hack.registerJump("JLE", jumpLE)
	Hack.registerJump("JMP", jumpAlways)
}
