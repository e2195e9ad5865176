// Package codegen emits Hack assembly for VM commands.
package codegen

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sarchlab/hackvm/instr"
	"github.com/sarchlab/hackvm/program"
)

var (
	// ErrUnsupportedSegment is returned for an operation/segment pair with no
	// generation rule, such as pop constant.
	ErrUnsupportedSegment = errors.New("unsupported segment")

	// ErrNotImplemented is returned for behavior this translator deliberately
	// leaves out under the active configuration.
	ErrNotImplemented = errors.New("not implemented")
)

// Fixed cells of the output contract.
const (
	StackPointer = "SP"
	LocalBase    = "LCL"
	ArgumentBase = "ARG"
	ThisBase     = "THIS"
	ThatBase     = "THAT"

	TempBase  = 5
	TempCells = 8
)

// DefaultScratch is the reserved cell that holds a computed address during
// an indirect pop.
const DefaultScratch = "R13"

var baseCells = map[instr.Segment]string{
	instr.Local:    LocalBase,
	instr.Argument: ArgumentBase,
	instr.This:     ThisBase,
	instr.That:     ThatBase,
}

// StaticMode selects how the static segment is translated.
type StaticMode int

const (
	// StaticGlobal maps static i of script S to the assembler symbol "S.i".
	StaticGlobal StaticMode = iota
	// StaticReject fails every static access with ErrNotImplemented.
	StaticReject
)

func (m StaticMode) String() string {
	switch m {
	case StaticGlobal:
		return "global"
	case StaticReject:
		return "reject"
	default:
		return fmt.Sprintf("StaticMode(%d)", int(m))
	}
}

// ParseStaticMode reads a mode from its String form.
func ParseStaticMode(s string) (StaticMode, error) {
	switch s {
	case "global", "":
		return StaticGlobal, nil
	case "reject":
		return StaticReject, nil
	default:
		return 0, errors.Errorf("unknown static mode %q", s)
	}
}

// Address says how the cell named by a segment and index is reached.
type Address interface {
	isAddress()
}

// Indirect addresses RAM[RAM[Base]+Offset].
type Indirect struct {
	Base   string
	Offset uint16
}

// Direct addresses the cell named by Symbol, which is either a numeric
// register or an assembler symbol.
type Direct struct {
	Symbol string
}

// Immediate is a literal value rather than a memory cell.
type Immediate struct {
	Value uint16
}

func (Indirect) isAddress()  {}
func (Direct) isAddress()    {}
func (Immediate) isAddress() {}

// Resolver maps segment and index pairs to addresses.
type Resolver struct {
	Script     string
	StaticMode StaticMode
}

// Resolve determines how the cell at seg[idx] is addressed.
func (r Resolver) Resolve(seg instr.Segment, idx uint16) (Address, error) {
	switch seg {
	case instr.Local, instr.Argument, instr.This, instr.That:
		return Indirect{Base: baseCells[seg], Offset: idx}, nil
	case instr.Temp:
		if idx >= TempCells {
			return nil, errors.Wrapf(ErrUnsupportedSegment,
				"temp index %d exceeds %d", idx, TempCells-1)
		}

		return Direct{Symbol: strconv.Itoa(TempBase + int(idx))}, nil
	case instr.Constant:
		if idx > program.MaxLiteral {
			return nil, errors.Wrapf(ErrUnsupportedSegment,
				"constant %d exceeds %d", idx, program.MaxLiteral)
		}

		return Immediate{Value: idx}, nil
	case instr.Pointer:
		switch idx {
		case 0:
			return Direct{Symbol: ThisBase}, nil
		case 1:
			return Direct{Symbol: ThatBase}, nil
		default:
			return nil, errors.Wrapf(ErrUnsupportedSegment,
				"pointer index %d is neither 0 nor 1", idx)
		}
	case instr.Static:
		return r.resolveStatic(idx)
	default:
		return nil, errors.Wrapf(ErrUnsupportedSegment, "segment %s", seg)
	}
}

func (r Resolver) resolveStatic(idx uint16) (Address, error) {
	if r.StaticMode == StaticReject {
		return nil, errors.Wrap(ErrNotImplemented, "static segment")
	}

	symbol := StaticSymbol(r.Script, idx)
	if !program.IsSymbol(symbol) {
		return nil, errors.Wrapf(ErrUnsupportedSegment,
			"script name %q cannot form a static symbol", r.Script)
	}

	return Direct{Symbol: symbol}, nil
}

// StaticSymbol returns the assembler symbol of static idx for script.
func StaticSymbol(script string, idx uint16) string {
	return fmt.Sprintf("%s.%d", script, idx)
}
