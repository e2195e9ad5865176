package verify

import (
	"github.com/pkg/errors"
	"github.com/sarchlab/hackvm/codegen"
	"github.com/sarchlab/hackvm/instr"
)

// Pointer cells of the reference memory layout.
const (
	addrSP   = 0
	addrLCL  = 1
	addrARG  = 2
	addrTHIS = 3
	addrTHAT = 4
	addrTemp = 5
)

// Execute runs a single command.
func (fs *FunctionalSimulator) Execute(cmd instr.Command) error {
	var err error

	switch cmd.Op {
	case instr.Add:
		err = fs.runBinary(func(a, b uint16) uint16 { return a + b })
	case instr.Subtract:
		err = fs.runBinary(func(a, b uint16) uint16 { return a - b })
	case instr.Push:
		err = fs.runPush(cmd.Segment, cmd.Index)
	case instr.Pop:
		err = fs.runPop(cmd.Segment, cmd.Index)
	default:
		err = errors.Errorf("unknown operation %s", cmd.Op)
	}

	if err != nil {
		return err
	}

	fs.executed++

	return nil
}

// runBinary implements add and sub: y is the top of the stack, x the slot
// below it.
func (fs *FunctionalSimulator) runBinary(f func(x, y uint16) uint16) error {
	y, err := fs.pop()
	if err != nil {
		return err
	}

	sp := fs.memory[addrSP]
	if sp <= fs.stackBase {
		return errors.Wrap(ErrStackUnderflow, "binary operation")
	}

	fs.memory[sp-1] = f(fs.memory[sp-1], y)

	return nil
}

func (fs *FunctionalSimulator) runPush(seg instr.Segment, idx uint16) error {
	var v uint16

	if seg == instr.Constant {
		v = idx
	} else {
		addr, err := fs.address(seg, idx)
		if err != nil {
			return err
		}

		v, err = fs.read(addr)
		if err != nil {
			return err
		}
	}

	return fs.push(v)
}

func (fs *FunctionalSimulator) runPop(seg instr.Segment, idx uint16) error {
	if seg == instr.Constant {
		return errors.Wrap(codegen.ErrUnsupportedSegment, "pop constant")
	}

	addr, err := fs.address(seg, idx)
	if err != nil {
		return err
	}

	v, err := fs.pop()
	if err != nil {
		return err
	}

	return fs.write(addr, v)
}

// address computes the effective address of seg[idx].
func (fs *FunctionalSimulator) address(seg instr.Segment, idx uint16) (uint16, error) {
	switch seg {
	case instr.Local:
		return fs.memory[addrLCL] + idx, nil
	case instr.Argument:
		return fs.memory[addrARG] + idx, nil
	case instr.This:
		return fs.memory[addrTHIS] + idx, nil
	case instr.That:
		return fs.memory[addrTHAT] + idx, nil
	case instr.Temp:
		if idx >= codegen.TempCells {
			return 0, errors.Wrapf(codegen.ErrUnsupportedSegment, "temp %d", idx)
		}

		return addrTemp + idx, nil
	case instr.Pointer:
		if idx > 1 {
			return 0, errors.Wrapf(codegen.ErrUnsupportedSegment, "pointer %d", idx)
		}

		return addrTHIS + idx, nil
	case instr.Static:
		if fs.staticMode == codegen.StaticReject {
			return 0, errors.Wrap(codegen.ErrNotImplemented, "static segment")
		}

		return fs.statics.Resolve(codegen.StaticSymbol(fs.script, idx)), nil
	default:
		return 0, errors.Wrapf(codegen.ErrUnsupportedSegment, "segment %s", seg)
	}
}

func (fs *FunctionalSimulator) push(v uint16) error {
	sp := fs.memory[addrSP]
	if err := fs.write(sp, v); err != nil {
		return err
	}

	fs.memory[addrSP] = sp + 1

	return nil
}

func (fs *FunctionalSimulator) pop() (uint16, error) {
	sp := fs.memory[addrSP]
	if sp <= fs.stackBase {
		return 0, errors.Wrap(ErrStackUnderflow, "pop")
	}

	sp--
	fs.memory[addrSP] = sp

	return fs.read(sp)
}

func (fs *FunctionalSimulator) read(addr uint16) (uint16, error) {
	if int(addr) >= len(fs.memory) {
		return 0, errors.Errorf("read RAM[%d] out of range", addr)
	}

	return fs.memory[addr], nil
}

func (fs *FunctionalSimulator) write(addr, v uint16) error {
	if int(addr) >= len(fs.memory) {
		return errors.Errorf("write RAM[%d] out of range", addr)
	}

	fs.memory[addr] = v

	return nil
}
