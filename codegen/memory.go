package codegen

import (
	"github.com/pkg/errors"
	"github.com/sarchlab/hackvm/instr"
)

func (g *Generator) push(seg instr.Segment, idx uint16) ([]string, error) {
	addr, err := g.resolver.Resolve(seg, idx)
	if err != nil {
		return nil, err
	}

	b := g.newBuilder()

	switch a := addr.(type) {
	case Indirect:
		b.comment("Performing general push")
		b.at(a.Base)
		b.emit("D=M")
		b.atValue(a.Offset)
		b.emit("A=A+D", "D=M")
	case Direct:
		b.comment("Performing " + seg.String() + " push")
		b.at(a.Symbol)
		b.emit("D=M")
	case Immediate:
		b.comment("Performing constant push")
		b.atValue(a.Value)
		b.emit("D=A")
	default:
		return nil, errors.Wrapf(ErrUnsupportedSegment, "push %s", seg)
	}

	b.pushD()

	return b.lines, nil
}

func (g *Generator) pop(seg instr.Segment, idx uint16) ([]string, error) {
	if seg == instr.Constant {
		return nil, errors.Wrap(ErrUnsupportedSegment,
			"constant is not a pop target")
	}

	addr, err := g.resolver.Resolve(seg, idx)
	if err != nil {
		return nil, err
	}

	b := g.newBuilder()

	switch a := addr.(type) {
	case Indirect:
		// The effective address is parked in the scratch cell because
		// popping the stack overwrites A.
		b.comment("Performing general pop")
		b.at(a.Base)
		b.emit("D=M")
		b.atValue(a.Offset)
		b.emit("D=A+D")
		b.at(g.opts.Scratch)
		b.emit("M=D")
		b.popD()
		b.at(g.opts.Scratch)
		b.emit("A=M", "M=D")
	case Direct:
		b.comment("Performing " + seg.String() + " pop")
		b.popD()
		b.at(a.Symbol)
		b.emit("M=D")
	default:
		return nil, errors.Wrapf(ErrUnsupportedSegment, "pop %s", seg)
	}

	return b.lines, nil
}
