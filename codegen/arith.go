package codegen

import (
	"github.com/pkg/errors"
	"github.com/sarchlab/hackvm/instr"
)

// arithmetic replaces the two topmost stack slots with their sum or
// difference. Only SP and the two operand slots are touched.
func (g *Generator) arithmetic(op instr.Operation) ([]string, error) {
	var combine string

	switch op {
	case instr.Add:
		combine = "D=D+M"
	case instr.Subtract:
		combine = "D=D-M"
	default:
		return nil, errors.Wrapf(ErrUnsupportedSegment,
			"%s is not an arithmetic operation", op)
	}

	b := g.newBuilder()
	b.comment("Performing general sub or add")
	b.at(StackPointer)
	b.emit(
		"M=M-1",
		"A=M-1",
		"D=M",
		"A=A+1",
		combine,
		"A=A-1",
		"M=D",
	)

	return b.lines, nil
}
