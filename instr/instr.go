// Package instr defines the stack-machine VM instructions consumed by the
// translator and the parser that reads them from source text.
package instr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrMalformedCommand is returned when a line does not parse into a valid
// operation, segment and index.
var ErrMalformedCommand = errors.New("malformed command")

// Operation is the kind of a VM instruction.
type Operation int

const (
	Add Operation = iota
	Subtract
	Push
	Pop
)

var opNames = map[Operation]string{
	Add:      "add",
	Subtract: "sub",
	Push:     "push",
	Pop:      "pop",
}

var opsByName = map[string]Operation{
	"add":  Add,
	"sub":  Subtract,
	"push": Push,
	"pop":  Pop,
}

func (o Operation) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}

	return fmt.Sprintf("Operation(%d)", int(o))
}

// IsArithmetic reports whether the operation consumes stack operands only.
func (o Operation) IsArithmetic() bool {
	return o == Add || o == Subtract
}

// IsMemoryAccess reports whether the operation moves data between the stack
// and a segment.
func (o Operation) IsMemoryAccess() bool {
	return o == Push || o == Pop
}

// Command is one parsed VM instruction. Segment and Index are only
// meaningful for push and pop.
type Command struct {
	Op      Operation
	Segment Segment
	Index   uint16
}

// HasSegment reports whether Segment and Index carry data.
func (c Command) HasSegment() bool {
	return c.Op.IsMemoryAccess()
}

// String renders the command as canonical VM source.
func (c Command) String() string {
	if !c.HasSegment() {
		return c.Op.String()
	}

	return fmt.Sprintf("%s %s %d", c.Op, c.Segment, c.Index)
}

// Parse turns one VM source line into a Command. Blank and comment lines
// must be filtered out by the caller.
func Parse(line string) (Command, error) {
	tokens := strings.Split(line, " ")

	op, ok := opsByName[tokens[0]]
	if !ok {
		return Command{}, errors.Wrapf(ErrMalformedCommand,
			"unknown operation %q", tokens[0])
	}

	if op.IsArithmetic() {
		if len(tokens) != 1 {
			return Command{}, errors.Wrapf(ErrMalformedCommand,
				"%s takes no operands, got %d", op, len(tokens)-1)
		}

		return Command{Op: op}, nil
	}

	if len(tokens) != 3 {
		return Command{}, errors.Wrapf(ErrMalformedCommand,
			"%s expects a segment and an index, got %d operands",
			op, len(tokens)-1)
	}

	seg, ok := SegmentByName(tokens[1])
	if !ok {
		return Command{}, errors.Wrapf(ErrMalformedCommand,
			"unknown segment %q", tokens[1])
	}

	idx, err := parseIndex(tokens[2])
	if err != nil {
		return Command{}, err
	}

	return Command{Op: op, Segment: seg, Index: idx}, nil
}

func parseIndex(tok string) (uint16, error) {
	if tok == "" {
		return 0, errors.Wrap(ErrMalformedCommand, "missing index")
	}

	for _, r := range tok {
		if r < '0' || r > '9' {
			return 0, errors.Wrapf(ErrMalformedCommand,
				"index %q is not a non-negative integer", tok)
		}
	}

	v, err := strconv.ParseUint(tok, 10, 16)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformedCommand,
			"index %q is out of range", tok)
	}

	return uint16(v), nil
}
