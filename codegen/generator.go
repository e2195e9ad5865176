package codegen

import (
	"github.com/pkg/errors"
	"github.com/sarchlab/hackvm/instr"
)

// Options tune the generated code.
type Options struct {
	StaticMode StaticMode
	// Scratch is the cell used by indirect pops, DefaultScratch when empty.
	Scratch string
	// Comments adds a comment line at the head of every block.
	Comments bool
}

// DefaultOptions returns the options that reproduce the reference output.
func DefaultOptions() Options {
	return Options{
		StaticMode: StaticGlobal,
		Scratch:    DefaultScratch,
		Comments:   true,
	}
}

// Generator turns commands of one script into blocks.
type Generator struct {
	opts     Options
	resolver Resolver
}

// NewGenerator creates a generator for the script named script.
func NewGenerator(script string, opts Options) *Generator {
	if opts.Scratch == "" {
		opts.Scratch = DefaultScratch
	}

	return &Generator{
		opts: opts,
		resolver: Resolver{
			Script:     script,
			StaticMode: opts.StaticMode,
		},
	}
}

// Generate emits the block for cmd.
func (g *Generator) Generate(cmd instr.Command) (Block, error) {
	var (
		lines []string
		err   error
	)

	switch cmd.Op {
	case instr.Add, instr.Subtract:
		lines, err = g.arithmetic(cmd.Op)
	case instr.Push:
		lines, err = g.push(cmd.Segment, cmd.Index)
	case instr.Pop:
		lines, err = g.pop(cmd.Segment, cmd.Index)
	default:
		err = errors.Wrapf(ErrUnsupportedSegment, "operation %s", cmd.Op)
	}

	if err != nil {
		return Block{}, errors.Wrapf(err, "%s", cmd)
	}

	return Block{Source: cmd, Lines: lines}, nil
}

func (g *Generator) newBuilder() *asmBuilder {
	return &asmBuilder{comments: g.opts.Comments}
}
