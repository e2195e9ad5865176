package core

import (
	"bufio"
	"os"

	"github.com/pkg/errors"
	"github.com/sarchlab/hackvm/program"
)

// Program is assembly ready to run: labels removed and every symbol bound.
type Program struct {
	Insts []program.Instruction
	// SourceLines holds the 1-based source line of each instruction.
	SourceLines []int
	Symbols     *SymbolTable
}

// Len returns the number of instructions.
func (p Program) Len() int {
	return len(p.Insts)
}

// LoadProgram assembles lines in two passes. The first pass records label
// positions, the second binds A-instruction symbols, allocating variables
// from address 16 in order of first use.
func LoadProgram(lines []string) (Program, error) {
	prog := Program{Symbols: NewSymbolTable()}

	for i, line := range lines {
		text := program.Clean(line)
		if text == "" {
			continue
		}

		inst, err := program.Parse(text)
		if err != nil {
			return Program{}, errors.Wrapf(err, "line %d", i+1)
		}

		if inst.Kind == program.LabelDecl {
			if _, dup := prog.Symbols.Lookup(inst.Symbol); dup {
				return Program{}, errors.Errorf(
					"line %d: label %q redefined", i+1, inst.Symbol)
			}

			prog.Symbols.Bind(inst.Symbol, uint16(len(prog.Insts)))

			continue
		}

		prog.Insts = append(prog.Insts, inst)
		prog.SourceLines = append(prog.SourceLines, i+1)
	}

	for i := range prog.Insts {
		inst := &prog.Insts[i]
		if inst.Kind == program.AInstruction && inst.Symbol != "" {
			inst.Value = prog.Symbols.Resolve(inst.Symbol)
		}
	}

	return prog, nil
}

// LoadProgramFile reads and assembles an .asm file.
func LoadProgramFile(path string) (Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return Program{}, errors.Wrap(err, "LoadProgramFile")
	}
	defer f.Close()

	var lines []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return Program{}, errors.Wrap(err, "LoadProgramFile")
	}

	return LoadProgram(lines)
}
