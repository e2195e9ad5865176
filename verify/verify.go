// Package verify checks translated programs.
//
// It implements two complementary stages:
//
// 1. Static Lint (lint.go): structural and output-contract checks on the
// generated assembly
//   - STRUCT checks: every line is a Hack instruction or a comment
//   - CONTRACT checks: reserved cells are used only as scratch, and the only
//     variables are static cells of the translated script
//
// 2. Functional Simulator (funcsim.go): a reference interpreter of VM
// commands over the same RAM layout the generated code uses. Running it next
// to the translated program on a core.Core from the same initial RAM exposes
// any divergence between the VM semantics and the emitted code.
//
// # Memory Model
//
// Both stages share the Hack RAM layout:
//
//	RAM[0]      SP    next free stack slot
//	RAM[1..4]   LCL ARG THIS THAT base pointers
//	RAM[5..12]  temp segment
//	RAM[13..15] scratch cells, owned by the generated code
//	RAM[16..]   static cells in order of first use
//	RAM[256..]  stack
//
// # Usage Example
//
//	report, err := verify.Verify(vmLines, verify.DefaultSetup("Main"))
//	if err != nil {
//	    panic(err) // translation failed
//	}
//	report.WriteReport(os.Stdout)
package verify

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sarchlab/hackvm/codegen"
	"github.com/sarchlab/hackvm/core"
	"github.com/sarchlab/hackvm/instr"
)

// IssueType categorizes lint issues
type IssueType string

const (
	IssueStruct   IssueType = "STRUCT"   // Line is not valid assembly
	IssueContract IssueType = "CONTRACT" // Output contract violated
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType              // STRUCT or CONTRACT
	Line    int                    // 1-based output line, -1 if not applicable
	Message string                 // Human-readable description
	Details map[string]interface{} // Additional structured data
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] line %d: %s", i.Type, i.Line, i.Message)
}

// ErrStackUnderflow is returned when the reference model pops an empty
// stack.
var ErrStackUnderflow = errors.New("stack underflow")

// FunctionalSimulator executes VM commands directly.
type FunctionalSimulator struct {
	script     string
	staticMode codegen.StaticMode
	memory     []uint16
	stackBase  uint16
	statics    *core.SymbolTable
	executed   int
}

// NewFunctionalSimulator creates a simulator for the commands of script
// with memorySize RAM cells. Pops below stackBase fail.
func NewFunctionalSimulator(
	script string,
	mode codegen.StaticMode,
	memorySize int,
	stackBase uint16,
) *FunctionalSimulator {
	return &FunctionalSimulator{
		script:     script,
		staticMode: mode,
		memory:     make([]uint16, memorySize),
		stackBase:  stackBase,
		statics:    core.NewSymbolTable(),
	}
}

// PreloadMemory sets RAM[address].
func (fs *FunctionalSimulator) PreloadMemory(address, value uint16) error {
	if int(address) >= len(fs.memory) {
		return errors.Errorf("address %d out of range", address)
	}

	fs.memory[address] = value

	return nil
}

// GetMemoryValue retrieves RAM[address].
func (fs *FunctionalSimulator) GetMemoryValue(address uint16) uint16 {
	if int(address) >= len(fs.memory) {
		return 0
	}

	return fs.memory[address]
}

// StaticAddress returns the cell of static idx, if it has been used.
func (fs *FunctionalSimulator) StaticAddress(idx uint16) (uint16, bool) {
	return fs.statics.Lookup(codegen.StaticSymbol(fs.script, idx))
}

// Executed returns the number of commands run so far.
func (fs *FunctionalSimulator) Executed() int {
	return fs.executed
}

// MemorySize returns the number of RAM cells.
func (fs *FunctionalSimulator) MemorySize() int {
	return len(fs.memory)
}

// RunCommands executes cmds in order, stopping at the first failure.
func (fs *FunctionalSimulator) RunCommands(cmds []instr.Command) error {
	for _, cmd := range cmds {
		if err := fs.Execute(cmd); err != nil {
			return errors.Wrapf(err, "command %d %q", fs.executed+1, cmd)
		}
	}

	return nil
}
