package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sarchlab/hackvm/codegen"
	"github.com/sarchlab/hackvm/config"
	"github.com/sarchlab/hackvm/core"
	"github.com/sarchlab/hackvm/instr"
)

const (
	maxMismatches = 20

	firstScratch = 13
	lastScratch  = 15
)

// Setup describes the machine a program is verified on.
type Setup struct {
	Script     string
	Options    config.Options
	Preload    map[uint16]uint16
	MemorySize int
	StackBase  uint16
	MaxSteps   uint64
}

// DefaultSetup places the stack at 256 and the segments at the addresses
// used by the classic VM test scripts.
func DefaultSetup(script string) Setup {
	return Setup{
		Script:  script,
		Options: config.Default(),
		Preload: map[uint16]uint16{
			0: 256,
			1: 300,
			2: 400,
			3: 3000,
			4: 3010,
		},
		MemorySize: core.DefaultMemorySize,
		StackBase:  256,
		MaxSteps:   100000,
	}
}

// Mismatch is a RAM cell on which the program and the reference disagree.
type Mismatch struct {
	Address  uint16
	Program  uint16
	Expected uint16
}

// VerificationReport represents a complete verification report
type VerificationReport struct {
	Script        string
	CommandCount  int
	Assembly      []string
	LintIssues    []Issue
	Steps         uint64
	SimulationErr error
	ReferenceErr  error
	Mismatches    []Mismatch
	MismatchCount int
}

// OK reports whether every stage passed.
func (r *VerificationReport) OK() bool {
	return len(r.LintIssues) == 0 &&
		r.SimulationErr == nil &&
		r.ReferenceErr == nil &&
		r.MismatchCount == 0
}

// Verify translates vmLines, lints the output, runs it on a Hack machine and
// compares the final RAM with the reference model. The returned error is
// the translation failure, if any; every later stage is reported.
func Verify(vmLines []string, setup Setup) (*VerificationReport, error) {
	if setup.MemorySize == 0 {
		setup.MemorySize = core.DefaultMemorySize
	}

	tr, err := setup.Options.Translator()
	if err != nil {
		return nil, err
	}

	blocks, err := tr.TranslateBlocks(setup.Script, vmLines)
	if err != nil {
		return nil, err
	}

	e := &codegen.Emitter{}
	cmds := make([]instr.Command, 0, len(blocks))
	for _, b := range blocks {
		e.Append(b)
		cmds = append(cmds, b.Source)
	}

	report := &VerificationReport{
		Script:       setup.Script,
		CommandCount: len(cmds),
		Assembly:     e.Lines(),
	}

	report.LintIssues = RunLint(report.Assembly, LintOptions{
		Script:  setup.Script,
		Scratch: setup.Options.ScratchRegister,
	})

	machine := config.MachineBuilder{}.
		WithMemorySize(setup.MemorySize).
		WithStepLimit(setup.MaxSteps).
		Build("Verify")
	if err := machine.Load(report.Assembly); err != nil {
		return nil, errors.Wrap(err, "assembling translated program")
	}

	mode, _ := codegen.ParseStaticMode(setup.Options.StaticMode)
	fs := NewFunctionalSimulator(setup.Script, mode, setup.MemorySize, setup.StackBase)

	for addr, v := range setup.Preload {
		if err := fs.PreloadMemory(addr, v); err != nil {
			return nil, err
		}
		machine.Preload(addr, v)
	}

	report.SimulationErr = machine.Run()
	report.Steps = machine.CPU().Steps()
	report.ReferenceErr = fs.RunCommands(cmds)

	report.compare(machine.Peek, fs)

	return report, nil
}

func (r *VerificationReport) compare(peek func(uint16) uint16, fs *FunctionalSimulator) {
	for a := 0; a < fs.MemorySize(); a++ {
		addr := uint16(a)
		if addr >= firstScratch && addr <= lastScratch {
			continue
		}

		got, want := peek(addr), fs.GetMemoryValue(addr)
		if got == want {
			continue
		}

		r.MismatchCount++
		if len(r.Mismatches) < maxMismatches {
			r.Mismatches = append(r.Mismatches, Mismatch{
				Address:  addr,
				Program:  got,
				Expected: want,
			})
		}
	}
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)
	dash := strings.Repeat("-", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "VERIFICATION REPORT: %s\n", r.Script)
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "\n✓ Translated %d commands into %d lines\n",
		r.CommandCount, len(r.Assembly))

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 1: STATIC LINT CHECKS")
	fmt.Fprintln(w, separator)

	if len(r.LintIssues) == 0 {
		fmt.Fprintln(w, "✓ No lint issues found!")
	} else {
		fmt.Fprintf(w, "⚠ Found %d lint issues:\n", len(r.LintIssues))
		fmt.Fprintln(w, dash)
		for _, issue := range r.LintIssues {
			fmt.Fprintf(w, "  %s\n", issue)
		}
	}

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 2: EXECUTION AGAINST REFERENCE MODEL")
	fmt.Fprintln(w, separator)

	fmt.Fprintf(w, "Executed %d instructions\n", r.Steps)
	if r.SimulationErr != nil {
		fmt.Fprintf(w, "⚠ Program error: %v\n", r.SimulationErr)
	}
	if r.ReferenceErr != nil {
		fmt.Fprintf(w, "⚠ Reference error: %v\n", r.ReferenceErr)
	}

	if r.MismatchCount == 0 {
		fmt.Fprintln(w, "✓ RAM matches the reference model")
	} else {
		fmt.Fprintf(w, "⚠ %d RAM cells differ:\n", r.MismatchCount)
		fmt.Fprintln(w, dash)
		for _, m := range r.Mismatches {
			fmt.Fprintf(w, "  RAM[%d]: program %d, expected %d\n",
				m.Address, int16(m.Program), int16(m.Expected))
		}
	}

	fmt.Fprintln(w, "\n"+separator)
	if r.OK() {
		fmt.Fprintln(w, "✓ PROGRAM PASSED ALL CHECKS")
	} else {
		fmt.Fprintln(w, "⚠ PROGRAM FAILED VERIFICATION")
	}
	fmt.Fprintln(w)
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create report file")
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
