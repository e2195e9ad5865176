package main

import (
	"fmt"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"github.com/sarchlab/hackvm/config"
	"github.com/sarchlab/hackvm/core"
	"github.com/sarchlab/hackvm/verify"
	"github.com/spf13/cobra"
)

type runFlags struct {
	translateFlags

	sp, lcl, arg, this, that uint16
	steps                    uint64
	verify                   bool
}

var rFlags runFlags

var runCmd = &cobra.Command{
	Use:   "run file.vm",
	Short: "Translate a VM script and execute it on a simulated Hack CPU",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(cmd, rFlags.translateFlags)
		if err != nil {
			return err
		}

		return runFile(args[0], opts, rFlags)
	},
}

func init() {
	addOptionFlags(runCmd, &rFlags.translateFlags)

	f := runCmd.Flags()
	f.Uint16Var(&rFlags.sp, "sp", 256, "initial stack pointer")
	f.Uint16Var(&rFlags.lcl, "lcl", 300, "initial local base")
	f.Uint16Var(&rFlags.arg, "arg", 400, "initial argument base")
	f.Uint16Var(&rFlags.this, "this", 3000, "initial this base")
	f.Uint16Var(&rFlags.that, "that", 3010, "initial that base")
	f.Uint64Var(&rFlags.steps, "steps", 100000, "maximum number of executed instructions")
	f.BoolVar(&rFlags.verify, "verify", false,
		"check the result against the reference model")

	rootCmd.AddCommand(runCmd)
}

func (f runFlags) preload() map[uint16]uint16 {
	return map[uint16]uint16{
		0: f.sp,
		1: f.lcl,
		2: f.arg,
		3: f.this,
		4: f.that,
	}
}

func runFile(input string, opts config.Options, f runFlags) error {
	e, err := translate(input, opts)
	if err != nil {
		return err
	}

	machine := config.MachineBuilder{}.
		WithStepLimit(f.steps).
		Build("Machine")
	if err := machine.Load(e.Lines()); err != nil {
		return errors.Wrap(err, "assembling translated program")
	}

	for addr, v := range f.preload() {
		machine.Preload(addr, v)
	}

	runErr := machine.Run()
	core.PrintState(os.Stdout, machine.CPU())

	if runErr != nil {
		return errors.Wrap(runErr, "running program")
	}

	fmt.Println(aurora.Green(fmt.Sprintf("Halted after %d instructions",
		machine.CPU().Steps())))

	if !f.verify {
		return nil
	}

	return verifyFile(input, opts, f)
}

func verifyFile(input string, opts config.Options, f runFlags) error {
	lines, err := readLines(input)
	if err != nil {
		return err
	}

	setup := verify.DefaultSetup(scriptName(input))
	setup.Options = opts
	setup.Preload = f.preload()
	setup.StackBase = f.sp
	setup.MaxSteps = f.steps

	report, err := verify.Verify(lines, setup)
	if err != nil {
		return err
	}

	report.WriteReport(os.Stdout)
	if !report.OK() {
		return errors.New("program failed verification")
	}

	return nil
}
