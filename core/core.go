// Package core models the Hack CPU: an assembler-loader, an instruction
// emulator and a ticking component that runs a program on an akita engine.
package core

import (
	"github.com/pkg/errors"
	"github.com/sarchlab/akita/v4/sim"
)

// ErrStepLimit is returned when a program runs longer than allowed.
var ErrStepLimit = errors.New("step limit exceeded")

// Core is a Hack CPU that executes one instruction per cycle.
type Core struct {
	*sim.TickingComponent

	state     cpuState
	emu       instEmulator
	prog      Program
	stepLimit uint64
	err       error
}

// MapProgram sets the program that the core needs to run and rewinds the
// program counter. Memory is kept.
func (c *Core) MapProgram(prog Program) {
	c.prog = prog
	c.state.PC = 0
	c.state.Steps = 0
	c.err = nil
}

// Start schedules the first tick.
func (c *Core) Start() {
	c.TickNow()
}

// Tick runs the program for one cycle.
func (c *Core) Tick() (madeProgress bool) {
	if c.Halted() {
		return false
	}

	if c.stepLimit > 0 && c.state.Steps >= c.stepLimit {
		c.err = errors.Wrapf(ErrStepLimit, "%d steps", c.stepLimit)
		return false
	}

	inst := c.prog.Insts[c.state.PC]

	err := c.emu.RunInst(inst, &c.state)
	if err != nil {
		c.err = err
		return false
	}

	Trace("Inst",
		"Core", c.Name(),
		"Time", float64(c.Engine.CurrentTime()*1e9),
		"Inst", inst.Raw,
		"PC", c.state.PC,
		"A", c.state.A,
		"D", c.state.D,
	)

	return true
}

// Halted reports whether execution has stopped, either by running past the
// last instruction or by a fault.
func (c *Core) Halted() bool {
	return c.err != nil || int(c.state.PC) >= c.prog.Len()
}

// Err returns the fault that stopped the core, if any.
func (c *Core) Err() error {
	return c.err
}

// Steps returns the number of instructions executed since MapProgram.
func (c *Core) Steps() uint64 {
	return c.state.Steps
}

// Registers returns A, D and PC.
func (c *Core) Registers() (a, d, pc uint16) {
	return c.state.A, c.state.D, c.state.PC
}

// ReadMemory returns RAM[addr].
func (c *Core) ReadMemory(addr uint16) uint16 {
	return c.state.Memory[addr]
}

// WriteMemory sets RAM[addr].
func (c *Core) WriteMemory(addr uint16, data uint16) {
	c.state.Memory[addr] = data
}

// MemorySize returns the number of RAM cells.
func (c *Core) MemorySize() int {
	return len(c.state.Memory)
}
