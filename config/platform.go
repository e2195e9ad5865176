package config

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/hackvm/core"
)

// MachineBuilder can build Hack machines.
type MachineBuilder struct {
	engine     sim.Engine
	freq       sim.Freq
	memorySize int
	stepLimit  uint64
}

// WithEngine sets the engine that drives the machine simulation.
func (b MachineBuilder) WithEngine(engine sim.Engine) MachineBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the machine.
func (b MachineBuilder) WithFreq(freq sim.Freq) MachineBuilder {
	b.freq = freq
	return b
}

// WithMemorySize sets the number of RAM cells.
func (b MachineBuilder) WithMemorySize(cells int) MachineBuilder {
	b.memorySize = cells
	return b
}

// WithStepLimit bounds the number of executed instructions per run.
func (b MachineBuilder) WithStepLimit(n uint64) MachineBuilder {
	b.stepLimit = n
	return b
}

// Build creates a machine. A serial engine is created when none is set.
func (b MachineBuilder) Build(name string) *Machine {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	cb := core.NewBuilder().
		WithEngine(engine).
		WithStepLimit(b.stepLimit)
	if b.freq != 0 {
		cb = cb.WithFreq(b.freq)
	}
	if b.memorySize != 0 {
		cb = cb.WithMemorySize(b.memorySize)
	}

	return &Machine{
		engine: engine,
		cpu:    cb.Build(name + ".CPU"),
	}
}

// A Machine is a Hack CPU with its RAM, driven by an engine.
type Machine struct {
	engine sim.Engine
	cpu    *core.Core
	prog   core.Program
}

// CPU returns the machine's core.
func (m *Machine) CPU() *core.Core {
	return m.cpu
}

// Load assembles lines and maps them onto the CPU.
func (m *Machine) Load(lines []string) error {
	prog, err := core.LoadProgram(lines)
	if err != nil {
		return err
	}

	m.LoadProgram(prog)

	return nil
}

// LoadProgram maps an assembled program onto the CPU.
func (m *Machine) LoadProgram(prog core.Program) {
	m.prog = prog
	m.cpu.MapProgram(prog)
}

// Preload sets RAM[addr] before running.
func (m *Machine) Preload(addr, value uint16) {
	m.cpu.WriteMemory(addr, value)
}

// Peek returns RAM[addr].
func (m *Machine) Peek(addr uint16) uint16 {
	return m.cpu.ReadMemory(addr)
}

// Symbol returns the address the loaded program bound to name.
func (m *Machine) Symbol(name string) (uint16, bool) {
	if m.prog.Symbols == nil {
		return 0, false
	}

	return m.prog.Symbols.Lookup(name)
}

// Run executes the loaded program until it runs past its last instruction.
func (m *Machine) Run() error {
	m.cpu.Start()

	if err := m.engine.Run(); err != nil {
		return err
	}

	core.LogState(m.cpu)

	return m.cpu.Err()
}
