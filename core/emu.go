package core

import (
	"github.com/pkg/errors"
	"github.com/sarchlab/hackvm/program"
)

// ErrMemoryFault is returned when an instruction touches a cell outside the
// machine's memory.
var ErrMemoryFault = errors.New("memory fault")

type cpuState struct {
	PC     uint16
	A, D   uint16
	Memory []uint16
	Steps  uint64
}

func (s *cpuState) read(addr uint16) (uint16, error) {
	if int(addr) >= len(s.Memory) {
		return 0, errors.Wrapf(ErrMemoryFault, "read RAM[%d]", addr)
	}

	return s.Memory[addr], nil
}

func (s *cpuState) write(addr, v uint16) error {
	if int(addr) >= len(s.Memory) {
		return errors.Wrapf(ErrMemoryFault, "write RAM[%d]", addr)
	}

	s.Memory[addr] = v

	return nil
}

type instEmulator struct {
}

// RunInst executes one instruction and advances the program counter.
func (i instEmulator) RunInst(inst program.Instruction, state *cpuState) error {
	var err error

	switch inst.Kind {
	case program.AInstruction:
		i.runA(inst, state)
	case program.CInstruction:
		err = i.runC(inst, state)
	default:
		err = errors.Errorf("cannot execute %q", inst.Raw)
	}

	if err != nil {
		return errors.Wrapf(err, "pc=%d %s", state.PC, inst.Raw)
	}

	state.Steps++

	return nil
}

func (i instEmulator) runA(inst program.Instruction, state *cpuState) {
	state.A = inst.Value
	state.PC++
}

// runC evaluates comp, then stores to M (at the A value before this
// instruction), A and D, then jumps to the old A if the condition holds.
func (i instEmulator) runC(inst program.Instruction, state *cpuState) error {
	y := state.A
	if inst.Comp.UsesM {
		m, err := state.read(state.A)
		if err != nil {
			return err
		}

		y = m
	}

	out := inst.Comp.Fn(state.D, y)
	addr := state.A

	if inst.Dest.Has(program.DestM) {
		if err := state.write(addr, out); err != nil {
			return err
		}
	}

	if inst.Dest.Has(program.DestA) {
		state.A = out
	}

	if inst.Dest.Has(program.DestD) {
		state.D = out
	}

	if inst.Jump != nil && inst.Jump(int16(out)) {
		state.PC = addr
		return nil
	}

	state.PC++

	return nil
}
