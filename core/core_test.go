package core_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/hackvm/core"
)

var _ = Describe("Core", func() {
	var (
		engine sim.Engine
		c      *core.Core
	)

	build := func(b core.Builder) {
		engine = sim.NewSerialEngine()
		c = b.WithEngine(engine).Build("CPU")
	}

	load := func(lines ...string) {
		prog, err := core.LoadProgram(lines)
		Expect(err).NotTo(HaveOccurred())
		c.MapProgram(prog)
	}

	run := func() {
		c.Start()
		Expect(engine.Run()).To(Succeed())
	}

	BeforeEach(func() {
		build(core.NewBuilder())
	})

	It("should run until it passes the last instruction", func() {
		load("@7", "D=A", "@20", "M=D")
		run()

		Expect(c.Halted()).To(BeTrue())
		Expect(c.Err()).NotTo(HaveOccurred())
		Expect(c.Steps()).To(Equal(uint64(4)))
		Expect(c.ReadMemory(20)).To(Equal(uint16(7)))

		a, d, pc := c.Registers()
		Expect(a).To(Equal(uint16(20)))
		Expect(d).To(Equal(uint16(7)))
		Expect(pc).To(Equal(uint16(4)))
	})

	It("should keep memory across programs", func() {
		c.WriteMemory(0, 256)
		load("@SP", "M=M+1")
		run()

		Expect(c.ReadMemory(0)).To(Equal(uint16(257)))
	})

	It("should stop at the step limit", func() {
		build(core.NewBuilder().WithStepLimit(10))
		load("(LOOP)", "@LOOP", "0;JMP")
		run()

		Expect(errors.Is(c.Err(), core.ErrStepLimit)).To(BeTrue())
		Expect(c.Steps()).To(Equal(uint64(10)))
	})

	It("should stop on memory faults", func() {
		build(core.NewBuilder().WithMemorySize(16))
		load("@20", "M=1", "@0", "M=1")
		run()

		Expect(errors.Is(c.Err(), core.ErrMemoryFault)).To(BeTrue())
		Expect(c.Steps()).To(Equal(uint64(1)))
		Expect(c.ReadMemory(0)).To(BeZero())
	})

	It("should do nothing for an empty program", func() {
		load()
		run()

		Expect(c.Steps()).To(BeZero())
		Expect(c.Halted()).To(BeTrue())
	})

	It("should reject impossible memory sizes", func() {
		Expect(func() { core.NewBuilder().WithMemorySize(0) }).To(Panic())
		Expect(func() { core.NewBuilder().WithMemorySize(0x10001) }).To(Panic())
	})

	It("should print its state", func() {
		load("@7", "D=A", "@5", "M=D")
		run()

		var buf bytes.Buffer
		core.PrintState(&buf, c)

		out := strings.ToLower(buf.String())
		Expect(out).To(ContainSubstring("cpu registers"))
		Expect(out).To(ContainSubstring("temp"))
		Expect(c.MemorySize()).To(Equal(core.DefaultMemorySize))
	})
})
