package core

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"github.com/sarchlab/hackvm/program"
)

func mustInst(text string) program.Instruction {
	inst, err := program.Parse(text)
	Expect(err).NotTo(HaveOccurred())
	return inst
}

var _ = Describe("InstEmulator", func() {
	var (
		ie instEmulator
		s  cpuState
	)

	BeforeEach(func() {
		ie = instEmulator{}
		s = cpuState{
			Memory: make([]uint16, 32),
		}
	})

	Context("when running A-instructions", func() {
		It("should load the literal into A", func() {
			Expect(ie.RunInst(mustInst("@17"), &s)).To(Succeed())

			Expect(s.A).To(Equal(uint16(17)))
			Expect(s.PC).To(Equal(uint16(1)))
			Expect(s.Steps).To(Equal(uint64(1)))
		})
	})

	Context("when running C-instructions", func() {
		It("should read M from RAM[A]", func() {
			s.A = 3
			s.Memory[3] = 40

			Expect(ie.RunInst(mustInst("D=M"), &s)).To(Succeed())

			Expect(s.D).To(Equal(uint16(40)))
		})

		It("should write M at the address held before the instruction", func() {
			s.A = 0
			s.Memory[0] = 10

			Expect(ie.RunInst(mustInst("AM=M-1"), &s)).To(Succeed())

			Expect(s.Memory[0]).To(Equal(uint16(9)))
			Expect(s.Memory[9]).To(Equal(uint16(0)))
			Expect(s.A).To(Equal(uint16(9)))
		})

		It("should accept the commutative spellings", func() {
			s.A = 4
			s.D = 6

			Expect(ie.RunInst(mustInst("D=A+D"), &s)).To(Succeed())

			Expect(s.D).To(Equal(uint16(10)))
		})

		It("should jump to A when the condition holds", func() {
			s.A = 12
			s.D = 0

			Expect(ie.RunInst(mustInst("D;JEQ"), &s)).To(Succeed())

			Expect(s.PC).To(Equal(uint16(12)))
		})

		It("should fall through when the condition fails", func() {
			s.A = 12
			s.D = 1

			Expect(ie.RunInst(mustInst("D;JEQ"), &s)).To(Succeed())

			Expect(s.PC).To(Equal(uint16(1)))
		})

		It("should fault outside memory", func() {
			s.A = 100

			err := ie.RunInst(mustInst("M=1"), &s)

			Expect(errors.Is(err, ErrMemoryFault)).To(BeTrue())
			Expect(s.Steps).To(BeZero())
		})
	})

	It("should refuse to run labels", func() {
		Expect(ie.RunInst(mustInst("(END)"), &s)).NotTo(Succeed())
	})
})
