package program_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"github.com/sarchlab/hackvm/program"
)

var _ = Describe("Instruction", func() {
	It("should clean comments and whitespace", func() {
		Expect(program.Clean("  D = M // load")).To(Equal("D=M"))
		Expect(program.Clean("// Performing general push")).To(Equal(""))
		Expect(program.Clean("\t@SP\r")).To(Equal("@SP"))
	})

	It("should parse literal A-instructions", func() {
		inst, err := program.Parse("@32767")

		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Kind).To(Equal(program.AInstruction))
		Expect(inst.Value).To(Equal(uint16(32767)))
		Expect(inst.Symbol).To(BeEmpty())
	})

	It("should parse symbolic A-instructions", func() {
		inst, err := program.Parse("@Foo.3")

		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Symbol).To(Equal("Foo.3"))
	})

	It("should parse labels", func() {
		inst, err := program.Parse("(LOOP)")

		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Kind).To(Equal(program.LabelDecl))
		Expect(inst.Symbol).To(Equal("LOOP"))
	})

	It("should parse C-instructions with dest and jump", func() {
		inst, err := program.Parse("AM=M-1;JNE")

		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Kind).To(Equal(program.CInstruction))
		Expect(inst.Dest.Has(program.DestA)).To(BeTrue())
		Expect(inst.Dest.Has(program.DestM)).To(BeTrue())
		Expect(inst.Comp.Mnemonic).To(Equal("M-1"))
		Expect(inst.JumpMnemonic).To(Equal("JNE"))
		Expect(inst.Jump).NotTo(BeNil())
	})

	It("should parse a bare jump", func() {
		inst, err := program.Parse("0;JMP")

		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Dest).To(Equal(program.Dest(0)))
		Expect(inst.Comp.Mnemonic).To(Equal("0"))
	})

	DescribeTable("bad instructions",
		func(line string) {
			_, err := program.Parse(line)

			Expect(errors.Is(err, program.ErrBadInstruction)).To(BeTrue())
		},
		Entry("empty", ""),
		Entry("literal too large", "@32768"),
		Entry("bad symbol", "@a-b"),
		Entry("unterminated label", "(LOOP"),
		Entry("label starting with digit", "(1LOOP)"),
		Entry("empty dest", "=M"),
		Entry("bad dest", "X=M"),
		Entry("bad jump", "D;JXX"),
		Entry("bad comp", "D=D*M"),
	)

	It("should recognize symbols", func() {
		Expect(program.IsSymbol("Main.0")).To(BeTrue())
		Expect(program.IsSymbol("a_b$c:d")).To(BeTrue())
		Expect(program.IsSymbol("0abc")).To(BeFalse())
		Expect(program.IsSymbol("my-file")).To(BeFalse())
		Expect(program.IsSymbol("")).To(BeFalse())
	})
})
