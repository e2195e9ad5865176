package core_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/hackvm/core"
)

var _ = Describe("LoadProgram", func() {
	It("should skip comments and blank lines", func() {
		prog, err := core.LoadProgram([]string{
			"// Performing constant push",
			"",
			"@7",
			"D=A // seven",
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Len()).To(Equal(2))
		Expect(prog.SourceLines).To(Equal([]int{3, 4}))
	})

	It("should bind predefined symbols", func() {
		prog, err := core.LoadProgram([]string{"@SP", "@THAT", "@R13", "@KBD"})

		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Insts[0].Value).To(Equal(uint16(0)))
		Expect(prog.Insts[1].Value).To(Equal(uint16(4)))
		Expect(prog.Insts[2].Value).To(Equal(uint16(13)))
		Expect(prog.Insts[3].Value).To(Equal(uint16(0x6000)))
	})

	It("should allocate variables from 16 in order of first use", func() {
		prog, err := core.LoadProgram([]string{"@Foo.3", "@Foo.0", "@Foo.3"})

		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Insts[0].Value).To(Equal(uint16(16)))
		Expect(prog.Insts[1].Value).To(Equal(uint16(17)))
		Expect(prog.Insts[2].Value).To(Equal(uint16(16)))
		Expect(prog.Symbols.Variables()).To(Equal(2))
	})

	It("should bind labels to the next instruction, including forward uses", func() {
		prog, err := core.LoadProgram([]string{"@END", "0;JMP", "(END)", "@END"})

		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Len()).To(Equal(3))
		Expect(prog.Insts[0].Value).To(Equal(uint16(2)))
		Expect(prog.Symbols.Variables()).To(BeZero())
	})

	It("should reject redefined labels", func() {
		_, err := core.LoadProgram([]string{"(A)", "(A)"})
		Expect(err).To(MatchError(ContainSubstring("redefined")))
	})

	It("should report the failing line", func() {
		_, err := core.LoadProgram([]string{"@1", "D=D*A"})
		Expect(err).To(MatchError(ContainSubstring("line 2")))
	})

	It("should load programs from files", func() {
		path := filepath.Join(GinkgoT().TempDir(), "prog.asm")
		Expect(os.WriteFile(path, []byte("@2\nD=A\n"), 0o644)).To(Succeed())

		prog, err := core.LoadProgramFile(path)

		Expect(err).NotTo(HaveOccurred())
		Expect(prog.Len()).To(Equal(2))
	})

	It("should fail on missing files", func() {
		_, err := core.LoadProgramFile("no/such/file.asm")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("SymbolTable", func() {
	It("should let bindings override predefined names", func() {
		t := core.NewSymbolTable()
		t.Bind("R5", 99)

		addr, ok := t.Lookup("R5")
		Expect(ok).To(BeTrue())
		Expect(addr).To(Equal(uint16(99)))
	})

	It("should not allocate for known names", func() {
		t := core.NewSymbolTable()

		Expect(t.Resolve("LCL")).To(Equal(uint16(1)))
		Expect(t.Variables()).To(BeZero())
	})
})
