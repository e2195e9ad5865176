package api_test

import (
	"github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"github.com/sarchlab/hackvm/api"
	"github.com/sarchlab/hackvm/codegen"
	"github.com/sarchlab/hackvm/instr"
)

func blockOf(gen *codegen.Generator, line string) []string {
	cmd, err := instr.Parse(line)
	Expect(err).NotTo(HaveOccurred())

	b, err := gen.Generate(cmd)
	Expect(err).NotTo(HaveOccurred())

	return b.Lines
}

var _ = Describe("Translator", func() {
	var (
		mockCtrl *gomock.Controller
		listener *MockListener
		tr       api.Translator
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		listener = NewMockListener(mockCtrl)
		tr = api.TranslatorBuilder{}.Build()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should concatenate the blocks of every command in order", func() {
		src := []string{"push constant 7", "push constant 8", "add", "pop local 0"}

		out, err := tr.Translate("Main", src)
		Expect(err).NotTo(HaveOccurred())

		gen := codegen.NewGenerator("Main", codegen.DefaultOptions())
		var want []string
		for _, line := range src {
			want = append(want, blockOf(gen, line)...)
		}

		Expect(out).To(Equal(want))
	})

	It("should skip blank lines, comments and carriage returns", func() {
		out, err := tr.Translate("Main", []string{
			"// setup",
			"",
			"push constant 1\r",
			"\r",
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HaveLen(7))
		Expect(out[1]).To(Equal("@1"))
	})

	It("should produce nothing for empty input", func() {
		out, err := tr.Translate("Main", nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(BeEmpty())
	})

	It("should name static cells after the script", func() {
		out, err := tr.Translate("Foo", []string{"push static 3"})

		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainElement("@Foo.3"))
	})

	It("should translate each command independently of its neighbours", func() {
		alone, err := tr.Translate("Main", []string{"pop that 4"})
		Expect(err).NotTo(HaveOccurred())

		both, err := tr.Translate("Main", []string{"push constant 2", "pop that 4"})
		Expect(err).NotTo(HaveOccurred())

		Expect(both[len(both)-len(alone):]).To(Equal(alone))
	})

	Context("when a line fails", func() {
		It("should return no output and the first failing line", func() {
			out, err := tr.Translate("Main", []string{
				"push constant 1",
				"",
				"pop constant 3",
				"frobnicate",
			})

			Expect(out).To(BeNil())

			var lineErr *api.LineError
			Expect(errors.As(err, &lineErr)).To(BeTrue())
			Expect(lineErr.Line).To(Equal(3))
			Expect(lineErr.Text).To(Equal("pop constant 3"))
			Expect(errors.Is(err, codegen.ErrUnsupportedSegment)).To(BeTrue())
			Expect(errors.Cause(err)).To(Equal(errors.Cause(lineErr.Err)))
		})

		It("should report malformed commands", func() {
			_, err := tr.Translate("Main", []string{"push nosuch 3"})

			Expect(errors.Is(err, instr.ErrMalformedCommand)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("line 1"))
		})

		It("should collect every failing line when asked", func() {
			tr = api.TranslatorBuilder{}.WithCollectErrors(true).Build()

			out, err := tr.Translate("Main", []string{
				"frobnicate",
				"push constant 1",
				"push temp 9",
			})

			Expect(out).To(BeNil())

			var all api.TranslationErrors
			Expect(errors.As(err, &all)).To(BeTrue())
			Expect(all).To(HaveLen(2))
			Expect(all[0].Line).To(Equal(1))
			Expect(all[1].Line).To(Equal(3))
			Expect(errors.Is(err, instr.ErrMalformedCommand)).To(BeTrue())
			Expect(errors.Is(err, codegen.ErrUnsupportedSegment)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("2 lines failed"))
		})
	})

	Context("with options", func() {
		It("should reject statics in reject mode", func() {
			opts := codegen.DefaultOptions()
			opts.StaticMode = codegen.StaticReject
			tr = api.TranslatorBuilder{}.WithOptions(opts).Build()

			_, err := tr.Translate("Main", []string{"pop static 0"})

			Expect(errors.Is(err, codegen.ErrNotImplemented)).To(BeTrue())
		})

		It("should drop comment lines when disabled", func() {
			opts := codegen.DefaultOptions()
			opts.Comments = false
			tr = api.TranslatorBuilder{}.WithOptions(opts).Build()

			out, err := tr.Translate("Main", []string{"add"})

			Expect(err).NotTo(HaveOccurred())
			Expect(out[0]).To(Equal("@SP"))
			Expect(out).To(HaveLen(8))
		})
	})

	Context("with listeners", func() {
		It("should notify every command in source order", func() {
			tr = api.TranslatorBuilder{}.WithListener(listener).Build()

			gomock.InOrder(
				listener.EXPECT().OnCommand(1,
					instr.Command{Op: instr.Push, Segment: instr.Constant, Index: 5},
					gomock.Any()),
				listener.EXPECT().OnCommand(3,
					instr.Command{Op: instr.Pop, Segment: instr.Temp, Index: 0},
					gomock.Any()),
			)

			blocks, err := tr.TranslateBlocks("Main", []string{
				"push constant 5",
				"// move it",
				"pop temp 0",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(blocks).To(HaveLen(2))
			Expect(blocks[1].Source.Segment).To(Equal(instr.Temp))
		})

		It("should stop notifying at the first failure", func() {
			tr = api.TranslatorBuilder{}.WithListener(listener).Build()

			listener.EXPECT().OnCommand(1, gomock.Any(), gomock.Any())

			_, err := tr.TranslateBlocks("Main", []string{
				"push constant 5",
				"pop constant 5",
				"push constant 6",
			})

			Expect(err).To(HaveOccurred())
		})
	})
})
