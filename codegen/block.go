package codegen

import (
	"bufio"
	"io"
	"strconv"

	"github.com/sarchlab/hackvm/instr"
)

// Block is the assembly generated for one VM command.
type Block struct {
	Source instr.Command
	Lines  []string
}

// Emitter collects blocks in input order.
type Emitter struct {
	blocks []Block
	lines  int
}

// Append adds b after every block appended before it.
func (e *Emitter) Append(b Block) {
	e.blocks = append(e.blocks, b)
	e.lines += len(b.Lines)
}

// Len returns the number of blocks.
func (e *Emitter) Len() int {
	return len(e.blocks)
}

// Blocks returns the collected blocks.
func (e *Emitter) Blocks() []Block {
	return e.blocks
}

// Lines flattens the blocks into the final program.
func (e *Emitter) Lines() []string {
	out := make([]string, 0, e.lines)
	for _, b := range e.blocks {
		out = append(out, b.Lines...)
	}

	return out
}

// WriteTo writes every line followed by a newline.
func (e *Emitter) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64

	for _, b := range e.blocks {
		for _, l := range b.Lines {
			c, err := bw.WriteString(l + "\n")
			n += int64(c)
			if err != nil {
				return n, err
			}
		}
	}

	return n, bw.Flush()
}

type asmBuilder struct {
	lines    []string
	comments bool
}

func (b *asmBuilder) comment(text string) {
	if b.comments {
		b.lines = append(b.lines, "// "+text)
	}
}

func (b *asmBuilder) at(symbol string) {
	b.lines = append(b.lines, "@"+symbol)
}

func (b *asmBuilder) atValue(v uint16) {
	b.at(strconv.Itoa(int(v)))
}

func (b *asmBuilder) emit(lines ...string) {
	b.lines = append(b.lines, lines...)
}

// pushD writes D to the top of the stack and grows it by one slot.
func (b *asmBuilder) pushD() {
	b.at(StackPointer)
	b.emit("M=M+1", "A=M-1", "M=D")
}

// popD shrinks the stack by one slot and reads the removed value into D.
func (b *asmBuilder) popD() {
	b.at(StackPointer)
	b.emit("AM=M-1", "D=M")
}
