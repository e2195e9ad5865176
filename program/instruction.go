package program

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MaxLiteral is the largest value an A-instruction can load.
const MaxLiteral = 0x7FFF

// ErrBadInstruction is returned for text that is not a Hack instruction.
var ErrBadInstruction = errors.New("bad instruction")

// Kind tells A-instructions, C-instructions and label declarations apart.
type Kind int

const (
	AInstruction Kind = iota
	CInstruction
	LabelDecl
)

// Instruction is one parsed line of Hack assembly.
type Instruction struct {
	Kind Kind

	// A-instruction literal, valid when Symbol is empty.
	Value uint16
	// A-instruction symbol or declared label.
	Symbol string

	Dest         Dest
	Comp         Comp
	JumpMnemonic string
	Jump         JumpFunc

	// The source text with comments and whitespace removed.
	Raw string
}

// Clean strips the comment and all whitespace from an assembly line.
func Clean(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}

	return strings.Join(strings.Fields(line), "")
}

// Parse parses a cleaned, non-empty assembly line.
func Parse(line string) (Instruction, error) {
	switch {
	case line == "":
		return Instruction{}, errors.Wrap(ErrBadInstruction, "empty line")
	case strings.HasPrefix(line, "@"):
		return parseA(line)
	case strings.HasPrefix(line, "("):
		return parseLabel(line)
	default:
		return parseC(line)
	}
}

func parseA(line string) (Instruction, error) {
	operand := line[1:]
	inst := Instruction{Kind: AInstruction, Raw: line}

	if operand != "" && operand[0] >= '0' && operand[0] <= '9' {
		v, err := strconv.ParseUint(operand, 10, 16)
		if err != nil || v > MaxLiteral {
			return Instruction{}, errors.Wrapf(ErrBadInstruction,
				"literal %q out of range", operand)
		}

		inst.Value = uint16(v)

		return inst, nil
	}

	if !IsSymbol(operand) {
		return Instruction{}, errors.Wrapf(ErrBadInstruction,
			"invalid symbol %q", operand)
	}

	inst.Symbol = operand

	return inst, nil
}

func parseLabel(line string) (Instruction, error) {
	if !strings.HasSuffix(line, ")") {
		return Instruction{}, errors.Wrapf(ErrBadInstruction,
			"unterminated label %q", line)
	}

	name := line[1 : len(line)-1]
	if !IsSymbol(name) {
		return Instruction{}, errors.Wrapf(ErrBadInstruction,
			"invalid label %q", name)
	}

	return Instruction{Kind: LabelDecl, Symbol: name, Raw: line}, nil
}

func parseC(line string) (Instruction, error) {
	inst := Instruction{Kind: CInstruction, Raw: line}
	rest := line

	if i := strings.Index(rest, "="); i >= 0 {
		d, ok := Hack.Dest(rest[:i])
		if !ok || i == 0 {
			return Instruction{}, errors.Wrapf(ErrBadInstruction,
				"invalid dest in %q", line)
		}

		inst.Dest = d
		rest = rest[i+1:]
	}

	if i := strings.Index(rest, ";"); i >= 0 {
		j, ok := Hack.Jump(rest[i+1:])
		if !ok {
			return Instruction{}, errors.Wrapf(ErrBadInstruction,
				"invalid jump in %q", line)
		}

		inst.JumpMnemonic = rest[i+1:]
		inst.Jump = j
		rest = rest[:i]
	}

	c, ok := Hack.Comp(rest)
	if !ok {
		return Instruction{}, errors.Wrapf(ErrBadInstruction,
			"invalid comp %q in %q", rest, line)
	}

	inst.Comp = c

	return inst, nil
}

// IsSymbol reports whether s is a legal Hack symbol: letters, digits, and
// "_.$:", not starting with a digit.
func IsSymbol(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == '_', r == '.', r == '$', r == ':':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}

	return true
}
