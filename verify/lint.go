package verify

import (
	"fmt"
	"regexp"

	"github.com/sarchlab/hackvm/core"
	"github.com/sarchlab/hackvm/program"
)

var scratchCells = map[string]bool{"R13": true, "R14": true, "R15": true}

// LintOptions describe the output contract a program is checked against.
type LintOptions struct {
	// Script is the name static symbols must be prefixed with.
	Script string
	// Scratch is the only reserved cell the program may use.
	Scratch string
}

// RunLint performs static checks on generated assembly.
// Returns a list of issues found, or empty list if no issues.
func RunLint(lines []string, opts LintOptions) []Issue {
	var issues []Issue

	staticPattern := regexp.MustCompile(
		"^" + regexp.QuoteMeta(opts.Script) + `\.[0-9]+$`)
	predefined := core.NewSymbolTable()

	for i, line := range lines {
		text := program.Clean(line)
		if text == "" {
			continue
		}

		inst, err := program.Parse(text)
		if err != nil {
			issues = append(issues, Issue{
				Type:    IssueStruct,
				Line:    i + 1,
				Message: err.Error(),
				Details: map[string]interface{}{"text": line},
			})

			continue
		}

		switch inst.Kind {
		case program.LabelDecl:
			issues = append(issues, Issue{
				Type:    IssueContract,
				Line:    i + 1,
				Message: fmt.Sprintf("unexpected label %q", inst.Symbol),
				Details: map[string]interface{}{"label": inst.Symbol},
			})
		case program.AInstruction:
			issues = append(issues, lintSymbol(i+1, inst, opts, predefined, staticPattern)...)
		}
	}

	return issues
}

func lintSymbol(
	line int,
	inst program.Instruction,
	opts LintOptions,
	predefined *core.SymbolTable,
	staticPattern *regexp.Regexp,
) []Issue {
	if inst.Symbol == "" {
		return nil
	}

	if scratchCells[inst.Symbol] && inst.Symbol != opts.Scratch {
		return []Issue{{
			Type: IssueContract,
			Line: line,
			Message: fmt.Sprintf("reserved cell %s used, scratch is %s",
				inst.Symbol, opts.Scratch),
			Details: map[string]interface{}{"symbol": inst.Symbol},
		}}
	}

	if _, ok := predefined.Lookup(inst.Symbol); ok {
		return nil
	}

	if !staticPattern.MatchString(inst.Symbol) {
		return []Issue{{
			Type:    IssueContract,
			Line:    line,
			Message: fmt.Sprintf("variable %q is not a static cell of %s", inst.Symbol, opts.Script),
			Details: map[string]interface{}{"symbol": inst.Symbol},
		}}
	}

	return nil
}
