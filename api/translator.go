// Package api defines the translator API that turns VM source into Hack
// assembly.
package api

import (
	"strings"

	"github.com/sarchlab/hackvm/codegen"
	"github.com/sarchlab/hackvm/core"
	"github.com/sarchlab/hackvm/instr"
)

// Translator converts the VM source of one script into assembly.
type Translator interface {
	// Translate returns the assembly lines for the source lines of the
	// script named script. No output is returned when any line fails.
	Translate(script string, lines []string) ([]string, error)

	// TranslateBlocks is Translate without flattening, one block per
	// command in source order.
	TranslateBlocks(script string, lines []string) ([]codegen.Block, error)
}

// Listener observes the translation of every command.
type Listener interface {
	OnCommand(line int, cmd instr.Command, block codegen.Block)
}

type translatorImpl struct {
	opts          codegen.Options
	collectErrors bool
	listeners     []Listener
}

func (t *translatorImpl) Translate(
	script string,
	lines []string,
) ([]string, error) {
	blocks, err := t.TranslateBlocks(script, lines)
	if err != nil {
		return nil, err
	}

	e := &codegen.Emitter{}
	for _, b := range blocks {
		e.Append(b)
	}

	return e.Lines(), nil
}

func (t *translatorImpl) TranslateBlocks(
	script string,
	lines []string,
) ([]codegen.Block, error) {
	gen := codegen.NewGenerator(script, t.opts)
	blocks := make([]codegen.Block, 0, len(lines))

	var failed TranslationErrors

	for i, raw := range lines {
		text := strings.TrimRight(raw, "\r")
		if isSkipped(text) {
			continue
		}

		core.Trace("Parsing line", "Script", script, "Line", i+1, "Text", text)

		block, err := t.translateLine(gen, text)
		if err != nil {
			lineErr := &LineError{Line: i + 1, Text: text, Err: err}
			if !t.collectErrors {
				return nil, lineErr
			}

			failed = append(failed, lineErr)

			continue
		}

		for _, l := range t.listeners {
			l.OnCommand(i+1, block.Source, block)
		}

		blocks = append(blocks, block)
	}

	if len(failed) > 0 {
		return nil, failed
	}

	return blocks, nil
}

func (t *translatorImpl) translateLine(
	gen *codegen.Generator,
	text string,
) (codegen.Block, error) {
	cmd, err := instr.Parse(text)
	if err != nil {
		return codegen.Block{}, err
	}

	return gen.Generate(cmd)
}

func isSkipped(text string) bool {
	return text == "" || strings.HasPrefix(text, "//")
}
