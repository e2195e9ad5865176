package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"github.com/sarchlab/hackvm/api"
	"github.com/sarchlab/hackvm/codegen"
	"github.com/sarchlab/hackvm/config"
	"github.com/sarchlab/hackvm/instr"
	"github.com/spf13/cobra"
)

type translateFlags struct {
	output        string
	configPath    string
	staticMode    string
	scratch       string
	collectErrors bool
	noComments    bool
}

var tFlags translateFlags

var translateCmd = &cobra.Command{
	Use:   "translate file.vm",
	Short: "Translate a VM script into Hack assembly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(cmd, tFlags)
		if err != nil {
			return err
		}

		return translateFile(args[0], tFlags.output, opts)
	},
}

func init() {
	addOptionFlags(translateCmd, &tFlags)
	translateCmd.Flags().StringVarP(&tFlags.output, "output", "o", "",
		"output file, defaults to the input path with an .asm extension")
	rootCmd.AddCommand(translateCmd)
}

func addOptionFlags(cmd *cobra.Command, f *translateFlags) {
	cmd.Flags().StringVar(&f.configPath, "config", "",
		"YAML file with translator options")
	cmd.Flags().StringVar(&f.staticMode, "static-mode", "",
		"static segment handling: global or reject")
	cmd.Flags().StringVar(&f.scratch, "scratch", "",
		"scratch register for indirect pops: R13, R14 or R15")
	cmd.Flags().BoolVar(&f.collectErrors, "collect-errors", false,
		"report every failing line instead of the first")
	cmd.Flags().BoolVar(&f.noComments, "no-comments", false,
		"omit the comment line heading each block")
}

// loadOptions reads the config file, if any, and applies the flags the
// user set on top of it.
func loadOptions(cmd *cobra.Command, f translateFlags) (config.Options, error) {
	opts := config.Default()

	if f.configPath != "" {
		var err error
		opts, err = config.Load(f.configPath)
		if err != nil {
			return config.Options{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("static-mode") {
		opts.StaticMode = f.staticMode
	}
	if flags.Changed("scratch") {
		opts.ScratchRegister = f.scratch
	}
	if flags.Changed("collect-errors") {
		opts.CollectErrors = f.collectErrors
	}
	if flags.Changed("no-comments") {
		opts.EmitComments = !f.noComments
	}

	return opts, opts.Validate()
}

// scriptName is the base name of path without its extension. It prefixes
// the script's static symbols.
func scriptName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func outputPath(input, output string) string {
	if output != "" {
		return output
	}

	return strings.TrimSuffix(input, filepath.Ext(input)) + ".asm"
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading script")
	}

	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}

	return strings.Split(text, "\n"), nil
}

// progressListener dumps every translated block at debug level.
type progressListener struct{}

func (progressListener) OnCommand(line int, cmd instr.Command, block codegen.Block) {
	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		return
	}

	slog.Debug("Translated",
		"Line", line,
		"Command", cmd.String(),
		"Block", spew.Sdump(block),
	)
}

func translate(path string, opts config.Options) (*codegen.Emitter, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}

	tr, err := opts.Translator(progressListener{})
	if err != nil {
		return nil, err
	}

	blocks, err := tr.TranslateBlocks(scriptName(path), lines)
	if err != nil {
		return nil, describe(err)
	}

	e := &codegen.Emitter{}
	for _, b := range blocks {
		e.Append(b)
	}

	return e, nil
}

func translateFile(input, output string, opts config.Options) error {
	fmt.Println(aurora.Cyan("Converting script " + input))

	e, err := translate(input, opts)
	if err != nil {
		return err
	}

	out := outputPath(input, output)
	fmt.Println(aurora.Cyan("Saving file as " + out))

	f, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	defer f.Close()

	if _, err := e.WriteTo(f); err != nil {
		return errors.Wrap(err, "writing output")
	}

	fmt.Println(aurora.Green(fmt.Sprintf("%d commands, %d lines", e.Len(), len(e.Lines()))))

	return nil
}

// describe prefixes a translation error with its kind.
func describe(err error) error {
	var multi api.TranslationErrors
	if errors.As(err, &multi) {
		return err
	}

	var kind string

	switch {
	case errors.Is(err, instr.ErrMalformedCommand):
		kind = "malformed command"
	case errors.Is(err, codegen.ErrUnsupportedSegment):
		kind = "unsupported segment"
	case errors.Is(err, codegen.ErrNotImplemented):
		kind = "not implemented"
	default:
		return err
	}

	return errors.Wrap(err, kind)
}
