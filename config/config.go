// Package config holds translator options and builds the machine that runs
// translated programs.
package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sarchlab/hackvm/api"
	"github.com/sarchlab/hackvm/codegen"
	"gopkg.in/yaml.v3"
)

// Options are the user-facing translator settings.
type Options struct {
	// StaticMode is "global" or "reject".
	StaticMode string `yaml:"static_mode"`
	// ScratchRegister is the cell used by indirect pops, R13 to R15.
	ScratchRegister string `yaml:"scratch_register"`
	// CollectErrors reports every failing line instead of the first.
	CollectErrors bool `yaml:"collect_errors"`
	// EmitComments heads every block with a comment line.
	EmitComments bool `yaml:"emit_comments"`
}

// Default returns the options that reproduce the reference output.
func Default() Options {
	return Options{
		StaticMode:      codegen.StaticGlobal.String(),
		ScratchRegister: codegen.DefaultScratch,
		EmitComments:    true,
	}
}

// Load reads options from a YAML file. Keys missing from the file keep
// their defaults.
func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, errors.Wrap(err, "Load")
	}

	return Parse(data)
}

// Parse reads options from YAML.
func Parse(data []byte) (Options, error) {
	opts := Default()

	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, errors.Wrap(err, "Parse")
	}

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}

	return opts, nil
}

// Validate checks that every field holds a supported value.
func (o Options) Validate() error {
	if _, err := codegen.ParseStaticMode(o.StaticMode); err != nil {
		return err
	}

	switch o.ScratchRegister {
	case "R13", "R14", "R15":
	default:
		return errors.Errorf("scratch register %q is not one of R13, R14, R15",
			o.ScratchRegister)
	}

	return nil
}

// Codegen converts the options into code generation options.
func (o Options) Codegen() (codegen.Options, error) {
	if err := o.Validate(); err != nil {
		return codegen.Options{}, err
	}

	mode, _ := codegen.ParseStaticMode(o.StaticMode)

	return codegen.Options{
		StaticMode: mode,
		Scratch:    o.ScratchRegister,
		Comments:   o.EmitComments,
	}, nil
}

// Translator builds a translator configured by o.
func (o Options) Translator(listeners ...api.Listener) (api.Translator, error) {
	opts, err := o.Codegen()
	if err != nil {
		return nil, err
	}

	b := api.TranslatorBuilder{}.
		WithOptions(opts).
		WithCollectErrors(o.CollectErrors)
	for _, l := range listeners {
		b = b.WithListener(l)
	}

	return b.Build(), nil
}
