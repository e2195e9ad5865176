package api

import "github.com/sarchlab/hackvm/codegen"

// TranslatorBuilder creates a new instance of Translator.
type TranslatorBuilder struct {
	opts          codegen.Options
	optsSet       bool
	collectErrors bool
	listeners     []Listener
}

// WithOptions sets the code generation options.
func (b TranslatorBuilder) WithOptions(opts codegen.Options) TranslatorBuilder {
	b.opts = opts
	b.optsSet = true
	return b
}

// WithCollectErrors makes the translator report every failing line instead
// of stopping at the first.
func (b TranslatorBuilder) WithCollectErrors(collect bool) TranslatorBuilder {
	b.collectErrors = collect
	return b
}

// WithListener adds a listener notified for every translated command.
func (b TranslatorBuilder) WithListener(l Listener) TranslatorBuilder {
	b.listeners = append(b.listeners[:len(b.listeners):len(b.listeners)], l)
	return b
}

// Build creates a translator.
func (b TranslatorBuilder) Build() Translator {
	opts := b.opts
	if !b.optsSet {
		opts = codegen.DefaultOptions()
	}

	return &translatorImpl{
		opts:          opts,
		collectErrors: b.collectErrors,
		listeners:     b.listeners,
	}
}
