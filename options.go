package plists

import "github.com/pkg/errors"

type optionReceiver interface {
	parserSetStrict(bool) error
	parserSetNumericLiterals(bool) error
	generatorSetIndent(string) error
	encoderSetFormat(int) error
}

// An Option configures a parser, Decoder, Encoder or one of the
// Parse*/Marshal/Unmarshal helpers. Passing an option to something it does
// not apply to is an error.
type Option func(optionReceiver) error

var optionInvalidError = errors.New("this option is unsupported here")

// Strict makes the text parser require that nothing but whitespace and
// comments follows the top-level value. By default trailing tokens are
// ignored.
func Strict() Option {
	return Option(func(o optionReceiver) error {
		return o.parserSetStrict(true)
	})
}

// NumericLiterals makes the text scanner emit NUMBER tokens for bare words
// made only of decimal digits. By default they are IDENTIFIER tokens, like
// every other bare word.
func NumericLiterals() Option {
	return Option(func(o optionReceiver) error {
		return o.parserSetNumericLiterals(true)
	})
}

// Indent sets the string repeated once per nesting level when generating
// a document. An empty indent produces a single line.
func Indent(i string) Option {
	return Option(func(o optionReceiver) error {
		return o.generatorSetIndent(i)
	})
}

// Format selects the output format of an Encoder or Marshal.
func Format(f int) Option {
	return Option(func(o optionReceiver) error {
		return o.encoderSetFormat(f)
	})
}

// noOptions rejects every option; receivers embed it and override what
// they support.
type noOptions struct{}

func (noOptions) parserSetStrict(bool) error { return optionInvalidError }
func (noOptions) parserSetNumericLiterals(bool) error { return optionInvalidError }
func (noOptions) generatorSetIndent(string) error { return optionInvalidError }
func (noOptions) encoderSetFormat(int) error { return optionInvalidError }

type parserOptions struct {
	noOptions
	strict  bool
	numeric bool
}

func (o *parserOptions) parserSetStrict(b bool) error {
	o.strict = b
	return nil
}

func (o *parserOptions) parserSetNumericLiterals(b bool) error {
	o.numeric = b
	return nil
}

type generatorOptions struct {
	noOptions
	indent string
	format int
}

func (o *generatorOptions) generatorSetIndent(i string) error {
	o.indent = i
	return nil
}

func (o *generatorOptions) encoderSetFormat(f int) error {
	switch f {
	case AutomaticFormat, OpenStepFormat, XMLFormat:
		o.format = f
		return nil
	}
	return errors.Errorf("unknown property list format %d", f)
}

func applyOptions(o optionReceiver, opts []Option) error {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}
