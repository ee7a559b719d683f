// Command ply converts property lists between the OpenStep text format, XML,
// JSON, YAML and a debugging dump of the parsed value tree.
package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	flags "github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/panyam/plists"
)

type options struct {
	Convert string `short:"c" long:"convert" description:"output format" choice:"openstep" choice:"xml" choice:"json" choice:"yaml" choice:"pretty" default:"openstep" value-name:"<format>"`
	Keypath string `short:"k" long:"key" description:"only convert the value at this key path (/key/0/key)" default:"/" value-name:"<keypath>"`
	Output  string `short:"o" long:"out" description:"output file, or a directory when converting several files" value-name:"<path>"`
	Indent  string `short:"i" long:"indent" description:"indent for nested values; empty for single-line output" default:"\t" value-name:"<indent>"`
	Strict  bool   `long:"strict" description:"reject text after the top-level value"`
	Numbers bool   `long:"numbers" description:"read all-digit words as numbers"`
	Verbose bool   `short:"v" long:"verbose" description:"log each step to stderr"`
}

func newLogger(verbose bool) *zap.Logger {
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS] FILE..."
	args, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger := newLogger(opts.Verbose)
	defer logger.Sync()

	if err := run(&opts, args, os.Stdout, logger); err != nil {
		logger.Error("ply failed", zap.Error(err))
		os.Exit(1)
	}
}

func (o *options) decoderOptions() []plists.Option {
	var out []plists.Option
	if o.Strict {
		out = append(out, plists.Strict())
	}
	if o.Numbers {
		out = append(out, plists.NumericLiterals())
	}
	return out
}

// run converts every file in args. Output goes to stdout unless o.Output
// names a file (one input only) or a directory.
func run(o *options, args []string, stdout io.Writer, logger *zap.Logger) error {
	if len(args) == 0 {
		return errors.New("no input files")
	}

	outDir := ""
	if o.Output != "" {
		if fi, err := os.Stat(o.Output); err == nil && fi.IsDir() {
			outDir = o.Output
		} else if len(args) > 1 {
			return errors.Errorf("%s is not a directory; cannot write %d documents to it", o.Output, len(args))
		}
	}

	for _, path := range args {
		buf := &bytes.Buffer{}
		if err := convertFile(o, path, buf, logger); err != nil {
			return err
		}

		switch {
		case outDir != "":
			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + extensions[o.Convert]
			if err := writeFile(filepath.Join(outDir, name), buf.Bytes(), logger); err != nil {
				return err
			}
		case o.Output != "":
			if err := writeFile(o.Output, buf.Bytes(), logger); err != nil {
				return err
			}
		default:
			if _, err := stdout.Write(buf.Bytes()); err != nil {
				return errors.Wrap(err, "while writing output")
			}
		}
	}
	return nil
}

func convertFile(o *options, path string, w io.Writer, logger *zap.Logger) error {
	logger.Debug("decoding", zap.String("file", path))

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "while opening %s", path)
	}
	defer f.Close()

	dec := plists.NewDecoder(f, o.decoderOptions()...)
	tree, err := dec.DecodeValue()
	if err != nil {
		return errors.Wrapf(err, "while parsing %s", path)
	}
	logger.Debug("decoded", zap.String("file", path), zap.String("format", plists.FormatNames[dec.Format]))

	tree, err = lookupKeypath(tree, o.Keypath)
	if err != nil {
		return errors.Wrapf(err, "in %s", path)
	}

	logger.Debug("converting", zap.String("file", path), zap.String("to", o.Convert))
	return convert(w, tree, o.Convert, o.Indent)
}

func writeFile(path string, data []byte, logger *zap.Logger) error {
	logger.Debug("writing", zap.String("file", path), zap.Int("bytes", len(data)))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "while writing %s", path)
	}
	return nil
}
