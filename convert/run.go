// Package convert implements program commands: single SVG conversion and
// batch conversion of many SVG files into stylesheet.
package convert

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"svgready/config"
	"svgready/state"
	"svgready/svg"
	"svgready/utils/debug"
)

// how much of rejected input goes to the log when requested
const snippetSize = 500

// Run converts single SVG (file or standard input) and prints result in
// requested format.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if cmd.Args().Len() > 1 {
		log.Warn("Malformed command line, too many sources", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	opts := requestedOptions(cmd, env)
	format := requestedFormat(cmd, env, log)

	name, raw, err := readInput(src)
	if err != nil {
		return err
	}

	res, cerr := convertSource(ctx, name, raw, opts, log)

	out := io.Writer(os.Stdout)
	if dst := cmd.String("output"); len(dst) > 0 {
		f, err := os.Create(dst)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", dst, err)
		}
		defer f.Close()
		out = f
	}
	if err := writeResult(out, format, &env.Cfg.Output, name, res, cerr, opts); err != nil {
		return fmt.Errorf("unable to write result: %w", err)
	}
	if cerr != nil {
		return fmt.Errorf("unable to convert %s: %w", name, cerr)
	}
	return nil
}

// readInput returns name and content of the source, empty or "-" means
// standard input.
func readInput(src string) (string, string, error) {
	if len(src) == 0 || src == "-" {
		raw, err := loadSource(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("unable to read standard input: %w", err)
		}
		return "stdin", raw, nil
	}

	f, err := os.Open(src)
	if err != nil {
		return "", "", fmt.Errorf("unable to open source: %w", err)
	}
	defer f.Close()

	raw, err := loadSource(f)
	if err != nil {
		return "", "", fmt.Errorf("unable to read %s: %w", src, err)
	}
	return filepath.Base(src), raw, nil
}

// convertSource runs conversion of a single input taking care of logging and
// debug report. Conversion failures are not program errors, they are
// returned separately so caller could decide how to present them.
func convertSource(ctx context.Context, name, raw string, opts svg.Options, log *zap.Logger) (*svg.Result, *svg.ConversionError) {
	env := state.EnvFromContext(ctx)

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	log = log.With(zap.Stringer("request", id), zap.String("source", name))
	log.Debug("Conversion starting", zap.Int("size", len(raw)))

	env.Rpt.StoreData("inputs/"+id.String()+".svg", []byte(raw))

	res, err := env.Converter.Convert(raw, opts)
	if err != nil {
		cerr, ok := err.(*svg.ConversionError)
		if !ok {
			// Convert never returns anything else
			cerr = &svg.ConversionError{Kind: svg.ErrorKindServerError, Message: err.Error(), InputLen: len(raw)}
		}
		fields := []zap.Field{zap.Object("error", cerr)}
		if env.Cfg != nil && env.Cfg.Conversion.LogSVGContent && invalidSVG(cerr.Kind) {
			fields = append(fields, zap.String("svg_input", snippet(raw)))
		}
		log.Error("Conversion failed", fields...)

		if env.Rpt != nil {
			if data, err := json.Marshal(cerr.Public(true)); err == nil {
				env.Rpt.StoreData("results/"+id.String()+".json", data)
			}
		}
		return nil, cerr
	}

	log.Info("Conversion completed",
		zap.Duration("elapsed", res.Elapsed), zap.Int("size_before", res.SizeBefore), zap.Int("size_after", res.SizeAfter))
	if env.Rpt != nil {
		env.Rpt.StoreData("results/"+id.String()+".svg", []byte(res.Normalized))
		if tree, err := debug.Markup(res.Normalized); err == nil {
			env.Rpt.StoreData("results/"+id.String()+".tree", []byte(tree))
		} else {
			log.Debug("Unable to dump element tree", zap.Error(err))
		}
	}
	return res, nil
}

// invalidSVG selects failures caused by markup itself, as opposed to
// size or emptiness of the input.
func invalidSVG(kind svg.ErrorKind) bool {
	return kind.ParserClass() || kind == svg.ErrorKindNestingTooDeep
}

func snippet(raw string) string {
	if len(raw) <= snippetSize {
		return raw
	}
	cut := snippetSize
	for cut > 0 && !utf8.RuneStart(raw[cut]) {
		cut--
	}
	return raw[:cut] + "... [truncated]"
}

// requestedOptions combines configured conversion options with command line,
// flags may only enable options.
func requestedOptions(cmd *cli.Command, env *state.LocalEnv) svg.Options {
	opts := env.Options()
	opts.StripRootWidthHeight = opts.StripRootWidthHeight || cmd.Bool("strip-wh")
	opts.StripRootClass = opts.StripRootClass || cmd.Bool("strip-class")
	opts.EmitBase64 = opts.EmitBase64 || cmd.Bool("base64")
	opts.Debug = opts.Debug || cmd.Bool("details")
	return opts
}

func requestedFormat(cmd *cli.Command, env *state.LocalEnv, log *zap.Logger) config.OutputFormat {
	format := env.Cfg.Output.Format
	if name := cmd.String("format"); len(name) > 0 {
		f, err := config.ParseOutputFormat(name)
		if err != nil {
			log.Warn("Unknown output format requested, ignoring", zap.String("format", name), zap.Error(err))
			return format
		}
		format = f
	}
	return format
}
