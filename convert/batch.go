package convert

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"svgready/archive"
	"svgready/config"
	"svgready/css"
	"svgready/state"
	"svgready/svg"
)

// DefaultStylesheet is batch destination when none is specified.
const DefaultStylesheet = "icons.css"

// batch accumulates results of processing multiple sources.
type batch struct {
	opts svg.Options
	log  *zap.Logger

	done   []converted
	failed error
	total  int
}

// Batch converts all SVG files found in source directory or archive and
// writes them as rules of a single stylesheet.
func Batch(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("batch")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		dst = DefaultStylesheet
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	out := env.Cfg.Output
	if name := cmd.String("property"); len(name) > 0 {
		if p, err := config.ParseCSSProperty(name); err != nil {
			log.Warn("Unknown CSS property requested, ignoring", zap.String("property", name), zap.Error(err))
		} else {
			out.Property = p
		}
	}
	merge := cmd.Bool("merge")
	env.Overwrite = cmd.Bool("overwrite")

	// Since zip "standard" does not define file name encoding we may need to
	// force archaic code page for old archives
	if cp := cmd.String("force-zip-cp"); len(cp) > 0 {
		env.CodePage, err = ianaindex.IANA.Encoding(cp)
		if err != nil || env.CodePage == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
			env.CodePage = nil
		} else {
			n, _ := ianaindex.IANA.Name(env.CodePage)
			log.Debug("Forcefully converting all non UTF-8 file names in archives", zap.String("charset", n))
		}
	}

	if _, err := os.Stat(dst); err == nil {
		if !env.Overwrite && !merge {
			return fmt.Errorf("output file already exists: %s", dst)
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("property", out.Property))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	b := &batch{opts: requestedOptions(cmd, env), log: log}
	if err := b.process(ctx, src); err != nil {
		return err
	}
	return b.write(ctx, dst, &out, merge)
}

// write produces stylesheet from accumulated conversions.
func (b *batch) write(ctx context.Context, dst string, out *config.OutputConfig, merge bool) error {
	env := state.EnvFromContext(ctx)

	if b.failed != nil {
		b.log.Warn("Some sources were not converted",
			zap.Int("failed", len(multierr.Errors(b.failed))), zap.Int("total", b.total), zap.Errors("errors", multierr.Errors(b.failed)))
	}
	if len(b.done) == 0 {
		if b.failed != nil {
			return fmt.Errorf("unable to convert any of %d sources: %w", b.total, b.failed)
		}
		return errors.New("no SVG sources found")
	}

	var sheet *css.Stylesheet
	if merge {
		data, err := os.ReadFile(dst)
		switch {
		case err == nil:
			sheet = css.NewParser(b.log).Parse(data, dst)
			for _, w := range sheet.Warnings {
				b.log.Warn("Existing stylesheet content will be dropped", zap.String("file", dst), zap.String("reason", w))
			}
			sheet.Warnings = nil
		case !os.IsNotExist(err):
			return fmt.Errorf("unable to read stylesheet to merge with: %w", err)
		}
	}

	sheet, err := buildStylesheet(sheet, out, b.done)
	if err != nil {
		b.log.Warn("Some rules were not generated", zap.Errors("errors", multierr.Errors(err)))
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(dst, []byte(sheet.String()), 0644); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	env.Rpt.Store("result/"+config.CleanFileName(filepath.Base(dst)), dst)

	b.log.Info("Stylesheet written", zap.String("file", dst), zap.Int("rules", len(sheet.Rules)), zap.Int("converted", len(b.done)))
	return nil
}

// process determines the input type (directory, archive, or single file) and
// processes accordingly.
func (b *batch) process(ctx context.Context, src string) error {
	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			return b.processDir(ctx, head)
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		arc, err := isArchiveFile(head)
		if err != nil {
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if arc {
			// we need to look inside to see if path makes sense
			tail = filepath.ToSlash(strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator)))
			if err := b.processArchive(ctx, head, tail, ""); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			return nil
		}

		if len(tail) != 0 {
			return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}
		ok, enc, err := isSVGFile(head)
		if err != nil {
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if !ok {
			return fmt.Errorf("input was not recognized as SVG (%s)", head)
		}
		b.processFile(ctx, head, filepath.Base(head), enc)
		return nil
	}
	return fmt.Errorf("input source was not found (%s)", src)
}

// processDir walks directory tree finding svg files and archives.
func (b *batch) processDir(ctx context.Context, dir string) error {
	count := b.total
	defer func() {
		if b.total == count {
			b.log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			b.log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))

		arc, err := isArchiveFile(path)
		if err != nil {
			b.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if arc {
			if err := b.processArchive(ctx, path, "", filepath.Dir(rel)); err != nil {
				b.log.Error("Unable to process archive", zap.String("file", path), zap.Error(err))
			}
			return nil
		}

		ok, enc, err := isSVGFile(path)
		if err != nil {
			b.log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !ok {
			b.log.Debug("Skipping file, not recognized as SVG or archive", zap.String("file", path))
			return nil
		}
		b.processFile(ctx, path, rel, enc)
		return nil
	})
}

func (b *batch) processFile(ctx context.Context, path, name string, enc srcEncoding) {
	b.total++

	f, err := os.Open(path)
	if err != nil {
		b.fail(name, err)
		return
	}
	defer f.Close()

	raw, err := readSource(f, enc, svg.MaxInputSize+1)
	if err != nil {
		b.fail(name, err)
		return
	}
	b.convert(ctx, name, raw)
}

// processArchive walks all svg files inside archive located under "pathIn".
// Names of results are prefixed with "pathOut".
func (b *batch) processArchive(ctx context.Context, arc, pathIn, pathOut string) error {
	count := b.total
	defer func() {
		if b.total == count {
			b.log.Debug("Nothing to process", zap.String("archive", arc), zap.String("path", pathIn))
		}
	}()

	cp := state.EnvFromContext(ctx).CodePage

	return archive.Walk(arc, pathIn, isSVGName, func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		b.total++

		name, err := archive.Name(f, cp)
		if err != nil {
			b.log.Warn("Unable to convert archive name from specified encoding", zap.String("archive", arc), zap.Error(err))
		}
		name = filepath.Join(pathOut, filepath.FromSlash(name))

		data, err := archive.ReadFile(f, svg.MaxInputSize+1)
		if err != nil {
			b.fail(name, err)
			return nil
		}
		raw, err := loadSource(bytes.NewReader(data))
		if err != nil {
			b.fail(name, err)
			return nil
		}
		b.convert(ctx, name, raw)
		return nil
	})
}

func (b *batch) convert(ctx context.Context, name, raw string) {
	res, cerr := convertSource(ctx, name, raw, b.opts, b.log)
	if cerr != nil {
		b.failed = multierr.Append(b.failed, fmt.Errorf("%s: %w", name, cerr))
		return
	}
	b.done = append(b.done, converted{name: name, res: res})
}

func (b *batch) fail(name string, err error) {
	b.log.Error("Unable to process file", zap.String("file", name), zap.Error(err))
	b.failed = multierr.Append(b.failed, fmt.Errorf("%s: %w", name, err))
}

func isSVGName(name string) bool {
	return strings.EqualFold(path.Ext(name), ".svg")
}

// isArchiveFile reports whether path points to zip archive.
func isArchiveFile(path string) (bool, error) {
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return false, nil
	}
	head, err := readHead(path)
	if err != nil {
		return false, err
	}
	return len(head) > 0 && isZip(head), nil
}

// isSVGFile reports whether path should be treated as SVG source and
// encoding detected from its byte order mark.
func isSVGFile(path string) (bool, srcEncoding, error) {
	head, err := readHead(path)
	if err != nil {
		return false, encUnknown, err
	}
	ok, enc := classify(path, head)
	return ok, enc, nil
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, headSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	return head[:n], nil
}
