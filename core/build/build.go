// Package build compiles the documentation sources into the help file, the
// HTML site and the optional Markdown, manifest and PDF outputs.
//
// Topics and procedures are rendered concurrently. The aggregate help file
// is then written in a fixed order: topics, procedures, index. Diagrams are
// spliced into it last.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/gaurav-prasanna/helpdoc/config"
	"github.com/gaurav-prasanna/helpdoc/core"
	"github.com/gaurav-prasanna/helpdoc/core/encode"
	"github.com/gaurav-prasanna/helpdoc/core/markup"
	"github.com/gaurav-prasanna/helpdoc/core/output"
	"github.com/gaurav-prasanna/helpdoc/core/procedure"
	"github.com/gaurav-prasanna/helpdoc/core/render"
	"github.com/gaurav-prasanna/helpdoc/core/source"
	"github.com/gaurav-prasanna/helpdoc/core/splice"
)

// HelpFile is the name of the aggregate plain text output.
const HelpFile = "help.txt"

// Result summarizes a finished build.
type Result struct {
	HelpPath   string
	Topics     int
	Procedures int
	Diagrams   int
	Assets     int
}

// Driver runs builds for one configuration.
type Driver struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer

	diagrams *source.Diagrams
	engine   *markup.Engine
	plain    *render.PlainTextRenderer
	html     *render.HTMLRenderer
	markdown *render.MarkdownRenderer
	manifest *render.JSONRenderer
	encoder  core.Encoder
	splicer  core.Splicer
}

// New creates a driver. Success lines are printed to out.
func New(cfg *config.Config, logger *slog.Logger, out io.Writer) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []render.HTMLOption{render.WithTitleSuffix(cfg.TitleSuffix)}
	if cfg.Template != "" {
		data, err := os.ReadFile(cfg.Template)
		if err != nil {
			return nil, fmt.Errorf("reading template: %w", err)
		}
		if !render.ValidTemplate(string(data)) {
			return nil, fmt.Errorf("template %s must contain [TITLE] and [BODY]", cfg.Template)
		}
		opts = append(opts, render.WithTemplate(string(data)))
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if out == nil {
		out = io.Discard
	}

	d := &Driver{
		cfg:      cfg,
		logger:   logger,
		out:      out,
		diagrams: source.NewDiagrams(cfg.DiagramsDir),
	}
	d.engine = markup.New(cfg.Names, d.diagrams)
	d.plain = render.NewPlainTextRenderer(d.engine)
	d.html = render.NewHTMLRenderer(d.engine, opts...)
	d.markdown = render.NewMarkdownRenderer(d.engine)
	d.manifest = render.NewJSONRenderer(d.engine)

	switch cfg.Encoder {
	case config.EncoderIconv:
		d.encoder = encode.NewCommand(encode.DefaultCommand, cfg.ToolTimeout)
	default:
		d.encoder = encode.NewCP437()
	}
	if cfg.Splicer == config.SplicerBuiltin {
		d.splicer = splice.NewInline()
	} else {
		d.splicer = splice.NewCommand(cfg.Splicer, cfg.ToolTimeout)
	}
	return d, nil
}

// Run performs a complete build. The first error aborts it.
func (d *Driver) Run(ctx context.Context) (*Result, error) {
	topicFiles, err := source.ListFiles(d.cfg.TopicsDir)
	if err != nil {
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	procFiles, err := source.ListFiles(d.cfg.ProceduresDir)
	if err != nil {
		return nil, fmt.Errorf("listing procedures: %w", err)
	}

	textOut, err := output.New(d.cfg.TextOut)
	if err != nil {
		return nil, err
	}
	htmlOut, err := output.New(d.cfg.HTMLOut)
	if err != nil {
		return nil, err
	}
	var mdOut *output.Writer
	if d.cfg.MarkdownOut != "" {
		if mdOut, err = output.New(d.cfg.MarkdownOut); err != nil {
			return nil, err
		}
	}
	w := &writers{html: htmlOut, markdown: mdOut}

	session := NewSession(len(topicFiles) + len(procFiles) + 1)
	if err := d.renderSources(ctx, session, w, topicFiles, procFiles); err != nil {
		return nil, err
	}

	indexSlot := len(topicFiles) + len(procFiles)
	indexTopic := session.IndexTopic(d.engine.Names().IndexTopic)
	if err := d.renderTopic(session, w, indexSlot, indexTopic); err != nil {
		return nil, err
	}

	help := session.Help()
	helpPath, err := textOut.WriteFile(HelpFile, help)
	if err != nil {
		return nil, err
	}
	d.logger.Info("wrote help file", "path", helpPath, "topics", len(session.Topics()),
		"procedures", len(session.Procedures()), "size", humanize.Bytes(uint64(len(help))))

	n, err := d.spliceDiagrams(ctx, helpPath)
	if err != nil {
		return nil, err
	}
	d.written(helpPath)

	assets, err := d.copyAssets(htmlOut)
	if err != nil {
		return nil, err
	}
	d.logger.Info("wrote HTML pages", "dir", htmlOut.OutputDir, "pages", len(session.Topics()), "assets", assets)
	d.written(htmlOut.OutputDir)
	if mdOut != nil {
		d.written(mdOut.OutputDir)
	}

	if err := d.writeManifest(session); err != nil {
		return nil, err
	}
	if err := d.writePDF(session); err != nil {
		return nil, err
	}

	return &Result{
		HelpPath:   helpPath,
		Topics:     len(topicFiles),
		Procedures: len(procFiles),
		Diagrams:   n,
		Assets:     assets,
	}, nil
}

type writers struct {
	html     *output.Writer
	markdown *output.Writer
}

func (d *Driver) renderSources(ctx context.Context, session *Session, w *writers, topicFiles, procFiles []string) error {
	jobs := d.cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)

	for i, path := range topicFiles {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			topic, err := source.ReadTopic(path)
			if err != nil {
				return err
			}
			return d.renderTopic(session, w, i, topic)
		})
	}

	for j, path := range procFiles {
		slot := len(topicFiles) + j
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			topic, err := d.procedureTopic(session, path)
			if err != nil {
				return err
			}
			return d.renderTopic(session, w, slot, topic)
		})
	}

	return eg.Wait()
}

func (d *Driver) procedureTopic(session *Session, path string) (core.Topic, error) {
	proc, err := procedure.ParseFile(path)
	if err != nil {
		var perr *procedure.ParseError
		if errors.As(err, &perr) {
			d.logger.Error("procedure error", "file", perr.File, "line", perr.Line, "error", perr.Err, "detail", perr.Detail)
		}
		return core.Topic{}, err
	}
	session.AddProcedure(proc.Name)

	body, err := procedure.Format(proc)
	if err != nil {
		d.logger.Error("procedure error", "file", path, "error", err)
		return core.Topic{}, fmt.Errorf("formatting %s: %w", path, err)
	}
	return core.Topic{ID: proc.TopicID(), Body: body}, nil
}

// renderTopic renders one topic for every target and fills slot i.
func (d *Driver) renderTopic(session *Session, w *writers, i int, topic core.Topic) error {
	logger := d.logger.With("topic", topic.ID)

	plain, err := d.plain.Render(topic)
	if err != nil {
		return d.markupError(logger, topic, err)
	}
	page, err := d.html.Render(topic)
	if err != nil {
		return d.markupError(logger, topic, err)
	}
	path, err := w.html.WriteTopic(topic.ID, page, d.html.Extension())
	if err != nil {
		return err
	}
	logger.Debug("wrote page", "path", path, "size", humanize.Bytes(uint64(len(page))))

	if w.markdown != nil {
		md, err := d.markdown.Render(topic)
		if err != nil {
			return d.markupError(logger, topic, err)
		}
		if _, err := w.markdown.WriteTopic(topic.ID, md, d.markdown.Extension()); err != nil {
			return err
		}
	}

	if d.cfg.ManifestOut != "" {
		entry, err := d.manifest.Entry(topic)
		if err != nil {
			return d.markupError(logger, topic, err)
		}
		session.SetEntry(i, entry)
	}

	return session.Set(i, topic, plain)
}

// markupError logs the source snippet of a markup failure before the
// error is returned.
func (d *Driver) markupError(logger *slog.Logger, topic core.Topic, err error) error {
	var merr *markup.Error
	if errors.As(err, &merr) {
		logger.Error("markup error", "tag", merr.Tag, "offset", merr.Pos, "snippet", merr.Snippet, "error", merr.Err)
	} else {
		logger.Error("render error", "error", err)
	}
	return fmt.Errorf("rendering topic %s: %w", topic.ID, err)
}

// spliceDiagrams re-encodes every diagram into the temp directory and
// splices it into the help file.
func (d *Driver) spliceDiagrams(ctx context.Context, helpPath string) (int, error) {
	diagrams, err := d.diagrams.List()
	if err != nil {
		return 0, err
	}
	if len(diagrams) == 0 {
		return 0, nil
	}
	if err := os.MkdirAll(d.cfg.TempDir, 0755); err != nil {
		return 0, fmt.Errorf("creating temp directory: %w", err)
	}

	for _, dia := range diagrams {
		logger := d.logger.With("diagram", dia.Name)
		src := d.diagrams.Path(dia.Name)
		dst := filepath.Join(d.cfg.TempDir, dia.Name+source.Ext)

		logger.Debug("encoding diagram", "src", src, "dst", dst)
		if err := d.encoder.Encode(ctx, src, dst); err != nil {
			logger.Error("encoding failed", "error", err)
			return 0, fmt.Errorf("encoding diagram %s: %w", dia.Name, err)
		}
		logger.Debug("splicing diagram", "help", helpPath)
		if err := d.splicer.Splice(ctx, dia.Name, dst, helpPath); err != nil {
			logger.Error("splicing failed", "error", err)
			return 0, fmt.Errorf("splicing diagram %s: %w", dia.Name, err)
		}
	}
	return len(diagrams), nil
}

func (d *Driver) copyAssets(htmlOut *output.Writer) (int, error) {
	n := 0
	if d.cfg.Stylesheet != "" {
		if _, err := htmlOut.CopyFile(d.cfg.Stylesheet); err != nil {
			return n, fmt.Errorf("copying stylesheet: %w", err)
		}
		n++
	}
	for _, dir := range d.cfg.AssetDirs {
		sub, err := output.New(filepath.Join(htmlOut.OutputDir, filepath.Base(dir)))
		if err != nil {
			return n, err
		}
		copied, err := sub.CopyDir(dir)
		n += copied
		if err != nil {
			return n, err
		}
		d.logger.Debug("copied assets", "dir", dir, "files", copied)
	}
	return n, nil
}

func (d *Driver) writeManifest(session *Session) error {
	if d.cfg.ManifestOut == "" {
		return nil
	}
	data, err := d.manifest.Manifest(session.Manifest())
	if err != nil {
		return err
	}
	return d.writeFile(d.cfg.ManifestOut, data)
}

func (d *Driver) writePDF(session *Session) error {
	if d.cfg.PDFOut == "" {
		return nil
	}
	title := d.engine.Names().HomeTitle
	data, err := render.NewPDFRenderer(d.engine, title).Manual(session.Topics())
	if err != nil {
		return fmt.Errorf("rendering manual: %w", err)
	}
	return d.writeFile(d.cfg.PDFOut, data)
}

func (d *Driver) writeFile(path string, data []byte) error {
	w, err := output.New(filepath.Dir(path))
	if err != nil {
		return err
	}
	path, err = w.WriteFile(filepath.Base(path), data)
	if err != nil {
		return err
	}
	d.logger.Info("wrote file", "path", path, "size", humanize.Bytes(uint64(len(data))))
	d.written(path)
	return nil
}

func (d *Driver) written(path string) {
	fmt.Fprintf(d.out, "✓ Written: %s\n", path)
}
