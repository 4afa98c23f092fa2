package listing

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/denysvitali/webtree/internal/models"
)

// IndexFileName is written into every visited directory.
const IndexFileName = "index.html"

// Options configures a Generator
type Options struct {
	Root       string
	Exclusions Exclusions
}

// Generator regenerates directory listings below a web root
type Generator struct {
	root   string
	excl   Exclusions
	logger *logrus.Logger
	out    io.Writer
	tracer trace.Tracer
}

// New creates a generator. Progress lines go to out.
func New(opts Options, logger *logrus.Logger, out io.Writer) *Generator {
	if out == nil {
		out = io.Discard
	}
	return &Generator{
		root:   opts.Root,
		excl:   opts.Exclusions,
		logger: logger,
		out:    out,
		tracer: otel.Tracer("webtree"),
	}
}

// Root returns the directory the generator walks
func (g *Generator) Root() string {
	return g.root
}

// GenerateAll writes an index into the root and into every directory below it
// that is not excluded. Excluded directories are not descended into.
func (g *Generator) GenerateAll(ctx context.Context) (models.GenerationSummary, error) {
	ctx, span := g.tracer.Start(ctx, "generate_all")
	defer span.End()

	span.SetAttributes(attribute.String("root", g.root))
	summary := models.GenerationSummary{Root: g.root}

	// WalkDir does not follow links, so a symlinked root is resolved up front.
	root := g.root
	if fi, err := os.Lstat(root); err == nil && fi.Mode()&fs.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(root); err == nil {
			root = resolved
		}
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root && d == nil {
				g.logger.Warnf("Web root %s is not accessible: %v", root, err)
				return fs.SkipAll
			}
			// reading the children failed; its index was already written
			g.logger.WithError(err).Warnf("Skipping contents of %s", path)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if !d.IsDir() {
			return nil
		}
		if path != root && g.excl.ShouldExclude(d.Name()) {
			g.logger.Debugf("Pruning excluded directory %s", path)
			return fs.SkipDir
		}

		if err := g.generateDir(ctx, root, path); err != nil {
			return err
		}
		summary.Directories++
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return summary, err
	}

	span.SetAttributes(attribute.Int("directories", summary.Directories))
	return summary, nil
}

// GenerateDir writes the index for a single directory below the root.
func (g *Generator) GenerateDir(ctx context.Context, dir string) error {
	return g.generateDir(ctx, g.root, dir)
}

func (g *Generator) generateDir(ctx context.Context, root, dir string) error {
	_, span := g.tracer.Start(ctx, "generate_index")
	defer span.End()

	span.SetAttributes(attribute.String("path", dir))

	folders, files, err := ListDirectory(dir, g.excl)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}

	span.SetAttributes(
		attribute.Int("folders", len(folders)),
		attribute.Int("files", len(files)),
	)

	html := RenderIndex(PageTitle(root, dir), folders, files)
	target := filepath.Join(dir, IndexFileName)
	if err := os.WriteFile(target, []byte(html), 0644); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	g.logger.WithFields(logrus.Fields{
		"dir":     dir,
		"folders": len(folders),
		"files":   len(files),
	}).Debug("Wrote index")
	fmt.Fprintf(g.out, "Generated index for: %s\n", dir)

	return nil
}
