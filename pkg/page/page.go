package page

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/denysvitali/webtree/internal/models"
)

// Extension is appended to page paths that lack it.
const Extension = ".html"

// NormalizePath appends .html unless p already ends with it.
func NormalizePath(p string) string {
	if strings.HasSuffix(p, Extension) {
		return p
	}
	return p + Extension
}

// ResolveUnderRoot places p below root.
func ResolveUnderRoot(root, p string) string {
	return filepath.Join(root, p)
}

// EnsureParents creates the missing ancestors of fullPath.
func EnsureParents(fullPath string) error {
	return os.MkdirAll(filepath.Dir(fullPath), 0755)
}

// Scaffolder writes new pages below a content root
type Scaffolder struct {
	contentRoot string
	logger      *logrus.Logger
	now         func() time.Time
	tracer      trace.Tracer
}

// New creates a scaffolder rooted at contentRoot
func New(contentRoot string, logger *logrus.Logger) *Scaffolder {
	return &Scaffolder{
		contentRoot: contentRoot,
		logger:      logger,
		now:         time.Now,
		tracer:      otel.Tracer("webtree"),
	}
}

// WithClock overrides the clock used to date pages
func (s *Scaffolder) WithClock(now func() time.Time) *Scaffolder {
	s.now = now
	return s
}

// Create writes the requested page, replacing any file already at its path.
// Neither the title nor the path is validated.
func (s *Scaffolder) Create(ctx context.Context, req models.PageRequest) (models.PageResult, error) {
	_, span := s.tracer.Start(ctx, "create_page")
	defer span.End()

	fullPath := ResolveUnderRoot(s.contentRoot, NormalizePath(req.Path))
	span.SetAttributes(attribute.String("path", fullPath))

	if err := EnsureParents(fullPath); err != nil {
		span.RecordError(err)
		return models.PageResult{}, fmt.Errorf("failed to create parent directories for %s: %w", fullPath, err)
	}

	date := s.now().Format(models.DateLayout)
	body := req.BodyHTML
	if body == "" {
		body = Placeholder
	}

	if err := os.WriteFile(fullPath, []byte(RenderWithBody(req.Title, date, body)), 0644); err != nil {
		span.RecordError(err)
		return models.PageResult{}, fmt.Errorf("failed to write %s: %w", fullPath, err)
	}

	s.logger.WithFields(logrus.Fields{
		"path":  fullPath,
		"title": req.Title,
	}).Debug("Created page")

	return models.PageResult{Path: fullPath, Title: req.Title, Date: date}, nil
}
