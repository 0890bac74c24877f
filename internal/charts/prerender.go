package charts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"nucdash/internal/dataprocessing"
	"nucdash/internal/infrastructure"
	"nucdash/pkg/contracts/domain"
)

type cacheKey struct {
	id     string
	format string
}

// Cache holds rendered chart images. It is safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	images map[cacheKey][]byte
}

// NewCache creates an empty image cache.
func NewCache() *Cache {
	return &Cache{images: make(map[cacheKey][]byte)}
}

// Get returns a cached image.
func (c *Cache) Get(id, format string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.images[cacheKey{id, format}]
	return img, ok
}

// Put stores an image, replacing any previous one.
func (c *Cache) Put(id, format string, img []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images[cacheKey{id, format}] = img
}

// Len returns the number of cached images.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Reset drops every cached image.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images = make(map[cacheKey][]byte)
}

// Prerenderer renders every chart of a catalog with bounded concurrency.
type Prerenderer struct {
	Renderer    *Renderer
	Concurrency int
	// Dir, when set, receives one file per image named <id>.<format>.
	Dir string

	metrics *infrastructure.DashboardMetrics
	logger  *slog.Logger
}

// NewPrerenderer creates a prerenderer. metrics may be nil.
func NewPrerenderer(r *Renderer, concurrency int, metrics *infrastructure.DashboardMetrics, logger *slog.Logger) *Prerenderer {
	if logger == nil {
		logger = slog.Default()
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Prerenderer{
		Renderer:    r,
		Concurrency: concurrency,
		metrics:     metrics,
		logger:      logger.With(slog.String("component", "prerender")),
	}
}

// Run renders every chart in every format into cache. The first failure cancels the
// remaining renders and is returned.
func (p *Prerenderer) Run(ctx context.Context, catalog domain.Catalog, views *dataprocessing.Views, formats []string, cache *Cache) error {
	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Concurrency)

	specs := catalog.Charts()
	for _, spec := range specs {
		for _, format := range formats {
			spec, format := spec, format
			g.Go(func() error {
				img, err := p.render(gctx, spec, views, format)
				if err != nil {
					return err
				}
				cache.Put(spec.ID, format, img)
				if p.Dir != "" {
					return writeImage(filepath.Join(p.Dir, spec.ID+"."+format), img)
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		p.logger.ErrorContext(ctx, "prerender failed", slog.String("error", err.Error()))
		return err
	}
	p.logger.InfoContext(ctx, "charts prerendered",
		slog.Int("charts", len(specs)),
		slog.Int("images", len(specs)*len(formats)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

func (p *Prerenderer) render(ctx context.Context, spec domain.ChartSpec, views *dataprocessing.Views, format string) ([]byte, error) {
	start := time.Now()
	img, err := p.Renderer.Render(ctx, spec, views, format)
	p.metrics.RecordChartRender(ctx, spec.ID, format, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	p.logger.DebugContext(ctx, "chart rendered",
		slog.String("chart", spec.ID),
		slog.String("format", format),
		slog.Int("bytes", len(img)))
	return img, nil
}

func writeImage(path string, img []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}
	if err := os.WriteFile(path, img, 0644); err != nil {
		return fmt.Errorf("write chart %s: %w", filepath.Base(path), err)
	}
	return nil
}
