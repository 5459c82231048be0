package printing

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/freightdocs/backend/internal/domain/document"
	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	defaultTemplateCacheSize = 16
	reloadDebounce           = 250 * time.Millisecond
)

// TemplateStore resolves one template per document kind.
// It supports loading from an external directory (for customization)
// with fallback to embedded templates. Parsed templates are cached and
// the cache is purged when the external directory changes.
type TemplateStore struct {
	externalDir string
	engine      *TemplateEngine
	cache       *lru.Cache[document.Kind, *template.Template]
	logger      *zap.Logger
	mu          sync.RWMutex
}

// TemplateStoreConfig configures the template store
type TemplateStoreConfig struct {
	// ExternalDir is the directory to load templates from.
	// If empty or a file is missing there, embedded templates are used.
	ExternalDir string
	// CacheSize bounds the number of parsed templates kept in memory
	CacheSize int
	Engine    *TemplateEngine
	Logger    *zap.Logger
}

// NewTemplateStore creates a new template store
func NewTemplateStore(config *TemplateStoreConfig) (*TemplateStore, error) {
	if config == nil {
		config = &TemplateStoreConfig{}
	}
	size := config.CacheSize
	if size <= 0 {
		size = defaultTemplateCacheSize
	}
	cache, err := lru.New[document.Kind, *template.Template](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create template cache: %w", err)
	}

	store := &TemplateStore{
		externalDir: config.ExternalDir,
		engine:      config.Engine,
		cache:       cache,
		logger:      config.Logger,
	}
	if store.engine == nil {
		store.engine = NewTemplateEngine()
	}
	if store.logger == nil {
		store.logger = zap.NewNop()
	}
	return store, nil
}

// Get returns the parsed template for kind
func (s *TemplateStore) Get(kind document.Kind) (*template.Template, error) {
	if !kind.IsValid() {
		return nil, NewRenderError(ErrCodeUnsupportedKind, "unsupported document kind: "+string(kind), nil)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if tmpl, ok := s.cache.Get(kind); ok {
		return tmpl, nil
	}

	content, err := s.loadTemplateContent(templateFileName(kind))
	if err != nil {
		return nil, err
	}
	tmpl, err := s.engine.Parse(string(kind), content)
	if err != nil {
		return nil, err
	}
	s.cache.Add(kind, tmpl)
	return tmpl, nil
}

// Render produces the HTML for kind with data
func (s *TemplateStore) Render(ctx context.Context, kind document.Kind, data any) (string, error) {
	tmpl, err := s.Get(kind)
	if err != nil {
		return "", err
	}
	return s.engine.Execute(ctx, tmpl, data)
}

// Reload drops every parsed template; the next Get reads the source again
func (s *TemplateStore) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
}

// Watch reloads templates whenever a file in the external directory changes.
// It blocks until ctx is done. Without an external directory it returns at once.
func (s *TemplateStore) Watch(ctx context.Context) error {
	if s.externalDir == "" {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create template watcher: %w", err)
	}
	defer w.Close()
	if err := w.Add(s.externalDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", s.externalDir, err)
	}
	s.logger.Info("watching template directory", zap.String("dir", s.externalDir))

	// Editors write in bursts, so changes are coalesced before reloading.
	var pending time.Time
	ticker := time.NewTicker(reloadDebounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(ev.Name) != ".html" {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				pending = time.Now()
			}
		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= reloadDebounce {
				pending = time.Time{}
				s.Reload()
				s.logger.Info("templates reloaded", zap.String("dir", s.externalDir))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("template watch error", zap.Error(err))
		}
	}
}

// loadTemplateContent loads template content from external dir or embedded
func (s *TemplateStore) loadTemplateContent(filename string) (string, error) {
	if s.externalDir != "" {
		if content, err := os.ReadFile(filepath.Join(s.externalDir, filename)); err == nil {
			return string(content), nil
		}
		// Fall through to embedded if external not found
	}

	content, err := templateFS.ReadFile("templates/" + filename)
	if err != nil {
		return "", NewRenderError(ErrCodeTemplateNotFound, "template not found: "+filename, err)
	}
	return string(content), nil
}

func templateFileName(kind document.Kind) string {
	return string(kind) + ".html"
}
