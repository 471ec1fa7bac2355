// Package document provides the book service used by every front-end. It
// composes the on-disk book collection, the search orchestrator and the
// configured history backends behind service.Service.
package document

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/bookrab/extension"
	"github.com/jpl-au/bookrab/internal/book"
	"github.com/jpl-au/bookrab/internal/config"
	"github.com/jpl-au/bookrab/internal/history"
	"github.com/jpl-au/bookrab/internal/log"
	"github.com/jpl-au/bookrab/internal/repo"
	"github.com/jpl-au/bookrab/internal/search"
	"github.com/jpl-au/bookrab/internal/service"
	"github.com/jpl-au/bookrab/internal/store"
)

var _ service.Service = (*Service)(nil)

// Service implements service.Service over a book directory.
type Service struct {
	cfg       *config.Config
	books     *book.Dir
	history   history.Store
	search    *search.Orchestrator
	maxUpload int64
	extCtx    extension.Context // for firing events to extensions
}

// New opens the book root and history backends named by cfg.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	books := book.Open(cfg.Books(), book.WithMaxTitle(cfg.MaxTitle()))

	hist, err := OpenHistory(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Service{
		cfg:       cfg,
		books:     books,
		history:   hist,
		search:    newOrchestrator(books, hist, cfg),
		maxUpload: cfg.MaxUpload(),
	}, nil
}

func newOrchestrator(books *book.Dir, hist history.Store, cfg *config.Config) *search.Orchestrator {
	return search.New(books, hist, search.Options{
		Workers:       cfg.Workers(),
		MaxLineLength: cfg.MaxLineLength(),
	})
}

// OpenHistory opens every backend listed in history.backends. One backend
// is returned as is, several are wrapped in history.Multi, none gives
// history.Nop. Backends opened before a failure are closed.
func OpenHistory(ctx context.Context, cfg *config.Config) (history.Store, error) {
	var stores history.Multi
	fail := func(err error) (history.Store, error) {
		_ = stores.Close()
		return nil, err
	}

	for _, name := range cfg.Backends() {
		switch name {
		case config.BackendJSON:
			j, err := history.OpenJSON(cfg.JSONHistoryPath())
			if err != nil {
				return fail(err)
			}
			stores = append(stores, j)
		case config.BackendSQLite:
			p := cfg.SQLiteHistoryPath()
			if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
				return fail(fmt.Errorf("create history dir: %w", err))
			}
			s, err := store.OpenInit(p)
			if err != nil {
				return fail(err)
			}
			stores = append(stores, s)
		case config.BackendPostgres:
			pg, err := store.OpenPG(ctx, store.PGConfig{URL: cfg.DatabaseURL()})
			if err != nil {
				return fail(err)
			}
			stores = append(stores, pg)
		}
	}

	switch len(stores) {
	case 0:
		return history.Nop{}, nil
	case 1:
		return stores[0], nil
	default:
		return stores, nil
	}
}

// Init creates a .bookrab workspace in dir (current directory if empty)
// and returns its path. See repo.Init.
func Init(force bool, dir string, private bool) (string, error) {
	return repo.Init(force, dir, private)
}

// Close releases the history backends.
func (s *Service) Close() error {
	if err := s.history.Close(); err != nil {
		log.Event("service:close", "close").Write(err)
		return err
	}
	return nil
}

// ReloadConfig reloads configuration from disk and reopens history.
// Call this after modifying config to ensure the service uses new settings.
func (s *Service) ReloadConfig(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	hist, err := OpenHistory(ctx, cfg)
	if err != nil {
		return err
	}
	_ = s.history.Close()

	s.cfg = cfg
	s.books = book.Open(cfg.Books(), book.WithMaxTitle(cfg.MaxTitle()))
	s.history = hist
	s.search = newOrchestrator(s.books, hist, cfg)
	s.maxUpload = cfg.MaxUpload()
	return nil
}

// SetExtensionContext sets the extension context for firing events.
// Called from cmd/init_extensions.go after creating the context.
func (s *Service) SetExtensionContext(ctx extension.Context) {
	s.extCtx = ctx
}

// Root returns the book root directory.
func (s *Service) Root() string {
	return s.books.Root()
}

// Config returns the configuration the service was built from.
func (s *Service) Config() *config.Config {
	return s.cfg
}

// fireEvent notifies all registered extension event handlers.
//
// Design: Event handler errors are logged but not propagated. Events are
// notifications, not veto points.
func (s *Service) fireEvent(e extension.Event) {
	if s.extCtx == nil {
		return
	}
	for _, h := range extension.Handlers() {
		if err := h.Handler.HandleEvent(s.extCtx, e); err != nil {
			log.Event("event:error", "error").
				Detail("ext", h.Name).
				Detail("event", string(e.EventType())).
				Write(err)
		}
	}
}
