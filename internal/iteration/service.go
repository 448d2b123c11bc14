// Package iteration runs the clean, apply, compare and converge cycle against a generated folder.
package iteration

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/gittemplate/internal/apply"
	"github.com/alexisbeaulieu97/gittemplate/internal/compare"
	"github.com/alexisbeaulieu97/gittemplate/internal/config"
	"github.com/alexisbeaulieu97/gittemplate/internal/fsops"
	"github.com/alexisbeaulieu97/gittemplate/internal/logger"
)

// Options are the caller-level switches of one iteration.
type Options struct {
	// DetailedComparison keeps the comparison on the result and adds per-file diffs to reports.
	DetailedComparison bool
	// Force dispatches strategies that cannot proceed on their own.
	Force bool
}

// Service executes iteration strategies. It is not safe for concurrent use against the
// same generated folder; callers serialize with fsops.AcquireLock.
type Service struct {
	fs      fsops.FS
	applier apply.Applier
	engine  *compare.Engine
	layout  config.Layout
	log     *logger.Logger
	now     func() time.Time
	newID   func() string
}

// Option configures a Service.
type Option func(*Service)

// WithFS replaces the filesystem used by Clean and the create/sync strategies.
func WithFS(fs fsops.FS) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithRunID overrides run identifier generation.
func WithRunID(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// New constructs a Service.
func New(layout config.Layout, applier apply.Applier, engine *compare.Engine, log *logger.Logger, opts ...Option) *Service {
	if engine == nil {
		engine = compare.NewEngine(compare.WithLogger(log))
	}
	s := &Service{
		fs:      fsops.NewRealFS(),
		applier: applier,
		engine:  engine,
		layout:  layout,
		log:     log.WithFields(map[string]any{"component": "iteration"}),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
