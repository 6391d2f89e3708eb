// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds the dashboard's cached pipeline result and the
// state machine that governs it:
//
//	Idle -> Fetching -> Ready | Error
//
// Ready and Error persist until the next keyword or a reset. A fetch runs
// to completion: neither a keyword nor a reset is accepted while Fetching.
// All state is in memory and lives as long as the Session.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/literature-analyzer/internal/pubmed"
	"github.com/pdiddy/literature-analyzer/internal/tabulate"
)

// State is the position of a Session in its lifecycle.
type State int

// Session states.
const (
	Idle State = iota
	Fetching
	Ready
	Error
)

var stateNames = [...]string{"idle", "fetching", "ready", "error"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

var (
	// ErrEmptyKeyword is returned when the submitted keyword is blank.
	ErrEmptyKeyword = errors.New("keyword must not be empty")

	// ErrBusy is returned when a keyword or reset arrives while a fetch is running.
	ErrBusy = errors.New("a fetch is already in progress")
)

// Snapshot is a consistent copy of the session state. IDs and Table are
// shared with the session and must be treated as read-only.
type Snapshot struct {
	State     State
	Keyword   string
	RunID     string
	Total     int
	IDs       []string
	Table     *tabulate.Table
	Err       error
	Progress  pubmed.Progress
	StartedAt time.Time
	Duration  time.Duration
}

// Session caches the result of the last keyword run.
type Session struct {
	src    pubmed.Source
	logger *zap.Logger

	mu   sync.Mutex
	snap Snapshot
}

// New returns an Idle session that fetches from src.
func New(src pubmed.Source, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{src: src, logger: logger}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Submit runs the pipeline for keyword and returns the resulting state.
// A keyword equal to the cached one while Ready returns the cache without
// a remote call. The pipeline runs outside the lock; the Fetching state
// keeps other submits and resets out until it finishes.
func (s *Session) Submit(ctx context.Context, keyword string) (Snapshot, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.Snapshot(), ErrEmptyKeyword
	}

	s.mu.Lock()
	switch {
	case s.snap.State == Fetching:
		snap := s.snap
		s.mu.Unlock()
		return snap, ErrBusy
	case s.snap.State == Ready && s.snap.Keyword == keyword:
		snap := s.snap
		s.mu.Unlock()
		s.logger.Debug("reusing cached result", zap.String("keyword", keyword), zap.String("run_id", snap.RunID))
		return snap, nil
	}
	s.snap = Snapshot{
		State:     Fetching,
		Keyword:   keyword,
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	runID := s.snap.RunID
	s.mu.Unlock()

	log := s.logger.With(zap.String("keyword", keyword), zap.String("run_id", runID))
	log.Info("fetch started")

	coll, err := pubmed.Collect(ctx, s.src, keyword, func(p pubmed.Progress) {
		s.mu.Lock()
		s.snap.Progress = p
		s.mu.Unlock()
		log.Debug("batch fetched", zap.Int("batch", p.Batch), zap.Int("batches", p.Batches), zap.Int("records", p.Records))
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Duration = time.Since(s.snap.StartedAt)
	if err != nil {
		s.snap.State = Error
		s.snap.Err = err
		log.Error("fetch failed", zap.Error(err), zap.Duration("duration", s.snap.Duration))
		return s.snap, err
	}
	s.snap.State = Ready
	s.snap.Total = coll.Total
	s.snap.IDs = coll.IDs
	s.snap.Table = tabulate.New(coll.Publications)
	log.Info("fetch completed",
		zap.Int("total", coll.Total),
		zap.Int("rows", len(coll.Publications)),
		zap.Duration("duration", s.snap.Duration),
	)
	return s.snap, nil
}

// Reset drops all cached data and returns the session to Idle. It returns
// ErrBusy and changes nothing while a fetch is running.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.State == Fetching {
		return ErrBusy
	}
	prev := s.snap.State
	s.snap = Snapshot{}
	s.logger.Info("session reset", zap.Stringer("from", prev))
	return nil
}
