package roadmap

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// fetchTimeout bounds a shared fetch, which runs detached from any one
// caller's context.
const fetchTimeout = 60 * time.Second

type refresher interface {
	Refresh(ctx context.Context) (Board, error)
}

// Service is what the HTTP layer talks to. Concurrent Board calls share one
// upstream fetch.
type Service struct {
	source  Source
	missing []string
	logger  *log.Logger
	group   singleflight.Group
	flights sync.WaitGroup
}

func NewService(source Source, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Service{source: source, logger: logger}
}

// Unconfigured returns a Service that always reports ErrNotConfigured and
// remembers which settings are missing.
func Unconfigured(missing []string, logger *log.Logger) *Service {
	s := NewService(nil, logger)
	s.missing = append([]string(nil), missing...)
	return s
}

// Configured reports whether the service has a board to load.
func (s *Service) Configured() bool {
	return s.source != nil
}

// Missing lists the settings needed before the board can be loaded.
func (s *Service) Missing() []string {
	return append([]string(nil), s.missing...)
}

// Board returns the current snapshot. A caller giving up only stops its own
// wait; the shared fetch keeps going for the others.
func (s *Service) Board(ctx context.Context) (Board, error) {
	if s.source == nil {
		return Board{}, ErrNotConfigured
	}
	v, err := s.shared(ctx, "board", func(fctx context.Context) (interface{}, error) {
		return s.source.FetchBoard(fctx)
	})
	if err != nil {
		return Board{}, err
	}
	board, ok := v.(Board)
	if !ok {
		return Board{}, fmt.Errorf("roadmap: unexpected result type %T", v)
	}
	return board, nil
}

func (s *Service) shared(ctx context.Context, key string, fn func(context.Context) (interface{}, error)) (interface{}, error) {
	ch := s.group.DoChan(key, func() (interface{}, error) {
		s.flights.Add(1)
		defer s.flights.Done()
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		return fn(fctx)
	})
	select {
	case res := <-ch:
		if res.Shared {
			s.logger.WithField("key", key).Debug("roadmap.shared_fetch")
		}
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Wait blocks until no shared fetch is running.
func (s *Service) Wait() {
	s.flights.Wait()
}

// Refresh forces a new snapshot into the cache when the source keeps one.
func (s *Service) Refresh(ctx context.Context) error {
	if s.source == nil {
		return ErrNotConfigured
	}
	r, ok := s.source.(refresher)
	if !ok {
		_, err := s.Board(ctx)
		return err
	}
	_, err := s.shared(ctx, "refresh", func(fctx context.Context) (interface{}, error) {
		return r.Refresh(fctx)
	})
	return err
}
