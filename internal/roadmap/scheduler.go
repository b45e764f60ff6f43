package roadmap

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// Scheduler periodically refreshes the cached board so page loads rarely wait
// on the remote API.
type Scheduler struct {
	cron    *cron.Cron
	service *Service
	logger  *log.Logger
	spec    string
	wg      sync.WaitGroup
}

func NewScheduler(service *Service, interval time.Duration, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLogger(cron.PrintfLogger(logger))),
		service: service,
		logger:  logger,
		spec:    fmt.Sprintf("@every %s", interval),
	}
}

// Start registers the refresh job and also runs one refresh right away.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.refresh(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	s.logger.WithField("spec", s.spec).Info("roadmap.scheduler.started")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.refresh(ctx)
	}()
	return nil
}

// Stop waits for running refreshes, including the startup one, to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
	s.service.Wait()
	s.logger.Info("roadmap.scheduler.stopped")
}

func (s *Scheduler) refresh(ctx context.Context) {
	start := time.Now()
	err := s.service.Refresh(ctx)
	fields := log.Fields{"elapsed_ms": float64(time.Since(start)) / float64(time.Millisecond)}
	if err != nil {
		s.logger.WithFields(fields).WithError(err).Warn("roadmap.refresh.failed")
		return
	}
	s.logger.WithFields(fields).Info("roadmap.refresh.done")
}
