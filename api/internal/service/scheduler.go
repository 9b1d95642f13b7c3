package service

import (
	"context"
	"sync"
	"time"

	"walletwatch/api/internal/logger"
	"walletwatch/api/internal/metrics"

	"github.com/robfig/cron/v3"
)

// SchedulerService runs a monitoring cycle every interval. A tick that fires
// while the previous cycle is still running is dropped.
type SchedulerService struct {
	cron    *cron.Cron
	job     cron.Job
	monitor Monitor
	l       logger.Logger

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewSchedulerService(monitor Monitor, interval time.Duration, l logger.Logger) *SchedulerService {
	cl := cronLogger{l: l}
	s := &SchedulerService{
		cron:    cron.New(cron.WithLogger(cl)),
		monitor: monitor,
		l:       l,
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	// Recover must sit inside the skip guard: the guard hands its slot back
	// only when the wrapped job returns.
	s.job = cron.NewChain(cron.SkipIfStillRunning(cl), cron.Recover(cl)).Then(cron.FuncJob(s.tick))
	s.cron.Schedule(cron.Every(interval), s.job)
	return s
}

func (s *SchedulerService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	// a previous Stop may have cancelled the cycle context
	s.cancel()
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.cron.Start()
	s.running = true
	s.l.Info("scheduler started", logger.LS_MONITOR, false)
}

func (s *SchedulerService) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	cancel := s.cancel
	s.mu.Unlock()

	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.l.Info("scheduler stopped", logger.LS_MONITOR, false)
		return nil
	case <-ctx.Done():
		// ingestion batches are atomic, abandoning the cycle leaves no partial rows
		cancel()
		<-done.Done()
		s.l.Warn("scheduler stopped, in-flight cycle abandoned", logger.LS_MONITOR, false)
		return ctx.Err()
	}
}

func (s *SchedulerService) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *SchedulerService) cycleCtx() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

func (s *SchedulerService) tick() {
	if _, err := s.monitor.RunCycle(s.cycleCtx()); err != nil {
		s.l.Error("cycle aborted: "+err.Error(), logger.LS_MONITOR, false)
	}
}

// cronLogger adapts the service logger to cron.Logger.
type cronLogger struct {
	l logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	if msg == "skip" {
		metrics.CyclesSkipped.Inc()
		c.l.Warn("previous cycle still running, tick skipped", logger.LS_MONITOR, false)
		return
	}
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error("cron: "+msg+": "+err.Error(), logger.LS_MONITOR, false, keysAndValues...)
}
