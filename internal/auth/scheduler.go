package auth

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Watcher runs a periodic job per client while that client is logged in.
type Watcher interface {
	Watch(clientID string, every time.Duration, job func())
	Unwatch(clientID string)
}

// Scheduler is the cron-backed Watcher shared by every client.
type Scheduler struct {
	cron    *cron.Cron
	mu      sync.Mutex
	entries map[string]cron.EntryID
	log     *logrus.Entry
}

// Ensure Scheduler implements Watcher
var _ Watcher = (*Scheduler)(nil)

// NewScheduler creates a stopped scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		entries: make(map[string]cron.EntryID),
		log:     logrus.WithField("component", "session_scheduler"),
	}
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("session checks still running at shutdown")
	}
}

// Watch replaces any job of clientID with one running every interval.
func (s *Scheduler) Watch(clientID string, every time.Duration, job func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[clientID]; ok {
		s.cron.Remove(id)
		delete(s.entries, clientID)
	}
	id, err := s.cron.AddFunc("@every "+every.String(), job)
	if err != nil {
		s.log.WithField("client_id", clientID).WithError(err).Error("failed to schedule session check")
		return
	}
	s.entries[clientID] = id
}

// Unwatch removes the job of clientID, if any.
func (s *Scheduler) Unwatch(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.entries[clientID]; ok {
		s.cron.Remove(id)
		delete(s.entries, clientID)
	}
}

// Watching reports whether clientID has a scheduled job.
func (s *Scheduler) Watching(clientID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[clientID]
	return ok
}
