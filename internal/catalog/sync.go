package catalog

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Syncer refreshes catalog caches on a cron schedule so payload assembly
// mostly hits a warm cache instead of the storefront.
type Syncer struct {
	resolver *Resolver
	log      *logrus.Logger
	sched    *cron.Cron
}

// NewSyncer creates a Syncer over the resolver's known apps.
func NewSyncer(resolver *Resolver, log *logrus.Logger) *Syncer {
	if log == nil {
		log = logrus.New()
	}
	return &Syncer{resolver: resolver, log: log}
}

// Start schedules refreshes with the given cron expression (e.g.
// "@every 15m"). Returns after scheduling; refreshes run on the cron's
// own goroutine until Stop.
func (s *Syncer) Start(spec string) error {
	s.sched = cron.New()
	if _, err := s.sched.AddFunc(spec, s.refreshAll); err != nil {
		return err
	}
	s.sched.Start()
	s.log.WithField("schedule", spec).Info("catalog sync scheduled")
	return nil
}

// Stop halts scheduled refreshes, waiting for an in-flight run.
func (s *Syncer) Stop() {
	if s.sched != nil {
		<-s.sched.Stop().Done()
	}
}

func (s *Syncer) refreshAll() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for _, appKey := range s.resolver.KnownApps() {
		if _, err := s.resolver.Refresh(ctx, appKey); err != nil {
			s.log.WithField("app", appKey).WithError(err).Warn("scheduled catalog refresh failed")
		}
	}
}
