package utils

import (
	"context"
	"log"
	"time"

	"cyberlearn/store"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[CATALOG-REFRESH %s] %s", time.Now().Format(time.RFC3339), message)
}

// StartCatalogRefresh schedules periodic reloads of the content store so a
// backend that recovers after startup is picked up without a restart. A
// blank spec disables the scheduler. Returns the running cron so main can
// stop it on shutdown.
func StartCatalogRefresh(s *store.Store, spec string) *cron.Cron {
	if spec == "" {
		logScheduler("Disabled (no CATALOG_REFRESH_CRON configured)")
		return nil
	}

	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		logScheduler("Reloading catalog from remote")
		s.Load(context.Background())
		if errMsg := s.LastError(); errMsg != "" {
			logScheduler("Reload finished with fallback: " + errMsg)
		} else {
			logScheduler("Reload finished")
		}
	})
	if err != nil {
		logScheduler("Invalid cron spec '" + spec + "': " + err.Error())
		return nil
	}

	c.Start()
	logScheduler("Started with spec: " + spec)
	return c
}
