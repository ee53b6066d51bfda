package utils

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"lms/config"
	"lms/database"
	courseModels "lms/models/course"
)

// DashboardStats is the cached aggregate snapshot served to the admin
// dashboard. The poller refreshes it on a fixed interval; readers get
// roughly-current data without hitting the database per request.
type DashboardStats struct {
	TotalCourses         int64     `json:"total_courses"`
	PublishedCourses     int64     `json:"published_courses"`
	TotalEnrollments     int64     `json:"total_enrollments"`
	CompletedEnrollments int64     `json:"completed_enrollments"`
	IssuedCertificates   int64     `json:"issued_certificates"`
	RefreshedAt          time.Time `json:"refreshed_at"`
}

var (
	dashboardMu    sync.RWMutex
	dashboardStats DashboardStats
)

// GetDashboardStats returns the latest cached snapshot.
func GetDashboardStats() DashboardStats {
	dashboardMu.RLock()
	defer dashboardMu.RUnlock()
	return dashboardStats
}

// RefreshDashboardStats re-queries all counters and swaps the cache.
func RefreshDashboardStats(ctx context.Context) error {
	db := database.Database.Db
	var stats DashboardStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return db.WithContext(gctx).Model(&courseModels.Course{}).
			Where("is_deleted = ?", false).Count(&stats.TotalCourses).Error
	})
	g.Go(func() error {
		return db.WithContext(gctx).Model(&courseModels.Course{}).
			Where("is_deleted = ? AND is_published = ?", false, true).Count(&stats.PublishedCourses).Error
	})
	g.Go(func() error {
		return db.WithContext(gctx).Model(&courseModels.Enrollment{}).
			Where("is_deleted = ?", false).Count(&stats.TotalEnrollments).Error
	})
	g.Go(func() error {
		return db.WithContext(gctx).Model(&courseModels.Enrollment{}).
			Where("is_deleted = ? AND status = ?", false, "COMPLETED").Count(&stats.CompletedEnrollments).Error
	})
	g.Go(func() error {
		return db.WithContext(gctx).Model(&courseModels.Certificate{}).
			Where("is_deleted = ?", false).Count(&stats.IssuedCertificates).Error
	})
	if err := g.Wait(); err != nil {
		return err
	}

	stats.RefreshedAt = time.Now()

	dashboardMu.Lock()
	dashboardStats = stats
	dashboardMu.Unlock()
	return nil
}

// StartDashboardScheduler refreshes the stats cache on the configured
// interval. Returns the cron so the caller can Stop it on shutdown.
func StartDashboardScheduler() *cron.Cron {
	interval := config.AppConfig.DashboardRefreshSeconds
	if interval <= 0 {
		interval = 30
	}

	if err := RefreshDashboardStats(context.Background()); err != nil {
		log.Printf("[DASHBOARD-SCHEDULER] initial refresh failed: %v", err)
	}

	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %ds", interval), func() {
		if err := RefreshDashboardStats(context.Background()); err != nil {
			log.Printf("[DASHBOARD-SCHEDULER] refresh failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("[DASHBOARD-SCHEDULER] failed to schedule refresh: %v", err)
		return c
	}

	c.Start()
	log.Printf("[DASHBOARD-SCHEDULER] refreshing stats every %ds", interval)
	return c
}
