package services

import (
	"log"
	"time"

	"mantri/internal/calendar"
	"mantri/internal/database"
	"mantri/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RetentionWorker periodically deletes save records that no current view
// can reference anymore. The aggregators filter on their own date ranges
// and stay correct whether or not this worker has run; purging only
// keeps the table small.
type RetentionWorker struct {
	db       *gorm.DB
	interval time.Duration
}

func NewRetentionWorker() *RetentionWorker {
	return &RetentionWorker{
		db:       database.GetDB(),
		interval: time.Hour,
	}
}

func (w *RetentionWorker) Start() {
	go w.run()
}

func (w *RetentionWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for range ticker.C {
		w.purgeStaleRecords()
	}
}

// retentionCutoff returns the earliest date still referenced by the
// current week or month window. Records strictly before it are stale.
func retentionCutoff(now time.Time) time.Time {
	weekStart := calendar.WeekStart(now)
	monthStart := calendar.MonthStart(now)
	if weekStart.Before(monthStart) {
		return weekStart
	}
	return monthStart
}

func (w *RetentionWorker) purgeStaleRecords() {
	cutoff := retentionCutoff(time.Now().UTC())

	result := w.db.
		Where("save_date < ?", datatypes.Date(cutoff)).
		Delete(&models.SaveRecord{})
	if result.Error != nil {
		log.Printf("Retention purge failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Retention purge removed %d save records older than %s",
			result.RowsAffected, cutoff.Format("2006-01-02"))
	}
}
