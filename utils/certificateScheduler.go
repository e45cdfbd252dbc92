package utils

import (
	"elearn/config"
	"elearn/database"
	courseModels "elearn/models/course"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeCertificateScheduler sets up the pending-certificate reminder job
func InitializeCertificateScheduler() {
	log.Println("[CERT-SCHEDULER] Initializing certificate scheduler...")

	c := cron.New()

	// Run daily at 9 AM to remind admins of stale pending requests
	c.AddFunc("0 9 * * *", func() {
		log.Println("[CERT-SCHEDULER] Running daily pending certificate check...")
		ProcessPendingCertificateReminders()
	})

	c.Start()
	log.Println("[CERT-SCHEDULER] Certificate scheduler started - runs daily at 9 AM")
}

// ProcessPendingCertificateReminders emails the admin when certificate
// requests have been sitting PENDING for more than 48 hours
func ProcessPendingCertificateReminders() {
	db := database.Database.Db
	cutoff := time.Now().Add(-48 * time.Hour)

	var pendingCount int64
	if err := db.Model(&courseModels.CertificateRequest{}).
		Where("status = ? AND is_deleted = ? AND requested_at < ?", "PENDING", false, cutoff).
		Count(&pendingCount).Error; err != nil {
		log.Printf("[CERT-SCHEDULER] Error counting pending requests: %v", err)
		return
	}

	if pendingCount == 0 {
		log.Println("[CERT-SCHEDULER] No stale pending certificate requests")
		return
	}

	if config.AppConfig.AdminEmail == "" {
		log.Printf("[CERT-SCHEDULER] %d stale pending requests but no ADMIN_EMAIL configured", pendingCount)
		return
	}

	SendPendingCertificateReminder(config.AppConfig.AdminEmail, pendingCount)
	log.Printf("[CERT-SCHEDULER] Reminder sent for %d pending requests", pendingCount)
}
