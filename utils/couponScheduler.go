package utils

import (
	"coursestore/database"
	"coursestore/models"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// InitializeCouponScheduler sets up the coupon expiry scheduler
func InitializeCouponScheduler() {
	log.Println("[COUPON-SCHEDULER] Initializing coupon scheduler...")

	c := cron.New()

	// Run daily at midnight to retire expired coupons
	c.AddFunc("0 0 * * *", func() {
		log.Println("[COUPON-SCHEDULER] Running daily coupon expiry check...")
		RetireExpiredCoupons()
	})

	c.Start()
	log.Println("[COUPON-SCHEDULER] Coupon scheduler started - runs daily at midnight")
}

// RetireExpiredCoupons marks coupons past their expiry as retired so the
// pricing engine stops accepting them. Orders that already froze a
// coupon's value are untouched.
func RetireExpiredCoupons() {
	db := database.Database.Db
	now := time.Now()

	result := db.Model(&models.Coupon{}).
		Where("is_retired = false AND is_deleted = false AND expires_at IS NOT NULL AND expires_at < ?", now).
		Update("is_retired", true)

	if result.Error != nil {
		log.Printf("[COUPON-SCHEDULER] Error retiring expired coupons: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[COUPON-SCHEDULER] Retired %d expired coupons", result.RowsAffected)
	}
}
