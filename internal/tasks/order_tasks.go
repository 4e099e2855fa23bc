package tasks

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"clout_store_echo/internal/models"
)

// defaultStaleAfterHours is how long an order may sit in PENDING before
// the checkout is considered abandoned.
const defaultStaleAfterHours = 24

// ReconcileStaleOrdersTaskDef sweeps orders that never came back from the
// gateway. PENDING orders older than the cutoff are marked FAILED.
// UNVERIFIED orders (callbacks that failed the signature check) are only
// counted and logged; they need a human, not an automatic transition.
type ReconcileStaleOrdersTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *ReconcileStaleOrdersTaskDef) TaskID() string {
	return "reconcile_stale_orders"
}

// HandleExecution runs the sweep
func (t *ReconcileStaleOrdersTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	staleAfter := defaultStaleAfterHours
	if v, ok := task.Arguments["stale_after_hours"].(float64); ok && v > 0 {
		staleAfter = int(v)
	}
	cutoff := time.Now().Add(-time.Duration(staleAfter) * time.Hour)

	res := db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ? AND created_at < ?", models.OrderStatusPending, cutoff).
		Update("status", models.OrderStatusFailed)
	if res.Error != nil {
		return nil, res.Error
	}
	expired := res.RowsAffected

	var unverified int64
	if err := db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", models.OrderStatusUnverified).
		Count(&unverified).Error; err != nil {
		return nil, err
	}
	if unverified > 0 {
		log.Printf("[Task: reconcile_stale_orders] %d orders awaiting manual signature review", unverified)
	}

	return map[string]interface{}{
		"status":            "success",
		"expired_orders":    expired,
		"unverified_orders": unverified,
		"stale_after_hours": staleAfter,
	}, nil
}

// ReconcileStaleOrdersTask is the singleton instance of ReconcileStaleOrdersTaskDef
var ReconcileStaleOrdersTask = &ReconcileStaleOrdersTaskDef{}
