package services

import (
	"fmt"
	"time"

	"github.com/MominAnxs/diabetes-tracker/models"
	"github.com/MominAnxs/diabetes-tracker/utils"
	"gorm.io/gorm"
)

// indirection for tests
var sendAlertEmail = utils.SendGlucoseAlertEmail

type alertDeps struct {
	db *gorm.DB
	rt *RealtimeHub
	ps *PushService
}

var _alert alertDeps

func InitAlertDeps(db *gorm.DB, rt *RealtimeHub, ps *PushService) {
	_alert = alertDeps{db: db, rt: rt, ps: ps}
}

// EmitAlert persists an out-of-range alert and fans it out to live websocket
// clients and registered devices. Safe to call anywhere; a no-op until
// InitAlertDeps has run.
func EmitAlert(userID uint, typ, message string) {
	if _alert.db == nil {
		return // not initialized
	}
	a := &models.Alert{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	_ = _alert.db.Create(a).Error

	if _alert.rt != nil {
		_alert.rt.Broadcast(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if _alert.ps != nil {
		_alert.ps.PushToUser(userID, "Glucose Alert", message, map[string]string{
			"type": typ, "alertId": fmt.Sprintf("%d", a.ID),
		})
	}

	var user models.User
	if err := _alert.db.First(&user, userID).Error; err == nil && user.AlertEmails {
		_ = sendAlertEmail(user.Email, message)
	}
}

// BroadcastReading mirrors a successful submission to live clients so an
// open chart updates without polling.
func BroadcastReading(userID uint, reading *models.GlucoseReading) {
	if _alert.rt == nil || reading == nil {
		return
	}
	_alert.rt.Broadcast(userID, map[string]any{
		"kind":    "reading.upserted",
		"reading": reading,
	})
}

// ListAlerts returns the user's recent alerts, newest first.
func ListAlerts(db *gorm.DB, userID uint, limit int) ([]models.Alert, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var alerts []models.Alert
	err := db.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}
