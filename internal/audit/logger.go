package audit

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/profislots/profislots-api/internal/models"
)

// Logger persists events to the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ev Event) error {
	entry := models.AuditLog{
		SalonID:  ev.SalonID,
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
	}

	if ev.Metadata != nil {
		b, err := json.Marshal(ev.Metadata)
		if err != nil {
			return fmt.Errorf("encode %s metadata: %w", ev.Action, err)
		}
		entry.Metadata = string(b)
	}

	return l.db.Create(&entry).Error
}
