package db

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/profislots/profislots-api/internal/config"
	"github.com/profislots/profislots-api/internal/models"
)

// activeSlotIndex keeps one non-cancelled appointment per staff/date/time.
const activeSlotIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS uniq_appointments_active_slot
	ON appointments (staff_id, appointment_date, appointment_time)
	WHERE status <> 'cancelled'
`

func NewDB(cfg *config.Config, log *logrus.Logger) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         gormlogger.New(log, gormlogger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Model(&models.Salon{}).
		Where("timezone IS NULL OR timezone = ''").
		Update("timezone", cfg.DefaultTimezone)

	return db
}

// Migrate creates the schema. It works on any gorm dialect that supports
// partial indexes (postgres, sqlite).
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.Service{},
		&models.Staff{},
		&models.Customer{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		return err
	}

	return db.Exec(activeSlotIndex).Error
}
