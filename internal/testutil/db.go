// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	dbpkg "github.com/profislots/profislots-api/internal/db"
	"github.com/profislots/profislots-api/internal/models"
)

// NewDB opens a private in-memory sqlite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// One connection serialises the audit worker with the test goroutine.
	sqlDB.SetMaxOpenConns(1)

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

type Fixture struct {
	Salon    models.Salon
	Staff    models.Staff
	Service  models.Service
	Customer models.Customer
}

// Seed creates one salon with a staff member, a service and a customer.
func Seed(t *testing.T, db *gorm.DB, slug string) Fixture {
	t.Helper()

	f := Fixture{
		Salon: models.Salon{
			Name:            "Salon " + slug,
			Slug:            slug,
			Timezone:        "Europe/Berlin",
			OpeningTime:     "08:00",
			ClosingTime:     "18:00",
			SlotStepMinutes: 30,
		},
	}
	mustCreate(t, db, &f.Salon)

	f.Staff = models.Staff{SalonID: f.Salon.ID, Name: "Anna", Specialty: "Color", Active: true}
	mustCreate(t, db, &f.Staff)

	f.Service = models.Service{SalonID: f.Salon.ID, Name: "Haircut", DurationMin: 30, Price: 35.5, Icon: "scissors", Active: true}
	mustCreate(t, db, &f.Service)

	f.Customer = models.Customer{SalonID: f.Salon.ID, Name: "Max", Phone: "+4930123456"}
	mustCreate(t, db, &f.Customer)

	return f
}

func mustCreate(t *testing.T, db *gorm.DB, v any) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed %T: %v", v, err)
	}
}

// OwnerPassword is the plain password of users created by SeedOwner.
const OwnerPassword = "secret123"

// SeedOwner adds an owner account to the fixture's salon.
func SeedOwner(t *testing.T, db *gorm.DB, f Fixture, email string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(OwnerPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		SalonID:      f.Salon.ID,
		Name:         "Owner",
		Email:        email,
		PasswordHash: string(hash),
		Role:         "owner",
	}
	if err := db.Omit("Salon").Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}
