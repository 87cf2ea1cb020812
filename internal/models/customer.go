package models

import "time"

// Customer has no login; it is owned by the salon that booked it.
type Customer struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"uniqueIndex:idx_customers_salon_phone,priority:1" json:"salon_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:20;not null;uniqueIndex:idx_customers_salon_phone,priority:2" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	VisitCount    int    `gorm:"default:0" json:"visit_count"`
	LastVisitDate string `gorm:"size:10" json:"last_visit_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
