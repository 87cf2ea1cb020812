package models

import "time"

// Salon is the tenant. Every service, staff member, customer and
// appointment belongs to exactly one salon.
type Salon struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Slug     string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone    string `gorm:"size:20" json:"phone"`
	Address  string `gorm:"size:255" json:"address"`
	Timezone string `gorm:"size:64" json:"timezone"`

	OpeningTime     string `gorm:"size:5;default:'08:00'" json:"opening_time"`
	ClosingTime     string `gorm:"size:5;default:'18:00'" json:"closing_time"`
	SlotStepMinutes int    `gorm:"default:30" json:"slot_step_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
