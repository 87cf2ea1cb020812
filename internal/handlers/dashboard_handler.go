package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/profislots/profislots-api/internal/domain/appointment"
	"github.com/profislots/profislots-api/internal/dto"
	"github.com/profislots/profislots-api/internal/httperr"
	"github.com/profislots/profislots-api/internal/models"
	"github.com/profislots/profislots-api/internal/session"
	"github.com/profislots/profislots-api/internal/timezone"
)

type DashboardHandler struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db, now: time.Now}
}

type DashboardStats struct {
	Date              string                   `json:"date"`
	TodayAppointments int64                    `json:"today_appointments"`
	PendingCount      int64                    `json:"pending_appointments"`
	Customers         int64                    `json:"customers"`
	Staff             int64                    `json:"staff"`
	Services          int64                    `json:"services"`
	MonthRevenue      float64                  `json:"month_revenue"`
	MonthRevenueCents int64                    `json:"month_revenue_cents"`
	Upcoming          []dto.AppointmentListDTO `json:"upcoming"`
}

// Stats summarises the salon's day and month in its own timezone.
func (h *DashboardHandler) Stats(c *gin.Context) {
	s := session.MustFrom(c)
	ctx := c.Request.Context()

	var salon models.Salon
	if err := h.db.WithContext(ctx).First(&salon, s.SalonID).Error; err != nil {
		respondStore(c, err, "salon_not_found", "get salon")
		return
	}

	now := timezone.In(h.now(), salon.Timezone)
	stats, err := h.collect(ctx, salon.ID, now)
	if err != nil {
		httperr.Respond(c, httperr.Unavailable("dashboard stats", err))
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) collect(ctx context.Context, salonID uint, now time.Time) (*DashboardStats, error) {
	db := h.db.WithContext(ctx)
	today := now.Format(domain.DateLayout)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)
	cancelled := string(domain.StatusCancelled)

	stats := &DashboardStats{Date: today}

	active := func() *gorm.DB {
		return db.Model(&models.Appointment{}).
			Where("appointments.salon_id = ? AND appointments.status <> ?", salonID, cancelled)
	}

	if err := active().Where("appointment_date = ?", today).Count(&stats.TodayAppointments).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Appointment{}).
		Where("salon_id = ? AND status = ? AND appointment_date >= ?", salonID, string(domain.StatusPending), today).
		Count(&stats.PendingCount).Error; err != nil {
		return nil, err
	}

	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.Customer{}, &stats.Customers},
		{&models.Staff{}, &stats.Staff},
		{&models.Service{}, &stats.Services},
	}
	for _, cnt := range counts {
		if err := db.Model(cnt.model).Where("salon_id = ?", salonID).Count(cnt.dst).Error; err != nil {
			return nil, err
		}
	}

	// Summed in cents so float prices do not accumulate rounding noise.
	if err := active().
		Select("COALESCE(SUM(CAST(ROUND(services.price * 100) AS INTEGER)), 0)").
		Joins("JOIN services ON services.id = appointments.service_id").
		Where("appointments.appointment_date BETWEEN ? AND ?",
			monthStart.Format(domain.DateLayout), monthEnd.Format(domain.DateLayout)).
		Scan(&stats.MonthRevenueCents).Error; err != nil {
		return nil, err
	}
	stats.MonthRevenue = float64(stats.MonthRevenueCents) / 100

	var upcoming []models.Appointment
	if err := active().
		Preload("Customer").
		Preload("Staff").
		Preload("Service").
		Where("appointment_date > ? OR (appointment_date = ? AND appointment_time >= ?)",
			today, today, domain.ClockOf(now).String()).
		Order("appointment_date ASC").
		Order("appointment_time ASC").
		Limit(5).
		Find(&upcoming).Error; err != nil {
		return nil, err
	}
	stats.Upcoming = dto.AppointmentList(upcoming)

	return stats, nil
}
