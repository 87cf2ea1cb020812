package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profislots/profislots-api/internal/models"
)

type statsBody struct {
	Date              string  `json:"date"`
	TodayAppointments int64   `json:"today_appointments"`
	PendingCount      int64   `json:"pending_appointments"`
	Customers         int64   `json:"customers"`
	Staff             int64   `json:"staff"`
	Services          int64   `json:"services"`
	MonthRevenue      float64 `json:"month_revenue"`
	MonthRevenueCents int64   `json:"month_revenue_cents"`
	Upcoming          []struct {
		Time         string `json:"appointment_time"`
		CustomerName string `json:"customer_name"`
	} `json:"upcoming"`
}

func TestDashboardStats(t *testing.T) {
	e := newTestEnv(t)

	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	e.dash.now = func() time.Time { return time.Date(2099, 3, 10, 9, 30, 0, 0, berlin) }

	e.book(t, "09:00")
	e.book(t, "10:00")
	cancelled := e.book(t, "11:00")
	requireStatus(t, e.do(http.MethodPut, fmt.Sprintf("/api/appointments/%d/cancel", cancelled.ID), nil), http.StatusOK)

	w := e.do(http.MethodPost, "/api/appointments", map[string]any{
		"customer_id":      e.f.Customer.ID,
		"staff_id":         e.f.Staff.ID,
		"service_id":       e.f.Service.ID,
		"appointment_date": "2099-03-12",
		"appointment_time": "12:00",
		"status":           "pending",
	})
	requireStatus(t, w, http.StatusCreated)

	w = e.do(http.MethodGet, "/api/dashboard/stats", nil)
	requireStatus(t, w, http.StatusOK)
	stats := decode[statsBody](t, w)

	assert.Equal(t, futureDate, stats.Date)
	assert.Equal(t, int64(2), stats.TodayAppointments)
	assert.Equal(t, int64(1), stats.PendingCount)
	assert.Equal(t, int64(1), stats.Customers)
	assert.Equal(t, int64(1), stats.Staff)
	assert.Equal(t, int64(1), stats.Services)
	assert.InDelta(t, 3*35.5, stats.MonthRevenue, 0.001)

	require.Len(t, stats.Upcoming, 2)
	assert.Equal(t, "10:00", stats.Upcoming[0].Time)
	assert.Equal(t, "Max", stats.Upcoming[0].CustomerName)
}

func TestDashboardRevenueHasNoRoundingNoise(t *testing.T) {
	e := newTestEnv(t)

	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	e.dash.now = func() time.Time { return time.Date(2099, 3, 10, 7, 0, 0, 0, berlin) }

	for i, price := range []float64{0.1, 0.2} {
		svc := models.Service{SalonID: e.f.Salon.ID, Name: fmt.Sprintf("Tip %d", i), DurationMin: 30, Price: price, Icon: "spa"}
		require.NoError(t, e.db.Create(&svc).Error)

		w := e.do(http.MethodPost, "/api/appointments", map[string]any{
			"customer_id":      e.f.Customer.ID,
			"staff_id":         e.f.Staff.ID,
			"service_id":       svc.ID,
			"appointment_date": futureDate,
			"appointment_time": fmt.Sprintf("1%d:00", i),
		})
		requireStatus(t, w, http.StatusCreated)
	}

	w := e.do(http.MethodGet, "/api/dashboard/stats", nil)
	requireStatus(t, w, http.StatusOK)

	assert.Contains(t, w.Body.String(), `"month_revenue":0.3,`)
	assert.Equal(t, int64(30), decode[statsBody](t, w).MonthRevenueCents)
}

type auditLogsBody struct {
	Total int64             `json:"total"`
	Logs  []models.AuditLog `json:"data"`
}

func TestAuditLogsList(t *testing.T) {
	e := newTestEnv(t)

	for _, action := range []string{"service_created", "service_updated", "staff_created"} {
		require.NoError(t, e.db.Create(&models.AuditLog{SalonID: e.f.Salon.ID, Action: action, Entity: "service"}).Error)
	}

	w := e.do(http.MethodGet, "/api/audit-logs?action=service_updated", nil)
	requireStatus(t, w, http.StatusOK)

	body := decode[auditLogsBody](t, w)
	assert.Equal(t, int64(1), body.Total)
	require.Len(t, body.Logs, 1)
	assert.Equal(t, "service_updated", body.Logs[0].Action)

	w = e.do(http.MethodGet, "/api/audit-logs?from=yesterday", nil)
	requireError(t, w, http.StatusBadRequest, "invalid_request")

	other := e.otherSalonToken(t)
	w = e.doAs(other, http.MethodGet, "/api/audit-logs", nil)
	requireStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), `"total":0`)
}
