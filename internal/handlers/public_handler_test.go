package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profislots/profislots-api/internal/models"
)

type publicBooking struct {
	ID         uint   `json:"id"`
	Status     string `json:"status"`
	Date       string `json:"appointment_date"`
	Time       string `json:"appointment_time"`
	CustomerID uint   `json:"customer_id"`
	Salon      string `json:"salon"`
}

func (e *testEnv) publicBook(clock, phone string) map[string]any {
	return map[string]any{
		"name":             "Lena",
		"phone":            phone,
		"staff_id":         e.f.Staff.ID,
		"service_id":       e.f.Service.ID,
		"appointment_date": futureDate,
		"appointment_time": clock,
	}
}

func TestPublicCatalogShowsActiveRowsOnly(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, e.db.Create(&models.Staff{SalonID: e.f.Salon.ID, Name: "Zoe"}).Error)
	require.NoError(t, e.db.Model(&models.Staff{}).Where("name = ?", "Zoe").Update("active", false).Error)
	require.NoError(t, e.db.Create(&models.Service{SalonID: e.f.Salon.ID, Name: "Old", DurationMin: 30}).Error)
	require.NoError(t, e.db.Model(&models.Service{}).Where("name = ?", "Old").Update("active", false).Error)

	w := e.doAs("", http.MethodGet, "/api/public/studio/services", nil)
	requireStatus(t, w, http.StatusOK)
	services := decode[listBody[ServiceView]](t, w)
	require.Equal(t, 1, services.Total)
	assert.Equal(t, "✂️", services.Data[0].Glyph)

	w = e.doAs("", http.MethodGet, "/api/public/studio/staff", nil)
	requireStatus(t, w, http.StatusOK)
	staff := decode[listBody[publicStaff]](t, w)
	require.Equal(t, 1, staff.Total)
	assert.Equal(t, "Anna", staff.Data[0].Name)
}

func TestPublicUnknownSalon(t *testing.T) {
	e := newTestEnv(t)

	w := e.doAs("", http.MethodGet, "/api/public/nowhere/services", nil)
	requireError(t, w, http.StatusNotFound, "salon_not_found")

	w = e.doAs("", http.MethodPost, "/api/public/nowhere/appointments", e.publicBook("09:00", "+4917000001"))
	requireError(t, w, http.StatusNotFound, "salon_not_found")
}

func TestPublicBookingCreatesCustomerByPhone(t *testing.T) {
	e := newTestEnv(t)

	w := e.doAs("", http.MethodPost, "/api/public/studio/appointments", e.publicBook("09:00", "+4917000001"))
	requireStatus(t, w, http.StatusCreated)
	first := decode[publicBooking](t, w)
	assert.Equal(t, "confirmed", first.Status)
	assert.Equal(t, "Salon studio", first.Salon)
	assert.NotEqual(t, e.f.Customer.ID, first.CustomerID)

	w = e.doAs("", http.MethodPost, "/api/public/studio/appointments", e.publicBook("10:00", "+4917000001"))
	requireStatus(t, w, http.StatusCreated)
	assert.Equal(t, first.CustomerID, decode[publicBooking](t, w).CustomerID)

	var customer models.Customer
	require.NoError(t, e.db.First(&customer, first.CustomerID).Error)
	assert.Equal(t, 2, customer.VisitCount)
	assert.Equal(t, futureDate, customer.LastVisitDate)

	w = e.doAs("", http.MethodGet, fmt.Sprintf("/api/public/studio/available-slots?staff_id=%d&date=%s", e.f.Staff.ID, futureDate), nil)
	requireStatus(t, w, http.StatusOK)
	slots := decode[availabilityBody](t, w).Slots
	assert.Len(t, slots, 18)
	assert.NotContains(t, slots, "09:00")
	assert.NotContains(t, slots, "10:00")
}

func TestPublicBookingRejectsTakenOrClosedSlots(t *testing.T) {
	e := newTestEnv(t)
	e.book(t, "09:00")

	w := e.doAs("", http.MethodPost, "/api/public/studio/appointments", e.publicBook("09:00", "+4917000002"))
	requireError(t, w, http.StatusConflict, "slot_unavailable")

	w = e.doAs("", http.MethodPost, "/api/public/studio/appointments", e.publicBook("19:00", "+4917000002"))
	requireError(t, w, http.StatusConflict, "slot_unavailable")

	w = e.doAs("", http.MethodPost, "/api/public/studio/appointments", e.publicBook("2pm", "+4917000002"))
	requireError(t, w, http.StatusBadRequest, "invalid_time")
}

func TestPublicBookingNeedsNameAndPhone(t *testing.T) {
	e := newTestEnv(t)

	body := e.publicBook("09:00", "  ")
	w := e.doAs("", http.MethodPost, "/api/public/studio/appointments", body)
	requireError(t, w, http.StatusBadRequest, "missing_customer_fields")

	var count int64
	e.db.Model(&models.Customer{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestPublicSlotsForeignStaff(t *testing.T) {
	e := newTestEnv(t)
	e.otherSalonToken(t)

	var foreign models.Staff
	require.NoError(t, e.db.Where("salon_id <> ?", e.f.Salon.ID).First(&foreign).Error)

	w := e.doAs("", http.MethodGet, fmt.Sprintf("/api/public/studio/available-slots?staff_id=%d&date=%s", foreign.ID, futureDate), nil)
	requireError(t, w, http.StatusNotFound, "staff_not_found")
}

func TestPublicInactiveStaffAndServiceAreNotBookable(t *testing.T) {
	e := newTestEnv(t)
	require.NoError(t, e.db.Model(&models.Staff{}).Where("id = ?", e.f.Staff.ID).Update("active", false).Error)

	w := e.doAs("", http.MethodGet, fmt.Sprintf("/api/public/studio/available-slots?staff_id=%d&date=%s", e.f.Staff.ID, futureDate), nil)
	requireError(t, w, http.StatusNotFound, "staff_not_found")

	w = e.doAs("", http.MethodPost, "/api/public/studio/appointments", e.publicBook("09:00", "+4917000003"))
	requireError(t, w, http.StatusNotFound, "staff_not_found")

	require.NoError(t, e.db.Model(&models.Staff{}).Where("id = ?", e.f.Staff.ID).Update("active", true).Error)
	require.NoError(t, e.db.Model(&models.Service{}).Where("id = ?", e.f.Service.ID).Update("active", false).Error)

	w = e.doAs("", http.MethodPost, "/api/public/studio/appointments", e.publicBook("09:00", "+4917000003"))
	requireError(t, w, http.StatusNotFound, "service_not_found")

	var count int64
	e.db.Model(&models.Appointment{}).Count(&count)
	assert.Zero(t, count)
}

func TestPublicFailedBookingCreatesNoCustomer(t *testing.T) {
	e := newTestEnv(t)
	e.book(t, "09:00")

	unknownStaff := e.publicBook("10:00", "+4917000004")
	unknownStaff["staff_id"] = 999
	requireError(t, e.doAs("", http.MethodPost, "/api/public/studio/appointments", unknownStaff), http.StatusNotFound, "staff_not_found")

	requireError(t, e.doAs("", http.MethodPost, "/api/public/studio/appointments", e.publicBook("09:00", "+4917000004")), http.StatusConflict, "slot_unavailable")

	badDate := e.publicBook("10:00", "+4917000004")
	badDate["appointment_date"] = "10.03.2099"
	requireError(t, e.doAs("", http.MethodPost, "/api/public/studio/appointments", badDate), http.StatusBadRequest, "invalid_date")

	var count int64
	require.NoError(t, e.db.Model(&models.Customer{}).Where("phone = ?", "+4917000004").Count(&count).Error)
	assert.Zero(t, count)
}
