package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profislots/profislots-api/internal/dto"
	"github.com/profislots/profislots-api/internal/models"
)

type availabilityBody struct {
	Date    string   `json:"date"`
	StaffID uint     `json:"staff_id"`
	Slots   []string `json:"slots"`
}

func (e *testEnv) book(t *testing.T, clock string) models.Appointment {
	t.Helper()
	w := e.do(http.MethodPost, "/api/appointments", map[string]any{
		"customer_id":      e.f.Customer.ID,
		"staff_id":         e.f.Staff.ID,
		"service_id":       e.f.Service.ID,
		"appointment_date": futureDate,
		"appointment_time": clock,
	})
	requireStatus(t, w, http.StatusCreated)
	return decode[models.Appointment](t, w)
}

func TestAvailableSlotsFullDay(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodGet, fmt.Sprintf("/api/appointments/available-slots?staff_id=%d&date=%s", e.f.Staff.ID, futureDate), nil)
	requireStatus(t, w, http.StatusOK)

	body := decode[availabilityBody](t, w)
	assert.Len(t, body.Slots, 20)
	assert.Equal(t, "08:00", body.Slots[0])
	assert.Equal(t, "17:30", body.Slots[19])
}

func TestAvailableSlotsValidation(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodGet, "/api/appointments/available-slots?date="+futureDate, nil)
	requireError(t, w, http.StatusBadRequest, "missing_staff_id")

	w = e.do(http.MethodGet, "/api/appointments/available-slots?staff_id=abc&date="+futureDate, nil)
	requireError(t, w, http.StatusBadRequest, "invalid_staff_id")

	w = e.do(http.MethodGet, fmt.Sprintf("/api/appointments/available-slots?staff_id=%d", e.f.Staff.ID), nil)
	requireError(t, w, http.StatusBadRequest, "missing_date")

	w = e.do(http.MethodGet, fmt.Sprintf("/api/appointments/available-slots?staff_id=%d&date=soon", e.f.Staff.ID), nil)
	requireError(t, w, http.StatusBadRequest, "invalid_date")

	w = e.do(http.MethodGet, "/api/appointments/available-slots?staff_id=999&date="+futureDate, nil)
	requireError(t, w, http.StatusNotFound, "staff_not_found")
}

func TestCreateAndListByDate(t *testing.T) {
	e := newTestEnv(t)

	ap := e.book(t, "09:00")
	assert.Equal(t, "confirmed", ap.Status)

	w := e.do(http.MethodGet, "/api/appointments/date/"+futureDate, nil)
	requireStatus(t, w, http.StatusOK)

	list := decode[listBody[dto.AppointmentListDTO]](t, w)
	require.Equal(t, 1, list.Total)
	got := list.Data[0]
	assert.Equal(t, ap.ID, got.ID)
	assert.Equal(t, "09:00", got.Time)
	assert.Equal(t, "Max", got.CustomerName)
	assert.Equal(t, "Haircut", got.ServiceName)
	assert.Equal(t, 35.5, got.Price)

	w = e.do(http.MethodGet, fmt.Sprintf("/api/appointments/available-slots?staff_id=%d&date=%s", e.f.Staff.ID, futureDate), nil)
	slots := decode[availabilityBody](t, w).Slots
	assert.Len(t, slots, 19)
	assert.NotContains(t, slots, "09:00")
}

func TestListByDateEmptyDay(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodGet, "/api/appointments/date/2099-01-01", nil)
	requireStatus(t, w, http.StatusOK)
	assert.JSONEq(t, `{"data":[],"total":0}`, w.Body.String())

	w = e.do(http.MethodGet, "/api/appointments/date/01-01-2099", nil)
	requireError(t, w, http.StatusBadRequest, "invalid_date")
}

func TestCreateConflict(t *testing.T) {
	e := newTestEnv(t)
	e.book(t, "10:00")

	w := e.do(http.MethodPost, "/api/appointments", map[string]any{
		"customer_id":      e.f.Customer.ID,
		"staff_id":         e.f.Staff.ID,
		"service_id":       e.f.Service.ID,
		"appointment_date": futureDate,
		"appointment_time": "10:00",
	})

	requireError(t, w, http.StatusConflict, "slot_unavailable")
	assert.Equal(t, "This slot is no longer available.", decode[errorBody](t, w).Message)
}

func TestCreateValidation(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodPost, "/api/appointments", map[string]any{
		"staff_id":         e.f.Staff.ID,
		"customer_id":      e.f.Customer.ID,
		"appointment_date": futureDate,
		"appointment_time": "10:00",
	})
	requireError(t, w, http.StatusBadRequest, "missing_service_id")

	w = e.do(http.MethodPost, "/api/appointments", map[string]any{
		"service_id":       e.f.Service.ID,
		"staff_id":         e.f.Staff.ID,
		"customer_id":      e.f.Customer.ID,
		"appointment_date": futureDate,
		"appointment_time": "10:00",
		"status":           "cancelled",
	})
	requireError(t, w, http.StatusBadRequest, "invalid_status")

	var count int64
	e.db.Model(&models.Appointment{}).Count(&count)
	assert.Zero(t, count)
}

func TestCancelConfirmDelete(t *testing.T) {
	e := newTestEnv(t)
	ap := e.book(t, "11:00")

	w := e.do(http.MethodPut, fmt.Sprintf("/api/appointments/%d/confirm", ap.ID), nil)
	requireError(t, w, http.StatusBadRequest, "invalid_state")

	w = e.do(http.MethodPut, fmt.Sprintf("/api/appointments/%d/cancel", ap.ID), nil)
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, "cancelled", decode[models.Appointment](t, w).Status)

	again := e.book(t, "11:00")
	assert.NotEqual(t, ap.ID, again.ID)

	w = e.do(http.MethodGet, fmt.Sprintf("/api/appointments?status=cancelled&from=%s&to=%s", futureDate, futureDate), nil)
	requireStatus(t, w, http.StatusOK)
	assert.Equal(t, 1, decode[listBody[dto.AppointmentListDTO]](t, w).Total)

	w = e.do(http.MethodDelete, fmt.Sprintf("/api/appointments/%d", ap.ID), nil)
	requireStatus(t, w, http.StatusNoContent)

	w = e.do(http.MethodGet, fmt.Sprintf("/api/appointments/%d", ap.ID), nil)
	requireError(t, w, http.StatusNotFound, "appointment_not_found")

	w = e.do(http.MethodGet, "/api/appointments/abc", nil)
	requireError(t, w, http.StatusBadRequest, "invalid_id")
}

func TestListRejectsBadFilter(t *testing.T) {
	e := newTestEnv(t)

	w := e.do(http.MethodGet, "/api/appointments?from=yesterday", nil)
	requireError(t, w, http.StatusBadRequest, "invalid_request")

	w = e.do(http.MethodGet, "/api/appointments?status=done", nil)
	requireError(t, w, http.StatusBadRequest, "invalid_status")
}

func TestStoreFailureIsServiceUnavailable(t *testing.T) {
	e := newTestEnv(t)

	sqlDB, err := e.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := e.do(http.MethodGet, "/api/appointments/date/"+futureDate, nil)
	requireError(t, w, http.StatusServiceUnavailable, "store_unavailable")
}

func TestAppointmentsAreTenantScoped(t *testing.T) {
	e := newTestEnv(t)
	ap := e.book(t, "12:00")

	other := e.otherSalonToken(t)

	w := e.doAs(other, http.MethodGet, fmt.Sprintf("/api/appointments/%d", ap.ID), nil)
	requireError(t, w, http.StatusNotFound, "appointment_not_found")

	w = e.doAs(other, http.MethodPut, fmt.Sprintf("/api/appointments/%d/cancel", ap.ID), nil)
	requireError(t, w, http.StatusNotFound, "appointment_not_found")
}
