package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/profislots/profislots-api/internal/domain/appointment"
	"github.com/profislots/profislots-api/internal/httperr"
	"github.com/profislots/profislots-api/internal/httpresp"
	"github.com/profislots/profislots-api/internal/session"
	"github.com/profislots/profislots-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *appointment.CreateAppointment
	cancel       *appointment.ChangeStatus
	confirm      *appointment.ChangeStatus
	remove       *appointment.DeleteAppointment
	list         *appointment.ListAppointments
	availability *appointment.GetAvailableSlots
}

func NewAppointmentHandler(
	create *appointment.CreateAppointment,
	cancel *appointment.ChangeStatus,
	confirm *appointment.ChangeStatus,
	remove *appointment.DeleteAppointment,
	list *appointment.ListAppointments,
	availability *appointment.GetAvailableSlots,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		cancel:       cancel,
		confirm:      confirm,
		remove:       remove,
		list:         list,
		availability: availability,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// CreateAppointmentRequest leaves field checks to the use case so that
// each missing field gets its own error code.
type CreateAppointmentRequest struct {
	CustomerID uint   `json:"customer_id"`
	StaffID    uint   `json:"staff_id"`
	ServiceID  uint   `json:"service_id"`
	Date       string `json:"appointment_date"`
	Time       string `json:"appointment_time"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
}

type ListAppointmentsQuery struct {
	From    string `form:"from" binding:"omitempty,ymd"`
	To      string `form:"to" binding:"omitempty,ymd"`
	Status  string `form:"status"`
	StaffID uint   `form:"staff_id"`
}

// ======================================================
// QUERIES
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	s := session.MustFrom(c)

	var q ListAppointmentsQuery
	if !bindQuery(c, &q) {
		return
	}

	list, err := h.list.Filter(c.Request.Context(), domain.ListFilter{
		SalonID: s.SalonID,
		From:    q.From,
		To:      q.To,
		StaffID: q.StaffID,
		Status:  q.Status,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	s := session.MustFrom(c)

	list, err := h.list.ByDate(c.Request.Context(), s.SalonID, c.Param("date"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) AvailableSlots(c *gin.Context) {
	s := session.MustFrom(c)

	staffID, ok := queryID(c, "staff_id")
	if !ok {
		return
	}

	avail, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID: s.SalonID,
		StaffID: staffID,
		Date:    c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, avail)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	s := session.MustFrom(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := h.list.Get(c.Request.Context(), s.SalonID, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// COMMANDS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	s := session.MustFrom(c)

	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		SalonID:    s.SalonID,
		ActorID:    s.Actor(),
		CustomerID: req.CustomerID,
		StaffID:    req.StaffID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Time:       req.Time,
		Status:     req.Status,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.cancel)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.changeStatus(c, h.confirm)
}

func (h *AppointmentHandler) changeStatus(c *gin.Context, uc *appointment.ChangeStatus) {
	s := session.MustFrom(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	ap, err := uc.Execute(c.Request.Context(), s.SalonID, s.Actor(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	s := session.MustFrom(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), s.SalonID, s.Actor(), id); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
