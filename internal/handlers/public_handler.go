package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/profislots/profislots-api/internal/domain/appointment"
	"github.com/profislots/profislots-api/internal/httperr"
	"github.com/profislots/profislots-api/internal/httpresp"
	"github.com/profislots/profislots-api/internal/models"
	"github.com/profislots/profislots-api/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the booking page of a salon, addressed by slug.
type PublicHandler struct {
	db           *gorm.DB
	repo         domain.Repository
	availability *appointment.GetAvailableSlots
	create       *appointment.CreateAppointment
}

func NewPublicHandler(
	db *gorm.DB,
	repo domain.Repository,
	availability *appointment.GetAvailableSlots,
	create *appointment.CreateAppointment,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		repo:         repo,
		availability: availability,
		create:       create,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicBookingRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email" binding:"omitempty,email"`
	StaffID   uint   `json:"staff_id"`
	ServiceID uint   `json:"service_id"`
	Date      string `json:"appointment_date"`
	Time      string `json:"appointment_time"`
	Notes     string `json:"notes"`
}

type publicStaff struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	PhotoURL  string `json:"photo_url"`
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.WithContext(c.Request.Context()).
		Where("salon_id = ? AND active = ?", salon.ID, true).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable("list services", err))
		return
	}

	httpresp.List(c, serviceViews(services))
}

func (h *PublicHandler) ListStaff(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}

	var staff []models.Staff
	if err := h.db.WithContext(c.Request.Context()).
		Where("salon_id = ? AND active = ?", salon.ID, true).
		Order("name ASC").
		Find(&staff).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable("list staff", err))
		return
	}

	out := make([]publicStaff, 0, len(staff))
	for _, s := range staff {
		out = append(out, publicStaff{ID: s.ID, Name: s.Name, Specialty: s.Specialty, PhotoURL: s.PhotoURL})
	}
	httpresp.List(c, out)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) AvailableSlots(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}

	staffID, ok := queryID(c, "staff_id")
	if !ok {
		return
	}

	avail, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID: salon.ID,
		StaffID: staffID,
		Date:    c.Query("date"),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, avail)
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

// Book finds or creates the customer by phone and books only a slot that
// is currently offered. Nothing is written when the booking fails.
func (h *PublicHandler) Book(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}

	var req PublicBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		SalonID:   salon.ID,
		StaffID:   req.StaffID,
		ServiceID: req.ServiceID,
		Contact: &domain.CustomerContact{
			Name:  strings.TrimSpace(req.Name),
			Phone: strings.TrimSpace(req.Phone),
			Email: strings.ToLower(strings.TrimSpace(req.Email)),
		},
		Date:            req.Date,
		Time:            req.Time,
		Notes:           req.Notes,
		RequireOpenSlot: true,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":               ap.ID,
		"status":           ap.Status,
		"appointment_date": ap.AppointmentDate,
		"appointment_time": ap.AppointmentTime,
		"customer_id":      ap.CustomerID,
		"salon":            salon.Name,
	})
}

func (h *PublicHandler) salon(c *gin.Context) (*models.Salon, bool) {
	salon, err := h.repo.GetSalonBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.Respond(c, httperr.ErrNotFound("salon_not_found"))
			return nil, false
		}
		httperr.Respond(c, httperr.Unavailable("get salon by slug", err))
		return nil, false
	}
	return salon, true
}
