package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/profislots/profislots-api/internal/audit"
	domain "github.com/profislots/profislots-api/internal/domain/appointment"
	"github.com/profislots/profislots-api/internal/httperr"
	"github.com/profislots/profislots-api/internal/models"
	"github.com/profislots/profislots-api/internal/session"
	"github.com/profislots/profislots-api/internal/timezone"
)

type MeHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewMeHandler(db *gorm.DB, audit *audit.Dispatcher) *MeHandler {
	return &MeHandler{db: db, audit: audit}
}

type UpdateSalonRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	Timezone        *string `json:"timezone"`
	OpeningTime     *string `json:"opening_time" binding:"omitempty,hhmm"`
	ClosingTime     *string `json:"closing_time" binding:"omitempty,hhmm"`
	SlotStepMinutes *int    `json:"slot_step_minutes" binding:"omitempty,min=5,max=240"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	s := session.MustFrom(c)

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Salon").
		Where("id = ? AND salon_id = ?", s.UserID, s.SalonID).
		First(&user).Error; err != nil {
		respondStore(c, err, "user_not_found", "get user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"phone":    user.Phone,
			"role":     user.Role,
			"salon_id": user.SalonID,
		},
		"salon":      user.Salon,
		"expires_at": s.ExpiresAt,
	})
}

func (h *MeHandler) GetSalon(c *gin.Context) {
	s := session.MustFrom(c)

	var salon models.Salon
	if err := h.db.WithContext(c.Request.Context()).First(&salon, s.SalonID).Error; err != nil {
		respondStore(c, err, "salon_not_found", "get salon")
		return
	}

	c.JSON(http.StatusOK, salon)
}

// UpdateSalon edits the profile and the bookable hours. Existing
// appointments are not moved when the hours change.
func (h *MeHandler) UpdateSalon(c *gin.Context) {
	s := session.MustFrom(c)

	var salon models.Salon
	if err := h.db.WithContext(c.Request.Context()).First(&salon, s.SalonID).Error; err != nil {
		respondStore(c, err, "salon_not_found", "get salon")
		return
	}

	var req UpdateSalonRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		salon.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		salon.Phone = *req.Phone
	}
	if req.Address != nil {
		salon.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
			return
		}
		salon.Timezone = *req.Timezone
	}
	if req.OpeningTime != nil {
		salon.OpeningTime = *req.OpeningTime
	}
	if req.ClosingTime != nil {
		salon.ClosingTime = *req.ClosingTime
	}
	if req.SlotStepMinutes != nil {
		salon.SlotStepMinutes = *req.SlotStepMinutes
	}

	open, errOpen := domain.ParseClock(salon.OpeningTime)
	closing, errClose := domain.ParseClock(salon.ClosingTime)
	if errOpen != nil || errClose != nil || open >= closing {
		httperr.Respond(c, httperr.ErrInvalid("invalid_salon_hours"))
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&salon).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable("update salon", err))
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   s.Actor(),
		Action:   "salon_updated",
		Entity:   "salon",
		EntityID: &salon.ID,
	})

	c.JSON(http.StatusOK, salon)
}
