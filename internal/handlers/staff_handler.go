package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/profislots/profislots-api/internal/audit"
	"github.com/profislots/profislots-api/internal/httperr"
	"github.com/profislots/profislots-api/internal/httpresp"
	"github.com/profislots/profislots-api/internal/media"
	"github.com/profislots/profislots-api/internal/models"
	"github.com/profislots/profislots-api/internal/session"
)

// PhotoStore keeps processed staff photos and returns their public URL.
type PhotoStore interface {
	PutStaffPhoto(ctx context.Context, salonID, staffID uint, data []byte) (string, error)
}

type StaffHandler struct {
	db        *gorm.DB
	audit     *audit.Dispatcher
	processor *media.Processor
	photos    PhotoStore
}

// NewStaffHandler accepts a nil photo store; uploads then answer 503.
func NewStaffHandler(db *gorm.DB, audit *audit.Dispatcher, processor *media.Processor, photos PhotoStore) *StaffHandler {
	return &StaffHandler{db: db, audit: audit, processor: processor, photos: photos}
}

type CreateStaffRequest struct {
	Name      string `json:"name" binding:"required"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Email     string `json:"email" binding:"omitempty,email"`
}

type UpdateStaffRequest struct {
	Name      *string `json:"name,omitempty" binding:"omitempty,min=1"`
	Specialty *string `json:"specialty,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Active    *bool   `json:"active,omitempty"`
}

func (h *StaffHandler) List(c *gin.Context) {
	s := session.MustFrom(c)

	q := h.db.WithContext(c.Request.Context()).Where("salon_id = ?", s.SalonID)
	if c.Query("active") == "true" {
		q = q.Where("active = ?", true)
	}

	var staff []models.Staff
	if err := q.Order("name ASC").Find(&staff).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable("list staff", err))
		return
	}

	httpresp.List(c, staff)
}

func (h *StaffHandler) Get(c *gin.Context) {
	s := session.MustFrom(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	member, err := h.find(c, s.SalonID, id)
	if err != nil {
		respondStore(c, err, "staff_not_found", "get staff")
		return
	}

	c.JSON(http.StatusOK, member)
}

func (h *StaffHandler) Create(c *gin.Context) {
	s := session.MustFrom(c)

	var req CreateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	member := models.Staff{
		SalonID:   s.SalonID,
		Name:      strings.TrimSpace(req.Name),
		Specialty: req.Specialty,
		Phone:     req.Phone,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Active:    true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&member).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable("create staff", err))
		return
	}

	h.dispatch(s, "staff_created", member.ID)
	c.JSON(http.StatusCreated, member)
}

func (h *StaffHandler) Update(c *gin.Context) {
	s := session.MustFrom(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	member, err := h.find(c, s.SalonID, id)
	if err != nil {
		respondStore(c, err, "staff_not_found", "get staff")
		return
	}

	var req UpdateStaffRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		member.Name = strings.TrimSpace(*req.Name)
	}
	if req.Specialty != nil {
		member.Specialty = *req.Specialty
	}
	if req.Phone != nil {
		member.Phone = *req.Phone
	}
	if req.Email != nil {
		member.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Active != nil {
		member.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(member).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable("update staff", err))
		return
	}

	h.dispatch(s, "staff_updated", member.ID)
	c.JSON(http.StatusOK, member)
}

func (h *StaffHandler) Delete(c *gin.Context) {
	s := session.MustFrom(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	if _, err := h.find(c, s.SalonID, id); err != nil {
		respondStore(c, err, "staff_not_found", "get staff")
		return
	}

	if err := deleteUnreferenced(c, h.db, &models.Staff{}, s.SalonID, id, "staff_id", "staff_in_use"); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.dispatch(s, "staff_deleted", id)
	c.Status(http.StatusNoContent)
}

// UploadPhoto takes a multipart "photo" field (jpeg, png or webp) and
// replaces the staff photo with a square WebP.
func (h *StaffHandler) UploadPhoto(c *gin.Context) {
	s := session.MustFrom(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	if h.photos == nil {
		httperr.ServiceUnavailable(c, "media_unavailable", "Photo uploads are not configured.")
		return
	}

	member, err := h.find(c, s.SalonID, id)
	if err != nil {
		respondStore(c, err, "staff_not_found", "get staff")
		return
	}

	header, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Please attach a photo.")
		return
	}

	f, err := header.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "The photo could not be read.")
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, media.MaxUploadBytes+1))
	if err != nil {
		httperr.BadRequest(c, "invalid_photo", "The photo could not be read.")
		return
	}

	processed, err := h.processor.Process(raw)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrTooLarge):
			httperr.BadRequest(c, "photo_too_large", "The photo is larger than 8 MB.")
		case errors.Is(err, media.ErrUnsupportedFormat), errors.Is(err, media.ErrUndecodable):
			httperr.BadRequest(c, "invalid_photo", "The photo must be a JPEG, PNG or WebP image.")
		default:
			httperr.Internal(c, "photo_processing_failed", "The photo could not be processed.")
		}
		return
	}

	url, err := h.photos.PutStaffPhoto(c.Request.Context(), s.SalonID, member.ID, processed)
	if err != nil {
		httperr.Respond(c, httperr.Unavailable("store staff photo", err))
		return
	}

	member.PhotoURL = url
	if err := h.db.WithContext(c.Request.Context()).
		Model(member).
		Update("photo_url", url).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable("update staff photo", err))
		return
	}

	h.dispatch(s, "staff_photo_updated", member.ID)
	c.JSON(http.StatusOK, member)
}

func (h *StaffHandler) find(c *gin.Context, salonID, id uint) (*models.Staff, error) {
	var member models.Staff
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (h *StaffHandler) dispatch(s session.Session, action string, id uint) {
	h.audit.Dispatch(audit.Event{
		SalonID:  s.SalonID,
		UserID:   s.Actor(),
		Action:   action,
		Entity:   "staff",
		EntityID: &id,
	})
}
