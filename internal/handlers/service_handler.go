package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/profislots/profislots-api/internal/audit"
	"github.com/profislots/profislots-api/internal/domain/catalog"
	"github.com/profislots/profislots-api/internal/httperr"
	"github.com/profislots/profislots-api/internal/httpresp"
	"github.com/profislots/profislots-api/internal/models"
	"github.com/profislots/profislots-api/internal/session"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=5,max=480"`
	Price       float64 `json:"price" binding:"min=0"`
	Icon        string  `json:"icon"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty" binding:"omitempty,min=1"`
	Description *string  `json:"description,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty" binding:"omitempty,min=5,max=480"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,min=0"`
	Icon        *string  `json:"icon,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// ServiceView adds the rendered icon glyph.
type ServiceView struct {
	models.Service
	Glyph string `json:"glyph"`
}

func serviceViews(services []models.Service) []ServiceView {
	out := make([]ServiceView, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceView{Service: s, Glyph: catalog.Icon(s.Icon).Glyph()})
	}
	return out
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	s := session.MustFrom(c)

	q := h.db.WithContext(c.Request.Context()).Where("salon_id = ?", s.SalonID)

	switch c.Query("active") {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable("list services", err))
		return
	}

	httpresp.List(c, serviceViews(services))
}

func (h *ServiceHandler) Get(c *gin.Context) {
	s := session.MustFrom(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	service, err := h.find(c, s.SalonID, id)
	if err != nil {
		respondStore(c, err, "service_not_found", "get service")
		return
	}

	c.JSON(http.StatusOK, serviceViews([]models.Service{*service})[0])
}

func (h *ServiceHandler) Create(c *gin.Context) {
	s := session.MustFrom(c)

	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	icon, err := catalog.ParseIcon(req.Icon)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	service := models.Service{
		SalonID:     s.SalonID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Icon:        string(icon),
		Active:      true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable("create service", err))
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  s.SalonID,
		UserID:   s.Actor(),
		Action:   "service_created",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusCreated, ServiceView{Service: service, Glyph: icon.Glyph()})
}

func (h *ServiceHandler) Update(c *gin.Context) {
	s := session.MustFrom(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	service, err := h.find(c, s.SalonID, id)
	if err != nil {
		respondStore(c, err, "service_not_found", "get service")
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Icon != nil {
		icon, err := catalog.ParseIcon(*req.Icon)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		service.Icon = string(icon)
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(service).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable("update service", err))
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  s.SalonID,
		UserID:   s.Actor(),
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusOK, serviceViews([]models.Service{*service})[0])
}

// Delete refuses services that appointments still reference; deactivate
// them instead.
func (h *ServiceHandler) Delete(c *gin.Context) {
	s := session.MustFrom(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	if _, err := h.find(c, s.SalonID, id); err != nil {
		respondStore(c, err, "service_not_found", "get service")
		return
	}

	if err := deleteUnreferenced(c, h.db, &models.Service{}, s.SalonID, id, "service_id", "service_in_use"); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  s.SalonID,
		UserID:   s.Actor(),
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &id,
	})

	c.Status(http.StatusNoContent)
}

func (h *ServiceHandler) find(c *gin.Context, salonID, id uint) (*models.Service, error) {
	var service models.Service
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&service).Error
	if err != nil {
		return nil, err
	}
	return &service, nil
}

// deleteUnreferenced removes a catalog row unless an appointment points
// at it through column.
func deleteUnreferenced(c *gin.Context, db *gorm.DB, model any, salonID, id uint, column, inUseCode string) error {
	err := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&models.Appointment{}).
			Where(column+" = ? AND salon_id = ?", id, salonID).
			Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return httperr.ErrConflict(inUseCode)
		}

		return tx.Where("id = ? AND salon_id = ?", id, salonID).Delete(model).Error
	})

	if _, ok := httperr.KindOf(err); ok {
		return err
	}
	return httperr.Unavailable("delete "+column, err)
}
