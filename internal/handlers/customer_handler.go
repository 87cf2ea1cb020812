package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/profislots/profislots-api/internal/audit"
	"github.com/profislots/profislots-api/internal/httperr"
	"github.com/profislots/profislots-api/internal/httpresp"
	"github.com/profislots/profislots-api/internal/models"
	"github.com/profislots/profislots-api/internal/session"
)

type CustomerHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCustomerHandler(db *gorm.DB, audit *audit.Dispatcher) *CustomerHandler {
	return &CustomerHandler{db: db, audit: audit}
}

type CustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
	Email string `json:"email" binding:"omitempty,email"`
}

type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,min=1"`
	Phone *string `json:"phone,omitempty" binding:"omitempty,min=1"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}

// ======================================================
// LIST
// ======================================================

func (h *CustomerHandler) List(c *gin.Context) {
	s := session.MustFrom(c)

	q := h.db.WithContext(c.Request.Context()).Where("salon_id = ?", s.SalonID)

	if query := strings.ToLower(strings.TrimSpace(c.Query("query"))); query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var customers []models.Customer
	if err := q.Order("name ASC").Find(&customers).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable("list customers", err))
		return
	}

	httpresp.List(c, customers)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	s := session.MustFrom(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	customer, err := h.find(c, s.SalonID, id)
	if err != nil {
		respondStore(c, err, "customer_not_found", "get customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// ======================================================
// WRITE
// ======================================================

func (h *CustomerHandler) Create(c *gin.Context) {
	s := session.MustFrom(c)

	var req CustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer := models.Customer{
		SalonID: s.SalonID,
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
	}

	if err := h.phoneFree(c, s.SalonID, customer.Phone, 0); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&customer).Error; err != nil {
		httperr.Respond(c, phoneTaken(err, "create customer"))
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  s.SalonID,
		UserID:   s.Actor(),
		Action:   "customer_created",
		Entity:   "customer",
		EntityID: &customer.ID,
	})

	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	s := session.MustFrom(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	customer, err := h.find(c, s.SalonID, id)
	if err != nil {
		respondStore(c, err, "customer_not_found", "get customer")
		return
	}

	var req UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		customer.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if err := h.phoneFree(c, s.SalonID, phone, customer.ID); err != nil {
			httperr.Respond(c, err)
			return
		}
		customer.Phone = phone
	}
	if req.Email != nil {
		customer.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}

	if err := h.db.WithContext(c.Request.Context()).Save(customer).Error; err != nil {
		httperr.Respond(c, phoneTaken(err, "update customer"))
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  s.SalonID,
		UserID:   s.Actor(),
		Action:   "customer_updated",
		Entity:   "customer",
		EntityID: &customer.ID,
	})

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	s := session.MustFrom(c)
	id, ok := paramID(c)
	if !ok {
		return
	}

	if _, err := h.find(c, s.SalonID, id); err != nil {
		respondStore(c, err, "customer_not_found", "get customer")
		return
	}

	if err := deleteUnreferenced(c, h.db, &models.Customer{}, s.SalonID, id, "customer_id", "customer_in_use"); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  s.SalonID,
		UserID:   s.Actor(),
		Action:   "customer_deleted",
		Entity:   "customer",
		EntityID: &id,
	})

	c.Status(http.StatusNoContent)
}

// ======================================================
// HELPERS
// ======================================================

func (h *CustomerHandler) find(c *gin.Context, salonID, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// phoneFree keeps phone numbers unique per salon; public bookings find
// returning customers by phone.
func (h *CustomerHandler) phoneFree(c *gin.Context, salonID uint, phone string, self uint) error {
	var count int64
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Customer{}).
		Where("salon_id = ? AND phone = ? AND id <> ?", salonID, phone, self).
		Count(&count).Error; err != nil {
		return httperr.Unavailable("check customer phone", err)
	}
	if count > 0 {
		return httperr.ErrConflict("phone_already_exists")
	}
	return nil
}

// phoneTaken maps a lost race on the (salon_id, phone) index.
func phoneTaken(err error, op string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrConflict("phone_already_exists")
	}
	return httperr.Unavailable(op, err)
}
