package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/profislots/profislots-api/internal/audit"
	"github.com/profislots/profislots-api/internal/config"
	"github.com/profislots/profislots-api/internal/httperr"
	"github.com/profislots/profislots-api/internal/models"
	"github.com/profislots/profislots-api/internal/session"
	"github.com/profislots/profislots-api/internal/timezone"
	"github.com/profislots/profislots-api/internal/validators"
)

type AuthHandler struct {
	db      *gorm.DB
	config  *config.Config
	issuer  *session.Issuer
	revoker session.Revoker
	audit   *audit.Dispatcher

	emailOK validators.DomainChecker
}

func NewAuthHandler(
	db *gorm.DB,
	cfg *config.Config,
	issuer *session.Issuer,
	revoker session.Revoker,
	audit *audit.Dispatcher,
) *AuthHandler {
	return &AuthHandler{
		db:      db,
		config:  cfg,
		issuer:  issuer,
		revoker: revoker,
		audit:   audit,
		emailOK: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	SalonName    string `json:"salon_name" binding:"required"`
	SalonSlug    string `json:"salon_slug" binding:"required"`
	SalonPhone   string `json:"salon_phone"`
	SalonAddress string `json:"salon_address"`
	Timezone     string `json:"timezone"`

	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	slug := strings.ToLower(strings.TrimSpace(req.SalonSlug))
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.emailOK(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	tz := req.Timezone
	if tz == "" {
		tz = h.config.DefaultTimezone
	}
	if !timezone.IsValid(tz) {
		httperr.BadRequest(c, "invalid_timezone", "Unknown timezone.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not secure the password.")
		return
	}

	salon := models.Salon{
		Name:            req.SalonName,
		Slug:            slug,
		Phone:           req.SalonPhone,
		Address:         req.SalonAddress,
		Timezone:        tz,
		OpeningTime:     h.config.DefaultOpeningTime,
		ClosingTime:     h.config.DefaultClosingTime,
		SlotStepMinutes: h.config.DefaultSlotStep,
	}
	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		Role:         "owner",
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Salon{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrConflict("slug_already_exists")
		}

		if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrConflict("email_already_exists")
		}

		if err := tx.Create(&salon).Error; err != nil {
			return err
		}

		user.SalonID = salon.ID
		return tx.Omit("Salon").Create(&user).Error
	})
	if err != nil {
		if _, ok := httperr.KindOf(err); ok {
			httperr.Respond(c, err)
			return
		}
		httperr.Respond(c, httperr.Unavailable("register salon", err))
		return
	}

	token, s, err := h.issuer.Issue(user.ID, salon.ID, user.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not create a session.")
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &user.ID,
		Action:   "salon_registered",
		Entity:   "salon",
		EntityID: &salon.ID,
	})

	c.JSON(http.StatusCreated, authResponse(&user, &salon, token, s.ExpiresAt))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Salon").
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Email or password is wrong.")
			return
		}
		httperr.Respond(c, httperr.Unavailable("find user", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Email or password is wrong.")
		return
	}

	token, s, err := h.issuer.Issue(user.ID, user.SalonID, user.Role)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not create a session.")
		return
	}

	c.JSON(http.StatusOK, authResponse(&user, &user.Salon, token, s.ExpiresAt))
}

// Logout revokes the presented token until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	s := session.MustFrom(c)

	if err := h.revoker.Revoke(c.Request.Context(), s); err != nil {
		httperr.Respond(c, httperr.Unavailable("revoke token", err))
		return
	}

	h.audit.Dispatch(audit.Event{
		SalonID: s.SalonID,
		UserID:  s.Actor(),
		Action:  "user_logout",
		Entity:  "user",
	})

	c.Status(http.StatusNoContent)
}

func authResponse(user *models.User, salon *models.Salon, token string, expiresAt time.Time) gin.H {
	return gin.H{
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"phone":    user.Phone,
			"role":     user.Role,
			"salon_id": user.SalonID,
		},
		"salon": gin.H{
			"id":       salon.ID,
			"name":     salon.Name,
			"slug":     salon.Slug,
			"phone":    salon.Phone,
			"address":  salon.Address,
			"timezone": salon.Timezone,
		},
		"token":      token,
		"expires_at": expiresAt,
	}
}
