package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/profislots/profislots-api/internal/domain/appointment"
	"github.com/profislots/profislots-api/internal/httperr"
	"github.com/profislots/profislots-api/internal/httpresp"
	"github.com/profislots/profislots-api/internal/models"
	"github.com/profislots/profislots-api/internal/session"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

type AuditLogsQuery struct {
	Action string `form:"action"`
	Entity string `form:"entity"`
	From   string `form:"from" binding:"omitempty,ymd"`
	To     string `form:"to" binding:"omitempty,ymd"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	s := session.MustFrom(c)

	var req AuditLogsQuery
	if !bindQuery(c, &req) {
		return
	}

	page := req.Page
	if page <= 0 {
		page = 1
	}

	limit := req.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	offset := (page - 1) * limit

	// --------------------------------------------------
	// Base query, always scoped to the salon
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("salon_id = ?", s.SalonID)

	if req.Action != "" {
		q = q.Where("action = ?", req.Action)
	}

	if req.Entity != "" {
		q = q.Where("entity = ?", req.Entity)
	}

	if req.From != "" {
		from, _ := time.Parse(domain.DateLayout, req.From)
		q = q.Where("created_at >= ?", from)
	}

	if req.To != "" {
		to, _ := time.Parse(domain.DateLayout, req.To)
		q = q.Where("created_at < ?", to.Add(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable("count audit logs", err))
		return
	}

	logs := []models.AuditLog{}
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable("list audit logs", err))
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
