package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
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

type auditFilter struct {
	Action   string
	Entity   string
	EntityID uint
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

func parseAuditFilter(c *gin.Context) auditFilter {
	f := auditFilter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
	}

	if id, ok := parseID(c.Query("entity_id")); ok {
		f.EntityID = id
	}
	if from, err := time.Parse(timezone.DateLayout, c.Query("from")); err == nil {
		f.From = &from
	}
	if to, err := time.Parse(timezone.DateLayout, c.Query("to")); err == nil {
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}

	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if f.Page <= 0 {
		f.Page = 1
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	return f
}

// List pages through the tenant's audit trail, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	_, barbershopID := staffIDs(c)
	f := parseAuditFilter(c)

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("barbershop_id = ?", barbershopID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.EntityID != 0 {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.Page(c, logs, f.Page, f.Limit, total)
}
