package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/worklane/hrms/internal/service"
	"github.com/worklane/hrms/internal/service/serviceutils"
)

// AuditLogHandler exposes the read-only audit trail.
type AuditLogHandler struct {
	svc *service.AuditLogService
}

func NewAuditLogHandler(svc *service.AuditLogService) *AuditLogHandler {
	return &AuditLogHandler{svc: svc}
}

// List handles GET /api/audit-logs
func (h *AuditLogHandler) List(c echo.Context) error {
	page, err := h.svc.List(c.Request().Context(), parseDescriptor(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	items, meta := shapePage(page, shapeAuditLog)
	return serviceutils.ResponsePage(c, items, meta)
}

// Get handles GET /api/audit-logs/:id
func (h *AuditLogHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}

	// The single-entry view resolves the audited row itself, soft-deleted
	// or not; list responses stay lean.
	record, err := h.svc.Record(c.Request().Context(), a)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	m := shapeAuditLog(a)
	m["record"] = record
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", m)
}
