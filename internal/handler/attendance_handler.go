package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/worklane/hrms/internal/service"
	"github.com/worklane/hrms/internal/service/serviceutils"
)

// AttendanceHandler handles HTTP requests for attendance records.
type AttendanceHandler struct {
	svc      *service.AttendanceService
	exporter *service.ExportService
}

func NewAttendanceHandler(svc *service.AttendanceService, exporter *service.ExportService) *AttendanceHandler {
	return &AttendanceHandler{svc: svc, exporter: exporter}
}

// List handles GET /api/attendance-records
func (h *AttendanceHandler) List(c echo.Context) error {
	page, err := h.svc.List(c.Request().Context(), parseDescriptor(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	items, meta := shapePage(page, shapeAttendance)
	return serviceutils.ResponsePage(c, items, meta)
}

// Get handles GET /api/attendance-records/:id
func (h *AttendanceHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", shapeAttendance(a))
}

// Create handles POST /api/attendance-records
func (h *AttendanceHandler) Create(c echo.Context) error {
	var in service.CreateAttendanceInput
	if err := c.Bind(&in); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "malformed request body", nil)
	}
	a, err := h.svc.Create(c.Request().Context(), in)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, "attendance record created", shapeAttendance(a))
}

// Update handles PUT /api/attendance-records/:id
func (h *AttendanceHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	var in service.UpdateAttendanceInput
	if err := c.Bind(&in); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "malformed request body", nil)
	}
	a, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "attendance record updated", shapeAttendance(a))
}

// Delete handles DELETE /api/attendance-records/:id
func (h *AttendanceHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "attendance record deleted", nil)
}

// Export handles GET /api/attendance-records/export, honoring the same
// filter and sort parameters as List.
func (h *AttendanceHandler) Export(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="attendance.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)

	return h.exporter.ExportAttendance(c.Request().Context(), c.Response(), parseDescriptor(c))
}
