package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/worklane/hrms/internal/service"
	"github.com/worklane/hrms/internal/service/serviceutils"
)

// LeaveTypeHandler handles HTTP requests for leave types.
type LeaveTypeHandler struct {
	svc *service.LeaveTypeService
}

func NewLeaveTypeHandler(svc *service.LeaveTypeService) *LeaveTypeHandler {
	return &LeaveTypeHandler{svc: svc}
}

// List handles GET /api/leave-types
func (h *LeaveTypeHandler) List(c echo.Context) error {
	page, err := h.svc.List(c.Request().Context(), parseDescriptor(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	items, meta := shapePage(page, shapeLeaveType)
	return serviceutils.ResponsePage(c, items, meta)
}

// Get handles GET /api/leave-types/:id
func (h *LeaveTypeHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	lt, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", shapeLeaveType(lt))
}

// Create handles POST /api/leave-types
func (h *LeaveTypeHandler) Create(c echo.Context) error {
	var in service.CreateLeaveTypeInput
	if err := c.Bind(&in); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "malformed request body", nil)
	}
	lt, err := h.svc.Create(c.Request().Context(), in, actorID(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, "leave type created", shapeLeaveType(lt))
}

// Update handles PUT /api/leave-types/:id
func (h *LeaveTypeHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	var in service.UpdateLeaveTypeInput
	if err := c.Bind(&in); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "malformed request body", nil)
	}
	lt, err := h.svc.Update(c.Request().Context(), id, in, actorID(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "leave type updated", shapeLeaveType(lt))
}

// Delete handles DELETE /api/leave-types/:id
func (h *LeaveTypeHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	if err := h.svc.Delete(c.Request().Context(), id, actorID(c)); err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "leave type deleted", nil)
}

// Options handles GET /api/leave-types/options
func (h *LeaveTypeHandler) Options(c echo.Context) error {
	opts, err := h.svc.Options(c.Request().Context())
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", opts)
}
