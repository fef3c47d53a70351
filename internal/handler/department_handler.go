package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/worklane/hrms/internal/service"
	"github.com/worklane/hrms/internal/service/serviceutils"
)

// DepartmentHandler handles HTTP requests for departments.
type DepartmentHandler struct {
	svc *service.DepartmentService
}

func NewDepartmentHandler(svc *service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{svc: svc}
}

// List handles GET /api/departments
func (h *DepartmentHandler) List(c echo.Context) error {
	page, err := h.svc.List(c.Request().Context(), parseDescriptor(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	items, meta := shapePage(page, shapeDepartment)
	return serviceutils.ResponsePage(c, items, meta)
}

// Get handles GET /api/departments/:id
func (h *DepartmentHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", shapeDepartment(d))
}

// Create handles POST /api/departments
func (h *DepartmentHandler) Create(c echo.Context) error {
	var in service.CreateDepartmentInput
	if err := c.Bind(&in); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "malformed request body", nil)
	}
	d, err := h.svc.Create(c.Request().Context(), in, actorID(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, "department created", shapeDepartment(d))
}

// Update handles PUT /api/departments/:id
func (h *DepartmentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	var in service.UpdateDepartmentInput
	if err := c.Bind(&in); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "malformed request body", nil)
	}
	d, err := h.svc.Update(c.Request().Context(), id, in, actorID(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "department updated", shapeDepartment(d))
}

// Delete handles DELETE /api/departments/:id
func (h *DepartmentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	if err := h.svc.Delete(c.Request().Context(), id, actorID(c)); err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "department deleted", nil)
}

// Options handles GET /api/departments/options
func (h *DepartmentHandler) Options(c echo.Context) error {
	opts, err := h.svc.Options(c.Request().Context())
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", opts)
}
