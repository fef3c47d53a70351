package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/worklane/hrms/internal/service"
	"github.com/worklane/hrms/internal/service/serviceutils"
)

// DesignationHandler handles HTTP requests for designations.
type DesignationHandler struct {
	svc *service.DesignationService
}

func NewDesignationHandler(svc *service.DesignationService) *DesignationHandler {
	return &DesignationHandler{svc: svc}
}

// List handles GET /api/designations
func (h *DesignationHandler) List(c echo.Context) error {
	page, err := h.svc.List(c.Request().Context(), parseDescriptor(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	items, meta := shapePage(page, shapeDesignation)
	return serviceutils.ResponsePage(c, items, meta)
}

// Get handles GET /api/designations/:id
func (h *DesignationHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", shapeDesignation(d))
}

// Create handles POST /api/designations
func (h *DesignationHandler) Create(c echo.Context) error {
	var in service.CreateDesignationInput
	if err := c.Bind(&in); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "malformed request body", nil)
	}
	d, err := h.svc.Create(c.Request().Context(), in, actorID(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, "designation created", shapeDesignation(d))
}

// Update handles PUT /api/designations/:id
func (h *DesignationHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	var in service.UpdateDesignationInput
	if err := c.Bind(&in); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "malformed request body", nil)
	}
	d, err := h.svc.Update(c.Request().Context(), id, in, actorID(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "designation updated", shapeDesignation(d))
}

// Delete handles DELETE /api/designations/:id
func (h *DesignationHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	if err := h.svc.Delete(c.Request().Context(), id, actorID(c)); err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "designation deleted", nil)
}

// Options handles GET /api/designations/options
func (h *DesignationHandler) Options(c echo.Context) error {
	opts, err := h.svc.Options(c.Request().Context())
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", opts)
}
