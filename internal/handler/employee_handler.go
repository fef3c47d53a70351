package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/worklane/hrms/internal/service"
	"github.com/worklane/hrms/internal/service/serviceutils"
)

// EmployeeHandler handles HTTP requests for employees, including full-text
// search and the XLSX export.
type EmployeeHandler struct {
	svc      *service.EmployeeService
	exporter *service.ExportService
}

func NewEmployeeHandler(svc *service.EmployeeService, exporter *service.ExportService) *EmployeeHandler {
	return &EmployeeHandler{svc: svc, exporter: exporter}
}

// List handles GET /api/employees
func (h *EmployeeHandler) List(c echo.Context) error {
	page, err := h.svc.List(c.Request().Context(), parseDescriptor(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	items, meta := shapePage(page, shapeEmployee)
	return serviceutils.ResponsePage(c, items, meta)
}

// Get handles GET /api/employees/:id
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	e, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", shapeEmployee(e))
}

// Create handles POST /api/employees
func (h *EmployeeHandler) Create(c echo.Context) error {
	var in service.CreateEmployeeInput
	if err := c.Bind(&in); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "malformed request body", nil)
	}
	e, err := h.svc.Create(c.Request().Context(), in, actorID(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, "employee created", shapeEmployee(e))
}

// Update handles PUT /api/employees/:id
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	var in service.UpdateEmployeeInput
	if err := c.Bind(&in); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "malformed request body", nil)
	}
	e, err := h.svc.Update(c.Request().Context(), id, in, actorID(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "employee updated", shapeEmployee(e))
}

// Delete handles DELETE /api/employees/:id
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	if err := h.svc.Delete(c.Request().Context(), id, actorID(c)); err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "employee deleted", nil)
}

// FormData handles GET /api/employees/form-data
func (h *EmployeeHandler) FormData(c echo.Context) error {
	data, err := h.svc.FormData(c.Request().Context())
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", data)
}

// Search handles GET /api/employees/search?q=
func (h *EmployeeHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "the q parameter is required", nil)
	}
	docs, err := h.svc.Search(c.Request().Context(), q, 20)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", docs)
}

// Export handles GET /api/employees/export, honoring the same filter and
// sort parameters as List.
func (h *EmployeeHandler) Export(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="employees.xlsx"`)
	c.Response().WriteHeader(http.StatusOK)

	return h.exporter.ExportEmployees(c.Request().Context(), c.Response(), parseDescriptor(c))
}
