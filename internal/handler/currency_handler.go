package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/worklane/hrms/internal/service"
	"github.com/worklane/hrms/internal/service/serviceutils"
)

// CurrencyHandler handles HTTP requests for currencies.
type CurrencyHandler struct {
	svc *service.CurrencyService
}

func NewCurrencyHandler(svc *service.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{svc: svc}
}

// List handles GET /api/currencies
func (h *CurrencyHandler) List(c echo.Context) error {
	page, err := h.svc.List(c.Request().Context(), parseDescriptor(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	items, meta := shapePage(page, shapeCurrency)
	return serviceutils.ResponsePage(c, items, meta)
}

// Get handles GET /api/currencies/:id
func (h *CurrencyHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	cur, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", shapeCurrency(cur))
}

// Create handles POST /api/currencies
func (h *CurrencyHandler) Create(c echo.Context) error {
	var in service.CreateCurrencyInput
	if err := c.Bind(&in); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "malformed request body", nil)
	}
	cur, err := h.svc.Create(c.Request().Context(), in, actorID(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, "currency created", shapeCurrency(cur))
}

// Update handles PUT /api/currencies/:id
func (h *CurrencyHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	var in service.UpdateCurrencyInput
	if err := c.Bind(&in); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "malformed request body", nil)
	}
	cur, err := h.svc.Update(c.Request().Context(), id, in, actorID(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "currency updated", shapeCurrency(cur))
}

// Delete handles DELETE /api/currencies/:id
func (h *CurrencyHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	if err := h.svc.Delete(c.Request().Context(), id, actorID(c)); err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "currency deleted", nil)
}

// Options handles GET /api/currencies/options
func (h *CurrencyHandler) Options(c echo.Context) error {
	opts, err := h.svc.Options(c.Request().Context())
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", opts)
}
