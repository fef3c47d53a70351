// Package serviceutils shapes every HTTP response into the uniform envelope:
// status, data, optional message, and links/meta for paginated lists.
package serviceutils

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/logger"
)

type Envelope struct {
	Status  string              `json:"status"`
	Data    interface{}         `json:"data"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
	Links   *PageLinks          `json:"links,omitempty"`
	Meta    *PageMeta           `json:"meta,omitempty"`
}

type PageMeta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

type PageLinks struct {
	First string  `json:"first"`
	Last  string  `json:"last"`
	Prev  *string `json:"prev"`
	Next  *string `json:"next"`
}

func ResponseSuccess(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// ResponsePage wraps one page of shaped items with pagination metadata and
// navigation links derived from the request URL.
func ResponsePage(c echo.Context, data interface{}, meta PageMeta) error {
	return c.JSON(http.StatusOK, Envelope{
		Status: "success",
		Data:   data,
		Links:  pageLinks(c, meta),
		Meta:   &meta,
	})
}

func pageLinks(c echo.Context, meta PageMeta) *PageLinks {
	pageURL := func(page int) string {
		u := *c.Request().URL
		q := u.Query()
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(meta.PerPage))
		u.RawQuery = q.Encode()
		return u.String()
	}

	links := &PageLinks{
		First: pageURL(1),
		Last:  pageURL(meta.LastPage),
	}
	if meta.CurrentPage > 1 {
		prev := pageURL(meta.CurrentPage - 1)
		links.Prev = &prev
	}
	if meta.CurrentPage < meta.LastPage {
		next := pageURL(meta.CurrentPage + 1)
		links.Next = &next
	}
	return links
}

func ResponseError(c echo.Context, status int, message string, err error) error {
	if err != nil {
		logger.ErrorLog(c.Request().Context(), message, err)
	}
	return c.JSON(status, Envelope{
		Status:  "error",
		Message: message,
		Data:    nil,
	})
}

// RespondAppError translates the application error taxonomy into HTTP
// responses: validation failures carry the field-error map as a 422,
// referential conflicts map to 409 and storage failures to 502. Unclassified
// errors are logged and surface as an opaque 500.
func RespondAppError(c echo.Context, err error) error {
	switch apperror.GetCode(err) {
	case apperror.CodeValidation:
		return c.JSON(http.StatusUnprocessableEntity, Envelope{
			Status:  "error",
			Message: err.Error(),
			Errors:  apperror.FieldErrors(err),
			Data:    nil,
		})
	case apperror.CodeNotFound:
		return c.JSON(http.StatusNotFound, Envelope{
			Status:  "error",
			Message: err.Error(),
			Data:    nil,
		})
	case apperror.CodeConflict:
		return c.JSON(http.StatusConflict, Envelope{
			Status:  "error",
			Message: err.Error(),
			Data:    nil,
		})
	case apperror.CodeStorage:
		return ResponseError(c, http.StatusBadGateway, "file storage is unavailable", err)
	default:
		return ResponseError(c, http.StatusInternalServerError, "internal server error", err)
	}
}
