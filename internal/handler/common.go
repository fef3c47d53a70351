package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/worklane/hrms/internal/apperror"
	"github.com/worklane/hrms/internal/config"
	"github.com/worklane/hrms/internal/query"
)

// actingUserHeader identifies the user performing a write for audit
// attribution. Absent or malformed values leave the actor nil.
const actingUserHeader = "X-Acting-User"

func actorID(c echo.Context) *int64 {
	raw := c.Request().Header.Get(actingUserHeader)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.New(apperror.CodeNotFound, "resource not found")
	}
	return id, nil
}

// parseDescriptor normalizes the request's filter, sort and pagination
// parameters into a query descriptor.
func parseDescriptor(c echo.Context) query.Descriptor {
	cfg := config.DefaultEnvConfig
	return query.Parse(c.QueryParams(), cfg.PAGE_SIZE_DEFAULT, cfg.PAGE_SIZE_MAX)
}
