package handler

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/worklane/hrms/internal/config"
	"github.com/worklane/hrms/internal/service"
	"github.com/worklane/hrms/internal/service/serviceutils"
)

// DocumentHandler handles HTTP requests for employee documents. Uploads
// arrive as multipart form data with the metadata fields alongside the file.
type DocumentHandler struct {
	svc *service.DocumentService
}

func NewDocumentHandler(svc *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// List handles GET /api/employee-documents
func (h *DocumentHandler) List(c echo.Context) error {
	page, err := h.svc.List(c.Request().Context(), parseDescriptor(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	items, meta := shapePage(page, shapeDocument)
	return serviceutils.ResponsePage(c, items, meta)
}

// Get handles GET /api/employee-documents/:id
func (h *DocumentHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "", shapeDocument(d))
}

// Create handles POST /api/employee-documents
func (h *DocumentHandler) Create(c echo.Context) error {
	employeeID, _ := strconv.ParseInt(c.FormValue("employee_id"), 10, 64)

	in := service.CreateDocumentInput{
		EmployeeID: employeeID,
		Title:      c.FormValue("title"),
	}

	header, err := c.FormFile("file")
	if err == nil {
		file, ferr := header.Open()
		if ferr != nil {
			return serviceutils.ResponseError(c, http.StatusBadRequest, "unreadable file upload", ferr)
		}
		defer file.Close()
		fillFileInput(&in, header, file)
	}

	d, err := h.svc.Create(c.Request().Context(), in, actorID(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, "document created", shapeDocument(d))
}

// Update handles PUT /api/employee-documents/:id
func (h *DocumentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}

	var in service.UpdateDocumentInput
	if title := c.FormValue("title"); title != "" {
		in.Title = &title
	}

	header, ferr := c.FormFile("file")
	if ferr == nil {
		file, oerr := header.Open()
		if oerr != nil {
			return serviceutils.ResponseError(c, http.StatusBadRequest, "unreadable file upload", oerr)
		}
		defer file.Close()
		in.FileName = header.Filename
		in.MimeType = header.Header.Get("Content-Type")
		in.File = file
	}

	d, err := h.svc.Update(c.Request().Context(), id, in, actorID(c))
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "document updated", shapeDocument(d))
}

// Delete handles DELETE /api/employee-documents/:id
func (h *DocumentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	if err := h.svc.Delete(c.Request().Context(), id, actorID(c)); err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "document deleted", nil)
}

// Download handles GET /api/employee-documents/:id/file
func (h *DocumentHandler) Download(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}
	d, err := h.svc.Open(c.Request().Context(), id)
	if err != nil {
		return serviceutils.RespondAppError(c, err)
	}

	full := filepath.Join(config.DefaultEnvConfig.DOCUMENT_STORAGE_DIR, filepath.Base(d.FilePath))
	return c.Attachment(full, d.Title+filepath.Ext(d.FilePath))
}

func fillFileInput(in *service.CreateDocumentInput, header *multipart.FileHeader, file multipart.File) {
	in.FileName = header.Filename
	in.MimeType = header.Header.Get("Content-Type")
	in.File = file
}
