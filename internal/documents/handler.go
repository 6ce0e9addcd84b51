package documents

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"healthdocs-backend/internal/files"
	"healthdocs-backend/internal/shared/server/middleware"
	"healthdocs-backend/internal/shared/server/respond"
)

const defaultMaxUploadSize = 15 << 20 // 15MB

// Handler wires HTTP handlers to the document and file services.
type Handler struct {
	Svc       *Service
	Files     *files.Service
	MaxUpload int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, fileSvc *files.Service) *Handler {
	return &Handler{Svc: svc, Files: fileSvc}
}

func (h *Handler) maxUploadSize() int64 {
	if h.MaxUpload > 0 {
		return h.MaxUpload
	}
	return defaultMaxUploadSize
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents", h.list)
	rg.POST("/documents", h.create)
	rg.POST("/documents/files", h.uploadFile)
	rg.POST("/documents/:id/update", h.update)
	rg.POST("/documents/:id/delete", h.delete)
	rg.GET("/documents/:id/file", h.file)
}

type createRequest struct {
	Title       string  `json:"title"`
	ServiceDate string  `json:"service_date"`
	Provider    string  `json:"provider"`
	DocType     string  `json:"doc_type"`
	Medication  *string `json:"medication"`
	FileID      string  `json:"file_id"`
}

type updateRequest struct {
	Title       string  `json:"title"`
	ServiceDate string  `json:"service_date"`
	Provider    string  `json:"provider"`
	DocType     string  `json:"doc_type"`
	Medication  *string `json:"medication"`
}

func (h *Handler) list(c *gin.Context) {
	patientID := middleware.PatientIDFromContext(c)

	docs, err := h.Svc.List(c.Request.Context(), patientID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		}
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) create(c *gin.Context) {
	patientID := middleware.PatientIDFromContext(c)

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	doc, err := h.Svc.Create(c.Request.Context(), patientID, CreateInput{
		Title:          req.Title,
		ServiceDate:    req.ServiceDate,
		Provider:       req.Provider,
		DocType:        req.DocType,
		Medication:     deref(req.Medication),
		FileID:         req.FileID,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create document", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toResponse(doc))
}

func (h *Handler) update(c *gin.Context) {
	patientID := middleware.PatientIDFromContext(c)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	doc, err := h.Svc.Update(c.Request.Context(), patientID, c.Param("id"), UpdateInput{
		Title:       req.Title,
		ServiceDate: req.ServiceDate,
		Provider:    req.Provider,
		DocType:     req.DocType,
		Medication:  deref(req.Medication),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update document", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(doc))
}

func (h *Handler) delete(c *gin.Context) {
	patientID := middleware.PatientIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), patientID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete document", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) uploadFile(c *gin.Context) {
	patientID := middleware.PatientIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize())

	fileHeader, err := c.FormFile("upload")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "upload is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read upload", nil)
		return
	}
	defer file.Close()

	f, err := h.Files.Upload(c.Request.Context(), patientID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, files.ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store upload", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"id":         f.ID,
		"file_name":  f.FileName,
		"mime_type":  f.MimeType,
		"size_bytes": f.SizeBytes,
	})
}

func (h *Handler) file(c *gin.Context) {
	patientID := middleware.PatientIDFromContext(c)

	doc, err := h.Svc.Get(c.Request.Context(), patientID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document", nil)
		}
		return
	}
	if doc.FileID == "" {
		respond.Error(c, http.StatusNotFound, "not_found", "document has no file", nil)
		return
	}

	rc, f, err := h.Files.Open(c.Request.Context(), patientID, doc.FileID)
	if err != nil {
		switch {
		case errors.Is(err, files.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open file", nil)
		}
		return
	}
	defer rc.Close()

	c.DataFromReader(http.StatusOK, f.SizeBytes, f.MimeType, rc, map[string]string{
		"Content-Disposition": `inline; filename="` + f.FileName + `"`,
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
