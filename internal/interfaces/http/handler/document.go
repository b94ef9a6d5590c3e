package handler

import (
	rentalapp "github.com/alquileres/backend/internal/application/rental"
	"github.com/alquileres/backend/internal/domain/rental"
	"github.com/gin-gonic/gin"
)

// DocumentHandler handles document-related API endpoints
type DocumentHandler struct {
	BaseHandler
	documentService *rentalapp.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *rentalapp.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// Upload handles POST /properties/:id/documents. The request is
// multipart form data with a "file" part plus "type" and "owner"
// fields. An existing document in the same slot is replaced.
func (h *DocumentHandler) Upload(c *gin.Context) {
	propertyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file upload")
		return
	}

	docType := rental.DocumentType(c.PostForm("type"))
	owner := rental.DocumentOwner(c.PostForm("owner"))
	if owner == "" {
		owner = rental.DocumentOwnerTenant
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Could not read file upload")
		return
	}
	defer file.Close()

	document, err := h.documentService.Upload(c.Request.Context(), rentalapp.UploadDocumentRequest{
		PropertyID:  propertyID,
		Type:        docType,
		Owner:       owner,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, document)
}

// ListByProperty handles GET /properties/:id/documents
func (h *DocumentHandler) ListByProperty(c *gin.Context) {
	propertyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	documents, err := h.documentService.ListByProperty(c.Request.Context(), propertyID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, documents, int64(len(documents)))
}

// Download handles GET /documents/:id/download. It returns a short
// lived presigned URL rather than streaming the file.
func (h *DocumentHandler) Download(c *gin.Context) {
	documentID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	download, err := h.documentService.Download(c.Request.Context(), documentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, download)
}

// Delete handles DELETE /documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	documentID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid document ID format")
		return
	}

	if err := h.documentService.Delete(c.Request.Context(), documentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
