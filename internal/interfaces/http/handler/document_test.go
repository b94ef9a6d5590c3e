package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	rentalapp "github.com/alquileres/backend/internal/application/rental"
	"github.com/alquileres/backend/internal/domain/rental"
	"github.com/alquileres/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// documentFixture bundles a DocumentHandler wired to mocked dependencies
type documentFixture struct {
	documents  *MockDocumentRepository
	properties *MockPropertyRepository
	storage    *MockObjectStorage
	engine     *gin.Engine
}

func newDocumentFixture(t *testing.T) *documentFixture {
	t.Helper()

	f := &documentFixture{
		documents:  new(MockDocumentRepository),
		properties: new(MockPropertyRepository),
		storage:    new(MockObjectStorage),
	}
	service := rentalapp.NewDocumentService(f.documents, f.properties, f.storage, zap.NewNop())
	h := NewDocumentHandler(service)

	f.engine = gin.New()
	f.engine.POST("/properties/:id/documents", h.Upload)
	f.engine.GET("/properties/:id/documents", h.ListByProperty)
	f.engine.GET("/documents/:id/download", h.Download)
	f.engine.DELETE("/documents/:id", h.Delete)
	return f
}

// multipartUpload builds a multipart request body with a PDF part and
// the given form fields
func multipartUpload(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="cedula.pdf"`)
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 test content"))
	require.NoError(t, err)

	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestDocumentHandler_Upload(t *testing.T) {
	t.Run("stores a new document", func(t *testing.T) {
		f := newDocumentFixture(t)
		property := newStoredProperty(t)

		f.properties.On("FindByID", mock.Anything, property.ID).Return(property, nil)
		f.storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, "application/pdf").
			Return("https://storage.example.com/"+property.ID.String()+"/CEDULA_1_cedula.pdf", nil)
		f.documents.On("FindByPropertyTypeOwner", mock.Anything, property.ID, rental.DocumentTypeCedula, rental.DocumentOwnerTenant).
			Return(nil, shared.ErrNotFound)
		f.documents.On("Save", mock.Anything, mock.AnythingOfType("*rental.Document")).Return(nil)

		body, contentType := multipartUpload(t, map[string]string{"type": "CEDULA", "owner": "tenant"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/properties/"+property.ID.String()+"/documents", body)
		req.Header.Set("Content-Type", contentType)
		f.engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		resp := decodeResponse(t, w)
		data := resp["data"].(map[string]any)
		assert.Equal(t, "CEDULA", data["type"])
		assert.Equal(t, "Cédula", data["label"])
		assert.Equal(t, "tenant", data["owner"])
	})

	t.Run("defaults the owner to tenant", func(t *testing.T) {
		f := newDocumentFixture(t)
		property := newStoredProperty(t)

		f.properties.On("FindByID", mock.Anything, property.ID).Return(property, nil)
		f.storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("https://storage.example.com/key", nil)
		f.documents.On("FindByPropertyTypeOwner", mock.Anything, property.ID, rental.DocumentTypeContract, rental.DocumentOwnerTenant).
			Return(nil, shared.ErrNotFound)
		f.documents.On("Save", mock.Anything, mock.AnythingOfType("*rental.Document")).Return(nil)

		body, contentType := multipartUpload(t, map[string]string{"type": "CONTRATO"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/properties/"+property.ID.String()+"/documents", body)
		req.Header.Set("Content-Type", contentType)
		f.engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("rejects an unknown document type", func(t *testing.T) {
		f := newDocumentFixture(t)
		property := newStoredProperty(t)

		body, contentType := multipartUpload(t, map[string]string{"type": "PASSPORT"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/properties/"+property.ID.String()+"/documents", body)
		req.Header.Set("Content-Type", contentType)
		f.engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_DOCUMENT_TYPE")
		f.storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects a missing file part", func(t *testing.T) {
		f := newDocumentFixture(t)
		property := newStoredProperty(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/properties/"+property.ID.String()+"/documents", nil)
		f.engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 404 for an unknown property", func(t *testing.T) {
		f := newDocumentFixture(t)
		propertyID := uuid.New()

		f.properties.On("FindByID", mock.Anything, propertyID).Return(nil, shared.ErrNotFound)

		body, contentType := multipartUpload(t, map[string]string{"type": "CEDULA"})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/properties/"+propertyID.String()+"/documents", body)
		req.Header.Set("Content-Type", contentType)
		f.engine.ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "PROPERTY_NOT_FOUND")
	})
}

func TestDocumentHandler_Download(t *testing.T) {
	t.Run("returns a presigned URL", func(t *testing.T) {
		f := newDocumentFixture(t)
		propertyID := uuid.New()
		document, err := rental.NewDocument(propertyID, rental.DocumentTypeCedula, rental.DocumentOwnerTenant,
			"https://storage.example.com/key", "cedula.pdf")
		require.NoError(t, err)

		expires := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)
		f.documents.On("FindByID", mock.Anything, document.ID).Return(document, nil)
		f.storage.On("ParseObjectKey", document.FileURL).Return("key", nil)
		f.storage.On("GenerateDownloadURL", mock.Anything, "key", mock.Anything).
			Return("https://storage.example.com/key?signed", expires, nil)

		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/documents/"+document.ID.String()+"/download", nil))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decodeResponse(t, w)
		data := resp["data"].(map[string]any)
		assert.Equal(t, "https://storage.example.com/key?signed", data["url"])
		assert.Equal(t, "cedula.pdf", data["file_name"])
	})

	t.Run("returns 422 for an undecipherable file URL", func(t *testing.T) {
		f := newDocumentFixture(t)
		propertyID := uuid.New()
		document, err := rental.NewDocument(propertyID, rental.DocumentTypeCedula, rental.DocumentOwnerTenant,
			"corrupted", "cedula.pdf")
		require.NoError(t, err)

		f.documents.On("FindByID", mock.Anything, document.ID).Return(document, nil)
		f.storage.On("ParseObjectKey", document.FileURL).Return("", assert.AnError)

		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/documents/"+document.ID.String()+"/download", nil))

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "STORAGE_LOCATION")
	})
}

func TestDocumentHandler_Delete(t *testing.T) {
	f := newDocumentFixture(t)
	propertyID := uuid.New()
	document, err := rental.NewDocument(propertyID, rental.DocumentTypeCedula, rental.DocumentOwnerTenant,
		"https://storage.example.com/key", "cedula.pdf")
	require.NoError(t, err)

	f.documents.On("FindByID", mock.Anything, document.ID).Return(document, nil)
	f.documents.On("Delete", mock.Anything, document.ID).Return(nil)
	f.storage.On("ParseObjectKey", document.FileURL).Return("key", nil)
	f.storage.On("DeleteObject", mock.Anything, "key").Return(nil)

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/documents/"+document.ID.String(), nil))

	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	f.storage.AssertCalled(t, "DeleteObject", mock.Anything, "key")
}

func TestDocumentHandler_ListByProperty(t *testing.T) {
	f := newDocumentFixture(t)
	propertyID := uuid.New()
	document, err := rental.NewDocument(propertyID, rental.DocumentTypeWorkLetter, rental.DocumentOwnerGuarantor,
		"https://storage.example.com/key", "carta.pdf")
	require.NoError(t, err)

	f.documents.On("FindByProperty", mock.Anything, propertyID).Return([]rental.Document{*document}, nil)

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/properties/"+propertyID.String()+"/documents", nil))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	assert.Equal(t, float64(1), resp["meta"].(map[string]any)["total"])
}
