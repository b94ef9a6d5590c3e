package rental

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/alquileres/backend/internal/domain/rental"
	"github.com/alquileres/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ObjectStorage defines the object storage operations the rental context
// needs. Implemented by the infrastructure layer (S3 or in-memory stub).
type ObjectStorage interface {
	// Upload stores an object under the given key and returns its public URL
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)

	// GenerateDownloadURL returns a presigned URL for downloading an object
	GenerateDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, time.Time, error)

	// DeleteObject deletes an object from storage
	DeleteObject(ctx context.Context, key string) error

	// ParseObjectKey extracts the storage key from a stored file URL
	ParseObjectKey(fileURL string) (string, error)
}

// allowedDocumentContentTypes lists MIME types accepted for uploads
var allowedDocumentContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
}

const maxDocumentSize = 10 << 20 // 10 MiB

// DocumentServiceConfig holds configuration for the document service
type DocumentServiceConfig struct {
	// DownloadURLExpiry is the duration for which download URLs are valid
	DownloadURLExpiry time.Duration
}

// DefaultDocumentServiceConfig returns the default configuration
func DefaultDocumentServiceConfig() DocumentServiceConfig {
	return DocumentServiceConfig{DownloadURLExpiry: 1 * time.Hour}
}

// UploadDocumentRequest represents a document upload
type UploadDocumentRequest struct {
	PropertyID  uuid.UUID
	Type        rental.DocumentType
	Owner       rental.DocumentOwner
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// DownloadResponse carries a presigned download URL for a document
type DownloadResponse struct {
	URL       string    `json:"url"`
	FileName  string    `json:"file_name"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DocumentService handles document upload, download and removal. A
// property holds at most one document per (type, owner); uploading again
// replaces the stored file.
type DocumentService struct {
	documentRepo rental.DocumentRepository
	propertyRepo rental.PropertyRepository
	storage      ObjectStorage
	config       DocumentServiceConfig
	now          func() time.Time
	logger       *zap.Logger
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	documentRepo rental.DocumentRepository,
	propertyRepo rental.PropertyRepository,
	storage ObjectStorage,
	logger *zap.Logger,
) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		documentRepo: documentRepo,
		propertyRepo: propertyRepo,
		storage:      storage,
		config:       DefaultDocumentServiceConfig(),
		now:          time.Now,
		logger:       logger,
	}
}

// SetConfig sets the service configuration
func (s *DocumentService) SetConfig(config DocumentServiceConfig) {
	s.config = config
}

// Upload stores the file and records the document, replacing any previous
// document of the same type and owner for the property
func (s *DocumentService) Upload(ctx context.Context, req UploadDocumentRequest) (*DocumentResponse, error) {
	if err := rental.ValidateDocumentType(req.Type); err != nil {
		return nil, err
	}
	if err := rental.ValidateDocumentOwner(req.Owner); err != nil {
		return nil, err
	}
	if !allowedDocumentContentTypes[req.ContentType] {
		return nil, shared.NewDomainError("INVALID_FILE_TYPE", fmt.Sprintf("File type '%s' is not allowed", req.ContentType))
	}
	if req.Size <= 0 || req.Size > maxDocumentSize {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File size must be between 1 byte and 10 MiB")
	}

	if _, err := s.propertyRepo.FindByID(ctx, req.PropertyID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PROPERTY_NOT_FOUND", "Property not found")
		}
		return nil, err
	}

	key := s.objectKey(req.PropertyID, req.Type, req.FileName)
	fileURL, err := s.storage.Upload(ctx, key, req.Body, req.Size, req.ContentType)
	if err != nil {
		return nil, err
	}

	existing, err := s.documentRepo.FindByPropertyTypeOwner(ctx, req.PropertyID, req.Type, req.Owner)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var document *rental.Document
	if existing != nil {
		oldKey, parseErr := s.storage.ParseObjectKey(existing.FileURL)
		if parseErr == nil {
			if err := s.storage.DeleteObject(ctx, oldKey); err != nil {
				s.logger.Warn("failed to delete replaced file", zap.String("key", oldKey), zap.Error(err))
			}
		}
		if err := existing.Replace(fileURL, req.FileName); err != nil {
			return nil, err
		}
		document = existing
	} else {
		document, err = rental.NewDocument(req.PropertyID, req.Type, req.Owner, fileURL, req.FileName)
		if err != nil {
			return nil, err
		}
	}

	if err := s.documentRepo.Save(ctx, document); err != nil {
		return nil, err
	}

	resp := ToDocumentResponse(document)
	return &resp, nil
}

// Download returns a presigned URL for the document's stored file. A
// file URL that cannot be decomposed into a storage key is reported as a
// STORAGE_LOCATION error rather than a blind pass-through.
func (s *DocumentService) Download(ctx context.Context, id uuid.UUID) (*DownloadResponse, error) {
	document, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key, err := s.storage.ParseObjectKey(document.FileURL)
	if err != nil {
		return nil, shared.NewDomainError("STORAGE_LOCATION", "Stored file location could not be determined")
	}

	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, key, s.config.DownloadURLExpiry)
	if err != nil {
		return nil, err
	}

	return &DownloadResponse{URL: url, FileName: document.FileName, ExpiresAt: expiresAt}, nil
}

// ListByProperty returns the documents recorded for a property
func (s *DocumentService) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]DocumentResponse, error) {
	documents, err := s.documentRepo.FindByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	responses := make([]DocumentResponse, len(documents))
	for i := range documents {
		responses[i] = ToDocumentResponse(&documents[i])
	}
	return responses, nil
}

// Delete removes the document row and, best effort, its stored file
func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	document, err := s.documentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.documentRepo.Delete(ctx, id); err != nil {
		return err
	}

	key, err := s.storage.ParseObjectKey(document.FileURL)
	if err != nil {
		s.logger.Warn("deleted document had unparseable file URL",
			zap.String("file_url", document.FileURL), zap.Error(err))
		return nil
	}
	if err := s.storage.DeleteObject(ctx, key); err != nil {
		s.logger.Warn("failed to delete stored file", zap.String("key", key), zap.Error(err))
	}

	return nil
}

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._\-]`)

// objectKey builds the storage key: propertyID/TYPE_timestamp_filename
func (s *DocumentService) objectKey(propertyID uuid.UUID, docType rental.DocumentType, fileName string) string {
	safe := unsafeFileChars.ReplaceAllString(strings.TrimSpace(fileName), "_")
	return fmt.Sprintf("%s/%s_%d_%s", propertyID, docType, s.now().UnixMilli(), safe)
}
