// Package attachment manages supporting documents: metadata rows in the
// database, bytes in object storage, and a two-phase presigned upload
// flow (initiate, client upload, confirm).
package attachment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/proforma/backend/internal/domain/attachment"
	"github.com/proforma/backend/internal/domain/shared"
)

// urlTTL is how long presigned upload and download URLs stay valid
const urlTTL = 15 * time.Minute

// ObjectStorageService abstracts the object store behind presigned URLs.
// Implementations live in infrastructure (S3, in-memory stub).
type ObjectStorageService interface {
	GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error)
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
	ObjectExists(ctx context.Context, storageKey string) (bool, error)
}

// AttachmentService handles document upload, listing, and deletion
type AttachmentService struct {
	attachmentRepo attachment.Repository
	storage        ObjectStorageService
	logger         *zap.Logger
}

// NewAttachmentService creates a new AttachmentService
func NewAttachmentService(attachmentRepo attachment.Repository, storage ObjectStorageService, logger *zap.Logger) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		storage:        storage,
		logger:         logger,
	}
}

// InitiateUpload creates a pending attachment and returns the presigned
// URL the client uploads the file to
func (s *AttachmentService) InitiateUpload(ctx context.Context, tenantID, propertyID uuid.UUID, req InitiateUploadRequest) (*InitiateUploadResponse, error) {
	a, err := attachment.NewAttachment(tenantID, propertyID, req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		return nil, err
	}
	if err := s.attachmentRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, a.StorageKey, a.ContentType, urlTTL)
	if err != nil {
		return nil, err
	}
	return &InitiateUploadResponse{
		Attachment: toAttachmentResponse(a, ""),
		UploadURL:  url,
		ExpiresAt:  expiresAt,
	}, nil
}

// ConfirmUpload verifies the object landed and marks the record confirmed
func (s *AttachmentService) ConfirmUpload(ctx context.Context, tenantID, id uuid.UUID) (*AttachmentResponse, error) {
	a, err := s.attachmentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	exists, err := s.storage.ObjectExists(ctx, a.StorageKey)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("UPLOAD_NOT_FOUND", "No uploaded object found for this attachment")
	}
	if err := a.Confirm(); err != nil {
		return nil, err
	}
	if err := s.attachmentRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return toAttachmentResponse(a, ""), nil
}

// ListByProperty returns the property's confirmed and pending documents
// with short-lived download URLs for the confirmed ones
func (s *AttachmentService) ListByProperty(ctx context.Context, tenantID, propertyID uuid.UUID) ([]*AttachmentResponse, error) {
	list, err := s.attachmentRepo.ListByProperty(ctx, tenantID, propertyID)
	if err != nil {
		return nil, err
	}
	out := make([]*AttachmentResponse, 0, len(list))
	for _, a := range list {
		url := ""
		if a.Status == attachment.StatusConfirmed {
			u, _, err := s.storage.GenerateDownloadURL(ctx, a.StorageKey, urlTTL)
			if err != nil {
				s.logger.Warn("download url generation failed",
					zap.String("attachment_id", a.ID.String()), zap.Error(err))
			} else {
				url = u
			}
		}
		out = append(out, toAttachmentResponse(a, url))
	}
	return out, nil
}

// Delete removes the record and its stored object
func (s *AttachmentService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	a, err := s.attachmentRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if err := s.storage.DeleteObject(ctx, a.StorageKey); err != nil {
		s.logger.Warn("object delete failed, removing record anyway",
			zap.String("storage_key", a.StorageKey), zap.Error(err))
	}
	return s.attachmentRepo.Delete(ctx, tenantID, id)
}

// PurgeStalePending removes pending attachments whose upload was never
// confirmed before the cutoff. Returns the number of records removed.
func (s *AttachmentService) PurgeStalePending(ctx context.Context, olderThan time.Time, limit int) (int, error) {
	list, err := s.attachmentRepo.ListStalePending(ctx, olderThan, limit)
	if err != nil {
		return 0, err
	}
	purged := 0
	for _, a := range list {
		if err := s.storage.DeleteObject(ctx, a.StorageKey); err != nil {
			s.logger.Warn("object delete failed during stale purge",
				zap.String("storage_key", a.StorageKey), zap.Error(err))
		}
		if err := s.attachmentRepo.Delete(ctx, a.TenantID, a.ID); err != nil {
			return purged, err
		}
		purged++
	}
	return purged, nil
}

// PurgeProperty removes every attachment of a property. Called from the
// property delete cascade.
func (s *AttachmentService) PurgeProperty(ctx context.Context, tenantID, propertyID uuid.UUID) error {
	list, err := s.attachmentRepo.ListByProperty(ctx, tenantID, propertyID)
	if err != nil {
		return err
	}
	for _, a := range list {
		if err := s.storage.DeleteObject(ctx, a.StorageKey); err != nil {
			s.logger.Warn("object delete failed during purge",
				zap.String("storage_key", a.StorageKey), zap.Error(err))
		}
		if err := s.attachmentRepo.Delete(ctx, tenantID, a.ID); err != nil {
			return err
		}
	}
	return nil
}
