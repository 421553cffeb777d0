package attachment

import (
	"time"

	"github.com/google/uuid"

	"github.com/proforma/backend/internal/domain/attachment"
)

// InitiateUploadRequest starts the two-phase upload flow
type InitiateUploadRequest struct {
	FileName    string `json:"file_name" binding:"required,min=1,max=300"`
	ContentType string `json:"content_type" binding:"required,min=1,max=100"`
	SizeBytes   int64  `json:"size_bytes" binding:"required,min=1"`
}

// InitiateUploadResponse carries the pending record and where to upload
type InitiateUploadResponse struct {
	Attachment *AttachmentResponse `json:"attachment"`
	UploadURL  string              `json:"upload_url"`
	ExpiresAt  time.Time           `json:"expires_at"`
}

// AttachmentResponse represents an attachment in API responses
type AttachmentResponse struct {
	ID          uuid.UUID `json:"id"`
	PropertyID  uuid.UUID `json:"property_id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Status      string    `json:"status"`
	DownloadURL string    `json:"download_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toAttachmentResponse(a *attachment.Attachment, downloadURL string) *AttachmentResponse {
	return &AttachmentResponse{
		ID:          a.ID,
		PropertyID:  a.PropertyID,
		FileName:    a.FileName,
		ContentType: a.ContentType,
		SizeBytes:   a.SizeBytes,
		Status:      string(a.Status),
		DownloadURL: downloadURL,
		CreatedAt:   a.CreatedAt,
	}
}
