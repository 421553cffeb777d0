// Package attachment covers supporting documents uploaded against a
// property: rent rolls, T12s, offering memos. Files live in object
// storage; the entity records the key and upload state.
package attachment

import (
	"strings"

	"github.com/google/uuid"

	"github.com/proforma/backend/internal/domain/shared"
)

// Status tracks the two-phase upload flow: a record is created pending,
// the client uploads against a presigned URL, then confirms.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// MaxFileSize caps uploads at 50 MiB
const MaxFileSize = 50 << 20

// Attachment is one uploaded document
type Attachment struct {
	shared.TenantEntity
	PropertyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName    string    `gorm:"type:varchar(300);not null"`
	ContentType string    `gorm:"type:varchar(100);not null"`
	SizeBytes   int64     `gorm:"not null;default:0"`
	StorageKey  string    `gorm:"type:varchar(500);not null;uniqueIndex"`
	Status      Status    `gorm:"type:varchar(20);not null;default:'pending'"`
}

// TableName returns the table name for GORM
func (Attachment) TableName() string {
	return "attachments"
}

// NewAttachment creates a pending attachment record
func NewAttachment(tenantID, propertyID uuid.UUID, fileName, contentType string, sizeBytes int64) (*Attachment, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" || contentType == "" {
		return nil, shared.ErrInvalidInput
	}
	if sizeBytes <= 0 || sizeBytes > MaxFileSize {
		return nil, shared.ErrInvalidInput
	}
	a := &Attachment{
		TenantEntity: shared.NewTenantEntity(tenantID),
		PropertyID:   propertyID,
		FileName:     fileName,
		ContentType:  contentType,
		SizeBytes:    sizeBytes,
		Status:       StatusPending,
	}
	a.StorageKey = "attachments/" + tenantID.String() + "/" + propertyID.String() + "/" + a.ID.String()
	return a, nil
}

// Confirm marks the upload as completed
func (a *Attachment) Confirm() error {
	if a.Status == StatusConfirmed {
		return shared.ErrInvalidState
	}
	a.Status = StatusConfirmed
	a.Touch()
	return nil
}
