package document

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusUploaded Status = "uploaded"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusUploaded, StatusVerified, StatusRejected:
		return true
	}
	return false
}

// Document is a metadata row only; file bytes live elsewhere.
// VerifiedAt is set exactly when status becomes verified, never otherwise.
type Document struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index:idx_documents_application" json:"application_id"`
	UploadedBy    uuid.UUID `gorm:"type:uuid;not null" json:"uploaded_by"`

	DocumentType string `gorm:"size:100;not null" json:"document_type"`
	FileName     string `gorm:"size:255;not null" json:"file_name"`
	FileSize     int64  `gorm:"not null;default:0" json:"file_size"`
	MimeType     string `gorm:"size:100" json:"mime_type,omitempty"`

	Status          Status     `gorm:"size:20;not null;default:'uploaded'" json:"status"`
	VerifiedBy      *uuid.UUID `gorm:"type:uuid" json:"verified_by,omitempty"`
	VerifiedAt      *time.Time `json:"verified_at,omitempty"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`

	IsRequired bool      `gorm:"default:false" json:"is_required"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Document) TableName() string { return "documents" }
