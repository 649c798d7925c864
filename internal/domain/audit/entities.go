package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmoriart/LoanOrig/internal/domain/user"
)

// Mutating actions recorded in the trail.
const (
	ActionCreateApplication = "CREATE_APPLICATION"
	ActionDeleteApplication = "DELETE_APPLICATION"
	ActionSubmit            = "SUBMIT_APPLICATION"
	ActionAssignUnderwriter = "ASSIGN_UNDERWRITER"
	ActionRecordDecision    = "RECORD_DECISION"
	ActionFund              = "FUND_APPLICATION"
	ActionClose             = "CLOSE_APPLICATION"
	ActionAddIncome         = "ADD_INCOME_RECORD"
	ActionAddAsset          = "ADD_ASSET_RECORD"
	ActionAddLiability      = "ADD_LIABILITY_RECORD"
	ActionUploadDocument    = "UPLOAD_DOCUMENT"
	ActionVerifyDocument    = "VERIFY_DOCUMENT"
	ActionRejectDocument    = "REJECT_DOCUMENT"
	ActionAddWorkflowStep   = "ADD_WORKFLOW_STEP"
	ActionCompleteStep      = "COMPLETE_WORKFLOW_STEP"
)

// Actor is the snapshot of who performed an action, denormalized so the trail
// stays readable even after the user row changes.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  user.Role
}

// Entry is append-only: never updated, never deleted.
type Entry struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`

	ActorID    *uuid.UUID `gorm:"type:uuid;index:idx_audit_actor" json:"actor_id,omitempty"`
	ActorEmail string     `gorm:"size:255" json:"actor_email,omitempty"`
	ActorRole  user.Role  `gorm:"size:20" json:"actor_role,omitempty"`

	Action     string    `gorm:"size:100;not null;index:idx_audit_action" json:"action"`
	EntityType string    `gorm:"size:50;not null;index:idx_audit_entity" json:"entity_type"`
	EntityID   uuid.UUID `gorm:"type:uuid;index:idx_audit_entity" json:"entity_id"`

	OldValues string `gorm:"type:jsonb" json:"old_values,omitempty"`
	NewValues string `gorm:"type:jsonb" json:"new_values,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (Entry) TableName() string { return "audit_logs" }

// Filter narrows List queries; zero values mean "no constraint".
type Filter struct {
	EntityType string
	EntityID   uuid.UUID
	ActorID    uuid.UUID
	Offset     int
	Limit      int
}
