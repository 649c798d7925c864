package workflow

import (
	"time"

	"github.com/google/uuid"
)

// Step is one checklist item, tracked per application and independent of the
// status lifecycle. StepOrder is unique per application; completion order is
// not enforced.
type Step struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_steps_application_order" json:"application_id"`
	StepName      string    `gorm:"size:100;not null" json:"step_name"`
	StepOrder     int       `gorm:"not null;uniqueIndex:ux_steps_application_order" json:"step_order"`

	IsCompleted bool       `gorm:"default:false" json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	AssignedTo *uuid.UUID `gorm:"type:uuid" json:"assigned_to,omitempty"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	Comments   string     `gorm:"type:text" json:"comments,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Step) TableName() string { return "workflow_steps" }
