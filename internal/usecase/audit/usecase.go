package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/dmoriart/LoanOrig/internal/domain/audit"
	"github.com/dmoriart/LoanOrig/internal/domain/user"
)

// Record appends one entry through the given repository. Callers inside a
// unit-of-work pass the tx-scoped repository so the entry commits (or rolls
// back) together with the mutation it describes.
func Record(ctx context.Context, repo auditDomain.Repository, actor auditDomain.Actor, action, entityType string, entityID uuid.UUID, oldV, newV any) error {
	e := &auditDomain.Entry{
		ID:         uuid.New(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
	}
	if actor.ID != uuid.Nil {
		id := actor.ID
		e.ActorID = &id
		e.ActorEmail = actor.Email
		e.ActorRole = actor.Role
	}
	if oldV != nil {
		b, err := json.Marshal(oldV)
		if err != nil {
			return err
		}
		e.OldValues = string(b)
	}
	if newV != nil {
		b, err := json.Marshal(newV)
		if err != nil {
			return err
		}
		e.NewValues = string(b)
	}
	return repo.Append(ctx, e)
}

type Usecase struct{ repo auditDomain.Repository }

func NewUsecase(r auditDomain.Repository) *Usecase { return &Usecase{repo: r} }

type ListInput struct {
	EntityType string
	EntityID   uuid.UUID
	ActorID    uuid.UUID
	Offset     int
	Limit      int
}

type EntryDTO struct {
	ID         uuid.UUID  `json:"id"`
	ActorID    *uuid.UUID `json:"actor_id,omitempty"`
	ActorEmail string     `json:"actor_email,omitempty"`
	ActorRole  user.Role  `json:"actor_role,omitempty"`
	Action     string     `json:"action"`
	EntityType string     `json:"entity_type"`
	EntityID   uuid.UUID  `json:"entity_id"`
	OldValues  string     `json:"old_values,omitempty"`
	NewValues  string     `json:"new_values,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// List returns entries oldest-first.
func (u *Usecase) List(ctx context.Context, in ListInput) ([]EntryDTO, int64, error) {
	entries, total, err := u.repo.List(ctx, auditDomain.Filter{
		EntityType: in.EntityType,
		EntityID:   in.EntityID,
		ActorID:    in.ActorID,
		Offset:     in.Offset,
		Limit:      in.Limit,
	})
	if err != nil {
		return nil, 0, err
	}
	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryDTO{
			ID:         e.ID,
			ActorID:    e.ActorID,
			ActorEmail: e.ActorEmail,
			ActorRole:  e.ActorRole,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			OldValues:  e.OldValues,
			NewValues:  e.NewValues,
			CreatedAt:  e.CreatedAt,
		})
	}
	return out, total, nil
}
