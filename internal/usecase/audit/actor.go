package audit

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	appDomain "github.com/dmoriart/LoanOrig/internal/domain/application"
	auditDomain "github.com/dmoriart/LoanOrig/internal/domain/audit"
	"github.com/dmoriart/LoanOrig/internal/domain/user"
)

// ResolveActor snapshots the acting user for the trail. A nil id yields the
// anonymous system actor; an unknown id is the caller's fault.
func ResolveActor(ctx context.Context, users user.Repository, id uuid.UUID) (auditDomain.Actor, error) {
	if id == uuid.Nil {
		return auditDomain.Actor{}, nil
	}
	u, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auditDomain.Actor{}, fmt.Errorf("%w: unknown actor %s", appDomain.ErrValidation, id)
		}
		return auditDomain.Actor{}, err
	}
	return auditDomain.Actor{ID: u.ID, Email: u.Email, Role: u.Role}, nil
}
