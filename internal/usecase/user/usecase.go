package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	appDomain "github.com/dmoriart/LoanOrig/internal/domain/application"
	userDomain "github.com/dmoriart/LoanOrig/internal/domain/user"
)

type Usecase struct{ repo userDomain.Repository }

func NewUsecase(r userDomain.Repository) *Usecase { return &Usecase{repo: r} }

type CreateInput struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
	Role      userDomain.Role
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*userDomain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: valid email is required", appDomain.ErrValidation)
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, fmt.Errorf("%w: first and last name are required", appDomain.ErrValidation)
	}
	role := in.Role
	if role == "" {
		role = userDomain.RoleApplicant
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", appDomain.ErrValidation, in.Role)
	}

	// Unique email enforced in the store too; cheap pre-check gives a clearer error.
	if _, err := u.repo.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email %s already registered", appDomain.ErrValidation, email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	out := &userDomain.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
		Role:      role,
		IsActive:  true,
	}
	if err := u.repo.Create(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	out, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userDomain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}
