package audit

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	appDomain "github.com/dmoriart/LoanOrig/internal/domain/application"
	auditDomain "github.com/dmoriart/LoanOrig/internal/domain/audit"
	"github.com/dmoriart/LoanOrig/internal/domain/user"
	"github.com/dmoriart/LoanOrig/internal/testutil/auditmock"
	"github.com/dmoriart/LoanOrig/internal/testutil/usermock"
)

func TestRecord(t *testing.T) {
	ctx := context.Background()
	entity := uuid.New()
	actor := auditDomain.Actor{ID: uuid.New(), Email: "uw@bank.test", Role: user.RoleUnderwriter}

	t.Run("snapshots actor and values", func(t *testing.T) {
		repo := &auditmock.Repo{}
		err := Record(ctx, repo, actor, auditDomain.ActionSubmit, "loan_application", entity,
			map[string]any{"status": "draft"},
			map[string]any{"status": "submitted"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(repo.Entries) != 1 {
			t.Fatalf("want one entry, got %d", len(repo.Entries))
		}
		e := repo.Entries[0]
		if e.ActorID == nil || *e.ActorID != actor.ID || e.ActorEmail != actor.Email {
			t.Fatalf("actor snapshot wrong: %+v", e)
		}
		if !strings.Contains(e.OldValues, "draft") || !strings.Contains(e.NewValues, "submitted") {
			t.Fatalf("values not serialized: old=%q new=%q", e.OldValues, e.NewValues)
		}
	})

	t.Run("anonymous actor leaves actor columns empty", func(t *testing.T) {
		repo := &auditmock.Repo{}
		if err := Record(ctx, repo, auditDomain.Actor{}, auditDomain.ActionSubmit, "loan_application", entity, nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		e := repo.Entries[0]
		if e.ActorID != nil || e.ActorEmail != "" {
			t.Fatalf("anonymous entry must omit actor: %+v", e)
		}
		if e.OldValues != "" || e.NewValues != "" {
			t.Fatalf("nil snapshots must stay empty: %+v", e)
		}
	})
}

func TestResolveActor(t *testing.T) {
	ctx := context.Background()
	known := &user.User{ID: uuid.New(), Email: "admin@bank.test", Role: user.RoleAdmin}
	users := usermock.Known(known)

	actor, err := ResolveActor(ctx, users, known.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if actor.ID != known.ID || actor.Role != user.RoleAdmin {
		t.Fatalf("snapshot mismatch: %+v", actor)
	}

	actor, err = ResolveActor(ctx, users, uuid.Nil)
	if err != nil || actor.ID != uuid.Nil {
		t.Fatalf("nil id must resolve to anonymous, got %+v err=%v", actor, err)
	}

	if _, err := ResolveActor(ctx, users, uuid.New()); !errors.Is(err, appDomain.ErrValidation) {
		t.Fatalf("unknown actor: want ErrValidation, got %v", err)
	}
}

func TestUsecase_List(t *testing.T) {
	ctx := context.Background()
	entity := uuid.New()
	repo := &auditmock.Repo{}
	for _, action := range []string{auditDomain.ActionCreateApplication, auditDomain.ActionSubmit} {
		if err := Record(ctx, repo, auditDomain.Actor{}, action, "loan_application", entity, nil, nil); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	uc := NewUsecase(repo)
	out, total, err := uc.List(ctx, ListInput{EntityType: "loan_application", EntityID: entity})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(out) != 2 {
		t.Fatalf("want 2 entries, got %d/%d", len(out), total)
	}
	if out[0].Action != auditDomain.ActionCreateApplication || out[1].Action != auditDomain.ActionSubmit {
		t.Fatalf("order wrong: %+v", out)
	}
}
