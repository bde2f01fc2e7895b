package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

func TestOperationService_Create(t *testing.T) {
	repo := newStubOpRepo()
	svc := NewOperationService(repo, zerolog.Nop())

	op, err := svc.Create(context.Background(), ports.OperationInput{
		Name:        "Bogotá - Barranquilla",
		ClientID:    "cl-1",
		Origin:      "Bogotá",
		Destination: "Barranquilla",
	}, "admin@logicem.com")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if op.Status != domain.OperationActive {
		t.Fatalf("new operations must be active, got %s", op.Status)
	}
	if op.ID == "" || op.CreatedAt.IsZero() {
		t.Fatalf("id or created_at not set: %+v", op)
	}
}

func TestOperationService_Inactivate(t *testing.T) {
	repo := newStubOpRepo(activeOperation("op-1"))
	svc := NewOperationService(repo, zerolog.Nop())

	if err := svc.Inactivate(context.Background(), "op-1"); err != nil {
		t.Fatalf("inactivate failed: %v", err)
	}
	op := repo.ops["op-1"]
	if op.Status != domain.OperationInactive {
		t.Fatalf("expected inactive, got %s", op.Status)
	}
	if op.DeactivatedAt == nil {
		t.Fatalf("deactivated_at not stamped")
	}

	stamp := *op.DeactivatedAt
	if err := svc.Inactivate(context.Background(), "op-1"); err != nil {
		t.Fatalf("repeat inactivate must be a no-op: %v", err)
	}
	if !repo.ops["op-1"].DeactivatedAt.Equal(stamp) {
		t.Fatalf("repeat inactivate must not restamp deactivated_at")
	}
}

func TestOperationService_Inactivate_NotFound(t *testing.T) {
	svc := NewOperationService(newStubOpRepo(), zerolog.Nop())

	if err := svc.Inactivate(context.Background(), "ghost"); !errors.Is(err, domain.ErrOperationNotFound) {
		t.Fatalf("expected ErrOperationNotFound, got %v", err)
	}
}

func TestOperationService_Update(t *testing.T) {
	repo := newStubOpRepo(activeOperation("op-1"))
	svc := NewOperationService(repo, zerolog.Nop())

	got, err := svc.Update(context.Background(), "op-1", ports.OperationInput{
		Name:        "Bogotá - Cali",
		Origin:      "Bogotá",
		Destination: "Cali",
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got.Destination != "Cali" || repo.ops["op-1"].Destination != "Cali" {
		t.Fatalf("update not persisted")
	}
	if got.Status != domain.OperationActive {
		t.Fatalf("update must not touch status, got %s", got.Status)
	}
}
