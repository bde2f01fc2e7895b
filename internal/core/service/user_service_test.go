package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

type stubUserRepo struct {
	users     map[string]*domain.AppUser // keyed by id
	insertErr error
}

func newStubUserRepo(users ...*domain.AppUser) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.AppUser)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) List(_ context.Context, _ ports.ListUsersFilter) ([]*domain.AppUser, int64, error) {
	out := make([]*domain.AppUser, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.AppUser, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Insert(_ context.Context, user *domain.AppUser) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) Update(_ context.Context, id, name string, role domain.Role) (*domain.AppUser, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Name = name
	u.Role = role
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type failingCredRepo struct {
	*stubCredRepo
	insertErr error
}

func (r *failingCredRepo) Insert(ctx context.Context, cred *domain.Credential) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	return r.stubCredRepo.Insert(ctx, cred)
}

func TestUserService_Create(t *testing.T) {
	users := newStubUserRepo()
	creds := newStubCredRepo()
	svc := NewUserService(users, creds, zerolog.Nop())

	user, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "Laura Jiménez",
		Email:    "laura@logicem.com",
		Password: "ClaveSegura2024!",
		Role:     domain.RoleManager,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("user id not assigned")
	}
	if _, ok := users.users[user.ID]; !ok {
		t.Fatalf("profile not persisted")
	}

	cred, err := creds.FindByEmail(context.Background(), "laura@logicem.com")
	if err != nil {
		t.Fatalf("credential not created: %v", err)
	}
	if cred.ID != user.ID || cred.Password != "ClaveSegura2024!" || cred.Role != domain.RoleManager {
		t.Fatalf("unexpected credential: %+v", cred)
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	users := newStubUserRepo(&domain.AppUser{ID: "u1", Name: "Ana", Email: "ana@logicem.com", Role: domain.RoleAgent})
	svc := NewUserService(users, newStubCredRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "Ana Duplicada",
		Email:    "ana@logicem.com",
		Password: "OtraClave2024!",
		Role:     domain.RoleAgent,
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Create_CredentialFailureRollsBack(t *testing.T) {
	users := newStubUserRepo()
	creds := &failingCredRepo{stubCredRepo: newStubCredRepo(), insertErr: errors.New("write concern")}
	svc := NewUserService(users, creds, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateUserInput{
		Name:     "Laura Jiménez",
		Email:    "laura@logicem.com",
		Password: "ClaveSegura2024!",
		Role:     domain.RoleManager,
	})
	if err == nil {
		t.Fatalf("expected credential insert failure to surface")
	}
	if len(users.users) != 0 {
		t.Fatalf("profile must be rolled back when the credential insert fails")
	}
}

func TestUserService_Delete_RemovesCredential(t *testing.T) {
	users := newStubUserRepo(&domain.AppUser{ID: "demo-agent", Name: "Juan", Email: "agent@logicem.com", Role: domain.RoleAgent})
	creds := newStubCredRepo()
	svc := NewUserService(users, creds, zerolog.Nop())

	if err := svc.Delete(context.Background(), "demo-agent"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := users.users["demo-agent"]; ok {
		t.Fatalf("profile still present")
	}
	if _, err := creds.FindByEmail(context.Background(), "agent@logicem.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("credential must be deleted with the profile, got %v", err)
	}
}

func TestUserService_Update_KeepsEmail(t *testing.T) {
	users := newStubUserRepo(&domain.AppUser{ID: "u1", Name: "Juan", Email: "juan@logicem.com", Role: domain.RoleAgent})
	svc := NewUserService(users, newStubCredRepo(), zerolog.Nop())

	got, err := svc.Update(context.Background(), "u1", ports.UpdateUserInput{Name: "Juan Pérez", Role: domain.RoleManager})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got.Name != "Juan Pérez" || got.Role != domain.RoleManager || got.Email != "juan@logicem.com" {
		t.Fatalf("unexpected user after update: %+v", got)
	}
}

func TestUserService_List_ClampsPagination(t *testing.T) {
	users := newStubUserRepo()
	svc := NewUserService(users, newStubCredRepo(), zerolog.Nop())

	if _, _, err := svc.List(context.Background(), ports.ListUsersFilter{Page: -2, Limit: 10_000, SortField: "password"}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	// Clamping happens before the repo call; values are validated in
	// clampPage directly.
	if p, l := clampPage(-2, 10_000); p != 1 || l != maxPageSize {
		t.Fatalf("clampPage(-2, 10000) = (%d, %d)", p, l)
	}
	if p, l := clampPage(0, 0); p != 1 || l != defaultPageSize {
		t.Fatalf("clampPage(0, 0) = (%d, %d)", p, l)
	}
}
