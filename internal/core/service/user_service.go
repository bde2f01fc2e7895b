package service

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var userSortFields = map[string]struct{}{
	"name": {}, "email": {}, "role": {}, "created_at": {},
}

// UserService implements user administration. Profile and credential are
// written in tandem: a created user can sign in immediately, a deleted one
// cannot.
type UserService struct {
	users ports.UserRepository
	creds ports.CredentialRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, creds ports.CredentialRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, creds: creds, log: log}
}

func (s *UserService) List(ctx context.Context, filter ports.ListUsersFilter) ([]*domain.AppUser, int64, error) {
	if _, ok := userSortFields[filter.SortField]; !ok {
		filter.SortField = "created_at"
		filter.SortAscending = false
	}
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	return s.users.List(ctx, filter)
}

func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.AppUser, error) {
	if existing, err := s.users.FindByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, domain.ErrUserExists
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.AppUser{
		ID:        ulid.Make().String(),
		Name:      in.Name,
		Email:     in.Email,
		Role:      in.Role,
		CreatedAt: now,
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	cred := &domain.Credential{
		ID:       user.ID,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
	}
	if err := s.creds.Insert(ctx, cred); err != nil {
		// Without a credential the profile is unusable; roll it back.
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("user_id", user.ID).Msg("orphaned profile after credential insert failure")
		}
		return nil, err
	}

	s.log.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

// Update rewrites name and role only; email and credentials are untouched.
func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.AppUser, error) {
	user, err := s.users.Update(ctx, id, in.Name, in.Role)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Msg("user updated")
	return user, nil
}

// Delete removes the profile and its credential together.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.creds.DeleteByUserID(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// clampPage normalises 1-based pagination parameters.
func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
