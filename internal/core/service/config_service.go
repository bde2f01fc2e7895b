package service

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

// ConfigService manages the configurable lookup lists. Sections are fixed;
// only their items change. Items are toggled inactive, never deleted, so
// historical records keep resolving.
type ConfigService struct {
	repo ports.ConfigRepository
	log  zerolog.Logger
}

func NewConfigService(repo ports.ConfigRepository, log zerolog.Logger) *ConfigService {
	return &ConfigService{repo: repo, log: log}
}

func (s *ConfigService) Sections(ctx context.Context) ([]*domain.ConfigSection, error) {
	return s.repo.All(ctx)
}

func (s *ConfigService) Section(ctx context.Context, key string) (*domain.ConfigSection, error) {
	return s.repo.FindSection(ctx, key)
}

func (s *ConfigService) AddItem(ctx context.Context, key, description, createdBy string) (*domain.ConfigItem, error) {
	if _, err := s.repo.FindSection(ctx, key); err != nil {
		return nil, err
	}

	item := domain.ConfigItem{
		ID:          ulid.Make().String(),
		Description: strings.TrimSpace(description),
		Active:      true,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   createdBy,
	}
	if err := s.repo.AddItem(ctx, key, item); err != nil {
		return nil, err
	}

	s.log.Info().Str("section", key).Str("description", item.Description).Msg("configuration item added")
	return &item, nil
}

func (s *ConfigService) UpdateItem(ctx context.Context, key, itemID, description string) error {
	return s.repo.UpdateItemDescription(ctx, key, itemID, strings.TrimSpace(description))
}

// ToggleItem flips the item's active flag and returns the new value.
func (s *ConfigService) ToggleItem(ctx context.Context, key, itemID string) (bool, error) {
	section, err := s.repo.FindSection(ctx, key)
	if err != nil {
		return false, err
	}

	for _, item := range section.Items {
		if item.ID == itemID {
			next := !item.Active
			if err := s.repo.SetItemActive(ctx, key, itemID, next); err != nil {
				return false, err
			}
			return next, nil
		}
	}
	return false, domain.ErrItemNotFound
}
