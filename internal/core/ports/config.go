package ports

import (
	"context"

	"github.com/logicem/callcenter-api/internal/core/domain"
)

// ConfigRepository defines persistence for the configurable lookup lists.
type ConfigRepository interface {
	All(ctx context.Context) ([]*domain.ConfigSection, error)
	FindSection(ctx context.Context, key string) (*domain.ConfigSection, error)
	AddItem(ctx context.Context, key string, item domain.ConfigItem) error
	UpdateItemDescription(ctx context.Context, key, itemID, description string) error
	SetItemActive(ctx context.Context, key, itemID string, active bool) error
}

// ConfigService manages the lookup lists consumed by forms and exports.
type ConfigService interface {
	Sections(ctx context.Context) ([]*domain.ConfigSection, error)
	Section(ctx context.Context, key string) (*domain.ConfigSection, error)
	AddItem(ctx context.Context, key, description, createdBy string) (*domain.ConfigItem, error)
	UpdateItem(ctx context.Context, key, itemID, description string) error
	// ToggleItem flips an item's active flag and returns the new value.
	ToggleItem(ctx context.Context, key, itemID string) (bool, error)
}
