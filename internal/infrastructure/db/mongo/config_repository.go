package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/logicem/callcenter-api/internal/core/domain"
)

const collectionConfigSections = "config_sections"

// ConfigRepository implements ports.ConfigRepository using MongoDB. Each
// section is one document; items live as an embedded array.
type ConfigRepository struct {
	col *mongo.Collection
}

func NewConfigRepository(db *mongo.Database) *ConfigRepository {
	return &ConfigRepository{col: db.Collection(collectionConfigSections)}
}

// All returns every section in the fixed display order.
func (r *ConfigRepository) All(ctx context.Context) ([]*domain.ConfigSection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list config sections: %w", err)
	}
	defer cur.Close(ctx)

	byKey := make(map[string]*domain.ConfigSection)
	var fetched []*domain.ConfigSection
	if err := cur.All(ctx, &fetched); err != nil {
		return nil, fmt.Errorf("decode config sections: %w", err)
	}
	for _, s := range fetched {
		byKey[s.Key] = s
	}

	out := make([]*domain.ConfigSection, 0, len(domain.SectionKeys))
	for _, key := range domain.SectionKeys {
		if s, ok := byKey[key]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *ConfigRepository) FindSection(ctx context.Context, key string) (*domain.ConfigSection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.ConfigSection
	err := r.col.FindOne(ctx, bson.M{"_id": key}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSectionNotFound
		}
		return nil, fmt.Errorf("find config section: %w", err)
	}
	return &s, nil
}

func (r *ConfigRepository) AddItem(ctx context.Context, key string, item domain.ConfigItem) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": key}, bson.M{"$push": bson.M{"items": item}})
	if err != nil {
		return fmt.Errorf("add config item: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSectionNotFound
	}
	return nil
}

func (r *ConfigRepository) UpdateItemDescription(ctx context.Context, key, itemID, description string) error {
	return r.setItemField(ctx, key, itemID, "description", description)
}

func (r *ConfigRepository) SetItemActive(ctx context.Context, key, itemID string, active bool) error {
	return r.setItemField(ctx, key, itemID, "active", active)
}

func (r *ConfigRepository) setItemField(ctx context.Context, key, itemID, field string, value any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": key, "items.id": itemID}
	update := bson.M{"$set": bson.M{"items.$." + field: value}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update config item: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.FindSection(ctx, key); err != nil {
			return err
		}
		return domain.ErrItemNotFound
	}
	return nil
}
