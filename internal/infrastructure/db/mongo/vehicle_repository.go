package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logicem/callcenter-api/internal/core/domain"
)

const collectionCampaignVehicles = "campaign_vehicles"

// VehicleRepository implements ports.VehicleRepository using MongoDB.
type VehicleRepository struct {
	col *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	return &VehicleRepository{col: db.Collection(collectionCampaignVehicles)}
}

func (r *VehicleRepository) InsertMany(ctx context.Context, vehicles []*domain.CampaignVehicle) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]any, 0, len(vehicles))
	for _, v := range vehicles {
		docs = append(docs, v)
	}

	_, err := r.col.InsertMany(ctx, docs)
	if err != nil {
		return fmt.Errorf("insert vehicles: %w", err)
	}
	return nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id string) (*domain.CampaignVehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var v domain.CampaignVehicle
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return &v, nil
}

// ListByCampaign returns the vehicles of one campaign, optionally narrowed
// to a set of statuses, in plate order.
func (r *VehicleRepository) ListByCampaign(ctx context.Context, campaignID string, statuses ...domain.VehicleStatus) ([]*domain.CampaignVehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{"campaign_id": campaignID}
	if len(statuses) > 0 {
		query["status"] = bson.M{"$in": statuses}
	}

	opts := options.Find().SetSort(bson.D{{Key: "plate", Value: 1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer cur.Close(ctx)

	var vehicles []*domain.CampaignVehicle
	if err := cur.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("decode vehicles: %w", err)
	}
	return vehicles, nil
}

// ListByStatuses returns vehicles across all campaigns matching any of the
// given statuses, most recently updated first.
func (r *VehicleRepository) ListByStatuses(ctx context.Context, statuses ...domain.VehicleStatus) ([]*domain.CampaignVehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"status": bson.M{"$in": statuses}}, opts)
	if err != nil {
		return nil, fmt.Errorf("list vehicles by status: %w", err)
	}
	defer cur.Close(ctx)

	var vehicles []*domain.CampaignVehicle
	if err := cur.All(ctx, &vehicles); err != nil {
		return nil, fmt.Errorf("decode vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) UpdateStatus(ctx context.Context, id string, status domain.VehicleStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now().UTC()}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update vehicle status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the campaign_vehicles collection.
func (r *VehicleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "campaign_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "plate", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "updated_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
