package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logicem/callcenter-api/internal/core/domain"
)

const collectionCallLogs = "call_logs"

// CallLogRepository implements ports.CallLogRepository using MongoDB. Call
// logs are append-only.
type CallLogRepository struct {
	col *mongo.Collection
}

func NewCallLogRepository(db *mongo.Database) *CallLogRepository {
	return &CallLogRepository{col: db.Collection(collectionCallLogs)}
}

func (r *CallLogRepository) Insert(ctx context.Context, log *domain.CallLog) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, log)
	if err != nil {
		return fmt.Errorf("insert call log: %w", err)
	}
	return nil
}

// ListByVehicle returns the call history of one vehicle, newest first.
func (r *CallLogRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]*domain.CallLog, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"vehicle_id": vehicleID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list call logs: %w", err)
	}
	defer cur.Close(ctx)

	var logs []*domain.CallLog
	if err := cur.All(ctx, &logs); err != nil {
		return nil, fmt.Errorf("decode call logs: %w", err)
	}
	return logs, nil
}

// EnsureIndexes creates necessary indexes on the call_logs collection.
func (r *CallLogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "vehicle_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
