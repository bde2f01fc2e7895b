package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

const collectionOperations = "operations"

// OperationRepository implements ports.OperationRepository using MongoDB.
type OperationRepository struct {
	col *mongo.Collection
}

func NewOperationRepository(db *mongo.Database) *OperationRepository {
	return &OperationRepository{col: db.Collection(collectionOperations)}
}

func (r *OperationRepository) Insert(ctx context.Context, op *domain.Operation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, op)
	if err != nil {
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

func (r *OperationRepository) FindByID(ctx context.Context, id string) (*domain.Operation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var op domain.Operation
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&op)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOperationNotFound
		}
		return nil, fmt.Errorf("find operation: %w", err)
	}
	return &op, nil
}

func (r *OperationRepository) Update(ctx context.Context, op *domain.Operation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": op.ID}, op)
	if err != nil {
		return fmt.Errorf("update operation: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOperationNotFound
	}
	return nil
}

// List returns one page of operations plus the total count. Search matches
// name, origin or destination, case-insensitive.
func (r *OperationRepository) List(ctx context.Context, filter ports.ListOperationsFilter) ([]*domain.Operation, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: regexEscape(filter.Search), Options: "i"}
		query["$or"] = bson.A{bson.M{"name": re}, bson.M{"origin": re}, bson.M{"destination": re}}
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.ClientID != "" {
		query["client_id"] = filter.ClientID
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count operations: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: filter.SortField, Value: sortDirection(filter.SortAscending)}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list operations: %w", err)
	}
	defer cur.Close(ctx)

	var ops []*domain.Operation
	if err := cur.All(ctx, &ops); err != nil {
		return nil, 0, fmt.Errorf("decode operations: %w", err)
	}
	return ops, total, nil
}

// FindByIDs returns the operations matching any of the given ids, newest
// first. Missing ids are skipped.
func (r *OperationRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Operation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find operations: %w", err)
	}
	defer cur.Close(ctx)

	var ops []*domain.Operation
	if err := cur.All(ctx, &ops); err != nil {
		return nil, fmt.Errorf("decode operations: %w", err)
	}
	return ops, nil
}

// EnsureIndexes creates necessary indexes on the operations collection.
func (r *OperationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
