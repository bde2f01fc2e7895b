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
	"github.com/logicem/callcenter-api/internal/core/ports"
)

const collectionCampaigns = "campaigns"

// CampaignRepository implements ports.CampaignRepository using MongoDB.
type CampaignRepository struct {
	col *mongo.Collection
}

func NewCampaignRepository(db *mongo.Database) *CampaignRepository {
	return &CampaignRepository{col: db.Collection(collectionCampaigns)}
}

func (r *CampaignRepository) Insert(ctx context.Context, c *domain.Campaign) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

// Delete removes a campaign document; a missing id is not an error.
func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	return nil
}

func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Campaign
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCampaignNotFound
		}
		return nil, fmt.Errorf("find campaign: %w", err)
	}
	return &c, nil
}

// List returns one page of campaigns plus the total count.
func (r *CampaignRepository) List(ctx context.Context, filter ports.ListCampaignsFilter) ([]*domain.Campaign, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.OperationID != "" {
		query["operation_id"] = filter.OperationID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count campaigns: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: filter.SortField, Value: sortDirection(filter.SortAscending)}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}
	defer cur.Close(ctx)

	var campaigns []*domain.Campaign
	if err := cur.All(ctx, &campaigns); err != nil {
		return nil, 0, fmt.Errorf("decode campaigns: %w", err)
	}
	return campaigns, total, nil
}

// SetStatus updates the campaign status and stamps the matching lifecycle
// timestamp (completed_at or closed_at).
func (r *CampaignRepository) SetStatus(ctx context.Context, id string, status domain.CampaignStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": status}
	now := time.Now().UTC()
	switch status {
	case domain.CampaignCompleted:
		set["completed_at"] = now
	case domain.CampaignClosed:
		set["closed_at"] = now
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("set campaign status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCampaignNotFound
	}
	return nil
}

func (r *CampaignRepository) ListByOperation(ctx context.Context, operationID string, status domain.CampaignStatus) ([]*domain.Campaign, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "campaign_date", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"operation_id": operationID, "status": status}, opts)
	if err != nil {
		return nil, fmt.Errorf("list campaigns by operation: %w", err)
	}
	defer cur.Close(ctx)

	var campaigns []*domain.Campaign
	if err := cur.All(ctx, &campaigns); err != nil {
		return nil, fmt.Errorf("decode campaigns: %w", err)
	}
	return campaigns, nil
}

// DistinctOperationIDs returns the operation ids that have at least one
// campaign in the given status.
func (r *CampaignRepository) DistinctOperationIDs(ctx context.Context, status domain.CampaignStatus) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	values, err := r.col.Distinct(ctx, "operation_id", bson.M{"status": status})
	if err != nil {
		return nil, fmt.Errorf("distinct operation ids: %w", err)
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// EnsureIndexes creates necessary indexes on the campaigns collection.
func (r *CampaignRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "operation_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
