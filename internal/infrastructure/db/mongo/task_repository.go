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

const collectionTasks = "tasks"

// TaskRepository implements ports.TaskRepository using MongoDB.
type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

func (r *TaskRepository) Insert(ctx context.Context, task *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, task)
	if err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Task
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &t, nil
}

// List returns one page of tasks plus the total count. Search matches the
// task id or category, case-insensitive.
func (r *TaskRepository) List(ctx context.Context, filter ports.ListTasksFilter) ([]*domain.Task, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		re := primitive.Regex{Pattern: regexEscape(filter.Search), Options: "i"}
		query["$or"] = bson.A{bson.M{"_id": re}, bson.M{"category": re}}
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	// "priority" sorts by the persisted numeric rank; the raw Spanish
	// strings would order alta < baja < media < urgente.
	sortField := filter.SortField
	if sortField == "priority" {
		sortField = "priority_rank"
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortDirection(filter.SortAscending)}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer cur.Close(ctx)

	var tasks []*domain.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, 0, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, total, nil
}

// Close stamps the closing fields on a still-pending task. The filter pins
// status=pendiente so a closed task is never overwritten; a zero match is
// then disambiguated with a lookup.
func (r *TaskRepository) Close(ctx context.Context, id, observations, closedBy string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": domain.TaskPending}
	update := bson.M{"$set": bson.M{
		"status":       domain.TaskClosed,
		"observations": observations,
		"closed_by":    closedBy,
		"closed_at":    time.Now().UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("close task: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrTaskAlreadyClosed
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the tasks collection.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
