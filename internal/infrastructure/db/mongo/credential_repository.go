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

const collectionCredentials = "credentials"

// CredentialRepository implements ports.CredentialRepository using MongoDB.
type CredentialRepository struct {
	col *mongo.Collection
}

func NewCredentialRepository(db *mongo.Database) *CredentialRepository {
	return &CredentialRepository{col: db.Collection(collectionCredentials)}
}

// FindByEmail retrieves a credential by its exact email.
func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Credential
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}
	return &c, nil
}

func (r *CredentialRepository) Insert(ctx context.Context, cred *domain.Credential) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, cred)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored password of a user's credential. A
// missing credential is not an error.
func (r *CredentialRepository) UpdatePassword(ctx context.Context, userID, password string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"password": password}})
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (r *CredentialRepository) DeleteByUserID(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the credentials collection.
func (r *CredentialRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
