package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every collection index the repositories rely on.
// Called once at startup; CreateMany is a no-op for indexes that exist.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewServiceRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := NewProjectRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := NewProjectImageRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := NewOrderRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return NewAuditRepository(db).EnsureIndexes(ctx)
}
