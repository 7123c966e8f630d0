package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/opendev-studio/site-api/internal/core/domain"
)

const auditCollection = "admin_actions"

// AuditRepository is the append-only store of privileged mutations.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(auditCollection)}
}

type auditDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	AdminID    string             `bson:"adminId"`
	Action     string             `bson:"action"`
	TargetType string             `bson:"targetType"`
	TargetID   string             `bson:"targetId,omitempty"`
	Details    map[string]any     `bson:"details,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt"`
}

func (d auditDoc) toDomain() *domain.AdminAction {
	return &domain.AdminAction{
		ID:         d.ID.Hex(),
		AdminID:    d.AdminID,
		Action:     d.Action,
		TargetType: d.TargetType,
		TargetID:   d.TargetID,
		Details:    d.Details,
		CreatedAt:  d.CreatedAt,
	}
}

func (r *AuditRepository) Insert(ctx context.Context, a *domain.AdminAction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := auditDoc{
		AdminID:    a.AdminID,
		Action:     a.Action,
		TargetType: a.TargetType,
		TargetID:   a.TargetID,
		Details:    a.Details,
		CreatedAt:  a.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert admin action: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListRecent(ctx context.Context, limit int) ([]*domain.AdminAction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list admin actions: %w", err)
	}
	defer cur.Close(ctx)

	actions := make([]*domain.AdminAction, 0)
	for cur.Next(ctx) {
		var doc auditDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode admin action: %w", err)
		}
		actions = append(actions, doc.toDomain())
	}
	return actions, cur.Err()
}

func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "adminId", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
