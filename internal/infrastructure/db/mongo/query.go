package mongo

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/opendev-studio/site-api/internal/core/domain"
)

// objectID parses a hex id, mapping parse failures to domain.ErrInvalidID.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidID
	}
	return oid, nil
}

// substringMatch builds a case-insensitive substring condition for one field.
// The needle is quoted so user input is matched literally, not as a pattern.
func substringMatch(field, needle string) bson.M {
	return bson.M{field: primitive.Regex{Pattern: regexp.QuoteMeta(needle), Options: "i"}}
}

// dateRange builds an inclusive createdAt range condition. Either bound may
// be zero, filtering only the supplied side.
func dateRange(from, to time.Time) bson.M {
	cond := bson.M{}
	if !from.IsZero() {
		cond["$gte"] = from.UTC()
	}
	if !to.IsZero() {
		cond["$lte"] = to.UTC()
	}
	return cond
}

// findPage runs the shared list query shape: filter, sort by createdAt
// descending, skip/limit from 1-based pagination, plus a total count of all
// matches. A page past the end yields an empty slice, not an error.
func findPage(ctx context.Context, col *mongo.Collection, filter bson.M, page, limit int, opts ...*options.FindOptions) (*mongo.Cursor, int64, error) {
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	opts = append(opts, findOpts)

	cur, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, 0, err
	}
	return cur, total, nil
}
