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

	"github.com/opendev-studio/site-api/internal/core/domain"
)

const contentCollection = "site_content"

// ContentRepository stores the single editable site copy document. The
// collection only ever holds one document; reads take the first match.
type ContentRepository struct {
	col *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{col: db.Collection(contentCollection)}
}

type contentDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Hero       domain.Hero        `bson:"hero"`
	About      domain.About       `bson:"about"`
	Advantages []domain.Advantage `bson:"advantages"`
	Footer     domain.Footer      `bson:"footer"`
	SiteImages []string           `bson:"siteImages"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d contentDoc) toDomain() *domain.SiteContent {
	return &domain.SiteContent{
		ID:         d.ID.Hex(),
		Hero:       d.Hero,
		About:      d.About,
		Advantages: d.Advantages,
		Footer:     d.Footer,
		SiteImages: d.SiteImages,
		UpdatedAt:  d.UpdatedAt,
	}
}

func fromDomainContent(c *domain.SiteContent) contentDoc {
	return contentDoc{
		Hero:       c.Hero,
		About:      c.About,
		Advantages: c.Advantages,
		Footer:     c.Footer,
		SiteImages: c.SiteImages,
		UpdatedAt:  c.UpdatedAt,
	}
}

func (r *ContentRepository) Find(ctx context.Context) (*domain.SiteContent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc contentDoc
	if err := r.col.FindOne(ctx, bson.M{}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("find content: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ContentRepository) Create(ctx context.Context, c *domain.SiteContent) (*domain.SiteContent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := fromDomainContent(c)
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert content: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ContentRepository) Replace(ctx context.Context, c *domain.SiteContent) (*domain.SiteContent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc contentDoc
	err := r.col.FindOneAndReplace(ctx,
		bson.M{},
		fromDomainContent(c),
		options.FindOneAndReplace().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrContentNotFound
		}
		return nil, fmt.Errorf("replace content: %w", err)
	}
	return doc.toDomain(), nil
}
