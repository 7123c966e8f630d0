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
	"github.com/opendev-studio/site-api/internal/core/ports"
)

const (
	projectsCollection      = "projects"
	projectImagesCollection = "project_images"
)

// ProjectRepository implements ports.ProjectRepository using MongoDB.
type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(projectsCollection)}
}

type projectDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Category     string             `bson:"category"`
	Description  string             `bson:"description,omitempty"`
	MainImage    string             `bson:"mainImage,omitempty"`
	ExternalLink string             `bson:"externalLink,omitempty"`
	IsArchived   bool               `bson:"isArchived"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (d projectDoc) toDomain() *domain.Project {
	return &domain.Project{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Category:     d.Category,
		Description:  d.Description,
		MainImage:    d.MainImage,
		ExternalLink: d.ExternalLink,
		IsArchived:   d.IsArchived,
		CreatedAt:    d.CreatedAt,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := projectDoc{
		Title:        p.Title,
		Category:     p.Category,
		Description:  p.Description,
		MainImage:    p.MainImage,
		ExternalLink: p.ExternalLink,
		IsArchived:   p.IsArchived,
		CreatedAt:    p.CreatedAt,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc projectDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) List(ctx context.Context, includeArchived bool) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if !includeArchived {
		filter["isArchived"] = bson.M{"$ne": true}
	}

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cur.Close(ctx)

	projects := make([]*domain.Project, 0)
	for cur.Next(ctx) {
		var doc projectDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		projects = append(projects, doc.toDomain())
	}
	return projects, cur.Err()
}

func (r *ProjectRepository) Update(ctx context.Context, id string, in ports.UpdateProjectInput) (*domain.Project, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if in.Title != nil {
		set["title"] = *in.Title
	}
	if in.Category != nil {
		set["category"] = *in.Category
	}
	if in.Description != nil {
		set["description"] = *in.Description
	}
	if in.MainImage != nil {
		set["mainImage"] = *in.MainImage
	}
	if in.ExternalLink != nil {
		set["externalLink"] = *in.ExternalLink
	}
	if in.IsArchived != nil {
		set["isArchived"] = *in.IsArchived
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	var doc projectDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// --- Project images ---

// ProjectImageRepository implements ports.ProjectImageRepository using MongoDB.
type ProjectImageRepository struct {
	col *mongo.Collection
}

func NewProjectImageRepository(db *mongo.Database) *ProjectImageRepository {
	return &ProjectImageRepository{col: db.Collection(projectImagesCollection)}
}

type projectImageDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	ProjectID primitive.ObjectID `bson:"projectId"`
	ImageURL  string             `bson:"imageUrl"`
}

func (d projectImageDoc) toDomain() *domain.ProjectImage {
	return &domain.ProjectImage{
		ID:        d.ID.Hex(),
		ProjectID: d.ProjectID.Hex(),
		ImageURL:  d.ImageURL,
	}
}

func (r *ProjectImageRepository) Create(ctx context.Context, img *domain.ProjectImage) (*domain.ProjectImage, error) {
	pid, err := objectID(img.ProjectID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := projectImageDoc{ProjectID: pid, ImageURL: img.ImageURL}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert project image: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *ProjectImageRepository) FindByProject(ctx context.Context, projectID string) ([]*domain.ProjectImage, error) {
	pid, err := objectID(projectID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"projectId": pid})
	if err != nil {
		return nil, fmt.Errorf("list project images: %w", err)
	}
	defer cur.Close(ctx)

	images := make([]*domain.ProjectImage, 0)
	for cur.Next(ctx) {
		var doc projectImageDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode project image: %w", err)
		}
		images = append(images, doc.toDomain())
	}
	return images, cur.Err()
}

func (r *ProjectImageRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete project image: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectImageNotFound
	}
	return nil
}

func (r *ProjectImageRepository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	pid, err := objectID(projectID)
	if err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"projectId": pid})
	if err != nil {
		return 0, fmt.Errorf("cascade project images: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the listing sort index for projects.
func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	return err
}

// EnsureIndexes creates the project lookup index for gallery images.
func (r *ProjectImageRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "projectId", Value: 1}},
	})
	return err
}
