package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"team-portal/models"
)

const projectsCollection = "projects"

type projectDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	ProjectLink string             `bson:"projectLink"`
	ImageURL    string             `bson:"imageUrl"`
	PreviewType string             `bson:"previewType"`
	PreviewURL  string             `bson:"previewUrl"`
	CreatedBy   primitive.ObjectID `bson:"createdBy,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d projectDocument) toModel() models.Project {
	p := models.Project{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		ProjectLink: d.ProjectLink,
		ImageURL:    d.ImageURL,
		PreviewType: d.PreviewType,
		PreviewURL:  d.PreviewURL,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if !d.CreatedBy.IsZero() {
		p.CreatedBy = d.CreatedBy.Hex()
	}
	return p
}

// MongoProjectRepository keeps gallery entries in the "projects" collection.
type MongoProjectRepository struct {
	coll *mongo.Collection
}

func NewMongoProjectRepository(db *mongo.Database) *MongoProjectRepository {
	return &MongoProjectRepository{coll: db.Collection(projectsCollection)}
}

func (r *MongoProjectRepository) Create(ctx context.Context, project *models.Project) error {
	doc := projectDocument{
		Name:        project.Name,
		ProjectLink: project.ProjectLink,
		ImageURL:    project.ImageURL,
		PreviewType: project.PreviewType,
		PreviewURL:  project.PreviewURL,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(project.CreatedBy); err == nil {
		doc.CreatedBy = oid
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		project.ID = oid.Hex()
	}
	return nil
}

func (r *MongoProjectRepository) FindByID(ctx context.Context, id string) (*models.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc projectDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	p := doc.toModel()
	return &p, nil
}

func (r *MongoProjectRepository) List(ctx context.Context) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cursor.Close(ctx)

	projects := make([]models.Project, 0)
	for cursor.Next(ctx) {
		var doc projectDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		projects = append(projects, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

func (r *MongoProjectRepository) Update(ctx context.Context, project *models.Project) error {
	oid, err := primitive.ObjectIDFromHex(project.ID)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"name":        project.Name,
		"projectLink": project.ProjectLink,
		"imageUrl":    project.ImageURL,
		"previewType": project.PreviewType,
		"previewUrl":  project.PreviewURL,
		"updatedAt":   project.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProjectRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoProjectRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}
