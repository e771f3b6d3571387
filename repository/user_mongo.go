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

const usersCollection = "users"

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
	FullName string             `bson:"fullName"`
	Password string             `bson:"password"`
	Role     string             `bson:"role"`
	IsOnline bool               `bson:"isOnline"`
	LastSeen *time.Time         `bson:"lastSeen"`
}

func (d userDocument) toModel() models.User {
	return models.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		FullName:     d.FullName,
		PasswordHash: d.Password,
		Role:         d.Role,
		IsOnline:     d.IsOnline,
		LastSeen:     d.LastSeen,
	}
}

// MongoUserRepository keeps users in the "users" collection.
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

// EnsureIndexes creates the unique username index.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create username index: %w", err)
	}
	return nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	doc := userDocument{
		Username: user.Username,
		FullName: user.FullName,
		Password: user.PasswordHash,
		Role:     user.Role,
		IsOnline: user.IsOnline,
		LastSeen: user.LastSeen,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}
	return nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	user := doc.toModel()
	return &user, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *MongoUserRepository) ExistsWithRole(ctx context.Context, role string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"role": role}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count users by role: %w", err)
	}
	return n > 0, nil
}

func (r *MongoUserRepository) List(ctx context.Context, role string) ([]models.User, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}

	opts := options.Find().SetSort(bson.D{{Key: "username", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *MongoUserRepository) updateByID(ctx context.Context, id string, set bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoUserRepository) SetPresence(ctx context.Context, id string, online bool, at time.Time) error {
	return r.updateByID(ctx, id, bson.M{"isOnline": online, "lastSeen": at})
}

func (r *MongoUserRepository) MarkStaleOffline(ctx context.Context, role string, cutoff time.Time) (int64, error) {
	filter := bson.M{
		"role":     role,
		"isOnline": true,
		"lastSeen": bson.M{"$lt": cutoff},
	}
	res, err := r.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"isOnline": false}})
	if err != nil {
		return 0, fmt.Errorf("demote stale users: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *MongoUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.updateByID(ctx, id, bson.M{"password": passwordHash})
}

func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats counts users and online users in one aggregation:
//   - group _id: null, total: sum(1), online: sum(cond(isOnline, 1, 0))
func (r *MongoUserRepository) Stats(ctx context.Context) (models.UserStats, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "online", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{"$isOnline", 1, 0}},
			}}}},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.UserStats{}, fmt.Errorf("aggregate user stats: %w", err)
	}
	defer cursor.Close(ctx)

	var stats models.UserStats
	if cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return models.UserStats{}, fmt.Errorf("decode user stats: %w", err)
		}
		stats.Total = toInt64(doc["total"])
		stats.Online = toInt64(doc["online"])
	}
	if err := cursor.Err(); err != nil {
		return models.UserStats{}, fmt.Errorf("iterate user stats: %w", err)
	}
	return stats, nil
}

// toInt64 normalizes the numeric types the driver may hand back from $sum.
func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	default:
		return 0
	}
}
