package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
	"github.com/yigit/schoolhub/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const activityLogCollection = "activity_logs"

type activityLogDocument struct {
	ID          primitive.ObjectID     `bson:"_id,omitempty"`
	UserID      int64                  `bson:"user_id"`
	UserRole    string                 `bson:"user_role"`
	Action      string                 `bson:"action"`
	Module      string                 `bson:"module"`
	Description string                 `bson:"description"`
	IPAddress   string                 `bson:"ip_address,omitempty"`
	Metadata    map[string]interface{} `bson:"metadata,omitempty"`
	CreatedAt   time.Time              `bson:"created_at"`
}

func (d *activityLogDocument) toModel() models.ActivityLog {
	return models.ActivityLog{
		ID:          d.ID.Hex(),
		UserID:      d.UserID,
		UserRole:    models.Role(d.UserRole),
		Action:      d.Action,
		Module:      d.Module,
		Description: d.Description,
		IPAddress:   d.IPAddress,
		Metadata:    d.Metadata,
		CreatedAt:   d.CreatedAt,
	}
}

// MongoActivityLogRepository stores audit entries as documents
type MongoActivityLogRepository struct {
	col *mongo.Collection
}

// NewMongoActivityLogRepository creates the repository and its indexes
func NewMongoActivityLogRepository(ctx context.Context, database *mongo.Database) (*MongoActivityLogRepository, error) {
	col := database.Collection(activityLogCollection)
	_, err := col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "module", Value: 1}, {Key: "action", Value: 1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create activity log indexes: %w", err)
	}
	return &MongoActivityLogRepository{col: col}, nil
}

// Create inserts an entry and fills its id
func (r *MongoActivityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	doc := activityLogDocument{
		UserID:      entry.UserID,
		UserRole:    string(entry.UserRole),
		Action:      entry.Action,
		Module:      entry.Module,
		Description: entry.Description,
		IPAddress:   entry.IPAddress,
		Metadata:    entry.Metadata,
		CreatedAt:   entry.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("error inserting activity log: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return nil
}

func activityLogFilterDoc(filter models.ActivityLogFilter) bson.M {
	q := bson.M{}
	if filter.UserID > 0 {
		q["user_id"] = filter.UserID
	}
	if filter.UserRole != "" {
		q["user_role"] = string(filter.UserRole)
	}
	if filter.Module != "" {
		q["module"] = filter.Module
	}
	if filter.Action != "" {
		q["action"] = filter.Action
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		rng := bson.M{}
		if filter.StartDate != nil {
			rng["$gte"] = *filter.StartDate
		}
		if filter.EndDate != nil {
			rng["$lte"] = *filter.EndDate
		}
		q["created_at"] = rng
	}
	return q
}

// List returns one page of entries, newest first
func (r *MongoActivityLogRepository) List(ctx context.Context, filter models.ActivityLogFilter, offset uint64, limit int) ([]models.ActivityLog, int64, error) {
	q := activityLogFilterDoc(filter)

	total, err := r.col.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting activity logs: %w", err)
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cursor, err := r.col.Find(ctx, q, findOptions)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing activity logs: %w", err)
	}
	defer cursor.Close(ctx)

	logs := make([]models.ActivityLog, 0)
	for cursor.Next(ctx) {
		var doc activityLogDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("error decoding activity log: %w", err)
		}
		logs = append(logs, doc.toModel())
	}
	return logs, total, cursor.Err()
}

// GetByID fetches one entry by its hex ObjectID
func (r *MongoActivityLogRepository) GetByID(ctx context.Context, id string) (*models.ActivityLog, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrActivityLogNotFound
	}

	var doc activityLogDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrActivityLogNotFound
		}
		return nil, fmt.Errorf("error retrieving activity log: %w", err)
	}
	entry := doc.toModel()
	return &entry, nil
}

// LoggingActivityLogRepository writes every entry to the structured log and delegates storage
type LoggingActivityLogRepository struct {
	next IActivityLogRepository
	log  zerolog.Logger
}

// NewLoggingActivityLogRepository wraps next so each audit entry also appears in the log stream
func NewLoggingActivityLogRepository(next IActivityLogRepository) *LoggingActivityLogRepository {
	return &LoggingActivityLogRepository{next: next, log: logger.Component("audit")}
}

// Create logs the entry, then stores it
func (r *LoggingActivityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	r.log.Info().
		Int64("userID", entry.UserID).
		Str("userRole", string(entry.UserRole)).
		Str("module", entry.Module).
		Str("action", entry.Action).
		Str("ip", entry.IPAddress).
		Interface("metadata", entry.Metadata).
		Msg(entry.Description)
	return r.next.Create(ctx, entry)
}

// List delegates
func (r *LoggingActivityLogRepository) List(ctx context.Context, filter models.ActivityLogFilter, offset uint64, limit int) ([]models.ActivityLog, int64, error) {
	return r.next.List(ctx, filter, offset, limit)
}

// GetByID delegates
func (r *LoggingActivityLogRepository) GetByID(ctx context.Context, id string) (*models.ActivityLog, error) {
	return r.next.GetByID(ctx, id)
}
