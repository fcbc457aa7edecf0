package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/leavedesk/leave-api/internal/core/domain"
)

const collectionLeaves = "leaves"

type LeaveRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewLeaveRepository(db *mongo.Database) *LeaveRepository {
	return &LeaveRepository{db: db, col: db.Collection(collectionLeaves)}
}

type mongoLeave struct {
	ID           int64     `bson:"_id"`
	UserID       int64     `bson:"user_id"`
	LeaveType    string    `bson:"leave_type"`
	StartDate    time.Time `bson:"start_date"`
	EndDate      time.Time `bson:"end_date"`
	Reason       string    `bson:"reason"`
	Status       string    `bson:"status"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
	EmployeeName string    `bson:"employee_name,omitempty"`
}

func (ml *mongoLeave) toDomain() *domain.Leave {
	return &domain.Leave{
		ID:           ml.ID,
		UserID:       ml.UserID,
		LeaveType:    domain.LeaveType(ml.LeaveType),
		StartDate:    ml.StartDate.UTC(),
		EndDate:      ml.EndDate.UTC(),
		Reason:       ml.Reason,
		Status:       domain.LeaveStatus(ml.Status),
		CreatedAt:    ml.CreatedAt.UTC(),
		UpdatedAt:    ml.UpdatedAt.UTC(),
		EmployeeName: ml.EmployeeName,
	}
}

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

func (r *LeaveRepository) Create(ctx context.Context, l *domain.Leave) (*domain.Leave, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextID(ctx, r.db, collectionLeaves)
	if err != nil {
		return nil, err
	}

	doc := mongoLeave{
		ID:        id,
		UserID:    l.UserID,
		LeaveType: string(l.LeaveType),
		StartDate: l.StartDate,
		EndDate:   l.EndDate,
		Reason:    l.Reason,
		Status:    string(l.Status),
		CreatedAt: l.CreatedAt.Truncate(time.Millisecond),
		UpdatedAt: l.UpdatedAt.Truncate(time.Millisecond),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert leave: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *LeaveRepository) FindByID(ctx context.Context, id int64) (*domain.Leave, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ml mongoLeave
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&ml); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeaveNotFound
		}
		return nil, fmt.Errorf("find leave: %w", err)
	}
	return ml.toDomain(), nil
}

func (r *LeaveRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Leave, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("list leaves: %w", err)
	}
	return decodeLeaves(ctx, cur)
}

// ListAll joins each leave with its owner to fill EmployeeName.
func (r *LeaveRepository) ListAll(ctx context.Context) ([]*domain.Leave, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: newestFirst}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionUsers},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$user"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$addFields", Value: bson.D{{Key: "employee_name", Value: "$user.name"}}}},
		{{Key: "$project", Value: bson.D{{Key: "user", Value: 0}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list all leaves: %w", err)
	}
	return decodeLeaves(ctx, cur)
}

func (r *LeaveRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.LeaveStatus, at time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": string(from)},
		bson.M{"$set": bson.M{"status": string(to), "updated_at": at.Truncate(time.Millisecond)}},
	)
	if err != nil {
		return fmt.Errorf("update leave status: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("count leave: %w", err)
	}
	if n == 0 {
		return domain.ErrLeaveNotFound
	}
	return domain.ErrInvalidStatusTransition
}

func (r *LeaveRepository) Delete(ctx context.Context, id, ownerID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if ownerID != 0 {
		filter["user_id"] = ownerID
	}

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete leave: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrLeaveNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes used by the per-user and status listings.
func (r *LeaveRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("create leaves indexes: %w", err)
	}
	return nil
}

func decodeLeaves(ctx context.Context, cur *mongo.Cursor) ([]*domain.Leave, error) {
	defer cur.Close(ctx)

	var docs []mongoLeave
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode leaves: %w", err)
	}

	out := make([]*domain.Leave, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}
