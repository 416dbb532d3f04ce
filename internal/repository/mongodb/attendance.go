package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
)

type attendanceRepository struct {
	attendance *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) attendance.Store {
	return &attendanceRepository{attendance: db.Collection(AttendanceCollection)}
}

// GetByDate implements attendance.Store.
func (a *attendanceRepository) GetByDate(ctx context.Context, classCode, date string) ([]attendance.Record, error) {
	filter := bson.M{"class_code": classCode, "date": date}
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := a.attendance.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find %s: %v", attendance.ErrAttendanceFetch, date, err)
	}
	defer cursor.Close(ctx)

	var docs []attendanceDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", attendance.ErrAttendanceFetch, date, err)
	}

	records := make([]attendance.Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, attendance.Record{
			PersonID: doc.UserID,
			Name:     doc.Name,
			Date:     doc.Date,
			Time:     doc.Time,
		})
	}
	return records, nil
}

// EnsureIndexes creates the indexes the dashboard queries rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(AttendanceCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "class_code", Value: 1}, {Key: "date", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create attendance index: %w", err)
	}

	_, err = db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "class_code", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}
	return nil
}
