package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/roster"
)

type rosterRepository struct {
	users *mongo.Collection
}

func NewRosterRepository(db *mongo.Database) roster.Provider {
	return &rosterRepository{users: db.Collection(UsersCollection)}
}

// GetAll implements roster.Provider. Users without is_active are treated as active.
func (r *rosterRepository) GetAll(ctx context.Context, classCode string) ([]roster.Person, error) {
	filter := bson.M{
		"class_code": classCode,
		"is_active":  bson.M{"$ne": false},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "user_id", Value: 1}})

	cursor, err := r.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find users: %v", roster.ErrRosterUnavailable, err)
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: decode users: %v", roster.ErrRosterUnavailable, err)
	}

	people := make([]roster.Person, 0, len(docs))
	for _, doc := range docs {
		people = append(people, roster.Person{
			ID:         doc.UserID,
			Name:       doc.Name,
			Department: doc.Department,
			ClassCode:  doc.ClassCode,
		})
	}
	return people, nil
}
