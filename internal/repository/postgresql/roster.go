package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/roster"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/database"
)

type rosterRepository struct {
	db *database.DB
}

func NewRosterRepository(db *database.DB) roster.Provider {
	return &rosterRepository{db: db}
}

// GetAll implements roster.Provider.
func (r *rosterRepository) GetAll(ctx context.Context, classCode string) ([]roster.Person, error) {
	query := `
		SELECT id, name, department, class_code
		FROM persons
		WHERE class_code = $1 AND is_active = TRUE
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, classCode)
	if err != nil {
		return nil, fmt.Errorf("%w: query persons: %v", roster.ErrRosterUnavailable, err)
	}
	defer rows.Close()

	people := make([]roster.Person, 0)
	for rows.Next() {
		var p roster.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Department, &p.ClassCode); err != nil {
			return nil, fmt.Errorf("%w: scan person: %v", roster.ErrRosterUnavailable, err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate persons: %v", roster.ErrRosterUnavailable, err)
	}

	return people, nil
}
