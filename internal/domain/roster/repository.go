package roster

import "context"

// Provider reads the class roster from the external roster store.
type Provider interface {
	// GetAll returns every active person of a class in enrollment order.
	// Failures wrap ErrRosterUnavailable.
	GetAll(ctx context.Context, classCode string) ([]Person, error)
}
