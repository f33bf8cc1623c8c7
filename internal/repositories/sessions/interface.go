package sessions

//go:generate mockgen -destination=mock/mock.go -package=mocksessions -source=interface.go

import (
	"context"

	"github.com/charforge/charforge/internal/domain/character"
)

// Repository defines the interface for build-session persistence
type Repository interface {
	// Create stores a new session, assigning an ID if the session has none
	Create(ctx context.Context, session *character.Session) error

	// Get retrieves a session by ID
	Get(ctx context.Context, id string) (*character.Session, error)

	// GetByOwner retrieves all sessions belonging to an owner
	GetByOwner(ctx context.Context, ownerID string) ([]*character.Session, error)

	// Update overwrites an existing session
	Update(ctx context.Context, session *character.Session) error

	// Delete removes a session
	Delete(ctx context.Context, id string) error
}
