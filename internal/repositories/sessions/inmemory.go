package sessions

import (
	"context"
	"sync"

	"github.com/charforge/charforge/internal/domain/character"
	cferr "github.com/charforge/charforge/internal/errors"
	"github.com/charforge/charforge/internal/uuid"
)

// InMemoryRepository is an in-memory implementation of the session repository
// Useful for testing and development
type InMemoryRepository struct {
	mu            sync.RWMutex
	snapshots     map[string]*character.SessionSnapshot
	uuidGenerator uuid.Generator
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		snapshots:     make(map[string]*character.SessionSnapshot),
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
	}
}

// Create stores a new session
func (r *InMemoryRepository) Create(ctx context.Context, session *character.Session) error {
	if session == nil {
		return cferr.InvalidArgument("session cannot be nil")
	}
	if session.OwnerID == "" {
		return cferr.InvalidArgument("session owner ID is required")
	}
	if session.ID == "" {
		session.ID = r.uuidGenerator.New()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.snapshots[session.ID]; exists {
		return cferr.AlreadyExistsf("session with ID '%s' already exists", session.ID).
			WithMeta("session_id", session.ID)
	}

	// Snapshots are deep copies, so later mutation of the session does
	// not leak into the store
	r.snapshots[session.ID] = session.Snapshot()

	return nil
}

// Get retrieves a session by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*character.Session, error) {
	if id == "" {
		return nil, cferr.InvalidArgument("session ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot, exists := r.snapshots[id]
	if !exists {
		return nil, cferr.NotFoundf("session with ID '%s' not found", id).
			WithMeta("session_id", id)
	}

	return character.RestoreSession(snapshot)
}

// GetByOwner retrieves all sessions belonging to an owner
func (r *InMemoryRepository) GetByOwner(ctx context.Context, ownerID string) ([]*character.Session, error) {
	if ownerID == "" {
		return nil, cferr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*character.Session
	for _, snapshot := range r.snapshots {
		if snapshot.OwnerID != ownerID {
			continue
		}
		session, err := character.RestoreSession(snapshot)
		if err != nil {
			return nil, err
		}
		result = append(result, session)
	}

	return result, nil
}

// Update overwrites an existing session
func (r *InMemoryRepository) Update(ctx context.Context, session *character.Session) error {
	if session == nil {
		return cferr.InvalidArgument("session cannot be nil")
	}
	if session.ID == "" {
		return cferr.InvalidArgument("session ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.snapshots[session.ID]; !exists {
		return cferr.NotFoundf("session with ID '%s' not found", session.ID).
			WithMeta("session_id", session.ID)
	}

	r.snapshots[session.ID] = session.Snapshot()

	return nil
}

// Delete removes a session
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return cferr.InvalidArgument("session ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.snapshots[id]; !exists {
		return cferr.NotFoundf("session with ID '%s' not found", id).
			WithMeta("session_id", id)
	}

	delete(r.snapshots, id)
	return nil
}
