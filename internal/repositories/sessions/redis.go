package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/charforge/charforge/internal/domain/character"
	cferr "github.com/charforge/charforge/internal/errors"
	"github.com/charforge/charforge/internal/uuid"
)

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client        redis.UniversalClient
	uuidGenerator uuid.Generator
	timeProvider  TimeProvider
	draftTTL      time.Duration // TTL for draft sessions
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        redis.UniversalClient
	UUIDGenerator uuid.Generator
	TimeProvider  TimeProvider
	DraftTTL      time.Duration // How long to keep draft sessions (default: 24 hours)
}

// NewRedisRepository creates a new Redis-backed session repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	if cfg.UUIDGenerator == nil {
		cfg.UUIDGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if cfg.TimeProvider == nil {
		cfg.TimeProvider = &RealTimeProvider{}
	}

	ttl := cfg.DraftTTL
	if ttl == 0 {
		ttl = 24 * time.Hour // Drafts that nobody touches for a day expire
	}

	return &redisRepo{
		client:        cfg.Client,
		uuidGenerator: cfg.UUIDGenerator,
		timeProvider:  cfg.TimeProvider,
		draftTTL:      ttl,
	}
}

// key generates the Redis key for a session
func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("charsession:%s", id)
}

// ownerSessionsKey generates the Redis key for an owner's session index
func (r *redisRepo) ownerSessionsKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:charsessions", ownerID)
}

// ttlFor returns the expiration for a session. Finalized sessions are kept
// indefinitely; drafts expire.
func (r *redisRepo) ttlFor(status character.SessionStatus) time.Duration {
	if status == character.SessionStatusFinalized {
		return 0
	}
	return r.draftTTL
}

// set serializes the session and writes it plus its owner index entry
func (r *redisRepo) set(ctx context.Context, session *character.Session) error {
	jsonData, err := json.Marshal(session.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(session.ID), string(jsonData), r.ttlFor(session.Status))
	pipe.SAdd(ctx, r.ownerSessionsKey(session.OwnerID), session.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

// Create stores a new session
func (r *redisRepo) Create(ctx context.Context, session *character.Session) error {
	if session == nil {
		return cferr.InvalidArgument("session cannot be nil")
	}
	if session.OwnerID == "" {
		return cferr.InvalidArgument("session owner ID is required")
	}
	if session.ID == "" {
		session.ID = r.uuidGenerator.New()
	}

	exists, err := r.client.Exists(ctx, r.key(session.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check session existence: %w", err)
	}
	if exists > 0 {
		return cferr.AlreadyExistsf("session with ID '%s' already exists", session.ID).
			WithMeta("session_id", session.ID)
	}

	now := r.timeProvider.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	return r.set(ctx, session)
}

// Get retrieves a session by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*character.Session, error) {
	if id == "" {
		return nil, cferr.InvalidArgument("session ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err == redis.Nil {
		return nil, cferr.NotFoundf("session with ID '%s' not found", id).
			WithMeta("session_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var snapshot character.SessionSnapshot
	if unmarshalErr := json.Unmarshal(jsonData, &snapshot); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", unmarshalErr)
	}

	session, err := character.RestoreSession(&snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	return session, nil
}

// GetByOwner retrieves all sessions belonging to an owner
func (r *redisRepo) GetByOwner(ctx context.Context, ownerID string) ([]*character.Session, error) {
	if ownerID == "" {
		return nil, cferr.InvalidArgument("owner ID is required")
	}

	ids, err := r.client.SMembers(ctx, r.ownerSessionsKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list session IDs: %w", err)
	}

	sessions := make([]*character.Session, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			session, err := r.Get(gctx, id)
			if cferr.IsNotFound(err) {
				// Draft keys expire on their TTL but the owner index
				// does not; trim the dangling entry and keep listing.
				r.client.SRem(gctx, r.ownerSessionsKey(ownerID), id)
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get session %s: %w", id, err)
			}
			sessions[i] = session
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*character.Session, 0, len(sessions))
	for _, session := range sessions {
		if session != nil {
			out = append(out, session)
		}
	}

	return out, nil
}

// Update overwrites an existing session
func (r *redisRepo) Update(ctx context.Context, session *character.Session) error {
	if session == nil {
		return cferr.InvalidArgument("session cannot be nil")
	}
	if session.ID == "" {
		return cferr.InvalidArgument("session ID is required")
	}

	exists, err := r.client.Exists(ctx, r.key(session.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check session existence: %w", err)
	}
	if exists == 0 {
		return cferr.NotFoundf("session with ID '%s' not found", session.ID).
			WithMeta("session_id", session.ID)
	}

	session.UpdatedAt = r.timeProvider.Now().UTC()

	return r.set(ctx, session)
}

// Delete removes a session
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return cferr.InvalidArgument("session ID is required")
	}

	// Fetch first to find the owner index entry
	session, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.ownerSessionsKey(session.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
