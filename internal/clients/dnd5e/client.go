// Package dnd5e adapts the dnd5eapi.co client into a rules source. The
// remote API serves races and classes; backgrounds and feats must come
// from a local ruleset directory.
package dnd5e

import (
	"context"
	"net/http"
	"sync"

	apiEntities "github.com/fadedpez/dnd5e-api/entities"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"

	"github.com/charforge/charforge/internal/domain/rulebook"
	cferr "github.com/charforge/charforge/internal/errors"
)

// Client serves races and classes from the remote D&D 5e API.
type Client struct {
	api dnd5e.Interface

	mu    sync.Mutex
	profs map[string]*apiEntities.Proficiency
}

// Config holds configuration for the API client.
type Config struct {
	HttpClient *http.Client
}

// New creates a rules source backed by the dnd5eapi.co API.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, cferr.InvalidArgument("cfg is required")
	}

	api, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client: cfg.HttpClient,
	})
	if err != nil {
		return nil, cferr.Wrap(err, "creating dnd5e API client")
	}

	return &Client{
		api:   api,
		profs: make(map[string]*apiEntities.Proficiency),
	}, nil
}

// GetRace fetches a race and converts it into rulebook form.
func (c *Client) GetRace(ctx context.Context, key string) (*rulebook.Race, error) {
	apiRace, err := c.api.GetRace(key)
	if err != nil {
		return nil, cferr.Wrapf(err, "fetching race '%s'", key).WithMeta("race_key", key)
	}

	return convertRace(apiRace, c.getProficiency)
}

// ListRaces fetches every race the API serves.
func (c *Client) ListRaces(ctx context.Context) ([]*rulebook.Race, error) {
	refs, err := c.api.ListRaces()
	if err != nil {
		return nil, cferr.Wrap(err, "listing races")
	}

	out := make([]*rulebook.Race, 0, len(refs))
	for _, ref := range refs {
		race, err := c.GetRace(ctx, ref.Key)
		if err != nil {
			return nil, err
		}
		out = append(out, race)
	}

	return out, nil
}

// GetClass fetches a class and converts it into rulebook form.
func (c *Client) GetClass(ctx context.Context, key string) (*rulebook.Class, error) {
	apiClass, err := c.api.GetClass(key)
	if err != nil {
		return nil, cferr.Wrapf(err, "fetching class '%s'", key).WithMeta("class_key", key)
	}

	return convertClass(apiClass, c.getProficiency)
}

// ListClasses fetches every class the API serves.
func (c *Client) ListClasses(ctx context.Context) ([]*rulebook.Class, error) {
	refs, err := c.api.ListClasses()
	if err != nil {
		return nil, cferr.Wrap(err, "listing classes")
	}

	out := make([]*rulebook.Class, 0, len(refs))
	for _, ref := range refs {
		class, err := c.GetClass(ctx, ref.Key)
		if err != nil {
			return nil, err
		}
		out = append(out, class)
	}

	return out, nil
}

// GetBackground is not served by the remote API.
func (c *Client) GetBackground(ctx context.Context, key string) (*rulebook.Background, error) {
	return nil, cferr.Unimplemented("the dnd5e API does not serve backgrounds; use a local ruleset directory")
}

// ListBackgrounds is not served by the remote API.
func (c *Client) ListBackgrounds(ctx context.Context) ([]*rulebook.Background, error) {
	return nil, cferr.Unimplemented("the dnd5e API does not serve backgrounds; use a local ruleset directory")
}

// GetFeat is not served by the remote API.
func (c *Client) GetFeat(ctx context.Context, key string) (*rulebook.Feat, error) {
	return nil, cferr.Unimplemented("the dnd5e API does not serve feats; use a local ruleset directory")
}

// ListFeats is not served by the remote API.
func (c *Client) ListFeats(ctx context.Context) ([]*rulebook.Feat, error) {
	return nil, cferr.Unimplemented("the dnd5e API does not serve feats; use a local ruleset directory")
}

// getProficiency fetches a proficiency by key, caching results. Converting
// a single class touches a dozen proficiency references; there's no reason
// to fetch any of them twice.
func (c *Client) getProficiency(key string) (*apiEntities.Proficiency, error) {
	c.mu.Lock()
	cached, ok := c.profs[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	prof, err := c.api.GetProficiency(key)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.profs[key] = prof
	c.mu.Unlock()

	return prof, nil
}
