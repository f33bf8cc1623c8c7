package rules

//go:generate mockgen -destination=mock/mock_source.go -package=mockrules -source=source.go

import (
	"context"

	"github.com/charforge/charforge/internal/domain/rulebook"
)

// Source serves normalized rules content to the build service. Implemented
// by the JSON file loader and the remote dnd5e API client.
type Source interface {
	GetRace(ctx context.Context, key string) (*rulebook.Race, error)
	ListRaces(ctx context.Context) ([]*rulebook.Race, error)

	GetClass(ctx context.Context, key string) (*rulebook.Class, error)
	ListClasses(ctx context.Context) ([]*rulebook.Class, error)

	GetBackground(ctx context.Context, key string) (*rulebook.Background, error)
	ListBackgrounds(ctx context.Context) ([]*rulebook.Background, error)

	GetFeat(ctx context.Context, key string) (*rulebook.Feat, error)
	ListFeats(ctx context.Context) ([]*rulebook.Feat, error)
}
