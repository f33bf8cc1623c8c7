package rules

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/charforge/charforge/internal/domain/character"
	"github.com/charforge/charforge/internal/domain/rulebook"
	"github.com/charforge/charforge/internal/domain/shared"
	cferr "github.com/charforge/charforge/internal/errors"
)

// FileSource serves rules content from a directory of normalized JSON
// files laid out as races/*.json, classes/*.json, backgrounds/*.json and
// feats/*.json. All files are read and validated up front; lookups after
// construction never touch the filesystem, so ledger mutation never
// overlaps with loading.
type FileSource struct {
	races       map[string]*rulebook.Race
	classes     map[string]*rulebook.Class
	backgrounds map[string]*rulebook.Background
	feats       map[string]*rulebook.Feat
}

// abilityBonusSpec is the on-disk bonus shape. Ability may be "all", which
// expands into six per-ability entries at load time so the ledgers never
// see a sentinel.
type abilityBonusSpec struct {
	Ability string `json:"ability"`
	Amount  int    `json:"amount"`
}

type raceFile struct {
	Key            string                                                `json:"key"`
	Name           string                                                `json:"name"`
	Speed          int                                                   `json:"speed"`
	Grants         []shared.GrantRef                                     `json:"proficiencies"`
	AbilityBonuses []abilityBonusSpec                                    `json:"ability_bonuses"`
	Choices        map[shared.ProficiencyCategory]*character.ChoiceSpec `json:"choices"`
}

type classFile struct {
	Key     string                                                `json:"key"`
	Name    string                                                `json:"name"`
	HitDie  int                                                   `json:"hit_die"`
	Grants  []shared.GrantRef                                     `json:"proficiencies"`
	Choices map[shared.ProficiencyCategory]*character.ChoiceSpec `json:"choices"`
}

type backgroundFile struct {
	Key     string                                                `json:"key"`
	Name    string                                                `json:"name"`
	Grants  []shared.GrantRef                                     `json:"proficiencies"`
	Choices map[shared.ProficiencyCategory]*character.ChoiceSpec `json:"choices"`
}

type featFile struct {
	Key            string             `json:"key"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Grants         []shared.GrantRef  `json:"proficiencies"`
	AbilityBonuses []abilityBonusSpec `json:"ability_bonuses"`
}

// NewFileSource loads every rules file beneath dir. The four content kinds
// load concurrently; nothing is served until every file has parsed and
// validated.
func NewFileSource(ctx context.Context, dir string) (*FileSource, error) {
	if dir == "" {
		return nil, cferr.InvalidArgument("rules directory is required")
	}

	src := &FileSource{
		races:       make(map[string]*rulebook.Race),
		classes:     make(map[string]*rulebook.Class),
		backgrounds: make(map[string]*rulebook.Background),
		feats:       make(map[string]*rulebook.Feat),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return src.loadRaces(ctx, filepath.Join(dir, "races")) })
	g.Go(func() error { return src.loadClasses(ctx, filepath.Join(dir, "classes")) })
	g.Go(func() error { return src.loadBackgrounds(ctx, filepath.Join(dir, "backgrounds")) })
	g.Go(func() error { return src.loadFeats(ctx, filepath.Join(dir, "feats")) })

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return src, nil
}

// GetRace returns the race with the given key.
func (s *FileSource) GetRace(ctx context.Context, key string) (*rulebook.Race, error) {
	race, ok := s.races[key]
	if !ok {
		return nil, cferr.NotFoundf("race '%s' not found", key).WithMeta("race_key", key)
	}
	return race, nil
}

// ListRaces returns every race, sorted by key.
func (s *FileSource) ListRaces(ctx context.Context) ([]*rulebook.Race, error) {
	out := make([]*rulebook.Race, 0, len(s.races))
	for _, race := range s.races {
		out = append(out, race)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// GetClass returns the class with the given key.
func (s *FileSource) GetClass(ctx context.Context, key string) (*rulebook.Class, error) {
	class, ok := s.classes[key]
	if !ok {
		return nil, cferr.NotFoundf("class '%s' not found", key).WithMeta("class_key", key)
	}
	return class, nil
}

// ListClasses returns every class, sorted by key.
func (s *FileSource) ListClasses(ctx context.Context) ([]*rulebook.Class, error) {
	out := make([]*rulebook.Class, 0, len(s.classes))
	for _, class := range s.classes {
		out = append(out, class)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// GetBackground returns the background with the given key.
func (s *FileSource) GetBackground(ctx context.Context, key string) (*rulebook.Background, error) {
	background, ok := s.backgrounds[key]
	if !ok {
		return nil, cferr.NotFoundf("background '%s' not found", key).WithMeta("background_key", key)
	}
	return background, nil
}

// ListBackgrounds returns every background, sorted by key.
func (s *FileSource) ListBackgrounds(ctx context.Context) ([]*rulebook.Background, error) {
	out := make([]*rulebook.Background, 0, len(s.backgrounds))
	for _, background := range s.backgrounds {
		out = append(out, background)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// GetFeat returns the feat with the given key.
func (s *FileSource) GetFeat(ctx context.Context, key string) (*rulebook.Feat, error) {
	feat, ok := s.feats[key]
	if !ok {
		return nil, cferr.NotFoundf("feat '%s' not found", key).WithMeta("feat_key", key)
	}
	return feat, nil
}

// ListFeats returns every feat, sorted by key.
func (s *FileSource) ListFeats(ctx context.Context) ([]*rulebook.Feat, error) {
	out := make([]*rulebook.Feat, 0, len(s.feats))
	for _, feat := range s.feats {
		out = append(out, feat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *FileSource) loadRaces(ctx context.Context, dir string) error {
	return eachJSONFile(ctx, dir, func(path string, data []byte) error {
		var file raceFile
		if err := json.Unmarshal(data, &file); err != nil {
			return cferr.Wrapf(err, "parsing race file %s", path)
		}
		if err := validateContent(path, file.Key, file.Name, file.Grants, file.Choices); err != nil {
			return err
		}
		bonuses, err := expandBonuses(path, file.AbilityBonuses)
		if err != nil {
			return err
		}
		s.races[file.Key] = &rulebook.Race{
			Key:            file.Key,
			Name:           file.Name,
			Speed:          file.Speed,
			Grants:         file.Grants,
			AbilityBonuses: bonuses,
			Choices:        file.Choices,
		}
		return nil
	})
}

func (s *FileSource) loadClasses(ctx context.Context, dir string) error {
	return eachJSONFile(ctx, dir, func(path string, data []byte) error {
		var file classFile
		if err := json.Unmarshal(data, &file); err != nil {
			return cferr.Wrapf(err, "parsing class file %s", path)
		}
		if err := validateContent(path, file.Key, file.Name, file.Grants, file.Choices); err != nil {
			return err
		}
		s.classes[file.Key] = &rulebook.Class{
			Key:     file.Key,
			Name:    file.Name,
			HitDie:  file.HitDie,
			Grants:  file.Grants,
			Choices: file.Choices,
		}
		return nil
	})
}

func (s *FileSource) loadBackgrounds(ctx context.Context, dir string) error {
	return eachJSONFile(ctx, dir, func(path string, data []byte) error {
		var file backgroundFile
		if err := json.Unmarshal(data, &file); err != nil {
			return cferr.Wrapf(err, "parsing background file %s", path)
		}
		if err := validateContent(path, file.Key, file.Name, file.Grants, file.Choices); err != nil {
			return err
		}
		s.backgrounds[file.Key] = &rulebook.Background{
			Key:     file.Key,
			Name:    file.Name,
			Grants:  file.Grants,
			Choices: file.Choices,
		}
		return nil
	})
}

func (s *FileSource) loadFeats(ctx context.Context, dir string) error {
	return eachJSONFile(ctx, dir, func(path string, data []byte) error {
		var file featFile
		if err := json.Unmarshal(data, &file); err != nil {
			return cferr.Wrapf(err, "parsing feat file %s", path)
		}
		if err := validateContent(path, file.Key, file.Name, file.Grants, nil); err != nil {
			return err
		}
		bonuses, err := expandBonuses(path, file.AbilityBonuses)
		if err != nil {
			return err
		}
		s.feats[file.Key] = &rulebook.Feat{
			Key:            file.Key,
			Name:           file.Name,
			Description:    file.Description,
			Grants:         file.Grants,
			AbilityBonuses: bonuses,
		}
		return nil
	})
}

// eachJSONFile calls fn for each *.json file in dir. A missing directory
// is fine; a ruleset need not ship every content kind.
func eachJSONFile(ctx context.Context, dir string, fn func(path string, data []byte) error) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return cferr.Wrapf(err, "reading rules directory %s", dir)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return cferr.Wrapf(err, "reading rules file %s", path)
		}
		if err := fn(path, data); err != nil {
			return err
		}
	}

	return nil
}

// validateContent checks the parts every content kind shares. Bad content
// fails the whole load; a half-validated ruleset is worse than none.
func validateContent(path, key, name string, grants []shared.GrantRef, choices map[shared.ProficiencyCategory]*character.ChoiceSpec) error {
	if key == "" {
		return cferr.Validationf("%s: missing key", path)
	}
	if name == "" {
		return cferr.Validationf("%s: missing name", path).WithMeta("key", key)
	}

	for _, grant := range grants {
		if !grant.Category.IsValid() {
			return cferr.Validationf("%s: unknown proficiency category %q", path, grant.Category).WithMeta("key", key)
		}
		if grant.Name == "" {
			return cferr.Validationf("%s: proficiency grant with empty name", path).WithMeta("key", key)
		}
	}

	for category, choice := range choices {
		if !category.IsValid() {
			return cferr.Validationf("%s: unknown choice category %q", path, category).WithMeta("key", key)
		}
		if choice == nil {
			return cferr.Validationf("%s: null choice for category %q", path, category).WithMeta("key", key)
		}
		if choice.Count < 0 {
			return cferr.Validationf("%s: negative choice count for category %q", path, category).WithMeta("key", key)
		}
	}

	return nil
}

// expandBonuses converts on-disk bonus specs into ledger entries, expanding
// the "all" shorthand into one entry per ability.
func expandBonuses(path string, specs []abilityBonusSpec) ([]character.AbilityBonus, error) {
	var out []character.AbilityBonus
	for _, spec := range specs {
		if spec.Ability == "all" {
			for _, ability := range shared.Attributes {
				out = append(out, character.AbilityBonus{Ability: ability, Amount: spec.Amount})
			}
			continue
		}

		ability := shared.Attribute(spec.Ability)
		if !ability.IsValid() {
			return nil, cferr.Validationf("%s: unknown ability %q in bonus", path, spec.Ability)
		}
		out = append(out, character.AbilityBonus{Ability: ability, Amount: spec.Amount})
	}
	return out, nil
}
