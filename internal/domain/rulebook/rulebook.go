// Package rulebook holds normalized rules content: the races, classes,
// backgrounds, and feats a build session can apply. Content arrives here
// already parsed; free-text extraction is a loader concern.
package rulebook

import (
	"github.com/charforge/charforge/internal/domain/character"
	"github.com/charforge/charforge/internal/domain/shared"
)

// Race is one playable race with its fixed effects and optional choices.
type Race struct {
	Key            string                                              `json:"key"`
	Name           string                                              `json:"name"`
	Speed          int                                                 `json:"speed"`
	Grants         []shared.GrantRef                                   `json:"grants,omitempty"`
	AbilityBonuses []character.AbilityBonus                            `json:"ability_bonuses,omitempty"`
	Choices        map[shared.ProficiencyCategory]*character.ChoiceSpec `json:"choices,omitempty"`
}

// Source returns the race's retraction key, e.g. "Hill Dwarf race".
func (r *Race) Source() shared.Source {
	return shared.RaceSource(r.Name)
}

// Effects returns everything the race contributes to a build.
func (r *Race) Effects() *character.SourceEffects {
	return &character.SourceEffects{
		Grants:  r.Grants,
		Bonuses: r.AbilityBonuses,
		Choices: r.Choices,
	}
}

// Class is one character class with its fixed proficiencies and choices.
type Class struct {
	Key     string                                               `json:"key"`
	Name    string                                               `json:"name"`
	HitDie  int                                                  `json:"hit_die"`
	Grants  []shared.GrantRef                                    `json:"grants,omitempty"`
	Choices map[shared.ProficiencyCategory]*character.ChoiceSpec `json:"choices,omitempty"`
}

// Source returns the class's retraction key, e.g. "Fighter class".
func (c *Class) Source() shared.Source {
	return shared.ClassSource(c.Name)
}

// Effects returns everything the class contributes to a build.
func (c *Class) Effects() *character.SourceEffects {
	return &character.SourceEffects{
		Grants:  c.Grants,
		Choices: c.Choices,
	}
}

// Background is one character background.
type Background struct {
	Key     string                                               `json:"key"`
	Name    string                                               `json:"name"`
	Grants  []shared.GrantRef                                    `json:"grants,omitempty"`
	Choices map[shared.ProficiencyCategory]*character.ChoiceSpec `json:"choices,omitempty"`
}

// Source returns the background's retraction key, e.g. "Acolyte background".
func (b *Background) Source() shared.Source {
	return shared.BackgroundSource(b.Name)
}

// Effects returns everything the background contributes to a build.
func (b *Background) Effects() *character.SourceEffects {
	return &character.SourceEffects{
		Grants:  b.Grants,
		Choices: b.Choices,
	}
}

// Feat is one optional feat. Feats grant fixed effects only; they do not
// open choice tracks.
type Feat struct {
	Key            string                   `json:"key"`
	Name           string                   `json:"name"`
	Description    string                   `json:"description,omitempty"`
	Grants         []shared.GrantRef        `json:"grants,omitempty"`
	AbilityBonuses []character.AbilityBonus `json:"ability_bonuses,omitempty"`
}

// Source returns the feat's retraction key, e.g. "Feat:Alert".
func (f *Feat) Source() shared.Source {
	return shared.FeatSource(f.Name)
}

// Effects returns everything the feat contributes to a build.
func (f *Feat) Effects() *character.SourceEffects {
	return &character.SourceEffects{
		Grants:  f.Grants,
		Bonuses: f.AbilityBonuses,
	}
}

// Defaults is the ruleset's seeded state for a fresh character: the grants
// every build starts with, recorded under the Default source. Which grants
// are seeded is ruleset configuration, not code.
type Defaults struct {
	Grants []shared.GrantRef `yaml:"grants" json:"grants"`
}
