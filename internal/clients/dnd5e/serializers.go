package dnd5e

import (
	"log"
	"strings"

	apiEntities "github.com/fadedpez/dnd5e-api/entities"

	"github.com/charforge/charforge/internal/domain/character"
	"github.com/charforge/charforge/internal/domain/rulebook"
	"github.com/charforge/charforge/internal/domain/shared"
	cferr "github.com/charforge/charforge/internal/errors"
)

// proficiencyLookup resolves a proficiency key to its full API record,
// which carries the type needed to place it in a category.
type proficiencyLookup func(key string) (*apiEntities.Proficiency, error)

func convertRace(input *apiEntities.Race, lookup proficiencyLookup) (*rulebook.Race, error) {
	grants, err := convertProficiencyRefs(input.StartingProficiencies, lookup)
	if err != nil {
		return nil, err
	}

	choices, err := convertChoices([]*apiEntities.ChoiceOption{input.StartingProficiencyOptions}, lookup)
	if err != nil {
		return nil, err
	}

	return &rulebook.Race{
		Key:            input.Key,
		Name:           input.Name,
		Speed:          input.Speed,
		Grants:         grants,
		AbilityBonuses: convertAbilityBonuses(input.AbilityBonuses),
		Choices:        choices,
	}, nil
}

func convertClass(input *apiEntities.Class, lookup proficiencyLookup) (*rulebook.Class, error) {
	grants, err := convertProficiencyRefs(input.Proficiencies, lookup)
	if err != nil {
		return nil, err
	}

	choices, err := convertChoices(input.ProficiencyChoices, lookup)
	if err != nil {
		return nil, err
	}

	return &rulebook.Class{
		Key:     input.Key,
		Name:    input.Name,
		HitDie:  input.HitDie,
		Grants:  grants,
		Choices: choices,
	}, nil
}

// convertProficiencyRefs resolves reference items into categorized grants.
// References whose type has no category equivalent are skipped.
func convertProficiencyRefs(refs []*apiEntities.ReferenceItem, lookup proficiencyLookup) ([]shared.GrantRef, error) {
	var out []shared.GrantRef
	for _, ref := range refs {
		if ref == nil || ref.Key == "" {
			continue
		}

		prof, err := lookup(ref.Key)
		if err != nil {
			return nil, cferr.Wrapf(err, "resolving proficiency '%s'", ref.Key).WithMeta("proficiency_key", ref.Key)
		}

		category := proficiencyTypeToCategory(prof.Type)
		if category == shared.CategoryUnknown {
			log.Printf("Skipping proficiency %q: unmapped type %q", ref.Key, prof.Type)
			continue
		}

		out = append(out, shared.GrantRef{
			Category: category,
			Name:     displayName(prof.Name),
		})
	}
	return out, nil
}

// convertChoices turns API choice blocks into per-category choice specs.
// Options are categorized by resolving their references; nested choice
// options have no flat pool and are skipped, matching how the rest of the
// pipeline treats "choose one artisan's tools" placeholders.
func convertChoices(apiChoices []*apiEntities.ChoiceOption, lookup proficiencyLookup) (map[shared.ProficiencyCategory]*character.ChoiceSpec, error) {
	out := make(map[shared.ProficiencyCategory]*character.ChoiceSpec)

	for _, apiChoice := range apiChoices {
		if apiChoice == nil || apiChoice.OptionList == nil {
			continue
		}

		pools := make(map[shared.ProficiencyCategory][]string)
		for _, option := range apiChoice.OptionList.Options {
			ref, ok := option.(*apiEntities.ReferenceOption)
			if !ok || ref.Reference == nil {
				continue
			}

			prof, err := lookup(ref.Reference.Key)
			if err != nil {
				return nil, cferr.Wrapf(err, "resolving choice option '%s'", ref.Reference.Key).WithMeta("proficiency_key", ref.Reference.Key)
			}

			category := proficiencyTypeToCategory(prof.Type)
			if category == shared.CategoryUnknown {
				log.Printf("Skipping choice option %q: unmapped type %q", ref.Reference.Key, prof.Type)
				continue
			}

			pools[category] = append(pools[category], displayName(prof.Name))
		}

		for category, pool := range pools {
			if existing, ok := out[category]; ok {
				existing.Count += apiChoice.ChoiceCount
				existing.From = append(existing.From, pool...)
				continue
			}
			out[category] = &character.ChoiceSpec{
				Count: apiChoice.ChoiceCount,
				From:  pool,
			}
		}
	}

	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func convertAbilityBonuses(input []*apiEntities.AbilityBonus) []character.AbilityBonus {
	var out []character.AbilityBonus
	for _, bonus := range input {
		if bonus == nil || bonus.AbilityScore == nil {
			continue
		}

		ability := abilityKeyToAttribute(bonus.AbilityScore.Key)
		if ability == shared.AttributeNone {
			log.Printf("Skipping ability bonus: unknown ability key %q", bonus.AbilityScore.Key)
			continue
		}

		out = append(out, character.AbilityBonus{
			Ability: ability,
			Amount:  bonus.Bonus,
		})
	}
	return out
}

func abilityKeyToAttribute(key string) shared.Attribute {
	switch key {
	case "str":
		return shared.AttributeStrength
	case "dex":
		return shared.AttributeDexterity
	case "con":
		return shared.AttributeConstitution
	case "int":
		return shared.AttributeIntelligence
	case "wis":
		return shared.AttributeWisdom
	case "cha":
		return shared.AttributeCharisma
	default:
		return shared.AttributeNone
	}
}

func proficiencyTypeToCategory(input apiEntities.ProficiencyType) shared.ProficiencyCategory {
	switch input {
	case apiEntities.ProficiencyTypeArmor:
		return shared.CategoryArmor
	case apiEntities.ProficiencyTypeWeapon:
		return shared.CategoryWeapons
	case apiEntities.ProficiencyTypeTool, apiEntities.ProficiencyTypeInstrument:
		return shared.CategoryTools
	case apiEntities.ProficiencyTypeSavingThrow:
		return shared.CategorySavingThrow
	case apiEntities.ProficiencyTypeSkill:
		return shared.CategorySkills
	default:
		return shared.CategoryUnknown
	}
}

// displayName strips the API's "Skill: " and "Saving Throw: " prefixes so
// ledger names read the way a sheet displays them.
func displayName(name string) string {
	name = strings.TrimPrefix(name, "Skill: ")
	name = strings.TrimPrefix(name, "Saving Throw: ")
	return name
}
