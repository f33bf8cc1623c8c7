package dnd5e

import (
	"testing"

	apiEntities "github.com/fadedpez/dnd5e-api/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charforge/charforge/internal/domain/shared"
)

// stubLookup serves proficiency records from a fixed table.
func stubLookup(table map[string]*apiEntities.Proficiency) proficiencyLookup {
	return func(key string) (*apiEntities.Proficiency, error) {
		if prof, ok := table[key]; ok {
			return prof, nil
		}
		return &apiEntities.Proficiency{Key: key, Name: key}, nil
	}
}

func TestConvertRace(t *testing.T) {
	lookup := stubLookup(map[string]*apiEntities.Proficiency{
		"skill-perception": {Key: "skill-perception", Name: "Skill: Perception", Type: apiEntities.ProficiencyTypeSkill},
		"battleaxes":       {Key: "battleaxes", Name: "Battleaxes", Type: apiEntities.ProficiencyTypeWeapon},
		"smiths-tools":     {Key: "smiths-tools", Name: "Smith's Tools", Type: apiEntities.ProficiencyTypeTool},
		"brewers-supplies": {Key: "brewers-supplies", Name: "Brewer's Supplies", Type: apiEntities.ProficiencyTypeTool},
	})

	race, err := convertRace(&apiEntities.Race{
		Key:   "hill-dwarf",
		Name:  "Hill Dwarf",
		Speed: 25,
		StartingProficiencies: []*apiEntities.ReferenceItem{
			{Key: "battleaxes", Name: "Battleaxes"},
			{Key: "skill-perception", Name: "Skill: Perception"},
		},
		StartingProficiencyOptions: &apiEntities.ChoiceOption{
			ChoiceCount: 1,
			ChoiceType:  "proficiencies",
			OptionList: &apiEntities.OptionList{
				Options: []apiEntities.Option{
					&apiEntities.ReferenceOption{Reference: &apiEntities.ReferenceItem{Key: "smiths-tools", Name: "Smith's Tools"}},
					&apiEntities.ReferenceOption{Reference: &apiEntities.ReferenceItem{Key: "brewers-supplies", Name: "Brewer's Supplies"}},
				},
			},
		},
		AbilityBonuses: []*apiEntities.AbilityBonus{
			{AbilityScore: &apiEntities.ReferenceItem{Key: "con"}, Bonus: 2},
			{AbilityScore: &apiEntities.ReferenceItem{Key: "wis"}, Bonus: 1},
		},
	}, lookup)
	require.NoError(t, err)

	assert.Equal(t, "Hill Dwarf", race.Name)
	assert.Contains(t, race.Grants, shared.GrantRef{Category: shared.CategoryWeapons, Name: "Battleaxes"})
	assert.Contains(t, race.Grants, shared.GrantRef{Category: shared.CategorySkills, Name: "Perception"})

	require.NotNil(t, race.Choices[shared.CategoryTools])
	assert.Equal(t, 1, race.Choices[shared.CategoryTools].Count)
	assert.Equal(t, []string{"Smith's Tools", "Brewer's Supplies"}, race.Choices[shared.CategoryTools].From)

	require.Len(t, race.AbilityBonuses, 2)
	assert.Equal(t, shared.AttributeConstitution, race.AbilityBonuses[0].Ability)
	assert.Equal(t, 2, race.AbilityBonuses[0].Amount)
}

func TestConvertClass(t *testing.T) {
	lookup := stubLookup(map[string]*apiEntities.Proficiency{
		"heavy-armor":        {Key: "heavy-armor", Name: "Heavy Armor", Type: apiEntities.ProficiencyTypeArmor},
		"saving-throw-str":   {Key: "saving-throw-str", Name: "Saving Throw: STR", Type: apiEntities.ProficiencyTypeSavingThrow},
		"skill-athletics":    {Key: "skill-athletics", Name: "Skill: Athletics", Type: apiEntities.ProficiencyTypeSkill},
		"skill-intimidation": {Key: "skill-intimidation", Name: "Skill: Intimidation", Type: apiEntities.ProficiencyTypeSkill},
	})

	class, err := convertClass(&apiEntities.Class{
		Key:    "fighter",
		Name:   "Fighter",
		HitDie: 10,
		Proficiencies: []*apiEntities.ReferenceItem{
			{Key: "heavy-armor", Name: "Heavy Armor"},
			{Key: "saving-throw-str", Name: "Saving Throw: STR"},
		},
		ProficiencyChoices: []*apiEntities.ChoiceOption{
			{
				ChoiceCount: 2,
				ChoiceType:  "proficiencies",
				OptionList: &apiEntities.OptionList{
					Options: []apiEntities.Option{
						&apiEntities.ReferenceOption{Reference: &apiEntities.ReferenceItem{Key: "skill-athletics"}},
						&apiEntities.ReferenceOption{Reference: &apiEntities.ReferenceItem{Key: "skill-intimidation"}},
					},
				},
			},
		},
	}, lookup)
	require.NoError(t, err)

	assert.Equal(t, 10, class.HitDie)
	assert.Contains(t, class.Grants, shared.GrantRef{Category: shared.CategoryArmor, Name: "Heavy Armor"})
	assert.Contains(t, class.Grants, shared.GrantRef{Category: shared.CategorySavingThrow, Name: "STR"})

	require.NotNil(t, class.Choices[shared.CategorySkills])
	assert.Equal(t, 2, class.Choices[shared.CategorySkills].Count)
	assert.Equal(t, []string{"Athletics", "Intimidation"}, class.Choices[shared.CategorySkills].From)
}

func TestConvertChoicesSkipsNestedOptions(t *testing.T) {
	lookup := stubLookup(map[string]*apiEntities.Proficiency{
		"skill-stealth": {Key: "skill-stealth", Name: "Skill: Stealth", Type: apiEntities.ProficiencyTypeSkill},
	})

	choices, err := convertChoices([]*apiEntities.ChoiceOption{
		{
			ChoiceCount: 1,
			OptionList: &apiEntities.OptionList{
				Options: []apiEntities.Option{
					&apiEntities.ReferenceOption{Reference: &apiEntities.ReferenceItem{Key: "skill-stealth"}},
					// Nested choice blocks carry no flat pool.
					&apiEntities.ChoiceOption{ChoiceCount: 1},
				},
			},
		},
	}, lookup)
	require.NoError(t, err)

	require.NotNil(t, choices[shared.CategorySkills])
	assert.Equal(t, []string{"Stealth"}, choices[shared.CategorySkills].From)
}

func TestConvertAbilityBonusesSkipsUnknownKeys(t *testing.T) {
	bonuses := convertAbilityBonuses([]*apiEntities.AbilityBonus{
		{AbilityScore: &apiEntities.ReferenceItem{Key: "dex"}, Bonus: 2},
		{AbilityScore: &apiEntities.ReferenceItem{Key: "honor"}, Bonus: 1},
		nil,
	})

	require.Len(t, bonuses, 1)
	assert.Equal(t, shared.AttributeDexterity, bonuses[0].Ability)
}
