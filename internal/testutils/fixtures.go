package testutils

import (
	"github.com/charforge/charforge/internal/domain/character"
	"github.com/charforge/charforge/internal/domain/shared"
)

// CreateTestSession builds a draft session with a race applied so the
// ledgers and tracks carry real state.
func CreateTestSession(id, ownerID, name string) *character.Session {
	sess := character.NewSession(&character.SessionConfig{
		ID:       id,
		OwnerID:  ownerID,
		Defaults: []shared.GrantRef{{Category: shared.CategoryLanguages, Name: "Common"}},
	})
	sess.Name = name
	sess.ApplyAxis(shared.AxisRace, shared.RaceSource("Half-Elf"), &character.SourceEffects{
		Grants: []shared.GrantRef{{Category: shared.CategoryLanguages, Name: "Elvish"}},
		Bonuses: []character.AbilityBonus{
			{Ability: shared.AttributeCharisma, Amount: 2, Source: shared.RaceSource("Half-Elf")},
		},
		Choices: map[shared.ProficiencyCategory]*character.ChoiceSpec{
			shared.CategorySkills: {Count: 2, From: []string{"Perception", "Persuasion", "Stealth"}},
		},
	})
	return sess
}
