package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charforge/charforge/internal/domain/shared"
)

func newTestSession() *Session {
	return NewSession(&SessionConfig{
		ID:      "sess-1",
		OwnerID: "owner-1",
		Defaults: []shared.GrantRef{
			{Category: shared.CategoryLanguages, Name: "Common"},
		},
	})
}

func woodElfEffects() *SourceEffects {
	return &SourceEffects{
		Grants: []shared.GrantRef{
			{Category: shared.CategorySkills, Name: "Perception"},
			{Category: shared.CategoryLanguages, Name: "Elvish"},
		},
		Bonuses: []AbilityBonus{
			{Ability: shared.AttributeDexterity, Amount: 2},
			{Ability: shared.AttributeWisdom, Amount: 1},
		},
	}
}

func hillDwarfEffects() *SourceEffects {
	return &SourceEffects{
		Grants: []shared.GrantRef{
			{Category: shared.CategoryLanguages, Name: "Dwarvish"},
			{Category: shared.CategoryWeapons, Name: "Battleaxe"},
		},
		Bonuses: []AbilityBonus{
			{Ability: shared.AttributeConstitution, Amount: 2},
			{Ability: shared.AttributeWisdom, Amount: 1},
		},
		Choices: map[shared.ProficiencyCategory]*ChoiceSpec{
			shared.CategoryTools: {Count: 1, From: []string{"Smith's Tools", "Brewer's Supplies", "Mason's Tools"}},
		},
	}
}

func TestSessionSeedsDefaults(t *testing.T) {
	sess := newTestSession()

	assert.True(t, sess.Proficiencies.Has(shared.CategoryLanguages, "Common"))
	assert.Equal(t, []shared.Source{shared.SourceDefault}, sess.Proficiencies.SourcesOf(shared.CategoryLanguages, "Common"))
	assert.Equal(t, DefaultBaseScore, sess.BaseScores[shared.AttributeStrength])
	assert.Equal(t, SessionStatusDraft, sess.Status)
}

func TestSessionRaceSwapRetractsExactly(t *testing.T) {
	sess := newTestSession()

	sess.ApplyAxis(shared.AxisRace, shared.RaceSource("Wood Elf"), woodElfEffects())
	require.True(t, sess.Proficiencies.Has(shared.CategorySkills, "Perception"))
	require.Equal(t, 12, sess.AbilityTotal(shared.AttributeDexterity))

	sess.ApplyAxis(shared.AxisRace, shared.RaceSource("Hill Dwarf"), hillDwarfEffects())

	// Everything the elf granted is gone; the dwarf's effects are in.
	assert.False(t, sess.Proficiencies.Has(shared.CategorySkills, "Perception"))
	assert.False(t, sess.Proficiencies.Has(shared.CategoryLanguages, "Elvish"))
	assert.True(t, sess.Proficiencies.Has(shared.CategoryLanguages, "Dwarvish"))
	assert.Equal(t, 10, sess.AbilityTotal(shared.AttributeDexterity))
	assert.Equal(t, 12, sess.AbilityTotal(shared.AttributeConstitution))

	// The default language survives race churn.
	assert.True(t, sess.Proficiencies.Has(shared.CategoryLanguages, "Common"))

	source, ok := sess.AxisSource(shared.AxisRace)
	require.True(t, ok)
	assert.Equal(t, shared.RaceSource("Hill Dwarf"), source)
}

func TestSessionRaceSwapReconfiguresTracks(t *testing.T) {
	sess := newTestSession()

	sess.ApplyAxis(shared.AxisRace, shared.RaceSource("Hill Dwarf"), hillDwarfEffects())
	require.True(t, sess.Choices.ToggleSelection(shared.CategoryTools, shared.AxisRace, "Smith's Tools"))

	// Swapping to a race with no tool choice resets the track.
	sess.ApplyAxis(shared.AxisRace, shared.RaceSource("Wood Elf"), woodElfEffects())

	track := sess.Choices.Track(shared.CategoryTools, shared.AxisRace)
	assert.Equal(t, 0, track.Allowed)
	assert.Empty(t, track.Selected)
}

func TestSessionClearAxis(t *testing.T) {
	sess := newTestSession()

	sess.ApplyAxis(shared.AxisBackground, shared.BackgroundSource("Acolyte"), &SourceEffects{
		Grants: []shared.GrantRef{
			{Category: shared.CategorySkills, Name: "Insight"},
			{Category: shared.CategorySkills, Name: "Religion"},
		},
		Choices: map[shared.ProficiencyCategory]*ChoiceSpec{
			shared.CategoryLanguages: {Count: 2, From: []string{"Elvish", "Draconic", "Celestial"}},
		},
	})
	require.True(t, sess.Proficiencies.Has(shared.CategorySkills, "Insight"))

	sess.ClearAxis(shared.AxisBackground)

	assert.False(t, sess.Proficiencies.Has(shared.CategorySkills, "Insight"))
	assert.Equal(t, 0, sess.Choices.Track(shared.CategoryLanguages, shared.AxisBackground).Allowed)
	_, ok := sess.AxisSource(shared.AxisBackground)
	assert.False(t, ok)
}

func TestSessionFeats(t *testing.T) {
	sess := newTestSession()

	fx := &SourceEffects{
		Grants: []shared.GrantRef{
			{Category: shared.CategorySavingThrow, Name: "Constitution"},
		},
		Bonuses: []AbilityBonus{
			{Ability: shared.AttributeConstitution, Amount: 1},
		},
	}

	require.NoError(t, sess.AddFeat("Resilient", fx))
	assert.True(t, sess.Proficiencies.Has(shared.CategorySavingThrow, "Constitution"))
	assert.Equal(t, 11, sess.AbilityTotal(shared.AttributeConstitution))

	// Double-apply is rejected.
	assert.Error(t, sess.AddFeat("Resilient", fx))

	sess.RemoveFeat("Resilient")
	assert.False(t, sess.Proficiencies.Has(shared.CategorySavingThrow, "Constitution"))
	assert.Equal(t, 10, sess.AbilityTotal(shared.AttributeConstitution))
	assert.Empty(t, sess.Feats)

	// Removing an absent feat is a no-op.
	sess.RemoveFeat("Alert")
}

func TestSessionBaseScoreClamping(t *testing.T) {
	sess := newTestSession()

	sess.SetBaseScore(shared.AttributeStrength, 25)
	assert.Equal(t, BaseScoreMax, sess.BaseScores[shared.AttributeStrength])

	sess.SetBaseScore(shared.AttributeStrength, 1)
	assert.Equal(t, BaseScoreMin, sess.BaseScores[shared.AttributeStrength])

	sess.SetBaseScore(shared.AttributeStrength, 15)
	sess.IncrementBaseScore(shared.AttributeStrength, 2)
	assert.Equal(t, 17, sess.BaseScores[shared.AttributeStrength])
	sess.IncrementBaseScore(shared.AttributeStrength, 5)
	assert.Equal(t, BaseScoreMax, sess.BaseScores[shared.AttributeStrength])
}

func TestSessionBonusesNotClamped(t *testing.T) {
	sess := newTestSession()

	sess.SetBaseScore(shared.AttributeConstitution, 18)
	sess.Bonuses.AddBonus(shared.AttributeConstitution, 2, shared.RaceSource("Hill Dwarf"))

	// Bonuses may push the total past 18; only base edits clamp.
	assert.Equal(t, 20, sess.AbilityTotal(shared.AttributeConstitution))
}

func TestSessionFinalizeLocksSelections(t *testing.T) {
	sess := newTestSession()

	sess.ApplyAxis(shared.AxisClass, shared.ClassSource("Fighter"), &SourceEffects{
		Choices: map[shared.ProficiencyCategory]*ChoiceSpec{
			shared.CategorySkills: {Count: 2, From: []string{"Athletics", "Intimidation", "Survival"}},
		},
	})
	require.True(t, sess.Choices.ToggleSelection(shared.CategorySkills, shared.AxisClass, "Athletics"))
	require.True(t, sess.Choices.ToggleSelection(shared.CategorySkills, shared.AxisClass, "Survival"))

	require.NoError(t, sess.Finalize())

	assert.Equal(t, SessionStatusFinalized, sess.Status)
	assert.True(t, sess.Proficiencies.Has(shared.CategorySkills, "Athletics"))
	assert.Equal(t,
		[]shared.Source{shared.SourceOptionalSelection},
		sess.Proficiencies.SourcesOf(shared.CategorySkills, "Survival"))

	assert.Error(t, sess.Finalize())
}
