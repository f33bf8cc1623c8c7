package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charforge/charforge/internal/domain/shared"
)

func TestProficiencyLedgerGrantIsIdempotent(t *testing.T) {
	ledger := NewProficiencyLedger()

	ledger.Grant(shared.CategorySkills, "Perception", "Wood Elf race")
	ledger.Grant(shared.CategorySkills, "Perception", "Wood Elf race")

	assert.Equal(t, []string{"Perception"}, ledger.ListGranted(shared.CategorySkills))
	assert.Equal(t, []shared.Source{"Wood Elf race"}, ledger.SourcesOf(shared.CategorySkills, "Perception"))
	assert.Equal(t, 1, ledger.Count())
}

func TestProficiencyLedgerCleanRetraction(t *testing.T) {
	ledger := NewProficiencyLedger()

	ledger.Grant(shared.CategorySkills, "Perception", "Wood Elf race")
	ledger.Grant(shared.CategorySkills, "Perception", "Ranger class")
	ledger.Grant(shared.CategorySkills, "Survival", "Ranger class")
	ledger.Grant(shared.CategoryLanguages, "Elvish", "Wood Elf race")

	ledger.RevokeBySource("Wood Elf race")

	// Perception is still backed by the class; Elvish had only the race.
	assert.True(t, ledger.Has(shared.CategorySkills, "Perception"))
	assert.Equal(t, []shared.Source{"Ranger class"}, ledger.SourcesOf(shared.CategorySkills, "Perception"))
	assert.False(t, ledger.Has(shared.CategoryLanguages, "Elvish"))

	ledger.RevokeBySource("Ranger class")

	assert.False(t, ledger.Has(shared.CategorySkills, "Perception"))
	assert.False(t, ledger.Has(shared.CategorySkills, "Survival"))
	assert.Equal(t, 0, ledger.Count())
}

func TestProficiencyLedgerRevokeSingle(t *testing.T) {
	ledger := NewProficiencyLedger()

	ledger.Grant(shared.CategoryTools, "Thieves' Tools", "Criminal background")
	ledger.Grant(shared.CategoryTools, "Thieves' Tools", "Rogue class")

	ledger.Revoke(shared.CategoryTools, "Thieves' Tools", "Criminal background")
	assert.True(t, ledger.Has(shared.CategoryTools, "Thieves' Tools"))

	ledger.Revoke(shared.CategoryTools, "Thieves' Tools", "Rogue class")
	assert.False(t, ledger.Has(shared.CategoryTools, "Thieves' Tools"))

	// Revoking what isn't there is a no-op.
	ledger.Revoke(shared.CategoryTools, "Thieves' Tools", "Rogue class")
	ledger.Revoke(shared.CategoryTools, "Smith's Tools", "Rogue class")
	assert.Equal(t, 0, ledger.Count())
}

func TestProficiencyLedgerListGrantedIsSorted(t *testing.T) {
	ledger := NewProficiencyLedger()

	ledger.Grant(shared.CategorySkills, "Survival", "Ranger class")
	ledger.Grant(shared.CategorySkills, "Athletics", "Ranger class")
	ledger.Grant(shared.CategorySkills, "Perception", "Wood Elf race")

	assert.Equal(t, []string{"Athletics", "Perception", "Survival"}, ledger.ListGranted(shared.CategorySkills))
	assert.Nil(t, ledger.ListGranted(shared.CategoryArmor))
}

func TestProficiencyLedgerUnknownCategoryPanics(t *testing.T) {
	ledger := NewProficiencyLedger()

	assert.Panics(t, func() {
		ledger.Grant("spells", "Fireball", "Wizard class")
	})
	assert.Panics(t, func() {
		ledger.Has("spells", "Fireball")
	})
}

func TestProficiencyLedgerSnapshotRoundTrip(t *testing.T) {
	ledger := NewProficiencyLedger()

	ledger.Grant(shared.CategoryLanguages, "Common", shared.SourceDefault)
	ledger.Grant(shared.CategorySkills, "Perception", "Wood Elf race")
	ledger.Grant(shared.CategorySkills, "Perception", "Ranger class")

	restored, err := RestoreProficiencyLedger(ledger.Snapshot())
	require.NoError(t, err)

	for _, category := range shared.Categories {
		assert.Equal(t, ledger.ListGranted(category), restored.ListGranted(category))
	}
	assert.Equal(t,
		[]shared.Source{"Ranger class", "Wood Elf race"},
		restored.SourcesOf(shared.CategorySkills, "Perception"))
}

func TestRestoreProficiencyLedgerRejectsBadSnapshots(t *testing.T) {
	_, err := RestoreProficiencyLedger(map[shared.ProficiencyCategory]map[string][]shared.Source{
		"spells": {"Fireball": {"Wizard class"}},
	})
	require.Error(t, err)

	_, err = RestoreProficiencyLedger(map[shared.ProficiencyCategory]map[string][]shared.Source{
		shared.CategorySkills: {"Perception": {}},
	})
	require.Error(t, err)
}
