package rules

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charforge/charforge/internal/domain/shared"
	cferr "github.com/charforge/charforge/internal/errors"
)

func writeRulesFile(t *testing.T, dir, kind, name, content string) {
	t.Helper()
	kindDir := filepath.Join(dir, kind)
	require.NoError(t, os.MkdirAll(kindDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(kindDir, name), []byte(content), 0o644))
}

func TestFileSourceLoadsContent(t *testing.T) {
	dir := t.TempDir()

	writeRulesFile(t, dir, "races", "hill-dwarf.json", `{
		"key": "hill-dwarf",
		"name": "Hill Dwarf",
		"speed": 25,
		"proficiencies": [
			{"category": "weapons", "name": "Battleaxe"},
			{"category": "languages", "name": "Dwarvish"}
		],
		"ability_bonuses": [
			{"ability": "constitution", "amount": 2},
			{"ability": "wisdom", "amount": 1}
		],
		"choices": {
			"tools": {"count": 1, "from": ["Smith's Tools", "Brewer's Supplies", "Mason's Tools"]}
		}
	}`)

	writeRulesFile(t, dir, "classes", "fighter.json", `{
		"key": "fighter",
		"name": "Fighter",
		"hit_die": 10,
		"proficiencies": [
			{"category": "armor", "name": "Heavy Armor"},
			{"category": "saving-throws", "name": "Strength"}
		],
		"choices": {
			"skills": {"count": 2, "from": ["Athletics", "Intimidation", "Survival"]}
		}
	}`)

	writeRulesFile(t, dir, "backgrounds", "acolyte.json", `{
		"key": "acolyte",
		"name": "Acolyte",
		"proficiencies": [
			{"category": "skills", "name": "Insight"},
			{"category": "skills", "name": "Religion"}
		],
		"choices": {
			"languages": {"count": 2, "from": ["Elvish", "Draconic", "Celestial"]}
		}
	}`)

	writeRulesFile(t, dir, "feats", "tough.json", `{
		"key": "tough",
		"name": "Tough",
		"description": "Your hit point maximum increases.",
		"ability_bonuses": [{"ability": "constitution", "amount": 1}]
	}`)

	ctx := context.Background()
	src, err := NewFileSource(ctx, dir)
	require.NoError(t, err)

	race, err := src.GetRace(ctx, "hill-dwarf")
	require.NoError(t, err)
	assert.Equal(t, "Hill Dwarf", race.Name)
	assert.Equal(t, 25, race.Speed)
	assert.Len(t, race.Grants, 2)
	require.NotNil(t, race.Choices[shared.CategoryTools])
	assert.Equal(t, 1, race.Choices[shared.CategoryTools].Count)

	class, err := src.GetClass(ctx, "fighter")
	require.NoError(t, err)
	assert.Equal(t, 10, class.HitDie)
	assert.Equal(t, shared.Source("Fighter class"), class.Source())

	background, err := src.GetBackground(ctx, "acolyte")
	require.NoError(t, err)
	assert.Equal(t, shared.Source("Acolyte background"), background.Source())

	feat, err := src.GetFeat(ctx, "tough")
	require.NoError(t, err)
	assert.Equal(t, shared.Source("Feat:Tough"), feat.Source())
	require.Len(t, feat.AbilityBonuses, 1)
	assert.Equal(t, shared.AttributeConstitution, feat.AbilityBonuses[0].Ability)
}

func TestFileSourceExpandsAllBonus(t *testing.T) {
	dir := t.TempDir()

	writeRulesFile(t, dir, "races", "human.json", `{
		"key": "human",
		"name": "Human",
		"speed": 30,
		"ability_bonuses": [{"ability": "all", "amount": 1}]
	}`)

	ctx := context.Background()
	src, err := NewFileSource(ctx, dir)
	require.NoError(t, err)

	race, err := src.GetRace(ctx, "human")
	require.NoError(t, err)

	// The "all" shorthand becomes six plain entries.
	require.Len(t, race.AbilityBonuses, 6)
	seen := make(map[shared.Attribute]bool)
	for _, bonus := range race.AbilityBonuses {
		assert.Equal(t, 1, bonus.Amount)
		seen[bonus.Ability] = true
	}
	assert.Len(t, seen, 6)
}

func TestFileSourceNotFound(t *testing.T) {
	ctx := context.Background()
	src, err := NewFileSource(ctx, t.TempDir())
	require.NoError(t, err)

	_, err = src.GetRace(ctx, "tiefling")
	assert.True(t, cferr.IsNotFound(err))

	races, err := src.ListRaces(ctx)
	require.NoError(t, err)
	assert.Empty(t, races)
}

func TestFileSourceListIsSorted(t *testing.T) {
	dir := t.TempDir()
	writeRulesFile(t, dir, "races", "b.json", `{"key": "wood-elf", "name": "Wood Elf", "speed": 35}`)
	writeRulesFile(t, dir, "races", "a.json", `{"key": "hill-dwarf", "name": "Hill Dwarf", "speed": 25}`)

	ctx := context.Background()
	src, err := NewFileSource(ctx, dir)
	require.NoError(t, err)

	races, err := src.ListRaces(ctx)
	require.NoError(t, err)
	require.Len(t, races, 2)
	assert.Equal(t, "hill-dwarf", races[0].Key)
	assert.Equal(t, "wood-elf", races[1].Key)
}

func TestFileSourceRejectsBadContent(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		content string
	}{
		{"missing key", "races", `{"name": "Nameless"}`},
		{"missing name", "races", `{"key": "nameless"}`},
		{"unknown category", "races", `{"key": "x", "name": "X", "proficiencies": [{"category": "spells", "name": "Fireball"}]}`},
		{"unknown ability", "races", `{"key": "x", "name": "X", "ability_bonuses": [{"ability": "luck", "amount": 1}]}`},
		{"negative choice count", "classes", `{"key": "x", "name": "X", "choices": {"skills": {"count": -1, "from": []}}}`},
		{"malformed json", "feats", `{"key": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeRulesFile(t, dir, tt.kind, "bad.json", tt.content)

			_, err := NewFileSource(context.Background(), dir)
			assert.Error(t, err)
		})
	}
}
