package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charforge/charforge/internal/dice"
)

func TestRoll(t *testing.T) {
	roller := dice.NewRandomRoller()

	result, err := roller.Roll(4, 6, 0)
	require.NoError(t, err)
	require.Len(t, result.Rolls, 4)

	total := 0
	for _, roll := range result.Rolls {
		assert.GreaterOrEqual(t, roll, 1)
		assert.LessOrEqual(t, roll, 6)
		total += roll
	}
	assert.Equal(t, total, result.Total)
	assert.GreaterOrEqual(t, result.Highest, result.Lowest)
}

func TestRollWithBonus(t *testing.T) {
	roller := dice.NewRandomRoller()

	result, err := roller.Roll(1, 20, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, result.Bonus)
	assert.Equal(t, result.Rolls[0]+5, result.Total)
}

func TestRollInvalidInput(t *testing.T) {
	roller := dice.NewRandomRoller()

	_, err := roller.Roll(0, 6, 0)
	assert.Error(t, err)

	_, err = roller.Roll(4, 0, 0)
	assert.Error(t, err)
}

func TestDropLowest(t *testing.T) {
	result := &dice.RollResult{
		Total:   16,
		Highest: 6,
		Lowest:  2,
		Rolls:   []int{6, 5, 3, 2},
		Bonus:   0,
	}
	assert.Equal(t, 14, result.DropLowest())

	withBonus := &dice.RollResult{
		Total:   18,
		Highest: 6,
		Lowest:  2,
		Rolls:   []int{6, 5, 3, 2},
		Bonus:   2,
	}
	assert.Equal(t, 14, withBonus.DropLowest())
}
