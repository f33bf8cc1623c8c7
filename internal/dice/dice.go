package dice

import (
	"errors"
	"math/rand"
)

// RollResult holds the outcome of a single dice roll.
type RollResult struct {
	Total   int
	Highest int
	Lowest  int
	Rolls   []int
	Bonus   int
}

// DropLowest returns the total of the rolls with the lowest die removed,
// before any bonus. Used for the 4d6-drop-lowest ability score method.
func (r *RollResult) DropLowest() int {
	return r.Total - r.Bonus - r.Lowest
}

type randomRoller struct{}

// NewRandomRoller creates a Roller backed by math/rand.
func NewRandomRoller() Roller {
	return &randomRoller{}
}

func (r *randomRoller) Roll(count, sides, bonus int) (*RollResult, error) {
	if count < 1 {
		return nil, errors.New("invalid dice count")
	}

	if sides < 1 {
		return nil, errors.New("invalid dice size")
	}

	highest, lowest, total := 0, 0, 0

	rolls := make([]int, count)
	for i := 0; i < count; i++ {
		roll := rand.Intn(sides) + 1
		total += roll
		if i == 0 {
			lowest = roll
			highest = roll
		}

		if roll < lowest {
			lowest = roll
		}

		if roll > highest {
			highest = roll
		}

		rolls[i] = roll
	}

	return &RollResult{
		Total:   total + bonus,
		Highest: highest,
		Lowest:  lowest,
		Rolls:   rolls,
		Bonus:   bonus,
	}, nil
}
