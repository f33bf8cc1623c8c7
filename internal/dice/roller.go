package dice

//go:generate mockgen -destination=mock/mock_roller.go -package=mockdice -source=roller.go

// Roller rolls dice. The interface exists so tests can inject
// deterministic rolls.
type Roller interface {
	// Roll rolls count dice with the given number of sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}
