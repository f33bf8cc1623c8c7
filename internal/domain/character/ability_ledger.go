package character

import (
	"fmt"

	"github.com/charforge/charforge/internal/domain/shared"
)

// AbilityBonus is one signed adjustment to an ability score, tagged with
// the source that granted it.
type AbilityBonus struct {
	Ability shared.Attribute `json:"ability"`
	Amount  int              `json:"amount"`
	Source  shared.Source    `json:"source"`
}

// AbilityBonusLedger accumulates signed bonuses to the six ability scores.
// Totals are computed on demand; nothing is cached. A bonus that applies to
// all six abilities is stored as six entries sharing one source, so revoking
// by source needs no special cases.
type AbilityBonusLedger struct {
	bonuses []AbilityBonus
}

// NewAbilityBonusLedger creates an empty ledger.
func NewAbilityBonusLedger() *AbilityBonusLedger {
	return &AbilityBonusLedger{}
}

// AddBonus appends a bonus entry. Entries from the same source for the same
// ability accumulate; callers wanting replacement must revoke first. An
// unknown ability is a caller bug and panics.
func (l *AbilityBonusLedger) AddBonus(ability shared.Attribute, amount int, source shared.Source) {
	if !ability.IsValid() {
		panic(fmt.Sprintf("unknown ability %q", ability))
	}
	if source == "" {
		panic("ability bonus requires a source")
	}

	l.bonuses = append(l.bonuses, AbilityBonus{
		Ability: ability,
		Amount:  amount,
		Source:  source,
	})
}

// AddBonusToAll appends one entry per ability, all sharing the given source.
func (l *AbilityBonusLedger) AddBonusToAll(amount int, source shared.Source) {
	for _, ability := range shared.Attributes {
		l.AddBonus(ability, amount, source)
	}
}

// RevokeBySource removes every bonus entry tagged with source.
func (l *AbilityBonusLedger) RevokeBySource(source shared.Source) {
	kept := l.bonuses[:0]
	for _, bonus := range l.bonuses {
		if bonus.Source != source {
			kept = append(kept, bonus)
		}
	}
	l.bonuses = kept
}

// TotalBonus returns the sum of all bonus amounts for the ability.
func (l *AbilityBonusLedger) TotalBonus(ability shared.Attribute) int {
	if !ability.IsValid() {
		panic(fmt.Sprintf("unknown ability %q", ability))
	}

	total := 0
	for _, bonus := range l.bonuses {
		if bonus.Ability == ability {
			total += bonus.Amount
		}
	}
	return total
}

// ListBySource returns the bonus entries granted by source, in grant order.
func (l *AbilityBonusLedger) ListBySource(source shared.Source) []AbilityBonus {
	var out []AbilityBonus
	for _, bonus := range l.bonuses {
		if bonus.Source == source {
			out = append(out, bonus)
		}
	}
	return out
}

// Snapshot returns all bonus entries in grant order for persistence.
func (l *AbilityBonusLedger) Snapshot() []AbilityBonus {
	out := make([]AbilityBonus, len(l.bonuses))
	copy(out, l.bonuses)
	return out
}

// RestoreAbilityBonusLedger rebuilds a ledger from a Snapshot.
func RestoreAbilityBonusLedger(snapshot []AbilityBonus) (*AbilityBonusLedger, error) {
	ledger := NewAbilityBonusLedger()
	for _, bonus := range snapshot {
		if !bonus.Ability.IsValid() {
			return nil, fmt.Errorf("unknown ability %q in snapshot", bonus.Ability)
		}
		if bonus.Source == "" {
			return nil, fmt.Errorf("bonus to %q has no source", bonus.Ability)
		}
		ledger.AddBonus(bonus.Ability, bonus.Amount, bonus.Source)
	}
	return ledger, nil
}
