package character

import (
	"fmt"
	"time"

	"github.com/charforge/charforge/internal/domain/shared"
)

// SessionStatus tracks a build's lifecycle.
type SessionStatus string

const (
	SessionStatusDraft     SessionStatus = "draft"
	SessionStatusFinalized SessionStatus = "finalized"
)

const (
	// BaseScoreMin and BaseScoreMax bound user-edited base scores.
	// Bonuses are never clamped; a racial bonus may legally push a
	// total above BaseScoreMax.
	BaseScoreMin = 3
	BaseScoreMax = 18

	// DefaultBaseScore is the starting value for an untouched ability.
	DefaultBaseScore = 10
)

// SourceEffects is everything one source (a race, class, background, or
// feat) contributes to a build: fixed proficiency grants, ability bonuses,
// and optional-choice configuration per category.
type SourceEffects struct {
	Grants  []shared.GrantRef
	Bonuses []AbilityBonus
	Choices map[shared.ProficiencyCategory]*ChoiceSpec
}

// Session owns one character's mutable build state: base ability scores,
// the two ledgers, and the optional-choice resolver. Construct one session
// per open character; there is no process-wide character.
type Session struct {
	ID      string
	OwnerID string
	Name    string

	RaceKey       string
	ClassKey      string
	BackgroundKey string
	Feats         []string

	BaseScores    map[shared.Attribute]int
	Proficiencies *ProficiencyLedger
	Bonuses       *AbilityBonusLedger
	Choices       *ChoiceResolver

	Status    SessionStatus
	CreatedAt time.Time
	UpdatedAt time.Time

	// axisSources remembers which source id each axis last applied so a
	// re-application can retract exactly the old effects.
	axisSources map[shared.Axis]shared.Source
}

// SessionConfig configures a new build session.
type SessionConfig struct {
	ID      string
	OwnerID string

	// Defaults are the ruleset's seeded grants, recorded under the
	// Default source (e.g. every character speaks Common).
	Defaults []shared.GrantRef
}

// NewSession creates an empty draft session seeded with the ruleset
// defaults.
func NewSession(cfg *SessionConfig) *Session {
	if cfg == nil {
		panic("session config cannot be nil")
	}
	if cfg.ID == "" {
		panic("session ID is required")
	}

	ledger := NewProficiencyLedger()
	for _, grant := range cfg.Defaults {
		ledger.Grant(grant.Category, grant.Name, shared.SourceDefault)
	}

	scores := make(map[shared.Attribute]int, len(shared.Attributes))
	for _, ability := range shared.Attributes {
		scores[ability] = DefaultBaseScore
	}

	now := time.Now().UTC()

	return &Session{
		ID:            cfg.ID,
		OwnerID:       cfg.OwnerID,
		BaseScores:    scores,
		Proficiencies: ledger,
		Bonuses:       NewAbilityBonusLedger(),
		Choices:       NewChoiceResolver(ledger),
		Status:        SessionStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
		axisSources:   make(map[shared.Axis]shared.Source),
	}
}

// ApplyAxis replaces the effects of one granting axis. Any effects the axis
// previously granted are retracted first, the new source's fixed grants and
// bonuses are applied, the axis's tracks are reconfigured, and every track
// is reconciled against the changed fixed grants.
func (s *Session) ApplyAxis(axis shared.Axis, source shared.Source, fx *SourceEffects) {
	mustValidAxis(axis)
	if source == "" {
		panic("applying an axis requires a source")
	}

	s.clearAxis(axis)
	s.axisSources[axis] = source

	if fx != nil {
		for _, grant := range fx.Grants {
			s.Proficiencies.Grant(grant.Category, grant.Name, source)
		}
		for _, bonus := range fx.Bonuses {
			s.Bonuses.AddBonus(bonus.Ability, bonus.Amount, source)
		}
		for category, choice := range fx.Choices {
			if choice == nil {
				continue
			}
			s.Choices.ConfigureTrack(category, axis, choice.Count, choice.From)
		}
	}

	// Fixed grants changed; standing selections on other axes may now be
	// redundant.
	s.Choices.ReconcileAll()
	s.touch()
}

// ClearAxis retracts everything an axis granted and resets its tracks.
func (s *Session) ClearAxis(axis shared.Axis) {
	mustValidAxis(axis)
	s.clearAxis(axis)
	s.Choices.ReconcileAll()
	s.touch()
}

func (s *Session) clearAxis(axis shared.Axis) {
	if source, ok := s.axisSources[axis]; ok {
		s.Proficiencies.RevokeBySource(source)
		s.Bonuses.RevokeBySource(source)
		delete(s.axisSources, axis)
	}
	for _, category := range shared.Categories {
		s.Choices.ResetTrack(category, axis)
	}
}

// AxisSource returns the source id an axis last applied, if any.
func (s *Session) AxisSource(axis shared.Axis) (shared.Source, bool) {
	source, ok := s.axisSources[axis]
	return source, ok
}

// AddFeat applies a feat's effects under its own source id. Returns an
// error when the feat is already applied.
func (s *Session) AddFeat(name string, fx *SourceEffects) error {
	for _, existing := range s.Feats {
		if existing == name {
			return fmt.Errorf("feat %q is already applied", name)
		}
	}

	source := shared.FeatSource(name)
	if fx != nil {
		for _, grant := range fx.Grants {
			s.Proficiencies.Grant(grant.Category, grant.Name, source)
		}
		for _, bonus := range fx.Bonuses {
			s.Bonuses.AddBonus(bonus.Ability, bonus.Amount, source)
		}
	}

	s.Feats = append(s.Feats, name)
	s.Choices.ReconcileAll()
	s.touch()

	return nil
}

// RemoveFeat retracts a feat's effects. No-op if the feat isn't applied.
func (s *Session) RemoveFeat(name string) {
	for i, existing := range s.Feats {
		if existing == name {
			s.Feats = append(s.Feats[:i], s.Feats[i+1:]...)
			source := shared.FeatSource(name)
			s.Proficiencies.RevokeBySource(source)
			s.Bonuses.RevokeBySource(source)
			s.Choices.ReconcileAll()
			s.touch()
			return
		}
	}
}

// SetBaseScore sets an ability's base score, clamped to [3, 18]. Clamping
// applies only here, at the point the base score is edited; bonus
// application never clamps.
func (s *Session) SetBaseScore(ability shared.Attribute, score int) {
	if !ability.IsValid() {
		panic(fmt.Sprintf("unknown ability %q", ability))
	}

	if score < BaseScoreMin {
		score = BaseScoreMin
	}
	if score > BaseScoreMax {
		score = BaseScoreMax
	}

	s.BaseScores[ability] = score
	s.touch()
}

// IncrementBaseScore adjusts an ability's base score by delta, clamped.
func (s *Session) IncrementBaseScore(ability shared.Attribute, delta int) {
	if !ability.IsValid() {
		panic(fmt.Sprintf("unknown ability %q", ability))
	}
	s.SetBaseScore(ability, s.BaseScores[ability]+delta)
}

// AbilityTotal returns base + the sum of every bonus for the ability. The
// total is always recomputed from the ledger; nothing is cached.
func (s *Session) AbilityTotal(ability shared.Attribute) int {
	if !ability.IsValid() {
		panic(fmt.Sprintf("unknown ability %q", ability))
	}
	return s.BaseScores[ability] + s.Bonuses.TotalBonus(ability)
}

// Finalize locks the build: every optional selection is written into the
// proficiency ledger under the Optional selection source and the session
// leaves draft status. Finalizing twice is an error.
func (s *Session) Finalize() error {
	if s.Status == SessionStatusFinalized {
		return fmt.Errorf("session %s is already finalized", s.ID)
	}

	for _, category := range shared.Categories {
		for _, name := range s.Choices.SelectedByCategory(category) {
			s.Proficiencies.Grant(category, name, shared.SourceOptionalSelection)
		}
	}

	s.Status = SessionStatusFinalized
	s.touch()

	return nil
}

func (s *Session) touch() {
	s.UpdatedAt = time.Now().UTC()
}
