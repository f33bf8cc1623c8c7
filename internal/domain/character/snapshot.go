package character

import (
	"fmt"
	"time"

	"github.com/charforge/charforge/internal/domain/shared"
)

// SessionSnapshot is the JSON-serializable form of a build session. The
// ledger portions round-trip exactly:
//
//	{grants: {category: {name: [sources]}},
//	 bonuses: [{ability, amount, source}],
//	 tracks: {category: {axis: {allowed, options, selected}}}}
type SessionSnapshot struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`

	RaceKey       string   `json:"race_key,omitempty"`
	ClassKey      string   `json:"class_key,omitempty"`
	BackgroundKey string   `json:"background_key,omitempty"`
	Feats         []string `json:"feats,omitempty"`

	BaseScores  map[shared.Attribute]int                                             `json:"base_scores"`
	Grants      map[shared.ProficiencyCategory]map[string][]shared.Source            `json:"grants"`
	Bonuses     []AbilityBonus                                                       `json:"bonuses"`
	Tracks      map[shared.ProficiencyCategory]map[shared.Axis]OptionalProficiencyTrack `json:"tracks"`
	AxisSources map[shared.Axis]shared.Source                                        `json:"axis_sources,omitempty"`

	Status    SessionStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Snapshot captures the session's full state for persistence.
func (s *Session) Snapshot() *SessionSnapshot {
	scores := make(map[shared.Attribute]int, len(s.BaseScores))
	for ability, score := range s.BaseScores {
		scores[ability] = score
	}

	axisSources := make(map[shared.Axis]shared.Source, len(s.axisSources))
	for axis, source := range s.axisSources {
		axisSources[axis] = source
	}

	var feats []string
	if len(s.Feats) > 0 {
		feats = append([]string(nil), s.Feats...)
	}

	return &SessionSnapshot{
		ID:            s.ID,
		OwnerID:       s.OwnerID,
		Name:          s.Name,
		RaceKey:       s.RaceKey,
		ClassKey:      s.ClassKey,
		BackgroundKey: s.BackgroundKey,
		Feats:         feats,
		BaseScores:    scores,
		Grants:        s.Proficiencies.Snapshot(),
		Bonuses:       s.Bonuses.Snapshot(),
		Tracks:        s.Choices.Snapshot(),
		AxisSources:   axisSources,
		Status:        s.Status,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// RestoreSession rebuilds a session from a snapshot. Snapshots written by
// a different ruleset may reference unknown categories or abilities; those
// fail rather than load a half-correct build.
func RestoreSession(snapshot *SessionSnapshot) (*Session, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("session snapshot cannot be nil")
	}
	if snapshot.ID == "" {
		return nil, fmt.Errorf("session snapshot has no ID")
	}

	ledger, err := RestoreProficiencyLedger(snapshot.Grants)
	if err != nil {
		return nil, fmt.Errorf("restoring proficiency ledger: %w", err)
	}

	bonuses, err := RestoreAbilityBonusLedger(snapshot.Bonuses)
	if err != nil {
		return nil, fmt.Errorf("restoring ability bonus ledger: %w", err)
	}

	resolver, err := RestoreChoiceResolver(ledger, snapshot.Tracks)
	if err != nil {
		return nil, fmt.Errorf("restoring choice tracks: %w", err)
	}

	scores := make(map[shared.Attribute]int, len(shared.Attributes))
	for _, ability := range shared.Attributes {
		scores[ability] = DefaultBaseScore
	}
	for ability, score := range snapshot.BaseScores {
		if !ability.IsValid() {
			return nil, fmt.Errorf("unknown ability %q in snapshot", ability)
		}
		scores[ability] = score
	}

	axisSources := make(map[shared.Axis]shared.Source, len(snapshot.AxisSources))
	for axis, source := range snapshot.AxisSources {
		if !axis.IsValid() {
			return nil, fmt.Errorf("unknown axis %q in snapshot", axis)
		}
		axisSources[axis] = source
	}

	status := snapshot.Status
	if status == "" {
		status = SessionStatusDraft
	}

	return &Session{
		ID:            snapshot.ID,
		OwnerID:       snapshot.OwnerID,
		Name:          snapshot.Name,
		RaceKey:       snapshot.RaceKey,
		ClassKey:      snapshot.ClassKey,
		BackgroundKey: snapshot.BackgroundKey,
		Feats:         append([]string(nil), snapshot.Feats...),
		BaseScores:    scores,
		Proficiencies: ledger,
		Bonuses:       bonuses,
		Choices:       resolver,
		Status:        status,
		CreatedAt:     snapshot.CreatedAt,
		UpdatedAt:     snapshot.UpdatedAt,
		axisSources:   axisSources,
	}, nil
}
