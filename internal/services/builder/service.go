// Package builder is the application service for character build sessions.
// It resolves rules content through a rules.Source, drives the session's
// ledgers, and persists every change through the session repository.
package builder

import (
	"context"
	"strings"

	"github.com/charforge/charforge/internal/dice"
	"github.com/charforge/charforge/internal/domain/character"
	"github.com/charforge/charforge/internal/domain/shared"
	cferr "github.com/charforge/charforge/internal/errors"
	"github.com/charforge/charforge/internal/repositories/sessions"
	"github.com/charforge/charforge/internal/rules"
	"github.com/charforge/charforge/internal/uuid"
)

//go:generate mockgen -destination=mock/mock_service.go -package=mockbuilder -source=service.go

// Repository is an alias for the session repository interface
type Repository = sessions.Repository

// Service defines the build session service interface
type Service interface {
	// CreateSession opens a new draft session seeded with ruleset defaults
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, sessionID string) (*character.Session, error)

	// ListSessions lists all sessions for an owner
	ListSessions(ctx context.Context, ownerID string) ([]*character.Session, error)

	// SaveSession persists a session the caller mutated directly
	SaveSession(ctx context.Context, session *character.Session) error

	// DeleteSession removes a session
	DeleteSession(ctx context.Context, sessionID string) error

	// SetRace applies a race to the session, retracting any previous race
	SetRace(ctx context.Context, input *SetRaceInput) (*character.Session, error)

	// SetClass applies a class to the session, retracting any previous class
	SetClass(ctx context.Context, input *SetClassInput) (*character.Session, error)

	// SetBackground applies a background, retracting any previous one
	SetBackground(ctx context.Context, input *SetBackgroundInput) (*character.Session, error)

	// ClearAxis retracts everything one granting axis contributed
	ClearAxis(ctx context.Context, input *ClearAxisInput) (*character.Session, error)

	// AddFeat applies a feat on top of the session's other sources
	AddFeat(ctx context.Context, input *AddFeatInput) (*character.Session, error)

	// RemoveFeat retracts a previously applied feat
	RemoveFeat(ctx context.Context, input *RemoveFeatInput) (*character.Session, error)

	// SetBaseScore edits one base ability score, clamped to the legal range
	SetBaseScore(ctx context.Context, input *SetBaseScoreInput) (*character.Session, error)

	// RollBaseScores rolls 4d6-drop-lowest for every ability
	RollBaseScores(ctx context.Context, input *RollBaseScoresInput) (*character.Session, error)

	// ToggleSelection selects or deselects one optional proficiency. An
	// ineligible selection is not an error; Selected reports the outcome.
	ToggleSelection(ctx context.Context, input *ToggleSelectionInput) (*ToggleSelectionOutput, error)

	// FinalizeSession locks the build and writes selections into the ledger
	FinalizeSession(ctx context.Context, sessionID string) (*character.Session, error)

	// GetSheet renders the session as a character sheet view
	GetSheet(ctx context.Context, sessionID string) (*Sheet, error)
}

// CreateSessionInput contains all data needed to open a session
type CreateSessionInput struct {
	OwnerID string
	Name    string
}

// CreateSessionOutput contains the created session
type CreateSessionOutput struct {
	Session *character.Session
}

// SetRaceInput selects a race by rules key
type SetRaceInput struct {
	SessionID string
	RaceKey   string
}

// SetClassInput selects a class by rules key
type SetClassInput struct {
	SessionID string
	ClassKey  string
}

// SetBackgroundInput selects a background by rules key
type SetBackgroundInput struct {
	SessionID     string
	BackgroundKey string
}

// ClearAxisInput names the granting axis to retract
type ClearAxisInput struct {
	SessionID string
	Axis      shared.Axis
}

// AddFeatInput selects a feat by rules key
type AddFeatInput struct {
	SessionID string
	FeatKey   string
}

// RemoveFeatInput names the feat to retract
type RemoveFeatInput struct {
	SessionID string
	FeatKey   string
}

// SetBaseScoreInput edits one ability's base score
type SetBaseScoreInput struct {
	SessionID string
	Ability   shared.Attribute
	Score     int
}

// RollBaseScoresInput names the session to roll scores for
type RollBaseScoresInput struct {
	SessionID string
}

// ToggleSelectionInput toggles one optional proficiency on one track
type ToggleSelectionInput struct {
	SessionID string
	Category  shared.ProficiencyCategory
	Axis      shared.Axis
	Name      string
}

// ToggleSelectionOutput reports whether the name ended up selected
type ToggleSelectionOutput struct {
	Selected bool
	Session  *character.Session
}

// AbilityLine is one ability row on the sheet
type AbilityLine struct {
	Ability shared.Attribute
	Base    int
	Bonus   int
	Total   int
}

// ProficiencyLine is one granted proficiency with its provenance
type ProficiencyLine struct {
	Name    string
	Sources []shared.Source
}

// Sheet is the read-model view of a session: computed ability totals,
// granted proficiencies with provenance, and the combined choice tracks.
type Sheet struct {
	SessionID     string
	OwnerID       string
	Name          string
	RaceKey       string
	ClassKey      string
	BackgroundKey string
	Feats         []string
	Status        character.SessionStatus

	Abilities     []AbilityLine
	Proficiencies map[shared.ProficiencyCategory][]ProficiencyLine
	Choices       map[shared.ProficiencyCategory]character.OptionalProficiencyTrack
}

// service implements the Service interface
type service struct {
	rulesSource   rules.Source
	repository    Repository
	uuidGenerator uuid.Generator
	diceRoller    dice.Roller
	defaults      []shared.GrantRef
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	RulesSource   rules.Source      // Required
	Repository    Repository        // Required
	UUIDGenerator uuid.Generator    // Optional, defaults to google UUIDs
	DiceRoller    dice.Roller       // Optional, defaults to a random roller
	Defaults      []shared.GrantRef // Seeded grants for new sessions
}

// NewService creates a new build session service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.RulesSource == nil {
		panic("rules source is required")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}

	generator := cfg.UUIDGenerator
	if generator == nil {
		generator = uuid.NewGoogleUUIDGenerator()
	}

	roller := cfg.DiceRoller
	if roller == nil {
		roller = dice.NewRandomRoller()
	}

	return &service{
		rulesSource:   cfg.RulesSource,
		repository:    cfg.Repository,
		uuidGenerator: generator,
		diceRoller:    roller,
		defaults:      cfg.Defaults,
	}
}

// CreateSession opens a new draft session seeded with ruleset defaults
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, cferr.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.OwnerID) == "" {
		return nil, cferr.InvalidArgument("owner ID is required")
	}

	session := character.NewSession(&character.SessionConfig{
		ID:       s.uuidGenerator.New(),
		OwnerID:  input.OwnerID,
		Defaults: s.defaults,
	})
	session.Name = input.Name

	if err := s.repository.Create(ctx, session); err != nil {
		return nil, cferr.Wrap(err, "failed to save new session").
			WithMeta("owner_id", input.OwnerID)
	}

	return &CreateSessionOutput{Session: session}, nil
}

// GetSession retrieves a session by ID
func (s *service) GetSession(ctx context.Context, sessionID string) (*character.Session, error) {
	return s.loadSession(ctx, sessionID)
}

// ListSessions lists all sessions for an owner
func (s *service) ListSessions(ctx context.Context, ownerID string) ([]*character.Session, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, cferr.InvalidArgument("owner ID is required")
	}

	list, err := s.repository.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, cferr.Wrapf(err, "failed to list sessions for owner '%s'", ownerID).
			WithMeta("owner_id", ownerID)
	}
	return list, nil
}

// SaveSession persists a session the caller mutated directly
func (s *service) SaveSession(ctx context.Context, session *character.Session) error {
	if session == nil {
		return cferr.InvalidArgument("session cannot be nil")
	}

	_, err := s.saveSession(ctx, session)
	return err
}

// DeleteSession removes a session
func (s *service) DeleteSession(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return cferr.InvalidArgument("session ID is required")
	}

	if err := s.repository.Delete(ctx, sessionID); err != nil {
		return cferr.Wrapf(err, "failed to delete session '%s'", sessionID).
			WithMeta("session_id", sessionID)
	}
	return nil
}

// SetRace applies a race to the session, retracting any previous race
func (s *service) SetRace(ctx context.Context, input *SetRaceInput) (*character.Session, error) {
	if input == nil {
		return nil, cferr.InvalidArgument("input cannot be nil")
	}

	session, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	race, err := s.rulesSource.GetRace(ctx, input.RaceKey)
	if err != nil {
		return nil, cferr.Wrapf(err, "failed to get race '%s'", input.RaceKey).
			WithMeta("race_key", input.RaceKey)
	}

	session.ApplyAxis(shared.AxisRace, race.Source(), race.Effects())
	session.RaceKey = race.Key

	return s.saveSession(ctx, session)
}

// SetClass applies a class to the session, retracting any previous class
func (s *service) SetClass(ctx context.Context, input *SetClassInput) (*character.Session, error) {
	if input == nil {
		return nil, cferr.InvalidArgument("input cannot be nil")
	}

	session, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	class, err := s.rulesSource.GetClass(ctx, input.ClassKey)
	if err != nil {
		return nil, cferr.Wrapf(err, "failed to get class '%s'", input.ClassKey).
			WithMeta("class_key", input.ClassKey)
	}

	session.ApplyAxis(shared.AxisClass, class.Source(), class.Effects())
	session.ClassKey = class.Key

	return s.saveSession(ctx, session)
}

// SetBackground applies a background, retracting any previous one
func (s *service) SetBackground(ctx context.Context, input *SetBackgroundInput) (*character.Session, error) {
	if input == nil {
		return nil, cferr.InvalidArgument("input cannot be nil")
	}

	session, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	background, err := s.rulesSource.GetBackground(ctx, input.BackgroundKey)
	if err != nil {
		return nil, cferr.Wrapf(err, "failed to get background '%s'", input.BackgroundKey).
			WithMeta("background_key", input.BackgroundKey)
	}

	session.ApplyAxis(shared.AxisBackground, background.Source(), background.Effects())
	session.BackgroundKey = background.Key

	return s.saveSession(ctx, session)
}

// ClearAxis retracts everything one granting axis contributed
func (s *service) ClearAxis(ctx context.Context, input *ClearAxisInput) (*character.Session, error) {
	if input == nil {
		return nil, cferr.InvalidArgument("input cannot be nil")
	}
	if !input.Axis.IsValid() {
		return nil, cferr.InvalidArgumentf("unknown axis '%s'", input.Axis)
	}

	session, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	session.ClearAxis(input.Axis)
	switch input.Axis {
	case shared.AxisRace:
		session.RaceKey = ""
	case shared.AxisClass:
		session.ClassKey = ""
	case shared.AxisBackground:
		session.BackgroundKey = ""
	}

	return s.saveSession(ctx, session)
}

// AddFeat applies a feat on top of the session's other sources
func (s *service) AddFeat(ctx context.Context, input *AddFeatInput) (*character.Session, error) {
	if input == nil {
		return nil, cferr.InvalidArgument("input cannot be nil")
	}

	session, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	feat, err := s.rulesSource.GetFeat(ctx, input.FeatKey)
	if err != nil {
		return nil, cferr.Wrapf(err, "failed to get feat '%s'", input.FeatKey).
			WithMeta("feat_key", input.FeatKey)
	}

	if err := session.AddFeat(feat.Name, feat.Effects()); err != nil {
		return nil, cferr.AlreadyExistsf("feat '%s' is already applied", feat.Name).
			WithMeta("feat_key", input.FeatKey)
	}

	return s.saveSession(ctx, session)
}

// RemoveFeat retracts a previously applied feat
func (s *service) RemoveFeat(ctx context.Context, input *RemoveFeatInput) (*character.Session, error) {
	if input == nil {
		return nil, cferr.InvalidArgument("input cannot be nil")
	}

	session, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	feat, err := s.rulesSource.GetFeat(ctx, input.FeatKey)
	if err != nil {
		return nil, cferr.Wrapf(err, "failed to get feat '%s'", input.FeatKey).
			WithMeta("feat_key", input.FeatKey)
	}

	session.RemoveFeat(feat.Name)

	return s.saveSession(ctx, session)
}

// SetBaseScore edits one base ability score, clamped to the legal range
func (s *service) SetBaseScore(ctx context.Context, input *SetBaseScoreInput) (*character.Session, error) {
	if input == nil {
		return nil, cferr.InvalidArgument("input cannot be nil")
	}
	if !input.Ability.IsValid() {
		return nil, cferr.InvalidArgumentf("unknown ability '%s'", input.Ability)
	}

	session, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	session.SetBaseScore(input.Ability, input.Score)

	return s.saveSession(ctx, session)
}

// RollBaseScores rolls 4d6-drop-lowest for every ability
func (s *service) RollBaseScores(ctx context.Context, input *RollBaseScoresInput) (*character.Session, error) {
	if input == nil {
		return nil, cferr.InvalidArgument("input cannot be nil")
	}

	session, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	for _, ability := range shared.Attributes {
		result, rollErr := s.diceRoller.Roll(4, 6, 0)
		if rollErr != nil {
			return nil, cferr.Wrapf(rollErr, "failed to roll score for %s", ability)
		}

		session.SetBaseScore(ability, result.DropLowest())
	}

	return s.saveSession(ctx, session)
}

// ToggleSelection selects or deselects one optional proficiency
func (s *service) ToggleSelection(ctx context.Context, input *ToggleSelectionInput) (*ToggleSelectionOutput, error) {
	if input == nil {
		return nil, cferr.InvalidArgument("input cannot be nil")
	}
	if !input.Category.IsValid() {
		return nil, cferr.InvalidArgumentf("unknown category '%s'", input.Category)
	}
	if !input.Axis.IsValid() {
		return nil, cferr.InvalidArgumentf("unknown axis '%s'", input.Axis)
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, cferr.InvalidArgument("proficiency name is required")
	}

	session, err := s.loadSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	selected := session.Choices.ToggleSelection(input.Category, input.Axis, input.Name)

	session, err = s.saveSession(ctx, session)
	if err != nil {
		return nil, err
	}

	return &ToggleSelectionOutput{Selected: selected, Session: session}, nil
}

// FinalizeSession locks the build and writes selections into the ledger
func (s *service) FinalizeSession(ctx context.Context, sessionID string) (*character.Session, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.Finalize(); err != nil {
		return nil, cferr.Validationf("session '%s' is already finalized", sessionID).
			WithMeta("session_id", sessionID)
	}

	return s.saveSession(ctx, session)
}

// GetSheet renders the session as a character sheet view
func (s *service) GetSheet(ctx context.Context, sessionID string) (*Sheet, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	abilities := make([]AbilityLine, 0, len(shared.Attributes))
	for _, ability := range shared.Attributes {
		bonus := session.Bonuses.TotalBonus(ability)
		base := session.BaseScores[ability]
		abilities = append(abilities, AbilityLine{
			Ability: ability,
			Base:    base,
			Bonus:   bonus,
			Total:   base + bonus,
		})
	}

	proficiencies := make(map[shared.ProficiencyCategory][]ProficiencyLine)
	for _, category := range shared.Categories {
		names := session.Proficiencies.ListGranted(category)
		if len(names) == 0 {
			continue
		}
		lines := make([]ProficiencyLine, 0, len(names))
		for _, name := range names {
			lines = append(lines, ProficiencyLine{
				Name:    name,
				Sources: session.Proficiencies.SourcesOf(category, name),
			})
		}
		proficiencies[category] = lines
	}

	choices := make(map[shared.ProficiencyCategory]character.OptionalProficiencyTrack)
	for _, category := range shared.Categories {
		track := session.Choices.CombinedTrack(category)
		if track.Allowed == 0 && len(track.Options) == 0 {
			continue
		}
		choices[category] = track
	}

	return &Sheet{
		SessionID:     session.ID,
		OwnerID:       session.OwnerID,
		Name:          session.Name,
		RaceKey:       session.RaceKey,
		ClassKey:      session.ClassKey,
		BackgroundKey: session.BackgroundKey,
		Feats:         append([]string(nil), session.Feats...),
		Status:        session.Status,
		Abilities:     abilities,
		Proficiencies: proficiencies,
		Choices:       choices,
	}, nil
}

func (s *service) loadSession(ctx context.Context, sessionID string) (*character.Session, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, cferr.InvalidArgument("session ID is required")
	}

	session, err := s.repository.Get(ctx, sessionID)
	if err != nil {
		return nil, cferr.Wrapf(err, "failed to get session '%s'", sessionID).
			WithMeta("session_id", sessionID)
	}
	return session, nil
}

func (s *service) saveSession(ctx context.Context, session *character.Session) (*character.Session, error) {
	if err := s.repository.Update(ctx, session); err != nil {
		return nil, cferr.Wrap(err, "failed to save session").
			WithMeta("session_id", session.ID)
	}
	return session, nil
}
