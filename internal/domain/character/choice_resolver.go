package character

import (
	"fmt"
	"log"

	"github.com/charforge/charforge/internal/domain/shared"
)

// OptionalProficiencyTrack is the state of one bounded choice ("pick N from
// this pool") for one category on one granting axis.
type OptionalProficiencyTrack struct {
	// Allowed is how many selections the axis permits. It may be positive
	// while Options is empty when rules content carries a "choose 1"
	// placeholder without a concrete pool.
	Allowed int `json:"allowed"`

	// Options is the de-duplicated pool the player may pick from.
	Options []string `json:"options"`

	// Selected holds the player's picks in the order they were made.
	// Always a subset of Options, never longer than Allowed.
	Selected []string `json:"selected"`
}

// ChoiceSpec is normalized rules content describing an optional choice:
// pick Count from the From pool.
type ChoiceSpec struct {
	Count int      `json:"count"`
	From  []string `json:"from"`
}

// ChoiceResolver manages bounded optional choices per category per granting
// axis, and reconciles previously saved selections when the granting context
// changes (race swapped, background swapped) without discarding choices that
// remain valid. It consults the ProficiencyLedger so a player is never asked
// to choose something already fixed-granted.
type ChoiceResolver struct {
	ledger *ProficiencyLedger
	tracks map[shared.ProficiencyCategory]map[shared.Axis]*OptionalProficiencyTrack
}

// NewChoiceResolver creates a resolver reading fixed grants from ledger.
func NewChoiceResolver(ledger *ProficiencyLedger) *ChoiceResolver {
	if ledger == nil {
		panic("choice resolver requires a proficiency ledger")
	}
	return &ChoiceResolver{
		ledger: ledger,
		tracks: make(map[shared.ProficiencyCategory]map[shared.Axis]*OptionalProficiencyTrack),
	}
}

// ConfigureTrack replaces the allowed count and options pool for one axis,
// then reconciles the existing selection against the new pool instead of
// blindly resetting it. Options are de-duplicated preserving order. A
// negative allowed count or unknown category/axis is a caller bug.
func (r *ChoiceResolver) ConfigureTrack(category shared.ProficiencyCategory, axis shared.Axis, allowed int, options []string) {
	mustValidCategory(category)
	mustValidAxis(axis)
	if allowed < 0 {
		panic(fmt.Sprintf("allowed count must be >= 0, got %d", allowed))
	}

	track := r.track(category, axis)
	track.Allowed = allowed
	track.Options = dedupe(options)

	r.ReconcileSelection(category, axis)
}

// ResetTrack clears an axis's track back to no choice at all.
func (r *ChoiceResolver) ResetTrack(category shared.ProficiencyCategory, axis shared.Axis) {
	r.ConfigureTrack(category, axis, 0, nil)
}

// ReconcileSelection filters the axis's current selection down to entries
// that still appear in the options pool and are not already fixed-granted,
// then truncates to the allowed count keeping the earliest-made picks.
// Pruning is normal behavior on context change, never an error.
func (r *ChoiceResolver) ReconcileSelection(category shared.ProficiencyCategory, axis shared.Axis) {
	mustValidCategory(category)
	mustValidAxis(axis)

	track := r.track(category, axis)
	if len(track.Selected) == 0 {
		return
	}

	kept := make([]string, 0, len(track.Selected))
	for _, name := range track.Selected {
		if len(kept) == track.Allowed {
			log.Printf("Dropping %s selection %q: over the allowed count of %d", category, name, track.Allowed)
			continue
		}
		if !contains(track.Options, name) {
			log.Printf("Dropping %s selection %q: no longer in the options pool", category, name)
			continue
		}
		if r.ledger.Has(category, name) {
			log.Printf("Dropping %s selection %q: already granted by %v", category, name, r.ledger.SourcesOf(category, name))
			continue
		}
		kept = append(kept, name)
	}

	track.Selected = kept
}

// ReconcileAll re-validates every configured track. Called after fixed
// grants change, since a grant can make a standing selection redundant.
func (r *ChoiceResolver) ReconcileAll() {
	for category, byAxis := range r.tracks {
		for axis := range byAxis {
			r.ReconcileSelection(category, axis)
		}
	}
}

// ToggleSelection flips the named option on the axis's track. Deselection
// is always allowed. Selection succeeds only when under the allowed count,
// in the options pool, and not already fixed-granted. Returns false, with
// no mutation, when the toggle is not eligible; user input is retryable
// and must never crash a build session.
func (r *ChoiceResolver) ToggleSelection(category shared.ProficiencyCategory, axis shared.Axis, name string) bool {
	mustValidCategory(category)
	mustValidAxis(axis)

	track := r.track(category, axis)

	for i, selected := range track.Selected {
		if selected == name {
			track.Selected = append(track.Selected[:i], track.Selected[i+1:]...)
			return true
		}
	}

	if len(track.Selected) >= track.Allowed {
		return false
	}
	if !contains(track.Options, name) {
		return false
	}
	if r.ledger.Has(category, name) {
		return false
	}

	track.Selected = append(track.Selected, name)
	return true
}

// Track returns a copy of the axis's track state.
func (r *ChoiceResolver) Track(category shared.ProficiencyCategory, axis shared.Axis) OptionalProficiencyTrack {
	mustValidCategory(category)
	mustValidAxis(axis)

	return copyTrack(r.track(category, axis))
}

// CombinedTrack aggregates the category's tracks across all axes: allowed
// counts sum, options and selections union with de-duplication. The combined
// selection may legitimately be shorter than the combined allowed count when
// the player hasn't finished choosing.
func (r *ChoiceResolver) CombinedTrack(category shared.ProficiencyCategory) OptionalProficiencyTrack {
	mustValidCategory(category)

	var combined OptionalProficiencyTrack
	byAxis := r.tracks[category]

	for _, axis := range shared.Axes {
		track, ok := byAxis[axis]
		if !ok {
			continue
		}
		combined.Allowed += track.Allowed
		combined.Options = append(combined.Options, track.Options...)
		combined.Selected = append(combined.Selected, track.Selected...)
	}

	combined.Options = dedupe(combined.Options)
	combined.Selected = dedupe(combined.Selected)

	return combined
}

// SelectedByCategory returns every selection across all axes for the
// category, de-duplicated in axis order. Used when locking a finished
// build's choices into the ledger.
func (r *ChoiceResolver) SelectedByCategory(category shared.ProficiencyCategory) []string {
	return r.CombinedTrack(category).Selected
}

// Snapshot returns the configured tracks for persistence. Axes that were
// never configured are absent.
func (r *ChoiceResolver) Snapshot() map[shared.ProficiencyCategory]map[shared.Axis]OptionalProficiencyTrack {
	out := make(map[shared.ProficiencyCategory]map[shared.Axis]OptionalProficiencyTrack, len(r.tracks))
	for category, byAxis := range r.tracks {
		if len(byAxis) == 0 {
			continue
		}
		axes := make(map[shared.Axis]OptionalProficiencyTrack, len(byAxis))
		for axis, track := range byAxis {
			axes[axis] = copyTrack(track)
		}
		out[category] = axes
	}
	return out
}

// RestoreChoiceResolver rebuilds a resolver from a Snapshot. Tracks are
// restored verbatim: the snapshot was written from an already-consistent
// session, and reconciling here would prune selections a finalized session
// has locked into the ledger. Reconciliation only runs when the granting
// context actually changes.
func RestoreChoiceResolver(ledger *ProficiencyLedger, snapshot map[shared.ProficiencyCategory]map[shared.Axis]OptionalProficiencyTrack) (*ChoiceResolver, error) {
	resolver := NewChoiceResolver(ledger)
	for category, byAxis := range snapshot {
		if !category.IsValid() {
			return nil, fmt.Errorf("unknown proficiency category %q in snapshot", category)
		}
		for axis, track := range byAxis {
			if !axis.IsValid() {
				return nil, fmt.Errorf("unknown axis %q in snapshot", axis)
			}
			if track.Allowed < 0 {
				return nil, fmt.Errorf("track %q/%q has negative allowed count %d", category, axis, track.Allowed)
			}
			restored := resolver.track(category, axis)
			restored.Allowed = track.Allowed
			restored.Options = dedupe(track.Options)
			restored.Selected = dedupe(track.Selected)
		}
	}
	return resolver, nil
}

// track returns the mutable track for (category, axis), creating it empty
// on first use.
func (r *ChoiceResolver) track(category shared.ProficiencyCategory, axis shared.Axis) *OptionalProficiencyTrack {
	byAxis, ok := r.tracks[category]
	if !ok {
		byAxis = make(map[shared.Axis]*OptionalProficiencyTrack)
		r.tracks[category] = byAxis
	}

	track, ok := byAxis[axis]
	if !ok {
		track = &OptionalProficiencyTrack{}
		byAxis[axis] = track
	}

	return track
}

func copyTrack(track *OptionalProficiencyTrack) OptionalProficiencyTrack {
	out := OptionalProficiencyTrack{Allowed: track.Allowed}
	if len(track.Options) > 0 {
		out.Options = append([]string(nil), track.Options...)
	}
	if len(track.Selected) > 0 {
		out.Selected = append([]string(nil), track.Selected...)
	}
	return out
}

func mustValidAxis(axis shared.Axis) {
	if !axis.IsValid() {
		panic(fmt.Sprintf("unknown granting axis %q", axis))
	}
}

func contains(items []string, name string) bool {
	for _, item := range items {
		if item == name {
			return true
		}
	}
	return false
}

func dedupe(items []string) []string {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
