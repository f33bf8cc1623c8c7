package character

import (
	"fmt"
	"sort"

	"github.com/charforge/charforge/internal/domain/shared"
)

// ProficiencyLedger tracks, per category, which proficiencies a character
// holds and which sources grant them. A proficiency appears at most once
// per category no matter how many sources grant it; it is removed when the
// last source granting it is revoked.
type ProficiencyLedger struct {
	grants map[shared.ProficiencyCategory]map[string]map[shared.Source]struct{}
}

// NewProficiencyLedger creates an empty ledger.
func NewProficiencyLedger() *ProficiencyLedger {
	return &ProficiencyLedger{
		grants: make(map[shared.ProficiencyCategory]map[string]map[shared.Source]struct{}),
	}
}

// Grant records that source grants the named proficiency. Granting the same
// (category, name, source) twice has no additional effect. An unknown
// category is a caller bug and panics.
func (l *ProficiencyLedger) Grant(category shared.ProficiencyCategory, name string, source shared.Source) {
	mustValidCategory(category)
	if name == "" || source == "" {
		panic(fmt.Sprintf("proficiency grant requires a name and source, got name=%q source=%q", name, source))
	}

	byName, ok := l.grants[category]
	if !ok {
		byName = make(map[string]map[shared.Source]struct{})
		l.grants[category] = byName
	}

	sources, ok := byName[name]
	if !ok {
		sources = make(map[shared.Source]struct{})
		byName[name] = sources
	}

	sources[source] = struct{}{}
}

// Revoke removes source from the grant's source set. The grant itself is
// deleted when its last source is removed. No-op if the grant or source
// is absent.
func (l *ProficiencyLedger) Revoke(category shared.ProficiencyCategory, name string, source shared.Source) {
	mustValidCategory(category)

	byName, ok := l.grants[category]
	if !ok {
		return
	}

	sources, ok := byName[name]
	if !ok {
		return
	}

	delete(sources, source)
	if len(sources) == 0 {
		delete(byName, name)
	}
}

// RevokeBySource removes source from every grant in every category,
// deleting any grant left without a source. Grants that never referenced
// the source are untouched. This is the operation invoked when a character
// drops a race, class, background, or feat.
func (l *ProficiencyLedger) RevokeBySource(source shared.Source) {
	for _, byName := range l.grants {
		for name, sources := range byName {
			delete(sources, source)
			if len(sources) == 0 {
				delete(byName, name)
			}
		}
	}
}

// Has reports whether the named proficiency is currently granted.
func (l *ProficiencyLedger) Has(category shared.ProficiencyCategory, name string) bool {
	mustValidCategory(category)

	byName, ok := l.grants[category]
	if !ok {
		return false
	}

	_, ok = byName[name]
	return ok
}

// ListGranted returns the names granted in a category, sorted for
// deterministic display.
func (l *ProficiencyLedger) ListGranted(category shared.ProficiencyCategory) []string {
	mustValidCategory(category)

	byName := l.grants[category]
	if len(byName) == 0 {
		return nil
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// SourcesOf returns the sources currently granting the named proficiency,
// sorted. Nil if the proficiency is not granted.
func (l *ProficiencyLedger) SourcesOf(category shared.ProficiencyCategory, name string) []shared.Source {
	mustValidCategory(category)

	byName, ok := l.grants[category]
	if !ok {
		return nil
	}

	set, ok := byName[name]
	if !ok {
		return nil
	}

	sources := make([]shared.Source, 0, len(set))
	for source := range set {
		sources = append(sources, source)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })

	return sources
}

// Count returns the total number of grants across all categories.
func (l *ProficiencyLedger) Count() int {
	total := 0
	for _, byName := range l.grants {
		total += len(byName)
	}
	return total
}

// Snapshot returns the ledger's state as plain maps suitable for JSON
// persistence. Source lists are sorted for deterministic output.
func (l *ProficiencyLedger) Snapshot() map[shared.ProficiencyCategory]map[string][]shared.Source {
	out := make(map[shared.ProficiencyCategory]map[string][]shared.Source, len(l.grants))
	for category, byName := range l.grants {
		if len(byName) == 0 {
			continue
		}
		names := make(map[string][]shared.Source, len(byName))
		for name := range byName {
			names[name] = l.SourcesOf(category, name)
		}
		out[category] = names
	}
	return out
}

// RestoreProficiencyLedger rebuilds a ledger from a Snapshot. Snapshots
// produced by a different ruleset may carry unknown categories; those are
// rejected rather than silently dropped.
func RestoreProficiencyLedger(snapshot map[shared.ProficiencyCategory]map[string][]shared.Source) (*ProficiencyLedger, error) {
	ledger := NewProficiencyLedger()
	for category, byName := range snapshot {
		if !category.IsValid() {
			return nil, fmt.Errorf("unknown proficiency category %q in snapshot", category)
		}
		for name, sources := range byName {
			if len(sources) == 0 {
				return nil, fmt.Errorf("grant %q/%q has no sources", category, name)
			}
			for _, source := range sources {
				ledger.Grant(category, name, source)
			}
		}
	}
	return ledger, nil
}

func mustValidCategory(category shared.ProficiencyCategory) {
	if !category.IsValid() {
		panic(fmt.Sprintf("unknown proficiency category %q", category))
	}
}
