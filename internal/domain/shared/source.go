package shared

import "fmt"

// Source identifies the origin of a granted effect. It is the sole key
// used for retraction: revoking a source removes exactly the effects it
// granted and nothing else.
type Source string

const (
	// SourceDefault tags the ruleset's seeded grants (e.g. the Common
	// language every character starts with).
	SourceDefault Source = "Default"

	// SourceOptionalSelection tags proficiencies written into the ledger
	// when a finished build's optional selections are locked in.
	SourceOptionalSelection Source = "Optional selection"
)

// RaceSource returns the source id for a race's fixed effects.
func RaceSource(name string) Source {
	return Source(fmt.Sprintf("%s race", name))
}

// ClassSource returns the source id for a class's fixed effects.
func ClassSource(name string) Source {
	return Source(fmt.Sprintf("%s class", name))
}

// BackgroundSource returns the source id for a background's fixed effects.
func BackgroundSource(name string) Source {
	return Source(fmt.Sprintf("%s background", name))
}

// FeatSource returns the source id for a feat's effects.
func FeatSource(name string) Source {
	return Source(fmt.Sprintf("Feat:%s", name))
}
