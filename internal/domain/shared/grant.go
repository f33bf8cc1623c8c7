package shared

// GrantRef names a single proficiency within a category. Rulebook content
// uses it to describe fixed grants; the ruleset defaults file uses it to
// describe seeded grants.
type GrantRef struct {
	Category ProficiencyCategory `json:"category"`
	Name     string              `json:"name"`
}
