package shared

// ProficiencyCategory groups proficiencies by the kind of thing they apply to.
type ProficiencyCategory string

const (
	CategoryUnknown     ProficiencyCategory = ""
	CategorySkills      ProficiencyCategory = "skills"
	CategoryTools       ProficiencyCategory = "tools"
	CategoryArmor       ProficiencyCategory = "armor"
	CategoryWeapons     ProficiencyCategory = "weapons"
	CategoryLanguages   ProficiencyCategory = "languages"
	CategorySavingThrow ProficiencyCategory = "saving-throws"
)

// Categories lists every proficiency category in display order.
var Categories = []ProficiencyCategory{
	CategorySkills,
	CategoryTools,
	CategoryArmor,
	CategoryWeapons,
	CategoryLanguages,
	CategorySavingThrow,
}

// IsValid reports whether c is a known category.
func (c ProficiencyCategory) IsValid() bool {
	switch c {
	case CategorySkills, CategoryTools, CategoryArmor,
		CategoryWeapons, CategoryLanguages, CategorySavingThrow:
		return true
	default:
		return false
	}
}

// Axis is one of the independent granting contexts whose optional-choice
// tracks are combined into a character total.
type Axis string

const (
	AxisUnset      Axis = ""
	AxisRace       Axis = "race"
	AxisClass      Axis = "class"
	AxisBackground Axis = "background"
)

// Axes lists the granting axes in combination order.
var Axes = []Axis{AxisRace, AxisClass, AxisBackground}

// IsValid reports whether a is a known granting axis.
func (a Axis) IsValid() bool {
	switch a {
	case AxisRace, AxisClass, AxisBackground:
		return true
	default:
		return false
	}
}
