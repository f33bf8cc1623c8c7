package shared

// Attribute identifies one of the six ability scores.
type Attribute string

const (
	AttributeNone         Attribute = ""
	AttributeStrength     Attribute = "strength"
	AttributeDexterity    Attribute = "dexterity"
	AttributeConstitution Attribute = "constitution"
	AttributeIntelligence Attribute = "intelligence"
	AttributeWisdom       Attribute = "wisdom"
	AttributeCharisma     Attribute = "charisma"
)

// Attributes lists the six abilities in sheet order.
var Attributes = []Attribute{
	AttributeStrength,
	AttributeDexterity,
	AttributeConstitution,
	AttributeIntelligence,
	AttributeWisdom,
	AttributeCharisma,
}

// IsValid reports whether a is one of the six abilities.
func (a Attribute) IsValid() bool {
	switch a {
	case AttributeStrength, AttributeDexterity, AttributeConstitution,
		AttributeIntelligence, AttributeWisdom, AttributeCharisma:
		return true
	default:
		return false
	}
}

// Short returns the conventional three-letter form (e.g. "STR").
func (a Attribute) Short() string {
	switch a {
	case AttributeStrength:
		return "STR"
	case AttributeDexterity:
		return "DEX"
	case AttributeConstitution:
		return "CON"
	case AttributeIntelligence:
		return "INT"
	case AttributeWisdom:
		return "WIS"
	case AttributeCharisma:
		return "CHA"
	default:
		return ""
	}
}
