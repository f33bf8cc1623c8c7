package rules

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/charforge/charforge/internal/domain/rulebook"
	"github.com/charforge/charforge/internal/domain/shared"
	cferr "github.com/charforge/charforge/internal/errors"
)

// LoadDefaults reads the ruleset's seeded-grant configuration from a YAML
// file, e.g.:
//
//	grants:
//	  - category: languages
//	    name: Common
//	  - category: weapons
//	    name: Simple Weapons
func LoadDefaults(path string) (*rulebook.Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, cferr.Wrapf(err, "reading ruleset defaults %s", path)
	}

	var defaults rulebook.Defaults
	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return nil, cferr.Wrapf(err, "parsing ruleset defaults %s", path)
	}

	for _, grant := range defaults.Grants {
		if !grant.Category.IsValid() {
			return nil, cferr.Validationf("%s: unknown proficiency category %q", path, grant.Category)
		}
		if grant.Name == "" {
			return nil, cferr.Validationf("%s: seeded grant with empty name", path)
		}
	}

	return &defaults, nil
}

// StandardDefaults returns the seeded grants used when no defaults file is
// configured: every character speaks Common.
func StandardDefaults() *rulebook.Defaults {
	return &rulebook.Defaults{
		Grants: []shared.GrantRef{
			{Category: shared.CategoryLanguages, Name: "Common"},
		},
	}
}
