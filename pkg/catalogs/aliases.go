package catalogs

import (
	_ "embed"
	"fmt"

	"github.com/goccy/go-yaml"
)

//go:embed aliases.yaml
var aliasesYAML []byte

// ProviderPattern is one ordered substring predicate of the provider
// detection table: if a lowercased raw catalog id contains Contains, the
// entry belongs to Provider.
type ProviderPattern struct {
	Contains string `yaml:"contains"`
	Provider string `yaml:"provider"`
}

// aliasTable is the embedded provider detection data.
type aliasTable struct {
	Aliases  map[string]string `yaml:"aliases"`
	Patterns []ProviderPattern `yaml:"patterns"`
	Fallback string            `yaml:"fallback"`
}

var aliases aliasTable

func init() {
	if err := yaml.Unmarshal(aliasesYAML, &aliases); err != nil {
		panic(fmt.Sprintf("catalogs: embedded aliases.yaml is invalid: %v", err))
	}
}

// ProviderAlias looks up the canonical provider name for a lowercased vendor
// token (the segment before the first "/" in a raw catalog id).
func ProviderAlias(key string) (string, bool) {
	name, ok := aliases.Aliases[key]
	return name, ok
}

// ProviderAliasKeys returns every vendor token in the alias table.
func ProviderAliasKeys() []string {
	keys := make([]string, 0, len(aliases.Aliases))
	for key := range aliases.Aliases {
		keys = append(keys, key)
	}
	return keys
}

// ProviderPatterns returns the ordered substring predicates applied when the
// alias lookup misses.
func ProviderPatterns() []ProviderPattern {
	return aliases.Patterns
}

// FallbackProviderName returns the canonical name used when no alias or
// pattern matches a raw catalog id.
func FallbackProviderName() string {
	return aliases.Fallback
}
