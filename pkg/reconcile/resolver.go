package reconcile

import (
	"strings"

	"github.com/pricedeck/pricedeck/pkg/catalogs"
)

// ResolveProvider maps a raw catalog id to its canonical provider name.
// Deterministic and pure: the vendor token before the first "/" is looked up
// in the alias table; on a miss the ordered substring patterns are tried
// against the full lowercased id, first match wins; if nothing matches the
// entry belongs to the catalog's own brand.
//
// The pattern list deliberately coarse-grains some open-weight model families
// into a single bucket; finer vendor attribution is an alias-table change,
// not a code change.
func ResolveProvider(rawID string) string {
	id := strings.ToLower(strings.TrimSpace(rawID))

	if idx := strings.Index(id, "/"); idx > 0 {
		if name, ok := catalogs.ProviderAlias(id[:idx]); ok {
			return name
		}
	}

	for _, p := range catalogs.ProviderPatterns() {
		if strings.Contains(id, p.Contains) {
			return p.Provider
		}
	}

	return catalogs.FallbackProviderName()
}
