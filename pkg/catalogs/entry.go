package catalogs

// CatalogEntry is one model record from the external pricing feed after
// boundary defaulting. Fields are always populated (possibly with zero
// values); downstream components never branch on presence.
type CatalogEntry struct {
	RawID           string   // Feed identifier, e.g. "openai/gpt-5-mini"
	Name            string   // Display name, falls back to RawID at the boundary
	CanonicalSlug   string   // Feed-provided alias, empty when absent
	ContextWindow   int64    // Context window in tokens
	MaxOutputTokens int64    // Maximum completion tokens
	PromptPrice     string   // Raw per-token USD prompt price, decimal string
	CompletionPrice string   // Raw per-token USD completion price, decimal string
	InputModalities []string // Raw modality tags, e.g. "text", "image"
	Tags            []string // Legacy capability tags, e.g. "chat", "tools"
}

// Slug derives the model's identity slug, preferring the feed's canonical
// alias over the raw id.
func (e CatalogEntry) Slug() string {
	if e.CanonicalSlug != "" {
		return Slugify(e.CanonicalSlug)
	}
	return Slugify(e.RawID)
}
