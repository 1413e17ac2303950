package catalogs

// Model represents a persisted model row.
// The slug is the identity key for upsert decisions: a model is created when
// its slug has never been seen, updated when re-seen, and deleted when the
// slug disappears from a fresh catalog fetch (full-sync mode only).
type Model struct {
	ID              int64        `json:"id,omitempty"`      // Row identifier minted by the store
	ProviderID      int64        `json:"provider_id"`       // Owning provider (never nullable)
	Name            string       `json:"name"`              // Display name from the feed
	Slug            string       `json:"slug"`              // Identity key, derived from the raw catalog id
	ContextWindow   int64        `json:"context_window"`    // Context window in tokens
	MaxOutputTokens int64        `json:"max_output_tokens"` // Maximum completion tokens
	Capabilities    []Capability `json:"capabilities"`      // Normalized capability set, never empty
	IsActive        bool         `json:"is_active"`         // Whether the model is shown
	SortOrder       int          `json:"sort_order"`        // Position in the fetched catalog
}
