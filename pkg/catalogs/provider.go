package catalogs

// Provider represents a persisted provider row.
// Providers are created on first sighting of a new canonical provider name
// and never deleted by the sync process.
type Provider struct {
	ID           int64   `json:"id,omitempty"`            // Row identifier minted by the store
	Name         string  `json:"name"`                    // Canonical display name (must not be empty)
	Slug         string  `json:"slug"`                    // Identity key, unique case-insensitively
	WebsiteURL   *string `json:"website_url,omitempty"`   // Provider homepage
	AffiliateURL *string `json:"affiliate_url,omitempty"` // Optional affiliate link
	IsActive     bool    `json:"is_active"`               // Whether the provider is shown
	SortOrder    int     `json:"sort_order"`              // Display ordering
}
