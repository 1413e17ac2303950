package openrouter

// Response is the catalog feed envelope: {"data": [...]}.
type Response struct {
	Data []Model `json:"data"`
}

// Model is one raw catalog record as returned by the feed. Optional fields
// are resolved by Entry; nothing downstream reads these directly.
type Model struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name,omitempty"`
	CanonicalSlug       string       `json:"canonical_slug,omitempty"`
	ContextLength       int64        `json:"context_length,omitempty"`
	MaxTokens           int64        `json:"max_tokens,omitempty"`
	MaxCompletionTokens int64        `json:"max_completion_tokens,omitempty"`
	Pricing             Pricing      `json:"pricing,omitempty"`
	Architecture        Architecture `json:"architecture,omitempty"`
	Capabilities        []string     `json:"capabilities,omitempty"`
	TopProvider         TopProvider  `json:"top_provider,omitempty"`
}

// Pricing holds the feed's per-token USD prices as decimal strings.
type Pricing struct {
	Prompt     string `json:"prompt,omitempty"`
	Completion string `json:"completion,omitempty"`
}

// Architecture holds the feed's modality tags.
type Architecture struct {
	InputModalities []string `json:"input_modalities,omitempty"`
}

// TopProvider holds per-deployment limits the feed reports for the best
// available host of a model.
type TopProvider struct {
	ContextLength       int64 `json:"context_length,omitempty"`
	MaxCompletionTokens int64 `json:"max_completion_tokens,omitempty"`
}

// displayName falls back to the raw id when the feed omits a name.
func (m Model) displayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// contextWindow prefers the model-level context length over the top
// provider's deployment limit.
func (m Model) contextWindow() int64 {
	if m.ContextLength > 0 {
		return m.ContextLength
	}
	return m.TopProvider.ContextLength
}

// maxOutputTokens resolves the completion limit from the feed's three
// competing fields, most specific first.
func (m Model) maxOutputTokens() int64 {
	if m.MaxCompletionTokens > 0 {
		return m.MaxCompletionTokens
	}
	if m.MaxTokens > 0 {
		return m.MaxTokens
	}
	return m.TopProvider.MaxCompletionTokens
}
