package catalogs

import "strings"

// Capability represents a normalized model capability.
type Capability string

// The fixed capability vocabulary, in display priority order.
const (
	// CapabilityText indicates text input and output.
	CapabilityText Capability = "text"
	// CapabilityVision indicates image understanding.
	CapabilityVision Capability = "vision"
	// CapabilityAudio indicates audio input or output.
	CapabilityAudio Capability = "audio"
	// CapabilityCoding indicates code generation or tool use.
	CapabilityCoding Capability = "coding"
	// CapabilityReasoning indicates extended reasoning support.
	CapabilityReasoning Capability = "reasoning"
)

// String returns the string representation of a Capability.
func (c Capability) String() string {
	return string(c)
}

// ExtractCapabilities maps a model's raw input modalities and legacy
// capability tags onto the fixed vocabulary. Rules are evaluated in display
// priority order and the result keeps that order, since consumers render
// capabilities as-is. A model with no recognized signal defaults to text.
func ExtractCapabilities(modalities, tags []string) []Capability {
	caps := make([]Capability, 0, 5)

	if containsAny(modalities, "text") || containsAny(tags, "text", "chat") {
		caps = append(caps, CapabilityText)
	}
	if containsAny(modalities, "image", "vision", "images") || containsAny(tags, "image", "vision", "images") {
		caps = append(caps, CapabilityVision)
	}
	if containsAny(modalities, "audio") || containsAny(tags, "audio") {
		caps = append(caps, CapabilityAudio)
	}
	if containsAny(tags, "coding", "tools") {
		caps = append(caps, CapabilityCoding)
	}
	if containsAny(tags, "reasoning") {
		caps = append(caps, CapabilityReasoning)
	}

	if len(caps) == 0 {
		caps = append(caps, CapabilityText)
	}
	return caps
}

// containsAny reports whether values contains any of the targets,
// case-insensitively and ignoring surrounding whitespace.
func containsAny(values []string, targets ...string) bool {
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		for _, target := range targets {
			if v == target {
				return true
			}
		}
	}
	return false
}
