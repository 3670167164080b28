package model

// Hero is the sole domain entity: an integer id plus a display name.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Hero struct {
	ID   int    `json:"id"`
	Name string `json:"name"`

	// PortraitPath and PortraitType are set once a portrait image has been
	// uploaded to object storage. Empty until then.
	PortraitPath string `json:"portrait_path,omitempty"`
	PortraitType string `json:"portrait_type,omitempty"`
}
