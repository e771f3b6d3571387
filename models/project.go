package models

import "time"

const (
	PreviewImage  = "image"
	PreviewPDF    = "pdf"
	PreviewGoogle = "google"
	PreviewOther  = "other"
)

// Project is a gallery entry: a link plus its thumbnail.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ProjectLink string    `json:"projectLink"`
	ImageURL    string    `json:"imageUrl"`
	PreviewType string    `json:"previewType"`
	PreviewURL  string    `json:"previewUrl"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProjectRequest is used for both create and update.
type ProjectRequest struct {
	Name        string `json:"name"`
	ProjectLink string `json:"projectLink"`
	ImageURL    string `json:"imageUrl"`
}

// PresenceRequest is the heartbeat body. Every field is optional.
type PresenceRequest struct {
	Action string `json:"action"`
}

const (
	PresencePing    = "ping"
	PresenceOffline = "offline"
)

// NormalizedAction maps an absent or unrecognised action to a ping.
func (r PresenceRequest) NormalizedAction() string {
	if r.Action == PresenceOffline {
		return PresenceOffline
	}
	return PresencePing
}
