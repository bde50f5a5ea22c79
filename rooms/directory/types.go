package directory

import "github.com/imtaco/interview-lobby/rooms"

// room is the provider's room representation.
type room struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	APICreated bool           `json:"api_created"`
	Privacy    string         `json:"privacy"`
	URL        string         `json:"url"`
	CreatedAt  string         `json:"created_at"`
	Config     map[string]any `json:"config"`
}

type roomPage struct {
	TotalCount int     `json:"total_count"`
	Data       []*room `json:"data"`
}

type createRequest struct {
	Name       string           `json:"name"`
	Privacy    string           `json:"privacy"`
	Properties createProperties `json:"properties"`
}

type createProperties struct {
	rooms.Capabilities
	NotBefore *int64 `json:"nbf,omitempty"`
}

type updateRequest struct {
	Properties updateProperties `json:"properties"`
}

type updateProperties struct {
	NotBefore int64 `json:"nbf"`
}

type apiError struct {
	Error string `json:"error"`
	Info  string `json:"info"`
}

const (
	privacyPublic  = "public"
	privacyPrivate = "private"
)
