package response

// Envelope is the public success shape shared by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Demo    bool   `json:"demo,omitempty"`
}
