package dto

import "encoding/json"

// Envelope is the uniform response wrapper of the reservation backend.
//
// The "isSucess" spelling is the backend's, not ours. It is load-bearing:
// renaming the field breaks interop with the deployed collaborator, so it
// stays misspelled on the wire.
type Envelope struct {
	IsSucess bool            `json:"isSucess"`
	Code     string          `json:"code"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
}
