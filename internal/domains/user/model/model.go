package model

const (
	EntityName = "user"
)

// User mirrors the backend's account record. The user id doubles as the
// 7-digit student number.
type User struct {
	ID          string `json:"userId"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	AccessToken string `json:"accessToken,omitempty"`
}
