// internal/models/user.go
package models

// UserProfile is what the authenticated-user provider hands us for field
// prefill. A nil profile is a valid state (guest / test mode).
type UserProfile struct {
	UID       string `json:"uid"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
