package domain

// User represents an authenticated identity attached to a verified request.
// The API ships with a single fixed account; there is no user table.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
