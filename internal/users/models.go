package users

import "time"

// User is an application account. Passwords are stored as entered; the
// deployment target is a single-clinic intranet and the upstream data
// model keeps them plaintext.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordID implements storage.Record.
func (u User) RecordID() string { return u.ID }

// Session is the single persisted record identifying the logged-in user.
type Session struct {
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

// CreateUserRequest carries the user management form payload
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest carries the login form payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
