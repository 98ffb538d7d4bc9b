package users

import "time"

// User is an account record. PasswordHash is an argon2id PHC string and
// never leaves the server.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}
