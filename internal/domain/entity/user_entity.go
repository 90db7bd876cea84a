package entity

import "time"

// User is the authentication identity. Passwords are stored as bcrypt
// hashes in Password. Public attributes live on Profile.
type User struct {
	ID         string
	Email      string
	Password   string
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
