package domain

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt encoded, never the plaintext
	CreatedAt    time.Time
}
