package domain

import "time"

// AuthToken is an opaque session token bound to a user. Value is only
// populated on the token handed back at issue time; records loaded from the
// store carry just the fingerprint.
type AuthToken struct {
	Value     string
	TokenHash string // deterministic fingerprint (base64url SHA-256)
	UserID    string
	CreatedAt time.Time
}
